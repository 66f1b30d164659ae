package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Receptionist struct {
	ID         primitive.ObjectID `json:"id" bson:"id"`
	Code       string             `json:"code" bson:"code"`
	User       string             `json:"user" bson:"user"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	EmployeeID string             `json:"employeeId" bson:"employeeId"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	CreatedBy  string             `json:"createdBy" bson:"createdBy"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy  string             `json:"updatedBy" bson:"updatedBy"`
}
