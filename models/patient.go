package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Insurance struct {
	Provider  string    `json:"provider" bson:"provider"`
	ValidFrom time.Time `json:"validFrom" bson:"validFrom"`
	ValidTo   time.Time `json:"validTo" bson:"validTo"`
}

type Patient struct {
	ID          primitive.ObjectID `json:"id" bson:"id"`
	Code        string             `json:"code" bson:"code"`
	User        string             `json:"user" bson:"user"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	NIC         string             `json:"nic" bson:"nic"`
	PhoneNo     string             `json:"phoneNo" bson:"phoneNo"`
	DOB         string             `json:"dob" bson:"dob"`
	Gender      string             `json:"gender" bson:"gender"`
	BloodType   string             `json:"bloodType" bson:"bloodType"`
	Allergies   []string           `json:"allergies" bson:"allergies"`
	Medications []string           `json:"medications" bson:"medications"`
	Insurance   Insurance          `json:"insurance" bson:"insurance"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	CreatedBy   string             `json:"createdBy" bson:"createdBy"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy   string             `json:"updatedBy" bson:"updatedBy"`
}
