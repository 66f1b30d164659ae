package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type DoctorProfile struct {
	Specialization  string    `json:"specialization" bson:"specialization"`
	Department      string    `json:"department" bson:"department"`
	LicenseNumber   string    `json:"licenseNumber" bson:"licenseNumber"`
	LicenseExpiry   time.Time `json:"licenseExpiry" bson:"licenseExpiry"`
	ConsultationFee float64   `json:"consultationFee" bson:"consultationFee"`
	AvailableFrom   string    `json:"availableFrom" bson:"availableFrom"`
	AvailableTo     string    `json:"availableTo" bson:"availableTo"`
	Rating          Rating    `json:"rating" bson:"rating"`
}

type Doctor struct {
	ID        primitive.ObjectID `json:"id" bson:"id"`
	Code      string             `json:"code" bson:"code"`
	User      string             `json:"user" bson:"user"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Profile   DoctorProfile      `json:"profile" bson:"profile"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	CreatedBy string             `json:"createdBy" bson:"createdBy"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy string             `json:"updatedBy" bson:"updatedBy"`
}
