package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	ID              primitive.ObjectID `json:"id" bson:"id"`
	Code            string             `json:"code" bson:"code"`
	PatientID       string             `json:"patientId" bson:"patientId"`
	DoctorID        string             `json:"doctorId" bson:"doctorId"`
	AppointmentDate string             `json:"appointmentDate" bson:"appointmentDate"`
	AppointmentTime string             `json:"appointmentTime" bson:"appointmentTime"`
	Duration        int                `json:"duration" bson:"duration"`
	Type            string             `json:"type" bson:"type"`
	Status          string             `json:"status" bson:"status"`
	Reason          string             `json:"reason" bson:"reason"`
	Symptoms        string             `json:"symptoms" bson:"symptoms"`
	Diagnosis       string             `json:"diagnosis" bson:"diagnosis"`
	Prescription    string             `json:"prescription" bson:"prescription"`
	Notes           string             `json:"notes" bson:"notes"`
	VitalSigns      string             `json:"vitalSigns" bson:"vitalSigns"`
	FollowUpDate    string             `json:"followUpDate" bson:"followUpDate"`
	Pharmacist      string             `json:"pharmacist" bson:"pharmacist"`
	SlotKey         string             `json:"-" bson:"slotKey,omitempty"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	CreatedBy       string             `json:"createdBy" bson:"createdBy"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy       string             `json:"updatedBy" bson:"updatedBy"`
}
