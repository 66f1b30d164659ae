package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `json:"id" bson:"id"`
	Code            string             `json:"code" bson:"code"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	PhoneNo         string             `json:"phoneNo" bson:"phoneNo"`
	Password        string             `json:"password,omitempty" bson:"password,omitempty"`
	Role            string             `json:"role" bson:"role"`
	Status          string             `json:"status" bson:"status"`
	IsEmailVerified bool               `json:"isEmailVerified" bson:"isEmailVerified"`
	LoginAttempts   int                `json:"loginAttempts" bson:"loginAttempts"`
	OTP             string             `json:"otp,omitempty" bson:"otp,omitempty"`
	OTPExpiry       time.Time          `json:"otpExpiry,omitempty" bson:"otpExpiry,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	CreatedBy       string             `json:"createdBy" bson:"createdBy"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy       string             `json:"updatedBy" bson:"updatedBy"`
}
