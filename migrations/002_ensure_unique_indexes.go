package migrations

import (
	"context"
	"log"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
* The slot index is what actually closes the booking race: two concurrent
* bookings both pass the pre-check, the second insert loses here.
* The rest back the per-field uniqueness pre-checks.
 */
func EnsureUniqueIndexes() {
	ctx := context.Background()

	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	indexes := map[string][]mongo.IndexModel{
		"APPOINTMENT": {
			{Keys: bson.D{{Key: "slotKey", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		"USER": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		// nic is sparse: role-change stubs carry no nic, and a missing
		// field would otherwise index as null and collide.
		"PATIENT": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "nic", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		"DOCTOR": {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "profile.licenseNumber", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		"RECEPTIONIST": {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "employeeId", Value: 1}}, Options: sparseUnique},
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
	}

	for collection, models := range indexes {
		if _, err := db.DB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			log.Fatal("Index migration failed for ", collection, ": ", err)
		}
	}
	log.Println("Unique indexes ensured")
}
