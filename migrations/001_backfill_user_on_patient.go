package migrations

import (
	"context"
	"log"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	"go.mongodb.org/mongo-driver/bson"
)

// Patients created before the user reference existed only carry createdBy.
// Give them an empty user field so ownership checks can rely on the key
// being present; the legacy createdBy and email resolvers still cover them.
func BackfillUserOnPatient() {
	ctx := context.Background()
	result, err := db.DB.Collection("PATIENT").UpdateMany(
		ctx,
		bson.M{"user": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"user": ""}},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Printf("Migration applied: %d documents updated\n", result.ModifiedCount)
}
