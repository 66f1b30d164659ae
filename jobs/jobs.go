package jobs

import (
	"context"
	"log"
	"time"

	"MediHub360/role"

	db "github.com/KanapuramVaishnavi/Core/config/db"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func StartDailyScheduler() {
	c := cron.New()

	// Runs every day at 00:15 AM
	c.AddFunc("15 0 * * *", func() {
		log.Println("Running daily appointment no-show sweep...")
		MarkOverdueNoShows()
	})

	c.Start()
}

/*
* Appointments left SCHEDULED or CONFIRMED past their date never happened
* Flip them to NO_SHOW and release their slots
 */
func MarkOverdueNoShows() {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	filter := bson.M{
		"appointmentDate": bson.M{"$lt": today},
		"status":          bson.M{"$in": []string{"SCHEDULED", "CONFIRMED"}},
		"isActive":        true,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    "NO_SHOW",
			"updatedAt": time.Now(),
			"updatedBy": "SYSTEM",
		},
		"$unset": bson.M{"slotKey": ""},
	}
	result, err := db.DB.Collection("APPOINTMENT").UpdateMany(ctx, filter, update)
	if err != nil {
		log.Println("Error from the no-show sweep:", err)
		return
	}
	log.Println("No-show sweep marked", result.ModifiedCount, "appointments")
}

/*
* Upsert the fixed role documents the authorization middleware reads
 */
func SeedRoles() {
	ctx := context.Background()
	coll := db.DB.Collection("ROLE")

	for _, seed := range role.PrivilegeSeeds() {
		filter := bson.M{"roleCode": seed.RoleCode}
		update := bson.M{
			"$set": bson.M{
				"roleName":   seed.RoleName,
				"privileges": seed.Privileges,
				"updatedAt":  time.Now(),
				"updatedBy":  seed.UpdatedBy,
			},
			"$setOnInsert": bson.M{
				"roleCode":  seed.RoleCode,
				"createdAt": seed.CreatedAt,
				"createdBy": seed.CreatedBy,
			},
		}
		if _, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Println("Error seeding role", seed.RoleCode, ":", err)
		}
	}
	log.Println("Role seeding finished")
}
