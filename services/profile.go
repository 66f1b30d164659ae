package services

import (
	"context"
	"log"
	"time"

	"MediHub360/role"

	"go.mongodb.org/mongo-driver/bson"
)

/*
* Compare the previous and new role, no-op when unchanged
* Remove the profile document kept for the previous role
* Create a minimal stub profile for the new role unless one already exists
* At most one profile ever exists per user across the profile collections
 */
func SyncRoleProfile(ctx context.Context, userId, previousRole, newRole string) error {
	if previousRole == newRole {
		return nil
	}

	if oldColl := role.ProfileCollection(previousRole); oldColl != "" {
		if err := removeDoc(ctx, oldColl, bson.M{"user": userId}); err != nil {
			log.Println("Error removing old role profile:", err)
			return err
		}
	}

	newColl := role.ProfileCollection(newRole)
	if newColl == "" {
		return nil
	}

	existing, err := findDoc(ctx, newColl, bson.M{"user": userId})
	if err != nil && !isNotFound(err) {
		log.Println("Error checking for existing profile:", err)
		return err
	}
	if existing != nil {
		return nil
	}

	stub, err := buildProfileStub(ctx, newColl, userId)
	if err != nil {
		return err
	}
	if err := insertDoc(ctx, newColl, stub); err != nil {
		// A duplicate key is only a win when a concurrent sync actually
		// landed the profile. Any other index collision must surface, or
		// the user ends up owning no profile at all.
		if isDuplicateKey(err) {
			if _, checkErr := findDoc(ctx, newColl, bson.M{"user": userId}); checkErr == nil {
				return nil
			}
			log.Println("Stub profile collided without a surviving profile:", err)
			return err
		}
		log.Println("Error creating stub profile:", err)
		return err
	}
	return nil
}

/*
* Generate a code for the profile collection
* Carry name and email over from the user document when it resolves
 */
func buildProfileStub(ctx context.Context, collection, userId string) (map[string]interface{}, error) {
	code, err := generateCode(collection)
	if err != nil {
		log.Println("Error generating profile code:", err)
		return nil, err
	}

	stub := map[string]interface{}{
		"code":      code,
		"user":      userId,
		"isActive":  true,
		"createdAt": time.Now(),
		"createdBy": "SYSTEM",
		"updatedAt": time.Now(),
		"updatedBy": "SYSTEM",
	}
	user, err := findDoc(ctx, UserCollection, bson.M{"code": userId})
	if err == nil {
		if name, ok := user["name"].(string); ok {
			stub["name"] = name
		}
		if email, ok := user["email"].(string); ok {
			stub["email"] = email
		}
	}

	// nic, employeeId and profile.licenseNumber stay unset on stubs; their
	// unique indexes are sparse, so unset fields never collide.
	return stub, nil
}
