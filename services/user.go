package services

import (
	"log"
	"strings"
	"time"

	"MediHub360/httperr"
	"MediHub360/role"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Fields an admin may change on a user record.
var userUpdatableFields = []string{"name", "phoneNo", "role", "status"}

/*
* Resolve the target and scope the payload to the updatable fields
* An admin editing their own account may not drop ADMIN nor leave ACTIVE
* A role change hands off to SyncRoleProfile afterwards
 */
func UpdateUserByCode(c *gin.Context, userId string, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")

	filter := bson.M{"code": userId}
	user, err := findDoc(c, UserCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("user-missing", "no user found for this id")
		}
		log.Println("Error fetching user for update:", err)
		return nil, err
	}

	updates := map[string]interface{}{}
	for _, f := range userUpdatableFields {
		if v, exists := data[f]; exists {
			updates[f] = v
		}
	}
	if len(updates) == 0 {
		return user, nil
	}

	previousRole, _ := user["role"].(string)
	newRole := previousRole
	if raw, exists := updates["role"]; exists {
		r, _ := raw.(string)
		r = strings.ToUpper(strings.TrimSpace(r))
		if !role.IsValid(r) {
			return nil, httperr.BadRequest("invalid-role", "role must be one of the supported roles")
		}
		updates["role"] = r
		newRole = r
	}
	if raw, exists := updates["status"]; exists {
		s, _ := raw.(string)
		s = strings.ToUpper(strings.TrimSpace(s))
		if !role.IsValidStatus(s) {
			return nil, httperr.BadRequest("invalid-status", "status must be ACTIVE, INACTIVE or SUSPENDED")
		}
		updates["status"] = s
	}

	// Self-demotion protection: admins cannot lock themselves out.
	if actingCode == userId {
		if newRole != role.Admin {
			return nil, httperr.Forbidden("self-demotion", "you cannot remove your own ADMIN role")
		}
		if s, exists := updates["status"]; exists && s != role.StatusActive {
			return nil, httperr.Forbidden("self-demotion", "you cannot suspend or deactivate your own account")
		}
	}

	updates["updatedAt"] = time.Now()
	updates["updatedBy"] = actingCode
	if _, err := updateDoc(c, UserCollection, filter, bson.M{"$set": updates}); err != nil {
		log.Println("Error updating user:", err)
		return nil, err
	}

	if newRole != previousRole {
		if err := SyncRoleProfile(c, userId, previousRole, newRole); err != nil {
			log.Println("Error syncing role profile:", err)
			return nil, err
		}
	}

	updated, err := findDoc(c, UserCollection, filter)
	if err != nil {
		log.Println("Error fetching user after update:", err)
		return nil, err
	}
	delete(updated, "password")
	key := UserKey + userId
	if err := cacheDrop(c, key); err != nil {
		log.Println("Failed deleting old user cache:", err)
	}
	if err := cachePut(c, key, updated); err != nil {
		log.Println("Failed caching updated user:", err)
	}
	return updated, nil
}

func FetchUserByCode(c *gin.Context, userId string) (map[string]interface{}, error) {
	key := UserKey + userId
	cached := make(map[string]interface{})
	if exists, err := cacheFetch(c, key, &cached); err == nil && exists {
		return cached, nil
	}

	user, err := findDoc(c, UserCollection, bson.M{"code": userId})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("user-missing", "no user found for this id")
		}
		log.Println("Error fetching user:", err)
		return nil, err
	}
	delete(user, "password")
	delete(user, "otp")
	if err := cachePut(c, key, user); err != nil {
		log.Println("Failed caching user:", err)
	}
	return user, nil
}

/*
* Optional role filter, password hashes never leave the service
 */
func FetchAllUsers(c *gin.Context) ([]interface{}, error) {
	filter := bson.M{}
	if roleName := c.Query("role"); roleName != "" {
		if !role.IsValid(roleName) {
			return nil, httperr.BadRequest("invalid-role", "role must be one of the supported roles")
		}
		filter["role"] = roleName
	}
	users, err := findDocs(c, UserCollection, filter)
	if err != nil {
		log.Println("Error from findAll:", err)
		return nil, err
	}
	for _, raw := range users {
		if user, ok := raw.(map[string]interface{}); ok {
			delete(user, "password")
			delete(user, "otp")
		}
	}
	return users, nil
}

/*
* Users are never hard-deleted, deactivation only
 */
func DeleteUserByCode(c *gin.Context, userId string) (string, error) {
	actingCode := c.GetString("code")
	if actingCode == userId {
		return "", httperr.Forbidden("self-demotion", "you cannot deactivate your own account")
	}

	filter := bson.M{"code": userId}
	if _, err := findDoc(c, UserCollection, filter); err != nil {
		if isNotFound(err) {
			return "", httperr.NotFound("user-missing", "no user found for this id")
		}
		log.Println("Error fetching user for delete:", err)
		return "", err
	}

	update := bson.M{"$set": bson.M{
		"status":    role.StatusInactive,
		"updatedAt": time.Now(),
		"updatedBy": actingCode,
	}}
	if _, err := updateDoc(c, UserCollection, filter, update); err != nil {
		log.Println("Error deactivating user:", err)
		return "", err
	}
	if err := cacheDrop(c, UserKey+userId); err != nil {
		log.Println("Error from deleteCache:", err)
	}
	return "Deactivated successfully", nil
}
