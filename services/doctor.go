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

/*
* Collect every missing required field and report them together
* The profile sub-document must at least name a specialization and license
 */
func validateDoctorInput(data map[string]interface{}) (map[string]interface{}, error) {
	missing := []string{}
	for _, f := range []string{"userId", "name", "email"} {
		v, ok := data[f].(string)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, f+" is required")
			continue
		}
		data[f] = strings.TrimSpace(v)
	}
	profile, _ := data["profile"].(map[string]interface{})
	if profile == nil {
		missing = append(missing, "profile is required")
	} else {
		for _, f := range []string{"specialization", "licenseNumber"} {
			v, ok := profile[f].(string)
			if !ok || strings.TrimSpace(v) == "" {
				missing = append(missing, "profile."+f+" is required")
				continue
			}
			profile[f] = strings.TrimSpace(v)
		}
	}
	if len(missing) > 0 {
		return nil, httperr.BadRequest("missing-fields", strings.Join(missing, "; "))
	}
	return profile, nil
}

/*
* One doctor profile per user and globally unique license numbers
 */
func CreateDoctor(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return nil, httperr.Forbidden("no-access", "only administrators can register doctors")
	}

	profile, err := validateDoctorInput(data)
	if err != nil {
		return nil, err
	}
	userId := data["userId"].(string)

	if _, err := findDoc(c, UserCollection, bson.M{"code": userId}); err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("user-missing", "no user found for userId")
		}
		log.Println("Error resolving user for doctor:", err)
		return nil, err
	}
	if _, err := findDoc(c, DoctorCollection, bson.M{"user": userId}); err == nil {
		return nil, httperr.Conflict("profile-exists", "a doctor profile already exists for this user")
	} else if !isNotFound(err) {
		log.Println("Error checking for existing doctor:", err)
		return nil, err
	}
	license := profile["licenseNumber"].(string)
	if _, err := findDoc(c, DoctorCollection, bson.M{"profile.licenseNumber": license}); err == nil {
		return nil, httperr.Conflict("license-taken", "this license number is already registered")
	} else if !isNotFound(err) {
		log.Println("Error checking license uniqueness:", err)
		return nil, err
	}

	code, err := generateCode(DoctorCollection)
	if err != nil {
		log.Println("Error generating doctor code:", err)
		return nil, err
	}

	doctor := map[string]interface{}{
		"code":      code,
		"user":      userId,
		"name":      data["name"],
		"email":     strings.ToLower(data["email"].(string)),
		"profile":   profile,
		"isActive":  true,
		"createdAt": time.Now(),
		"createdBy": actingCode,
		"updatedAt": time.Now(),
		"updatedBy": actingCode,
	}
	if err := insertDoc(c, DoctorCollection, doctor); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("license-taken", "user or license number is already registered")
		}
		log.Println("Error inserting doctor:", err)
		return nil, err
	}

	key := DoctorKey + code
	if err := cachePut(c, key, doctor); err != nil {
		log.Println("Failed caching new doctor:", err)
	}
	return doctor, nil
}

func FetchDoctorByCode(c *gin.Context, doctorId string) (map[string]interface{}, error) {
	key := DoctorKey + doctorId
	cached := make(map[string]interface{})
	if exists, err := cacheFetch(c, key, &cached); err == nil && exists {
		return cached, nil
	}

	doctor, err := findDoc(c, DoctorCollection, bson.M{"code": doctorId})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("doctor-missing", "no doctor found for this id")
		}
		log.Println("Error fetching doctor:", err)
		return nil, err
	}
	if err := cachePut(c, key, doctor); err != nil {
		log.Println("Error from setCache:", err)
	}
	return doctor, nil
}

func FetchAllDoctors(c *gin.Context) ([]interface{}, error) {
	doctors, err := findDocs(c, DoctorCollection, bson.M{"isActive": true})
	if err != nil {
		log.Println("Error from findAll:", err)
		return nil, err
	}
	return doctors, nil
}

var doctorProfileFields = []string{
	"specialization", "department", "licenseNumber", "licenseExpiry",
	"consultationFee", "availableFrom", "availableTo",
}

/*
* Top-level name/email plus dotted profile fields merged field by field
* so an update never clobbers the rest of the sub-document
 */
func UpdateDoctorByCode(c *gin.Context, doctorId string, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return nil, httperr.Forbidden("no-access", "only administrators can update doctors")
	}

	filter := bson.M{"code": doctorId}
	doctor, err := findDoc(c, DoctorCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("doctor-missing", "no doctor found for this id")
		}
		log.Println("Error fetching doctor for update:", err)
		return nil, err
	}

	updates := map[string]interface{}{}
	for _, f := range []string{"name", "email"} {
		if v, exists := data[f]; exists {
			updates[f] = v
		}
	}
	if profile, ok := data["profile"].(map[string]interface{}); ok {
		for _, f := range doctorProfileFields {
			if v, exists := profile[f]; exists {
				updates["profile."+f] = v
			}
		}
	}
	if len(updates) == 0 {
		return doctor, nil
	}

	if raw, exists := updates["profile.licenseNumber"]; exists {
		license, _ := raw.(string)
		conflictFilter := bson.M{
			"profile.licenseNumber": license,
			"code":                  bson.M{"$ne": doctorId},
		}
		if _, err := findDoc(c, DoctorCollection, conflictFilter); err == nil {
			return nil, httperr.Conflict("license-taken", "this license number is already registered")
		} else if !isNotFound(err) {
			log.Println("Error checking license uniqueness:", err)
			return nil, err
		}
	}

	updates["updatedAt"] = time.Now()
	updates["updatedBy"] = actingCode
	if _, err := updateDoc(c, DoctorCollection, filter, bson.M{"$set": updates}); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("license-taken", "this license number is already registered")
		}
		log.Println("Error from updateOne:", err)
		return nil, err
	}

	updated, err := findDoc(c, DoctorCollection, filter)
	if err != nil {
		log.Println("Error fetching doctor after update:", err)
		return nil, err
	}
	key := DoctorKey + doctorId
	if err := cacheDrop(c, key); err != nil {
		log.Println("Failed deleting old doctor cache:", err)
	}
	if err := cachePut(c, key, updated); err != nil {
		log.Println("Failed caching updated doctor:", err)
	}
	return updated, nil
}

func DeleteDoctor(c *gin.Context, doctorId string) (string, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return "", httperr.Forbidden("no-access", "only administrators can delete doctors")
	}

	filter := bson.M{"code": doctorId}
	if _, err := findDoc(c, DoctorCollection, filter); err != nil {
		if isNotFound(err) {
			return "", httperr.NotFound("doctor-missing", "no doctor found for this id")
		}
		log.Println("Error from findOne function:", err)
		return "", err
	}

	update := bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now(),
		"updatedBy": actingCode,
	}}
	if _, err := updateDoc(c, DoctorCollection, filter, update); err != nil {
		log.Println("Error from updateOne:", err)
		return "", err
	}
	if err := cacheDrop(c, DoctorKey+doctorId); err != nil {
		log.Println("Error from deletedCache:", err)
	}
	return "Deleted successfully", nil
}
