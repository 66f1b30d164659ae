package services

import (
	"log"
	"strings"
	"time"

	"MediHub360/httperr"
	"MediHub360/role"

	common "github.com/KanapuramVaishnavi/Core/coreServices"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

var patientOptionalFields = []string{"dob", "gender", "bloodType"}

/*
* Collect every missing required field and report them together
* Trim whatever optional plain-string fields came along
 */
func validatePatientInput(data map[string]interface{}) error {
	missing := []string{}
	for _, f := range []string{"name", "email", "nic", "phoneNo"} {
		v, ok := data[f].(string)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, f+" is required")
			continue
		}
		data[f] = strings.TrimSpace(v)
	}
	if len(missing) > 0 {
		return httperr.BadRequest("missing-fields", strings.Join(missing, "; "))
	}
	data["email"] = strings.ToLower(data["email"].(string))
	for _, f := range patientOptionalFields {
		if err := common.TrimIfExists(data, f); err != nil {
			log.Println("Error from trimIfExists:", err)
			return httperr.BadRequest("invalid-field", f+" must be a non-empty string when provided")
		}
	}
	return nil
}

/*
* Email and NIC are unique across patients, checked up front and
* backed by unique indexes for anything the pre-check races past
 */
func checkPatientUniqueness(c *gin.Context, data map[string]interface{}, excludeCode string) error {
	for field, code := range map[string]string{"email": "email-taken", "nic": "nic-taken"} {
		raw, exists := data[field]
		if !exists {
			continue
		}
		filter := bson.M{field: raw}
		if excludeCode != "" {
			filter["code"] = bson.M{"$ne": excludeCode}
		}
		if _, err := findDoc(c, PatientCollection, filter); err == nil {
			return httperr.Conflict(code, field+" is already registered to another patient")
		} else if !isNotFound(err) {
			log.Println("Error checking patient uniqueness:", err)
			return err
		}
	}
	return nil
}

/*
* Patients onboard themselves, staff onboard on a patient's behalf
* A patient gets at most one profile of their own
 */
func CreatePatient(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	if err := validatePatientInput(data); err != nil {
		return nil, err
	}
	if err := checkPatientUniqueness(c, data, ""); err != nil {
		return nil, err
	}

	userRef := ""
	if actingRole == role.Patient {
		if _, err := findDoc(c, PatientCollection, bson.M{"user": actingCode}); err == nil {
			return nil, httperr.Conflict("profile-exists", "a patient profile already exists for this account")
		} else if !isNotFound(err) {
			log.Println("Error checking for existing profile:", err)
			return nil, err
		}
		userRef = actingCode
	} else if raw, exists := data["userId"]; exists {
		userId, _ := raw.(string)
		if strings.TrimSpace(userId) != "" {
			userRef = strings.TrimSpace(userId)
		}
	}

	code, err := generateCode(PatientCollection)
	if err != nil {
		log.Println("Error generating patient code:", err)
		return nil, err
	}

	patient := map[string]interface{}{
		"code":        code,
		"user":        userRef,
		"name":        data["name"],
		"email":       data["email"],
		"nic":         data["nic"],
		"phoneNo":     data["phoneNo"],
		"dob":         data["dob"],
		"gender":      data["gender"],
		"bloodType":   data["bloodType"],
		"allergies":   data["allergies"],
		"medications": data["medications"],
		"insurance":   data["insurance"],
		"isActive":    true,
		"createdAt":   time.Now(),
		"createdBy":   actingCode,
		"updatedAt":   time.Now(),
		"updatedBy":   actingCode,
	}
	if err := insertDoc(c, PatientCollection, patient); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("email-taken", "email or nic is already registered to another patient")
		}
		log.Println("Error inserting patient:", err)
		return nil, err
	}

	key := PatientKey + code
	if err := cachePut(c, key, patient); err != nil {
		log.Println("Failed caching new patient:", err)
	}
	return patient, nil
}

/*
* Staff roles read any patient, a patient reads only their own record
 */
func patientReadAccess(c *gin.Context, patient map[string]interface{}) error {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	switch actingRole {
	case role.Admin, role.Receptionist, role.Doctor, role.Nurse:
		return nil
	case role.Patient:
		if patientOwnedBy(c, patient, actingCode) {
			return nil
		}
	}
	return httperr.Forbidden("no-access", "you do not have access to this patient")
}

func FetchPatientByCode(c *gin.Context, patientId string) (map[string]interface{}, error) {
	key := PatientKey + patientId
	cached := make(map[string]interface{})
	if exists, err := cacheFetch(c, key, &cached); err == nil && exists {
		if err := patientReadAccess(c, cached); err != nil {
			return nil, err
		}
		return cached, nil
	}

	patient, err := findDoc(c, PatientCollection, bson.M{"code": patientId})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("patient-missing", "no patient found for this id")
		}
		log.Println("Error fetching patient:", err)
		return nil, err
	}
	if err := patientReadAccess(c, patient); err != nil {
		return nil, err
	}
	if err := cachePut(c, key, patient); err != nil {
		log.Println("Error from setCache:", err)
	}
	return patient, nil
}

func FetchAllPatients(c *gin.Context) ([]interface{}, error) {
	actingRole := c.GetString("collection")
	switch actingRole {
	case role.Admin, role.Receptionist, role.Doctor, role.Nurse:
	default:
		return nil, httperr.Forbidden("no-access", "you do not have access to list patients")
	}
	patients, err := findDocs(c, PatientCollection, bson.M{"isActive": true})
	if err != nil {
		log.Println("Error from findAll:", err)
		return nil, err
	}
	return patients, nil
}

var patientWritableFields = []string{
	"name", "email", "nic", "phoneNo", "dob", "gender", "bloodType",
	"allergies", "medications", "insurance",
}

/*
* Owning patient or staff may update, everyone else is refused
* Uniqueness re-checked when email or nic change
 */
func UpdatePatientByCode(c *gin.Context, patientId string, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")

	filter := bson.M{"code": patientId}
	patient, err := findDoc(c, PatientCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("patient-missing", "no patient found for this id")
		}
		log.Println("Error fetching patient for update:", err)
		return nil, err
	}

	switch actingRole {
	case role.Admin, role.Receptionist:
	case role.Patient:
		if !patientOwnedBy(c, patient, actingCode) {
			return nil, httperr.Forbidden("no-access", "you do not have access to this patient")
		}
	default:
		return nil, httperr.Forbidden("no-access", "you do not have access to this patient")
	}

	updates := map[string]interface{}{}
	for _, f := range patientWritableFields {
		if v, exists := data[f]; exists {
			updates[f] = v
		}
	}
	if len(updates) == 0 {
		return patient, nil
	}
	if raw, exists := updates["email"]; exists {
		email, _ := raw.(string)
		updates["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	if err := checkPatientUniqueness(c, updates, patientId); err != nil {
		return nil, err
	}

	updates["updatedAt"] = time.Now()
	updates["updatedBy"] = actingCode
	if _, err := updateDoc(c, PatientCollection, filter, bson.M{"$set": updates}); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("email-taken", "email or nic is already registered to another patient")
		}
		log.Println("Error from updateOne:", err)
		return nil, err
	}

	updated, err := findDoc(c, PatientCollection, filter)
	if err != nil {
		log.Println("Error fetching patient after update:", err)
		return nil, err
	}
	key := PatientKey + patientId
	if err := cacheDrop(c, key); err != nil {
		log.Println("Failed deleting old patient cache:", err)
	}
	if err := cachePut(c, key, updated); err != nil {
		log.Println("Failed caching updated patient:", err)
	}
	return updated, nil
}

/*
* Soft delete only, the record stays retrievable by id
 */
func DeletePatient(c *gin.Context, patientId string) (string, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin && actingRole != role.Receptionist {
		return "", httperr.Forbidden("no-access", "you do not have access to delete patients")
	}

	filter := bson.M{"code": patientId}
	if _, err := findDoc(c, PatientCollection, filter); err != nil {
		if isNotFound(err) {
			return "", httperr.NotFound("patient-missing", "no patient found for this id")
		}
		log.Println("Error from findOne function:", err)
		return "", err
	}

	update := bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now(),
		"updatedBy": actingCode,
	}}
	if _, err := updateDoc(c, PatientCollection, filter, update); err != nil {
		log.Println("Error from updateOne:", err)
		return "", err
	}
	if err := cacheDrop(c, PatientKey+patientId); err != nil {
		log.Println("Error from deletedCache:", err)
	}
	return "Deleted successfully", nil
}
