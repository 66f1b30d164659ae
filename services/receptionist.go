package services

import (
	"log"
	"regexp"
	"strings"
	"time"

	"MediHub360/httperr"
	"MediHub360/role"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// Employee ids look like REC-2025-0042.
var employeeIdPattern = regexp.MustCompile(`^REC-\d{4}-\d{4}$`)

func validateReceptionistInput(data map[string]interface{}) error {
	missing := []string{}
	for _, f := range []string{"userId", "name", "email", "employeeId"} {
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
	if !employeeIdPattern.MatchString(data["employeeId"].(string)) {
		return httperr.BadRequest("invalid-employee-id", "employeeId must match REC-YYYY-NNNN")
	}
	return nil
}

/*
* One receptionist profile per user and globally unique employee ids
 */
func CreateReceptionist(c *gin.Context, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return nil, httperr.Forbidden("no-access", "only administrators can register receptionists")
	}

	if err := validateReceptionistInput(data); err != nil {
		return nil, err
	}
	userId := data["userId"].(string)
	employeeId := data["employeeId"].(string)

	if _, err := findDoc(c, UserCollection, bson.M{"code": userId}); err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("user-missing", "no user found for userId")
		}
		log.Println("Error resolving user for receptionist:", err)
		return nil, err
	}
	if _, err := findDoc(c, ReceptionistCollection, bson.M{"user": userId}); err == nil {
		return nil, httperr.Conflict("profile-exists", "a receptionist profile already exists for this user")
	} else if !isNotFound(err) {
		log.Println("Error checking for existing receptionist:", err)
		return nil, err
	}
	if _, err := findDoc(c, ReceptionistCollection, bson.M{"employeeId": employeeId}); err == nil {
		return nil, httperr.Conflict("employee-id-taken", "this employeeId is already registered")
	} else if !isNotFound(err) {
		log.Println("Error checking employeeId uniqueness:", err)
		return nil, err
	}

	code, err := generateCode(ReceptionistCollection)
	if err != nil {
		log.Println("Error generating receptionist code:", err)
		return nil, err
	}

	receptionist := map[string]interface{}{
		"code":       code,
		"user":       userId,
		"name":       data["name"],
		"email":      strings.ToLower(data["email"].(string)),
		"employeeId": employeeId,
		"isActive":   true,
		"createdAt":  time.Now(),
		"createdBy":  actingCode,
		"updatedAt":  time.Now(),
		"updatedBy":  actingCode,
	}
	if err := insertDoc(c, ReceptionistCollection, receptionist); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("employee-id-taken", "user or employeeId is already registered")
		}
		log.Println("Error inserting receptionist:", err)
		return nil, err
	}

	key := ReceptionistKey + code
	if err := cachePut(c, key, receptionist); err != nil {
		log.Println("Failed caching new receptionist:", err)
	}
	return receptionist, nil
}

func FetchReceptionistByCode(c *gin.Context, receptionistId string) (map[string]interface{}, error) {
	key := ReceptionistKey + receptionistId
	cached := make(map[string]interface{})
	if exists, err := cacheFetch(c, key, &cached); err == nil && exists {
		return cached, nil
	}

	receptionist, err := findDoc(c, ReceptionistCollection, bson.M{"code": receptionistId})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("receptionist-missing", "no receptionist found for this id")
		}
		log.Println("Error fetching receptionist:", err)
		return nil, err
	}
	if err := cachePut(c, key, receptionist); err != nil {
		log.Println("Error from setCache:", err)
	}
	return receptionist, nil
}

func FetchAllReceptionists(c *gin.Context) ([]interface{}, error) {
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return nil, httperr.Forbidden("no-access", "only administrators can list receptionists")
	}
	receptionists, err := findDocs(c, ReceptionistCollection, bson.M{"isActive": true})
	if err != nil {
		log.Println("Error from findAll:", err)
		return nil, err
	}
	return receptionists, nil
}

/*
* employeeId changes re-validate the pattern and global uniqueness
 */
func UpdateReceptionistByCode(c *gin.Context, receptionistId string, data map[string]interface{}) (map[string]interface{}, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return nil, httperr.Forbidden("no-access", "only administrators can update receptionists")
	}

	filter := bson.M{"code": receptionistId}
	receptionist, err := findDoc(c, ReceptionistCollection, filter)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("receptionist-missing", "no receptionist found for this id")
		}
		log.Println("Error fetching receptionist for update:", err)
		return nil, err
	}

	updates := map[string]interface{}{}
	for _, f := range []string{"name", "email", "employeeId"} {
		if v, exists := data[f]; exists {
			updates[f] = v
		}
	}
	if len(updates) == 0 {
		return receptionist, nil
	}

	if raw, exists := updates["employeeId"]; exists {
		employeeId, _ := raw.(string)
		employeeId = strings.TrimSpace(employeeId)
		if !employeeIdPattern.MatchString(employeeId) {
			return nil, httperr.BadRequest("invalid-employee-id", "employeeId must match REC-YYYY-NNNN")
		}
		conflictFilter := bson.M{
			"employeeId": employeeId,
			"code":       bson.M{"$ne": receptionistId},
		}
		if _, err := findDoc(c, ReceptionistCollection, conflictFilter); err == nil {
			return nil, httperr.Conflict("employee-id-taken", "this employeeId is already registered")
		} else if !isNotFound(err) {
			log.Println("Error checking employeeId uniqueness:", err)
			return nil, err
		}
		updates["employeeId"] = employeeId
	}

	updates["updatedAt"] = time.Now()
	updates["updatedBy"] = actingCode
	if _, err := updateDoc(c, ReceptionistCollection, filter, bson.M{"$set": updates}); err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("employee-id-taken", "this employeeId is already registered")
		}
		log.Println("Error from updateOne:", err)
		return nil, err
	}

	updated, err := findDoc(c, ReceptionistCollection, filter)
	if err != nil {
		log.Println("Error fetching receptionist after update:", err)
		return nil, err
	}
	key := ReceptionistKey + receptionistId
	if err := cacheDrop(c, key); err != nil {
		log.Println("Failed deleting old receptionist cache:", err)
	}
	if err := cachePut(c, key, updated); err != nil {
		log.Println("Failed caching updated receptionist:", err)
	}
	return updated, nil
}

func DeleteReceptionist(c *gin.Context, receptionistId string) (string, error) {
	actingCode := c.GetString("code")
	actingRole := c.GetString("collection")
	if actingRole != role.Admin {
		return "", httperr.Forbidden("no-access", "only administrators can delete receptionists")
	}

	filter := bson.M{"code": receptionistId}
	if _, err := findDoc(c, ReceptionistCollection, filter); err != nil {
		if isNotFound(err) {
			return "", httperr.NotFound("receptionist-missing", "no receptionist found for this id")
		}
		log.Println("Error from findOne function:", err)
		return "", err
	}

	update := bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now(),
		"updatedBy": actingCode,
	}}
	if _, err := updateDoc(c, ReceptionistCollection, filter, update); err != nil {
		log.Println("Error from updateOne:", err)
		return "", err
	}
	if err := cacheDrop(c, ReceptionistKey+receptionistId); err != nil {
		log.Println("Error from deletedCache:", err)
	}
	return "Deleted successfully", nil
}
