package services

import (
	"log"

	"MediHub360/httperr"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

/*
* Roles are fixed and seeded at boot, the API only reads them
 */
func FetchAllRoles(c *gin.Context) ([]interface{}, error) {
	roles, err := findDocs(c, RoleCollection, bson.M{})
	if err != nil {
		log.Println("Error from findAll:", err)
		return nil, err
	}
	return roles, nil
}

func FetchRoleByCode(c *gin.Context, roleCode string) (map[string]interface{}, error) {
	roleDoc, err := findDoc(c, RoleCollection, bson.M{"roleCode": roleCode})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("role-missing", "no role found for this code")
		}
		log.Println("Error fetching role:", err)
		return nil, err
	}
	return roleDoc, nil
}
