package services

import (
	"context"
	"log"
	"strings"

	"MediHub360/httperr"
	"MediHub360/role"

	"go.mongodb.org/mongo-driver/bson"
)

var errNoAccess = httperr.Forbidden("no-access", "you do not have access to this appointment")

/*
* ADMIN and RECEPTIONIST always pass
* DOCTOR passes when the appointment's doctor profile belongs to the caller
* PHARMACIST passes when the appointment's pharmacist field is the caller
* PATIENT passes when any ownership resolver links the patient to the caller
* Everyone else is denied
 */
func CheckAppointmentAccess(ctx context.Context, userCode, roleName string, appointment map[string]interface{}) error {
	switch roleName {
	case role.Admin, role.Receptionist:
		return nil

	case role.Doctor:
		doctorId, _ := appointment["doctorId"].(string)
		if doctorId == "" {
			return errNoAccess
		}
		doctor, err := findDoc(ctx, DoctorCollection, bson.M{"code": doctorId})
		if err != nil {
			if isNotFound(err) {
				return errNoAccess
			}
			log.Println("Error resolving doctor for access check:", err)
			return err
		}
		if owner, _ := doctor["user"].(string); owner != "" && owner == userCode {
			return nil
		}
		return errNoAccess

	case role.Pharmacist:
		if pharmacist, _ := appointment["pharmacist"].(string); pharmacist != "" && pharmacist == userCode {
			return nil
		}
		return errNoAccess

	case role.Patient:
		patientId, _ := appointment["patientId"].(string)
		if patientId == "" {
			return errNoAccess
		}
		patient, err := findDoc(ctx, PatientCollection, bson.M{"code": patientId})
		if err != nil {
			if isNotFound(err) {
				return errNoAccess
			}
			log.Println("Error resolving patient for access check:", err)
			return err
		}
		if patientOwnedBy(ctx, patient, userCode) {
			return nil
		}
		return errNoAccess
	}
	return errNoAccess
}

/*
* Ordered ownership resolvers, first match wins
* 1. the user reference added after the linkage migration
* 2. the legacy createdBy linkage
* 3. the email fallback for rows that predate both
 */
func patientOwnedBy(ctx context.Context, patient map[string]interface{}, userCode string) bool {
	if ref, _ := patient["user"].(string); ref != "" && ref == userCode {
		return true
	}
	if createdBy, _ := patient["createdBy"].(string); createdBy != "" && createdBy == userCode {
		return true
	}
	patientEmail, _ := patient["email"].(string)
	if patientEmail == "" {
		return false
	}
	user, err := findDoc(ctx, UserCollection, bson.M{"code": userCode})
	if err != nil {
		return false
	}
	userEmail, _ := user["email"].(string)
	return userEmail != "" && strings.EqualFold(userEmail, patientEmail)
}

/*
* Resolve the acting user's own patient profile
* Checks the user reference first, then the legacy createdBy linkage
 */
func resolveActingPatient(ctx context.Context, userCode string) (map[string]interface{}, error) {
	patient, err := findDoc(ctx, PatientCollection, bson.M{"user": userCode, "isActive": true})
	if err == nil {
		return patient, nil
	}
	if !isNotFound(err) {
		log.Println("Error resolving patient by user reference:", err)
		return nil, err
	}
	patient, err = findDoc(ctx, PatientCollection, bson.M{"createdBy": userCode, "isActive": true})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("profile-missing", "complete patient onboarding before booking")
		}
		log.Println("Error resolving patient by createdBy:", err)
		return nil, err
	}
	return patient, nil
}
