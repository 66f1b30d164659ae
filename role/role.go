package role

import "time"

// Role names double as roleCode and as the collection name carried in the JWT.
const (
	Admin        = "ADMIN"
	Doctor       = "DOCTOR"
	Patient      = "PATIENT"
	Receptionist = "RECEPTIONIST"
	Nurse        = "NURSE"
	Pharmacist   = "PHARMACIST"
)

const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
)

type Role struct {
	RoleName   string                   `json:"roleName" bson:"roleName"`
	RoleCode   string                   `json:"roleCode" bson:"roleCode"`
	Privileges []map[string]interface{} `json:"privileges" bson:"privileges"`
	CreatedAt  time.Time                `json:"createdAt" bson:"createdAt"`
	CreatedBy  string                   `json:"createdBy" bson:"createdBy"`
	UpdatedAt  time.Time                `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy  string                   `json:"updatedBy" bson:"updatedBy"`
}

var all = []string{Admin, Doctor, Patient, Receptionist, Nurse, Pharmacist}

func IsValid(name string) bool {
	for _, r := range all {
		if r == name {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive || status == StatusSuspended
}

// ProfileCollection maps a role to the collection holding its one-per-user
// profile document. Roles without a profile collection map to "".
func ProfileCollection(name string) string {
	switch name {
	case Doctor:
		return "DOCTOR"
	case Patient:
		return "PATIENT"
	case Receptionist:
		return "RECEPTIONIST"
	default:
		return ""
	}
}

// WritableAppointmentFields lists, per role, the appointment fields that role
// may change through PATCH. Fields outside the set are dropped, not rejected.
var WritableAppointmentFields = map[string][]string{
	Patient: {"reason", "symptoms", "notes"},
	Doctor:  {"diagnosis", "prescription", "notes", "symptoms", "status", "vitalSigns", "followUpDate"},
	Admin: {"appointmentDate", "appointmentTime", "duration", "type", "status",
		"reason", "symptoms", "diagnosis", "prescription", "notes", "doctor", "pharmacist"},
	Receptionist: {"appointmentDate", "appointmentTime", "duration", "type", "status",
		"reason", "symptoms", "diagnosis", "prescription", "notes", "doctor", "pharmacist"},
}

func CanWriteField(roleName, field string) bool {
	for _, f := range WritableAppointmentFields[roleName] {
		if f == field {
			return true
		}
	}
	return false
}

// PrivilegeSeeds are the ROLE documents consumed by the route-level
// authorization middleware. Fine-grained ownership checks live in services.
func PrivilegeSeeds() []Role {
	seed := func(name string, privileges []map[string]interface{}) Role {
		return Role{
			RoleName:   name,
			RoleCode:   name,
			Privileges: privileges,
			CreatedAt:  time.Now(),
			CreatedBy:  "SYSTEM",
			UpdatedAt:  time.Now(),
			UpdatedBy:  "SYSTEM",
		}
	}
	priv := func(module string, access ...string) map[string]interface{} {
		return map[string]interface{}{"module": module, "access": access}
	}
	full := []string{"create", "view", "update", "delete"}

	return []Role{
		seed(Admin, []map[string]interface{}{
			priv("user", full...),
			priv("patient", full...),
			priv("doctor", full...),
			priv("receptionist", full...),
			priv("appointment", full...),
			priv("role", "view"),
		}),
		seed(Receptionist, []map[string]interface{}{
			priv("patient", full...),
			priv("doctor", "view"),
			priv("appointment", full...),
		}),
		seed(Doctor, []map[string]interface{}{
			priv("patient", "view"),
			priv("appointment", "view", "update"),
		}),
		seed(Patient, []map[string]interface{}{
			priv("patient", "create", "view", "update"),
			priv("doctor", "view"),
			priv("appointment", "create", "view", "update", "delete"),
		}),
		seed(Nurse, []map[string]interface{}{
			priv("patient", "view"),
		}),
		seed(Pharmacist, []map[string]interface{}{
			priv("appointment", "view"),
		}),
	}
}
