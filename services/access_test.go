package services

import (
	"context"
	"testing"

	"MediHub360/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAppointmentAccessRoleMatrix(t *testing.T) {
	ms := newMemStore(t)
	seedPatient(ms, "P-1", "U-1", "p1@mail.test")
	seedDoctor(ms, "D-1", "U-9")
	appointment := map[string]interface{}{
		"code":       "A-1",
		"patientId":  "P-1",
		"doctorId":   "D-1",
		"pharmacist": "U-PH",
	}
	ctx := context.Background()

	cases := []struct {
		name     string
		userCode string
		roleName string
		allowed  bool
	}{
		{"admin always", "U-anyone", role.Admin, true},
		{"receptionist always", "U-anyone", role.Receptionist, true},
		{"treating doctor", "U-9", role.Doctor, true},
		{"other doctor", "U-other", role.Doctor, false},
		{"owning patient", "U-1", role.Patient, true},
		{"other patient", "U-2", role.Patient, false},
		{"assigned pharmacist", "U-PH", role.Pharmacist, true},
		{"other pharmacist", "U-other", role.Pharmacist, false},
		{"nurse", "U-N", role.Nurse, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckAppointmentAccess(ctx, tc.userCode, tc.roleName, appointment)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assertHTTPError(t, err, 403, "no-access")
			}
		})
	}
}

func TestPatientOwnershipResolvers(t *testing.T) {
	ms := newMemStore(t)
	ctx := context.Background()

	// legacy row with no user reference, linked through createdBy
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-L", "createdBy": "U-L", "email": "legacy@mail.test", "isActive": true,
	})
	appointment := map[string]interface{}{"patientId": "P-L"}
	assert.NoError(t, CheckAppointmentAccess(ctx, "U-L", role.Patient, appointment))

	// oldest rows resolve by matching the account email, case-insensitively
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-E", "email": "Shared@Mail.test", "isActive": true,
	})
	ms.add(UserCollection, map[string]interface{}{
		"code": "U-E", "email": "shared@mail.test",
	})
	appointment = map[string]interface{}{"patientId": "P-E"}
	assert.NoError(t, CheckAppointmentAccess(ctx, "U-E", role.Patient, appointment))
	assertHTTPError(t, CheckAppointmentAccess(ctx, "U-L", role.Patient, appointment), 403, "no-access")
}

func TestResolveActingPatient(t *testing.T) {
	ms := newMemStore(t)
	ctx := context.Background()

	_, err := resolveActingPatient(ctx, "U-1")
	assertHTTPError(t, err, 404, "profile-missing")

	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-C", "createdBy": "U-1", "isActive": true,
	})
	patient, err := resolveActingPatient(ctx, "U-1")
	require.NoError(t, err)
	assert.Equal(t, "P-C", patient["code"])

	// the user reference wins over the createdBy linkage
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-U", "user": "U-1", "isActive": true,
	})
	patient, err = resolveActingPatient(ctx, "U-1")
	require.NoError(t, err)
	assert.Equal(t, "P-U", patient["code"])

	// deactivated profiles never resolve
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-D", "user": "U-2", "isActive": false,
	})
	_, err = resolveActingPatient(ctx, "U-2")
	assertHTTPError(t, err, 404, "profile-missing")
}
