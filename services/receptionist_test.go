package services

import (
	"net/http"
	"testing"

	"MediHub360/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receptionistPayload(userId, employeeId string) map[string]interface{} {
	return map[string]interface{}{
		"userId":     userId,
		"name":       "Nadee Fernando",
		"email":      "Nadee@Mail.Test",
		"employeeId": employeeId,
	}
}

func TestCreateReceptionistEmployeeIdFormat(t *testing.T) {
	ms := newMemStore(t)
	seedUser(ms, "U-1", "u1@mail.test", role.Receptionist)
	c := testContext("U-A", role.Admin)

	for _, bad := range []string{"REC-25-0042", "rec-2025-0042", "REC-2025-42", "EMP-2025-0042"} {
		_, err := CreateReceptionist(c, receptionistPayload("U-1", bad))
		assertHTTPError(t, err, http.StatusBadRequest, "invalid-employee-id")
	}

	created, err := CreateReceptionist(c, receptionistPayload("U-1", "REC-2025-0042"))
	require.NoError(t, err)
	assert.Equal(t, "REC-2025-0042", created["employeeId"])
	assert.Equal(t, "nadee@mail.test", created["email"])
}

func TestCreateReceptionistUniqueness(t *testing.T) {
	ms := newMemStore(t)
	seedUser(ms, "U-1", "u1@mail.test", role.Receptionist)
	seedUser(ms, "U-2", "u2@mail.test", role.Receptionist)
	c := testContext("U-A", role.Admin)

	_, err := CreateReceptionist(c, receptionistPayload("U-1", "REC-2025-0001"))
	require.NoError(t, err)

	_, err = CreateReceptionist(c, receptionistPayload("U-1", "REC-2025-0002"))
	assertHTTPError(t, err, http.StatusConflict, "profile-exists")

	_, err = CreateReceptionist(c, receptionistPayload("U-2", "REC-2025-0001"))
	assertHTTPError(t, err, http.StatusConflict, "employee-id-taken")

	_, err = CreateReceptionist(testContext("U-R", role.Receptionist), receptionistPayload("U-2", "REC-2025-0003"))
	assertHTTPError(t, err, http.StatusForbidden, "no-access")
}

func TestUpdateReceptionistEmployeeId(t *testing.T) {
	ms := newMemStore(t)
	ms.add(ReceptionistCollection, map[string]interface{}{
		"code": "R-1", "user": "U-1", "employeeId": "REC-2025-0001", "isActive": true,
	})
	ms.add(ReceptionistCollection, map[string]interface{}{
		"code": "R-2", "user": "U-2", "employeeId": "REC-2025-0002", "isActive": true,
	})
	c := testContext("U-A", role.Admin)

	_, err := UpdateReceptionistByCode(c, "R-1", map[string]interface{}{"employeeId": "REC-0001"})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid-employee-id")

	_, err = UpdateReceptionistByCode(c, "R-1", map[string]interface{}{"employeeId": "REC-2025-0002"})
	assertHTTPError(t, err, http.StatusConflict, "employee-id-taken")

	// re-asserting your own id is not a conflict
	updated, err := UpdateReceptionistByCode(c, "R-1", map[string]interface{}{"employeeId": "REC-2025-0001"})
	require.NoError(t, err)
	assert.Equal(t, "REC-2025-0001", updated["employeeId"])

	updated, err = UpdateReceptionistByCode(c, "R-1", map[string]interface{}{"employeeId": "REC-2026-0007"})
	require.NoError(t, err)
	assert.Equal(t, "REC-2026-0007", updated["employeeId"])
}

func TestReceptionistListingAdminOnly(t *testing.T) {
	ms := newMemStore(t)
	ms.add(ReceptionistCollection, map[string]interface{}{
		"code": "R-1", "user": "U-1", "employeeId": "REC-2025-0001", "isActive": true,
	})

	listed, err := FetchAllReceptionists(testContext("U-A", role.Admin))
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = FetchAllReceptionists(testContext("U-9", role.Doctor))
	assertHTTPError(t, err, http.StatusForbidden, "no-access")
}

func TestDeleteReceptionistSoft(t *testing.T) {
	ms := newMemStore(t)
	ms.add(ReceptionistCollection, map[string]interface{}{
		"code": "R-1", "user": "U-1", "employeeId": "REC-2025-0001", "isActive": true,
	})
	c := testContext("U-A", role.Admin)

	msg, err := DeleteReceptionist(c, "R-1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted successfully", msg)
	assert.Equal(t, false, ms.get(t, ReceptionistCollection, "R-1")["isActive"])
}
