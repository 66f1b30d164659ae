package services

import (
	"context"
	"testing"

	"MediHub360/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSyncRoleProfileMovesTheProfile(t *testing.T) {
	ms := newMemStore(t)
	ctx := context.Background()
	ms.add(UserCollection, map[string]interface{}{
		"code": "U-1", "name": "Asha", "email": "asha@mail.test",
	})
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-1", "user": "U-1", "isActive": true,
	})

	require.NoError(t, SyncRoleProfile(ctx, "U-1", role.Patient, role.Doctor))

	// the old profile is gone, a stub exists in the new collection
	assert.Empty(t, ms.collections[PatientCollection])
	require.Len(t, ms.collections[DoctorCollection], 1)
	stub := ms.collections[DoctorCollection][0]
	assert.Equal(t, "U-1", stub["user"])
	assert.Equal(t, "Asha", stub["name"])
	assert.Equal(t, "asha@mail.test", stub["email"])
	assert.Equal(t, "SYSTEM", stub["createdBy"])

	// stubs never pre-claim sparse-indexed identifiers
	_, hasEmployeeId := stub["employeeId"]
	assert.False(t, hasEmployeeId)
	_, hasProfile := stub["profile"]
	assert.False(t, hasProfile)
}

func TestSyncRoleProfileNoOpWhenUnchanged(t *testing.T) {
	ms := newMemStore(t)
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-1", "user": "U-1", "isActive": true,
	})

	require.NoError(t, SyncRoleProfile(context.Background(), "U-1", role.Patient, role.Patient))

	assert.Len(t, ms.collections[PatientCollection], 1)
}

func TestSyncRoleProfileKeepsExistingTarget(t *testing.T) {
	ms := newMemStore(t)
	ms.add(DoctorCollection, map[string]interface{}{
		"code": "D-1", "user": "U-1", "name": "Dr. Existing", "isActive": true,
	})

	require.NoError(t, SyncRoleProfile(context.Background(), "U-1", role.Nurse, role.Doctor))

	require.Len(t, ms.collections[DoctorCollection], 1)
	assert.Equal(t, "Dr. Existing", ms.collections[DoctorCollection][0]["name"])
}

func TestSyncRoleProfileRolesWithoutProfiles(t *testing.T) {
	ms := newMemStore(t)
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-1", "user": "U-1", "isActive": true,
	})

	// moving to ADMIN drops the profile and creates nothing
	require.NoError(t, SyncRoleProfile(context.Background(), "U-1", role.Patient, role.Admin))
	assert.Empty(t, ms.collections[PatientCollection])
	assert.Empty(t, ms.collections[DoctorCollection])
	assert.Empty(t, ms.collections[ReceptionistCollection])
}

func TestSyncRoleProfileConcurrentSyncWins(t *testing.T) {
	ms := newMemStore(t)
	ms.add(UserCollection, map[string]interface{}{
		"code": "U-1", "name": "Asha", "email": "asha@mail.test",
	})
	// the racing sync lands its stub between the existence check and the
	// insert, so the insert loses at the unique index on user
	insertDoc = func(ctx context.Context, collection string, doc map[string]interface{}) error {
		ms.add(PatientCollection, map[string]interface{}{
			"code": "P-RACE", "user": "U-1", "isActive": true,
		})
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}

	err := SyncRoleProfile(context.Background(), "U-1", role.Admin, role.Patient)

	assert.NoError(t, err)
	require.Len(t, ms.collections[PatientCollection], 1)
	assert.Equal(t, "U-1", ms.collections[PatientCollection][0]["user"])
}

func TestSyncRoleProfileForeignCollisionSurfaces(t *testing.T) {
	ms := newMemStore(t)
	ms.add(UserCollection, map[string]interface{}{
		"code": "U-2", "name": "Nimal", "email": "nimal@mail.test",
	})
	// a record belonging to someone else holds the colliding index entry,
	// so swallowing the duplicate would leave U-2 with no profile
	ms.add(PatientCollection, map[string]interface{}{
		"code": "P-X", "user": "U-OTHER", "email": "nimal@mail.test", "isActive": true,
	})
	ms.failInsert = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

	err := SyncRoleProfile(context.Background(), "U-2", role.Admin, role.Patient)

	require.Error(t, err)
	for _, doc := range ms.collections[PatientCollection] {
		assert.NotEqual(t, "U-2", doc["user"])
	}
}
