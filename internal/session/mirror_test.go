package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/models"
)

func newTestMirror(t *testing.T, store Store) *Mirror {
	t.Helper()
	m, err := NewMirror(store, []byte("test-hash-key"), nil)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return m
}

func TestMirrorSaveRestoreSingleKey(t *testing.T) {
	store := NewMemoryStore()
	m := newTestMirror(t, store)

	require.NoError(t, m.Save(Record{Role: models.RoleInstructor, IDNumber: "I-100", FullName: "Jane Doe"}))
	assert.Equal(t, 1, store.Len())

	rec, err := m.Restore()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, SchemaVersion, rec.Version)
	assert.Equal(t, models.RoleInstructor, rec.Role)
	assert.Equal(t, "I-100", rec.IDNumber)
	assert.Equal(t, "Jane Doe", rec.FullName)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), rec.SavedAt)
}

func TestMirrorRejectsIncompleteRecord(t *testing.T) {
	m := newTestMirror(t, NewMemoryStore())
	assert.Error(t, m.Save(Record{Role: models.RoleStudent, IDNumber: "S-1"}))
	assert.Error(t, m.Save(Record{}))
	assert.NoError(t, m.Save(Record{Role: models.RoleAdmin}))
}

func TestMirrorTamperedRecordIsLoggedOut(t *testing.T) {
	store := NewMemoryStore()
	m := newTestMirror(t, store)
	require.NoError(t, m.Save(Record{Role: models.RoleAdmin}))

	raw, _, _ := store.Get(RecordKey)
	require.NoError(t, store.Set(RecordKey, raw[:len(raw)-4]+"AAAA"))

	rec, err := m.Restore()
	require.NoError(t, err)
	assert.Nil(t, rec)

	other, err := NewMirror(store, []byte("different-key"), nil)
	require.NoError(t, err)
	require.NoError(t, m.Save(Record{Role: models.RoleAdmin}))
	rec, err = other.Restore()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMirrorRestoresLegacyKeys(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("userType", "student"))
	require.NoError(t, store.Set("studentId", "S-200"))
	require.NoError(t, store.Set("studentName", "Sam Cruz"))

	rec, err := newTestMirror(t, store).Restore()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.RoleStudent, rec.Role)
	assert.Equal(t, "S-200", rec.IDNumber)
	assert.Equal(t, "Sam Cruz", rec.FullName)
}

func TestMirrorPartialLegacyKeysAreLoggedOut(t *testing.T) {
	cases := map[string]map[string]string{
		"missing name":     {"userType": "instructor", "instructorId": "I-1"},
		"missing id":       {"userType": "instructor", "instructorName": "Jane"},
		"missing type":     {"studentId": "S-1", "studentName": "Sam"},
		"mismatched role":  {"userType": "student", "instructorId": "I-1", "instructorName": "Jane"},
		"unknown userType": {"userType": "guest", "studentId": "S-1", "studentName": "Sam"},
		"empty value":      {"userType": "student", "studentId": "", "studentName": "Sam"},
	}
	for name, keys := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			for k, v := range keys {
				require.NoError(t, store.Set(k, v))
			}
			rec, err := newTestMirror(t, store).Restore()
			require.NoError(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestMirrorClearRemovesEverything(t *testing.T) {
	store := NewMemoryStore()
	m := newTestMirror(t, store)
	for _, k := range legacyKeys {
		require.NoError(t, store.Set(k, "x"))
	}
	require.NoError(t, m.Save(Record{Role: models.RoleAdmin}))

	require.NoError(t, m.Clear())
	assert.Equal(t, 0, store.Len())

	rec, err := m.Restore()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestNewMirrorRequiresKey(t *testing.T) {
	_, err := NewMirror(NewMemoryStore(), nil, nil)
	assert.ErrorIs(t, err, ErrNoHashKey)
}
