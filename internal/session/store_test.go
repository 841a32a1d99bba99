package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/models"
)

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, first.Set("a", "1"))
	require.NoError(t, first.Set("b", "2"))

	second, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	v, ok, err := second.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, second.Delete("a", "b"))
	_, err = os.Stat(filepath.Join(dir, fileName))
	assert.True(t, os.IsNotExist(err))

	_, ok, err = first.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{truncated"), 0o600))
	store, err := NewFileStore(dir, nil)
	require.NoError(t, err)
	m := newTestMirror(t, store)

	rec, err := m.Restore()
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, m.Save(Record{Role: models.RoleInstructor, IDNumber: "I-1", FullName: "Jane Doe"}))
	rec, err = newTestMirror(t, store).Restore()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "I-1", rec.IDNumber)

	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{truncated"), 0o600))
	require.NoError(t, m.Clear())
	_, err = os.Stat(filepath.Join(dir, fileName))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreBackedMirror(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)
	m := newTestMirror(t, store)

	require.NoError(t, m.Save(Record{Role: models.RoleStudent, IDNumber: "S-1", FullName: "Sam"}))
	rec, err := m.Restore()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "S-1", rec.IDNumber)
}

func TestStateApplyAndReset(t *testing.T) {
	var s State
	assert.False(t, s.Snapshot().LoggedIn())

	s.Apply(&Record{Role: models.RoleAdmin, Token: "tok"})
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "tok", s.Snapshot().Token)

	s.Apply(&Record{Role: models.RoleStudent, IDNumber: "S-1", FullName: "Sam"})
	snap := s.Snapshot()
	assert.False(t, s.IsAdmin())
	assert.Equal(t, models.Identity{IDNumber: "S-1", FullName: "Sam"}, snap.Identity)

	s.Apply(nil)
	assert.False(t, s.Snapshot().LoggedIn())
}
