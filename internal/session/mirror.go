package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
)

// SchemaVersion is the version written into new records.
const SchemaVersion = 1

// RecordKey is the single key the session record lives under.
const RecordKey = "session"

// Keys written by earlier clients, one value per key.
const (
	legacyInstructorID   = "instructorId"
	legacyInstructorName = "instructorName"
	legacyStudentID      = "studentId"
	legacyStudentName    = "studentName"
	legacyUserType       = "userType"
)

var legacyKeys = []string{legacyInstructorID, legacyInstructorName, legacyStudentID, legacyStudentName, legacyUserType}

// ErrNoHashKey is returned when the mirror is built without a signing key.
var ErrNoHashKey = errors.New("session: hash key is required")

// Record is the durable copy of who is logged in.
type Record struct {
	Version  int         `json:"v"`
	Role     models.Role `json:"role"`
	IDNumber string      `json:"idNumber,omitempty"`
	FullName string      `json:"fullName,omitempty"`
	Token    string      `json:"token,omitempty"`
	SavedAt  time.Time   `json:"savedAt"`
}

func (r Record) complete() bool {
	switch r.Role {
	case models.RoleAdmin:
		return true
	case models.RoleInstructor, models.RoleStudent:
		return r.IDNumber != "" && r.FullName != ""
	}
	return false
}

// Mirror reads and writes the session record through a Store. The record is
// signed so a hand-edited file reads as logged out.
type Mirror struct {
	store  Store
	codec  *securecookie.SecureCookie
	logger *zap.Logger
	now    func() time.Time
}

// NewMirror builds a mirror signing records with hashKey.
func NewMirror(store Store, hashKey []byte, logger *zap.Logger) (*Mirror, error) {
	if len(hashKey) == 0 {
		return nil, ErrNoHashKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	codec := securecookie.New(hashKey, nil).
		SetSerializer(securecookie.JSONEncoder{}).
		MaxAge(0).
		MaxLength(0)
	return &Mirror{store: store, codec: codec, logger: logger, now: time.Now}, nil
}

// Save writes the record as one value.
func (m *Mirror) Save(rec Record) error {
	rec.Version = SchemaVersion
	rec.SavedAt = m.now().UTC()
	if !rec.complete() {
		return fmt.Errorf("session: incomplete %s record", rec.Role)
	}
	encoded, err := m.codec.Encode(RecordKey, rec)
	if err != nil {
		return fmt.Errorf("session: encode record: %w", err)
	}
	if err := m.store.Set(RecordKey, encoded); err != nil {
		return fmt.Errorf("session: write record: %w", err)
	}
	return nil
}

// Restore returns the saved session, or nil when logged out. A missing,
// unreadable, unknown-version or partial session counts as logged out.
func (m *Mirror) Restore() (*Record, error) {
	raw, ok, err := m.store.Get(RecordKey)
	if err != nil {
		return nil, fmt.Errorf("session: read record: %w", err)
	}
	if ok {
		var rec Record
		if err := m.codec.Decode(RecordKey, raw, &rec); err != nil {
			m.logger.Warn("discarding unreadable session record", zap.Error(err))
			return nil, nil
		}
		if rec.Version != SchemaVersion || !rec.complete() {
			m.logger.Warn("discarding session record", zap.Int("version", rec.Version), zap.String("role", string(rec.Role)))
			return nil, nil
		}
		return &rec, nil
	}
	return m.restoreLegacy()
}

func (m *Mirror) restoreLegacy() (*Record, error) {
	userType, ok, err := m.store.Get(legacyUserType)
	if err != nil || !ok {
		return nil, err
	}

	var idKey, nameKey string
	role, _ := models.ParseRole(userType)
	switch role {
	case models.RoleInstructor:
		idKey, nameKey = legacyInstructorID, legacyInstructorName
	case models.RoleStudent:
		idKey, nameKey = legacyStudentID, legacyStudentName
	default:
		return nil, nil
	}

	id, okID, err := m.store.Get(idKey)
	if err != nil {
		return nil, err
	}
	name, okName, err := m.store.Get(nameKey)
	if err != nil {
		return nil, err
	}
	rec := Record{Role: role, IDNumber: id, FullName: name}
	if !okID || !okName || !rec.complete() {
		m.logger.Debug("partial legacy session ignored", zap.String("role", string(role)))
		return nil, nil
	}
	return &rec, nil
}

// Clear removes the record and every legacy key in one store call.
func (m *Mirror) Clear() error {
	keys := append([]string{RecordKey}, legacyKeys...)
	if err := m.store.Delete(keys...); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
