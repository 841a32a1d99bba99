package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
)

const (
	msgConnectivity = "Cannot connect to server. Please check your network connection."
	msgFetch        = "Failed to fetch accounts"
	msgDelete       = "Failed to delete"
	msgCreate       = "Failed to create account"
	msgRequired     = "Please fill in all fields"
)

// Default profile fields applied on signup.
const (
	DefaultCourse     = "BSIT"
	DefaultYear       = "1"
	DefaultSection    = "A"
	DefaultDepartment = "IT"
)

// Backend is the account API used by the Users screen.
type Backend interface {
	Ping(ctx context.Context) error
	ListAccounts(ctx context.Context, role models.Role) ([]models.Account, error)
	CreateAccount(ctx context.Context, role models.Role, req models.CreateAccountRequest) (*models.Account, error)
	UpdateAccount(ctx context.Context, role models.Role, id string, req models.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(ctx context.Context, role models.Role, id string) error
}

// Entry is one row of the merged account list.
type Entry struct {
	ID       string      `json:"_id"`
	IDNumber string      `json:"idNumber"`
	Name     string      `json:"name"`
	Type     models.Role `json:"type"`
}

// TypeLabel is "Student" or "Instructor".
func (e Entry) TypeLabel() string {
	return e.Type.Label()
}

// Error is a user-facing failure from a roster action.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

type serverMessager interface {
	ServerMessage() string
}

func serverMessage(err error) string {
	var sm serverMessager
	if errors.As(err, &sm) {
		return sm.ServerMessage()
	}
	return ""
}

// Roster holds the merged student and instructor list.
type Roster struct {
	backend Backend
	logger  *zap.Logger
	entries []Entry
}

// New builds a roster.
func New(backend Backend, logger *zap.Logger) *Roster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roster{backend: backend, logger: logger}
}

// Entries returns the last loaded list.
func (r *Roster) Entries() []Entry {
	return r.entries
}

// Load fetches students, then instructors, and merges them with students first.
func (r *Roster) Load(ctx context.Context) ([]Entry, error) {
	merged := make([]Entry, 0)
	for _, role := range []models.Role{models.RoleStudent, models.RoleInstructor} {
		accounts, err := r.backend.ListAccounts(ctx, role)
		if err != nil {
			r.logger.Warn("account list failed", zap.String("role", string(role)), zap.Error(err))
			return nil, &Error{Message: msgFetch, Err: err}
		}
		for _, a := range accounts {
			merged = append(merged, Entry{ID: a.ID, IDNumber: a.IDNumber, Name: a.FullName, Type: role})
		}
	}
	r.entries = merged
	return merged, nil
}

// Filter keeps entries whose idNumber, name or type contains query, ignoring case.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.IDNumber), q) ||
			strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.TypeLabel()), q) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the loaded entry with the given _id.
func (r *Roster) Find(id string) (Entry, bool) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Update changes idNumber and full name, then reloads.
func (r *Roster) Update(ctx context.Context, e Entry, idNumber, fullName string) error {
	_, err := r.backend.UpdateAccount(ctx, e.Type, e.ID, models.UpdateAccountRequest{IDNumber: idNumber, FullName: fullName})
	if err != nil {
		msg := serverMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		return &Error{Message: "Failed to update account: " + msg, Err: err}
	}
	if _, err := r.Load(ctx); err != nil {
		r.logger.Warn("account reload failed after update", zap.Error(err))
	}
	return nil
}

// Delete removes an account by _id, then reloads.
func (r *Roster) Delete(ctx context.Context, e Entry) error {
	if err := r.backend.DeleteAccount(ctx, e.Type, e.ID); err != nil {
		return &Error{Message: msgDelete, Err: err}
	}
	if _, err := r.Load(ctx); err != nil {
		r.logger.Warn("account reload failed after delete", zap.Error(err))
	}
	return nil
}

// SignupRequest is the admin signup form.
type SignupRequest struct {
	Role       models.Role
	IDNumber   string
	FullName   string
	Password   string
	Course     string
	Year       string
	Section    string
	Department string
}

// Signup checks the server is reachable, then creates the account with
// role defaults for any profile field left empty.
func (r *Roster) Signup(ctx context.Context, req SignupRequest) (*models.Account, error) {
	if req.IDNumber == "" || req.FullName == "" || req.Password == "" {
		return nil, &Error{Message: msgRequired}
	}
	if req.Role != models.RoleStudent && req.Role != models.RoleInstructor {
		return nil, &Error{Message: fmt.Sprintf("Unsupported account type %q", req.Role)}
	}

	if err := r.backend.Ping(ctx); err != nil {
		r.logger.Warn("connectivity check failed", zap.Error(err))
		return nil, &Error{Message: msgConnectivity, Err: err}
	}

	body := models.CreateAccountRequest{IDNumber: req.IDNumber, FullName: req.FullName, Password: req.Password}
	switch req.Role {
	case models.RoleStudent:
		body.Course = orDefault(req.Course, DefaultCourse)
		body.Year = orDefault(req.Year, DefaultYear)
		body.Section = orDefault(req.Section, DefaultSection)
	case models.RoleInstructor:
		body.Department = orDefault(req.Department, DefaultDepartment)
	}

	account, err := r.backend.CreateAccount(ctx, req.Role, body)
	if err != nil {
		msg := serverMessage(err)
		if msg == "" {
			msg = msgCreate
		}
		return nil, &Error{Message: msg, Err: err}
	}
	return account, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
