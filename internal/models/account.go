package models

import (
	"strings"
	"time"
)

// Role identifies one of the three disjoint account classes.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// ParseRole accepts role names in any case, e.g. "Student" from the Users screen.
func ParseRole(raw string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return r, true
	}
	return "", false
}

// Label is the capitalised form shown in account lists.
func (r Role) Label() string {
	switch r {
	case RoleInstructor:
		return "Instructor"
	case RoleStudent:
		return "Student"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}

// Collection is the document collection and URL segment for the role.
func (r Role) Collection() string {
	return string(r) + "s"
}

// Account is a stored instructor or student. Admins are not stored.
type Account struct {
	ID           string    `json:"_id"`
	IDNumber     string    `json:"idNumber"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Course       string    `json:"course,omitempty"`
	Year         string    `json:"year,omitempty"`
	Section      string    `json:"section,omitempty"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateAccountRequest is the body of POST /api/students and /api/instructors.
type CreateAccountRequest struct {
	IDNumber   string `json:"idNumber" validate:"required"`
	FullName   string `json:"fullName" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Course     string `json:"course,omitempty"`
	Year       string `json:"year,omitempty"`
	Section    string `json:"section,omitempty"`
	Department string `json:"department,omitempty"`
}

// UpdateAccountRequest only touches the identity fields.
type UpdateAccountRequest struct {
	IDNumber string `json:"idNumber" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
}
