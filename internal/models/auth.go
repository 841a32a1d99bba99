package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// InstructorLoginRequest is the body of POST /api/instructors/login.
type InstructorLoginRequest struct {
	InstructorID string `json:"instructorId" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// StudentLoginRequest is the body of POST /api/students/login.
type StudentLoginRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	AdminID  string `json:"adminId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Identity is the public part of an authenticated account.
type Identity struct {
	IDNumber string `json:"idNumber"`
	FullName string `json:"fullName"`
}

// LoginResponse answers both role logins. Exactly one of Instructor or
// Student is set on success.
type LoginResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message,omitempty"`
	Instructor *Identity `json:"instructor,omitempty"`
	Student    *Identity `json:"student,omitempty"`
	Token      string    `json:"token,omitempty"`
}

// AdminLoginResponse carries the admin bearer token.
type AdminLoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LogoutRequest names the account being logged out; one field is set.
type LogoutRequest struct {
	InstructorID string `json:"instructorId,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
}

// Claims is the JWT payload issued on login.
type Claims struct {
	Role     Role   `json:"role"`
	IDNumber string `json:"idNumber,omitempty"`
	FullName string `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}
