package models

import (
	"errors"
	"time"
)

// UserLogAction enumerates the audited account events.
type UserLogAction string

const (
	ActionLogin            UserLogAction = "login"
	ActionLogout           UserLogAction = "logout"
	ActionAttendanceMarked UserLogAction = "attendance_marked"
	ActionProfileUpdated   UserLogAction = "profile_updated"
	ActionFailedLogin      UserLogAction = "failed_login"
)

var (
	errUnknownAction      = errors.New("user log: unknown action")
	errMissingUserID      = errors.New("user log: userId is required")
	errMissingAttemptedID = errors.New("user log: attemptedId is required for failed_login")
)

// UserLog is one row of the user_logs audit table.
type UserLog struct {
	ID          string        `db:"id" json:"id"`
	UserID      *string       `db:"user_id" json:"userId,omitempty"`
	Role        Role          `db:"role" json:"role"`
	Action      UserLogAction `db:"action" json:"action"`
	Details     string        `db:"details" json:"details,omitempty"`
	IPAddress   string        `db:"ip_address" json:"ipAddress,omitempty"`
	AttemptedID *string       `db:"attempted_id" json:"attemptedId,omitempty"`
	Timestamp   time.Time     `db:"timestamp" json:"timestamp"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
}

// Validate enforces the per-action required fields.
func (l UserLog) Validate() error {
	switch l.Action {
	case ActionLogin, ActionLogout, ActionAttendanceMarked, ActionProfileUpdated:
		if l.UserID == nil || *l.UserID == "" {
			return errMissingUserID
		}
	case ActionFailedLogin:
		if l.AttemptedID == nil || *l.AttemptedID == "" {
			return errMissingAttemptedID
		}
	default:
		return errUnknownAction
	}
	return nil
}
