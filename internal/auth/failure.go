package auth

import (
	"errors"

	"github.com/noah-isme/automated-attendance/internal/apiclient"
)

// Kind classifies a failed login.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvalidCredentials
	KindTimeout
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindTimeout:
		return "timeout"
	case KindUnreachable:
		return "unreachable"
	}
	return "unknown"
}

// User-facing messages. None of them says which account class was tried.
const (
	MessageBlank              = "Please enter both username and password"
	MessageInvalidCredentials = "Invalid credentials. Please check your ID and password."
	MessageTimeout            = "Connection timeout. Please check your internet connection and try again."
	MessageUnreachable        = "Failed to connect to server"
)

// AuthFailure is the single failure a login can produce.
type AuthFailure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *AuthFailure) Error() string { return f.Message }

func (f *AuthFailure) Unwrap() error { return f.Err }

var (
	errNegative  = errors.New("auth: credentials rejected")
	errMalformed = errors.New("auth: affirmative response without identity")
)

// classify maps the error of a remote attempt to a failure.
func classify(err error) *AuthFailure {
	switch {
	case apiclient.IsTimeout(err):
		return &AuthFailure{Kind: KindTimeout, Message: MessageTimeout, Err: err}
	case errors.Is(err, errNegative), apiclient.IsClientError(err):
		return &AuthFailure{Kind: KindInvalidCredentials, Message: MessageInvalidCredentials, Err: err}
	default:
		return &AuthFailure{Kind: KindUnreachable, Message: MessageUnreachable, Err: err}
	}
}
