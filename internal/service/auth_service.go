package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

type credentialChecker interface {
	Authenticate(ctx context.Context, idNumber, password string) (*models.Account, error)
}

// AuthConfig defines token and admin credential settings.
type AuthConfig struct {
	Secret        string
	Expiry        time.Duration
	Issuer        string
	AdminID       string
	AdminPassword string
}

// AuthService issues and validates tokens for the three roles.
type AuthService struct {
	accounts  map[models.Role]credentialChecker
	events    userEventRecorder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService. events and metrics may be nil.
func NewAuthService(instructors, students credentialChecker, events userEventRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiry <= 0 {
		config.Expiry = 12 * time.Hour
	}
	return &AuthService{
		accounts: map[models.Role]credentialChecker{
			models.RoleInstructor: instructors,
			models.RoleStudent:    students,
		},
		events:    events,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// CheckAdminCredentials compares the pair against the configured admin.
func (s *AuthService) CheckAdminCredentials(id, password string) bool {
	if s.config.AdminID == "" || s.config.AdminPassword == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(s.config.AdminID)) == 1
	pwOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) == 1
	return idOK && pwOK
}

// AdminLogin exchanges the admin credential pair for a bearer token.
func (s *AuthService) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "adminId and password are required")
	}
	if !s.CheckAdminCredentials(req.AdminID, req.Password) {
		s.metrics.RecordLogin(models.RoleAdmin, false)
		s.logger.Warn("admin login rejected", zap.String("admin_id", req.AdminID))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	}
	token, expiresAt, err := s.issueToken(models.RoleAdmin, req.AdminID, "Administrator")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	s.metrics.RecordLogin(models.RoleAdmin, true)
	return &models.AdminLoginResponse{Success: true, Token: token, ExpiresAt: expiresAt}, nil
}

// Login verifies an instructor or student and records the attempt.
func (s *AuthService) Login(ctx context.Context, role models.Role, idNumber, password, ip string) (*models.LoginResponse, error) {
	checker, ok := s.accounts[role]
	if !ok || checker == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported role")
	}
	idNumber = strings.TrimSpace(idNumber)
	if idNumber == "" || password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ID and password are required")
	}

	account, err := checker.Authenticate(ctx, idNumber, password)
	if err != nil {
		s.metrics.RecordLogin(role, false)
		if appErrors.FromError(err).Code != appErrors.ErrInvalidCredentials.Code {
			return nil, err
		}
		s.record(ctx, models.UserLog{Role: role, Action: models.ActionFailedLogin, AttemptedID: &idNumber, IPAddress: ip})
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	}

	token, _, err := s.issueToken(role, account.IDNumber, account.FullName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	s.metrics.RecordLogin(role, true)
	s.record(ctx, models.UserLog{Role: role, Action: models.ActionLogin, UserID: &account.IDNumber, IPAddress: ip})

	identity := &models.Identity{IDNumber: account.IDNumber, FullName: account.FullName}
	res := &models.LoginResponse{Success: true, Message: "Login successful", Token: token}
	if role == models.RoleInstructor {
		res.Instructor = identity
	} else {
		res.Student = identity
	}
	return res, nil
}

// Logout records the end of an instructor or student session.
func (s *AuthService) Logout(ctx context.Context, role models.Role, idNumber, ip string) error {
	idNumber = strings.TrimSpace(idNumber)
	if idNumber == "" {
		return appErrors.Clone(appErrors.ErrValidation, "ID is required")
	}
	s.record(ctx, models.UserLog{Role: role, Action: models.ActionLogout, UserID: &idNumber, IPAddress: ip})
	return nil
}

// ValidateToken parses and validates an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueToken(role models.Role, idNumber, fullName string) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.config.Expiry)
	claims := models.Claims{
		Role:     role,
		IDNumber: idNumber,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   idNumber,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *AuthService) record(ctx context.Context, entry models.UserLog) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record user event", zap.String("action", string(entry.Action)), zap.Error(err))
	}
}
