package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

func newTestAuthService(t *testing.T) (*AuthService, *recordedEvents) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	instructors := newMockAccountRepo(models.RoleInstructor, models.Account{ID: "i-1", IDNumber: "I-100", FullName: "Maria Santos", PasswordHash: string(hash)})
	students := newMockAccountRepo(models.RoleStudent, models.Account{ID: "s-1", IDNumber: "S-100", FullName: "Ana Cruz", PasswordHash: string(hash)})
	events := &recordedEvents{}

	svc := NewAuthService(
		NewAccountService(instructors, nil, nil, nil, nil),
		NewAccountService(students, nil, nil, nil, nil),
		events, NewMetricsService(), nil, zap.NewNop(),
		AuthConfig{Secret: "secret", Expiry: time.Hour, Issuer: "test", AdminID: "admin", AdminPassword: "admin123"},
	)
	return svc, events
}

func TestAuthServiceAdminLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	res, err := svc.AdminLogin(context.Background(), models.AdminLoginRequest{AdminID: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "test", claims.Issuer)

	_, err = svc.AdminLogin(context.Background(), models.AdminLoginRequest{AdminID: "admin", Password: "admin"})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	assert.False(t, svc.CheckAdminCredentials("admin ", "admin123"))
}

func TestAuthServiceRoleLogin(t *testing.T) {
	svc, events := newTestAuthService(t)

	res, err := svc.Login(context.Background(), models.RoleInstructor, "I-100", "pw", "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, res.Instructor)
	assert.Nil(t, res.Student)
	assert.Equal(t, "Maria Santos", res.Instructor.FullName)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, claims.Role)
	assert.Equal(t, "I-100", claims.IDNumber)

	// An instructor id is not a student id.
	_, err = svc.Login(context.Background(), models.RoleStudent, "I-100", "pw", "127.0.0.1")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", appErrors.FromError(err).Message)

	assert.Equal(t, []models.UserLogAction{models.ActionLogin, models.ActionFailedLogin}, events.actions())
	require.NotNil(t, events.entries[1].AttemptedID)
	assert.Equal(t, "I-100", *events.entries[1].AttemptedID)
}

func TestAuthServiceLogoutRecordsEvent(t *testing.T) {
	svc, events := newTestAuthService(t)

	require.NoError(t, svc.Logout(context.Background(), models.RoleStudent, "S-100", ""))
	assert.Equal(t, []models.UserLogAction{models.ActionLogout}, events.actions())

	err := svc.Logout(context.Background(), models.RoleStudent, " ", "")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	res, err := svc.AdminLogin(context.Background(), models.AdminLoginRequest{AdminID: "admin", Password: "admin123"})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(res.Token)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
