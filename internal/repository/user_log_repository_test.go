package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestUserLogEnsureSchema(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserLogRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS user_logs").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserLogInsert(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserLogRepository(db)

	now := time.Now().UTC()
	attempted := "S-404"
	entry := &models.UserLog{
		ID:          "log-1",
		Role:        models.RoleStudent,
		Action:      models.ActionFailedLogin,
		IPAddress:   "10.0.0.1",
		AttemptedID: &attempted,
		Timestamp:   now,
		CreatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO user_logs").
		WithArgs("log-1", nil, models.RoleStudent, models.ActionFailedLogin, "", "10.0.0.1", &attempted, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Insert(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserLogListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserLogRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "role", "action", "details", "ip_address", "attempted_id", "timestamp", "created_at"}).
		AddRow("log-1", "I-100", "instructor", "login", "", "127.0.0.1", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, role, action, details, ip_address, attempted_id, timestamp, created_at FROM user_logs WHERE user_id = $1 AND action = $2 ORDER BY timestamp DESC LIMIT 100")).
		WithArgs("I-100", models.ActionLogin).
		WillReturnRows(rows)

	logs, err := repo.List(context.Background(), UserLogFilter{UserID: "I-100", Action: models.ActionLogin})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, "I-100", *logs[0].UserID)
	assert.Nil(t, logs[0].AttemptedID)
	assert.Equal(t, models.RoleInstructor, logs[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
