package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/automated-attendance/internal/models"
)

const userLogSchema = `CREATE TABLE IF NOT EXISTS user_logs (
	id TEXT PRIMARY KEY,
	user_id TEXT,
	role TEXT NOT NULL,
	action TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	ip_address TEXT NOT NULL DEFAULT '',
	attempted_id TEXT,
	timestamp TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS user_logs_user_id_timestamp_idx ON user_logs (user_id, timestamp DESC);
CREATE INDEX IF NOT EXISTS user_logs_action_idx ON user_logs (action);
CREATE INDEX IF NOT EXISTS user_logs_timestamp_idx ON user_logs (timestamp DESC);`

// UserLogFilter narrows ListUserLogs queries.
type UserLogFilter struct {
	UserID string
	Action models.UserLogAction
	Since  *time.Time
	Limit  int
}

// UserLogRepository persists the user_logs audit trail in PostgreSQL.
type UserLogRepository struct {
	db *sqlx.DB
}

// NewUserLogRepository constructs a user log repository.
func NewUserLogRepository(db *sqlx.DB) *UserLogRepository {
	return &UserLogRepository{db: db}
}

// EnsureSchema creates the table and indexes when missing.
func (r *UserLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, userLogSchema); err != nil {
		return fmt.Errorf("create user_logs: %w", err)
	}
	return nil
}

// Insert stores one log entry.
func (r *UserLogRepository) Insert(ctx context.Context, entry *models.UserLog) error {
	const query = `INSERT INTO user_logs (id, user_id, role, action, details, ip_address, attempted_id, timestamp, created_at)
VALUES (:id, :user_id, :role, :action, :details, :ip_address, :attempted_id, :timestamp, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert user log: %w", err)
	}
	return nil
}

// List returns log entries newest first.
func (r *UserLogRepository) List(ctx context.Context, filter UserLogFilter) ([]models.UserLog, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", len(args)))
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var b strings.Builder
	b.WriteString("SELECT id, user_id, role, action, details, ip_address, attempted_id, timestamp, created_at FROM user_logs")
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	fmt.Fprintf(&b, " ORDER BY timestamp DESC LIMIT %d", limit)

	var out []models.UserLog
	if err := r.db.SelectContext(ctx, &out, b.String(), args...); err != nil {
		return nil, fmt.Errorf("list user logs: %w", err)
	}
	return out, nil
}
