package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

type mockAccountRepo struct {
	role     models.Role
	accounts []models.Account
	seq      int
	listErr  error
}

func newMockAccountRepo(role models.Role, accounts ...models.Account) *mockAccountRepo {
	return &mockAccountRepo{role: role, accounts: accounts, seq: len(accounts)}
}

func (m *mockAccountRepo) Role() models.Role { return m.role }

func (m *mockAccountRepo) List(context.Context) ([]models.Account, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Account(nil), m.accounts...), nil
}

func (m *mockAccountRepo) Count(context.Context) (int64, error) {
	return int64(len(m.accounts)), nil
}

func (m *mockAccountRepo) FindByID(_ context.Context, id string) (*models.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockAccountRepo) FindByIDNumber(_ context.Context, idNumber string) (*models.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].IDNumber == idNumber {
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockAccountRepo) Create(_ context.Context, account *models.Account) error {
	m.seq++
	account.ID = fmt.Sprintf("%s-%d", m.role, m.seq)
	m.accounts = append(m.accounts, *account)
	return nil
}

func (m *mockAccountRepo) UpdateIdentity(_ context.Context, id, idNumber, fullName string, updatedAt time.Time) (*models.Account, error) {
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			m.accounts[i].IDNumber = idNumber
			m.accounts[i].FullName = fullName
			m.accounts[i].UpdatedAt = updatedAt
			a := m.accounts[i]
			return &a, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockAccountRepo) Delete(_ context.Context, id string) error {
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrNotFound
}

type mockCourseRepo struct {
	courses []models.Course
	seq     int
}

func (m *mockCourseRepo) List(context.Context) ([]models.Course, error) {
	return append([]models.Course(nil), m.courses...), nil
}

func (m *mockCourseRepo) Count(context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func (m *mockCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	for i := range m.courses {
		if m.courses[i].ID == id {
			c := m.courses[i]
			return &c, nil
		}
	}
	return nil, appErrors.ErrNotFound
}

func (m *mockCourseRepo) Create(_ context.Context, c *models.Course) error {
	m.seq++
	c.ID = fmt.Sprintf("course-%d", m.seq)
	m.courses = append(m.courses, *c)
	return nil
}

func (m *mockCourseRepo) Replace(_ context.Context, c *models.Course) error {
	for i := range m.courses {
		if m.courses[i].ID == c.ID {
			m.courses[i] = *c
			return nil
		}
	}
	return appErrors.ErrNotFound
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	for i := range m.courses {
		if m.courses[i].ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return appErrors.ErrNotFound
}

func (m *mockCourseRepo) ReassignInstructor(_ context.Context, name, idNumber string, updatedAt time.Time) (int64, error) {
	var n int64
	for i := range m.courses {
		if m.courses[i].Instructor == name {
			m.courses[i].Instructor = idNumber
			m.courses[i].InstructorName = name
			m.courses[i].UpdatedAt = updatedAt
			n++
		}
	}
	return n, nil
}

type recordedEvents struct {
	mu      sync.Mutex
	entries []models.UserLog
}

func (r *recordedEvents) Record(_ context.Context, entry models.UserLog) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordedEvents) actions() []models.UserLogAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.UserLogAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string]interface{})}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	summary, ok := v.(models.DashboardSummary)
	target, okDest := dest.(*models.DashboardSummary)
	if !ok || !okDest {
		return fmt.Errorf("unexpected cache value %T", v)
	}
	*target = summary
	return nil
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}
