package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/models"
)

func TestDashboardServiceSummaryCaches(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	students := newMockAccountRepo(models.RoleStudent,
		models.Account{ID: "s1", CreatedAt: now.Add(-time.Hour)},
		models.Account{ID: "s2", CreatedAt: now.AddDate(0, 0, -3)},
	)
	instructors := newMockAccountRepo(models.RoleInstructor, models.Account{ID: "i1"})
	courses := &mockCourseRepo{courses: []models.Course{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}}

	cache := NewCacheService(newMemoryCacheRepo(), NewMetricsService(), time.Minute, nil, true)
	svc := NewDashboardService(students, instructors, courses, cache, time.Minute, nil)
	svc.now = func() time.Time { return now }

	summary, hit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, models.Statistics{Students: 2, Instructors: 1, Courses: 3}, summary.Statistics)
	require.Len(t, summary.Trend, 7)
	assert.Equal(t, 1, summary.Trend[6].Count)
	assert.Equal(t, 1, summary.Trend[3].Count)

	courses.courses = nil
	summary, hit, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, summary.Statistics.Courses)

	svc.Invalidate(context.Background())
	summary, hit, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, summary.Statistics.Courses)
}

func TestDashboardServiceWithoutCache(t *testing.T) {
	students := newMockAccountRepo(models.RoleStudent)
	students.listErr = errors.New("mongo down")
	svc := NewDashboardService(students, newMockAccountRepo(models.RoleInstructor), &mockCourseRepo{}, nil, 0, nil)

	_, _, err := svc.Summary(context.Background())
	assert.Error(t, err)
	svc.Invalidate(context.Background())
}
