package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/dashboard"
	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

const (
	dashboardCacheKey     = "dashboard:summary"
	dashboardCachePattern = "dashboard:*"
)

type accountLister interface {
	List(ctx context.Context) ([]models.Account, error)
}

type courseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

// DashboardService builds the admin dashboard summary.
type DashboardService struct {
	students    accountLister
	instructors accountLister
	courses     courseLister
	cache       *CacheService
	ttl         time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewDashboardService constructs the service. cache may be nil.
func NewDashboardService(students, instructors accountLister, courses courseLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{students: students, instructors: instructors, courses: courses, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// Summary returns the statistics and trend, and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	var cached models.DashboardSummary
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	instructors, err := s.instructors.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructors")
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}

	summary := dashboard.Summarize(students, instructors, courses, s.now())
	s.cache.Set(ctx, dashboardCacheKey, summary, s.ttl)
	return &summary, false, nil
}

// Invalidate drops the cached summary.
func (s *DashboardService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardCachePattern)
}
