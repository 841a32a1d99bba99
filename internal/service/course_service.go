package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/course"
	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

// CourseRepository is the storage contract for courses.
type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, c *models.Course) error
	Replace(ctx context.Context, c *models.Course) error
	Delete(ctx context.Context, id string) error
	ReassignInstructor(ctx context.Context, name, idNumber string, updatedAt time.Time) (int64, error)
}

type instructorFinder interface {
	FindByIDNumber(ctx context.Context, idNumber string) (*models.Account, error)
}

// CourseService validates and stores courses.
type CourseService struct {
	repo        CourseRepository
	instructors instructorFinder
	validator   *validator.Validate
	dashboard   Invalidator
	logger      *zap.Logger
	now         func() time.Time
}

// NewCourseService constructs a course service. dashboard may be nil.
func NewCourseService(repo CourseRepository, instructors instructorFinder, validate *validator.Validate, dashboard Invalidator, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, instructors: instructors, validator: validate, dashboard: dashboard, logger: logger, now: time.Now}
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Get returns one course.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the input, resolves the instructor and stores the course.
func (s *CourseService) Create(ctx context.Context, input models.CourseInput) (*models.Course, error) {
	c, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.logger.Info("course created", zap.String("course_code", c.CourseCode), zap.String("instructor", c.Instructor))
	s.invalidate(ctx)
	return c, nil
}

// Update replaces a course with the validated input.
func (s *CourseService) Update(ctx context.Context, id string, input models.CourseInput) (*models.Course, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Replace(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateInstructorIDs rewrites courses that still name an instructor so they
// carry the instructor's idNumber.
func (s *CourseService) UpdateInstructorIDs(ctx context.Context, req models.UpdateInstructorIDsRequest) (*models.UpdateInstructorIDsResponse, error) {
	req.InstructorName = strings.TrimSpace(req.InstructorName)
	req.InstructorID = strings.TrimSpace(req.InstructorID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "instructorName and instructorId are required")
	}
	modified, err := s.repo.ReassignInstructor(ctx, req.InstructorName, req.InstructorID, s.now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update instructor ids")
	}
	if modified > 0 {
		s.logger.Info("courses reassigned", zap.String("instructor_id", req.InstructorID), zap.Int64("modified", modified))
		s.invalidate(ctx)
	}
	return &models.UpdateInstructorIDsResponse{Success: true, Modified: modified}, nil
}

func (s *CourseService) build(ctx context.Context, input models.CourseInput) (*models.Course, error) {
	input.CourseCode = strings.TrimSpace(input.CourseCode)
	input.CourseName = strings.TrimSpace(input.CourseName)
	input.Instructor = strings.TrimSpace(input.Instructor)
	if input.CourseCode == "" || input.CourseName == "" || input.Instructor == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, course.ErrRequiredFields.Error())
	}

	schedules := make([]models.Schedule, 0, len(input.Schedules))
	for _, sc := range input.Schedules {
		if !course.ValidTime(sc.StartTime) || !course.ValidTime(sc.EndTime) {
			return nil, appErrors.Clone(appErrors.ErrValidation, course.ErrInvalidTimes.Error())
		}
		day, err := course.ParseWeekday(sc.Day)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, course.ErrInvalidDay.Error())
		}
		schedules = append(schedules, models.Schedule{
			Day:       string(day),
			StartTime: strings.TrimSpace(sc.StartTime),
			EndTime:   strings.TrimSpace(sc.EndTime),
		})
	}

	instructor, err := s.instructors.FindByIDNumber(ctx, input.Instructor)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Instructor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve instructor")
	}

	return &models.Course{
		CourseCode:     input.CourseCode,
		CourseName:     input.CourseName,
		Instructor:     instructor.IDNumber,
		InstructorName: instructor.FullName,
		Room:           strings.TrimSpace(input.Room),
		Program:        strings.TrimSpace(input.Program),
		YearSection:    strings.TrimSpace(input.YearSection),
		Schedules:      schedules,
	}, nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx)
	}
}
