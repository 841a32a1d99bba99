package course

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
)

// ErrBusy is returned when a save or delete is already in flight.
var ErrBusy = errors.New("course: a request is already in progress")

const (
	saveFailedMessage   = "Failed to save course"
	deleteFailedMessage = "Failed to delete course"
)

// Backend is the course API the editor talks to.
type Backend interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, p *models.CourseInput) (*models.Course, error)
	UpdateCourse(ctx context.Context, id string, p *models.CourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	ListInstructors(ctx context.Context) ([]models.Account, error)
	UpdateInstructorIDs(ctx context.Context, req models.UpdateInstructorIDsRequest) (*models.UpdateInstructorIDsResponse, error)
}

// serverMessager is implemented by transport errors that carry a message
// from the server body.
type serverMessager interface {
	ServerMessage() string
}

// RequestError is a rejected save or delete. Message is what the user sees.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

func newRequestError(err error, fallback string) *RequestError {
	msg := fallback
	var sm serverMessager
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		msg = sm.ServerMessage()
	}
	return &RequestError{Message: msg, Err: err}
}

// Editor drives the course list and the create/edit form.
type Editor struct {
	backend Backend
	logger  *zap.Logger

	mu      sync.Mutex
	busy    bool
	form    Form
	courses []models.Course
}

// NewEditor builds an editor holding a blank form.
func NewEditor(backend Backend, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{backend: backend, logger: logger, form: NewForm()}
}

// Form returns the form under edit. Callers mutate it in place.
func (e *Editor) Form() *Form {
	return &e.form
}

// New starts a blank form.
func (e *Editor) New() {
	e.form = NewForm()
}

// Open loads an existing course into the form.
func (e *Editor) Open(c models.Course) []error {
	f, warnings := FormFromCourse(c)
	for _, w := range warnings {
		e.logger.Warn("course loaded with unconverted time", zap.String("course_id", c.ID), zap.Error(w))
	}
	e.form = f
	return warnings
}

// Courses returns the last fetched list.
func (e *Editor) Courses() []models.Course {
	return e.courses
}

// Refresh re-fetches the full course list.
func (e *Editor) Refresh(ctx context.Context) ([]models.Course, error) {
	courses, err := e.backend.ListCourses(ctx)
	if err != nil {
		return nil, newRequestError(err, "Failed to fetch courses")
	}
	e.courses = courses
	return courses, nil
}

func (e *Editor) acquire() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return false
	}
	e.busy = true
	return true
}

func (e *Editor) release() {
	e.mu.Lock()
	e.busy = false
	e.mu.Unlock()
}

// Save validates the form and creates or updates the course. Validation
// failures never reach the backend. On failure the form is left as is; on
// success it is reset and the list re-fetched.
func (e *Editor) Save(ctx context.Context) (*models.Course, error) {
	if !e.acquire() {
		return nil, ErrBusy
	}
	defer e.release()

	payload, err := e.form.Payload()
	if err != nil {
		return nil, err
	}

	var saved *models.Course
	if e.form.Editing() {
		saved, err = e.backend.UpdateCourse(ctx, e.form.ID, payload)
	} else {
		saved, err = e.backend.CreateCourse(ctx, payload)
	}
	if err != nil {
		e.logger.Warn("course save rejected", zap.String("course_code", payload.CourseCode), zap.Error(err))
		return nil, newRequestError(err, saveFailedMessage)
	}

	e.form = NewForm()
	if _, err := e.Refresh(ctx); err != nil {
		e.logger.Warn("course list refresh failed after save", zap.Error(err))
	}
	return saved, nil
}

// Delete removes a course and re-fetches the list.
func (e *Editor) Delete(ctx context.Context, id string) error {
	if !e.acquire() {
		return ErrBusy
	}
	defer e.release()

	if err := e.backend.DeleteCourse(ctx, id); err != nil {
		return newRequestError(err, deleteFailedMessage)
	}
	if _, err := e.Refresh(ctx); err != nil {
		e.logger.Warn("course list refresh failed after delete", zap.Error(err))
	}
	return nil
}

// SearchInstructors fetches the instructor list and filters it.
func (e *Editor) SearchInstructors(ctx context.Context, query string) ([]InstructorOption, error) {
	if utf8.RuneCountInString(query) < MinSearchLength {
		return nil, nil
	}
	instructors, err := e.backend.ListInstructors(ctx)
	if err != nil {
		return nil, newRequestError(err, "Failed to fetch instructors")
	}
	return SearchInstructors(instructors, query), nil
}

// SyncInstructorIDs asks the server to rewrite courses that reference an
// instructor by name so they carry the idNumber. Per-instructor failures are
// logged and skipped. It returns the number of courses rewritten.
func (e *Editor) SyncInstructorIDs(ctx context.Context) (int64, error) {
	instructors, err := e.backend.ListInstructors(ctx)
	if err != nil {
		return 0, newRequestError(err, "Failed to fetch instructors")
	}

	var modified int64
	for _, in := range instructors {
		res, err := e.backend.UpdateInstructorIDs(ctx, models.UpdateInstructorIDsRequest{
			InstructorName: in.FullName,
			InstructorID:   in.IDNumber,
		})
		if err != nil {
			e.logger.Warn("instructor id sync failed", zap.String("instructor", in.FullName), zap.Error(err))
			continue
		}
		if res != nil {
			modified += res.Modified
		}
	}

	if _, err := e.Refresh(ctx); err != nil {
		return modified, err
	}
	return modified, nil
}
