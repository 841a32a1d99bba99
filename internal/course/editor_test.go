package course

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/models"
)

type serverError struct{ msg string }

func (e *serverError) Error() string         { return "api: " + e.msg }
func (e *serverError) ServerMessage() string { return e.msg }

type fakeBackend struct {
	mu          sync.Mutex
	courses     []models.Course
	instructors []models.Account
	created     []*models.CourseInput
	updated     map[string]*models.CourseInput
	deleted     []string
	syncCalls   []models.UpdateInstructorIDsRequest
	listCalls   int

	saveErr   error
	syncErrOn string
	block     chan struct{}
	entered   chan struct{}
}

func (f *fakeBackend) ListCourses(context.Context) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]models.Course(nil), f.courses...), nil
}

func (f *fakeBackend) CreateCourse(_ context.Context, p *models.CourseInput) (*models.Course, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.created = append(f.created, p)
	c := models.Course{ID: "new", CourseCode: p.CourseCode, CourseName: p.CourseName, Instructor: p.Instructor}
	f.courses = append(f.courses, c)
	return &c, nil
}

func (f *fakeBackend) UpdateCourse(_ context.Context, id string, p *models.CourseInput) (*models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.updated == nil {
		f.updated = map[string]*models.CourseInput{}
	}
	f.updated[id] = p
	return &models.Course{ID: id, CourseCode: p.CourseCode}, nil
}

func (f *fakeBackend) DeleteCourse(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListInstructors(context.Context) ([]models.Account, error) {
	return f.instructors, nil
}

func (f *fakeBackend) UpdateInstructorIDs(_ context.Context, req models.UpdateInstructorIDsRequest) (*models.UpdateInstructorIDsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncCalls = append(f.syncCalls, req)
	if req.InstructorID == f.syncErrOn {
		return nil, errors.New("boom")
	}
	return &models.UpdateInstructorIDsResponse{Success: true, Modified: 2}, nil
}

func fillValid(f *Form) {
	f.Instructor = SelectedInstructor("Jane Doe", "I-100")
	f.CourseCode = "CS101"
	f.CourseName = "Intro"
}

func TestEditorSaveCreatesAndResets(t *testing.T) {
	backend := &fakeBackend{}
	ed := NewEditor(backend, nil)
	fillValid(ed.Form())

	saved, err := ed.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", saved.ID)

	require.Len(t, backend.created, 1)
	assert.Equal(t, "I-100", backend.created[0].Instructor)
	assert.Equal(t, []models.Schedule{{Day: "Monday", StartTime: "8:00 AM", EndTime: "9:30 AM"}}, backend.created[0].Schedules)

	assert.Equal(t, NewForm(), *ed.Form())
	assert.Equal(t, 1, backend.listCalls)
	assert.Len(t, ed.Courses(), 1)
}

func TestEditorSaveUpdatesOpenedCourse(t *testing.T) {
	backend := &fakeBackend{}
	ed := NewEditor(backend, nil)
	ed.Open(models.Course{ID: "c9", CourseCode: "CS9", CourseName: "Nine", Instructor: "I-1",
		Schedules: []models.Schedule{{Day: "Friday", StartTime: "13:00", EndTime: "14:30"}}})

	_, err := ed.Save(context.Background())
	require.NoError(t, err)
	require.Contains(t, backend.updated, "c9")
	assert.Equal(t, "1:00 PM", backend.updated["c9"].Schedules[0].StartTime)
	assert.Empty(t, backend.created)
}

func TestEditorValidationNeverReachesBackend(t *testing.T) {
	backend := &fakeBackend{}
	ed := NewEditor(backend, nil)
	f := ed.Form()
	fillValid(f)
	f.Schedules = []Schedule{
		{Day: Monday, StartTime: "8:00 AM", EndTime: "9:30 AM"},
		{Day: Tuesday, StartTime: "8:00 AM", EndTime: "9:30 AM"},
		{Day: Wednesday, StartTime: "8:00 AM", EndTime: "9:30 AM"},
		{Day: Thursday, StartTime: "25:00", EndTime: "9:30 AM"},
	}
	before := *f

	_, err := ed.Save(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTimes)
	assert.Empty(t, backend.created)
	assert.Empty(t, backend.updated)
	assert.Equal(t, 0, backend.listCalls)
	assert.Equal(t, before, *ed.Form())
}

func TestEditorBlankInstructorNeverReachesBackend(t *testing.T) {
	backend := &fakeBackend{}
	ed := NewEditor(backend, nil)
	f := ed.Form()
	fillValid(f)
	f.Instructor = RawInstructor("   ")

	_, err := ed.Save(context.Background())
	assert.ErrorIs(t, err, ErrRequiredFields)
	assert.Empty(t, backend.created)
	assert.Empty(t, backend.updated)
	assert.Equal(t, 0, backend.listCalls)
}

func TestEditorSurfacesServerMessage(t *testing.T) {
	backend := &fakeBackend{saveErr: &serverError{msg: "Instructor not found"}}
	ed := NewEditor(backend, nil)
	fillValid(ed.Form())
	before := *ed.Form()

	_, err := ed.Save(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Instructor not found", reqErr.Message)
	assert.Equal(t, before, *ed.Form())
	assert.Equal(t, 0, backend.listCalls)
}

func TestEditorGenericSaveMessage(t *testing.T) {
	backend := &fakeBackend{saveErr: errors.New("dial tcp: refused")}
	ed := NewEditor(backend, nil)
	fillValid(ed.Form())

	_, err := ed.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to save course", err.Error())
}

func TestEditorBusyBlocksSecondSave(t *testing.T) {
	backend := &fakeBackend{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	ed := NewEditor(backend, nil)
	fillValid(ed.Form())

	done := make(chan error, 1)
	go func() {
		_, err := ed.Save(context.Background())
		done <- err
	}()
	<-backend.entered

	_, err := ed.Save(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, ed.Delete(context.Background(), "x"), ErrBusy)

	close(backend.block)
	require.NoError(t, <-done)
	assert.Len(t, backend.created, 1)
}

func TestEditorDeleteRefetches(t *testing.T) {
	backend := &fakeBackend{courses: []models.Course{{ID: "a"}}}
	ed := NewEditor(backend, nil)

	require.NoError(t, ed.Delete(context.Background(), "a"))
	assert.Equal(t, []string{"a"}, backend.deleted)
	assert.Equal(t, 1, backend.listCalls)
}

func TestEditorSyncInstructorIDsSkipsFailures(t *testing.T) {
	backend := &fakeBackend{
		instructors: []models.Account{
			{IDNumber: "I-1", FullName: "Jane Doe"},
			{IDNumber: "I-2", FullName: "John Smith"},
			{IDNumber: "I-3", FullName: "Ann Lee"},
		},
		syncErrOn: "I-2",
	}
	ed := NewEditor(backend, nil)

	modified, err := ed.SyncInstructorIDs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, modified)
	require.Len(t, backend.syncCalls, 3)
	assert.Equal(t, models.UpdateInstructorIDsRequest{InstructorName: "Jane Doe", InstructorID: "I-1"}, backend.syncCalls[0])
	assert.Equal(t, 1, backend.listCalls)
}

func TestEditorSearchInstructors(t *testing.T) {
	backend := &fakeBackend{instructors: []models.Account{{ID: "1", IDNumber: "I-1", FullName: "Jane Doe"}}}
	ed := NewEditor(backend, nil)

	got, err := ed.SearchInstructors(context.Background(), "ja")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, SelectedInstructor("Jane Doe", "I-1"), got[0].Ref())

	got, err = ed.SearchInstructors(context.Background(), "é")
	require.NoError(t, err)
	assert.Empty(t, got)
}
