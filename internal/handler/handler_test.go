package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/middleware"
	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/repository"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
	"github.com/noah-isme/automated-attendance/pkg/response"
)

func newTestContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type fakeAccountSrv struct {
	role      models.Role
	accounts  []models.Account
	createErr error
	lastID    string
}

func (f *fakeAccountSrv) Role() models.Role { return f.role }

func (f *fakeAccountSrv) List(context.Context) ([]models.Account, error) { return f.accounts, nil }

func (f *fakeAccountSrv) Create(_ context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Account{ID: "new", IDNumber: req.IDNumber, FullName: req.FullName, PasswordHash: "hash"}, nil
}

func (f *fakeAccountSrv) Update(_ context.Context, id string, req models.UpdateAccountRequest) (*models.Account, error) {
	f.lastID = id
	return &models.Account{ID: id, IDNumber: req.IDNumber, FullName: req.FullName}, nil
}

func (f *fakeAccountSrv) Delete(_ context.Context, id string) error {
	f.lastID = id
	if id == "missing" {
		return appErrors.Clone(appErrors.ErrNotFound, "Student not found")
	}
	return nil
}

func TestAccountHandlerListReturnsBareArray(t *testing.T) {
	h := NewAccountHandler(&fakeAccountSrv{role: models.RoleStudent})
	c, rec := newTestContext(http.MethodGet, "/api/students", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAccountHandlerCreateHidesPassword(t *testing.T) {
	h := NewAccountHandler(&fakeAccountSrv{role: models.RoleStudent})
	c, rec := newTestContext(http.MethodPost, "/api/students", models.CreateAccountRequest{IDNumber: "S-1", FullName: "Ana", Password: "pw"})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), `"_id":"new"`)
}

func TestAccountHandlerCreateConflict(t *testing.T) {
	h := NewAccountHandler(&fakeAccountSrv{role: models.RoleStudent, createErr: appErrors.Clone(appErrors.ErrConflict, "Student ID already exists")})
	c, rec := newTestContext(http.MethodPost, "/api/students", models.CreateAccountRequest{IDNumber: "S-1"})

	h.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Student ID already exists", body.Message)
}

func TestAccountHandlerUpdateAndDelete(t *testing.T) {
	srv := &fakeAccountSrv{role: models.RoleInstructor}
	h := NewAccountHandler(srv)

	c, rec := newTestContext(http.MethodPut, "/api/instructors/abc", models.UpdateAccountRequest{IDNumber: "I-1", FullName: "Maria"})
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Update(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", srv.lastID)

	c, rec = newTestContext(http.MethodDelete, "/api/instructors/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.Delete(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(http.MethodDelete, "/api/instructors/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Delete(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Instructor deleted"}`, rec.Body.String())
}

type fakeCourseSrv struct {
	input models.CourseInput
	err   error
}

func (f *fakeCourseSrv) List(context.Context) ([]models.Course, error) {
	return []models.Course{{ID: "c1", CourseCode: "CS101"}}, nil
}

func (f *fakeCourseSrv) Get(_ context.Context, id string) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

func (f *fakeCourseSrv) Create(_ context.Context, input models.CourseInput) (*models.Course, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &models.Course{ID: "c2", CourseCode: input.CourseCode}, nil
}

func (f *fakeCourseSrv) Update(_ context.Context, id string, input models.CourseInput) (*models.Course, error) {
	f.input = input
	return &models.Course{ID: id, CourseCode: input.CourseCode}, nil
}

func (f *fakeCourseSrv) Delete(context.Context, string) error { return nil }

func (f *fakeCourseSrv) UpdateInstructorIDs(_ context.Context, req models.UpdateInstructorIDsRequest) (*models.UpdateInstructorIDsResponse, error) {
	return &models.UpdateInstructorIDsResponse{Success: true, Modified: 2}, nil
}

func TestCourseHandlerCreateValidationMessage(t *testing.T) {
	srv := &fakeCourseSrv{err: appErrors.Clone(appErrors.ErrValidation, "Please correct time formats in schedules (HH:MM AM/PM)")}
	h := NewCourseHandler(srv)
	c, rec := newTestContext(http.MethodPost, "/api/courses", map[string]interface{}{
		"courseCode": "CS101",
		"courseName": "Intro",
		"instructor": "I-100",
		"schedules":  []map[string]string{{"day": "Monday", "startTime": "13:00", "endTime": "2:00 PM"}},
	})

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please correct time formats in schedules (HH:MM AM/PM)", decodeError(t, rec).Message)
	require.Len(t, srv.input.Schedules, 1)
	assert.Equal(t, "13:00", srv.input.Schedules[0].StartTime)
}

func TestCourseHandlerRejectsMalformedJSON(t *testing.T) {
	h := NewCourseHandler(&fakeCourseSrv{})
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/courses", bytes.NewBufferString("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCourseHandlerUpdateInstructorIDs(t *testing.T) {
	h := NewCourseHandler(&fakeCourseSrv{})
	c, rec := newTestContext(http.MethodPost, "/api/courses/update-instructor-ids", models.UpdateInstructorIDsRequest{InstructorName: "Maria", InstructorID: "I-1"})

	h.UpdateInstructorIDs(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"modified":2}`, rec.Body.String())
}

type fakeAuthSrv struct {
	role models.Role
	id   string
}

func (f *fakeAuthSrv) AdminLogin(context.Context, models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	return &models.AdminLoginResponse{Success: true, Token: "t"}, nil
}

func (f *fakeAuthSrv) Login(_ context.Context, role models.Role, idNumber, password, _ string) (*models.LoginResponse, error) {
	f.role, f.id = role, idNumber
	if password != "pw" {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "Invalid credentials")
	}
	identity := &models.Identity{IDNumber: idNumber, FullName: "Ana"}
	return &models.LoginResponse{Success: true, Student: identity, Token: "t"}, nil
}

func (f *fakeAuthSrv) Logout(_ context.Context, role models.Role, idNumber, _ string) error {
	f.role, f.id = role, idNumber
	return nil
}

func TestAuthHandlerStudentLogin(t *testing.T) {
	srv := &fakeAuthSrv{}
	h := NewAuthHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/api/students/login", models.StudentLoginRequest{StudentID: "S-1", Password: "pw"})
	h.StudentLogin(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleStudent, srv.role)
	assert.Equal(t, "S-1", srv.id)

	c, rec = newTestContext(http.MethodPost, "/api/students/login", models.StudentLoginRequest{StudentID: "S-1", Password: "no"})
	h.StudentLogin(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid credentials", body.Message)
}

func TestAuthHandlerInstructorLogout(t *testing.T) {
	srv := &fakeAuthSrv{}
	h := NewAuthHandler(srv)

	c, rec := newTestContext(http.MethodPost, "/api/instructors/logout", models.LogoutRequest{InstructorID: "I-1"})
	h.InstructorLogout(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleInstructor, srv.role)
	assert.Equal(t, "I-1", srv.id)
}

func TestAuthHandlerSession(t *testing.T) {
	h := NewAuthHandler(&fakeAuthSrv{})

	c, rec := newTestContext(http.MethodGet, "/api/session", nil)
	h.Session(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/api/session", nil)
	c.Set(middleware.ContextClaimsKey, &models.Claims{Role: models.RoleStudent, IDNumber: "S-1", FullName: "Ana"})
	h.Session(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"role":"student","idNumber":"S-1","fullName":"Ana"}`, rec.Body.String())
}

type fakeDashboardSrv struct {
	hit bool
}

func (f fakeDashboardSrv) Summary(context.Context) (*models.DashboardSummary, bool, error) {
	return &models.DashboardSummary{Statistics: models.Statistics{Students: 4}}, f.hit, nil
}

func TestDashboardHandlerSummary(t *testing.T) {
	h := NewDashboardHandler(fakeDashboardSrv{hit: true})
	c, rec := newTestContext(http.MethodGet, "/api/dashboard", nil)

	h.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get(middleware.CacheHeader))
	var summary models.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.Statistics.Students)
}

type fakeUserLogLister struct {
	filter repository.UserLogFilter
}

func (f *fakeUserLogLister) List(_ context.Context, filter repository.UserLogFilter) ([]models.UserLog, error) {
	f.filter = filter
	return nil, nil
}

func TestUserLogHandlerParsesFilter(t *testing.T) {
	lister := &fakeUserLogLister{}
	h := NewUserLogHandler(lister)

	c, rec := newTestContext(http.MethodGet, "/api/user-logs?userId=S-1&action=login&limit=5&since=2024-03-01T00:00:00Z", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, "S-1", lister.filter.UserID)
	assert.Equal(t, models.ActionLogin, lister.filter.Action)
	assert.Equal(t, 5, lister.filter.Limit)
	require.NotNil(t, lister.filter.Since)
	assert.True(t, lister.filter.Since.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	c, rec = newTestContext(http.MethodGet, "/api/user-logs?limit=abc", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
