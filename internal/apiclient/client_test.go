package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/automated-attendance/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", AdminID: "admin", AdminPassword: "admin123", LoginTimeout: time.Second}), srv
}

func TestInstructorLoginSendsCredentials(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/instructors/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("admin-id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"instructorId": "I-100", "password": "pw"}, body)

		_ = json.NewEncoder(w).Encode(models.LoginResponse{Success: true, Instructor: &models.Identity{IDNumber: "I-100", FullName: "Jane Doe"}})
	})

	resp, err := c.InstructorLogin(context.Background(), "I-100", "pw")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Jane Doe", resp.Instructor.FullName)
}

func TestLoginTimeout(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	c.loginTimeout = 20 * time.Millisecond

	_, err := c.StudentLogin(context.Background(), "S-1", "pw")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Course code already exists","code":"CONFLICT"}`))
	})

	_, err := c.CreateCourse(context.Background(), &models.CourseInput{CourseCode: "CS101"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Course code already exists", apiErr.ServerMessage())
	assert.True(t, IsClientError(err))
	assert.False(t, IsTimeout(err))
}

func TestMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.ListCourses(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAdminHeadersAndBearer(t *testing.T) {
	var got http.Header
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListStudents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Get("admin-id"))
	assert.Equal(t, "admin123", got.Get("admin-password"))
	assert.Empty(t, got.Get("Authorization"))

	c.SetToken("tok")
	_, err = c.ListInstructors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
	assert.Empty(t, got.Get("admin-id"))
}

func TestAccountAndCoursePaths(t *testing.T) {
	var calls []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	_, err := c.UpdateAccount(ctx, models.RoleStudent, "abc", models.UpdateAccountRequest{IDNumber: "S-1", FullName: "Sam"})
	require.NoError(t, err)
	require.NoError(t, c.DeleteAccount(ctx, models.RoleInstructor, "def"))
	_, err = c.UpdateCourse(ctx, "c1", &models.CourseInput{})
	require.NoError(t, err)
	require.NoError(t, c.DeleteCourse(ctx, "c1"))
	_, err = c.UpdateInstructorIDs(ctx, models.UpdateInstructorIDsRequest{InstructorName: "Jane", InstructorID: "I-1"})
	require.NoError(t, err)
	require.NoError(t, c.StudentLogout(ctx, "S-1"))

	assert.Equal(t, []string{
		"PUT /api/students/abc",
		"DELETE /api/instructors/def",
		"PUT /api/courses/c1",
		"DELETE /api/courses/c1",
		"POST /api/courses/update-instructor-ids",
		"POST /api/students/logout",
	}, calls)
}

func TestPingUnreachable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1"})
	err := c.Ping(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
