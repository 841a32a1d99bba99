package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/automated-attendance/internal/models"
)

// Ping checks the server is reachable via GET /test.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/test", false, nil, nil)
}

func (c *Client) login(ctx context.Context, path string, in interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()
	return c.do(ctx, http.MethodPost, path, false, in, out)
}

// InstructorLogin verifies instructor credentials.
func (c *Client) InstructorLogin(ctx context.Context, instructorID, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.login(ctx, "/api/instructors/login", models.InstructorLoginRequest{InstructorID: instructorID, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentLogin verifies student credentials.
func (c *Client) StudentLogin(ctx context.Context, studentID, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.login(ctx, "/api/students/login", models.StudentLoginRequest{StudentID: studentID, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLogin exchanges the admin pair for a bearer token.
func (c *Client) AdminLogin(ctx context.Context, adminID, password string) (*models.AdminLoginResponse, error) {
	var out models.AdminLoginResponse
	err := c.login(ctx, "/api/admin/login", models.AdminLoginRequest{AdminID: adminID, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// InstructorLogout records an instructor logout.
func (c *Client) InstructorLogout(ctx context.Context, instructorID string) error {
	return c.do(ctx, http.MethodPost, "/api/instructors/logout", false, models.LogoutRequest{InstructorID: instructorID}, nil)
}

// StudentLogout records a student logout.
func (c *Client) StudentLogout(ctx context.Context, studentID string) error {
	return c.do(ctx, http.MethodPost, "/api/students/logout", false, models.LogoutRequest{StudentID: studentID}, nil)
}

func accountsPath(role models.Role) string {
	return "/api/" + role.Collection()
}

// ListAccounts lists students or instructors.
func (c *Client) ListAccounts(ctx context.Context, role models.Role) ([]models.Account, error) {
	var out []models.Account
	if err := c.do(ctx, http.MethodGet, accountsPath(role), true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListStudents lists every student.
func (c *Client) ListStudents(ctx context.Context) ([]models.Account, error) {
	return c.ListAccounts(ctx, models.RoleStudent)
}

// ListInstructors lists every instructor.
func (c *Client) ListInstructors(ctx context.Context) ([]models.Account, error) {
	return c.ListAccounts(ctx, models.RoleInstructor)
}

// CreateAccount creates a student or instructor.
func (c *Client) CreateAccount(ctx context.Context, role models.Role, req models.CreateAccountRequest) (*models.Account, error) {
	var out models.Account
	if err := c.do(ctx, http.MethodPost, accountsPath(role), true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStudent creates a student account.
func (c *Client) CreateStudent(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	return c.CreateAccount(ctx, models.RoleStudent, req)
}

// CreateInstructor creates an instructor account.
func (c *Client) CreateInstructor(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	return c.CreateAccount(ctx, models.RoleInstructor, req)
}

// UpdateAccount changes an account's idNumber and full name.
func (c *Client) UpdateAccount(ctx context.Context, role models.Role, id string, req models.UpdateAccountRequest) (*models.Account, error) {
	var out models.Account
	if err := c.do(ctx, http.MethodPut, accountsPath(role)+"/"+url.PathEscape(id), true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes an account by _id.
func (c *Client) DeleteAccount(ctx context.Context, role models.Role, id string) error {
	return c.do(ctx, http.MethodDelete, accountsPath(role)+"/"+url.PathEscape(id), true, nil, nil)
}

// ListCourses lists every course.
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	var out []models.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCourse creates a course from the canonical payload.
func (c *Client) CreateCourse(ctx context.Context, p *models.CourseInput) (*models.Course, error) {
	var out models.Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", true, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse replaces a course.
func (c *Client) UpdateCourse(ctx context.Context, id string, p *models.CourseInput) (*models.Course, error) {
	var out models.Course
	if err := c.do(ctx, http.MethodPut, "/api/courses/"+url.PathEscape(id), true, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+url.PathEscape(id), true, nil, nil)
}

// UpdateInstructorIDs rewrites name references for one instructor.
func (c *Client) UpdateInstructorIDs(ctx context.Context, req models.UpdateInstructorIDsRequest) (*models.UpdateInstructorIDsResponse, error) {
	var out models.UpdateInstructorIDsResponse
	if err := c.do(ctx, http.MethodPost, "/api/courses/update-instructor-ids", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the server-computed dashboard summary.
func (c *Client) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var out models.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
