package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/automated-attendance/internal/middleware"
	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
	"github.com/noah-isme/automated-attendance/pkg/response"
)

type authService interface {
	AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.AdminLoginResponse, error)
	Login(ctx context.Context, role models.Role, idNumber, password, ip string) (*models.LoginResponse, error)
	Logout(ctx context.Context, role models.Role, idNumber, ip string) error
}

// AuthHandler serves the login and logout endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// AdminLogin godoc
// @Summary Exchange admin credentials for a token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	res, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// InstructorLogin godoc
// @Summary Instructor login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.InstructorLoginRequest true "Instructor credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /instructors/login [post]
func (h *AuthHandler) InstructorLogin(c *gin.Context) {
	var req models.InstructorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	h.login(c, models.RoleInstructor, req.InstructorID, req.Password)
}

// StudentLogin godoc
// @Summary Student login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.StudentLoginRequest true "Student credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} response.ErrorBody
// @Router /students/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req models.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	h.login(c, models.RoleStudent, req.StudentID, req.Password)
}

func (h *AuthHandler) login(c *gin.Context, role models.Role, idNumber, password string) {
	res, err := h.service.Login(c.Request.Context(), role, idNumber, password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// InstructorLogout godoc
// @Summary Instructor logout
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LogoutRequest true "Instructor ID"
// @Success 200 {object} map[string]interface{}
// @Router /instructors/logout [post]
func (h *AuthHandler) InstructorLogout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid logout payload"))
		return
	}
	h.logout(c, models.RoleInstructor, req.InstructorID)
}

// StudentLogout godoc
// @Summary Student logout
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LogoutRequest true "Student ID"
// @Success 200 {object} map[string]interface{}
// @Router /students/logout [post]
func (h *AuthHandler) StudentLogout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid logout payload"))
		return
	}
	h.logout(c, models.RoleStudent, req.StudentID)
}

func (h *AuthHandler) logout(c *gin.Context, role models.Role, idNumber string) {
	if err := h.service.Logout(c.Request.Context(), role, idNumber, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "Logged out", nil)
}

// Session godoc
// @Summary Describe the bearer token's session
// @Tags Authentication
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorBody
// @Router /session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	body := gin.H{"role": claims.Role, "idNumber": claims.IDNumber, "fullName": claims.FullName}
	if claims.ExpiresAt != nil {
		body["expiresAt"] = claims.ExpiresAt.Time
	}
	response.Success(c, "", body)
}
