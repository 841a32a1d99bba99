package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/automated-attendance/internal/models"
	"github.com/noah-isme/automated-attendance/internal/repository"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
	"github.com/noah-isme/automated-attendance/pkg/response"
)

type userLogLister interface {
	List(ctx context.Context, filter repository.UserLogFilter) ([]models.UserLog, error)
}

// UserLogHandler exposes the audit trail to admins.
type UserLogHandler struct {
	repo userLogLister
}

// NewUserLogHandler constructs the handler.
func NewUserLogHandler(repo userLogLister) *UserLogHandler {
	return &UserLogHandler{repo: repo}
}

// List godoc
// @Summary List user logs
// @Tags UserLogs
// @Produce json
// @Param userId query string false "Account idNumber"
// @Param action query string false "login, logout, attendance_marked, profile_updated or failed_login"
// @Param since query string false "RFC3339 lower bound"
// @Param limit query int false "Maximum entries (default 100)"
// @Success 200 {array} models.UserLog
// @Router /user-logs [get]
func (h *UserLogHandler) List(c *gin.Context) {
	filter := repository.UserLogFilter{
		UserID: c.Query("userId"),
		Action: models.UserLogAction(c.Query("action")),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "since must be RFC3339"))
			return
		}
		filter.Since = &since
	}

	logs, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list user logs"))
		return
	}
	if logs == nil {
		logs = []models.UserLog{}
	}
	response.JSON(c, http.StatusOK, logs)
}
