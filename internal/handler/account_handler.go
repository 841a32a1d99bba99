package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
	"github.com/noah-isme/automated-attendance/pkg/response"
)

type accountService interface {
	Role() models.Role
	List(ctx context.Context) ([]models.Account, error)
	Create(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error)
	Update(ctx context.Context, id string, req models.UpdateAccountRequest) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

// AccountHandler serves the admin CRUD endpoints of one account class.
type AccountHandler struct {
	service accountService
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(service accountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List godoc
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Success 200 {array} models.Account
// @Failure 401 {object} response.ErrorBody
// @Router /students [get]
// @Router /instructors [get]
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	response.JSON(c, http.StatusOK, accounts)
}

// Create godoc
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param payload body models.CreateAccountRequest true "Account payload"
// @Success 201 {object} models.Account
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /students [post]
// @Router /instructors [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+string(h.service.Role())+" payload"))
		return
	}
	account, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, account)
}

// Update godoc
// @Summary Update account identity
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param payload body models.UpdateAccountRequest true "Identity payload"
// @Success 200 {object} models.Account
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /students/{id} [put]
// @Router /instructors/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var req models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+string(h.service.Role())+" payload"))
		return
	}
	account, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, account)
}

// Delete godoc
// @Summary Delete account
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /students/{id} [delete]
// @Router /instructors/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.service.Role().Label()+" deleted", nil)
}
