package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
)

// AccountRepository is the storage contract for one class of account.
type AccountRepository interface {
	Role() models.Role
	List(ctx context.Context) ([]models.Account, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByIDNumber(ctx context.Context, idNumber string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	UpdateIdentity(ctx context.Context, id, idNumber, fullName string, updatedAt time.Time) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}

// Invalidator drops derived data after a write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type userEventRecorder interface {
	Record(ctx context.Context, entry models.UserLog) error
}

// AccountService manages the students or instructors collection.
type AccountService struct {
	repo       AccountRepository
	validator  *validator.Validate
	dashboard  Invalidator
	events     userEventRecorder
	logger     *zap.Logger
	bcryptCost int
	now        func() time.Time
}

// NewAccountService constructs an account service. dashboard and events may be nil.
func NewAccountService(repo AccountRepository, validate *validator.Validate, dashboard Invalidator, events userEventRecorder, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		repo:       repo,
		validator:  validate,
		dashboard:  dashboard,
		events:     events,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Role reports the class of account the service manages.
func (s *AccountService) Role() models.Role {
	return s.repo.Role()
}

// List returns every account of the class.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list "+s.repo.Role().Collection())
	}
	return accounts, nil
}

// Get returns one account by document id.
func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// Create hashes the password and stores a new account.
func (s *AccountService) Create(ctx context.Context, req models.CreateAccountRequest) (*models.Account, error) {
	req.IDNumber = strings.TrimSpace(req.IDNumber)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Please fill in all fields")
	}

	if _, err := s.repo.FindByIDNumber(ctx, req.IDNumber); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, s.repo.Role().Label()+" ID already exists")
	} else if !isNotFound(err) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check "+string(s.repo.Role()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := s.now().UTC()
	account := &models.Account{
		IDNumber:     req.IDNumber,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Course:       req.Course,
		Year:         req.Year,
		Section:      req.Section,
		Department:   req.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created", zap.String("role", string(s.repo.Role())), zap.String("id_number", account.IDNumber))
	s.invalidate(ctx)
	return account, nil
}

// Update changes idNumber and fullName only.
func (s *AccountService) Update(ctx context.Context, id string, req models.UpdateAccountRequest) (*models.Account, error) {
	req.IDNumber = strings.TrimSpace(req.IDNumber)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "ID number and full name are required")
	}

	existing, err := s.repo.FindByIDNumber(ctx, req.IDNumber)
	switch {
	case err == nil && existing.ID != id:
		return nil, appErrors.Clone(appErrors.ErrConflict, s.repo.Role().Label()+" ID already exists")
	case err != nil && !isNotFound(err):
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check "+string(s.repo.Role()))
	}

	account, err := s.repo.UpdateIdentity(ctx, id, req.IDNumber, req.FullName, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		userID := account.IDNumber
		if err := s.events.Record(ctx, models.UserLog{
			UserID:  &userID,
			Role:    s.repo.Role(),
			Action:  models.ActionProfileUpdated,
			Details: "identity updated by admin",
		}); err != nil {
			s.logger.Warn("failed to record profile update", zap.Error(err))
		}
	}
	s.invalidate(ctx)
	return account, nil
}

// Delete removes an account by document id.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("account deleted", zap.String("role", string(s.repo.Role())), zap.String("id", id))
	s.invalidate(ctx)
	return nil
}

// Authenticate checks an idNumber and password pair.
func (s *AccountService) Authenticate(ctx context.Context, idNumber, password string) (*models.Account, error) {
	account, err := s.repo.FindByIDNumber(ctx, idNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch "+string(s.repo.Role()))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	return account, nil
}

func (s *AccountService) invalidate(ctx context.Context) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(ctx)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, appErrors.ErrNotFound)
}
