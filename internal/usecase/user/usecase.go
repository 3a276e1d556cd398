package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-registry-service/internal/domain/user"
	pkgerrors "user-registry-service/pkg/errors"
	"user-registry-service/pkg/logger"
)

// Repository defines the interface for user storage.
// Create assigns the id; implementations must make id assignment and
// insertion atomic.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error) // Store a new user and assign its id
	GetByID(ctx context.Context, id int64) (*domain.User, error)      // Retrieve user by ID
	Update(ctx context.Context, u *domain.User) (*domain.User, error) // Overwrite username and age
	Delete(ctx context.Context, id int64) (*domain.User, error)       // Remove user by ID, returning it
	List(ctx context.Context) ([]domain.User, error)                  // All users in insertion order
}

// Registry implements the user registry operations.
// Inputs are checked against the contract before the repository is touched,
// so a rejected request never mutates the collection.
type Registry struct {
	repo     Repository
	contract Contract
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new Registry with the provided repository, contract, and logger.
func New(r Repository, contract Contract, log *zap.Logger) *Registry {
	return &Registry{repo: r, contract: contract, log: log, validate: validator.New()}
}

// Contract returns the constraints this registry enforces.
func (uc *Registry) Contract() Contract {
	return uc.contract
}

// checkField validates a single value and converts the failure into a
// *pkgerrors.ValidationError naming the field.
func (uc *Registry) checkField(field string, value any, tag string) error {
	err := uc.validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return pkgerrors.NewValidationError(field, err.Error())
	}

	e := validationErrors[0]
	var msg string
	switch e.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		msg = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "lte":
		msg = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return pkgerrors.NewValidationError(field, msg)
}

func (uc *Registry) validateUser(username string, age int) error {
	if err := uc.checkField("username", username, uc.contract.usernameTag()); err != nil {
		return err
	}
	return uc.checkField("age", age, uc.contract.ageTag())
}

func (uc *Registry) validateID(id int64) error {
	return uc.checkField("id", id, "gt=0")
}

func toDTO(u *domain.User) *User {
	return &User{ID: u.ID, Username: u.Username, Age: u.Age}
}

// ListUsers returns every user in insertion order.
func (uc *Registry) ListUsers(ctx context.Context) ([]User, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *toDTO(&domainUsers[i])
	}
	return users, nil
}

// GetUser retrieves a single user by ID.
func (uc *Registry) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validateID(in.ID); err != nil {
		log.Warn("get user validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		log.Warn("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	return toDTO(u), nil
}

// CreateUser validates the request and registers a new user under the next
// sequential id.
func (uc *Registry) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("username", in.Username), zap.Int("age", in.Age))

	if err := uc.validateUser(in.Username, in.Age); err != nil {
		log.Warn("validate failed", zap.String("contract", uc.contract.Name), zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.Create(ctx, &domain.User{
		Username: in.Username,
		Age:      in.Age,
	})
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Int64("id", u.ID))
	return toDTO(u), nil
}

// UpdateUser replaces the username and age of an existing user.
// A missing id yields a not found error and no record is created.
func (uc *Registry) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user", zap.Int64("id", in.ID), zap.String("username", in.Username), zap.Int("age", in.Age))

	if err := uc.validateID(in.ID); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, err
	}
	if err := uc.validateUser(in.Username, in.Age); err != nil {
		log.Warn("validate failed", zap.String("contract", uc.contract.Name), zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.Update(ctx, &domain.User{
		ID:       in.ID,
		Username: in.Username,
		Age:      in.Age,
	})
	if err != nil {
		log.Warn("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	return toDTO(u), nil
}

// DeleteUser removes a user and returns the removed record.
func (uc *Registry) DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	if err := uc.validateID(in.ID); err != nil {
		log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		log.Warn("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}
	return toDTO(u), nil
}
