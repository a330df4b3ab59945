package user

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	pkgerrors "user-crud-service/pkg/errors"
)

// Repository defines the interface for user data access operations.
// Mutations are committed atomically; implementations report a missing
// record as domain.ErrNotFound and an email index violation as
// domain.ErrEmailTaken.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)          // Create a new user
	GetByID(ctx context.Context, id int64) (*domain.User, error)        // Retrieve user by ID
	GetByEmail(ctx context.Context, email string) (*domain.User, error) // Retrieve user by email, nil when absent
	Update(ctx context.Context, u *domain.User) (int64, error)          // Update name and lastname of an existing user
	Delete(ctx context.Context, id int64) (int64, error)                // Delete user by ID
	List(ctx context.Context) ([]domain.User, error)                    // List all users ordered by id
}

// UserUsecase implements the business logic for user management operations.
type UserUsecase struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

var _ Usecase = (*UserUsecase)(nil)

// New creates a new instance of UserUsecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed validation error.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		e := validationErrors[0]
		if e.Field() == "ID" {
			return pkgerrors.NewValidationError(e.Field(), pkgerrors.MsgInvalidID)
		}
		return pkgerrors.NewValidationError(e.Field(), pkgerrors.MsgWrongProperty)
	}
	return pkgerrors.NewValidationError("", pkgerrors.MsgWrongProperty)
}

// storeError maps repository failures onto the application error taxonomy.
func storeError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return pkgerrors.NewNotFoundError("user", pkgerrors.MsgNotFound)
	case errors.Is(err, domain.ErrEmailTaken):
		return pkgerrors.NewConflictError("user", pkgerrors.MsgUserExist)
	default:
		return pkgerrors.NewPersistenceError(err)
	}
}

// CreateUser creates a new user after validating the request and checking email uniqueness.
// The email lookup is only a fast path; the store's unique index decides races.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Email = strings.TrimSpace(in.Email)

	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existingUser, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, storeError(err)
	}
	if existingUser != nil {
		uc.log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("existing_id", existingUser.ID))
		return nil, pkgerrors.NewConflictError("user", pkgerrors.MsgUserExist)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:     in.Name,
		Lastname: in.Lastname,
		Email:    in.Email,
	})
	if err != nil {
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, storeError(err)
	}

	return &CreateUserResponse{
		ID:       id,
		Name:     in.Name,
		Lastname: in.Lastname,
		Email:    in.Email,
	}, nil
}

// UpdateUser replaces name and lastname of an existing user. Both are trimmed
// and must not be empty afterwards.
func (uc *UserUsecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Lastname = strings.TrimSpace(in.Lastname)

	uc.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("lastname", in.Lastname))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := uc.repo.Update(ctx, &domain.User{
		ID:       in.ID,
		Name:     in.Name,
		Lastname: in.Lastname,
	})
	if err != nil {
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, storeError(err)
	}

	return &UpdateUserResponse{
		ID:       id,
		Name:     in.Name,
		Lastname: in.Lastname,
	}, nil
}

// DeleteUser deletes a user after validating the user ID.
func (uc *UserUsecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	if in.ID <= 0 {
		uc.log.Warn("delete user validation failed", zap.Int64("id", in.ID), zap.String("reason", "invalid id"))
		return nil, pkgerrors.NewValidationError("id", pkgerrors.MsgInvalidID)
	}

	id, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, storeError(err)
	}

	return &DeleteUserResponse{ID: id}, nil
}

// GetUser retrieves a user by ID. Ids that can never exist are reported as not found.
func (uc *UserUsecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	if in.ID <= 0 {
		uc.log.Debug("get user with non-positive id", zap.Int64("id", in.ID))
		return nil, pkgerrors.NewNotFoundError("user", pkgerrors.MsgNotFound)
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		}
		return nil, storeError(err)
	}

	return &GetUserResponse{User: toDTO(*u)}, nil
}

// ListUsers retrieves all users.
func (uc *UserUsecase) ListUsers(ctx context.Context, _ ListUsersRequest) (*ListUsersResponse, error) {
	uc.log.Info("listing users")

	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, storeError(err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	return &ListUsersResponse{
		Users: users,
	}, nil
}

func toDTO(u domain.User) User {
	return User{
		ID:       u.ID,
		Name:     u.Name,
		Lastname: u.Lastname,
		Email:    u.Email,
	}
}
