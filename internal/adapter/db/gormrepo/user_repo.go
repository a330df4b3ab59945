package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/internal/domain/user"
)

// pgUniqueViolation is the SQLSTATE PostgreSQL reports for unique index violations.
const pgUniqueViolation = "23505"

// UserRepo implements the user Repository interface on top of GORM.
// It works with both the PostgreSQL and the SQLite dialector.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Name     string `gorm:"not null"`
	Lastname string `gorm:"not null"`
	Email    string `gorm:"not null;uniqueIndex"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:       m.ID,
		Name:     m.Name,
		Lastname: m.Lastname,
		Email:    m.Email,
	}
}

// AutoMigrate creates or updates the users table and its email index.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{})
}

// Create inserts a new user in a single transaction and returns the assigned id.
// A unique index violation on email is reported as user.ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:     u.Name,
		Lastname: u.Lastname,
		Email:    u.Email,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("email rejected by unique index", zap.String("email", u.Email))
			return 0, user.ErrEmailTaken
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Update overwrites name and lastname of an existing user.
// Email and id are never touched.
func (r *UserRepo) Update(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.First(&model, u.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model).Updates(map[string]any{
			"name":     u.Name,
			"lastname": u.Lastname,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found for update", zap.Int64("id", u.ID))
			return 0, user.ErrNotFound
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return 0, fmt.Errorf("failed to update user: %w", err)
	}

	r.log.Info("user updated in db", zap.Int64("id", u.ID))
	return u.ID, nil
}

// Delete removes a user from the database by ID.
func (r *UserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&UserSchema{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return user.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			r.log.Warn("user not found for delete", zap.Int64("id", id))
			return 0, user.ErrNotFound
		}
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return id, nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, user.ErrNotFound
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// GetByEmail retrieves a user by email address. It returns nil, nil when no user has that email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}

// List retrieves every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}

	return users, nil
}

// isUniqueViolation reports whether err came from a unique index.
// gorm translates driver errors to ErrDuplicatedKey when TranslateError is on;
// the other checks cover connections opened without it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
