package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/auth"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/gorm"
)

// UserService manages back-office accounts
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUserInput is the payload for a new account. IsActive defaults to true.
type CreateUserInput struct {
	Username string         `json:"username" validate:"required,min=3,max=50"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8,max=72"`
	FullName string         `json:"full_name" validate:"required"`
	Role     model.UserRole `json:"role" validate:"required,enum"`
	IsActive *bool          `json:"is_active"`
}

// UpdateUserInput changes only the fields present in the payload.
// A present password is re-hashed.
type UpdateUserInput struct {
	Username optional.Field[string]         `json:"username" validate:"omitempty,min=3,max=50"`
	Email    optional.Field[string]         `json:"email" validate:"omitempty,email"`
	Password optional.Field[string]         `json:"password" validate:"omitempty,min=8,max=72"`
	FullName optional.Field[string]         `json:"full_name" validate:"omitempty,min=1"`
	Role     optional.Field[model.UserRole] `json:"role" validate:"omitempty,enum"`
	IsActive optional.Field[bool]           `json:"is_active"`
}

// GetUsers returns every account, active or not, newest first
func (s *UserService) GetUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

// GetUserByID returns the user or nil when it does not exist
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := findByID[model.User](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByUsername returns the user or nil when it does not exist
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := findOne[model.User](s.db.WithContext(ctx), "username = ?", username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns the user or nil when it does not exist
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := findOne[model.User](s.db.WithContext(ctx), "email = ?", normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// CreateUser stores a new account with a bcrypt hash of the password
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Username:     in.Username,
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     in.IsActive == nil || *in.IsActive,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserUnique(tx, user.Username, user.Email, 0); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create user", "username or email already in use")
	}
	return &user, nil
}

// UpdateUser applies the present fields of in. It returns nil when id does not exist.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	changes := query.Changes{}
	if password, ok := in.Password.Get(); ok {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes["password_hash"] = hash
	}

	var updated *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.User](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		username, _ := in.Username.Get()
		email, _ := in.Email.Get()
		email = normalizeEmail(email)
		if username == current.Username {
			username = ""
		}
		if email == current.Email {
			email = ""
		}
		if err := ensureUserUnique(tx, username, email, id); err != nil {
			return err
		}

		query.SetField(changes, "username", in.Username)
		if v, ok := in.Email.Get(); ok {
			changes["email"] = normalizeEmail(v)
		}
		query.SetField(changes, "full_name", in.FullName)
		query.SetField(changes, "role", in.Role)
		query.SetField(changes, "is_active", in.IsActive)
		changes.Touch(now(tx))

		if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.User](tx, id)
		return err
	})
	if err != nil {
		return nil, wrapWrite(err, "update user", "username or email already in use")
	}
	return updated, nil
}

// DeleteUser deactivates the account. The row is kept and stays visible to
// every lookup. It reports false when id does not exist.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	db := s.db.WithContext(ctx)
	result := db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now(db)})
	if result.Error != nil {
		return false, fmt.Errorf("failed to deactivate user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateUserLastLogin stamps the last successful sign-in
func (s *UserService) UpdateUserLastLogin(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	stamp := now(db)
	err := db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"last_login": stamp, "updated_at": stamp}).Error
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// ValidateUserCredentials returns the active user whose password matches, or
// nil for an unknown username, an inactive account or a wrong password.
func (s *UserService) ValidateUserCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	return user, nil
}

// ensureUserUnique checks the non-empty username and email against other accounts
func ensureUserUnique(tx *gorm.DB, username, email string, excludeID uint) error {
	if username != "" {
		if err := ensureUnique[model.User](tx, "username", username, excludeID, fmt.Sprintf("username %q is already taken", username)); err != nil {
			return err
		}
	}
	if email != "" {
		if err := ensureUnique[model.User](tx, "email", email, excludeID, fmt.Sprintf("email %q is already registered", email)); err != nil {
			return err
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
