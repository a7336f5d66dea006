package user

import (
	"context"
	"fmt"
	"time"

	userRepo "pawhub/database/repository/user"
	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// AuthResponse contains the authenticated user's ID, role and JWT token.
type AuthResponse struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// UserService defines business logic for account operations.
type UserService interface {
	// RegisterUser validates the signup payload, creates the account and
	// returns a fresh session token.
	RegisterUser(reg models.UserRegistration) (*AuthResponse, error)
	// AuthenticateUser verifies credentials and returns a session token.
	AuthenticateUser(email, password string) (*AuthResponse, error)
	// GetUserByID retrieves a user by its unique ID.
	GetUserByID(userID string) (*models.User, error)
	// UpdateProfile applies a partial profile edit.
	UpdateProfile(userID string, upd models.UserUpdate) (*models.User, error)
	// DeleteUser removes an account.
	DeleteUser(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// RegisterUser validates required fields, hashes the password, persists the
// account and returns a session token.
func (s *DefaultUserService) RegisterUser(reg models.UserRegistration) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, utils.NewServiceError(utils.ErrConflict, fmt.Sprintf("user with email %s already exists", reg.Email))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Phone:        reg.Phone,
		City:         reg.City,
		Role:         models.RoleUser,
		TrustStatus:  models.TrustNew,
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(usr)
}

// AuthenticateUser verifies credentials and returns a session token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, utils.NewServiceError(utils.ErrForbidden, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewServiceError(utils.ErrForbidden, "invalid email or password")
	}
	if usr.IsBanned {
		return nil, utils.NewServiceError(utils.ErrForbidden, "account is banned")
	}
	return s.issueToken(usr)
}

// issueToken signs a JWT and caches its hash so sessions can be revoked.
func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := fmt.Sprintf("session:%s", usr.ID)
	if err := utils.GetAuthCacheClient().Set(ctx, key, utils.HashToken(token), tokenTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to cache session token", zap.Error(err), zap.String("userID", usr.ID))
	}

	return &AuthResponse{ID: usr.ID, Role: usr.Role, Token: token}, nil
}

// GetUserByID retrieves a user by its unique ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("user %s not found", userID))
	}
	return usr, nil
}

// UpdateProfile applies a partial profile edit. Zero-value fields are left
// untouched.
func (s *DefaultUserService) UpdateProfile(userID string, upd models.UserUpdate) (*models.User, error) {
	usr, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != "" && upd.Email != usr.Email {
		existing, err := s.Repo.GetByEmail(upd.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing user: %w", err)
		}
		if existing != nil {
			return nil, utils.NewServiceError(utils.ErrConflict, fmt.Sprintf("email %s is already in use", upd.Email))
		}
		usr.Email = upd.Email
	}
	if upd.FirstName != "" {
		usr.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		usr.LastName = upd.LastName
	}
	if upd.Phone != "" {
		usr.Phone = upd.Phone
	}
	if upd.City != "" {
		usr.City = upd.City
	}

	if err := s.Repo.Update(usr); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return usr, nil
}

// DeleteUser removes an account.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	return s.Repo.Delete(userID)
}
