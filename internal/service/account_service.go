package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"medimart-backend/internal/apperr"
	"medimart-backend/internal/auth"
	"medimart-backend/internal/config"
	"medimart-backend/internal/models"
	"medimart-backend/internal/store"
)

// AccountService handles registration, login and profile management.
type AccountService struct {
	users  store.UserStore
	jwtCfg *config.JWTConfig
}

func NewAccountService(users store.UserStore, jwtCfg *config.JWTConfig) *AccountService {
	return &AccountService{users: users, jwtCfg: jwtCfg}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register creates a customer account with a bcrypt-hashed password.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" {
		return nil, apperr.Invalid("name and email are required")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, apperr.Invalid("email is malformed")
	}
	if len(input.Password) < 6 {
		return nil, apperr.Invalid("password must be at least 6 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}
	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("email is already registered")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "create user", err)
	}
	user.Password = ""
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperr.New(apperr.KindUnauthorized, "invalid email or password")
		}
		return nil, "", apperr.Wrap(apperr.KindInternal, "load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}
	token, err := auth.GenerateToken(s.jwtCfg, user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "sign token", err)
	}
	user.Password = ""
	return user, token, nil
}

// GetProfile returns the caller's account without the password hash.
func (s *AccountService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load user", err)
	}
	user.Password = ""
	return user, nil
}

type UpdateProfileInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile patches the caller's name and phone. Email and role are
// immutable here.
func (s *AccountService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load user", err)
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "update user", err)
	}
	user.Password = ""
	return user, nil
}
