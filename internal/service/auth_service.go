package service

import (
	"errors"
	"fmt"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/internal/repository"
	"github.com/alihfala/mando-articles/pkg/jwt"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest signup payload
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the signup payload.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50), is.Alphanumeric),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResult is a user plus a fresh token pair.
type AuthResult struct {
	User   *domain.UserResponse `json:"user"`
	Tokens *jwt.TokenPair       `json:"tokens"`
}

// AuthService handles registration, login, guest sessions, and token refresh.
type AuthService interface {
	Register(req RegisterRequest) (*AuthResult, error)
	Login(req LoginRequest) (*AuthResult, error)
	GuestSession() (*AuthResult, error)
	Refresh(refreshToken string) (*jwt.TokenPair, error)
	GetUser(userID uint64) (*domain.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

// NewAuthService creates an AuthService
func NewAuthService(users repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(req RegisterRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	taken, err := s.users.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrEmailTaken
	}

	taken, err = s.users.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *authService) Login(req LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// GuestSession creates a throwaway guest account. Guests can read and hold a
// session but every write endpoint rejects them.
func (s *authService) GuestSession() (*AuthResult, error) {
	suffix := uuid.NewString()[:8]
	user := &domain.User{
		FullName: "Guest",
		Username: "guest_" + suffix,
		Email:    fmt.Sprintf("guest_%s@guest.local", suffix),
		Password: "",
		IsGuest:  true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Refresh(refreshToken string) (*jwt.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	// re-check the user still exists
	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	return s.tokens.GeneratePair(user.ID, user.Username, user.IsGuest)
}

func (s *authService) GetUser(userID uint64) (*domain.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *authService) issue(user *domain.User) (*AuthResult, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Username, user.IsGuest)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.ToResponse(), Tokens: pair}, nil
}
