package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/auth"
	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/repository"
	"bookshelf/internal/http-api/validation"
	"bookshelf/internal/logger"
	"bookshelf/internal/session"
)

type AuthService interface {
	SignUp(ctx context.Context, form dto.SignupForm) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions session.Store
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		now:      time.Now,
	}
}

// SignUp creates an account from the signup form and opens a session for it.
func (s *authService) SignUp(ctx context.Context, form dto.SignupForm) (*models.User, string, error) {
	if form.Password1 != form.Password2 {
		return nil, "", fieldError("password2", "The two password fields didn't match.")
	}

	user, err := s.CreateUser(ctx, form.Username, form.Password1)
	if err != nil {
		return nil, "", err
	}

	token, err := s.sessions.NewSession(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("open session: %w", err)
	}
	return user, token, nil
}

// CreateUser validates the credentials and stores a new user.
func (s *authService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || len([]rune(username)) > 150 || !validation.ValidUsername(username) {
		return nil, fieldError("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	if problems := auth.CheckPassword(password, username); len(problems) > 0 {
		return nil, fieldError("password2", strings.Join(problems, " "))
	}

	// Check if user exists
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and opens a session.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, "", err
		}
		// same cost as a real comparison
		auth.BurnPasswordCheck(password)
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.FromContext(ctx).Warn("update last_login failed", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	token, err := s.sessions.NewSession(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("open session: %w", err)
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

// Authenticate resolves a session token to its user.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, ok, err := s.sessions.UserIDByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
