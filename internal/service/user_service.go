package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"paragraph-titler/internal/apperror"
	"paragraph-titler/internal/auth"
	"paragraph-titler/internal/domain"
	"paragraph-titler/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = apperror.New(apperror.KindAuth, "invalid_credentials", "invalid username or password")
	// ErrUserExists is returned when the username or email is already registered.
	ErrUserExists = apperror.New(apperror.KindConflict, "user_exists", "username or email already exists")
	// ErrUserNotFound is returned for missing and inactive users alike, so callers
	// cannot tell a suspended account from one that never existed.
	ErrUserNotFound = apperror.New(apperror.KindAuth, "user_not_found", "user not found or inactive")
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	ResolveActiveUser(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	now    func() time.Time
}

func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		now:    time.Now,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if n := len(username); n < 3 || n > 50 {
		return nil, apperror.Newf(apperror.KindValidation, "invalid_username", "username must be between 3 and 50 characters")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperror.Newf(apperror.KindValidation, "invalid_email", "email address is invalid")
	}
	if len(in.Password) < 6 {
		return nil, apperror.Newf(apperror.KindValidation, "invalid_password", "password must be at least 6 characters")
	}
	firstName, err := optionalName("first_name", in.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := optionalName("last_name", in.LastName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	loginAt := s.now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	user.LastLogin = &loginAt

	return sanitizeUser(user), nil
}

func (s *userService) ResolveActiveUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return sanitizeUser(user), nil
}

func optionalName(field string, name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > 50 {
		return nil, apperror.Newf(apperror.KindValidation, "invalid_"+field, "%s must be at most 50 characters", field)
	}
	return &trimmed, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	cp := *user
	cp.PasswordHash = ""
	return &cp
}
