package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/ijas-muhmd/todo-app/internal/domain/token"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, email, password string) (User, error)
	Authenticate(ctx context.Context, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Current(ctx context.Context, accessToken string) (User, error)
}

type Service struct {
	repo      Repository
	hasher    Hasher
	tokens    token.Servicer
	validator Validator
	log       *slog.Logger
}

func NewService(repo Repository, hasher Hasher, tokens token.Servicer, validator Validator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		log:       log.With("component", "user_service"),
	}
}

// Register stores a new user. It does not log the user in.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	if err := s.validator.ValidateRegister(email, password); err != nil {
		s.log.Debug("validation failed", "email", email, "error", err)
		return User{}, invalidInput("register", err)
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return User{}, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.repo.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, ErrAlreadyExists
		}
		s.log.Error("failed to create user", "email", email, "error", err)
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)

	return User{ID: id, Email: email, PasswordHash: hash}, nil
}

// Authenticate never tells an unknown email apart from a wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidAuth
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return User{}, ErrInvalidAuth
	}

	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	accessToken, err := s.tokens.Issue(u.Email, 0)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return accessToken, nil
}

// Current resolves the caller behind a bearer token.
func (s *Service) Current(ctx context.Context, accessToken string) (User, error) {
	email, err := s.tokens.Validate(accessToken)
	if err != nil {
		return User{}, ErrInvalidAuth
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Warn("token subject has no user", "email", email)
			return User{}, ErrInvalidAuth
		}
		return User{}, fmt.Errorf("lookup user: %w", err)
	}

	return u, nil
}
