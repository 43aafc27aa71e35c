package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

const (
	msgMissingRegisterFields = "Name, email, and password are required"
	msgMissingLoginFields    = "Email and password are required"
	msgUserExists            = "User already exists with this email"
	msgInvalidCredentials    = "Invalid email or password"
	msgInvalidToken          = "Invalid token"
)

type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error)
	Authenticate(ctx context.Context, token string) (int64, error)
}

type Service struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	jwtSvc   auth.JWTService
}

func NewService(userRepo repository.UserRepository, hasher security.PasswordHasher, jwtSvc auth.JWTService) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		jwtSvc:   jwtSvc,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResult, error) {
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation(msgMissingRegisterFields)
	}

	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, apperrors.Conflict(msgUserExists, nil)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Internal(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict(msgUserExists, err)
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user registered")

	createdAt := user.CreatedAt
	return &model.AuthResult{
		User: model.UserView{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: &createdAt,
		},
		Token: token,
	}, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation(msgMissingLoginFields)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthenticated(msgInvalidCredentials)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, apperrors.Unauthenticated(msgInvalidCredentials)
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthResult{
		User: model.UserView{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		Token: token,
	}, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *Service) Authenticate(_ context.Context, token string) (int64, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrMissingSecret) {
			return 0, apperrors.Configuration(err.Error(), err)
		}
		return 0, apperrors.Unauthenticated(msgInvalidToken)
	}
	return claims.UserID, nil
}

func (s *Service) issue(userID int64) (string, error) {
	token, err := s.jwtSvc.GenerateToken(userID)
	if err != nil {
		if errors.Is(err, auth.ErrMissingSecret) {
			return "", apperrors.Configuration(err.Error(), err)
		}
		return "", apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}
	return token, nil
}
