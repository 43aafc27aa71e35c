package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/repository/mocks"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

func newTestService(secret string) (*Service, *mocks.UserRepository) {
	repo := &mocks.UserRepository{}
	svc := NewService(repo, security.NewBcryptHasher(bcrypt.MinCost), auth.NewJWTService(secret, time.Hour))
	return svc, repo
}

func notFound() error {
	return fmt.Errorf("failed to get user by email: %w", repository.ErrNotFound)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := &model.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"}

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestService("s3cret")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, notFound())
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ada@example.com" && u.PasswordHash != "secret123" &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
		})).Run(func(args mock.Arguments) {
			u := args.Get(1).(*model.User)
			u.ID = 11
			u.CreatedAt = time.Now()
		}).Return(nil)

		result, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(11), result.User.ID)
		assert.Equal(t, "Ada", result.User.Name)
		assert.NotNil(t, result.User.CreatedAt)
		assert.NotEmpty(t, result.Token)

		userID, err := svc.Authenticate(ctx, result.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(11), userID)
		repo.AssertExpectations(t)
	})

	t.Run("existing email", func(t *testing.T) {
		svc, repo := newTestService("s3cret")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&model.User{Base: model.Base{ID: 1}}, nil)

		_, err := svc.Register(ctx, req)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		assert.Equal(t, "User already exists with this email", apperrors.As(err).Message)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate", func(t *testing.T) {
		svc, repo := newTestService("s3cret")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, notFound())
		repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("failed to create user: %w", repository.ErrDuplicate))

		_, err := svc.Register(ctx, req)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
		assert.Equal(t, "User already exists with this email", apperrors.As(err).Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := newTestService("s3cret")
		_, err := svc.Register(ctx, &model.RegisterRequest{Email: "ada@example.com", Password: "secret123"})
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	})

	t.Run("missing secret", func(t *testing.T) {
		svc, repo := newTestService("")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, notFound())
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Register(ctx, req)
		appErr := apperrors.As(err)
		assert.Equal(t, apperrors.KindConfiguration, appErr.Kind)
		assert.Equal(t, "JWT_SECRET environment variable is not set", appErr.Message)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		svc, repo := newTestService("s3cret")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(nil, errors.New("connection reset"))

		_, err := svc.Register(ctx, req)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{Base: model.Base{ID: 5}, Name: "Ada", Email: "ada@example.com", PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestService("s3cret")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		result, err := svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), result.User.ID)
		assert.Nil(t, result.User.CreatedAt)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		svc, repo := newTestService("s3cret")
		repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, notFound())

		_, wrongPassword := svc.Login(ctx, &model.LoginRequest{Email: "ada@example.com", Password: "nope"})
		_, unknownEmail := svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

		for _, err := range []error{wrongPassword, unknownEmail} {
			appErr := apperrors.As(err)
			assert.Equal(t, apperrors.KindAuthentication, appErr.Kind)
			assert.Equal(t, "Invalid email or password", appErr.Message)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService("s3cret")

	_, err := svc.Authenticate(context.Background(), "garbage")
	appErr := apperrors.As(err)
	assert.Equal(t, apperrors.KindAuthentication, appErr.Kind)
	assert.Equal(t, "Invalid token", appErr.Message)
}
