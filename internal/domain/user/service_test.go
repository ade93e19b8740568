package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ijas-muhmd/todo-app/internal/domain/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, passwordHash string) (string, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

// plainHasher keeps tests fast; the bcrypt hasher has its own tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue(subject string, ttl time.Duration) (string, error) {
	args := m.Called(subject, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTokens) Validate(t string) (string, error) {
	args := m.Called(t)
	return args.String(0), args.Error(1)
}

func newTestService(repo *MockRepository, tokens *MockTokens) *Service {
	return NewService(repo, plainHasher{}, tokens, NewPasswordValidator(), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTokens))

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(User{}, ErrNotFound)
	mockRepo.On("Create", mock.Anything, "alice@example.com", mock.MatchedBy(func(hash string) bool {
		return hash != "" && hash != "pw123"
	})).Return("u1", nil)

	u, err := service.Register(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "pw123", u.PasswordHash)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_Duplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTokens))

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(User{ID: "u1", Email: "alice@example.com"}, nil)

	_, err := service.Register(context.Background(), "alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Register_RaceOnInsert(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTokens))

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(User{}, ErrNotFound)
	mockRepo.On("Create", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
		Return("", ErrAlreadyExists)

	_, err := service.Register(context.Background(), "alice@example.com", "pw123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo, new(MockTokens))

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(User{}, ErrNotFound)
	mockRepo.On("Create", mock.Anything, "alice@example.com", mock.AnythingOfType("string")).
		Return("", errors.New("database error"))

	_, err := service.Register(context.Background(), "alice@example.com", "pw123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Register_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "pw123"},
		{name: "bad email", email: "alice", password: "pw123"},
		{name: "empty password", email: "alice@example.com", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo, new(MockTokens))

			_, err := service.Register(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "register", de.Code)
			mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	stored := User{ID: "u1", Email: "alice@example.com", PasswordHash: "hashed:pw123"}

	tests := []struct {
		name        string
		email       string
		password    string
		found       User
		findErr     error
		expectedErr error
	}{
		{
			name:     "success",
			email:    "alice@example.com",
			password: "pw123",
			found:    stored,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "pw123",
			findErr:     ErrNotFound,
			expectedErr: ErrInvalidAuth,
		},
		{
			name:        "wrong password",
			email:       "alice@example.com",
			password:    "nope",
			found:       stored,
			expectedErr: ErrInvalidAuth,
		},
		{
			name:        "malformed hash",
			email:       "alice@example.com",
			password:    "pw123",
			found:       User{ID: "u1", Email: "alice@example.com", PasswordHash: "garbage"},
			expectedErr: ErrInvalidAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo, new(MockTokens))
			mockRepo.On("FindByEmail", mock.Anything, tt.email).Return(tt.found, tt.findErr)

			u, err := service.Authenticate(context.Background(), tt.email, tt.password)
			if tt.expectedErr != nil {
				assert.Equal(t, tt.expectedErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored, u)
		})
	}
}

func TestService_Login(t *testing.T) {
	mockRepo := new(MockRepository)
	tokens := new(MockTokens)
	service := newTestService(mockRepo, tokens)

	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(User{ID: "u1", Email: "alice@example.com", PasswordHash: "hashed:pw123"}, nil)
	tokens.On("Issue", "alice@example.com", time.Duration(0)).Return("signed.jwt.token", nil)

	tok, err := service.Login(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", tok)

	_, err = service.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidAuth)
	tokens.AssertNumberOfCalls(t, "Issue", 1)
}

func TestService_Current(t *testing.T) {
	alice := User{ID: "u1", Email: "alice@example.com", PasswordHash: "hashed:pw123"}

	t.Run("valid token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokens)
		service := newTestService(mockRepo, tokens)

		tokens.On("Validate", "good").Return("alice@example.com", nil)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(alice, nil)

		u, err := service.Current(context.Background(), "good")
		require.NoError(t, err)
		assert.Equal(t, alice, u)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokens)
		service := newTestService(mockRepo, tokens)

		tokens.On("Validate", "bad").Return("", token.ErrInvalidToken)

		_, err := service.Current(context.Background(), "bad")
		assert.ErrorIs(t, err, ErrInvalidAuth)
		mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("user deleted after issuance", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokens)
		service := newTestService(mockRepo, tokens)

		tokens.On("Validate", "orphan").Return("gone@example.com", nil)
		mockRepo.On("FindByEmail", mock.Anything, "gone@example.com").Return(User{}, ErrNotFound)

		_, err := service.Current(context.Background(), "orphan")
		assert.ErrorIs(t, err, ErrInvalidAuth)
	})

	t.Run("store failure is not unauthorized", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokens)
		service := newTestService(mockRepo, tokens)

		tokens.On("Validate", "good").Return("alice@example.com", nil)
		mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(User{}, errors.New("connection reset"))

		_, err := service.Current(context.Background(), "good")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidAuth)
	})
}

func TestService_WithRealTokens(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tokens, err := token.NewService("secret", "HS256", time.Hour, slog.Default(),
		token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	mockRepo := new(MockRepository)
	service := NewService(mockRepo, plainHasher{}, tokens, NewPasswordValidator(), slog.Default())
	alice := User{ID: "u1", Email: "alice@example.com", PasswordHash: "hashed:pw123"}
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(alice, nil)

	tok, err := service.Login(context.Background(), "alice@example.com", "pw123")
	require.NoError(t, err)

	u, err := service.Current(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	now = now.Add(2 * time.Hour)
	_, err = service.Current(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidAuth)
}
