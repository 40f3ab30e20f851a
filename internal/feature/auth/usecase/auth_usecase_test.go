package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"taskhub_backend/internal/feature/auth/domain/entity"
	"taskhub_backend/internal/shared/hashpool"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(email string) (*entity.User, error)
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	// IssueFunc is called when the Issue method is invoked.
	IssueFunc func(userID uint, email string) (string, error)
}

// Issue is the mock implementation of the Issue method.
func (m *mockTokenIssuer) Issue(userID uint, email string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, email)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	// Default: return user not found error
	return nil, ErrUserNotFound
}

// testHasher はテスト高速化のため最小コストのbcryptプールを返します。
func testHasher() *hashpool.Pool {
	return hashpool.New(1, bcrypt.MinCost)
}

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("successful signup", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				// Verify that the password is hashed
				if len(user.Password) == 0 || user.Password == "password123" {
					t.Errorf("password is not hashed")
				}
				// Verify that it's a valid bcrypt hash
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				// Email must be stored lower-cased
				if user.Email != "test@example.com" {
					t.Errorf("expected normalized email, got %q", user.Email)
				}
				// Self-registered accounts are always plain active users
				if user.Role != entity.RoleUser {
					t.Errorf("expected role %q, got %q", entity.RoleUser, user.Role)
				}
				if !user.Active {
					t.Error("expected new account to be active")
				}
				user.ID = 1
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		user, token, err := uc.Signup(ctx, "Test User", "  Test@Example.COM ", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.ID != 1 {
			t.Fatalf("expected created user with ID 1, got %+v", user)
		}
		if token != "mock-jwt-token" {
			t.Errorf("expected token 'mock-jwt-token', got %q", token)
		}
	})

	t.Run("password too short", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				t.Error("repository should not be called")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Signup(ctx, "Test User", "test@example.com", "short")

		if err == nil {
			t.Fatal("expected error but got nil")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Signup(ctx, "Test User", "existing@example.com", "password123")

		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	// Hashed password for testing
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     entity.RoleUser,
		Active:   true,
	}

	findTestUser := func(email string) (*entity.User, error) {
		if email == testUser.Email {
			u := *testUser
			return &u, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}
		mockTokens := &mockTokenIssuer{
			IssueFunc: func(userID uint, email string) (string, error) {
				if userID != testUser.ID || email != testUser.Email {
					t.Errorf("unexpected userID or email: got userID=%d, email=%s", userID, email)
				}
				return "mock-jwt-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens, testHasher())
		user, token, err := uc.Login(ctx, "test@example.com", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "mock-jwt-token" {
			t.Errorf("expected token 'mock-jwt-token', got: %q", token)
		}
		if user == nil || user.ID != testUser.ID {
			t.Errorf("expected user %d, got %+v", testUser.ID, user)
		}
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Login(ctx, "TEST@Example.com", "password123")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Login(ctx, "wrong@example.com", "password123")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Login(ctx, "test@example.com", "wrong-password")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("deactivated account", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				u := *testUser
				u.Active = false
				return &u, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Login(ctx, "test@example.com", "password123")

		if !errors.Is(err, ErrAccountDeactivated) {
			t.Errorf("expected ErrAccountDeactivated, got: %v", err)
		}
	})

	t.Run("deactivated account with wrong password stays generic", func(t *testing.T) {
		// 無効化されたアカウントでもパスワード不一致なら汎用エラーを返し、
		// アカウントの状態を漏らさない
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				u := *testUser
				u.Active = false
				return &u, nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockTokenIssuer{}, testHasher())
		_, _, err := uc.Login(ctx, "test@example.com", "wrong-password")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("token generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{FindByEmailFunc: findTestUser}
		mockTokens := &mockTokenIssuer{
			IssueFunc: func(userID uint, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := NewAuthUsecase(mockRepo, mockTokens, testHasher())
		_, _, err := uc.Login(ctx, "test@example.com", "password123")

		if err == nil {
			t.Fatal("expected error but got nil")
		}

		expectedErrMsg := "failed to generate token: failed to sign token"
		if err.Error() != expectedErrMsg {
			t.Errorf("expected error message %q, got: %q", expectedErrMsg, err.Error())
		}
	})
}
