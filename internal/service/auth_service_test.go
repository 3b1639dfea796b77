package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/repository"
)

// mockUserRepository is a mock implementation of repository.UserRepository
type mockUserRepository struct {
	users        map[string]*domain.User
	createError  error
	migrateError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.createError != nil {
		return r.createError
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users[id], nil
}

func (r *mockUserRepository) GetByUsernameOrEmail(ctx context.Context, ident string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == ident || u.Email == ident {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUserRepository) MigrateCredential(ctx context.Context, id, passwordHash string) error {
	if r.migrateError != nil {
		return r.migrateError
	}
	u := r.users[id]
	if u == nil {
		return repository.ErrNotMatched
	}
	u.PasswordHash = passwordHash
	u.LegacyPassword = ""
	return nil
}

func (r *mockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if u := r.users[id]; u != nil {
		u.LastLogin = &at
	}
	return nil
}

func (r *mockUserRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	u := r.users[id]
	if u == nil {
		return repository.ErrNotMatched
	}
	u.Role = role
	return nil
}

func (r *mockUserRepository) SetStatus(ctx context.Context, id string, status domain.Status) error {
	u := r.users[id]
	if u == nil {
		return repository.ErrNotMatched
	}
	u.Status = status
	return nil
}

func (r *mockUserRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotMatched
	}
	delete(r.users, id)
	return nil
}

func (r *mockUserRepository) List(ctx context.Context, pq dto.PageQuery) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *mockUserRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	var n int64
	for _, u := range r.users {
		if status == "" || u.Status == status {
			n++
		}
	}
	return n, nil
}

func newTestAuthService(users *mockUserRepository) *AuthService {
	issuer := NewJWTIssuer("test-secret-key", time.Hour)
	return NewAuthService(users, issuer, AuthServiceConfig{BcryptCost: bcrypt.MinCost})
}

func seedUser(repo *mockUserRepository, username, email, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Name:         username,
		Role:         domain.RoleRegistered,
		Status:       domain.StatusActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	repo.users[u.ID.Hex()] = u
	return u
}

func TestAuthService_Register(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := newTestAuthService(userRepo)

	t.Run("successful registration", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Username: "traveler",
			Email:    "traveler@example.com",
			Password: "Password1!",
			Name:     "Traveler",
		}

		proof, user, err := svc.Register(context.Background(), req)
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if proof == "" {
			t.Error("Register() proof is empty")
		}
		if user.Role != domain.RoleRegistered {
			t.Errorf("Register() Role = %v, want %v", user.Role, domain.RoleRegistered)
		}
		if user.Status != domain.StatusActive {
			t.Errorf("Register() Status = %v, want %v", user.Status, domain.StatusActive)
		}
		if user.PasswordHash == "" || user.PasswordHash == "Password1!" {
			t.Error("Register() stored credential is not a hash")
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Username: "traveler",
			Email:    "other@example.com",
			Password: "Password2!",
			Name:     "Other",
		}

		_, _, err := svc.Register(context.Background(), req)
		if !errors.Is(err, ErrUserExists) {
			t.Errorf("Register() error = %v, want %v", err, ErrUserExists)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := &dto.RegisterRequest{
			Username: "someone-else",
			Email:    "traveler@example.com",
			Password: "Password3!",
			Name:     "Someone",
		}

		_, _, err := svc.Register(context.Background(), req)
		if !errors.Is(err, ErrUserExists) {
			t.Errorf("Register() error = %v, want %v", err, ErrUserExists)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := newTestAuthService(userRepo)
	seedUser(userRepo, "alice", "alice@example.com", "Password1!")

	t.Run("login by username", func(t *testing.T) {
		proof, user, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "alice",
			Password: "Password1!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if proof == "" {
			t.Error("Login() proof is empty")
		}
		if user.LastLogin == nil {
			t.Error("Login() LastLogin not recorded")
		}
	})

	t.Run("login by email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "alice@example.com",
			Password: "Password1!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})

	t.Run("wrong password and unknown account are indistinguishable", func(t *testing.T) {
		_, _, errWrong := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "alice",
			Password: "nope",
		})
		_, _, errUnknown := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "nobody",
			Password: "nope",
		})
		if !errors.Is(errWrong, ErrInvalidCredentials) {
			t.Errorf("Login() wrong password error = %v, want %v", errWrong, ErrInvalidCredentials)
		}
		if errWrong != errUnknown {
			t.Errorf("Login() errors differ: %v vs %v", errWrong, errUnknown)
		}
	})
}

func TestAuthService_LegacyMigration(t *testing.T) {
	t.Run("plaintext match migrates to hash", func(t *testing.T) {
		userRepo := newMockUserRepository()
		svc := newTestAuthService(userRepo)
		legacy := &domain.User{
			ID:             primitive.NewObjectID(),
			Username:       "oldtimer",
			Email:          "oldtimer@example.com",
			LegacyPassword: "plain-secret",
			Role:           domain.RoleRegistered,
			Status:         domain.StatusActive,
		}
		userRepo.users[legacy.ID.Hex()] = legacy

		_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "oldtimer",
			Password: "plain-secret",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		stored := userRepo.users[legacy.ID.Hex()]
		if stored.PasswordHash == "" {
			t.Fatal("credential was not migrated to a hash")
		}
		if stored.LegacyPassword != "" {
			t.Error("plaintext credential was not cleared")
		}
		if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("plain-secret")) != nil {
			t.Error("migrated hash does not verify the original secret")
		}

		// The next login must take the hashed path.
		_, _, err = svc.Login(context.Background(), &dto.LoginRequest{
			Username: "oldtimer",
			Password: "plain-secret",
		})
		if err != nil {
			t.Fatalf("Login() after migration error = %v", err)
		}
	})

	t.Run("plaintext mismatch fails", func(t *testing.T) {
		userRepo := newMockUserRepository()
		svc := newTestAuthService(userRepo)
		legacy := &domain.User{
			ID:             primitive.NewObjectID(),
			Username:       "oldtimer",
			LegacyPassword: "plain-secret",
			Role:           domain.RoleRegistered,
			Status:         domain.StatusActive,
		}
		userRepo.users[legacy.ID.Hex()] = legacy

		_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "oldtimer",
			Password: "wrong",
		})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want %v", err, ErrInvalidCredentials)
		}
		if userRepo.users[legacy.ID.Hex()].PasswordHash != "" {
			t.Error("failed login must not migrate the credential")
		}
	})

	t.Run("persist failure still allows login", func(t *testing.T) {
		userRepo := newMockUserRepository()
		userRepo.migrateError = errors.New("write timeout")
		svc := newTestAuthService(userRepo)
		legacy := &domain.User{
			ID:             primitive.NewObjectID(),
			Username:       "oldtimer",
			LegacyPassword: "plain-secret",
			Role:           domain.RoleRegistered,
			Status:         domain.StatusActive,
		}
		userRepo.users[legacy.ID.Hex()] = legacy

		_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "oldtimer",
			Password: "plain-secret",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})
}

func TestAuthService_DeactivatedAccount(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := newTestAuthService(userRepo)
	user := seedUser(userRepo, "bob", "bob@example.com", "Password1!")
	user.Status = domain.StatusDeactivated

	t.Run("deactivated login is forbidden even with valid credentials", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "bob",
			Password: "Password1!",
		})
		if !errors.Is(err, ErrUserInactive) {
			t.Errorf("Login() error = %v, want %v", err, ErrUserInactive)
		}
	})

	t.Run("reactivation restores login", func(t *testing.T) {
		user.Status = domain.StatusActive
		_, _, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "bob",
			Password: "Password1!",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})
}

func TestAuthService_Me(t *testing.T) {
	userRepo := newMockUserRepository()
	svc := newTestAuthService(userRepo)
	user := seedUser(userRepo, "carol", "carol@example.com", "Password1!")

	t.Run("returns the current account", func(t *testing.T) {
		got, err := svc.Me(context.Background(), user.ID.Hex())
		if err != nil {
			t.Fatalf("Me() error = %v", err)
		}
		if got.Username != "carol" {
			t.Errorf("Me() Username = %v, want carol", got.Username)
		}
	})

	t.Run("vanished account", func(t *testing.T) {
		_, err := svc.Me(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Me() error = %v, want %v", err, ErrUserNotFound)
		}
	})
}
