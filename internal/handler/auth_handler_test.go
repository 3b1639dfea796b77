package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/GabrielBaezJ/travel-brain/internal/config"
	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/middleware"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// memUserRepository is an in-memory repository.UserRepository
type memUserRepository struct {
	users map[string]*domain.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[string]*domain.User)}
}

func (r *memUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *memUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users[id], nil
}

func (r *memUserRepository) GetByUsernameOrEmail(ctx context.Context, ident string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == ident || u.Email == ident {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepository) MigrateCredential(ctx context.Context, id, passwordHash string) error {
	if u := r.users[id]; u != nil {
		u.PasswordHash = passwordHash
		u.LegacyPassword = ""
	}
	return nil
}

func (r *memUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if u := r.users[id]; u != nil {
		u.LastLogin = &at
	}
	return nil
}

func (r *memUserRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	r.users[id].Role = role
	return nil
}

func (r *memUserRepository) SetStatus(ctx context.Context, id string, status domain.Status) error {
	r.users[id].Status = status
	return nil
}

func (r *memUserRepository) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepository) List(ctx context.Context, pq dto.PageQuery) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (r *memUserRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return 0, nil
}

func newAuthTestRouter(mode config.AuthMode) (*gin.Engine, *memUserRepository) {
	gin.SetMode(gin.TestMode)

	cfg := config.AuthConfig{
		Mode:          mode,
		JWTSecret:     "test-secret-key",
		TokenTTL:      time.Hour,
		SessionTTL:    time.Hour,
		SessionCookie: "sid",
		BcryptCost:    4,
	}

	users := newMemUserRepository()
	var issuer service.IdentityIssuer
	if mode == config.AuthModeSession {
		issuer = service.NewSessionIssuer(newMemSessionRepository(), cfg.SessionTTL)
	} else {
		issuer = service.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	}
	auth := service.NewAuthService(users, issuer, service.AuthServiceConfig{BcryptCost: cfg.BcryptCost})
	h := NewAuthHandler(auth, cfg)

	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.GET("/api/auth/me", middleware.RequireAuth(issuer, cfg.SessionCookie), h.Me)
	router.POST("/api/auth/logout", middleware.RequireAuth(issuer, cfg.SessionCookie), h.Logout)
	return router, users
}

// memSessionRepository is an in-memory repository.SessionRepository
type memSessionRepository struct {
	sessions map[string]*domain.Session
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepository) Create(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	return r.sessions[id], nil
}

func (r *memSessionRepository) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func postJSON(router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_TokenMode(t *testing.T) {
	router, _ := newAuthTestRouter(config.AuthModeToken)

	w := postJSON(router, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Password1!","name":"Alice"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	var envelope struct {
		OK   bool `json:"ok"`
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if !envelope.OK || envelope.Data.Token == "" {
		t.Fatalf("register response missing token: %s", w.Body.String())
	}

	t.Run("me round-trip never leaks credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("me status = %d, body = %s", w.Code, w.Body.String())
		}
		body := w.Body.String()
		if strings.Contains(body, "passwordHash") || strings.Contains(body, "Password1!") {
			t.Errorf("me response leaks credentials: %s", body)
		}
	})

	t.Run("wrong password and unknown account are byte-identical", func(t *testing.T) {
		wrong := postJSON(router, "/api/auth/login", `{"username":"alice","password":"nope"}`)
		unknown := postJSON(router, "/api/auth/login", `{"username":"nobody","password":"nope"}`)
		if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
			t.Fatalf("login statuses = %d, %d, want 401", wrong.Code, unknown.Code)
		}
		if wrong.Body.String() != unknown.Body.String() {
			t.Errorf("login failure bodies differ:\n%s\n%s", wrong.Body.String(), unknown.Body.String())
		}
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		w := postJSON(router, "/api/auth/register",
			`{"username":"alice","email":"other@example.com","password":"Password1!","name":"Other"}`)
		if w.Code != http.StatusConflict {
			t.Errorf("register status = %d, want %d", w.Code, http.StatusConflict)
		}
	})
}

func TestAuthHandler_SessionMode(t *testing.T) {
	router, _ := newAuthTestRouter(config.AuthModeSession)

	w := postJSON(router, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"Password1!","name":"Bob"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), `"token"`) {
		t.Errorf("session mode must not return a token in the body: %s", w.Body.String())
	}

	var sid string
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			sid = c.Value
			if !c.HttpOnly {
				t.Error("session cookie is not httpOnly")
			}
		}
	}
	if sid == "" {
		t.Fatal("session mode did not set the sid cookie")
	}

	t.Run("cookie authenticates me", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("me status = %d, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("logout status = %d, body = %s", w.Code, w.Body.String())
		}

		w2 := httptest.NewRecorder()
		req2 := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req2.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		router.ServeHTTP(w2, req2)
		if w2.Code != http.StatusUnauthorized {
			t.Errorf("me after logout status = %d, want 401", w2.Code)
		}
	})
}
