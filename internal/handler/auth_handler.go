package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/config"
	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/middleware"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth *service.AuthService
	cfg  config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	req := &dto.RegisterRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	proof, user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Conflict(c, "Username or email already registered")
			return
		}
		logger.Get().Error("registration failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, h.authResponse(c, proof, user))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	req := &dto.LoginRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	proof, user, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid credentials")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, "Account is deactivated")
		default:
			logger.Get().Error("login failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, h.authResponse(c, proof, user))
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.auth.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Get().Error("profile lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, dto.NewUserResponse(user))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	proof := middleware.ExtractProof(c, h.cfg.SessionCookie)
	if err := h.auth.Logout(c.Request.Context(), proof); err != nil {
		logger.Get().Error("logout failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	if h.cfg.Mode == config.AuthModeSession {
		h.clearSessionCookie(c)
	}
	response.OKMessage(c, "Logged out")
}

// authResponse shapes the login/register payload for the configured auth
// mode. Session mode puts the credential in a cookie, not the body.
func (h *AuthHandler) authResponse(c *gin.Context, proof string, user *domain.User) dto.AuthResponse {
	resp := dto.AuthResponse{User: dto.NewUserResponse(user)}
	if h.cfg.Mode == config.AuthModeSession {
		h.setSessionCookie(c, proof)
	} else {
		resp.Token = proof
	}
	return resp
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookie, sessionID, int(h.cfg.SessionTTL.Seconds()), "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", "", false, true)
}
