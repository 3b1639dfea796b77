package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Metrics handles GET /api/admin/metrics
func (h *AdminHandler) Metrics(c *gin.Context) {
	metrics, err := h.admin.Metrics(c.Request.Context())
	if err != nil {
		logger.Get().Error("admin metrics failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, metrics)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	pq := pageQuery(c)
	users, total, err := h.admin.ListUsers(c.Request.Context(), pq)
	if err != nil {
		logger.Get().Error("user list failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	response.Page(c, out, response.NewPagination(pq.Page, pq.Size, total))
}

// GetUser handles GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.admin.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Get().Error("user lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, dto.NewUserResponse(user))
}

// SetRole handles PATCH /api/admin/users/:id/role
func (h *AdminHandler) SetRole(c *gin.Context) {
	req := &dto.UpdateRoleRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Role is required")
		return
	}

	err := h.admin.SetRole(c.Request.Context(), c.Param("id"), domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, "Role must be REGISTERED or ADMIN")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "User not found")
		default:
			logger.Get().Error("role update failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OKMessage(c, "Role updated")
}

// SetStatus handles PATCH /api/admin/users/:id/status
func (h *AdminHandler) SetStatus(c *gin.Context) {
	req := &dto.UpdateStatusRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}

	err := h.admin.SetStatus(c.Request.Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, "Status must be ACTIVE or DEACTIVATED")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, "User not found")
		default:
			logger.Get().Error("status update failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OKMessage(c, "Status updated")
}

// DeleteUser handles DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	err := h.admin.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		logger.Get().Error("user delete failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKMessage(c, "User deleted")
}
