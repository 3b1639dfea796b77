package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// RouteHandler handles favorite route endpoints
type RouteHandler struct {
	routes *service.RouteService
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routes *service.RouteService) *RouteHandler {
	return &RouteHandler{routes: routes}
}

// List handles GET /api/routes/favorites
func (h *RouteHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pq := pageQuery(c)

	routes, total, err := h.routes.List(c.Request.Context(), userID, pq)
	if err != nil {
		logger.Get().Error("route list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Page(c, routes, response.NewPagination(pq.Page, pq.Size, total))
}

// Save handles POST /api/routes/favorites
func (h *RouteHandler) Save(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	req := &dto.SaveRouteRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Origin and destination are required")
		return
	}

	route, err := h.routes.Save(c.Request.Context(), userID, req)
	if err != nil {
		logger.Get().Error("route save failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, route)
}

// Delete handles DELETE /api/routes/favorites/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.routes.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrRouteNotFound) {
			response.NotFound(c, "Route not found")
			return
		}
		logger.Get().Error("route delete failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKMessage(c, "Route deleted")
}
