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

// DestinationHandler handles the destination catalog plus its ratings
// and favorites
type DestinationHandler struct {
	destinations *service.DestinationService
}

// NewDestinationHandler creates a new DestinationHandler
func NewDestinationHandler(destinations *service.DestinationService) *DestinationHandler {
	return &DestinationHandler{destinations: destinations}
}

// List handles GET /api/destinations
func (h *DestinationHandler) List(c *gin.Context) {
	pq := pageQuery(c)
	destinations, total, err := h.destinations.List(c.Request.Context(), pq, c.Query("search"))
	if err != nil {
		logger.Get().Error("destination list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Page(c, destinations, response.NewPagination(pq.Page, pq.Size, total))
}

// Get handles GET /api/destinations/:id
func (h *DestinationHandler) Get(c *gin.Context) {
	d, err := h.destinations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			response.NotFound(c, "Destination not found")
			return
		}
		logger.Get().Error("destination lookup failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, d)
}

// Create handles POST /api/destinations (admin)
func (h *DestinationHandler) Create(c *gin.Context) {
	req := &dto.CreateDestinationRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Name and country are required")
		return
	}

	d, err := h.destinations.Create(c.Request.Context(), req)
	if err != nil {
		logger.Get().Error("destination create failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, d)
}

// Update handles PUT /api/destinations/:id (admin)
func (h *DestinationHandler) Update(c *gin.Context) {
	req := &dto.UpdateDestinationRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	d, err := h.destinations.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			response.NotFound(c, "Destination not found")
			return
		}
		logger.Get().Error("destination update failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, d)
}

// Delete handles DELETE /api/destinations/:id (admin)
func (h *DestinationHandler) Delete(c *gin.Context) {
	err := h.destinations.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			response.NotFound(c, "Destination not found")
			return
		}
		logger.Get().Error("destination delete failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKMessage(c, "Destination deleted")
}

// RatingStats handles GET /api/destinations/:id/ratings/stats
func (h *DestinationHandler) RatingStats(c *gin.Context) {
	stats, err := h.destinations.RatingStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			response.NotFound(c, "Destination not found")
			return
		}
		logger.Get().Error("rating stats failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, stats)
}

// ListRatings handles GET /api/destinations/:id/ratings
func (h *DestinationHandler) ListRatings(c *gin.Context) {
	pq := pageQuery(c)
	ratings, total, err := h.destinations.ListRatings(c.Request.Context(), c.Param("id"), pq)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			response.NotFound(c, "Destination not found")
			return
		}
		logger.Get().Error("rating list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Page(c, ratings, response.NewPagination(pq.Page, pq.Size, total))
}

// MyRating handles GET /api/destinations/:id/ratings/me
func (h *DestinationHandler) MyRating(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	rating, err := h.destinations.MyRating(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			response.NotFound(c, "Destination not found")
		case errors.Is(err, service.ErrRatingNotFound):
			response.NotFound(c, "Rating not found")
		default:
			logger.Get().Error("rating lookup failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, rating)
}

// Rate handles POST /api/destinations/:id/ratings
func (h *DestinationHandler) Rate(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	req := &dto.RateDestinationRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Rating is required")
		return
	}

	rating, err := h.destinations.Rate(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			response.BadRequest(c, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrDestinationNotFound):
			response.NotFound(c, "Destination not found")
		default:
			logger.Get().Error("rating save failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, rating)
}

// DeleteRating handles DELETE /api/destinations/:id/ratings/me
func (h *DestinationHandler) DeleteRating(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	err := h.destinations.DeleteRating(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			response.NotFound(c, "Destination not found")
		case errors.Is(err, service.ErrRatingNotFound):
			response.NotFound(c, "Rating not found")
		default:
			logger.Get().Error("rating delete failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OKMessage(c, "Rating deleted")
}

// MyRatings handles GET /api/users/me/ratings
func (h *DestinationHandler) MyRatings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pq := pageQuery(c)

	ratings, total, err := h.destinations.ListUserRatings(c.Request.Context(), userID, pq)
	if err != nil {
		logger.Get().Error("rating list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Page(c, ratings, response.NewPagination(pq.Page, pq.Size, total))
}

// ToggleFavorite handles POST /api/destinations/:id/favorite
func (h *DestinationHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	isFavorite, err := h.destinations.ToggleFavorite(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			response.NotFound(c, "Destination not found")
			return
		}
		logger.Get().Error("favorite toggle failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, dto.ToggleFavoriteResponse{IsFavorite: isFavorite})
}

// MyFavorites handles GET /api/users/me/favorites
func (h *DestinationHandler) MyFavorites(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	destinations, err := h.destinations.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		logger.Get().Error("favorite list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, destinations)
}
