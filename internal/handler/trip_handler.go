package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/middleware"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// TripHandler handles trip endpoints
type TripHandler struct {
	trips *service.TripService
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(trips *service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

// callerID resolves the authenticated caller's ObjectID. RequireAuth
// guarantees the identity is present on these routes.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := middleware.Identity(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "Invalid or expired credentials")
		return primitive.NilObjectID, false
	}
	return oid, true
}

func pageQuery(c *gin.Context) dto.PageQuery {
	return dto.ParsePageQuery(c.Query("page"), c.Query("size"))
}

// List handles GET /api/trips
func (h *TripHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pq := pageQuery(c)

	trips, total, err := h.trips.List(c.Request.Context(), userID, pq)
	if err != nil {
		logger.Get().Error("trip list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Page(c, trips, response.NewPagination(pq.Page, pq.Size, total))
}

// Get handles GET /api/trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	trip, err := h.trips.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFound(c, "Trip not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "Trip does not belong to you")
		default:
			logger.Get().Error("trip lookup failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, trip)
}

// Create handles POST /api/trips
func (h *TripHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	req := &dto.CreateTripRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Name and destination are required")
		return
	}

	trip, err := h.trips.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.BadRequest(c, "Invalid date format")
			return
		}
		logger.Get().Error("trip create failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, trip)
}

// Delete handles DELETE /api/trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	err := h.trips.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			response.NotFound(c, "Trip not found")
		case errors.Is(err, service.ErrNotOwner):
			response.Forbidden(c, "Trip does not belong to you")
		default:
			logger.Get().Error("trip delete failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OKMessage(c, "Trip deleted")
}
