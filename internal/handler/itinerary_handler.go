package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GabrielBaezJ/travel-brain/internal/domain"
	"github.com/GabrielBaezJ/travel-brain/internal/dto"
	"github.com/GabrielBaezJ/travel-brain/internal/logger"
	"github.com/GabrielBaezJ/travel-brain/internal/response"
	"github.com/GabrielBaezJ/travel-brain/internal/service"
)

// ItineraryHandler handles itinerary endpoints
type ItineraryHandler struct {
	itineraries *service.ItineraryService
}

// NewItineraryHandler creates a new ItineraryHandler
func NewItineraryHandler(itineraries *service.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraries: itineraries}
}

func (h *ItineraryHandler) writeError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrTripNotFound):
		response.NotFound(c, "Trip not found")
	case errors.Is(err, service.ErrItineraryNotFound):
		response.NotFound(c, "Itinerary not found")
	case errors.Is(err, service.ErrDayNotFound):
		response.NotFound(c, "Itinerary day not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, "Resource does not belong to you")
	default:
		logger.Get().Error(action, zap.Error(err))
		response.InternalError(c)
	}
}

// Save handles POST /api/trips/:id/itinerary
func (h *ItineraryHandler) Save(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	req := &dto.SaveItineraryRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	it, err := h.itineraries.Save(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "itinerary save failed")
		return
	}
	response.OK(c, it)
}

// GetByTrip handles GET /api/trips/:id/itinerary
func (h *ItineraryHandler) GetByTrip(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	it, err := h.itineraries.GetByTrip(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err, "itinerary lookup failed")
		return
	}
	response.OK(c, it)
}

// ListMine handles GET /api/users/me/itineraries
func (h *ItineraryHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	pq := pageQuery(c)

	itineraries, total, err := h.itineraries.ListByUser(c.Request.Context(), userID, pq)
	if err != nil {
		logger.Get().Error("itinerary list failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Page(c, itineraries, response.NewPagination(pq.Page, pq.Size, total))
}

// Update handles PUT /api/itineraries/:id
func (h *ItineraryHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	req := &dto.UpdateItineraryRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	it, err := h.itineraries.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "itinerary update failed")
		return
	}
	response.OK(c, it)
}

// UpdateDay handles PUT /api/itineraries/:id/days/:n
func (h *ItineraryHandler) UpdateDay(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	dayNumber, err := strconv.Atoi(c.Param("n"))
	if err != nil || dayNumber < 1 {
		response.BadRequest(c, "Day number must be a positive integer")
		return
	}

	day := domain.ItineraryDay{}
	if err := c.ShouldBindJSON(&day); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	it, err := h.itineraries.UpdateDay(c.Request.Context(), userID, c.Param("id"), dayNumber, day)
	if err != nil {
		h.writeError(c, err, "itinerary day update failed")
		return
	}
	response.OK(c, it)
}

// Delete handles DELETE /api/itineraries/:id
func (h *ItineraryHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.itineraries.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err, "itinerary delete failed")
		return
	}
	response.OKMessage(c, "Itinerary deleted")
}
