package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/service"
	"github.com/jengzang/route-history-backend/pkg/response"
)

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	trips, err := h.service.GetTrips(filter)
	if err != nil {
		respondError(c, err, "Failed to get trips")
		return
	}

	response.Success(c, trips)
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	trip, err := h.service.CreateTrip(req)
	if err != nil {
		respondError(c, err, "Failed to store trip")
		return
	}

	response.Created(c, trip)
}

// GetTripByID handles GET /api/v1/trips/:id
func (h *TripHandler) GetTripByID(c *gin.Context) {
	trip, err := h.service.GetTripByID(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get trip")
		return
	}

	response.Success(c, trip)
}

// GetTrackPoints handles GET /api/v1/trips/:id/points
func (h *TripHandler) GetTrackPoints(c *gin.Context) {
	points, err := h.service.GetTrackPoints(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get track points")
		return
	}

	response.Success(c, points)
}
