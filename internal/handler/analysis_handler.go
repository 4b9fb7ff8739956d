package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-history-backend/internal/models"
	"github.com/jengzang/route-history-backend/internal/service"
	"github.com/jengzang/route-history-backend/pkg/response"
)

// AnalysisHandler handles HTTP requests for route analyses
type AnalysisHandler struct {
	service *service.RouteAnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *service.RouteAnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// GetAnalysis handles GET /api/v1/trips/:id/analysis
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	result, ok := h.analyze(c, nil)
	if !ok {
		return
	}
	response.Success(c, result)
}

// GetSegments handles GET /api/v1/trips/:id/segments
func (h *AnalysisHandler) GetSegments(c *gin.Context) {
	result, ok := h.analyze(c, []string{"segments"})
	if !ok {
		return
	}
	if result.Segments == nil {
		result.Segments = []models.TripSegment{}
	}
	response.Success(c, result.Segments)
}

// GetStops handles GET /api/v1/trips/:id/stops
func (h *AnalysisHandler) GetStops(c *gin.Context) {
	result, ok := h.analyze(c, []string{"stops"})
	if !ok {
		return
	}
	if result.Stops == nil {
		result.Stops = []models.DetectedStop{}
	}
	response.Success(c, result.Stops)
}

// GetDeviations handles GET /api/v1/trips/:id/deviations
func (h *AnalysisHandler) GetDeviations(c *gin.Context) {
	result, ok := h.analyze(c, []string{"deviations"})
	if !ok {
		return
	}
	if result.Deviations == nil {
		result.Deviations = []models.RouteDeviation{}
	}
	response.Success(c, result.Deviations)
}

// GetStats handles GET /api/v1/trips/:id/stats
func (h *AnalysisHandler) GetStats(c *gin.Context) {
	result, ok := h.analyze(c, []string{"stats"})
	if !ok {
		return
	}
	response.Success(c, result.Stats)
}

// GetGeoJSON handles GET /api/v1/trips/:id/geojson. The body is a bare
// FeatureCollection so map clients can load it directly.
func (h *AnalysisHandler) GetGeoJSON(c *gin.Context) {
	var q models.AnalysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	fc, err := h.service.TripGeoJSON(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		respondError(c, err, "Failed to build GeoJSON")
		return
	}

	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// CompareTrips handles GET /api/v1/trips/compare?a=&b=
func (h *AnalysisHandler) CompareTrips(c *gin.Context) {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		response.BadRequest(c, "Query parameters a and b are required")
		return
	}

	cmp, err := h.service.CompareTrips(c.Request.Context(), a, b)
	if err != nil {
		respondError(c, err, "Failed to compare trips")
		return
	}

	response.Success(c, cmp)
}

// AnalyzeInline handles POST /api/v1/analysis
func (h *AnalysisHandler) AnalyzeInline(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.AnalyzeInline(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to analyze trace")
		return
	}

	response.Success(c, result)
}

func (h *AnalysisHandler) analyze(c *gin.Context, names []string) (*models.TripAnalysis, bool) {
	var q models.AnalysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return nil, false
	}

	result, err := h.service.AnalyzeTrip(c.Request.Context(), c.Param("id"), q, names)
	if err != nil {
		respondError(c, err, "Failed to analyze trip")
		return nil, false
	}
	return result, true
}
