package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"innroutes/models"
	"innroutes/services/trip"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TripHandler exposes saved trips and budget tracking.
type TripHandler struct {
	Svc trip.TripService
}

// CreateTripHandler handles POST /api/trips.
func (h *TripHandler) CreateTripHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input trip.CreateTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Svc.CreateTrip(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListTripsHandler handles GET /api/trips.
func (h *TripHandler) ListTripsHandler(c *gin.Context) {
	userID := c.GetString("userID")
	trips, err := h.Svc.ListTrips(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("failed to list trips", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load trips"})
		return
	}
	if trips == nil {
		trips = []models.UserTrip{}
	}
	c.JSON(http.StatusOK, trips)
}

// GetTripHandler handles GET /api/trips/:id.
func (h *TripHandler) GetTripHandler(c *gin.Context) {
	userID := c.GetString("userID")
	t, err := h.Svc.GetTrip(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		tripErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTripHandler handles DELETE /api/trips/:id.
func (h *TripHandler) DeleteTripHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Svc.DeleteTrip(c.Request.Context(), userID, c.Param("id")); err != nil {
		tripErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

// AddExpenseHandler handles POST /api/trips/:id/expenses.
func (h *TripHandler) AddExpenseHandler(c *gin.Context) {
	userID := c.GetString("userID")
	var input trip.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Svc.AddExpense(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			tripErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// BudgetSummaryHandler handles GET /api/trips/:id/budget.
func (h *TripHandler) BudgetSummaryHandler(c *gin.Context) {
	userID := c.GetString("userID")
	summary, err := h.Svc.BudgetSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		tripErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportItineraryHandler handles GET /api/trips/:id/itinerary.pdf.
func (h *TripHandler) ExportItineraryHandler(c *gin.Context) {
	userID := c.GetString("userID")
	tripID := c.Param("id")
	doc, err := h.Svc.ExportItineraryPDF(c.Request.Context(), userID, tripID)
	if err != nil {
		tripErrorResponse(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.pdf"`, tripID))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func tripErrorResponse(c *gin.Context, err error) {
	if errors.Is(err, trip.ErrTripNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	getLogger(c).Error("trip operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
}
