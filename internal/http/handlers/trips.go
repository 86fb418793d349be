package handlers

import (
	"net/http"
	"time"

	"manara/internal/domain/models"
	"manara/internal/http/middleware"
	"manara/internal/repositories"

	"github.com/gin-gonic/gin"
)

type tripPayload struct {
	RouteID              int64      `json:"routeId"`
	Status               string     `json:"status"`
	ScheduledTime        time.Time  `json:"scheduledTime" binding:"required"`
	EstimatedArrivalTime *time.Time `json:"estimatedArrivalTime"`
	ActualArrivalTime    *time.Time `json:"actualArrivalTime"`
}

// GET /api/trips
func GetTrips(c *gin.Context) {
	list, err := repositories.TripRepository{}.ListByUser(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/trips/upcoming
func GetUpcomingTrips(c *gin.Context) {
	list, err := repositories.TripRepository{}.ListUpcoming(middleware.UserID(c), time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/trips/past
func GetPastTrips(c *gin.Context) {
	list, err := repositories.TripRepository{}.ListPast(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/trips/ongoing
func GetOngoingTrip(c *gin.Context) {
	trip, err := repositories.TripRepository{}.GetOngoing(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	trip, err := repositories.TripRepository{}.GetByID(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var payload tripPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.RouteID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "routeId is required", nil)
		return
	}

	trip, err := tripService(c).Create(models.Trip{
		UserID:               middleware.UserID(c),
		RouteID:              payload.RouteID,
		Status:               payload.Status,
		ScheduledTime:        payload.ScheduledTime,
		EstimatedArrivalTime: payload.EstimatedArrivalTime,
		ActualArrivalTime:    payload.ActualArrivalTime,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trip": trip, "message": "Trip created successfully."})
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var payload tripPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	trip, err := tripService(c).Update(models.Trip{
		ID:                   id,
		UserID:               middleware.UserID(c),
		RouteID:              payload.RouteID,
		Status:               payload.Status,
		ScheduledTime:        payload.ScheduledTime,
		EstimatedArrivalTime: payload.EstimatedArrivalTime,
		ActualArrivalTime:    payload.ActualArrivalTime,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id cancels the trip rather than deleting the row.
func CancelTrip(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := tripService(c).Cancel(id, middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip cancelled successfully."})
}
