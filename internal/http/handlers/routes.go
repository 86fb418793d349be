package handlers

import (
	"net/http"

	"manara/internal/domain/models"
	"manara/internal/geo"
	"manara/internal/http/middleware"
	"manara/internal/repositories"
	"manara/internal/utils"

	"github.com/gin-gonic/gin"
)

type routeLocationPayload struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Address   string   `json:"address"`
}

type routeStopPayload struct {
	Location      routeLocationPayload `json:"location" binding:"required"`
	Sequence      int                  `json:"sequence" binding:"required"`
	EstimatedTime int                  `json:"estimatedTime"`
}

type routePayload struct {
	Name              string               `json:"name" binding:"required"`
	StartLocation     routeLocationPayload `json:"startLocation" binding:"required"`
	EndLocation       routeLocationPayload `json:"endLocation" binding:"required"`
	EstimatedDuration int                  `json:"estimatedDuration"`
	IsSaved           bool                 `json:"isSaved"`
	Stops             []routeStopPayload   `json:"stops"`
}

// GET /api/routes/mine
func GetMyRoutes(c *gin.Context) {
	list, err := routeRepo().ListByUser(middleware.UserID(c), false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/routes/saved
func GetSavedRoutes(c *gin.Context) {
	list, err := routeRepo().ListByUser(middleware.UserID(c), true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/routes/mine/:id
func GetRouteByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	rt, err := routeRepo().GetByID(id, middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// POST /api/routes
//
// Creates the route, its endpoint locations and stops in one transaction.
func CreateRoute(c *gin.Context) {
	var payload routePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	start, ok := routeLocation(c, payload.StartLocation)
	if !ok {
		return
	}
	end, ok := routeLocation(c, payload.EndLocation)
	if !ok {
		return
	}

	rt := models.Route{
		Name:              utils.NormalizeSpace(payload.Name),
		StartLocation:     start,
		EndLocation:       end,
		EstimatedDuration: payload.EstimatedDuration,
		IsSaved:           payload.IsSaved,
		CreatedBy:         middleware.UserID(c),
	}
	for _, sp := range payload.Stops {
		loc, ok := routeLocation(c, sp.Location)
		if !ok {
			return
		}
		rt.Stops = append(rt.Stops, models.RouteStop{
			Location:      loc,
			Sequence:      sp.Sequence,
			EstimatedTime: sp.EstimatedTime,
		})
	}

	id, err := routeRepo().CreateWithStops(rt)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := routeRepo().GetByID(id, rt.CreatedBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": created, "message": "route created"})
}

// PUT /api/routes/mine/:id/save and .../unsave
func SetRouteSaved(saved bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c)
		if !ok {
			return
		}
		if err := routeRepo().SetSaved(id, middleware.UserID(c), saved); err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "route saved flag updated", "isSaved": saved})
	}
}

func routeRepo() repositories.RouteRepository {
	return repositories.RouteRepository{}
}

func routeLocation(c *gin.Context, payload routeLocationPayload) (models.Location, bool) {
	p := geo.Point{Lat: *payload.Latitude, Lng: *payload.Longitude}
	if !p.Valid() {
		respondError(c, http.StatusBadRequest, "validation_error", "latitude/longitude out of range", nil)
		return models.Location{}, false
	}
	return models.Location{
		Name:      utils.NormalizeSpace(payload.Name),
		Latitude:  p.Lat,
		Longitude: p.Lng,
		Address:   utils.NormalizeSpace(payload.Address),
	}, true
}
