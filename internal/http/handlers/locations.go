package handlers

import (
	"net/http"

	"manara/internal/domain/models"
	"manara/internal/geo"
	"manara/internal/repositories"
	"manara/internal/utils"

	"github.com/gin-gonic/gin"
)

type locationPayload struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Address   string   `json:"address"`
}

// GET /api/locations/:id
func GetLocationByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	l, err := repositories.LocationRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// POST /api/locations
func CreateLocation(c *gin.Context) {
	var payload locationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	l, ok := locationFromPayload(c, payload)
	if !ok {
		return
	}

	id, err := repositories.LocationRepository{}.Create(l)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "location created", "id": id})
}

// PUT /api/locations/:id
func UpdateLocation(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var payload locationPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	l, ok := locationFromPayload(c, payload)
	if !ok {
		return
	}
	l.ID = id

	if err := (repositories.LocationRepository{}).Update(l); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location updated"})
}

// DELETE /api/locations/:id
func DeleteLocation(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.LocationRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location deleted"})
}

func locationFromPayload(c *gin.Context, payload locationPayload) (models.Location, bool) {
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
