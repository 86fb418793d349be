package handlers

import (
	"net/http"
	"strings"

	"manara/internal/domain/models"
	"manara/internal/repositories"

	"github.com/gin-gonic/gin"
)

type vehiclePayload struct {
	SaccoID     int64  `json:"saccoId" binding:"required"`
	FleetNumber string `json:"fleetNumber" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Capacity    int    `json:"capacity"`
	RouteID     *int64 `json:"routeId"`
	Status      string `json:"status"`
}

// GET /api/vehicles?sacco_id=&q=&page=&limit=
func GetVehicles(c *gin.Context) {
	saccoID := int64(queryInt(c, "sacco_id", 0))
	list, err := repositories.VehicleRepository{}.List(
		saccoID,
		strings.TrimSpace(c.Query("q")),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 50),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/saccos/:id/vehicles
func GetSaccoVehicles(c *gin.Context) {
	saccoID, ok := PathID(c)
	if !ok {
		return
	}
	if _, err := (repositories.SaccoRepository{}).GetByID(saccoID); err != nil {
		RespondDomainError(c, err)
		return
	}
	list, err := repositories.VehicleRepository{}.List(
		saccoID,
		strings.TrimSpace(c.Query("q")),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 50),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/vehicles/:id
func GetVehicleByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	v, err := repositories.VehicleRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	v, ok := vehicleFromPayload(c, payload)
	if !ok {
		return
	}

	// owning sacco must exist
	if _, err := (repositories.SaccoRepository{}).GetByID(v.SaccoID); err != nil {
		RespondDomainError(c, err)
		return
	}

	id, err := repositories.VehicleRepository{}.Create(v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "vehicle registered", "id": id})
}

// PUT /api/vehicles/:id
func UpdateVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var payload vehiclePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	repo := repositories.VehicleRepository{}
	existing, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	v, ok := vehicleFromPayload(c, payload)
	if !ok {
		return
	}
	v.ID = existing.ID
	v.SaccoID = existing.SaccoID // vehicles do not move between saccos

	if err := repo.Update(v); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

// DELETE /api/vehicles/:id
func DeleteVehicle(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.VehicleRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

func vehicleFromPayload(c *gin.Context, payload vehiclePayload) (models.Vehicle, bool) {
	status := strings.ToUpper(strings.TrimSpace(payload.Status))
	if status == "" {
		status = models.VehicleStatusActive
	}
	if !models.ValidVehicleStatus(status) {
		respondError(c, http.StatusBadRequest, "validation_error", "unknown vehicle status", nil)
		return models.Vehicle{}, false
	}

	capacity := payload.Capacity
	if capacity <= 0 {
		capacity = 14 // standard matatu
	}

	return models.Vehicle{
		SaccoID:     payload.SaccoID,
		FleetNumber: strings.ToUpper(strings.TrimSpace(payload.FleetNumber)),
		PlateNumber: strings.ToUpper(strings.TrimSpace(payload.PlateNumber)),
		Capacity:    capacity,
		RouteID:     payload.RouteID,
		Status:      status,
	}, true
}
