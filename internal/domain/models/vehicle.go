package models

import "time"

const (
	VehicleStatusActive      = "ACTIVE"
	VehicleStatusMaintenance = "MAINTENANCE"
	VehicleStatusRetired     = "RETIRED"
)

// Vehicle is a PSV registered under a sacco's fleet.
type Vehicle struct {
	ID          int64     `json:"id"`
	SaccoID     int64     `json:"saccoId"`
	FleetNumber string    `json:"fleetNumber"`
	PlateNumber string    `json:"plateNumber"`
	Capacity    int       `json:"capacity"`
	RouteID     *int64    `json:"routeId,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidVehicleStatus reports whether s is a known fleet status.
func ValidVehicleStatus(s string) bool {
	switch s {
	case VehicleStatusActive, VehicleStatusMaintenance, VehicleStatusRetired:
		return true
	}
	return false
}
