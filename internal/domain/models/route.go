package models

import "time"

// Route connects two locations with an ordered list of stops.
type Route struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	StartLocation     Location    `json:"startLocation"`
	EndLocation       Location    `json:"endLocation"`
	EstimatedDuration int         `json:"estimatedDuration"` // minutes
	IsSaved           bool        `json:"isSaved"`
	CreatedBy         int64       `json:"-"`
	CreatedAt         time.Time   `json:"createdAt"`
	Stops             []RouteStop `json:"stops"`
}

// RouteStop is an intermediate stop; Sequence orders stops along the route
// and EstimatedTime is minutes from the route start.
type RouteStop struct {
	ID            int64    `json:"id"`
	RouteID       int64    `json:"-"`
	Location      Location `json:"location"`
	Sequence      int      `json:"sequence"`
	EstimatedTime int      `json:"estimatedTime"`
}
