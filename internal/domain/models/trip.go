package models

import "time"

const (
	TripStatusScheduled = "SCHEDULED"
	TripStatusOngoing   = "ONGOING"
	TripStatusCompleted = "COMPLETED"
	TripStatusCancelled = "CANCELLED"
)

// Trip is a commuter journey along a route.
type Trip struct {
	ID                   int64      `json:"id"`
	UserID               int64      `json:"-"`
	RouteID              int64      `json:"routeId"`
	Status               string     `json:"status"`
	ScheduledTime        time.Time  `json:"scheduledTime"`
	EstimatedArrivalTime *time.Time `json:"estimatedArrivalTime,omitempty"`
	ActualArrivalTime    *time.Time `json:"actualArrivalTime,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ValidTripStatus reports whether s is a known trip state.
func ValidTripStatus(s string) bool {
	switch s {
	case TripStatusScheduled, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}
