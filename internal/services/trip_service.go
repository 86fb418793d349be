package services

import (
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/repositories"
	"manara/internal/utils"
)

// TripService owns the trip state rules: which timestamps a trip may carry
// in each status.
type TripService struct {
	TripRepo  repositories.TripRepository
	RouteRepo repositories.RouteRepository
	RequestID string
	Now       func() time.Time
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ValidateTrip enforces the per-status time constraints.
func ValidateTrip(t models.Trip, now time.Time) error {
	if !models.ValidTripStatus(t.Status) {
		return domain.ValidationError{Field: "status", Msg: "unknown trip status"}
	}

	switch t.Status {
	case models.TripStatusScheduled:
		if t.ScheduledTime.Before(now) {
			return domain.ValidationError{Msg: "scheduled time must be in the future"}
		}
		if t.ActualArrivalTime != nil {
			return domain.ValidationError{Msg: "actual arrival time should not be set for scheduled trips"}
		}

	case models.TripStatusOngoing:
		if t.ScheduledTime.After(now) {
			return domain.ValidationError{Msg: "scheduled time must be in the past for ongoing trips"}
		}
		if t.EstimatedArrivalTime != nil && t.EstimatedArrivalTime.Before(now) {
			return domain.ValidationError{Msg: "estimated arrival time must be in the future for ongoing trips"}
		}
		if t.ActualArrivalTime != nil {
			return domain.ValidationError{Msg: "actual arrival time should not be set for ongoing trips"}
		}

	case models.TripStatusCompleted:
		if t.ActualArrivalTime == nil {
			return domain.ValidationError{Msg: "actual arrival time is required for completed trips"}
		}
		if t.ActualArrivalTime.After(now) {
			return domain.ValidationError{Msg: "actual arrival time must be in the past for completed trips"}
		}
		if t.ScheduledTime.After(*t.ActualArrivalTime) {
			return domain.ValidationError{Msg: "scheduled time must be before actual arrival time"}
		}

	case models.TripStatusCancelled:
		if t.ActualArrivalTime != nil {
			return domain.ValidationError{Msg: "actual arrival time should not be set for cancelled trips"}
		}
	}
	return nil
}

// Create validates and stores a trip for the user; the route must belong
// to them.
func (s TripService) Create(t models.Trip) (models.Trip, error) {
	if t.Status == "" {
		t.Status = models.TripStatusScheduled
	}
	if err := ValidateTrip(t, s.now()); err != nil {
		return t, err
	}
	if _, err := s.RouteRepo.GetByID(t.RouteID, t.UserID); err != nil {
		return t, err
	}

	id, err := s.TripRepo.Create(t)
	if err != nil {
		return t, err
	}
	t.ID = id

	utils.LogEvent(s.RequestID, "trip", "create", "trip_id="+itoa(id))
	return s.TripRepo.GetByID(id, t.UserID)
}

// Update applies a full update after validating the target state.
func (s TripService) Update(t models.Trip) (models.Trip, error) {
	existing, err := s.TripRepo.GetByID(t.ID, t.UserID)
	if err != nil {
		return t, err
	}
	if t.RouteID == 0 {
		t.RouteID = existing.RouteID
	}
	if err := ValidateTrip(t, s.now()); err != nil {
		return t, err
	}
	if err := s.TripRepo.Update(t); err != nil {
		return t, err
	}

	utils.LogEvent(s.RequestID, "trip", "update", "trip_id="+itoa(t.ID))
	return s.TripRepo.GetByID(t.ID, t.UserID)
}

// Cancel flips the trip to CANCELLED; rows are never deleted.
func (s TripService) Cancel(id, userID int64) error {
	if _, err := s.TripRepo.GetByID(id, userID); err != nil {
		return err
	}
	if err := s.TripRepo.SetStatus(id, userID, models.TripStatusCancelled); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trip", "cancel", "trip_id="+itoa(id))
	return nil
}
