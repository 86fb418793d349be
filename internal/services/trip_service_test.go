package services

import (
	"testing"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

func ptr(t time.Time) *time.Time { return &t }

func TestValidateTripScheduled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	trip := models.Trip{
		Status:        models.TripStatusScheduled,
		ScheduledTime: now.Add(time.Hour),
	}
	if err := ValidateTrip(trip, now); err != nil {
		t.Fatalf("future scheduled trip should validate, got %v", err)
	}

	trip.ScheduledTime = now.Add(-time.Hour)
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("past scheduled time should fail validation, got %v", err)
	}

	trip.ScheduledTime = now.Add(time.Hour)
	trip.ActualArrivalTime = ptr(now)
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("scheduled trip with actual arrival should fail, got %v", err)
	}
}

func TestValidateTripOngoing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	trip := models.Trip{
		Status:               models.TripStatusOngoing,
		ScheduledTime:        now.Add(-30 * time.Minute),
		EstimatedArrivalTime: ptr(now.Add(20 * time.Minute)),
	}
	if err := ValidateTrip(trip, now); err != nil {
		t.Fatalf("valid ongoing trip rejected: %v", err)
	}

	trip.ScheduledTime = now.Add(time.Hour)
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("ongoing trip with future scheduled time should fail, got %v", err)
	}

	trip.ScheduledTime = now.Add(-time.Hour)
	trip.EstimatedArrivalTime = ptr(now.Add(-10 * time.Minute))
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("ongoing trip with past ETA should fail, got %v", err)
	}
}

func TestValidateTripCompleted(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	trip := models.Trip{
		Status:            models.TripStatusCompleted,
		ScheduledTime:     now.Add(-2 * time.Hour),
		ActualArrivalTime: ptr(now.Add(-time.Hour)),
	}
	if err := ValidateTrip(trip, now); err != nil {
		t.Fatalf("valid completed trip rejected: %v", err)
	}

	trip.ActualArrivalTime = nil
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("completed trip without actual arrival should fail, got %v", err)
	}

	trip.ActualArrivalTime = ptr(now.Add(time.Hour))
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("completed trip with future arrival should fail, got %v", err)
	}

	// arrival before the scheduled departure makes no sense
	trip.ScheduledTime = now.Add(-time.Hour)
	trip.ActualArrivalTime = ptr(now.Add(-90 * time.Minute))
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("arrival before scheduled time should fail, got %v", err)
	}
}

func TestValidateTripCancelled(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	trip := models.Trip{
		Status:        models.TripStatusCancelled,
		ScheduledTime: now.Add(-time.Hour),
	}
	if err := ValidateTrip(trip, now); err != nil {
		t.Fatalf("cancelled trip rejected: %v", err)
	}

	trip.ActualArrivalTime = ptr(now)
	if err := ValidateTrip(trip, now); !domain.IsValidation(err) {
		t.Fatalf("cancelled trip with actual arrival should fail, got %v", err)
	}
}

func TestValidateTripUnknownStatus(t *testing.T) {
	trip := models.Trip{Status: "TELEPORTING", ScheduledTime: time.Now().Add(time.Hour)}
	if err := ValidateTrip(trip, time.Now()); !domain.IsValidation(err) {
		t.Fatalf("unknown status should fail validation, got %v", err)
	}
}
