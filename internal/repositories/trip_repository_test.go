package repositories

import (
	"testing"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func tripRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "route_id", "status", "scheduled_time",
		"estimated_arrival_time", "actual_arrival_time", "created_at", "updated_at",
	})
}

func TestTripListUpcoming(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := TripRepository{DB: db}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	eta := now.Add(2 * time.Hour)

	mock.ExpectQuery("FROM trips").
		WithArgs(int64(5), models.TripStatusScheduled, now).
		WillReturnRows(tripRows().
			AddRow(1, 5, 10, models.TripStatusScheduled, now.Add(time.Hour), eta, nil, now, now).
			AddRow(2, 5, 11, models.TripStatusScheduled, now.Add(3*time.Hour), nil, nil, now, now))

	list, err := repo.ListUpcoming(5, now)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2 trips, got %d", len(list))
	}
	if list[0].EstimatedArrivalTime == nil || !list[0].EstimatedArrivalTime.Equal(eta) {
		t.Fatalf("ETA not scanned: %+v", list[0])
	}
	if list[1].EstimatedArrivalTime != nil || list[1].ActualArrivalTime != nil {
		t.Fatalf("NULL arrivals should stay nil: %+v", list[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripGetByIDScopesToUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := TripRepository{DB: db}

	mock.ExpectQuery("FROM trips WHERE id = . AND user_id = .").
		WithArgs(int64(1), int64(99)).
		WillReturnRows(tripRows())

	if _, err := repo.GetByID(1, 99); !domain.IsNotFound(err) {
		t.Fatalf("another user's trip should be not found, got %v", err)
	}
}

func TestTripSetStatusMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := TripRepository{DB: db}

	mock.ExpectExec("UPDATE trips SET status").
		WithArgs(models.TripStatusCancelled, int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// zero rows affected triggers an existence check
	mock.ExpectQuery("FROM trips WHERE id").
		WillReturnRows(tripRows())

	if err := repo.SetStatus(1, 5, models.TripStatusCancelled); !domain.IsNotFound(err) {
		t.Fatalf("missing trip should be not found, got %v", err)
	}
}

func TestTripSetStatusNoChangeIsFine(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := TripRepository{DB: db}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// row exists but already cancelled; the follow-up lookup finds it
	mock.ExpectExec("UPDATE trips SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM trips WHERE id").
		WillReturnRows(tripRows().AddRow(1, 5, 10, models.TripStatusCancelled, now, nil, nil, now, now))

	if err := repo.SetStatus(1, 5, models.TripStatusCancelled); err != nil {
		t.Fatalf("idempotent cancel should succeed, got %v", err)
	}
}
