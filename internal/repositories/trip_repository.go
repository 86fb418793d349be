package repositories

import (
	"database/sql"
	"errors"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `id, user_id, route_id, status, scheduled_time, estimated_arrival_time, actual_arrival_time, created_at, updated_at`

func (r TripRepository) db() *sql.DB { return fallbackDB(r.DB) }

func scanTrip(scan func(dest ...any) error) (models.Trip, error) {
	var (
		t   models.Trip
		est sql.NullTime
		act sql.NullTime
	)
	err := scan(
		&t.ID,
		&t.UserID,
		&t.RouteID,
		&t.Status,
		&t.ScheduledTime,
		&est,
		&act,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if est.Valid {
		v := est.Time
		t.EstimatedArrivalTime = &v
	}
	if act.Valid {
		v := act.Time
		t.ActualArrivalTime = &v
	}
	return t, err
}

func (r TripRepository) Create(t models.Trip) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (user_id, route_id, status, scheduled_time, estimated_arrival_time, actual_arrival_time)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.UserID, t.RouteID, t.Status, t.ScheduledTime, nullableTime(t.EstimatedArrivalTime), nullableTime(t.ActualArrivalTime))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByID loads a trip scoped to the owning user.
func (r TripRepository) GetByID(id, userID int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ? AND user_id = ?`, id, userID)
	return scanTrip(row.Scan)
}

func (r TripRepository) Update(t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips
		SET route_id = ?, status = ?, scheduled_time = ?, estimated_arrival_time = ?, actual_arrival_time = ?
		WHERE id = ? AND user_id = ?
	`, t.RouteID, t.Status, t.ScheduledTime, nullableTime(t.EstimatedArrivalTime), nullableTime(t.ActualArrivalTime), t.ID, t.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(t.ID, t.UserID); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus flips only the status column (cancellation path).
func (r TripRepository) SetStatus(id, userID int64, status string) error {
	res, err := r.db().Exec(`
		UPDATE trips SET status = ? WHERE id = ? AND user_id = ?
	`, status, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r TripRepository) ListByUser(userID int64) ([]models.Trip, error) {
	return r.list(`
		SELECT `+tripColumns+` FROM trips
		WHERE user_id = ?
		ORDER BY id DESC
	`, userID)
}

// ListUpcoming returns scheduled trips from now on, soonest first.
func (r TripRepository) ListUpcoming(userID int64, now time.Time) ([]models.Trip, error) {
	return r.list(`
		SELECT `+tripColumns+` FROM trips
		WHERE user_id = ? AND status = ? AND scheduled_time >= ?
		ORDER BY scheduled_time ASC
	`, userID, models.TripStatusScheduled, now)
}

// ListPast returns completed trips, most recent first.
func (r TripRepository) ListPast(userID int64) ([]models.Trip, error) {
	return r.list(`
		SELECT `+tripColumns+` FROM trips
		WHERE user_id = ? AND status = ?
		ORDER BY scheduled_time DESC
	`, userID, models.TripStatusCompleted)
}

// GetOngoing returns the single in-progress trip when one exists.
func (r TripRepository) GetOngoing(userID int64) (models.Trip, error) {
	row := r.db().QueryRow(`
		SELECT `+tripColumns+` FROM trips
		WHERE user_id = ? AND status = ?
		ORDER BY id DESC LIMIT 1
	`, userID, models.TripStatusOngoing)
	return scanTrip(row.Scan)
}

func (r TripRepository) list(query string, args ...any) ([]models.Trip, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
