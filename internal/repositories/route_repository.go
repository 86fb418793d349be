package repositories

import (
	"database/sql"
	"errors"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

type RouteRepository struct {
	DB           *sql.DB
	LocationRepo LocationRepository
}

func (r RouteRepository) db() *sql.DB { return fallbackDB(r.DB) }

const routeSelect = `
	SELECT r.id, r.name, r.estimated_duration, r.is_saved, r.created_by, r.created_at,
	       s.id, s.name, s.latitude, s.longitude, s.address,
	       e.id, e.name, e.latitude, e.longitude, e.address
	FROM routes r
	JOIN locations s ON s.id = r.start_location_id
	JOIN locations e ON e.id = r.end_location_id
`

func scanRoute(scan func(dest ...any) error) (models.Route, error) {
	var rt models.Route
	err := scan(
		&rt.ID,
		&rt.Name,
		&rt.EstimatedDuration,
		&rt.IsSaved,
		&rt.CreatedBy,
		&rt.CreatedAt,
		&rt.StartLocation.ID,
		&rt.StartLocation.Name,
		&rt.StartLocation.Latitude,
		&rt.StartLocation.Longitude,
		&rt.StartLocation.Address,
		&rt.EndLocation.ID,
		&rt.EndLocation.Name,
		&rt.EndLocation.Latitude,
		&rt.EndLocation.Longitude,
		&rt.EndLocation.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rt, domain.NotFoundError{Resource: "route", Err: err}
	}
	return rt, err
}

// CreateWithStops inserts the start/end locations, the route and its stops
// in one transaction.
func (r RouteRepository) CreateWithStops(rt models.Route) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	startID, err := r.LocationRepo.CreateTx(tx, rt.StartLocation)
	if err != nil {
		return 0, err
	}
	endID, err := r.LocationRepo.CreateTx(tx, rt.EndLocation)
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO routes (name, start_location_id, end_location_id, estimated_duration, is_saved, created_by)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rt.Name, startID, endID, rt.EstimatedDuration, rt.IsSaved, rt.CreatedBy)
	if err != nil {
		return 0, err
	}
	routeID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, stop := range rt.Stops {
		locID := stop.Location.ID
		if locID == 0 {
			locID, err = r.LocationRepo.CreateTx(tx, stop.Location)
			if err != nil {
				return 0, err
			}
		}
		if _, err := tx.Exec(`
			INSERT INTO route_stops (route_id, location_id, sequence, estimated_time)
			VALUES (?, ?, ?, ?)
		`, routeID, locID, stop.Sequence, stop.EstimatedTime); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return routeID, nil
}

// GetByID loads a route with its stops, scoped to the owning user.
func (r RouteRepository) GetByID(id, userID int64) (models.Route, error) {
	row := r.db().QueryRow(routeSelect+` WHERE r.id = ? AND r.created_by = ?`, id, userID)
	rt, err := scanRoute(row.Scan)
	if err != nil {
		return rt, err
	}
	rt.Stops, err = r.listStops(rt.ID)
	return rt, err
}

// ListByUser returns the user's routes, stops included, newest first.
func (r RouteRepository) ListByUser(userID int64, savedOnly bool) ([]models.Route, error) {
	query := routeSelect + ` WHERE r.created_by = ?`
	if savedOnly {
		query += ` AND r.is_saved = 1`
	}
	query += ` ORDER BY r.id DESC`

	rows, err := r.db().Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		stops, err := r.listStops(list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Stops = stops
	}
	return list, nil
}

// SetSaved toggles the saved flag on the user's route.
func (r RouteRepository) SetSaved(id, userID int64, saved bool) error {
	res, err := r.db().Exec(`
		UPDATE routes SET is_saved = ? WHERE id = ? AND created_by = ?
	`, saved, id, userID)
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

func (r RouteRepository) listStops(routeID int64) ([]models.RouteStop, error) {
	rows, err := r.db().Query(`
		SELECT st.id, st.route_id, st.sequence, st.estimated_time,
		       l.id, l.name, l.latitude, l.longitude, l.address
		FROM route_stops st
		JOIN locations l ON l.id = st.location_id
		WHERE st.route_id = ?
		ORDER BY st.sequence ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []models.RouteStop{}
	for rows.Next() {
		var st models.RouteStop
		if err := rows.Scan(
			&st.ID,
			&st.RouteID,
			&st.Sequence,
			&st.EstimatedTime,
			&st.Location.ID,
			&st.Location.Name,
			&st.Location.Latitude,
			&st.Location.Longitude,
			&st.Location.Address,
		); err != nil {
			return nil, err
		}
		stops = append(stops, st)
	}
	return stops, rows.Err()
}
