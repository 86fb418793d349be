package repositories

import (
	"database/sql"
	"errors"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

const vehicleColumns = `id, sacco_id, fleet_number, plate_number, capacity, route_id, status, created_at, updated_at`

func (r VehicleRepository) db() *sql.DB { return fallbackDB(r.DB) }

func scanVehicle(scan func(dest ...any) error) (models.Vehicle, error) {
	var (
		v       models.Vehicle
		routeID sql.NullInt64
	)
	err := scan(
		&v.ID,
		&v.SaccoID,
		&v.FleetNumber,
		&v.PlateNumber,
		&v.Capacity,
		&routeID,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "vehicle", Err: err}
	}
	if routeID.Valid {
		id := routeID.Int64
		v.RouteID = &id
	}
	return v, err
}

// List returns vehicles, optionally scoped to a sacco and filtered by q
// over plate/fleet number.
func (r VehicleRepository) List(saccoID int64, q string, page, limit int) ([]models.Vehicle, error) {
	_, limit, offset := clampPage(page, limit)

	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	where := []string{}
	args := []any{}
	if saccoID > 0 {
		where = append(where, `sacco_id = ?`)
		args = append(args, saccoID)
	}
	if q != "" {
		where = append(where, `(plate_number LIKE ? OR fleet_number LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	query += ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	row := r.db().QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
	return scanVehicle(row.Scan)
}

func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles (sacco_id, fleet_number, plate_number, capacity, route_id, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, v.SaccoID, v.FleetNumber, v.PlateNumber, v.Capacity, nullableID(v.RouteID), v.Status)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "vehicle", Msg: "plate or fleet number already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) Update(v models.Vehicle) error {
	res, err := r.db().Exec(`
		UPDATE vehicles
		SET fleet_number = ?, plate_number = ?, capacity = ?, route_id = ?, status = ?
		WHERE id = ?
	`, v.FleetNumber, v.PlateNumber, v.Capacity, nullableID(v.RouteID), v.Status, v.ID)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "vehicle", Msg: "plate or fleet number already registered", Err: err}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(v.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r VehicleRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func nullableID(id *int64) any {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}
