package repositories

import (
	"database/sql"
	"errors"

	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/geo"
)

type LocationRepository struct {
	DB *sql.DB
}

const locationColumns = `id, name, latitude, longitude, address`

func (r LocationRepository) db() *sql.DB { return fallbackDB(r.DB) }

func scanLocation(scan func(dest ...any) error) (models.Location, error) {
	var l models.Location
	err := scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return l, domain.NotFoundError{Resource: "location", Err: err}
	}
	return l, err
}

func (r LocationRepository) GetByID(id int64) (models.Location, error) {
	row := r.db().QueryRow(`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
	return scanLocation(row.Scan)
}

func (r LocationRepository) Create(l models.Location) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO locations (name, latitude, longitude, address)
		VALUES (?, ?, ?, ?)
	`, l.Name, l.Latitude, l.Longitude, l.Address)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateTx inserts inside an open transaction (route creation inserts the
// start/end locations and stops atomically).
func (r LocationRepository) CreateTx(tx *sql.Tx, l models.Location) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO locations (name, latitude, longitude, address)
		VALUES (?, ?, ?, ?)
	`, l.Name, l.Latitude, l.Longitude, l.Address)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r LocationRepository) Update(l models.Location) error {
	res, err := r.db().Exec(`
		UPDATE locations
		SET name = ?, latitude = ?, longitude = ?, address = ?
		WHERE id = ?
	`, l.Name, l.Latitude, l.Longitude, l.Address, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(l.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r LocationRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "location"}
	}
	return nil
}

// Search matches destinations by name or address substring.
func (r LocationRepository) Search(q string, limit int) ([]models.Location, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	like := "%" + q + "%"
	rows, err := r.db().Query(`
		SELECT `+locationColumns+`
		FROM locations
		WHERE name LIKE ? OR address LIKE ?
		ORDER BY name ASC
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// InBox returns locations inside a bounding box; callers refine with exact
// haversine distance.
func (r LocationRepository) InBox(box geo.BoundingBox) ([]models.Location, error) {
	rows, err := r.db().Query(`
		SELECT `+locationColumns+`
		FROM locations
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
	`, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
