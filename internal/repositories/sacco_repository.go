package repositories

import (
	"database/sql"
	"errors"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

type SaccoRepository struct {
	DB *sql.DB
}

const saccoColumns = `id, name, registration_number, owner_id, base_town, contact_phone, status, created_at, updated_at`

func (r SaccoRepository) db() *sql.DB { return fallbackDB(r.DB) }

func scanSacco(scan func(dest ...any) error) (models.Sacco, error) {
	var s models.Sacco
	err := scan(
		&s.ID,
		&s.Name,
		&s.RegistrationNumber,
		&s.OwnerID,
		&s.BaseTown,
		&s.ContactPhone,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.NotFoundError{Resource: "sacco", Err: err}
	}
	return s, err
}

// List returns saccos matching q (name or registration number), paginated.
func (r SaccoRepository) List(q string, page, limit int) ([]models.Sacco, error) {
	_, limit, offset := clampPage(page, limit)

	query := `SELECT ` + saccoColumns + ` FROM saccos`
	args := []any{}
	if q != "" {
		query += ` WHERE (name LIKE ? OR registration_number LIKE ?)`
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY name ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Sacco{}
	for rows.Next() {
		s, err := scanSacco(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r SaccoRepository) GetByID(id int64) (models.Sacco, error) {
	row := r.db().QueryRow(`SELECT `+saccoColumns+` FROM saccos WHERE id = ?`, id)
	return scanSacco(row.Scan)
}

func (r SaccoRepository) Create(s models.Sacco) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO saccos (name, registration_number, owner_id, base_town, contact_phone, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.Name, s.RegistrationNumber, s.OwnerID, s.BaseTown, s.ContactPhone, s.Status)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "sacco", Msg: "registration number already in use", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r SaccoRepository) Update(s models.Sacco) error {
	res, err := r.db().Exec(`
		UPDATE saccos
		SET name = ?, registration_number = ?, base_town = ?, contact_phone = ?
		WHERE id = ?
	`, s.Name, s.RegistrationNumber, s.BaseTown, s.ContactPhone, s.ID)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "sacco", Msg: "registration number already in use", Err: err}
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(s.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus suspends or reactivates a sacco.
func (r SaccoRepository) SetStatus(id int64, status string) error {
	res, err := r.db().Exec(`UPDATE saccos SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r SaccoRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM saccos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "sacco"}
	}
	return nil
}
