package repositories

import (
	"database/sql"
	"errors"

	"manara/internal/db"
	"manara/internal/domain/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

func (r ProfileRepository) db() *sql.DB { return fallbackDB(r.DB) }

// GetOrCreate returns the profile row, inserting an empty one when missing.
func (r ProfileRepository) GetOrCreate(userID int64) (models.Profile, error) {
	p, err := r.get(userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return p, err
	}
	if _, err := r.db().Exec(`
		INSERT INTO user_profiles (user_id, first_name, last_name, phone_number)
		VALUES (?, '', '', '')
	`, userID); err != nil && !isDuplicate(err) {
		return p, err
	}
	return r.get(userID)
}

func (r ProfileRepository) get(userID int64) (models.Profile, error) {
	var (
		p     models.Profile
		first sql.NullString
		last  sql.NullString
		phone sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT p.user_id, u.email, p.first_name, p.last_name, p.phone_number, p.updated_at
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ?
	`, userID).Scan(&p.UserID, &p.Email, &first, &last, &phone, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.FirstName = first.String
	p.LastName = last.String
	p.PhoneNumber = phone.String
	return p, nil
}

// Update overwrites the editable fields.
func (r ProfileRepository) Update(p models.Profile) error {
	_, err := r.db().Exec(`
		UPDATE user_profiles
		SET first_name = ?, last_name = ?, phone_number = ?
		WHERE user_id = ?
	`, db.NullIfEmpty(p.FirstName), db.NullIfEmpty(p.LastName), db.NullIfEmpty(p.PhoneNumber), p.UserID)
	return err
}
