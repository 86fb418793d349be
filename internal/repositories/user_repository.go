package repositories

import (
	"database/sql"
	"errors"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, email, phone_number, full_name, user_type, password_hash, is_active, is_verified, date_joined`

func (r UserRepository) db() *sql.DB { return fallbackDB(r.DB) }

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PhoneNumber,
		&u.FullName,
		&u.UserType,
		&u.PasswordHash,
		&u.IsActive,
		&u.IsVerified,
		&u.DateJoined,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r UserRepository) GetByPhone(phone string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE phone_number = ?`, phone)
	return scanUser(row)
}

// GetCredentials loads the user plus password hash for login.
func (r UserRepository) GetCredentials(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT `+userColumns+`
		FROM users WHERE email = ?
	`, email).Scan(
		&u.ID,
		&u.Email,
		&u.PhoneNumber,
		&u.FullName,
		&u.UserType,
		&hash,
		&u.IsActive,
		&u.IsVerified,
		&u.DateJoined,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return u, "", domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, hash, err
}

// Create inserts a new unverified account.
func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (email, phone_number, full_name, user_type, password_hash, is_active, is_verified)
		VALUES (?, ?, ?, ?, ?, 1, 0)
	`, u.Email, u.PhoneNumber, u.FullName, u.UserType, u.PasswordHash)
	if err != nil {
		if isDuplicate(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "email or phone number already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// SetVerified flips the verification flag after a successful OTP check.
func (r UserRepository) SetVerified(id int64, verified bool) error {
	_, err := r.db().Exec(`UPDATE users SET is_verified = ? WHERE id = ?`, verified, id)
	return err
}

// Deactivate soft-deletes the account. Already-deactivated accounts are a
// no-op: MySQL reports zero affected rows when nothing changed, so zero
// rows only means missing after a lookup confirms it.
func (r UserRepository) Deactivate(id int64) error {
	res, err := r.db().Exec(`UPDATE users SET is_active = 0 WHERE id = ?`, id)
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
