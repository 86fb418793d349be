package repositories

import (
	"database/sql"
	"errors"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"
)

type OTPRepository struct {
	DB *sql.DB
}

func (r OTPRepository) db() *sql.DB { return fallbackDB(r.DB) }

// ExpireActive invalidates outstanding codes before a new one is issued.
func (r OTPRepository) ExpireActive(userID int64, now time.Time) error {
	_, err := r.db().Exec(`
		UPDATE otp_codes SET expires_at = ?
		WHERE user_id = ? AND is_used = 0 AND expires_at > ?
	`, now, userID, now)
	return err
}

func (r OTPRepository) Create(o models.OTPCode) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO otp_codes (user_id, code, is_used, expires_at)
		VALUES (?, ?, 0, ?)
	`, o.UserID, o.Code, o.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FindActive returns the live unused code matching user+code.
func (r OTPRepository) FindActive(userID int64, code string, now time.Time) (models.OTPCode, error) {
	var o models.OTPCode
	err := r.db().QueryRow(`
		SELECT id, user_id, code, is_used, created_at, expires_at
		FROM otp_codes
		WHERE user_id = ? AND code = ? AND is_used = 0 AND expires_at > ?
		ORDER BY id DESC LIMIT 1
	`, userID, code, now).Scan(&o.ID, &o.UserID, &o.Code, &o.IsUsed, &o.CreatedAt, &o.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return o, domain.NotFoundError{Resource: "otp code", Err: err}
	}
	return o, err
}

func (r OTPRepository) MarkUsed(id int64) error {
	_, err := r.db().Exec(`UPDATE otp_codes SET is_used = 1 WHERE id = ?`, id)
	return err
}

// CleanupExpired removes dead codes; returns the number deleted.
func (r OTPRepository) CleanupExpired(now time.Time) (int64, error) {
	res, err := r.db().Exec(`DELETE FROM otp_codes WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
