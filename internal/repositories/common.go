package repositories

import (
	"database/sql"
	"errors"

	intconfig "manara/internal/config"

	"github.com/go-sql-driver/mysql"
)

// fallbackDB returns the injected handle or the shared one.
func fallbackDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// isDuplicate reports a MySQL unique-key violation (error 1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// clampPage normalizes page/limit query params.
func clampPage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit, (page - 1) * limit
}
