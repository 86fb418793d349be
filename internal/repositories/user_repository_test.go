package repositories

import (
	"testing"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestUserCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err = repo.Create(models.User{Email: "jane@example.com"})
	if !domain.IsConflict(err) {
		t.Fatalf("duplicate email should conflict, got %v", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "phone_number", "full_name", "user_type",
			"password_hash", "is_active", "is_verified", "date_joined",
		}))

	if _, err := repo.GetByEmail("nobody@example.com"); !domain.IsNotFound(err) {
		t.Fatalf("missing user should be not found, got %v", err)
	}
}

func TestUserGetCredentials(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "phone_number", "full_name", "user_type",
			"password_hash", "is_active", "is_verified", "date_joined",
		}).AddRow(5, "jane@example.com", "+254712345678", "Jane Wanjiku", models.UserTypeCommuter, "$2a$hash", true, true, now))

	u, hash, err := repo.GetCredentials("jane@example.com")
	if err != nil {
		t.Fatalf("GetCredentials: %v", err)
	}
	if u.ID != 5 || hash != "$2a$hash" {
		t.Fatalf("unexpected result: %+v hash=%q", u, hash)
	}
	if u.PasswordHash != "" {
		t.Fatalf("hash must not ride along on the user struct: %q", u.PasswordHash)
	}
}

func TestUserDeactivateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	mock.ExpectExec("UPDATE users SET is_active = 0").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "phone_number", "full_name", "user_type",
			"password_hash", "is_active", "is_verified", "date_joined",
		}))

	if err := repo.Deactivate(99); !domain.IsNotFound(err) {
		t.Fatalf("missing user should be not found, got %v", err)
	}
}

func TestUserDeactivateIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := UserRepository{DB: db}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// second deactivation changes nothing; the row still exists
	mock.ExpectExec("UPDATE users SET is_active = 0").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "phone_number", "full_name", "user_type",
			"password_hash", "is_active", "is_verified", "date_joined",
		}).AddRow(5, "jane@example.com", "+254712345678", "Jane Wanjiku", models.UserTypeCommuter, "", false, true, now))

	if err := repo.Deactivate(5); err != nil {
		t.Fatalf("repeat deactivation should be a no-op, got %v", err)
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, limit                  int
		wantPage, wantLimit, wantOff int
	}{
		{0, 0, 1, 50, 0},
		{1, 20, 1, 20, 0},
		{3, 20, 3, 20, 40},
		{2, 1000, 2, 200, 200},
	}
	for _, c := range cases {
		p, l, off := clampPage(c.page, c.limit)
		if p != c.wantPage || l != c.wantLimit || off != c.wantOff {
			t.Fatalf("clampPage(%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
				c.page, c.limit, p, l, off, c.wantPage, c.wantLimit, c.wantOff)
		}
	}
}
