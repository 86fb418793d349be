package services

import (
	"testing"
	"time"

	"manara/internal/cache"
	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/notify"
	"manara/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func strPtr(s string) *string { return &s }

func newProfileService(t *testing.T, now time.Time) (ProfileService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	clock := func() time.Time { return now }
	store := cache.NewTTLStoreWithClock(clock)
	svc := ProfileService{
		ProfileRepo: repositories.ProfileRepository{DB: db},
		UserRepo:    repositories.UserRepository{DB: db},
		OTP: OTPService{
			OTPRepo:     repositories.OTPRepository{DB: db},
			UserRepo:    repositories.UserRepository{DB: db},
			Sender:      notify.OTPSender{SMS: &fakeSender{}},
			Store:       store,
			TTL:         10 * time.Minute,
			Cooldown:    time.Minute,
			MaxAttempts: 3,
			Now:         clock,
		},
		Store: store,
	}
	return svc, mock, func() { db.Close() }
}

func profileRow(p models.Profile, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "email", "first_name", "last_name", "phone_number", "updated_at"}).
		AddRow(p.UserID, p.Email, p.FirstName, p.LastName, p.PhoneNumber, now)
}

func TestRequestUpdateNoChanges(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, mock, closeDB := newProfileService(t, now)
	defer closeDB()

	current := models.Profile{UserID: 5, Email: "jane@example.com", FirstName: "Jane", LastName: "Wanjiku", PhoneNumber: "+254712345678"}
	mock.ExpectQuery("FROM user_profiles p").WillReturnRows(profileRow(current, now))

	required, got, err := svc.RequestUpdate(5, ProfileUpdateInput{FirstName: strPtr("Jane")})
	if err != nil {
		t.Fatalf("RequestUpdate: %v", err)
	}
	if required {
		t.Fatal("no-op update must not require verification")
	}
	if got.FirstName != "Jane" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if _, staged := svc.Store.Get(pendingKey(5)); staged {
		t.Fatal("nothing should be staged for a no-op update")
	}
}

func TestRequestUpdateStagesAndSendsOTP(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, mock, closeDB := newProfileService(t, now)
	defer closeDB()

	current := models.Profile{UserID: 5, Email: "jane@example.com", FirstName: "Jane"}
	u := models.User{ID: 5, Email: "jane@example.com", PhoneNumber: "+254712345678", UserType: models.UserTypeCommuter, IsActive: true, DateJoined: now}

	mock.ExpectQuery("FROM user_profiles p").WillReturnRows(profileRow(current, now))
	mock.ExpectQuery("FROM users WHERE id").WillReturnRows(userRow(u))
	mock.ExpectExec("UPDATE otp_codes SET expires_at").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO otp_codes").WillReturnResult(sqlmock.NewResult(1, 1))

	required, _, err := svc.RequestUpdate(5, ProfileUpdateInput{LastName: strPtr("Njeri")})
	if err != nil {
		t.Fatalf("RequestUpdate: %v", err)
	}
	if !required {
		t.Fatal("a real change must require verification")
	}

	v, ok := svc.Store.Get(pendingKey(5))
	if !ok {
		t.Fatal("pending update not staged")
	}
	if staged := v.(models.Profile); staged.LastName != "Njeri" || staged.FirstName != "Jane" {
		t.Fatalf("staged profile wrong: %+v", staged)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRequestUpdateRejectsBadPhone(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, mock, closeDB := newProfileService(t, now)
	defer closeDB()

	current := models.Profile{UserID: 5, Email: "jane@example.com"}
	mock.ExpectQuery("FROM user_profiles p").WillReturnRows(profileRow(current, now))

	_, _, err := svc.RequestUpdate(5, ProfileUpdateInput{PhoneNumber: strPtr("12345")})
	if !domain.IsValidation(err) {
		t.Fatalf("bad phone should fail validation, got %v", err)
	}
}

func TestConfirmUpdateSessionExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, closeDB := newProfileService(t, now)
	defer closeDB()

	if _, err := svc.ConfirmUpdate(5, "123456"); !domain.IsValidation(err) {
		t.Fatalf("missing staged update should fail validation, got %v", err)
	}
}

func TestConfirmUpdateApplies(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, mock, closeDB := newProfileService(t, now)
	defer closeDB()

	pending := models.Profile{UserID: 5, Email: "jane@example.com", FirstName: "Jane", LastName: "Njeri"}
	svc.Store.Set(pendingKey(5), pending, pendingUpdateTTL)

	mock.ExpectQuery("FROM otp_codes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "code", "is_used", "created_at", "expires_at"}).
			AddRow(9, 5, "123456", false, now, now.Add(10*time.Minute)))
	mock.ExpectExec("UPDATE otp_codes SET is_used = 1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE user_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM user_profiles p").WillReturnRows(profileRow(pending, now))

	got, err := svc.ConfirmUpdate(5, "123456")
	if err != nil {
		t.Fatalf("ConfirmUpdate: %v", err)
	}
	if got.LastName != "Njeri" {
		t.Fatalf("update not applied: %+v", got)
	}
	if _, staged := svc.Store.Get(pendingKey(5)); staged {
		t.Fatal("staged update should be cleared after apply")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
