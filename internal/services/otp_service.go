package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"manara/internal/cache"
	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/notify"
	"manara/internal/repositories"
	"manara/internal/utils"
)

// OTPService issues and verifies single-use codes with per-identifier
// cooldowns and a failed-attempt cap.
type OTPService struct {
	OTPRepo     repositories.OTPRepository
	UserRepo    repositories.UserRepository
	Sender      notify.OTPSender
	Store       *cache.TTLStore
	TTL         time.Duration
	Cooldown    time.Duration
	MaxAttempts int
	RequestID   string
	Now         func() time.Time
}

const attemptWindow = 5 * time.Minute

func (s OTPService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateCode returns a 6-digit numeric code from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Request finds the user by email or phone and issues a fresh code,
// honouring the per-identifier cooldown.
func (s OTPService) Request(email, phone string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = utils.NormalizePhone(phone)
	if email == "" && phone == "" {
		return "", domain.ValidationError{Msg: "either email or phone number must be provided"}
	}

	identifier := email
	if identifier == "" {
		identifier = phone
	}
	cooldownKey := "otp_request_" + identifier
	if _, waiting := s.Store.Get(cooldownKey); waiting {
		return "", domain.RateLimitError{
			Msg:        "please wait before requesting another OTP",
			RetryAfter: s.Cooldown.String(),
		}
	}

	var (
		u   models.User
		err error
	)
	if email != "" {
		u, err = s.UserRepo.GetByEmail(email)
	} else {
		u, err = s.UserRepo.GetByPhone(phone)
	}
	if err != nil {
		return "", err
	}

	if _, err := s.Issue(u); err != nil {
		return "", err
	}

	s.Store.Set(cooldownKey, true, s.Cooldown)

	delivery := "sms"
	if email != "" {
		delivery = "email"
	}
	return delivery, nil
}

// Issue expires outstanding codes, persists a new one and delivers it.
func (s OTPService) Issue(u models.User) (models.OTPCode, error) {
	now := s.now()
	if err := s.OTPRepo.ExpireActive(u.ID, now); err != nil {
		return models.OTPCode{}, err
	}

	code, err := GenerateCode()
	if err != nil {
		return models.OTPCode{}, domain.InternalError{Msg: "failed to generate OTP", Err: err}
	}

	otp := models.OTPCode{
		UserID:    u.ID,
		Code:      code,
		ExpiresAt: now.Add(s.TTL),
	}
	id, err := s.OTPRepo.Create(otp)
	if err != nil {
		return otp, err
	}
	otp.ID = id

	if err := s.Sender.SendOTP(u.PhoneNumber, u.Email, code, s.TTL); err != nil {
		return otp, domain.InternalError{Msg: "failed to send OTP", Err: err}
	}

	utils.LogEvent(s.RequestID, "otp", "issue", "user_id="+itoa(u.ID))
	return otp, nil
}

// Verify consumes a valid code, enforcing the attempt cap, and marks the
// account verified. The user is resolved by email or phone, whichever the
// code was requested with.
func (s OTPService) Verify(email, phone, code string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = utils.NormalizePhone(phone)
	if email == "" && phone == "" {
		return models.User{}, domain.ValidationError{Msg: "either email or phone number must be provided"}
	}

	identifier := email
	if identifier == "" {
		identifier = phone
	}
	attemptKey := "otp_attempts_" + identifier
	if s.Store.GetInt(attemptKey) >= s.MaxAttempts {
		return models.User{}, domain.RateLimitError{
			Msg: "too many failed attempts, please request a new OTP",
		}
	}

	var (
		u   models.User
		err error
	)
	if email != "" {
		u, err = s.UserRepo.GetByEmail(email)
	} else {
		u, err = s.UserRepo.GetByPhone(phone)
	}
	if err != nil {
		return u, err
	}

	if err := s.CheckCode(u.ID, code); err != nil {
		attempts := s.Store.Incr(attemptKey, attemptWindow)
		if domain.IsNotFound(err) {
			return u, domain.ValidationError{
				Msg: fmt.Sprintf("invalid or expired OTP (%d attempts left)", s.MaxAttempts-attempts),
			}
		}
		return u, err
	}

	if err := s.UserRepo.SetVerified(u.ID, true); err != nil {
		return u, err
	}
	u.IsVerified = true
	s.Store.Delete(attemptKey)

	utils.LogEvent(s.RequestID, "otp", "verify", "user_id="+itoa(u.ID))
	return u, nil
}

// CheckCode validates and consumes a code without touching the verified
// flag (used by profile-update confirmation).
func (s OTPService) CheckCode(userID int64, code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 6 || !isDigits(code) {
		return domain.ValidationError{Field: "code", Msg: "must be a 6-digit number"}
	}

	otp, err := s.OTPRepo.FindActive(userID, code, s.now())
	if err != nil {
		return err
	}
	return s.OTPRepo.MarkUsed(otp.ID)
}

// Cleanup deletes expired codes; suitable for a periodic task.
func (s OTPService) Cleanup() (int64, error) {
	n, err := s.OTPRepo.CleanupExpired(s.now())
	if err == nil && n > 0 {
		utils.LogEvent(s.RequestID, "otp", "cleanup", fmt.Sprintf("deleted=%d", n))
	}
	return n, err
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
