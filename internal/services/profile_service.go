package services

import (
	"time"

	"manara/internal/cache"
	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/repositories"
	"manara/internal/utils"
)

// ProfileService applies profile edits behind an OTP confirmation step.
// A pending update is parked in the TTL store until the code is confirmed.
type ProfileService struct {
	ProfileRepo repositories.ProfileRepository
	UserRepo    repositories.UserRepository
	OTP         OTPService
	Store       *cache.TTLStore
	RequestID   string
}

const pendingUpdateTTL = 5 * time.Minute

type ProfileUpdateInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (s ProfileService) Get(userID int64) (models.Profile, error) {
	return s.ProfileRepo.GetOrCreate(userID)
}

// RequestUpdate stages changed fields and sends an OTP. Returns true when
// verification is required; a no-op update is applied directly.
func (s ProfileService) RequestUpdate(userID int64, in ProfileUpdateInput) (bool, models.Profile, error) {
	current, err := s.ProfileRepo.GetOrCreate(userID)
	if err != nil {
		return false, current, err
	}

	next := current
	changed := false
	if in.FirstName != nil && *in.FirstName != current.FirstName {
		next.FirstName = utils.TrimOrEmpty(*in.FirstName)
		changed = true
	}
	if in.LastName != nil && *in.LastName != current.LastName {
		next.LastName = utils.TrimOrEmpty(*in.LastName)
		changed = true
	}
	if in.PhoneNumber != nil {
		phone := utils.NormalizePhone(*in.PhoneNumber)
		if phone != "" && !utils.ValidPhone(phone) {
			return false, current, domain.ValidationError{Field: "phoneNumber", Msg: "must be a valid phone number"}
		}
		if phone != current.PhoneNumber {
			next.PhoneNumber = phone
			changed = true
		}
	}

	if !changed {
		return false, current, nil
	}

	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return false, current, err
	}
	if _, err := s.OTP.Issue(u); err != nil {
		return false, current, err
	}

	s.Store.Set(pendingKey(userID), next, pendingUpdateTTL)
	utils.LogEvent(s.RequestID, "profile", "update_staged", "user_id="+itoa(userID))
	return true, current, nil
}

// ConfirmUpdate checks the OTP and applies the staged changes.
func (s ProfileService) ConfirmUpdate(userID int64, code string) (models.Profile, error) {
	v, ok := s.Store.Get(pendingKey(userID))
	if !ok {
		return models.Profile{}, domain.ValidationError{Msg: "profile update session expired"}
	}
	pending, ok := v.(models.Profile)
	if !ok {
		return models.Profile{}, domain.InternalError{Msg: "staged profile update is corrupt"}
	}

	if err := s.OTP.CheckCode(userID, code); err != nil {
		if domain.IsNotFound(err) {
			return models.Profile{}, domain.ValidationError{Msg: "invalid or expired OTP"}
		}
		return models.Profile{}, err
	}

	if err := s.ProfileRepo.Update(pending); err != nil {
		return models.Profile{}, err
	}
	s.Store.Delete(pendingKey(userID))

	utils.LogEvent(s.RequestID, "profile", "update_applied", "user_id="+itoa(userID))
	return s.ProfileRepo.GetOrCreate(userID)
}

func pendingKey(userID int64) string {
	return "profile_update_" + itoa(userID)
}
