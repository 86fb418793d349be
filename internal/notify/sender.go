package notify

import (
	"fmt"
	"time"

	"manara/internal/utils"
)

// Sender delivers a short message to a single recipient. Implementations
// exist for SMS gateways and email; tests inject fakes.
type Sender interface {
	Send(to, message string) error
}

// OTPSender tries SMS first and falls back to email, mirroring how codes
// reach commuters on feature phones vs. smartphone users.
type OTPSender struct {
	SMS       Sender
	Email     Sender
	RequestID string
}

// SendOTP delivers the code to phone via SMS, then to email when SMS fails.
// The validity window in the message follows the configured TTL.
func (s OTPSender) SendOTP(phone, email, code string, ttl time.Duration) error {
	minutes := int(ttl.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	msg := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, minutes)

	if s.SMS != nil && phone != "" {
		if err := s.SMS.Send(phone, msg); err == nil {
			utils.LogEvent(s.RequestID, "notify", "otp_sms", "delivered to "+phone)
			return nil
		} else {
			utils.LogEvent(s.RequestID, "notify", "otp_sms_failed", err.Error())
		}
	}

	if s.Email != nil && email != "" {
		if err := s.Email.Send(email, msg); err != nil {
			return fmt.Errorf("otp delivery failed over sms and email: %w", err)
		}
		utils.LogEvent(s.RequestID, "notify", "otp_email", "delivered to "+email)
		return nil
	}

	return fmt.Errorf("no delivery channel available")
}
