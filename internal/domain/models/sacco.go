package models

import "time"

const (
	SaccoStatusActive    = "ACTIVE"
	SaccoStatusSuspended = "SUSPENDED"
)

// Sacco is a transit operator cooperative running a PSV fleet.
type Sacco struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registrationNumber"`
	OwnerID            int64     `json:"ownerId"`
	BaseTown           string    `json:"baseTown"`
	ContactPhone       string    `json:"contactPhone"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
