package handlers

import (
	"net/http"

	"manara/internal/http/middleware"
	"manara/internal/repositories"
	"manara/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/profile
func GetProfile(c *gin.Context) {
	profile, err := profileService(c).Get(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/profile
//
// Changed fields are staged behind an OTP; a no-op update returns directly.
func UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateInput
	if !BindJSONOrError(c, &req) {
		return
	}

	verificationRequired, profile, err := profileService(c).RequestUpdate(middleware.UserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if verificationRequired {
		c.JSON(http.StatusOK, gin.H{
			"message":               "Please verify OTP to update profile",
			"verification_required": true,
		})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type profileOTPRequest struct {
	Code string `json:"code" binding:"required"`
}

// POST /api/profile/verify-otp
func VerifyProfileUpdate(c *gin.Context) {
	var req profileOTPRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	profile, err := profileService(c).ConfirmUpdate(middleware.UserID(c), req.Code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// DELETE /api/account
func DeleteAccount(c *gin.Context) {
	repo := repositories.UserRepository{}
	if err := repo.Deactivate(middleware.UserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
