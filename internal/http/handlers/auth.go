package handlers

import (
	"net/http"

	"manara/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := authService(c).Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "User registered successfully. Please verify your OTP.",
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, tokens, err := authService(c).Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

type requestOTPRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// POST /api/auth/request-otp
func RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	delivery, err := otpService(c).Request(req.Email, req.PhoneNumber)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	contact := req.Email
	if contact == "" {
		contact = req.PhoneNumber
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "OTP sent successfully",
		"expires_in":      env.OTPTTL.String(),
		"contact":         contact,
		"delivery_method": delivery,
	})
}

type verifyOTPRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code" binding:"required"`
}

// POST /api/auth/verify-otp
//
// The account is looked up by whichever identifier the code was requested
// with, email or phone.
func VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Email == "" && req.PhoneNumber == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "either email or phone number must be provided", nil)
		return
	}

	user, err := otpService(c).Verify(req.Email, req.PhoneNumber, req.Code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	tokens, err := authService(c).IssueTokenPair(user)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "OTP verified successfully",
		"is_verified": true,
		"tokens":      tokens,
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// POST /api/auth/token/refresh
func RefreshToken(c *gin.Context) {
	var req refreshRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	tokens, err := authService(c).Refresh(req.Refresh)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
