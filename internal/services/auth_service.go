package services

import (
	"strings"
	"time"

	"manara/internal/domain"
	"manara/internal/domain/models"
	"manara/internal/repositories"
	"manara/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and the JWT token pair.
type AuthService struct {
	UserRepo   repositories.UserRepository
	OTP        OTPService
	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	RequestID  string
	Now        func() time.Time
}

// TokenPair is returned on login, refresh and OTP verification.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RegisterInput struct {
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	FullName        string `json:"fullName" binding:"required"`
	UserType        string `json:"userType"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register creates an unverified account and issues the first OTP.
func (s AuthService) Register(in RegisterInput) (models.User, error) {
	var u models.User

	phone := utils.NormalizePhone(in.PhoneNumber)
	if !utils.ValidPhone(phone) {
		return u, domain.ValidationError{Field: "phoneNumber", Msg: "must be a valid phone number"}
	}
	if len(in.Password) < 8 {
		return u, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	if in.Password != in.ConfirmPassword {
		return u, domain.ValidationError{Field: "password", Msg: "passwords do not match"}
	}

	userType := strings.TrimSpace(in.UserType)
	if userType == "" {
		userType = models.UserTypeCommuter
	}
	if !models.ValidUserType(userType) {
		return u, domain.ValidationError{Field: "userType", Msg: "unknown user type"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return u, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u = models.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber:  phone,
		FullName:     utils.NormalizeSpace(in.FullName),
		UserType:     userType,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	id, err := s.UserRepo.Create(u)
	if err != nil {
		return u, err
	}
	u.ID = id
	u.DateJoined = s.now()

	utils.LogEvent(s.RequestID, "auth", "register", "user_id="+itoa(id))

	// registration OTP; delivery failure should not lose the account
	if _, err := s.OTP.Issue(u); err != nil {
		utils.LogEvent(s.RequestID, "auth", "register_otp_failed", err.Error())
	}
	return u, nil
}

// Login checks credentials and refuses unverified or deactivated accounts.
func (s AuthService) Login(email, password string) (models.User, TokenPair, error) {
	var pair TokenPair

	u, hash, err := s.UserRepo.GetCredentials(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return u, pair, domain.ValidationError{Msg: "invalid email or password"}
		}
		return u, pair, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return u, pair, domain.ValidationError{Msg: "invalid email or password"}
	}
	if !u.IsActive {
		return u, pair, domain.ForbiddenError{Msg: "account is deactivated"}
	}
	if !u.IsVerified {
		return u, pair, domain.ForbiddenError{Msg: "account not verified, please verify OTP"}
	}

	pair, err = s.IssueTokenPair(u)
	if err != nil {
		return u, pair, err
	}

	utils.LogEvent(s.RequestID, "auth", "login", "user_id="+itoa(u.ID))
	return u, pair, nil
}

// IssueTokenPair signs access and refresh tokens for the user.
func (s AuthService) IssueTokenPair(u models.User) (TokenPair, error) {
	now := s.now()

	access, err := s.sign(jwt.MapClaims{
		"user_id":  u.ID,
		"role":     u.UserType,
		"email":    u.Email,
		"verified": u.IsVerified,
		"typ":      "access",
		"iat":      now.Unix(),
		"exp":      now.Add(s.AccessTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	refresh, err := s.sign(jwt.MapClaims{
		"user_id": u.ID,
		"typ":     "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(s.RefreshTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s AuthService) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := ParseToken(refreshToken, s.JWTSecret)
	if err != nil {
		return TokenPair{}, domain.ValidationError{Msg: "invalid or expired refresh token", Err: err}
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return TokenPair{}, domain.ValidationError{Msg: "token is not a refresh token"}
	}

	userID := claimInt64(claims, "user_id")
	u, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return TokenPair{}, err
	}
	if !u.IsActive {
		return TokenPair{}, domain.ForbiddenError{Msg: "account is deactivated"}
	}

	return s.IssueTokenPair(u)
}

func (s AuthService) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// ParseToken validates signature and expiry, returning the claims.
func ParseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func claimInt64(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}
