package handlers

import (
	"manara/internal/cache"
	intconfig "manara/internal/config"
	"manara/internal/http/middleware"
	"manara/internal/notify"
	"manara/internal/repositories"
	"manara/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	env      intconfig.Env
	ttlStore = cache.NewTTLStore()
)

// Init wires handler-level dependencies; called once from the router.
func Init(e intconfig.Env) {
	env = e
}

func otpService(c *gin.Context) services.OTPService {
	reqID := middleware.GetRequestID(c)
	return services.OTPService{
		OTPRepo:  repositories.OTPRepository{},
		UserRepo: repositories.UserRepository{},
		Sender: notify.OTPSender{
			SMS:       notify.LogSender{Channel: "sms"},
			Email:     notify.LogSender{Channel: "email"},
			RequestID: reqID,
		},
		Store:       ttlStore,
		TTL:         env.OTPTTL.Duration(),
		Cooldown:    env.OTPCooldown.Duration(),
		MaxAttempts: env.OTPMaxAttempts,
		RequestID:   reqID,
	}
}

func authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		UserRepo:   repositories.UserRepository{},
		OTP:        otpService(c),
		JWTSecret:  []byte(env.JWTSecret),
		AccessTTL:  env.AccessTTL.Duration(),
		RefreshTTL: env.RefreshTTL.Duration(),
		RequestID:  middleware.GetRequestID(c),
	}
}

func profileService(c *gin.Context) services.ProfileService {
	return services.ProfileService{
		ProfileRepo: repositories.ProfileRepository{},
		UserRepo:    repositories.UserRepository{},
		OTP:         otpService(c),
		Store:       ttlStore,
		RequestID:   middleware.GetRequestID(c),
	}
}

func tripService(c *gin.Context) services.TripService {
	return services.TripService{
		TripRepo:  repositories.TripRepository{},
		RouteRepo: repositories.RouteRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

func searchService(c *gin.Context) services.SearchService {
	return services.SearchService{
		LocationRepo: repositories.LocationRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		TripRepo:  repositories.TripRepository{},
		RouteRepo: repositories.RouteRepository{},
		UserRepo:  repositories.UserRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}
