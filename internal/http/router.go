package api

import (
	"log"
	stdhttp "net/http"

	intconfig "manara/internal/config"
	"manara/internal/domain/models"
	h "manara/internal/http/handlers"
	"manara/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth([]byte(env.JWTSecret))
	saccoAdmin := middleware.RequireRoles(models.UserTypeSaccoOwner, models.UserTypeOperator)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/request-otp", h.RequestOTP)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.POST("/token/refresh", h.RefreshToken)

		// Profile & account
		profile := api.Group("/profile", requireAuth)
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/verify-otp", h.VerifyProfileUpdate)
		api.DELETE("/account", requireAuth, h.DeleteAccount)

		// Saccos
		saccos := api.Group("/saccos", requireAuth)
		saccos.GET("", h.GetSaccos)
		saccos.GET("/:id", h.GetSaccoByID)
		saccos.GET("/:id/vehicles", h.GetSaccoVehicles)
		saccos.POST("", saccoAdmin, h.CreateSacco)
		saccos.PUT("/:id", saccoAdmin, h.UpdateSacco)
		saccos.PUT("/:id/suspend", saccoAdmin, h.SetSaccoStatus(models.SaccoStatusSuspended))
		saccos.PUT("/:id/activate", saccoAdmin, h.SetSaccoStatus(models.SaccoStatusActive))
		saccos.DELETE("/:id", saccoAdmin, h.DeleteSacco)

		// Fleet
		vehicles := api.Group("/vehicles", requireAuth)
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicleByID)
		vehicles.POST("", saccoAdmin, h.CreateVehicle)
		vehicles.PUT("/:id", saccoAdmin, h.UpdateVehicle)
		vehicles.DELETE("/:id", saccoAdmin, h.DeleteVehicle)

		// Destinations
		destinations := api.Group("/destinations", requireAuth)
		destinations.GET("/search", h.SearchDestinations)

		locations := api.Group("/locations", requireAuth)
		locations.GET("/:id", h.GetLocationByID)
		locations.POST("", h.CreateLocation)
		locations.PUT("/:id", h.UpdateLocation)
		locations.DELETE("/:id", h.DeleteLocation)

		// Route planner
		routes := api.Group("/routes", requireAuth)
		routes.GET("/mine", h.GetMyRoutes)
		routes.GET("/mine/:id", h.GetRouteByID)
		routes.GET("/saved", h.GetSavedRoutes)
		routes.POST("", h.CreateRoute)
		routes.PUT("/mine/:id/save", h.SetRouteSaved(true))
		routes.PUT("/mine/:id/unsave", h.SetRouteSaved(false))

		// Trips
		trips := api.Group("/trips", requireAuth)
		trips.GET("", h.GetTrips)
		trips.GET("/upcoming", h.GetUpcomingTrips)
		trips.GET("/past", h.GetPastTrips)
		trips.GET("/ongoing", h.GetOngoingTrip)
		trips.GET("/:id", h.GetTripByID)
		trips.GET("/:id/e-ticket", h.GetTripETicketPDF)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.CancelTrip)
	}

	h.SetRouter(r)
	return r
}
