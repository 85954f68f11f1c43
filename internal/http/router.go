package api

import (
	"log"
	stdhttp "net/http"

	intconfig "railpass/internal/config"
	h "railpass/internal/http/handlers"
	"railpass/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the router mounts.
type Deps struct {
	Env      intconfig.Env
	Engines  h.EngineHandlers
	Tasks    h.TaskHandlers
	Auth     h.AuthHandlers
	Registry h.RegistryHandlers
	TripPack h.TripPackHandlers
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"error":   "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", d.Auth.Login)

		// Pure engine operations
		api.POST("/eligibility/check", d.Engines.CheckEligibility)
		api.POST("/coverage/check", d.Engines.CheckCoverage)
		api.POST("/travel-days/calculate", d.Engines.CalculateTravelDays)
		api.POST("/reservations/check", d.Engines.CheckReservation)
		api.POST("/reservations/fallbacks", d.Engines.GenerateFallbacks)
		api.POST("/rules/evaluate", d.Engines.EvaluateRules)
		api.POST("/compliance/validate", d.Engines.ValidateCompliance)
		api.POST("/passes/recommend", d.Engines.RecommendPass)
		api.POST("/executability/check", d.Engines.CheckExecutability)
		api.POST("/plans/regenerate", d.Engines.RegeneratePlan)

		// Action registry
		api.GET("/ops", d.Registry.ListOperations)
		api.POST("/ops/:name", d.Registry.InvokeOperation)

		// Trip pack PDF
		api.POST("/trip-pack", d.TripPack.GenerateTripPack)

		// Stateful task endpoints; mutations require auth
		api.POST("/reservations/plan", d.Tasks.PlanReservations)
		api.GET("/itineraries/:id/tasks", d.Tasks.ListTasks)
		api.GET("/tasks/:id/next-states", d.Tasks.LegalNextStates)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(d.Env.JWTSecret))
		protected.PUT("/tasks/:id/status", d.Tasks.TransitionTask)
	}

	return r
}
