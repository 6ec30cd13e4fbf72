package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinicdesk/handlers"
	"clinicdesk/middleware"
)

// RegisterScheduleRoutes registers availability resolution.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/:providerId/:date", hb.Schedule.GetAvailabilityHandler)
	}
}

// RegisterAppointmentRoutes registers booking and cancellation. Both mutate
// the grid, so the staff context is required for the audit trail.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.StaffContextMiddleware())
		api.POST("", hb.Appointments.CreateAppointmentHandler)
		api.POST("/:id/cancel", hb.Appointments.CancelAppointmentHandler)
	}
}

// RegisterProviderRoutes registers provider profile management.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.GET("", hb.Providers.ListProvidersHandler)
		api.GET("/:id", hb.Providers.GetProviderHandler)
		api.GET("/:id/leaves", hb.Leaves.ListLeavesHandler)

		protected := api.Group("")
		protected.Use(middleware.StaffContextMiddleware())
		protected.POST("", hb.Providers.CreateProviderHandler)
		protected.PUT("/:id/hours", hb.Providers.UpdateHoursHandler)
		protected.PUT("/:id/active", hb.Providers.SetActiveHandler)
	}
}

// RegisterLeaveRoutes registers leave period management.
func RegisterLeaveRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leaves")
	{
		api.Use(middleware.StaffContextMiddleware())
		api.POST("", hb.Leaves.CreateLeaveHandler)
		api.DELETE("/:id", hb.Leaves.RemoveLeaveHandler)
	}
}

// RegisterEventRoutes registers clinic blackout events.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("", hb.Events.ListEventsHandler)

		protected := api.Group("")
		protected.Use(middleware.StaffContextMiddleware())
		protected.POST("", hb.Events.CreateEventHandler)
		protected.POST("/:id/publish", hb.Events.PublishEventHandler)
		protected.POST("/:id/unpublish", hb.Events.UnpublishEventHandler)
		protected.DELETE("/:id", hb.Events.DeleteEventHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Staff-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterLeaveRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterHealthRoute(r)
}
