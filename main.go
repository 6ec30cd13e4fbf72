package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"clinicdesk/config"
	"clinicdesk/cron"
	"clinicdesk/database"
	appointmentRepo "clinicdesk/database/repository/appointment"
	eventRepo "clinicdesk/database/repository/event"
	leaveRepo "clinicdesk/database/repository/leave"
	providerRepo "clinicdesk/database/repository/provider"
	slotgridRepo "clinicdesk/database/repository/slotgrid"
	"clinicdesk/handlers"
	"clinicdesk/middleware"
	"clinicdesk/routes"
	"clinicdesk/services/clinicevent"
	"clinicdesk/services/leave"
	"clinicdesk/services/scheduling"
	"clinicdesk/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	cache := utils.GetCacheClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	gridRepo := slotgridRepo.NewMongoGridRepo()
	provRepo := providerRepo.NewMongoProviderRepo()
	lvRepo := leaveRepo.NewMongoLeaveRepo()
	evRepo := eventRepo.NewMongoEventRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	for name, fn := range map[string]func() error{
		"slotgrid":     gridRepo.EnsureIndexes,
		"providers":    provRepo.EnsureIndexes,
		"leaves":       lvRepo.EnsureIndexes,
		"events":       evRepo.EnsureIndexes,
		"appointments": apptRepo.EnsureIndexes,
	} {
		if err := fn(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	engine := &scheduling.DefaultSchedulingEngine{
		Grid:         gridRepo,
		Providers:    provRepo,
		Leaves:       lvRepo,
		Events:       evRepo,
		Appointments: apptRepo,
	}
	leaveService := &leave.DefaultLeaveService{
		Repo:      lvRepo,
		Scheduler: engine,
	}
	eventService := &clinicevent.DefaultEventService{
		Repo:      evRepo,
		Providers: provRepo,
		Scheduler: engine,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Schedule:     handlers.NewScheduleHandler(engine, cache, logger),
		Appointments: handlers.NewAppointmentHandler(engine, apptRepo, cache, logger),
		Providers:    handlers.NewProviderHandler(provRepo, cache, logger),
		Leaves:       handlers.NewLeaveHandler(leaveService, cache, logger),
		Events:       handlers.NewEventHandler(eventService, cache, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background pieces: dependency health snapshots and grid warm-up.
	utils.StartHealthMonitor(cache, database.MongoClient)
	cron.InitGridWarmupWorker(engine, provRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
