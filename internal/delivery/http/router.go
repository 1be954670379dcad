package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rodomax/fleet/internal/delivery/http/middleware"
	"github.com/rodomax/fleet/internal/pkg/config"
	"github.com/rodomax/fleet/internal/pkg/logger"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	ownerHandler   *OwnerHandler
	managerHandler *ManagerHandler
	driverHandler  *DriverHandler
	trailerHandler *TrailerHandler
	truckHandler   *TruckHandler
	logHandler     *LogHandler
	syncHandler    *SyncHandler
	config         *config.Config
	logger         logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	ownerHandler *OwnerHandler,
	managerHandler *ManagerHandler,
	driverHandler *DriverHandler,
	trailerHandler *TrailerHandler,
	truckHandler *TruckHandler,
	logHandler *LogHandler,
	syncHandler *SyncHandler,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		ownerHandler:   ownerHandler,
		managerHandler: managerHandler,
		driverHandler:  driverHandler,
		trailerHandler: trailerHandler,
		truckHandler:   truckHandler,
		logHandler:     logHandler,
		syncHandler:    syncHandler,
		config:         config,
		logger:         logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/owners", func(r chi.Router) {
			r.Post("/", rt.ownerHandler.Create)
			r.Get("/", rt.ownerHandler.List)
			r.Get("/{id}", rt.ownerHandler.Get)
			r.Put("/{id}", rt.ownerHandler.Update)
			r.Delete("/{id}", rt.ownerHandler.Delete)
		})

		r.Route("/managers", func(r chi.Router) {
			r.Post("/", rt.managerHandler.Create)
			r.Get("/", rt.managerHandler.List)
			r.Get("/{id}", rt.managerHandler.Get)
			r.Put("/{id}", rt.managerHandler.Update)
			r.Delete("/{id}", rt.managerHandler.Delete)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Post("/", rt.driverHandler.Create)
			r.Get("/", rt.driverHandler.List)
			r.Get("/{id}", rt.driverHandler.Get)
			r.Put("/{id}", rt.driverHandler.Update)
			r.Delete("/{id}", rt.driverHandler.Delete)
			r.Post("/{id}/assign", rt.driverHandler.Assign)
			r.Post("/{id}/unassign", rt.driverHandler.Unassign)
		})

		r.Route("/trailers", func(r chi.Router) {
			r.Post("/", rt.trailerHandler.Create)
			r.Get("/", rt.trailerHandler.List)
			r.Get("/available", rt.trailerHandler.ListAvailable)
			r.Get("/{id}", rt.trailerHandler.Get)
			r.Get("/{id}/available", rt.trailerHandler.Available)
			r.Put("/{id}", rt.trailerHandler.Update)
			r.Delete("/{id}", rt.trailerHandler.Delete)
		})

		r.Route("/trucks", func(r chi.Router) {
			r.Post("/", rt.truckHandler.Create)
			r.Get("/", rt.truckHandler.List)
			r.Get("/{id}", rt.truckHandler.Get)
			r.Put("/{id}", rt.truckHandler.Update)
			r.Delete("/{id}", rt.truckHandler.Delete)
			r.Get("/{id}/managers", rt.truckHandler.ManagerHistory)
			r.Post("/{id}/couple", rt.truckHandler.Couple)
			r.Post("/{id}/decouple", rt.truckHandler.Decouple)
			r.Post("/{id}/swap", rt.truckHandler.Swap)
			r.Post("/{id}/status", rt.truckHandler.SetStatus)
		})

		r.Get("/logs", rt.logHandler.List)
		r.Post("/sync", rt.syncHandler.Sync)
	})

	return r
}
