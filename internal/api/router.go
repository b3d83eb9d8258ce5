package api

import (
	"net/http"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/api/handlers"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/api/middleware"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/config"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	patientHandler := handlers.NewPatientHandler(services.Patient, services.Assignment)
	seriesHandler := handlers.NewSeriesHandler(services.Series)
	catalogHandler := handlers.NewCatalogHandler(services.Catalog)
	sessionHandler := handlers.NewSessionHandler(services.Session, services.Patient, services.Assignment)

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Catalog routes (any authenticated user)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/therapy-types", catalogHandler.ListTherapyTypes)
			r.Get("/postures", catalogHandler.ListPostures)
		})

		// Instructor routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Use(middleware.RequireRole(domain.RoleInstructor))

			r.Route("/patients", func(r chi.Router) {
				r.Get("/", patientHandler.List)
				r.Post("/", patientHandler.Create)
				r.Post("/{id}/assign-series", patientHandler.AssignSeries)
			})

			r.Route("/series", func(r chi.Router) {
				r.Get("/", seriesHandler.List)
				r.Post("/", seriesHandler.Create)
			})
		})

		// Patient routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Use(middleware.RequireRole(domain.RolePatient))

			r.Get("/my-series", sessionHandler.MySeries)
			r.Get("/my-sessions", sessionHandler.MySessions)
			r.Post("/sessions", sessionHandler.Create)
		})
	})

	return r
}
