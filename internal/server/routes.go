package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airvoice/internal/analytics"
	"airvoice/internal/db"
	"airvoice/internal/email"
	"airvoice/internal/handlers"
	"airvoice/internal/handlers/api"
	"airvoice/internal/middleware"
	"airvoice/internal/sentiment"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, engine *sentiment.Engine, analyticsEngine *analytics.Engine, notifier *email.Notifier) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Initialize handlers
	feedbackHandler := api.NewFeedbackHandler(database, s.Cfg, engine, notifier)
	analyzeHandler := api.NewAnalyzeHandler(engine)
	analyticsHandler := api.NewAnalyticsHandler(database, analyticsEngine)
	reportHandler := api.NewReportHandler(database, analyticsEngine)
	userHandler := api.NewUserHandler(database)
	healthHandler := api.NewHealthHandler(database)
	dashboardHandler := handlers.NewDashboardHandler(database, s.Cfg, analyticsEngine)

	// Auth routes - OIDC is always required for frontend access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Probes and metrics
	s.App.Get("/healthz", healthHandler.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Frontend routes
	s.App.Get("/", authMiddleware.RequireAuth, dashboardHandler.Index)

	// Feedback API
	s.App.Post("/api/feedback", authMiddleware.RequireAuth, feedbackHandler.Create)
	s.App.Get("/api/feedback", authMiddleware.RequireAuth, feedbackHandler.List)
	s.App.Get("/api/feedback/:id", authMiddleware.RequireAuth, feedbackHandler.Get)
	s.App.Put("/api/feedback/:id", authMiddleware.RequireAuth, feedbackHandler.Update)
	s.App.Post("/api/feedback/:id/status", authMiddleware.RequireAuth, feedbackHandler.Update)
	s.App.Delete("/api/feedback/:id", authMiddleware.RequireAuth, authMiddleware.RequireSupervisor, feedbackHandler.Delete)

	// Ad-hoc analysis API
	s.App.Post("/api/analyze", authMiddleware.RequireAuth, analyzeHandler.Analyze)
	s.App.Post("/api/analyze/batch", authMiddleware.RequireAuth, analyzeHandler.AnalyzeBatch)

	// Analytics API
	s.App.Get("/api/analytics/overview", authMiddleware.RequireAuth, analyticsHandler.Overview)
	s.App.Get("/api/analytics/nps", authMiddleware.RequireAuth, analyticsHandler.NPS)
	s.App.Get("/api/analytics/csat", authMiddleware.RequireAuth, analyticsHandler.CSAT)
	s.App.Get("/api/analytics/routes", authMiddleware.RequireAuth, analyticsHandler.Routes)
	s.App.Get("/api/analytics/routes/:route", authMiddleware.RequireAuth, analyticsHandler.Route)
	s.App.Get("/api/analytics/comparison", authMiddleware.RequireAuth, analyticsHandler.Comparison)
	s.App.Get("/api/analytics/nps-history", authMiddleware.RequireAuth, analyticsHandler.Trend)
	s.App.Get("/api/analytics/daily", authMiddleware.RequireAuth, analyticsHandler.Daily)
	s.App.Get("/api/analytics/top-complaints", authMiddleware.RequireAuth, analyticsHandler.Complaints)
	s.App.Get("/api/analytics/top-negative", authMiddleware.RequireAuth, analyticsHandler.TopNegative)

	// Reports API (supervisors only)
	s.App.Post("/api/reports", authMiddleware.RequireAuth, authMiddleware.RequireSupervisor, reportHandler.Create)
	s.App.Get("/api/reports", authMiddleware.RequireAuth, authMiddleware.RequireSupervisor, reportHandler.List)
	s.App.Get("/api/reports/:id", authMiddleware.RequireAuth, authMiddleware.RequireSupervisor, reportHandler.Get)
	s.App.Get("/api/reports/:id/download", authMiddleware.RequireAuth, authMiddleware.RequireSupervisor, reportHandler.Download)
	s.App.Delete("/api/reports/:id", authMiddleware.RequireAuth, authMiddleware.RequireSupervisor, reportHandler.Delete)

	// Admin routes (admin only)
	s.App.Get("/api/admin/users", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, userHandler.List)
	s.App.Post("/api/admin/users/:id/role", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, userHandler.UpdateRole)
	s.App.Delete("/api/admin/users/:id", authMiddleware.RequireAuth, authMiddleware.RequireAdmin, userHandler.Delete)

	return nil
}
