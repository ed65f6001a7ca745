// Package server assembles the HTTP application: middleware, routes, health
// and metrics endpoints.
package server

import (
	"context"
	"time"

	"question-bank/internal/config"
	"question-bank/internal/domain"
	"question-bank/internal/handler"
	"question-bank/internal/middleware"
	"question-bank/internal/service"
	"question-bank/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the wired services the routes call into.
type Dependencies struct {
	Imports  service.ImportService
	Exports  service.ExportService
	DB       *sqlx.DB
	Cache    domain.Cache
	Gatherer prometheus.Gatherer
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// New builds the fiber app.
func New(cfg *config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", health(deps))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	validator := validation.NewValidator(cfg.Import.MaxBytes, cfg.Import.MaxLines)
	api := app.Group("/api")
	handler.NewImportHandler(deps.Imports, validator).Register(api)
	handler.NewQuestionHandler(deps.Imports, deps.Exports, validator).Register(api)

	return app
}

// health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} server.HealthResponse
// @Failure 503 {object} server.HealthResponse
// @Router /health [get]
func health(deps Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok", Database: "ok", Cache: "ok"}
		if deps.DB != nil {
			if err := deps.DB.PingContext(ctx); err != nil {
				resp.Status, resp.Database = "degraded", err.Error()
			}
		}
		if deps.Cache != nil {
			if err := deps.Cache.Ping(ctx); err != nil {
				resp.Status, resp.Cache = "degraded", err.Error()
			}
		}
		if resp.Status != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		return c.JSON(resp)
	}
}
