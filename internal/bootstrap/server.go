package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	app "github.com/campuscore/admissions/internal/application/admission"
	"github.com/campuscore/admissions/internal/config"
	"github.com/campuscore/admissions/internal/infrastructure/repository"
	httpecho "github.com/campuscore/admissions/internal/interfaces/http/echo"
	"github.com/campuscore/admissions/internal/security"
)

func NewHTTPServer(cfg config.Config, db *gorm.DB, pool *pgxpool.Pool, archive httpecho.BatchArchive) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))

	importJobRepo := repository.NewImportJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(pool)

	importApplications := app.NewImportApplications(importJobRepo, applicationRepo)
	listImportJobs := app.NewListImportJobs(importJobRepo)
	getJobErrors := app.NewGetImportJobErrors(importJobRepo)

	tokens := security.NewJWTProvider(cfg.JWTSecret, cfg.AccessTokenTTL)
	auth := httpecho.NewAuthMiddleware(tokens)

	importHandler := httpecho.NewImportHandler(importApplications, archive)
	queryHandler := httpecho.NewQueryHandler(listImportJobs, getJobErrors)

	httpecho.RegisterRoutes(server, auth, importHandler, queryHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
