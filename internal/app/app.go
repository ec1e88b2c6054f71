package app

import (
	"context"
	"villabook/config"
	"villabook/internal/controllers"
	"villabook/internal/database"
	"villabook/internal/handlers/middleware"
	"villabook/internal/jobs"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	svc, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	ctl := controllers.New(svc, repos, config, db)
	mw := middleware.New(db, config)

	if err := jobs.RegisterAllJobs(svc.Scheduler, config, db, repos); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	if svc.Scheduler.GetJobCount() > 0 {
		if err := svc.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Middleware:  mw,
		Config:      config,
		Services:    svc,
		Repos:       repos,
		Controllers: ctl,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.Notification,
		a.Controllers.Availability,
		a.Controllers.Booking,
		a.Controllers.Workorder,
		a.Controllers.Checklist,
		a.Controllers.Stats,
		a.Controllers.Settings,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
