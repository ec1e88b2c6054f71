package jobs

import (
	"villabook/config"
	"villabook/internal/database"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"
)

const (
	Hourly = services.Hourly
	Daily  = services.Daily
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	db database.DB,
	repos repositories.Repository,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if config.StatRetentionDays <= 0 {
		log.Info("Stat retention disabled, no jobs to register")
		return nil
	}

	statRetentionJob := NewStatRetentionJob(db, repos.Stat, config.StatRetentionDays, Daily)
	if err := schedulerService.AddJob(statRetentionJob); err != nil {
		return log.Err("failed to register stat retention job", err)
	}
	log.Info("Registered stat retention job", "schedule", "daily")

	return nil
}
