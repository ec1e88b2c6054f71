package jobs

import (
	"context"
	"time"
	"villabook/internal/database"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"
)

// StatRetentionJob purges analytics events older than the configured
// retention window. Retention of zero disables the job entirely; it is never
// registered in that case.
type StatRetentionJob struct {
	db            database.DB
	stats         repositories.StatRepository
	retentionDays int
	log           logger.Logger
	schedule      services.Schedule
}

func NewStatRetentionJob(
	db database.DB,
	stats repositories.StatRepository,
	retentionDays int,
	schedule services.Schedule,
) *StatRetentionJob {
	log := logger.New("statRetentionJob")
	log.Info("Creating stat retention job", "retentionDays", retentionDays)

	return &StatRetentionJob{
		db:            db,
		stats:         stats,
		retentionDays: retentionDays,
		log:           log,
		schedule:      schedule,
	}
}

func (j *StatRetentionJob) Name() string {
	return "DailyStatRetention"
}

func (j *StatRetentionJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)
	removed, err := j.stats.DeleteOlderThan(ctx, j.db.SQL, cutoff)
	if err != nil {
		return log.Err("stat retention purge failed", err)
	}

	log.Info("Stat retention purge completed", "removed", removed, "cutoff", cutoff)
	return nil
}

func (j *StatRetentionJob) Schedule() services.Schedule {
	return j.schedule
}
