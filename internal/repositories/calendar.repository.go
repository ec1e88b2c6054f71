package repositories

import (
	"context"
	"fmt"
	"time"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MONTH_CACHE_PREFIX = "month_days"
	MONTH_CACHE_EXPIRY = 12 * time.Hour
)

type CalendarRepository interface {
	GetRange(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]CalendarDay, error)
	GetMonth(ctx context.Context, tx *gorm.DB, year int, month time.Month) ([]CalendarDay, error)
	UpsertDays(ctx context.Context, tx *gorm.DB, days []CalendarDay) error
	// InvalidateMonths drops the cached view of every month overlapping
	// [start, end]. Callers that upsert inside a transaction must call this
	// again after commit; a month read mid-transaction can re-cache the old
	// rows.
	InvalidateMonths(ctx context.Context, start, end time.Time)
}

type calendarRepository struct {
	cache database.CacheClient
}

func NewCalendarRepository(db database.DB) CalendarRepository {
	return &calendarRepository{
		cache: db.Cache.Calendar,
	}
}

func monthCacheKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func (r *calendarRepository) GetRange(
	ctx context.Context,
	tx *gorm.DB,
	start, end time.Time,
) ([]CalendarDay, error) {
	log := logger.NewWithContext(ctx, "calendarRepository").Function("GetRange")

	var days []CalendarDay
	if err := tx.WithContext(ctx).
		Where("day BETWEEN ? AND ?", start, end).
		Order("day ASC").
		Find(&days).Error; err != nil {
		return nil, log.Err("failed to get calendar range", err,
			"start", FormatDay(start), "end", FormatDay(end))
	}

	return days, nil
}

func (r *calendarRepository) GetMonth(
	ctx context.Context,
	tx *gorm.DB,
	year int,
	month time.Month,
) ([]CalendarDay, error) {
	log := logger.NewWithContext(ctx, "calendarRepository").Function("GetMonth")

	key := monthCacheKey(year, month)

	var cached []CalendarDay
	found, err := database.NewCacheBuilder(r.cache, key).
		WithContext(ctx).
		WithHash(MONTH_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get month from cache", "month", key, "error", err)
	}
	if found {
		return cached, nil
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	days, err := r.GetRange(ctx, tx, first, last)
	if err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(r.cache, key).
		WithContext(ctx).
		WithHash(MONTH_CACHE_PREFIX).
		WithStruct(days).
		WithTTL(MONTH_CACHE_EXPIRY).
		Set(); err != nil {
		log.Warn("failed to set month in cache", "month", key, "error", err)
	}

	return days, nil
}

func (r *calendarRepository) UpsertDays(
	ctx context.Context,
	tx *gorm.DB,
	days []CalendarDay,
) error {
	log := logger.NewWithContext(ctx, "calendarRepository").Function("UpsertDays")

	if len(days) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "price", "notes", "updated_at"}),
		}).
		Create(&days).Error; err != nil {
		return log.Err("failed to upsert calendar days", err, "count", len(days))
	}

	r.invalidateMonths(ctx, days)

	log.Info("Calendar days upserted",
		"count", len(days),
		"start", FormatDay(days[0].Day),
		"end", FormatDay(days[len(days)-1].Day),
	)

	return nil
}

// invalidateMonths drops the cached view of every month touched by the
// written days. Cache failures are logged and ignored.
func (r *calendarRepository) invalidateMonths(ctx context.Context, days []CalendarDay) {
	seen := make(map[string]bool)
	for _, day := range days {
		key := monthCacheKey(day.Day.Year(), day.Day.Month())
		if seen[key] {
			continue
		}
		seen[key] = true

		r.dropMonth(ctx, key)
	}
}

func (r *calendarRepository) InvalidateMonths(ctx context.Context, start, end time.Time) {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		r.dropMonth(ctx, monthCacheKey(month.Year(), month.Month()))
	}
}

func (r *calendarRepository) dropMonth(ctx context.Context, key string) {
	log := logger.NewWithContext(ctx, "calendarRepository").Function("dropMonth")

	if err := database.NewCacheBuilder(r.cache, key).
		WithContext(ctx).
		WithHash(MONTH_CACHE_PREFIX).
		Delete(); err != nil {
		log.Warn("failed to invalidate month cache", "month", key, "error", err)
	}
}
