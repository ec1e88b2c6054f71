package repositories

import (
	"context"
	"time"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

type StatRepository interface {
	Insert(ctx context.Context, tx *gorm.DB, event *StatEvent) error
	CountsByEvent(ctx context.Context, tx *gorm.DB) (map[string]int, error)
	ListByEvent(ctx context.Context, tx *gorm.DB, event string) ([]StatEvent, error)
	// DeleteOlderThan bulk-purges events before the cutoff and returns the
	// number of rows removed. The only delete path for stat events.
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type statRepository struct{}

func NewStatRepository() StatRepository {
	return &statRepository{}
}

func (r *statRepository) Insert(ctx context.Context, tx *gorm.DB, event *StatEvent) error {
	log := logger.NewWithContext(ctx, "statRepository").Function("Insert")

	if err := tx.WithContext(ctx).Create(event).Error; err != nil {
		return log.Err("failed to insert stat event", err, "event", event.Event)
	}

	return nil
}

func (r *statRepository) CountsByEvent(
	ctx context.Context,
	tx *gorm.DB,
) (map[string]int, error) {
	log := logger.NewWithContext(ctx, "statRepository").Function("CountsByEvent")

	type countRow struct {
		Event string `gorm:"column:event"`
		Total int    `gorm:"column:total"`
	}

	var rows []countRow
	if err := tx.WithContext(ctx).
		Model(&StatEvent{}).
		Select("event, COUNT(*) as total").
		Group("event").
		Scan(&rows).Error; err != nil {
		return nil, log.Err("failed to count stat events", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Event] = row.Total
	}

	return counts, nil
}

func (r *statRepository) ListByEvent(
	ctx context.Context,
	tx *gorm.DB,
	event string,
) ([]StatEvent, error) {
	log := logger.NewWithContext(ctx, "statRepository").Function("ListByEvent")

	var events []StatEvent
	if err := tx.WithContext(ctx).
		Where("event = ?", event).
		Find(&events).Error; err != nil {
		return nil, log.Err("failed to list stat events", err, "event", event)
	}

	return events, nil
}

func (r *statRepository) DeleteOlderThan(
	ctx context.Context,
	tx *gorm.DB,
	cutoff time.Time,
) (int64, error) {
	log := logger.NewWithContext(ctx, "statRepository").Function("DeleteOlderThan")

	result := tx.WithContext(ctx).
		Where("event_date < ?", cutoff).
		Delete(&StatEvent{})
	if result.Error != nil {
		return 0, log.Err("failed to purge stat events", result.Error, "cutoff", cutoff)
	}

	if result.RowsAffected > 0 {
		log.Info("Stat events purged", "removed", result.RowsAffected, "cutoff", cutoff)
	}

	return result.RowsAffected, nil
}
