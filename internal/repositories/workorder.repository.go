package repositories

import (
	"context"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

type WorkorderRepository interface {
	// EnsureExists creates the empty workorder row for a reservation if it
	// is missing. Safe to call repeatedly.
	EnsureExists(ctx context.Context, tx *gorm.DB, reservationID int) error
	GetByReservation(ctx context.Context, tx *gorm.DB, reservationID int) (*Workorder, error)
	// Update merges the given column map into the stored workorder.
	// Unlisted columns stay untouched (partial update, not replace).
	Update(ctx context.Context, tx *gorm.DB, reservationID int, updates map[string]any) error
}

type workorderRepository struct{}

func NewWorkorderRepository() WorkorderRepository {
	return &workorderRepository{}
}

func (r *workorderRepository) EnsureExists(
	ctx context.Context,
	tx *gorm.DB,
	reservationID int,
) error {
	log := logger.NewWithContext(ctx, "workorderRepository").Function("EnsureExists")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Workorder{}).
		Where("reservation_id = ?", reservationID).
		Count(&count).Error; err != nil {
		return log.Err("failed to check workorder existence", err, "reservationID", reservationID)
	}

	if count > 0 {
		return nil
	}

	workorder := &Workorder{ReservationID: reservationID}
	if err := tx.WithContext(ctx).Create(workorder).Error; err != nil {
		return log.Err("failed to create workorder", err, "reservationID", reservationID)
	}

	log.Info("Workorder created", "reservationID", reservationID, "workorderID", workorder.ID)
	return nil
}

func (r *workorderRepository) GetByReservation(
	ctx context.Context,
	tx *gorm.DB,
	reservationID int,
) (*Workorder, error) {
	log := logger.NewWithContext(ctx, "workorderRepository").Function("GetByReservation")

	var workorder Workorder
	if err := tx.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		First(&workorder).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, log.Err("failed to get workorder", err, "reservationID", reservationID)
	}

	return &workorder, nil
}

func (r *workorderRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	reservationID int,
	updates map[string]any,
) error {
	log := logger.NewWithContext(ctx, "workorderRepository").Function("Update")

	if len(updates) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).
		Model(&Workorder{}).
		Where("reservation_id = ?", reservationID).
		Updates(updates).Error; err != nil {
		return log.Err("failed to update workorder", err, "reservationID", reservationID)
	}

	log.Info("Workorder updated", "reservationID", reservationID, "fields", len(updates))
	return nil
}
