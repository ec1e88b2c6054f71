package repositories

import (
	"context"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *Reservation) error
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Reservation, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*Reservation, error)
	List(ctx context.Context, tx *gorm.DB) ([]Reservation, error)
	TokenExists(ctx context.Context, tx *gorm.DB, token string) (bool, error)
}

type reservationRepository struct{}

func NewReservationRepository() ReservationRepository {
	return &reservationRepository{}
}

func (r *reservationRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	reservation *Reservation,
) error {
	log := logger.NewWithContext(ctx, "reservationRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(reservation).Error; err != nil {
		return log.Err("failed to create reservation", err,
			"requestID", reservation.RequestID,
		)
	}

	log.Info("Reservation created",
		"reservationID", reservation.ID,
		"start", FormatDay(reservation.StartDate),
		"end", FormatDay(reservation.EndDate),
	)
	return nil
}

func (r *reservationRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*Reservation, error) {
	log := logger.NewWithContext(ctx, "reservationRepository").Function("GetByID")

	var reservation Reservation
	if err := tx.WithContext(ctx).
		Preload("Workorder").
		First(&reservation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, log.Err("failed to get reservation", err, "reservationID", id)
	}

	return &reservation, nil
}

func (r *reservationRepository) GetByToken(
	ctx context.Context,
	tx *gorm.DB,
	token string,
) (*Reservation, error) {
	log := logger.NewWithContext(ctx, "reservationRepository").Function("GetByToken")

	var reservation Reservation
	if err := tx.WithContext(ctx).
		Preload("Workorder").
		Where("public_token = ?", token).
		First(&reservation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, log.Err("failed to get reservation by token", err)
	}

	return &reservation, nil
}

func (r *reservationRepository) List(ctx context.Context, tx *gorm.DB) ([]Reservation, error) {
	log := logger.NewWithContext(ctx, "reservationRepository").Function("List")

	var reservations []Reservation
	if err := tx.WithContext(ctx).
		Preload("Workorder").
		Order("start_date DESC").
		Find(&reservations).Error; err != nil {
		return nil, log.Err("failed to list reservations", err)
	}

	return reservations, nil
}

func (r *reservationRepository) TokenExists(
	ctx context.Context,
	tx *gorm.DB,
	token string,
) (bool, error) {
	log := logger.NewWithContext(ctx, "reservationRepository").Function("TokenExists")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Reservation{}).
		Where("public_token = ?", token).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check token existence", err)
	}

	return count > 0, nil
}
