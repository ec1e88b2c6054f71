package repositories

import (
	"context"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *BookingRequest) error
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*BookingRequest, error)
	List(ctx context.Context, tx *gorm.DB) ([]BookingRequest, error)
	// TransitionStatus moves a request from one status to another and
	// reports whether a row actually changed, so callers can distinguish
	// "already decided" from success without a prior read.
	TransitionStatus(ctx context.Context, tx *gorm.DB, id int, from, to RequestStatus) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id int) (bool, error)
}

type requestRepository struct{}

func NewRequestRepository() RequestRepository {
	return &requestRepository{}
}

func (r *requestRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	request *BookingRequest,
) error {
	log := logger.NewWithContext(ctx, "requestRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(request).Error; err != nil {
		return log.Err("failed to create booking request", err,
			"start", FormatDay(request.StartDate),
			"end", FormatDay(request.EndDate),
		)
	}

	log.Info("Booking request created", "requestID", request.ID, "nights", request.Nights)
	return nil
}

func (r *requestRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*BookingRequest, error) {
	log := logger.NewWithContext(ctx, "requestRepository").Function("GetByID")

	var request BookingRequest
	if err := tx.WithContext(ctx).First(&request, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, log.Err("failed to get booking request", err, "requestID", id)
	}

	return &request, nil
}

func (r *requestRepository) List(ctx context.Context, tx *gorm.DB) ([]BookingRequest, error) {
	log := logger.NewWithContext(ctx, "requestRepository").Function("List")

	var requests []BookingRequest
	if err := tx.WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to list booking requests", err)
	}

	return requests, nil
}

func (r *requestRepository) TransitionStatus(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	from, to RequestStatus,
) (bool, error) {
	log := logger.NewWithContext(ctx, "requestRepository").Function("TransitionStatus")

	result := tx.WithContext(ctx).
		Model(&BookingRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, log.Err("failed to transition request status", result.Error,
			"requestID", id, "from", from, "to", to)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	log.Info("Request status transitioned", "requestID", id, "from", from, "to", to)
	return true, nil
}

func (r *requestRepository) Delete(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := logger.NewWithContext(ctx, "requestRepository").Function("Delete")

	result := tx.WithContext(ctx).Delete(&BookingRequest{}, id)
	if result.Error != nil {
		return false, log.Err("failed to delete booking request", result.Error, "requestID", id)
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	log.Info("Booking request deleted", "requestID", id)
	return true, nil
}
