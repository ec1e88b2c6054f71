package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation is a confirmed stay, created exactly once at request approval.
// The public token grants unauthenticated access to the reservation's
// workorder; uniqueness is enforced by the index, never by overwrite.
type Reservation struct {
	BaseModel
	RequestID   *int                             `gorm:"index:idx_reservations_request"                        json:"request_id"`
	StartDate   time.Time                        `gorm:"type:date;not null"                                    json:"-"`
	EndDate     time.Time                        `gorm:"type:date;not null"                                    json:"-"`
	PriceTotal  *decimal.Decimal                 `gorm:"type:decimal(10,2)"                                    json:"price_total"`
	Payload     datatypes.JSONType[GuestPayload] `gorm:"type:jsonb;not null"                                   json:"payload"`
	PublicToken string                           `gorm:"type:varchar(64);not null;uniqueIndex:idx_reservations_token" json:"public_token"`

	Workorder *Workorder `gorm:"foreignKey:ReservationID" json:"workorder,omitempty"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.PublicToken == "" {
		return gorm.ErrInvalidValue
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return gorm.ErrInvalidValue
	}
	return nil
}

// ReservationView is the API shape of a reservation, optionally with its
// workorder embedded.
type ReservationView struct {
	ID          int              `json:"id"`
	RequestID   *int             `json:"request_id"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	PriceTotal  *decimal.Decimal `json:"price_total"`
	Payload     GuestPayload     `json:"payload"`
	PublicToken string           `json:"public_token"`
	CreatedAt   time.Time        `json:"created_at"`
	Workorder   *WorkorderView   `json:"workorder,omitempty"`
}

func (r *Reservation) ToView() ReservationView {
	view := ReservationView{
		ID:          r.ID,
		RequestID:   r.RequestID,
		StartDate:   FormatDay(r.StartDate),
		EndDate:     FormatDay(r.EndDate),
		PriceTotal:  r.PriceTotal,
		Payload:     r.Payload.Data(),
		PublicToken: r.PublicToken,
		CreatedAt:   r.CreatedAt,
	}
	if r.Workorder != nil {
		wo := r.Workorder.ToView()
		view.Workorder = &wo
	}
	return view
}
