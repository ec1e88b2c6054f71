package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// GuestPayload is the guest detail snapshot captured at submission. It is
// immutable once the request is created and is copied verbatim onto the
// reservation at approval.
type GuestPayload struct {
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	People        int    `json:"people"`
	Ages          []int  `json:"ages"`
	Nationality   string `json:"nationality,omitempty"`
	Province      string `json:"province,omitempty"`
	LegalText     string `json:"legal_text,omitempty"`
	AcceptPrivacy bool   `json:"accept_privacy"`
	AcceptNews    bool   `json:"accept_news"`
}

// BookingRequest is a guest submission awaiting a decision. Only the status
// field ever changes after creation; deletes are hard and do not cascade to
// a reservation already created from the request.
type BookingRequest struct {
	BaseModel
	StartDate  time.Time                         `gorm:"type:date;not null"                     json:"-"`
	EndDate    time.Time                         `gorm:"type:date;not null"                     json:"-"`
	Nights     int                               `gorm:"type:smallint;not null;default:1"       json:"nights"`
	PriceTotal *decimal.Decimal                  `gorm:"type:decimal(10,2)"                     json:"price_total"`
	Status     RequestStatus                     `gorm:"type:text;not null;default:'pending';index:idx_booking_requests_status" json:"status"`
	Payload    datatypes.JSONType[GuestPayload]  `gorm:"type:jsonb;not null"                    json:"payload"`
}

func (r *BookingRequest) BeforeCreate(tx *gorm.DB) error {
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return gorm.ErrInvalidValue
	}
	if r.Nights < 1 {
		r.Nights = 1
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	return nil
}

// RequestView is the API shape of a booking request.
type RequestView struct {
	ID         int              `json:"id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Nights     int              `json:"nights"`
	PriceTotal *decimal.Decimal `json:"price_total"`
	Status     RequestStatus    `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	Payload    GuestPayload     `json:"payload"`
}

func (r *BookingRequest) ToView() RequestView {
	return RequestView{
		ID:         r.ID,
		StartDate:  FormatDay(r.StartDate),
		EndDate:    FormatDay(r.EndDate),
		Nights:     r.Nights,
		PriceTotal: r.PriceTotal,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		Payload:    r.Payload.Data(),
	}
}
