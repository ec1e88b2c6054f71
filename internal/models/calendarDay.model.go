package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DayStatus string

const (
	DayStatusAvailable DayStatus = "available"
	DayStatusBlocked   DayStatus = "blocked"
	DayStatusUnpriced  DayStatus = "unpriced"
)

// ValidDayStatus reports whether s is one of the three calendar statuses.
func ValidDayStatus(s DayStatus) bool {
	switch s {
	case DayStatusAvailable, DayStatusBlocked, DayStatusUnpriced:
		return true
	}
	return false
}

// CalendarDay is one stored day of the availability calendar. A day with no
// row is implicitly {status: unpriced, price: null}.
type CalendarDay struct {
	BaseModel
	Day    time.Time        `gorm:"type:date;not null;uniqueIndex:idx_calendar_days_day" json:"-"`
	Status DayStatus        `gorm:"type:text;not null;default:'available'"               json:"status"`
	Price  *decimal.Decimal `gorm:"type:decimal(10,2)"                                   json:"price"`
	Notes  *string          `gorm:"type:text"                                            json:"notes,omitempty"`
}

// Bookable reports whether the day can be part of a priced booking range.
// Blocked or unpriced days, and available days missing a price, are not.
func (d *CalendarDay) Bookable() bool {
	return d.Status == DayStatusAvailable && d.Price != nil
}

// DayView is the API shape of a calendar day, with the date rendered as
// YYYY-MM-DD. Synthesized for days that have no stored row.
type DayView struct {
	Day    string           `json:"day"`
	Status DayStatus        `json:"status"`
	Price  *decimal.Decimal `json:"price"`
}

func (d *CalendarDay) ToView() DayView {
	return DayView{
		Day:    FormatDay(d.Day),
		Status: d.Status,
		Price:  d.Price,
	}
}
