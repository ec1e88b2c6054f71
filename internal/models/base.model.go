package models

import (
	"time"
)

// BaseModel is the shared identity/timestamp block. Deletes in this domain
// are hard deletes (requests, checklist items), so there is no DeletedAt.
type BaseModel struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime"                    json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                    json:"updated_at"`
}

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, value, time.UTC)
}

// FormatDay renders a time as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// Day truncates a time to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
