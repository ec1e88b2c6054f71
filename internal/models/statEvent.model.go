package models

import (
	"time"

	"gorm.io/datatypes"
)

// Stat event names recorded by the service itself; clients may log
// arbitrary additional names through the event endpoint.
const (
	EventFormSubmission    = "form_submission"
	EventDateRangeSelected = "date_range_selected"
)

// StatEvent is one append-only analytics record. Rows are never updated and
// are deleted only in bulk by the retention job.
type StatEvent struct {
	ID        int            `gorm:"type:int;primaryKey;autoIncrement"              json:"id"`
	Event     string         `gorm:"type:varchar(50);not null;index:idx_stat_events_event" json:"event"`
	EventDate time.Time      `gorm:"autoCreateTime;index:idx_stat_events_date"      json:"event_date"`
	Payload   datatypes.JSON `gorm:"type:jsonb"                                     json:"payload"`
}

// RangePayload is the payload shape of date_range_selected events.
type RangePayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SubmissionPayload is the payload shape of form_submission events.
type SubmissionPayload struct {
	RequestID int    `json:"request_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StatsSummary is the aggregated dashboard view: total count per event name
// plus the five most-selected ranges and most-requested start dates.
type StatsSummary struct {
	Events     map[string]int `json:"events"`
	TopRanges  []RankedCount  `json:"top_ranges"`
	TopEntries []RankedCount  `json:"top_entries"`
}

// RankedCount is one entry of a descending-count top list.
type RankedCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
