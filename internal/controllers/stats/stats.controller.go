package statsController

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"villabook/config"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"

	"gorm.io/datatypes"
)

var ErrValidation = errors.New("validation error")

const (
	maxEventNameLength = 50
	topListSize        = 5
)

type LogEventRequest struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type StatsControllerInterface interface {
	// LogEvent appends one analytics record. Storage failures are swallowed
	// so a broken stats table can never break the booking funnel.
	LogEvent(ctx context.Context, request *LogEventRequest) error
	GetStats(ctx context.Context) (*StatsSummary, error)
}

type StatsController struct {
	statRepo repositories.StatRepository
	db       database.DB
	Config   config.Config
	log      logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) StatsControllerInterface {
	return &StatsController{
		statRepo: repos.Stat,
		db:       db,
		Config:   config,
		log:      logger.New("statsController"),
	}
}

func (c *StatsController) LogEvent(ctx context.Context, request *LogEventRequest) error {
	log := c.log.Function("LogEvent")

	event := strings.TrimSpace(request.Event)
	if event == "" {
		return log.ErrorWithType(ErrValidation, "event name is required")
	}
	if len(event) > maxEventNameLength {
		return log.ErrorWithType(ErrValidation, "event name too long", "event", event)
	}

	record := &StatEvent{
		Event:   event,
		Payload: datatypes.JSON(request.Payload),
	}

	if err := c.statRepo.Insert(ctx, c.db.SQL, record); err != nil {
		log.Er("failed to store stat event", err, "event", event)
	}

	return nil
}

func (c *StatsController) GetStats(ctx context.Context) (*StatsSummary, error) {
	log := c.log.Function("GetStats")

	counts, err := c.statRepo.CountsByEvent(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to count events", err)
	}

	rangeEvents, err := c.statRepo.ListByEvent(ctx, c.db.SQL, EventDateRangeSelected)
	if err != nil {
		return nil, log.Err("failed to list range events", err)
	}

	submissionEvents, err := c.statRepo.ListByEvent(ctx, c.db.SQL, EventFormSubmission)
	if err != nil {
		return nil, log.Err("failed to list submission events", err)
	}

	return &StatsSummary{
		Events:     counts,
		TopRanges:  TopRanges(rangeEvents, topListSize),
		TopEntries: TopEntryDates(submissionEvents, topListSize),
	}, nil
}

// TopRanges ranks the most-quoted date ranges, keyed "start - end". Events
// with unparseable payloads are skipped.
func TopRanges(events []StatEvent, n int) []RankedCount {
	counts := make(map[string]int)
	for _, event := range events {
		var payload RangePayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			continue
		}
		if payload.Start == "" || payload.End == "" {
			continue
		}
		counts[fmt.Sprintf("%s - %s", payload.Start, payload.End)]++
	}

	return rank(counts, n)
}

// TopEntryDates ranks the most-requested check-in dates of submitted forms.
func TopEntryDates(events []StatEvent, n int) []RankedCount {
	counts := make(map[string]int)
	for _, event := range events {
		var payload SubmissionPayload
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			continue
		}
		if payload.StartDate == "" {
			continue
		}
		counts[payload.StartDate]++
	}

	return rank(counts, n)
}

// rank orders by descending count with the key as tiebreaker, so output is
// deterministic for equal counts.
func rank(counts map[string]int, n int) []RankedCount {
	ranked := make([]RankedCount, 0, len(counts))
	for key, count := range counts {
		ranked = append(ranked, RankedCount{Key: key, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
