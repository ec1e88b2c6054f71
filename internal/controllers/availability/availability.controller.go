package availabilityController

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"villabook/config"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var (
	ErrInvalidRange     = errors.New("invalid range")
	ErrRangeUnavailable = errors.New("range unavailable")
)

// MinNightsError rejects a stay shorter than the configured minimum. It
// carries the minimum so the API can tell the guest what to fix.
type MinNightsError struct {
	MinNights int
}

func (e *MinNightsError) Error() string {
	return fmt.Sprintf("stay is below the minimum of %d nights", e.MinNights)
}

type UpdateRangeRequest struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Status    DayStatus        `json:"status"`
	Price     *decimal.Decimal `json:"price"`
	Notes     *string          `json:"notes,omitempty"`
}

type RangePriceResult struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Nights    int             `json:"nights"`
	Valid     bool            `json:"valid"`
	Total     decimal.Decimal `json:"total"`
}

type AvailabilityControllerInterface interface {
	GetMonth(ctx context.Context, year int, month time.Month) ([]DayView, error)
	UpdateRange(ctx context.Context, request *UpdateRangeRequest) (int, error)
	CalculateRangePrice(ctx context.Context, startDate, endDate string) (*RangePriceResult, error)
	// PriceBookableRange is the shared pricing core: it validates the stay
	// length against settings and prices every day of the inclusive range.
	PriceBookableRange(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error)
}

type AvailabilityController struct {
	calendarRepo repositories.CalendarRepository
	settingsRepo repositories.SettingsRepository
	statRepo     repositories.StatRepository
	db           database.DB
	Config       config.Config
	log          logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) AvailabilityControllerInterface {
	return &AvailabilityController{
		calendarRepo: repos.Calendar,
		settingsRepo: repos.Settings,
		statRepo:     repos.Stat,
		db:           db,
		Config:       config,
		log:          logger.New("availabilityController"),
	}
}

// GetMonth returns every day of the month in order. Days with no stored row
// are synthesized as unpriced with a null price, so the calendar UI never has
// to special-case gaps.
func (c *AvailabilityController) GetMonth(
	ctx context.Context,
	year int,
	month time.Month,
) ([]DayView, error) {
	log := c.log.Function("GetMonth")

	if year < 1 || month < time.January || month > time.December {
		return nil, log.ErrorWithType(ErrInvalidRange, "invalid year or month",
			"year", year, "month", int(month))
	}

	stored, err := c.calendarRepo.GetMonth(ctx, c.db.SQL, year, month)
	if err != nil {
		return nil, log.Err("failed to get month", err, "year", year, "month", int(month))
	}

	return SynthesizeMonth(year, month, stored), nil
}

// SynthesizeMonth merges stored rows into a full month of day views, filling
// gaps with unpriced days.
func SynthesizeMonth(year int, month time.Month, stored []CalendarDay) []DayView {
	byDay := make(map[string]*CalendarDay, len(stored))
	for i := range stored {
		byDay[FormatDay(stored[i].Day)] = &stored[i]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	views := make([]DayView, 0, daysInMonth)
	for i := 0; i < daysInMonth; i++ {
		day := first.AddDate(0, 0, i)
		if row, ok := byDay[FormatDay(day)]; ok {
			views = append(views, row.ToView())
			continue
		}
		views = append(views, DayView{
			Day:    FormatDay(day),
			Status: DayStatusUnpriced,
			Price:  nil,
		})
	}

	return views
}

// UpdateRange writes one status/price/notes combination across an inclusive
// date range and returns the number of days written. A status other than
// available always clears the price.
func (c *AvailabilityController) UpdateRange(
	ctx context.Context,
	request *UpdateRangeRequest,
) (int, error) {
	log := c.log.Function("UpdateRange")

	start, end, err := parseRange(request.StartDate, request.EndDate)
	if err != nil {
		return 0, log.ErrorWithType(ErrInvalidRange, err.Error(),
			"start", request.StartDate, "end", request.EndDate)
	}

	if !ValidDayStatus(request.Status) {
		return 0, log.ErrorWithType(ErrInvalidRange, "unknown day status",
			"status", string(request.Status))
	}

	price := request.Price
	if request.Status != DayStatusAvailable {
		price = nil
	}
	if price != nil && price.IsNegative() {
		return 0, log.ErrorWithType(ErrInvalidRange, "price cannot be negative")
	}

	var days []CalendarDay
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, CalendarDay{
			Day:    day,
			Status: request.Status,
			Price:  price,
			Notes:  request.Notes,
		})
	}

	if err := c.calendarRepo.UpsertDays(ctx, c.db.SQL, days); err != nil {
		return 0, log.Err("failed to update range", err, "days", len(days))
	}

	log.Info("Calendar range updated",
		"start", request.StartDate,
		"end", request.EndDate,
		"status", string(request.Status),
		"days", len(days),
	)

	return len(days), nil
}

// CalculateRangePrice quotes a stay and records the lookup as a
// date_range_selected event. An unbookable range is not an error here, the
// quote just comes back with valid=false and a zero total. The event write is
// best effort and never fails the quote.
func (c *AvailabilityController) CalculateRangePrice(
	ctx context.Context,
	startDate, endDate string,
) (*RangePriceResult, error) {
	log := c.log.Function("CalculateRangePrice")

	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, log.ErrorWithType(ErrInvalidRange, err.Error(),
			"start", startDate, "end", endDate)
	}

	result := &RangePriceResult{
		StartDate: FormatDay(start),
		EndDate:   FormatDay(end),
		Nights:    Nights(start, end),
	}

	days, err := c.calendarRepo.GetRange(ctx, c.db.SQL, start, end)
	if err != nil {
		return nil, log.Err("failed to load range", err)
	}

	c.recordRangeSelected(ctx, start, end)

	total, err := PriceRange(days, start, end)
	if err != nil {
		log.Debug("range not bookable", "start", result.StartDate, "end", result.EndDate)
		return result, nil
	}

	result.Valid = true
	result.Total = total

	return result, nil
}

func (c *AvailabilityController) PriceBookableRange(
	ctx context.Context,
	start, end time.Time,
) (decimal.Decimal, int, error) {
	log := c.log.Function("PriceBookableRange")

	nights := Nights(start, end)

	settings, err := c.settingsRepo.Get(ctx, c.db.SQL)
	if err != nil {
		return decimal.Zero, 0, log.Err("failed to load settings", err)
	}

	if nights < settings.MinNights {
		return decimal.Zero, 0, &MinNightsError{MinNights: settings.MinNights}
	}

	days, err := c.calendarRepo.GetRange(ctx, c.db.SQL, start, end)
	if err != nil {
		return decimal.Zero, 0, log.Err("failed to load range", err)
	}

	total, err := PriceRange(days, start, end)
	if err != nil {
		return decimal.Zero, 0, log.ErrorWithType(ErrRangeUnavailable,
			"range cannot be booked",
			"start", FormatDay(start), "end", FormatDay(end))
	}

	return total, nights, nil
}

// Nights counts the nights of a stay, one per day boundary crossed.
func Nights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// PriceRange sums the nightly price over the inclusive range, checkout day
// included. Every day must be stored, available and priced; any hole makes
// the whole range unbookable.
func PriceRange(days []CalendarDay, start, end time.Time) (decimal.Decimal, error) {
	byDay := make(map[string]*CalendarDay, len(days))
	for i := range days {
		byDay[FormatDay(days[i].Day)] = &days[i]
	}

	total := decimal.Zero
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		row, ok := byDay[FormatDay(day)]
		if !ok || !row.Bookable() {
			return decimal.Zero, ErrRangeUnavailable
		}
		total = total.Add(*row.Price)
	}

	return total, nil
}

func (c *AvailabilityController) recordRangeSelected(ctx context.Context, start, end time.Time) {
	log := c.log.Function("recordRangeSelected")

	payload, err := json.Marshal(RangePayload{
		Start: FormatDay(start),
		End:   FormatDay(end),
	})
	if err != nil {
		log.Er("failed to marshal range payload", err)
		return
	}

	event := &StatEvent{Event: EventDateRangeSelected, Payload: datatypes.JSON(payload)}
	if err := c.statRepo.Insert(ctx, c.db.SQL, event); err != nil {
		log.Er("failed to record range selection", err)
	}
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := ParseDay(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", startDate)
	}

	end, err := ParseDay(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", endDate)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date before start date")
	}

	return start, end, nil
}
