package availabilityController

import (
	"context"
	"testing"
	"time"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCalendarRepository struct {
	days     []CalendarDay
	upserted []CalendarDay
}

func (s *stubCalendarRepository) GetRange(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]CalendarDay, error) {
	return s.days, nil
}

func (s *stubCalendarRepository) GetMonth(ctx context.Context, tx *gorm.DB, year int, month time.Month) ([]CalendarDay, error) {
	return s.days, nil
}

func (s *stubCalendarRepository) UpsertDays(ctx context.Context, tx *gorm.DB, days []CalendarDay) error {
	s.upserted = append(s.upserted, days...)
	return nil
}

func (s *stubCalendarRepository) InvalidateMonths(ctx context.Context, start, end time.Time) {}

type stubStatRepository struct {
	inserted []StatEvent
}

func (s *stubStatRepository) Insert(ctx context.Context, tx *gorm.DB, event *StatEvent) error {
	s.inserted = append(s.inserted, *event)
	return nil
}

func (s *stubStatRepository) CountsByEvent(ctx context.Context, tx *gorm.DB) (map[string]int, error) {
	return nil, nil
}

func (s *stubStatRepository) ListByEvent(ctx context.Context, tx *gorm.DB, event string) ([]StatEvent, error) {
	return nil, nil
}

func (s *stubStatRepository) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	return 0, nil
}

func day(value string) time.Time {
	t, err := ParseDay(value)
	if err != nil {
		panic(err)
	}
	return t
}

func price(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestSynthesizeMonth(t *testing.T) {
	t.Run("empty month is fully synthesized", func(t *testing.T) {
		views := SynthesizeMonth(2026, time.February, nil)

		require.Len(t, views, 28)
		assert.Equal(t, "2026-02-01", views[0].Day)
		assert.Equal(t, "2026-02-28", views[27].Day)
		for _, view := range views {
			assert.Equal(t, DayStatusUnpriced, view.Status)
			assert.Nil(t, view.Price)
		}
	})

	t.Run("stored rows fill their slots and gaps stay unpriced", func(t *testing.T) {
		stored := []CalendarDay{
			{Day: day("2026-07-03"), Status: DayStatusAvailable, Price: price("120")},
			{Day: day("2026-07-04"), Status: DayStatusBlocked},
		}

		views := SynthesizeMonth(2026, time.July, stored)

		require.Len(t, views, 31)
		assert.Equal(t, DayStatusUnpriced, views[0].Status)

		assert.Equal(t, "2026-07-03", views[2].Day)
		assert.Equal(t, DayStatusAvailable, views[2].Status)
		require.NotNil(t, views[2].Price)
		assert.True(t, views[2].Price.Equal(decimal.RequireFromString("120")))

		assert.Equal(t, DayStatusBlocked, views[3].Status)
		assert.Nil(t, views[3].Price)
	})

	t.Run("leap february has 29 days", func(t *testing.T) {
		views := SynthesizeMonth(2028, time.February, nil)
		assert.Len(t, views, 29)
	})
}

func TestPriceRange(t *testing.T) {
	available := func(d, p string) CalendarDay {
		return CalendarDay{Day: day(d), Status: DayStatusAvailable, Price: price(p)}
	}

	t.Run("sums every day of the inclusive range", func(t *testing.T) {
		days := []CalendarDay{
			available("2026-08-10", "100"),
			available("2026-08-11", "100"),
			available("2026-08-12", "150.50"),
		}

		total, err := PriceRange(days, day("2026-08-10"), day("2026-08-12"))

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("350.50")), total.String())
	})

	t.Run("single day range charges that day", func(t *testing.T) {
		days := []CalendarDay{available("2026-08-10", "99.99")}

		total, err := PriceRange(days, day("2026-08-10"), day("2026-08-10"))

		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("99.99")))
	})

	t.Run("missing day makes the range unavailable", func(t *testing.T) {
		days := []CalendarDay{
			available("2026-08-10", "100"),
			available("2026-08-12", "100"),
		}

		_, err := PriceRange(days, day("2026-08-10"), day("2026-08-12"))

		assert.ErrorIs(t, err, ErrRangeUnavailable)
	})

	t.Run("blocked day makes the range unavailable", func(t *testing.T) {
		days := []CalendarDay{
			available("2026-08-10", "100"),
			{Day: day("2026-08-11"), Status: DayStatusBlocked},
			available("2026-08-12", "100"),
		}

		_, err := PriceRange(days, day("2026-08-10"), day("2026-08-12"))

		assert.ErrorIs(t, err, ErrRangeUnavailable)
	})

	t.Run("available day without a price is not bookable", func(t *testing.T) {
		days := []CalendarDay{
			{Day: day("2026-08-10"), Status: DayStatusAvailable},
		}

		_, err := PriceRange(days, day("2026-08-10"), day("2026-08-10"))

		assert.ErrorIs(t, err, ErrRangeUnavailable)
	})
}

func TestNights(t *testing.T) {
	assert.Equal(t, 0, Nights(day("2026-08-10"), day("2026-08-10")))
	assert.Equal(t, 1, Nights(day("2026-08-10"), day("2026-08-11")))
	assert.Equal(t, 7, Nights(day("2026-08-10"), day("2026-08-17")))
}

func TestParseRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		start, end, err := parseRange("2026-08-10", "2026-08-12")

		require.NoError(t, err)
		assert.Equal(t, day("2026-08-10"), start)
		assert.Equal(t, day("2026-08-12"), end)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, err := parseRange("10/08/2026", "2026-08-12")
		assert.Error(t, err)
	})

	t.Run("reversed range", func(t *testing.T) {
		_, _, err := parseRange("2026-08-12", "2026-08-10")
		assert.Error(t, err)
	})
}

func TestUpdateRange(t *testing.T) {
	newController := func() (*AvailabilityController, *stubCalendarRepository) {
		calendar := &stubCalendarRepository{}
		controller := &AvailabilityController{
			calendarRepo: calendar,
			log:          logger.New("availabilityController"),
		}
		return controller, calendar
	}

	t.Run("upserts every day of the inclusive range", func(t *testing.T) {
		controller, calendar := newController()

		count, err := controller.UpdateRange(context.Background(), &UpdateRangeRequest{
			StartDate: "2026-09-01",
			EndDate:   "2026-09-03",
			Status:    DayStatusAvailable,
			Price:     price("120"),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, count)
		require.Len(t, calendar.upserted, 3)
		assert.Equal(t, day("2026-09-01"), calendar.upserted[0].Day)
		assert.Equal(t, day("2026-09-03"), calendar.upserted[2].Day)
		require.NotNil(t, calendar.upserted[1].Price)
		assert.True(t, calendar.upserted[1].Price.Equal(decimal.RequireFromString("120")))
	})

	t.Run("blocking a range clears the price", func(t *testing.T) {
		controller, calendar := newController()

		_, err := controller.UpdateRange(context.Background(), &UpdateRangeRequest{
			StartDate: "2026-09-01",
			EndDate:   "2026-09-02",
			Status:    DayStatusBlocked,
			Price:     price("120"),
		})

		require.NoError(t, err)
		for _, d := range calendar.upserted {
			assert.Equal(t, DayStatusBlocked, d.Status)
			assert.Nil(t, d.Price)
		}
	})

	t.Run("reversed range is rejected", func(t *testing.T) {
		controller, _ := newController()

		_, err := controller.UpdateRange(context.Background(), &UpdateRangeRequest{
			StartDate: "2026-09-03",
			EndDate:   "2026-09-01",
			Status:    DayStatusAvailable,
		})

		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		controller, _ := newController()

		_, err := controller.UpdateRange(context.Background(), &UpdateRangeRequest{
			StartDate: "2026-09-01",
			EndDate:   "2026-09-02",
			Status:    DayStatusAvailable,
			Price:     price("-5"),
		})

		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestCalculateRangePrice(t *testing.T) {
	newController := func(days []CalendarDay) (*AvailabilityController, *stubStatRepository) {
		stats := &stubStatRepository{}
		controller := &AvailabilityController{
			calendarRepo: &stubCalendarRepository{days: days},
			statRepo:     stats,
			log:          logger.New("availabilityController"),
		}
		return controller, stats
	}

	t.Run("bookable range quotes valid with the summed total", func(t *testing.T) {
		controller, stats := newController([]CalendarDay{
			{Day: day("2026-08-10"), Status: DayStatusAvailable, Price: price("100")},
			{Day: day("2026-08-11"), Status: DayStatusAvailable, Price: price("100")},
			{Day: day("2026-08-12"), Status: DayStatusAvailable, Price: price("150")},
		})

		result, err := controller.CalculateRangePrice(context.Background(), "2026-08-10", "2026-08-12")

		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.True(t, result.Total.Equal(decimal.RequireFromString("350")), result.Total.String())
		assert.Equal(t, 2, result.Nights)
		assert.Len(t, stats.inserted, 1)
		assert.Equal(t, EventDateRangeSelected, stats.inserted[0].Event)
	})

	t.Run("blocked day quotes invalid with a zero total", func(t *testing.T) {
		controller, _ := newController([]CalendarDay{
			{Day: day("2026-08-10"), Status: DayStatusAvailable, Price: price("100")},
			{Day: day("2026-08-11"), Status: DayStatusBlocked},
			{Day: day("2026-08-12"), Status: DayStatusAvailable, Price: price("100")},
		})

		result, err := controller.CalculateRangePrice(context.Background(), "2026-08-10", "2026-08-12")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.True(t, result.Total.IsZero())
	})

	t.Run("reversed range is rejected", func(t *testing.T) {
		controller, _ := newController(nil)

		_, err := controller.CalculateRangePrice(context.Background(), "2026-08-12", "2026-08-10")

		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestMinNightsError(t *testing.T) {
	err := &MinNightsError{MinNights: 3}
	assert.Contains(t, err.Error(), "3")
}
