package statsController

import (
	"fmt"
	"testing"
	. "villabook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func rangeEvent(start, end string) StatEvent {
	payload := fmt.Sprintf(`{"start":%q,"end":%q}`, start, end)
	return StatEvent{Event: EventDateRangeSelected, Payload: datatypes.JSON(payload)}
}

func submissionEvent(start string) StatEvent {
	payload := fmt.Sprintf(`{"request_id":1,"start_date":%q,"end_date":"2026-12-31"}`, start)
	return StatEvent{Event: EventFormSubmission, Payload: datatypes.JSON(payload)}
}

func TestTopRanges(t *testing.T) {
	t.Run("ranks by frequency", func(t *testing.T) {
		events := []StatEvent{
			rangeEvent("2026-08-01", "2026-08-08"),
			rangeEvent("2026-08-01", "2026-08-08"),
			rangeEvent("2026-08-01", "2026-08-08"),
			rangeEvent("2026-07-01", "2026-07-05"),
			rangeEvent("2026-07-01", "2026-07-05"),
			rangeEvent("2026-09-10", "2026-09-12"),
		}

		top := TopRanges(events, 5)

		require.Len(t, top, 3)
		assert.Equal(t, "2026-08-01 - 2026-08-08", top[0].Key)
		assert.Equal(t, 3, top[0].Count)
		assert.Equal(t, "2026-07-01 - 2026-07-05", top[1].Key)
		assert.Equal(t, 1, top[2].Count)
	})

	t.Run("truncates to n", func(t *testing.T) {
		var events []StatEvent
		for i := 0; i < 8; i++ {
			events = append(events, rangeEvent(
				fmt.Sprintf("2026-01-%02d", i+1),
				fmt.Sprintf("2026-01-%02d", i+2),
			))
		}

		assert.Len(t, TopRanges(events, 5), 5)
	})

	t.Run("skips malformed payloads", func(t *testing.T) {
		events := []StatEvent{
			{Event: EventDateRangeSelected, Payload: datatypes.JSON(`not json`)},
			{Event: EventDateRangeSelected, Payload: datatypes.JSON(`{"start":"","end":""}`)},
			rangeEvent("2026-08-01", "2026-08-03"),
		}

		top := TopRanges(events, 5)

		require.Len(t, top, 1)
		assert.Equal(t, "2026-08-01 - 2026-08-03", top[0].Key)
	})

	t.Run("equal counts break ties by key", func(t *testing.T) {
		events := []StatEvent{
			rangeEvent("2026-03-01", "2026-03-02"),
			rangeEvent("2026-01-01", "2026-01-02"),
			rangeEvent("2026-02-01", "2026-02-02"),
		}

		top := TopRanges(events, 5)

		assert.Equal(t, "2026-01-01 - 2026-01-02", top[0].Key)
		assert.Equal(t, "2026-02-01 - 2026-02-02", top[1].Key)
		assert.Equal(t, "2026-03-01 - 2026-03-02", top[2].Key)
	})
}

func TestTopEntryDates(t *testing.T) {
	events := []StatEvent{
		submissionEvent("2026-08-01"),
		submissionEvent("2026-08-01"),
		submissionEvent("2026-12-24"),
	}

	top := TopEntryDates(events, 5)

	require.Len(t, top, 2)
	assert.Equal(t, "2026-08-01", top[0].Key)
	assert.Equal(t, 2, top[0].Count)
	assert.Equal(t, "2026-12-24", top[1].Key)
}
