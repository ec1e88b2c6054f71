package settingsController

import (
	"testing"
	. "villabook/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePlatforms(t *testing.T) {
	pct := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }

	t.Run("normalizes names", func(t *testing.T) {
		platforms, err := SanitizePlatforms([]PlatformFee{
			{Name: "  AirBnB ", Percentage: pct("15")},
			{Name: "Booking", Percentage: pct("18")},
		})

		require.NoError(t, err)
		assert.Equal(t, "airbnb", platforms[0].Name)
		assert.Equal(t, "booking", platforms[1].Name)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := SanitizePlatforms([]PlatformFee{{Name: "  ", Percentage: pct("10")}})
		assert.Error(t, err)
	})

	t.Run("rejects duplicates after normalization", func(t *testing.T) {
		_, err := SanitizePlatforms([]PlatformFee{
			{Name: "Airbnb", Percentage: pct("15")},
			{Name: "airbnb ", Percentage: pct("16")},
		})
		assert.Error(t, err)
	})

	t.Run("rejects percentages outside 0-100", func(t *testing.T) {
		_, err := SanitizePlatforms([]PlatformFee{{Name: "vrbo", Percentage: pct("101")}})
		assert.Error(t, err)

		_, err = SanitizePlatforms([]PlatformFee{{Name: "vrbo", Percentage: pct("-1")}})
		assert.Error(t, err)
	})

	t.Run("empty list is fine", func(t *testing.T) {
		platforms, err := SanitizePlatforms(nil)
		require.NoError(t, err)
		assert.Empty(t, platforms)
	})
}

func TestValidPercentage(t *testing.T) {
	assert.True(t, validPercentage(decimal.Zero))
	assert.True(t, validPercentage(decimal.NewFromInt(100)))
	assert.False(t, validPercentage(decimal.NewFromInt(101)))
	assert.False(t, validPercentage(decimal.NewFromInt(-1)))
}
