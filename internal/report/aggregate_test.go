package report

import (
	"testing"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsByID(rows []models.MetricsRow) map[int64]models.MetricsRow {
	out := make(map[int64]models.MetricsRow, len(rows))
	for _, r := range rows {
		out[r.EntityID] = r
	}
	return out
}

func TestAggregateRates(t *testing.T) {
	counts := []models.WindowCounts{
		// 1 of each in 7 days, a second list and conversion only the 14-day
		// window sees: click 100, conversion 7d 100, conversion 14d 50.
		{EntityID: 1, List7d: 1, Details7d: 1, Conversions7d: 1, List14d: 2, Conversions14d: 1},
		// Exact halves: 1/2 and 2/4 both come out as exactly 50.
		{EntityID: 2, List7d: 2, Details7d: 1, Conversions7d: 1, List14d: 4, Conversions14d: 2},
	}

	got := rowsByID(Aggregate(counts))
	require.Len(t, got, 2)

	assert.Equal(t, models.MetricsRow{
		EntityID: 1, ListImpressions: 1, DetailViews: 1, Conversions: 1,
		ClickRate7d: 100, ConversionRate7d: 100, ConversionRate14d: 50,
	}, got[1])

	assert.Equal(t, models.MetricsRow{
		EntityID: 2, ListImpressions: 2, DetailViews: 1, Conversions: 1,
		ClickRate7d: 50, ConversionRate7d: 50, ConversionRate14d: 50,
	}, got[2])
}

func TestAggregateZeroDenominator(t *testing.T) {
	counts := []models.WindowCounts{
		// Detail views and conversions without a single list impression:
		// every rate is 0 by business rule, never NaN.
		{EntityID: 5, Details7d: 3, Conversions7d: 2, Conversions14d: 2},
	}

	got := rowsByID(Aggregate(counts))
	require.Contains(t, got, int64(5))

	row := got[5]
	assert.Equal(t, int64(0), row.ListImpressions)
	assert.Equal(t, int64(3), row.DetailViews)
	assert.Equal(t, float64(0), row.ClickRate7d)
	assert.Equal(t, float64(0), row.ConversionRate7d)
	assert.Equal(t, float64(0), row.ConversionRate14d)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]models.WindowCounts{}))
}

func TestAggregateIsIdempotent(t *testing.T) {
	counts := []models.WindowCounts{
		{EntityID: 1, List7d: 3, Details7d: 2, Conversions7d: 1, List14d: 6, Conversions14d: 2},
		{EntityID: 2, List7d: 1, List14d: 1},
	}

	first := Aggregate(counts)
	second := Aggregate(counts)
	assert.Equal(t, first, second)
}
