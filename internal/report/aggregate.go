package report

import "github.com/radiusdt/vector-track/internal/models"

// Aggregate derives one MetricsRow per entity from raw window counts.
// Pure function: no storage access, no clock, identical input yields
// identical output. Row order follows the input; callers that need a
// stable order sort afterwards.
func Aggregate(counts []models.WindowCounts) []models.MetricsRow {
	rows := make([]models.MetricsRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, models.MetricsRow{
			EntityID:          c.EntityID,
			ListImpressions:   c.List7d,
			DetailViews:       c.Details7d,
			Conversions:       c.Conversions7d,
			ClickRate7d:       ratio(c.Details7d, c.List7d),
			ConversionRate7d:  ratio(c.Conversions7d, c.List7d),
			ConversionRate14d: ratio(c.Conversions14d, c.List14d),
		})
	}
	return rows
}

// ratio returns n/d as a percentage. A zero denominator yields 0 by business
// rule: an entity with no list impressions reports flat-zero rates, not NaN.
func ratio(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
