package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/trackerr"
)

// Header is the fixed column sequence of the export file.
var Header = []string{
	"ID",
	"#List Impressions",
	"#Details Views",
	"#Conversions",
	"Click Rate 7 Days",
	"Conversion Rate 7 Days",
	"Conversion Rate 14 Days",
}

// RenderCSV serializes rows into the export format, sorted by entity id.
// An empty row set is a FormatError: a report with no data signals an
// upstream problem and must halt the run instead of writing an empty file.
func RenderCSV(rows []models.MetricsRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, trackerr.Format("no data to export")
	}

	sorted := make([]models.MetricsRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EntityID < sorted[j].EntityID })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, trackerr.Format("failed to write header: %v", err)
	}
	for _, row := range sorted {
		record := []string{
			strconv.FormatInt(row.EntityID, 10),
			strconv.FormatInt(row.ListImpressions, 10),
			strconv.FormatInt(row.DetailViews, 10),
			strconv.FormatInt(row.Conversions, 10),
			formatRate(row.ClickRate7d),
			formatRate(row.ConversionRate7d),
			formatRate(row.ConversionRate14d),
		}
		if err := w.Write(record); err != nil {
			return nil, trackerr.Format("failed to write row: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, trackerr.Format("failed to flush csv: %v", err)
	}
	return buf.Bytes(), nil
}

// formatRate prints a percentage with the fewest digits that round-trip;
// exact divisions come out as plain integers (50, 100).
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportFilename returns the conventional file name for a reference date.
func ExportFilename(refDate time.Time) string {
	return fmt.Sprintf("export_track_%s.csv", refDate.Format("2006-01-02"))
}

// WriteExport writes fully rendered CSV bytes under dir, creating the
// directory when absent. Nothing touches the filesystem until the report
// has rendered successfully, so a failed run leaves no partial file.
func WriteExport(dir string, refDate time.Time, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", trackerr.Storage(err, "failed to create export directory %s", dir)
	}

	path := filepath.Join(dir, ExportFilename(refDate))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", trackerr.Storage(err, "failed to write export file %s", path)
	}
	return path, nil
}
