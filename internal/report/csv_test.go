package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/radiusdt/vector-track/internal/models"
	"github.com/radiusdt/vector-track/internal/trackerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRows = []models.MetricsRow{
	{EntityID: 2, ListImpressions: 1, DetailViews: 1, Conversions: 1, ClickRate7d: 100, ConversionRate7d: 50, ConversionRate14d: 50},
	{EntityID: 1, ListImpressions: 1, DetailViews: 1, Conversions: 1, ClickRate7d: 100, ConversionRate7d: 50, ConversionRate14d: 50},
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleRows)
	require.NoError(t, err)

	want := "ID,#List Impressions,#Details Views,#Conversions,Click Rate 7 Days,Conversion Rate 7 Days,Conversion Rate 14 Days\n" +
		"1,1,1,1,100,50,50\n" +
		"2,1,1,1,100,50,50\n"
	assert.Equal(t, want, string(data))
}

func TestRenderCSVRoundTrip(t *testing.T) {
	rows := []models.MetricsRow{
		{EntityID: 3, ListImpressions: 2, DetailViews: 1, Conversions: 1, ClickRate7d: 50, ConversionRate7d: 50, ConversionRate14d: 25},
	}
	data, err := RenderCSV(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"3", "2", "1", "1", "50", "50", "25"}, records[1])
}

func TestRenderCSVEmptyInput(t *testing.T) {
	_, err := RenderCSV(nil)
	require.Error(t, err)
	assert.True(t, trackerr.IsFormat(err))
}

func TestExportFilename(t *testing.T) {
	refDate := time.Date(2017, 3, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "export_track_2017-03-29.csv", ExportFilename(refDate))
}

func TestWriteExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	refDate := time.Date(1989, 4, 16, 0, 0, 0, 0, time.UTC)

	data, err := RenderCSV(sampleRows)
	require.NoError(t, err)

	path, err := WriteExport(dir, refDate, data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export_track_1989-04-16.csv"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Writing again must not fail on the existing directory.
	_, err = WriteExport(dir, refDate, data)
	assert.NoError(t, err)
}
