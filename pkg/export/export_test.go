package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusight/internal/dto"
)

func sampleSnapshot() *dto.PerformanceSnapshot {
	return &dto.PerformanceSnapshot{
		StudentName:    "Alex Thompson",
		OverallAverage: 74.3,
		TopicScores: map[string]float64{
			"Algebra Basics":   85.0,
			"Trigonometry":     61.5,
			"Linear Equations": 76.4,
		},
		ClassAverages: map[string]float64{
			"Algebra Basics":   79.2,
			"Trigonometry":     68.0,
			"Linear Equations": 74.0,
		},
		StrongTopics: []string{"Algebra Basics"},
		WeakTopics:   []string{"Trigonometry"},
	}
}

func TestPerformanceReportRows(t *testing.T) {
	report := PerformanceReport(sampleSnapshot())

	assert.Equal(t, "Performance Report - Alex Thompson", report.Title)
	assert.Equal(t, []string{"Topic", "Score", "Class Average", "Assessment"}, report.Headers)
	require.Len(t, report.Rows, 4, "three topics plus the overall line")

	// Topics come out alphabetically.
	assert.Equal(t, []string{"Algebra Basics", "85", "79.2", "strong"}, report.Rows[0])
	assert.Equal(t, []string{"Linear Equations", "76.4", "74", ""}, report.Rows[1])
	assert.Equal(t, []string{"Trigonometry", "61.5", "68", "needs work"}, report.Rows[2])
	assert.Equal(t, []string{"Overall", "74.3", "", ""}, report.Rows[3])
}

func TestComparisonReportRows(t *testing.T) {
	comparison := &dto.TopicComparison{
		Topics:   []string{"Algebra Basics"},
		Students: []string{"Alex Thompson", "Maria Garcia"},
		Data: []map[string]interface{}{
			{"topic": "Algebra Basics", "average": 72.5, "Alex Thompson": 85.0},
		},
	}

	report := ComparisonReport(comparison)
	assert.Equal(t, []string{"Topic", "Average", "Alex Thompson", "Maria Garcia"}, report.Headers)
	require.Len(t, report.Rows, 1)
	// Students without scores render as empty cells.
	assert.Equal(t, []string{"Algebra Basics", "72.5", "85", ""}, report.Rows[0])
}

func TestCSVRoundTrips(t *testing.T) {
	data, err := NewCSVExporter().Render(PerformanceReport(sampleSnapshot()))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Topic", "Score", "Class Average", "Assessment"}, records[0])
	assert.Equal(t, "Overall", records[4][0])
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Report{})
	assert.Error(t, err)
}

func TestPDFOutputIsWellFormed(t *testing.T) {
	data, err := NewPDFExporter().Render(PerformanceReport(sampleSnapshot()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must start with the PDF magic")
	assert.Contains(t, string(data), "%%EOF")
}

func TestPDFRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Report{Title: "Empty"})
	assert.Error(t, err)
}
