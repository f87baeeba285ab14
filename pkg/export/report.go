package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/edusight/internal/dto"
)

// PerformanceReport flattens a performance snapshot into a table: one row
// per topic with the student's average next to the class average.
func PerformanceReport(snapshot *dto.PerformanceSnapshot) Report {
	report := Report{
		Title:   fmt.Sprintf("Performance Report - %s", snapshot.StudentName),
		Headers: []string{"Topic", "Score", "Class Average", "Assessment"},
	}

	topics := make([]string, 0, len(snapshot.TopicScores))
	for topic := range snapshot.TopicScores {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	strong := toSet(snapshot.StrongTopics)
	weak := toSet(snapshot.WeakTopics)

	for _, topic := range topics {
		assessment := ""
		if _, ok := strong[topic]; ok {
			assessment = "strong"
		}
		if _, ok := weak[topic]; ok {
			assessment = "needs work"
		}
		report.Rows = append(report.Rows, []string{
			topic,
			formatScore(snapshot.TopicScores[topic]),
			formatScore(snapshot.ClassAverages[topic]),
			assessment,
		})
	}

	report.Rows = append(report.Rows, []string{
		"Overall", formatScore(snapshot.OverallAverage), "", "",
	})

	return report
}

// ComparisonReport flattens topic comparison chart data: one row per topic
// with the class average and each student's score.
func ComparisonReport(comparison *dto.TopicComparison) Report {
	headers := append([]string{"Topic", "Average"}, comparison.Students...)
	report := Report{
		Title:   "Topic Comparison",
		Headers: headers,
	}

	for _, row := range comparison.Data {
		record := make([]string, 0, len(headers))
		record = append(record, stringValue(row["topic"]), numberValue(row["average"]))
		for _, student := range comparison.Students {
			record = append(record, numberValue(row[student]))
		}
		report.Rows = append(report.Rows, record)
	}

	return report
}

func formatScore(score float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", score), ".0")
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func numberValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatScore(f)
	}
	return ""
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
