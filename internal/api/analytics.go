package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/noah-isme/edusight/internal/dto"
)

// TeacherOverview fetches the teacher dashboard aggregate. The backend
// recomputes it on every call; the client never caches it.
func (c *Client) TeacherOverview(ctx context.Context, teacherID int64) (*dto.TeacherOverview, error) {
	var overview dto.TeacherOverview
	path := fmt.Sprintf("/api/analytics/teacher/%d/overview", teacherID)
	if err := c.doJSON(ctx, "analytics_overview", http.MethodGet, path, nil, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// StudentPerformance fetches the per-student performance snapshot.
func (c *Client) StudentPerformance(ctx context.Context, studentID int64) (*dto.PerformanceSnapshot, error) {
	var snapshot dto.PerformanceSnapshot
	path := fmt.Sprintf("/api/analytics/student/%d/performance", studentID)
	if err := c.doJSON(ctx, "analytics_performance", http.MethodGet, path, nil, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// TopicComparison fetches chart-shaped topic comparison data for the
// teacher's class.
func (c *Client) TopicComparison(ctx context.Context, teacherID int64) (*dto.TopicComparison, error) {
	var comparison dto.TopicComparison
	path := fmt.Sprintf("/api/analytics/teacher/%d/topic-comparison", teacherID)
	if err := c.doJSON(ctx, "analytics_comparison", http.MethodGet, path, nil, nil, &comparison); err != nil {
		return nil, err
	}
	return &comparison, nil
}
