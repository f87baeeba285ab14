package dto

// TopicStat aggregates understanding for one topic across the class.
type TopicStat struct {
	Average       float64            `json:"average"`
	StudentScores map[string]float64 `json:"student_scores"`
}

// RecentUpload is one row of the teacher dashboard's recent activity list.
type RecentUpload struct {
	ID          int64  `json:"id"`
	StudentName string `json:"student_name"`
	FileName    string `json:"file_name"`
	Status      string `json:"status"`
	UploadDate  string `json:"upload_date"`
}

// TeacherOverview is the teacher-wide aggregate recomputed by the backend on
// every fetch.
type TeacherOverview struct {
	TotalStudents        int                  `json:"total_students"`
	TopicsAnalyzed       int                  `json:"topics_analyzed"`
	AverageUnderstanding float64              `json:"average_understanding"`
	PendingAnalysis      int                  `json:"pending_analysis"`
	TopicStatistics      map[string]TopicStat `json:"topic_statistics"`
	RecentUploads        []RecentUpload       `json:"recent_uploads"`
}

// PerformanceSnapshot is a single student's derived performance view. It is
// ephemeral: fetched per view and never cached by the client.
type PerformanceSnapshot struct {
	StudentName    string             `json:"student_name"`
	OverallAverage float64            `json:"overall_average"`
	TopicScores    map[string]float64 `json:"topic_scores"`
	ClassAverages  map[string]float64 `json:"class_averages"`
	StrongTopics   []string           `json:"strong_topics"`
	WeakTopics     []string           `json:"weak_topics"`
}

// TopicComparison is chart-shaped data: one row per topic, keyed by "topic",
// "average" and each student's display name.
type TopicComparison struct {
	Topics   []string                 `json:"topics"`
	Data     []map[string]interface{} `json:"data"`
	Students []string                 `json:"students"`
}
