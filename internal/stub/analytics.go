package stub

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusight/internal/dto"
)

// Understanding thresholds for the derived strong/weak topic lists.
const (
	strongThreshold = 80.0
	weakThreshold   = 65.0
)

func (s *Server) handleTeacherOverview(c *gin.Context) {
	teacherID, ok := paramID(c)
	if !ok {
		fail(c, http.StatusNotFound, "Teacher not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(teacherID, dto.RoleTeacher) == nil {
		fail(c, http.StatusNotFound, "Teacher not found")
		return
	}

	students := s.studentAccounts()

	var topics []string
	if syllabus := s.latestSyllabus(teacherID); syllabus != nil {
		topics = syllabus.topics
	}

	stats := make(map[string]dto.TopicStat, len(topics))
	for _, topic := range topics {
		var scores []float64
		perStudent := make(map[string]float64)
		for _, student := range students {
			studentScores := s.scoresFor(student.id, topic)
			if len(studentScores) == 0 {
				continue
			}
			avg := mean(studentScores)
			perStudent[student.name] = round1(avg)
			scores = append(scores, studentScores...)
		}
		if len(scores) == 0 {
			continue
		}
		stats[topic] = dto.TopicStat{
			Average:       round1(mean(scores)),
			StudentScores: perStudent,
		}
	}

	recent := s.recentSheets(10)
	pending := 0
	uploads := make([]dto.RecentUpload, 0, len(recent))
	for _, sheet := range recent {
		if sheet.status == dto.SheetStatusProcessing {
			pending++
		}
		name := ""
		if student := s.findAccount(sheet.studentID, dto.RoleStudent); student != nil {
			name = student.name
		}
		uploads = append(uploads, dto.RecentUpload{
			ID:          sheet.id,
			StudentName: name,
			FileName:    sheet.fileName,
			Status:      sheet.status,
			UploadDate:  stamp(sheet.createdAt),
		})
	}

	var all []float64
	for _, analysis := range s.analyses {
		all = append(all, analysis.score)
	}
	overall := 0.0
	if len(all) > 0 {
		overall = round1(mean(all))
	}

	c.JSON(http.StatusOK, dto.TeacherOverview{
		TotalStudents:        len(students),
		TopicsAnalyzed:       len(topics),
		AverageUnderstanding: overall,
		PendingAnalysis:      pending,
		TopicStatistics:      stats,
		RecentUploads:        uploads,
	})
}

func (s *Server) handleStudentPerformance(c *gin.Context) {
	studentID, ok := paramID(c)
	if !ok {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	student := s.findAccount(studentID, dto.RoleStudent)
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}

	topicScores := s.topicAverages(studentID)
	classAverages := s.topicAverages(0)

	overall := 0.0
	if len(topicScores) > 0 {
		var sum float64
		for _, score := range topicScores {
			sum += score
		}
		overall = round1(sum / float64(len(topicScores)))
	}

	strong := make([]string, 0)
	weak := make([]string, 0)
	for _, topic := range sortedKeys(topicScores) {
		score := topicScores[topic]
		if score >= strongThreshold {
			strong = append(strong, topic)
		}
		if score < weakThreshold {
			weak = append(weak, topic)
		}
	}

	c.JSON(http.StatusOK, dto.PerformanceSnapshot{
		StudentName:    student.name,
		OverallAverage: overall,
		TopicScores:    topicScores,
		ClassAverages:  classAverages,
		StrongTopics:   strong,
		WeakTopics:     weak,
	})
}

func (s *Server) handleTopicComparison(c *gin.Context) {
	teacherID, ok := paramID(c)
	if !ok {
		fail(c, http.StatusNotFound, "Teacher not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(teacherID, dto.RoleTeacher) == nil {
		fail(c, http.StatusNotFound, "Teacher not found")
		return
	}

	students := s.studentAccounts()
	names := make([]string, 0, len(students))
	for _, student := range students {
		names = append(names, student.name)
	}

	var topics []string
	if syllabus := s.latestSyllabus(teacherID); syllabus != nil {
		topics = syllabus.topics
	}

	data := make([]map[string]interface{}, 0, len(topics))
	for _, topic := range topics {
		row := map[string]interface{}{"topic": topic}
		var scores []float64
		for _, student := range students {
			studentScores := s.scoresFor(student.id, topic)
			if len(studentScores) == 0 {
				continue
			}
			row[student.name] = round1(mean(studentScores))
			scores = append(scores, studentScores...)
		}
		if len(scores) > 0 {
			row["average"] = round1(mean(scores))
		} else {
			row["average"] = 0.0
		}
		data = append(data, row)
	}

	c.JSON(http.StatusOK, dto.TopicComparison{
		Topics:   topics,
		Data:     data,
		Students: names,
	})
}

func (s *Server) studentAccounts() []*account {
	students := make([]*account, 0)
	for _, u := range s.users {
		if u.role == dto.RoleStudent {
			students = append(students, u)
		}
	}
	return students
}

func (s *Server) recentSheets(limit int) []*sheetRecord {
	sheets := append([]*sheetRecord(nil), s.sheets...)
	sort.Slice(sheets, func(i, j int) bool {
		return sheets[i].createdAt.After(sheets[j].createdAt)
	})
	if len(sheets) > limit {
		sheets = sheets[:limit]
	}
	return sheets
}

func (s *Server) scoresFor(studentID int64, topic string) []float64 {
	var scores []float64
	for _, analysis := range s.analyses {
		if analysis.topic != topic {
			continue
		}
		if studentID != 0 && analysis.studentID != studentID {
			continue
		}
		scores = append(scores, analysis.score)
	}
	return scores
}

// topicAverages groups analyses by topic and averages them. Zero studentID
// means the whole class.
func (s *Server) topicAverages(studentID int64) map[string]float64 {
	grouped := make(map[string][]float64)
	for _, analysis := range s.analyses {
		if studentID != 0 && analysis.studentID != studentID {
			continue
		}
		grouped[analysis.topic] = append(grouped[analysis.topic], analysis.score)
	}

	averages := make(map[string]float64, len(grouped))
	for topic, scores := range grouped {
		averages[topic] = round1(mean(scores))
	}
	return averages
}

func mean(scores []float64) float64 {
	var sum float64
	for _, score := range scores {
		sum += score
	}
	return sum / float64(len(scores))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
