package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusight/internal/dto"
)

// defaultTopics stands in for AI topic extraction: the fixture derives the
// same list for any syllabus.
var defaultTopics = []string{
	"Algebra Basics",
	"Linear Equations",
	"Quadratic Functions",
	"Trigonometry",
	"Calculus Intro",
}

func (s *Server) handleGenerateCode(c *gin.Context) {
	var req dto.GenerateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(req.TeacherID, dto.RoleTeacher) == nil {
		fail(c, http.StatusForbidden, "Teacher access required")
		return
	}

	now := s.now()
	code := &accessCode{
		code:      s.generateCodeString(),
		teacherID: req.TeacherID,
		createdAt: now,
		expiresAt: now.Add(s.codeTTL),
		active:    true,
	}
	s.codes = append(s.codes, code)

	c.JSON(http.StatusOK, dto.AccessCode{
		Code:      code.code,
		ExpiresAt: stamp(code.expiresAt),
		CreatedAt: stamp(code.createdAt),
	})
}

func (s *Server) handleActiveCodes(c *gin.Context) {
	teacherID, ok := queryID(c, "teacher_id")
	if !ok {
		fail(c, http.StatusBadRequest, "teacher_id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(teacherID, dto.RoleTeacher) == nil {
		fail(c, http.StatusForbidden, "Teacher access required")
		return
	}

	now := s.now()
	active := make([]dto.AccessCode, 0)
	for _, code := range s.codes {
		if code.teacherID != teacherID || !code.active || !code.expiresAt.After(now) {
			continue
		}
		active = append(active, dto.AccessCode{
			Code:      code.code,
			ExpiresAt: stamp(code.expiresAt),
			CreatedAt: stamp(code.createdAt),
		})
	}

	c.JSON(http.StatusOK, active)
}

func (s *Server) handleUploadSyllabus(c *gin.Context) {
	teacherID, ok := queryID(c, "teacher_id")
	if !ok {
		fail(c, http.StatusBadRequest, "teacher_id is required")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "File is required")
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		fail(c, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(teacherID, dto.RoleTeacher) == nil {
		fail(c, http.StatusForbidden, "Teacher access required")
		return
	}

	rec := &syllabusRecord{
		id:        s.allocateID(),
		teacherID: teacherID,
		topics:    append([]string(nil), defaultTopics...),
		createdAt: s.now(),
	}
	s.syllabi = append(s.syllabi, rec)

	c.JSON(http.StatusOK, dto.Syllabus{
		ID:      rec.id,
		Topics:  rec.topics,
		Message: "Syllabus uploaded and processed successfully",
	})
}

func (s *Server) handleGetSyllabus(c *gin.Context) {
	teacherID, ok := queryID(c, "teacher_id")
	if !ok {
		fail(c, http.StatusBadRequest, "teacher_id is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findAccount(teacherID, dto.RoleTeacher) == nil {
		fail(c, http.StatusForbidden, "Teacher access required")
		return
	}

	rec := s.latestSyllabus(teacherID)
	if rec == nil {
		c.JSON(http.StatusOK, dto.Syllabus{Message: "No syllabus uploaded yet"})
		return
	}

	c.JSON(http.StatusOK, dto.Syllabus{
		ID:        rec.id,
		Topics:    rec.topics,
		CreatedAt: stamp(rec.createdAt),
	})
}
