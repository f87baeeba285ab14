package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edusight/internal/dto"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByEmail(strings.TrimSpace(req.Email))
	if user == nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword(user.passwordHash, []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.logger.Info("stub login", zap.String("email", user.email), zap.String("role", string(user.role)))
	c.JSON(http.StatusOK, userJSON(user))
}

func (s *Server) handleLoginWithCode(c *gin.Context) {
	var req dto.CodeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.lookupCode(req.AccessCode)
	if code == nil {
		fail(c, http.StatusUnauthorized, "Invalid or expired access code")
		return
	}
	if s.now().After(code.expiresAt) {
		code.active = false
		fail(c, http.StatusUnauthorized, "Access code has expired")
		return
	}

	student := s.findStudentByBusinessID(req.StudentID)
	if student == nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}

	c.JSON(http.StatusOK, userJSON(student))
}

func (s *Server) lookupCode(raw string) *accessCode {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, code := range s.codes {
		if code.code == raw && code.active {
			return code
		}
	}
	return nil
}
