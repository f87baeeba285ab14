// Package stub is an in-memory stand-in for the analytics backend. It
// reproduces the HTTP contract the client depends on, including the
// {"detail": ...} error bodies, so it can back integration tests and local
// development without the real service.
package stub

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edusight/internal/dto"
	"github.com/noah-isme/edusight/pkg/logger"
	"github.com/noah-isme/edusight/pkg/middleware/cors"
	"github.com/noah-isme/edusight/pkg/middleware/requestid"
)

// Demo accounts seeded at construction.
const (
	DemoTeacherEmail    = "teacher@demo.com"
	DemoTeacherPassword = "teacher123"
	DemoStudentPassword = "student123"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Options configures the stub server.
type Options struct {
	Logger         *zap.Logger
	Now            func() time.Time
	CodeTTL        time.Duration
	AllowedOrigins []string
}

// Server holds all state in memory. Everything resets on restart, which is
// the point: it is a fixture, not a persistence layer.
type Server struct {
	logger  *zap.Logger
	now     func() time.Time
	codeTTL time.Duration
	origins []string

	mu       sync.Mutex
	nextID   int64
	users    []*account
	codes    []*accessCode
	syllabi  []*syllabusRecord
	sheets   []*sheetRecord
	analyses []*analysisRecord
}

type account struct {
	id           int64
	email        string
	name         string
	role         dto.Role
	studentID    string
	passwordHash []byte
}

type accessCode struct {
	code      string
	teacherID int64
	createdAt time.Time
	expiresAt time.Time
	active    bool
}

type syllabusRecord struct {
	id        int64
	teacherID int64
	topics    []string
	createdAt time.Time
}

type sheetRecord struct {
	id          int64
	studentID   int64
	fileName    string
	status      string
	createdAt   time.Time
	processedAt *time.Time
}

type analysisRecord struct {
	sheetID   int64
	studentID int64
	topic     string
	score     float64
}

// New builds a stub server seeded with the demo roster.
func New(opts Options) *Server {
	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	ttl := opts.CodeTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	s := &Server{
		logger:  l,
		now:     now,
		codeTTL: ttl,
		origins: opts.AllowedOrigins,
	}
	s.seed()
	return s
}

func (s *Server) seed() {
	s.addAccount(DemoTeacherEmail, "Dr. Sarah Johnson", dto.RoleTeacher, "", DemoTeacherPassword)
	s.addAccount("student1@demo.com", "Alex Thompson", dto.RoleStudent, "STU001", DemoStudentPassword)
	s.addAccount("student2@demo.com", "Maria Garcia", dto.RoleStudent, "STU002", DemoStudentPassword)
	s.addAccount("student3@demo.com", "James Wilson", dto.RoleStudent, "STU003", DemoStudentPassword)
}

func (s *Server) addAccount(email, name string, role dto.Role, studentID, password string) {
	// MinCost keeps fixture startup cheap; these are demo credentials.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("stub: hash demo password: %v", err))
	}
	s.users = append(s.users, &account{
		id:           s.allocateID(),
		email:        email,
		name:         name,
		role:         role,
		studentID:    studentID,
		passwordHash: hash,
	})
}

// Router assembles the Gin engine with the full backend surface.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(s.logger))
	r.Use(cors.New(s.origins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/login-code", s.handleLoginWithCode)
	}

	teachers := r.Group("/api/teachers")
	{
		teachers.POST("/access-codes/generate", s.handleGenerateCode)
		teachers.GET("/access-codes", s.handleActiveCodes)
		teachers.POST("/syllabus/upload", s.handleUploadSyllabus)
		teachers.GET("/syllabus", s.handleGetSyllabus)
	}

	students := r.Group("/api/students")
	{
		students.POST("/answer-sheets/upload", s.handleUploadAnswerSheet)
		students.GET("/answer-sheets", s.handleAnswerSheets)
	}

	analytics := r.Group("/api/analytics")
	{
		analytics.GET("/teacher/:id/overview", s.handleTeacherOverview)
		analytics.GET("/student/:id/performance", s.handleStudentPerformance)
		analytics.GET("/teacher/:id/topic-comparison", s.handleTopicComparison)
	}

	return r
}

// fail mirrors the FastAPI error body the client normalizes against.
func fail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func (s *Server) allocateID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) findByEmail(email string) *account {
	for _, u := range s.users {
		if u.email == email {
			return u
		}
	}
	return nil
}

func (s *Server) findStudentByBusinessID(studentID string) *account {
	studentID = strings.ToUpper(strings.TrimSpace(studentID))
	for _, u := range s.users {
		if u.role == dto.RoleStudent && u.studentID == studentID {
			return u
		}
	}
	return nil
}

func (s *Server) findAccount(id int64, role dto.Role) *account {
	for _, u := range s.users {
		if u.id == id && u.role == role {
			return u
		}
	}
	return nil
}

func (s *Server) latestSyllabus(teacherID int64) *syllabusRecord {
	var latest *syllabusRecord
	for _, rec := range s.syllabi {
		if teacherID != 0 && rec.teacherID != teacherID {
			continue
		}
		if latest == nil || rec.createdAt.After(latest.createdAt) {
			latest = rec
		}
	}
	return latest
}

func (s *Server) generateCodeString() string {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(codeCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Sprintf("stub: generate access code: %v", err))
		}
		buf[i] = codeCharset[n.Int64()]
	}
	return string(buf)
}

func userJSON(u *account) *dto.User {
	return &dto.User{
		ID:        u.id,
		Email:     u.email,
		Name:      u.name,
		Role:      u.role,
		StudentID: u.studentID,
	}
}

func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
