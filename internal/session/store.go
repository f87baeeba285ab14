package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/edusight/internal/dto"
)

// Authenticator is the slice of the API client the store needs to acquire a
// session. Test fixtures implement it directly.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*dto.User, error)
	LoginWithCode(ctx context.Context, accessCode, studentID string) (*dto.User, error)
}

// Store is the single source of truth for who is logged in. Exactly one User
// or none exists at a time; every mutation is mirrored to a signed file so
// the session survives restarts.
//
// Login failures never escape as errors. The reason is logged and the caller
// gets a plain false; user-facing messaging is the caller's responsibility.
// This is deliberate and differs from the upload/analytics operations, whose
// errors carry the backend detail through to the caller.
type Store struct {
	client Authenticator
	logger *zap.Logger
	path   string
	secret []byte

	mu      sync.RWMutex
	current *dto.User
}

// Options configures a Store.
type Options struct {
	Path   string
	Secret string
	Client Authenticator
	Logger *zap.Logger
}

// Open constructs the store and rehydrates any persisted session. Absence of
// the file means no session; a file that fails the signature or claim checks
// is discarded the same way. The restored User is trusted as-is, with no
// revalidation against the backend, until explicit logout.
func Open(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		client: opts.Client,
		logger: logger,
		path:   opts.Path,
		secret: []byte(opts.Secret),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read persisted session", zap.Error(err))
		}
		return s
	}

	user, err := decodeSession(string(raw), s.secret)
	if err != nil {
		logger.Warn("discarding unreadable persisted session", zap.Error(err))
		return s
	}

	s.current = normalize(user)
	return s
}

// Login verifies credentials through the API client. On success the returned
// identity replaces the current User and is persisted; on any failure the
// prior state is left untouched and false is returned.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	user, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("credential login failed", zap.String("email", email), zap.Error(err))
		return false
	}

	s.adopt(user)
	return true
}

// LoginWithCode authenticates with an access code and claimed student
// identifier; the server decides whether the pairing is valid and unexpired.
// Same success/failure contract as Login.
func (s *Store) LoginWithCode(ctx context.Context, accessCode, studentID string) bool {
	user, err := s.client.LoginWithCode(ctx, accessCode, studentID)
	if err != nil {
		s.logger.Warn("access code login failed", zap.String("student_id", studentID), zap.Error(err))
		return false
	}

	s.adopt(user)
	return true
}

// Logout unconditionally clears the current User and removes the persisted
// file. Calling it with no active session is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove persisted session", zap.Error(err))
	}
}

// Current returns a copy of the logged-in User, or nil.
func (s *Store) Current() *dto.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// IsAuthenticated reports whether a User is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Store) adopt(user *dto.User) {
	user = normalize(user)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = user
	s.persist()
}

// persist mirrors the current User to the session file. A write failure
// keeps the in-memory session; the next mutation retries.
func (s *Store) persist() {
	raw, err := encodeSession(s.current, s.secret)
	if err != nil {
		s.logger.Warn("failed to encode session", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Warn("failed to prepare session directory", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, []byte(raw), 0o600); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
}

// normalize enforces the role invariant: a teacher never carries a student
// identifier.
func normalize(user *dto.User) *dto.User {
	if user == nil {
		return nil
	}
	clean := *user
	if clean.Role == dto.RoleTeacher {
		clean.StudentID = ""
	}
	return &clean
}
