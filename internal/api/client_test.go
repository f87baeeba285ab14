package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusight/internal/dto"
	appErrors "github.com/noah-isme/edusight/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL})
}

func TestErrorDetailPropagated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Invalid credentials"}`) //nolint:errcheck
	})

	_, err := client.Login(context.Background(), "teacher@demo.com", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid credentials")

	apiErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.CodeBackend, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestErrorUnparseableBodyFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>boom</html>") //nolint:errcheck
	})

	_, err := client.Syllabus(context.Background(), 1)
	require.Error(t, err)
	assert.EqualError(t, err, "an error occurred")
}

func TestErrorEmptyDetailUsesStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{}`) //nolint:errcheck
	})

	_, err := client.ActiveCodes(context.Background(), 1)
	require.Error(t, err)
	assert.EqualError(t, err, "request failed with status 503")
}

func TestLoginSendsJSONAndRequestID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var payload dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "teacher@demo.com", payload.Email)

		json.NewEncoder(w).Encode(dto.User{ //nolint:errcheck
			ID: 1, Email: payload.Email, Name: "Dr. Sarah Johnson", Role: dto.RoleTeacher,
		})
	})

	user, err := client.Login(context.Background(), "teacher@demo.com", "teacher123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, dto.RoleTeacher, user.Role)
	assert.Empty(t, user.StudentID)
}

func TestLoginWithCodeNormalizesCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload dto.CodeLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "AB12CD", payload.AccessCode)
		assert.Equal(t, "STU001", payload.StudentID)

		json.NewEncoder(w).Encode(dto.User{ //nolint:errcheck
			ID: 2, Email: "student1@demo.com", Name: "Alex Thompson", Role: dto.RoleStudent, StudentID: "STU001",
		})
	})

	user, err := client.LoginWithCode(context.Background(), "ab12cd", "STU001")
	require.NoError(t, err)
	assert.Equal(t, "STU001", user.StudentID)
}

func TestValidationRejectsBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Login(context.Background(), "not-an-email", "secret")
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeValidation, appErrors.FromError(err).Code)
	assert.False(t, called, "invalid payloads must never reach the wire")

	_, err = client.LoginWithCode(context.Background(), "too-long-code", "STU001")
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeValidation, appErrors.FromError(err).Code)
	assert.False(t, called)
}

func TestUploadAnswerSheetMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/students/answer-sheets/upload", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("student_id"))
		assert.Equal(t, "XY9Z01", r.URL.Query().Get("access_code"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close() //nolint:errcheck
		assert.Equal(t, "answers.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 fake", string(content))

		json.NewEncoder(w).Encode(dto.UploadAck{ //nolint:errcheck
			ID: 9, Status: dto.SheetStatusProcessing, Message: "Answer sheet uploaded and is being processed",
		})
	})

	ack, err := client.UploadAnswerSheet(context.Background(), 5, "xy9z01", "/tmp/answers.pdf", bytes.NewReader([]byte("%PDF-1.4 fake")))
	require.NoError(t, err)
	assert.Equal(t, int64(9), ack.ID)
	assert.Equal(t, dto.SheetStatusProcessing, ack.Status)
}

func TestUploadSyllabusMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teachers/syllabus/upload", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("teacher_id"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "syllabus.pdf", header.Filename)

		json.NewEncoder(w).Encode(dto.Syllabus{ID: 3, Topics: []string{"Algebra Basics"}}) //nolint:errcheck
	})

	syllabus, err := client.UploadSyllabus(context.Background(), 7, "syllabus.pdf", bytes.NewReader([]byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra Basics"}, syllabus.Topics)
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := New(Config{BaseURL: server.URL})
	server.Close()

	_, err := client.TeacherOverview(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeTransport, appErrors.FromError(err).Code)
}

func TestDecodeFailureOnSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "definitely not json") //nolint:errcheck
	})

	_, err := client.StudentPerformance(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeDecode, appErrors.FromError(err).Code)
}

func TestAnalyticsPaths(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, "{}") //nolint:errcheck
	})

	_, err := client.TeacherOverview(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "/api/analytics/teacher/7/overview", gotPath)

	_, err = client.StudentPerformance(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "/api/analytics/student/5/performance", gotPath)

	_, err = client.TopicComparison(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "/api/analytics/teacher/7/topic-comparison", gotPath)
}
