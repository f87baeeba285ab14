package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/edusight/internal/dto"
)

// GenerateAccessCode asks the backend to issue a fresh access code for the
// teacher's roster. Each call issues a new code server-side; there is no
// idempotency key, so retrying a failed call may leave a duplicate code.
func (c *Client) GenerateAccessCode(ctx context.Context, teacherID int64) (*dto.AccessCode, error) {
	payload := dto.GenerateCodeRequest{TeacherID: teacherID}

	var code dto.AccessCode
	if err := c.doJSON(ctx, "codes_generate", http.MethodPost, "/api/teachers/access-codes/generate", nil, payload, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// ActiveCodes lists the teacher's unexpired access codes.
func (c *Client) ActiveCodes(ctx context.Context, teacherID int64) ([]dto.AccessCode, error) {
	var codes []dto.AccessCode
	if err := c.doJSON(ctx, "codes_list", http.MethodGet, "/api/teachers/access-codes", teacherQuery(teacherID), nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// UploadSyllabus sends a syllabus PDF for topic extraction. Content checks
// belong to the caller; by the time this runs a network round trip is
// committed.
func (c *Client) UploadSyllabus(ctx context.Context, teacherID int64, filename string, file io.Reader) (*dto.Syllabus, error) {
	var syllabus dto.Syllabus
	if err := c.doMultipart(ctx, "syllabus_upload", "/api/teachers/syllabus/upload", teacherQuery(teacherID), filename, file, &syllabus); err != nil {
		return nil, err
	}
	return &syllabus, nil
}

// Syllabus fetches the teacher's current syllabus and extracted topics.
func (c *Client) Syllabus(ctx context.Context, teacherID int64) (*dto.Syllabus, error) {
	var syllabus dto.Syllabus
	if err := c.doJSON(ctx, "syllabus_get", http.MethodGet, "/api/teachers/syllabus", teacherQuery(teacherID), nil, &syllabus); err != nil {
		return nil, err
	}
	return &syllabus, nil
}

func teacherQuery(teacherID int64) url.Values {
	return url.Values{"teacher_id": []string{strconv.FormatInt(teacherID, 10)}}
}
