package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/edusight/internal/dto"
)

// UploadAnswerSheet submits an answer sheet PDF correlated with the access
// code currently valid for the issuing teacher. The backend validates the
// pairing; the client only normalizes the code's case.
func (c *Client) UploadAnswerSheet(ctx context.Context, studentID int64, accessCode, filename string, file io.Reader) (*dto.UploadAck, error) {
	query := url.Values{
		"student_id":  []string{strconv.FormatInt(studentID, 10)},
		"access_code": []string{NormalizeCode(accessCode)},
	}

	var ack dto.UploadAck
	if err := c.doMultipart(ctx, "sheets_upload", "/api/students/answer-sheets/upload", query, filename, file, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// AnswerSheets lists the student's uploads, newest first.
func (c *Client) AnswerSheets(ctx context.Context, studentID int64) ([]dto.AnswerSheet, error) {
	query := url.Values{"student_id": []string{strconv.FormatInt(studentID, 10)}}

	var sheets []dto.AnswerSheet
	if err := c.doJSON(ctx, "sheets_list", http.MethodGet, "/api/students/answer-sheets", query, nil, &sheets); err != nil {
		return nil, err
	}
	return sheets, nil
}
