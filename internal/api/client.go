package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/edusight/pkg/errors"
	"github.com/noah-isme/edusight/pkg/metrics"
)

const defaultTimeout = 30 * time.Second

// Client is a stateless wrapper translating each domain operation into
// exactly one HTTP call against the backend. It owns error normalization and
// nothing else: no retries, no batching, no caching, no idempotency keys.
// Repeating a failed mutating call may duplicate the server-side effect;
// that is a property of the backend contract, not something the client
// papers over.
//
// The only shared state is the fixed base URL, so concurrent in-flight calls
// are independent and safe to issue in parallel.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	validate   *validator.Validate
	metrics    *metrics.Recorder
}

// Config carries client construction options. Zero values get sensible
// defaults; only BaseURL is required.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	Metrics    *metrics.Recorder
}

// New constructs a Client instance.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    trimBaseURL(cfg.BaseURL),
		httpClient: httpClient,
		logger:     logger,
		validate:   validator.New(),
		metrics:    cfg.Metrics,
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON issues one JSON round trip and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return appErrors.Wrap(err, appErrors.CodeValidation, 0, "failed to encode request payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeTransport, 0, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(op, req, out)
}

// doMultipart issues one multipart round trip carrying a single file part
// named "file". The content type is left to the multipart writer so the
// boundary is computed correctly; scalar correlates travel as query
// parameters per the backend contract.
func (c *Client) doMultipart(ctx context.Context, op, path string, query url.Values, filename string, file io.Reader, out interface{}) error {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeValidation, 0, "failed to build multipart body")
	}
	if _, err := io.Copy(part, file); err != nil {
		return appErrors.Wrap(err, appErrors.CodeValidation, 0, "failed to read upload file")
	}
	if err := writer.Close(); err != nil {
		return appErrors.Wrap(err, appErrors.CodeValidation, 0, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, query), body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeTransport, 0, "failed to build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(op, req, out)
}

// send executes the request and applies the normalized error contract:
// transport failures, backend-reported failures and undecodable success
// bodies all come back as a single *errors.Error.
func (c *Client) send(op string, req *http.Request, out interface{}) error {
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(op, 0, time.Since(start))
		c.logger.Warn("backend unreachable",
			zap.String("operation", op),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.CodeTransport, 0, "backend unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	c.metrics.ObserveRequest(op, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeTransport, resp.StatusCode, "failed to read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := appErrors.FromResponse(resp.StatusCode, body)
		c.logger.Debug("backend rejected request",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return appErrors.Wrap(err, appErrors.CodeDecode, resp.StatusCode, "unexpected response shape")
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	if len(query) == 0 {
		return c.baseURL + path
	}
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
}

func trimBaseURL(raw string) string {
	for len(raw) > 0 && raw[len(raw)-1] == '/' {
		raw = raw[:len(raw)-1]
	}
	return raw
}
