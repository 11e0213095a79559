package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/pkg/config"
	appErrors "github.com/Zxun2/teammates/pkg/errors"
)

// Client talks to the platform API that owns students, courses, and
// feedback sessions. The gateway never writes those resources directly;
// every mutation goes through this client.
type Client struct {
	baseURL    string
	backendKey string
	http       *http.Client
	logger     *zap.Logger
	observe    func(operation string, duration time.Duration)
}

// NewClient constructs a Client from upstream configuration.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		backendKey: cfg.BackendKey,
		http:       &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// SetObserver installs a callback receiving the duration of every
// upstream call, labelled by operation.
func (c *Client) SetObserver(observe func(operation string, duration time.Duration)) {
	c.observe = observe
}

// EnrollStudentsResult is the platform's answer to one enroll chunk.
type EnrollStudentsResult struct {
	Students            []models.Student
	UnsuccessfulEnrolls []models.UnsuccessfulEnroll
}

type enrollStudentsRequest struct {
	StudentEnrollRequests []models.EnrollRequest `json:"studentEnrollRequests"`
}

type enrollStudentsResponse struct {
	StudentsData struct {
		Students []models.Student `json:"students"`
	} `json:"studentsData"`
	UnsuccessfulEnrolls []models.UnsuccessfulEnroll `json:"unsuccessfulEnrolls"`
}

type studentsResponse struct {
	Students []models.Student `json:"students"`
}

type sessionsResponse struct {
	FeedbackSessions []models.FeedbackSession `json:"feedbackSessions"`
}

type hasResponsesResponse struct {
	HasResponsesBySession map[string]bool `json:"hasResponsesBySession"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// EnrollStudents submits one bounded chunk of enroll requests for a course.
// A 2xx answer may still carry per-student rejections.
func (c *Client) EnrollStudents(ctx context.Context, courseID string, requests []models.EnrollRequest) (*EnrollStudentsResult, error) {
	payload := enrollStudentsRequest{StudentEnrollRequests: requests}

	var resp enrollStudentsResponse
	if err := c.do(ctx, http.MethodPut, "/students", courseQuery(courseID), payload, &resp, "enroll_students"); err != nil {
		return nil, err
	}

	return &EnrollStudentsResult{
		Students:            resp.StudentsData.Students,
		UnsuccessfulEnrolls: resp.UnsuccessfulEnrolls,
	}, nil
}

// GetStudents fetches the full current roster of a course.
func (c *Client) GetStudents(ctx context.Context, courseID string) ([]models.Student, error) {
	var resp studentsResponse
	if err := c.do(ctx, http.MethodGet, "/students", courseQuery(courseID), nil, &resp, "get_students"); err != nil {
		return nil, err
	}
	return resp.Students, nil
}

// GetSessions fetches the active feedback sessions of a course.
func (c *Client) GetSessions(ctx context.Context, courseID string) ([]models.FeedbackSession, error) {
	query := courseQuery(courseID)
	query.Set("isinrecyclebin", "false")

	var resp sessionsResponse
	if err := c.do(ctx, http.MethodGet, "/sessions", query, nil, &resp, "get_sessions"); err != nil {
		return nil, err
	}
	return resp.FeedbackSessions, nil
}

// HasResponsesForCourse reports, per session name, whether feedback
// responses already exist in the course.
func (c *Client) HasResponsesForCourse(ctx context.Context, courseID string) (map[string]bool, error) {
	query := courseQuery(courseID)
	query.Set("entitytype", "course")

	var resp hasResponsesResponse
	if err := c.do(ctx, http.MethodGet, "/responses/check", query, nil, &resp, "has_responses"); err != nil {
		return nil, err
	}
	return resp.HasResponsesBySession, nil
}

func courseQuery(courseID string) url.Values {
	q := url.Values{}
	q.Set("courseid", courseID)
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}, operation string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream payload")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.backendKey != "" {
		req.Header.Set("Backend-Key", c.backendKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observe != nil {
		c.observe(operation, time.Since(start))
	}
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := upstreamErrorMessage(raw, resp.StatusCode)
		c.logger.Warn("upstream call failed",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return appErrors.New(appErrors.ErrUpstream.Code, resp.StatusCode, message)
	}

	if dest != nil {
		if err := json.Unmarshal(raw, dest); err != nil {
			return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
		}
	}

	return nil
}

// upstreamErrorMessage extracts the structured error payload message,
// falling back to a generic status line.
func upstreamErrorMessage(raw []byte, status int) string {
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("upstream returned status %d", status)
}
