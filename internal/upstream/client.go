package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-calendar-feed/internal/config"
	"job-calendar-feed/internal/models"
)

// Error is a failed upstream call: non-2xx status or an undecodable body.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// JobFilter is the request body for the job-listing endpoint.
type JobFilter struct {
	Limit             int        `json:"limit"`
	Statuses          []string   `json:"statuses,omitempty"`
	CreatedOnOrAfter  *time.Time `json:"createdOnOrAfterUtc,omitempty"`
	CreatedOnOrBefore *time.Time `json:"createdOnOrBeforeUtc,omitempty"`
}

// Client issues authenticated JSON calls against the scheduling API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.SugaredLogger
}

// New builds a client from config. The HTTP timeout bounds every call;
// there is no retry.
func New(cfg config.Config, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.UpstreamBaseURL,
		apiKey:  cfg.UpstreamAPIKey,
		http:    &http.Client{Timeout: cfg.UpstreamTimeout},
		log:     log,
	}
}

// ListJobs fetches jobs matching the filter.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.post(ctx, "/api/jobs/list", filter, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListOperations fetches the operations of a single job, items included.
func (c *Client) ListOperations(ctx context.Context, jobID string, limit int) ([]models.Operation, error) {
	body := map[string]any{"jobId": jobID, "limit": limit}
	var ops []models.Operation
	if err := c.post(ctx, "/api/job-operations/list", body, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// post issues an authenticated POST and decodes the enveloped list
// response into out (a pointer to a slice).
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnw("upstream call failed", "path", path, "status", resp.StatusCode)
		return &Error{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return decodeList(raw, out)
}

// envelopeKeys are the wrapper keys the API has been observed to use,
// probed in order.
var envelopeKeys = []string{"items", "results", "data"}

// decodeList accepts either a bare JSON array or an object exposing the
// array under a conventional key. An unrecognized envelope decodes to an
// empty list, deliberately not an error.
func decodeList(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	for _, key := range envelopeKeys {
		if inner, ok := envelope[key]; ok {
			return json.Unmarshal(inner, out)
		}
	}
	return nil
}
