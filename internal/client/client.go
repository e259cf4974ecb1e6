package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"landctl/internal/config"
	"landctl/internal/types"
)

const defaultTimeout = 30 * time.Second

// Client talks to the landing service. Every call is single-shot: no
// retries, no polling, one request per operation. Callers own the
// decision to re-request.
type Client struct {
	baseURL   string
	tokenPath string
	csrfToken string
	http      *http.Client
}

// New builds a client from the settings file. A missing CSRF token
// file leaves the client anonymous; anonymous clients can read but
// never submit or cancel.
func New() (*Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	tokenPath, err := cfg.ResolveCSRFTokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   cfg.ServiceBaseURL(),
		tokenPath: tokenPath,
		http: &http.Client{
			Timeout: cfg.HTTPTimeout(),
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, csrfToken string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		tokenPath: "",
		csrfToken: csrfToken,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Anonymous() bool {
	return strings.TrimSpace(c.csrfToken) == ""
}

// FetchLandingJob returns the status of the newest landing job for the
// pull request. A 200 with an absent or empty status means no job
// exists yet; any non-200 returns an error and the status must be
// treated as unknown, never as "no job".
func (c *Client) FetchLandingJob(ctx context.Context, repo string, pull int) (types.JobStatus, error) {
	var resp StatusResponse
	if err := c.doJSON(ctx, http.MethodGet, pullPath(repo, pull, "landing_jobs"), nil, false, &resp); err != nil {
		return types.StatusNone, err
	}
	return types.ParseJobStatus(resp.Status), nil
}

// FetchLandingJobDetail decodes the full job payload from the same
// endpoint, including the job id needed to cancel it. An empty payload
// yields a job with StatusNone and id zero.
func (c *Client) FetchLandingJobDetail(ctx context.Context, repo string, pull int) (*types.LandingJob, error) {
	var payload JobPayload
	if err := c.doJSON(ctx, http.MethodGet, pullPath(repo, pull, "landing_jobs"), nil, false, &payload); err != nil {
		return nil, err
	}
	return payload.toLandingJob(), nil
}

func (c *Client) FetchChecks(ctx context.Context, repo string, pull int) (*types.ChecksResult, error) {
	var result types.ChecksResult
	if err := c.doJSON(ctx, http.MethodGet, pullPath(repo, pull, "checks"), nil, false, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) FetchPullRequest(ctx context.Context, repo string, pull int) (*types.PullRequest, error) {
	var pr types.PullRequest
	if err := c.doJSON(ctx, http.MethodGet, pullPath(repo, pull, ""), nil, false, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// SubmitLandingJob requests a landing of the given head revision. The
// receipt reports what the service said: 201 created, 400 rejected,
// anything else unknown. Only transport failures return an error.
func (c *Client) SubmitLandingJob(ctx context.Context, repo string, pull int, headSHA string) (*types.SubmitReceipt, error) {
	if strings.TrimSpace(headSHA) == "" {
		return nil, errors.New("head sha is required")
	}
	body := SubmitRequest{HeadSHA: strings.TrimSpace(headSHA)}
	resp, err := c.roundTrip(ctx, http.MethodPost, pullPath(repo, pull, "landing_jobs"), body, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusCreated:
		var payload SubmitResponse
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &types.SubmitReceipt{Outcome: types.SubmitCreated, JobID: payload.ID}, nil
	case http.StatusBadRequest:
		return &types.SubmitReceipt{Outcome: types.SubmitRejected, Reason: failureReason(resp)}, nil
	default:
		return &types.SubmitReceipt{Outcome: types.SubmitUnknown, Reason: failureReason(resp)}, nil
	}
}

// CancelLandingJob asks the service to cancel a job that has not
// started landing yet. The service rejects cancellation once the job
// is in progress.
func (c *Client) CancelLandingJob(ctx context.Context, id int) error {
	body := CancelRequest{Status: "CANCELLED"}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/landing_jobs/%d", id), body, true, nil)
}

func (c *Client) FetchQueue(ctx context.Context) ([]*types.LandingJob, error) {
	var resp QueueResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/landing_jobs", nil, false, &resp); err != nil {
		return nil, err
	}
	jobs := make([]*types.LandingJob, 0, len(resp.Jobs))
	for _, payload := range resp.Jobs {
		jobs = append(jobs, payload.toLandingJob())
	}
	return jobs, nil
}

func (c *Client) FetchJob(ctx context.Context, id int) (*types.LandingJob, error) {
	var payload JobPayload
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/landing_jobs/%d", id), nil, false, &payload); err != nil {
		return nil, err
	}
	return payload.toLandingJob(), nil
}

func pullPath(repo string, pull int, suffix string) string {
	path := fmt.Sprintf("/api/pulls/%s/%d", url.PathEscape(repo), pull)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	resp, err := c.roundTrip(ctx, method, path, body, requireAuth)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, requireAuth bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if err := c.ensureToken(); err != nil {
			return nil, err
		}
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return httpClient.Do(req)
}

func (c *Client) ensureToken() error {
	if strings.TrimSpace(c.csrfToken) == "" {
		if err := c.loadToken(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.csrfToken) == "" {
		return errors.New("csrf token not found; are you logged in?")
	}
	return nil
}

func (c *Client) loadToken() error {
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.csrfToken = ""
			return nil
		}
		return err
	}
	c.csrfToken = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	message := failureReason(resp)
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}

// failureReason pulls a human-readable message out of an error body.
// The service spells failures three ways: {"error": "..."},
// {"errors": [...]} and {"detail": "..."}.
func failureReason(resp *http.Response) string {
	type errorPayload struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
		Detail string   `json:"detail"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	switch {
	case payload.Error != "":
		return payload.Error
	case len(payload.Errors) > 0:
		return strings.Join(payload.Errors, "; ")
	case payload.Detail != "":
		return payload.Detail
	default:
		return resp.Status
	}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func asAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// StatusCode returns the HTTP status carried by err, or 0 when err is
// not an API error.
func StatusCode(err error) int {
	if apiErr := asAPIError(err); apiErr != nil {
		return apiErr.StatusCode
	}
	return 0
}
