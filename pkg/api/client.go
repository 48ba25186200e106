// Package api implements the persistence adapter for profile cards:
// a client for the CRM REST API plus a websocket stream of profile
// change events.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caseline/profilectl/pkg/answers"
	"github.com/caseline/profilectl/pkg/errors"
	"github.com/caseline/profilectl/pkg/profile"
)

// SyncResult is the server's answer to a sync request: the field-level
// differences between the latest submission and the current merged
// view, plus the submission id to graduate to on save.
type SyncResult struct {
	StagedChanges      []profile.StagedChange `json:"staged_changes"`
	LatestSubmissionID string                 `json:"latest_submission_id,omitempty"`
}

// Adapter is the persistence contract the editor core requires of its
// environment. All calls are request/response; none retry.
type Adapter interface {
	// GetProfile fetches the profile card aggregate for an entity.
	GetProfile(ctx context.Context, entityID string) (*profile.Data, error)

	// RequestSync asks the server to diff the latest submission
	// against the current merged view. Idempotent; safe to re-invoke.
	RequestSync(ctx context.Context, entityID string) (*SyncResult, error)

	// SaveOverrides replaces the entire overrides map server-side (not
	// a patch). A non-empty newBaseSubmissionID also graduates the
	// profile to that submission.
	SaveOverrides(ctx context.Context, entityID string, overrides answers.Map, newBaseSubmissionID string) error

	// ToggleHiddenField sets one field's hidden flag.
	ToggleHiddenField(ctx context.Context, entityID, fieldKey string, hidden bool) error

	// ExportDocument renders the profile card as a PDF and returns the
	// raw bytes. A successful HTTP response that is not a PDF is an
	// application-level error, never treated as document bytes.
	ExportDocument(ctx context.Context, entityID string) ([]byte, error)
}

// Client implements Adapter against the CRM HTTP API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates an API client pointed at the given base URL
// (e.g. "https://crm.example.com").
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeConfig, "api url must not be empty")
	}

	c := &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetProfile fetches the profile card aggregate for an entity.
func (c *Client) GetProfile(ctx context.Context, entityID string) (*profile.Data, error) {
	var data profile.Data
	if err := c.doJSON(ctx, http.MethodGet, c.profilePath(entityID), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// RequestSync asks the server to diff the latest submission against the
// current merged view.
func (c *Client) RequestSync(ctx context.Context, entityID string) (*SyncResult, error) {
	var result SyncResult
	path := c.profilePath(entityID) + "/sync"
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type saveOverridesRequest struct {
	Overrides        answers.Map `json:"overrides"`
	BaseSubmissionID string      `json:"base_submission_id,omitempty"`
}

// SaveOverrides replaces the entire overrides map server-side.
func (c *Client) SaveOverrides(ctx context.Context, entityID string, overrides answers.Map, newBaseSubmissionID string) error {
	body := saveOverridesRequest{
		Overrides:        overrides,
		BaseSubmissionID: newBaseSubmissionID,
	}
	path := c.profilePath(entityID) + "/overrides"
	return c.doJSON(ctx, http.MethodPut, path, body, nil)
}

type toggleHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

// ToggleHiddenField sets one field's hidden flag.
func (c *Client) ToggleHiddenField(ctx context.Context, entityID, fieldKey string, hidden bool) error {
	path := fmt.Sprintf("%s/fields/%s/hidden", c.profilePath(entityID), url.PathEscape(fieldKey))
	return c.doJSON(ctx, http.MethodPut, path, toggleHiddenRequest{Hidden: hidden}, nil)
}

func (c *Client) profilePath(entityID string) string {
	return fmt.Sprintf("/api/v1/entities/%s/profile", url.PathEscape(entityID))
}

// doJSON issues a request with a JSON body (if any) and decodes a JSON
// response (if out is non-nil). Non-2xx responses become coded errors.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.prepare(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAPI, fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if err := checkStatus(resp, method+" "+path); err != nil {
		return err
	}

	if out == nil {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeAPI, "failed to decode response", err)
	}
	return nil
}

func (c *Client) prepare(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	req.Header.Set("Accept", "application/json")
}

func checkStatus(resp *http.Response, operation string) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFoundError("resource", operation)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrCodePermission, "not authorized; run 'profilectl login' to refresh credentials")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.APIError(operation, resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
