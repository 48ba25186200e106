package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/caseline/profilectl/pkg/errors"
)

// pdfMagic is the signature every valid PDF starts with.
var pdfMagic = []byte("%PDF")

// ExportDocument requests the rendered profile card and validates that
// the response really is a PDF: both the content-type header and the
// first four bytes are checked. A 2xx response that fails validation is
// surfaced as an export error carrying the response body text — the
// server explains itself in the body when rendering fails.
func (c *Client) ExportDocument(ctx context.Context, entityID string) ([]byte, error) {
	path := c.profilePath(entityID) + "/export"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPI, "failed to create export request", err)
	}
	c.prepare(req)
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPI, "export request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", http.MethodGet),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if err := checkStatus(resp, "export"); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPI, "failed to read export response", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/pdf") || !bytes.HasPrefix(data, pdfMagic) {
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = "export did not return a PDF document"
		}
		return nil, errors.ExportError(message)
	}

	return data, nil
}
