package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caseline/profilectl/pkg/errors"
)

func TestExportDocument_ValidPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%fake document body")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/entities/ent-1/profile/export" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer ts.Close()

	c, _ := NewClient(ts.URL, "")
	data, err := c.ExportDocument(context.Background(), "ent-1")
	if err != nil {
		t.Fatalf("ExportDocument failed: %v", err)
	}
	if string(data) != string(pdf) {
		t.Error("returned bytes differ from response body")
	}
}

func TestExportDocument_JSONErrorBody(t *testing.T) {
	// A 200 with a JSON error body must surface the body text, never be
	// treated as document bytes.
	body := `{"error": "profile has no base submission"}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	c, _ := NewClient(ts.URL, "")
	_, err := c.ExportDocument(context.Background(), "ent-1")
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Fatalf("expected EXPORT_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "profile has no base submission") {
		t.Errorf("expected body text in error, got %v", err)
	}
}

func TestExportDocument_PDFContentTypeWrongMagic(t *testing.T) {
	// Content-type alone is not trusted; the magic bytes must match too.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("<html>proxy error page</html>"))
	}))
	defer ts.Close()

	c, _ := NewClient(ts.URL, "")
	_, err := c.ExportDocument(context.Background(), "ent-1")
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Fatalf("expected EXPORT_ERROR, got %v", err)
	}
}

func TestExportDocument_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream renderer unavailable"))
	}))
	defer ts.Close()

	c, _ := NewClient(ts.URL, "")
	_, err := c.ExportDocument(context.Background(), "ent-1")
	if !errors.Is(err, errors.ErrCodeAPI) {
		t.Fatalf("expected API_ERROR, got %v", err)
	}
}
