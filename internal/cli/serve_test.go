package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zradlicz/pcb-dataset-generator/pkg/config"
)

func testServer(t *testing.T) *server {
	t.Helper()

	cfg := config.Default()
	cfg.Cache.Backend = "none"
	cfg.Components.Large.Count = 1
	cfg.Components.Medium.Count = 3
	cfg.Components.Small.Count = 8
	cfg.Components.Connectors.Count = 0
	cfg.Components.TestPoints.Count = 0

	c := New(io.Discard, LogInfo)
	runner, err := c.newRunner(cfg, false)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	t.Cleanup(func() { runner.Close() })

	return &server{cfg: cfg, runner: runner, cli: c}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestHandlePlacements(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/placements",
		strings.NewReader(`{"seed": 3, "nets": true}`))
	rec := httptest.NewRecorder()
	s.handlePlacements(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp placementsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if resp.Seed != 3 {
		t.Errorf("seed = %d, want 3", resp.Seed)
	}
	if resp.ConfigHash == "" {
		t.Error("no config hash")
	}
	if len(resp.Placements) == 0 {
		t.Error("no placements")
	}
	if len(resp.Nets) == 0 {
		t.Error("nets requested but absent")
	}
}

func TestHandlePlacementsDeterministic(t *testing.T) {
	s := testServer(t)

	post := func() placementsResponse {
		req := httptest.NewRequest(http.MethodPost, "/v1/placements",
			strings.NewReader(`{"seed": 11}`))
		rec := httptest.NewRecorder()
		s.handlePlacements(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp placementsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("parsing body: %v", err)
		}
		return resp
	}

	a, b := post(), post()
	if a.ConfigHash != b.ConfigHash {
		t.Error("same request produced different config hashes")
	}
	if len(a.Placements) != len(b.Placements) {
		t.Error("same request produced different placements")
	}
}

func TestHandlePlacementsBadBody(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/placements", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.handlePlacements(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if resp.Code != "INVALID_FORMAT" {
		t.Errorf("error code = %q, want INVALID_FORMAT", resp.Code)
	}
}

func TestHandlePlacementsInvalidBase(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/placements",
		strings.NewReader(`{"seed": 1, "base": {"board": {"width_mm": -5, "height_mm": 80}}}`))
	rec := httptest.NewRecorder()
	s.handlePlacements(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parsing body: %v", err)
	}
	if resp.Code != "INVALID_BOARD" {
		t.Errorf("error code = %q, want INVALID_BOARD", resp.Code)
	}
}

func TestHandlePreview(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/preview?seed=2", nil)
	rec := httptest.NewRecorder()
	s.handlePreview(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestHandlePreviewBadSeed(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/preview?seed=banana", nil)
	rec := httptest.NewRecorder()
	s.handlePreview(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
