package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumeforge/internal/errors"
	"resumeforge/internal/observability"
	"resumeforge/internal/types"
)

func disabledObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("Failed to create observability manager: %v", err)
	}
	return om
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		Logger: errors.NewLogger(slog.LevelError),
		fence:  &analyzeFence{},
	}
}

func TestAnalyzeFenceLastIssuedWins(t *testing.T) {
	fence := &analyzeFence{}

	first := fence.Issue()
	if fence.Stale(first) {
		t.Error("Only issued token should not be stale")
	}

	second := fence.Issue()
	if !fence.Stale(first) {
		t.Error("Older token should be stale once a newer one is issued")
	}
	if fence.Stale(second) {
		t.Error("Latest token should not be stale")
	}
}

func TestValidEnhanceCategory(t *testing.T) {
	tests := []struct {
		category string
		want     bool
	}{
		{"summary", true},
		{"skills", true},
		{"experience", true},
		{"education", false},
		{"", false},
		{"Summary", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := validEnhanceCategory(tt.category); got != tt.want {
				t.Errorf("validEnhanceCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestScoreHandler(t *testing.T) {
	s := newTestServer(t)
	om := disabledObservability(t)
	handler := s.createScoreHandler(om)

	body := `{"resume":{"title":"Engineer","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","summary":"Long enough summary text."}}`
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report types.ScoreReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Sections.Personal == 0 {
		t.Error("Expected nonzero personal score for populated personal fields")
	}
	if report.TotalScore < 0 || report.TotalScore > 100 {
		t.Errorf("Total score out of range: %d", report.TotalScore)
	}
}

func TestScoreHandlerRejectsInvalidResume(t *testing.T) {
	s := newTestServer(t)
	om := disabledObservability(t)
	handler := s.createScoreHandler(om)

	tests := []struct {
		name string
		body string
	}{
		{"missing resume field", `{}`},
		{"schema violation", `{"resume":{"skills":"not a list"}}`},
		{"not json", `score me`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.APIKeys = map[string]bool{"secret-key-12345": true}

	called := false
	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusUnauthorized || called {
			t.Errorf("Expected 401 without handler call, got %d (called=%v)", rec.Code, called)
		}
	})

	t.Run("header key accepted", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("X-API-Key", "secret-key-12345")
		rec := httptest.NewRecorder()

		handler(rec, req)

		if !called {
			t.Error("Expected handler to run with valid key")
		}
	})

	t.Run("bearer token accepted", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("Authorization", "Bearer secret-key-12345")
		rec := httptest.NewRecorder()

		handler(rec, req)

		if !called {
			t.Error("Expected handler to run with valid bearer token")
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/score", nil)
		req.Header.Set("X-API-Key", "wrong")
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusUnauthorized || called {
			t.Errorf("Expected 401 without handler call, got %d (called=%v)", rec.Code, called)
		}
	})
}

func TestWriteAppError(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation maps to 400", errors.NewValidationError(errors.ErrCodeInvalidResume, "bad resume", nil), http.StatusBadRequest},
		{"not found maps to 404", errors.NewNotFoundError(errors.ErrCodeResumeNotFound, "missing", nil), http.StatusNotFound},
		{"ai maps to 502", errors.NewAIError(errors.ErrCodeAIServiceFailed, "model down", nil), http.StatusBadGateway},
		{"storage maps to 500", errors.NewStorageError(errors.ErrCodeStorageFailed, "db down", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeAppError(rec, logger, tt.err)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("Expected full mask for short key, got %q", got)
	}
	if got := maskAPIKey("abcdefgh12345"); got != "abcdefgh****" {
		t.Errorf("Expected prefix mask, got %q", got)
	}
}
