package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://academy.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	req.Header.Set("Origin", "https://academy.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://academy.example.com" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/v1/matches", nil)
	req.Header.Set("Origin", "https://academy.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}
}

func TestCORS_DisallowsUnconfiguredOrigin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS([]string{"https://allowed.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	req.Header.Set("Origin", "https://not-allowed.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected empty Access-Control-Allow-Origin, got %q", got)
	}
}

func TestCORS_PreflightForAdminWritesSkipsAuth(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	targets := []struct {
		path   string
		method string
	}{
		{path: "/v1/matches/1", method: http.MethodPatch},
		{path: "/v1/matches/1", method: http.MethodDelete},
		{path: "/v1/stats/1", method: http.MethodPatch},
		{path: "/v1/stats/1", method: http.MethodDelete},
	}
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodOptions, target.path, nil)
		req.Header.Set("Origin", "https://academy.example.com")
		req.Header.Set("Access-Control-Request-Method", target.method)
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("%s %s: expected preflight 204 without a token, got %d", target.method, target.path, rec.Code)
		}
		methods := strings.Split(rec.Header().Get("Access-Control-Allow-Methods"), ",")
		if !containsFold(methods, target.method) {
			t.Fatalf("%s %s: method missing from Access-Control-Allow-Methods %v", target.method, target.path, methods)
		}
		headers := strings.Split(rec.Header().Get("Access-Control-Allow-Headers"), ",")
		if !containsFold(headers, "Authorization") || !containsFold(headers, "Content-Type") {
			t.Fatalf("%s %s: bearer writes need Authorization and Content-Type, got %v", target.method, target.path, headers)
		}
	}
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
