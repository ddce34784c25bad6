package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/soccer-academy/internal/domain/user"
)

type fixedVerifier struct {
	principal user.Principal
}

func (v fixedVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return v.principal, nil
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name      string
		principal user.Principal
		header    string
		want      int
	}{
		{name: "admin passes", principal: user.Principal{UserID: "a", Roles: []string{user.RoleAdmin}}, header: "Bearer t", want: http.StatusNoContent},
		{name: "non admin forbidden", principal: user.Principal{UserID: "coach", Roles: []string{"coach"}}, header: "Bearer t", want: http.StatusForbidden},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "bad scheme", header: "Basic abc", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(fixedVerifier{principal: tt.principal}, user.RoleAdmin, next)
			req := httptest.NewRequest(http.MethodPost, "/v1/matches", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}

func TestCaptureRequestBody_PreservesBody(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got = string(raw)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/stats", strings.NewReader(`{"goals":1}`))
	CaptureRequestBody(4, next).ServeHTTP(httptest.NewRecorder(), req)

	if got != `{"goals":1}` {
		t.Fatalf("expected body preserved, got %q", got)
	}
}

type staticIDs string

func (s staticIDs) NewID() (string, error) {
	return string(s), nil
}

func TestRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	})
	handler := RequestID(staticIDs("generated-id"), next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matches", nil))
	if seen != "generated-id" || rec.Header().Get(requestIDHeader) != "generated-id" {
		t.Fatalf("expected generated id, got ctx=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
	req.Header.Set(requestIDHeader, "caller-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "caller-id" || rec.Header().Get(requestIDHeader) != "caller-id" {
		t.Fatalf("expected caller id propagated, got ctx=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}
}
