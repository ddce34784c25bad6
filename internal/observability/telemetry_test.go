package observability

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/riskibarqy/soccer-academy/internal/config"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

func TestSetup_AllDisabled(t *testing.T) {
	cfg := config.Config{
		AppEnv:         config.EnvDev,
		ServiceName:    "soccer-academy-api",
		ServiceVersion: "dev",
	}

	tel, err := Setup(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if tel.PprofAddr() != "" {
		t.Fatalf("expected no pprof listener, got %q", tel.PprofAddr())
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_UptraceWithoutDSNStaysOff(t *testing.T) {
	tel, err := Setup(context.Background(), config.Config{UptraceEnabled: true, UptraceDSN: "  "}, nil)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if tel.stopTracing != nil {
		t.Fatalf("expected tracing to stay disabled without a DSN")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_PprofServesAndStops(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	tel, err := Setup(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	resp, err := http.Get("http://" + tel.PprofAddr() + "/debug/pprof/cmdline")
	if err != nil {
		t.Fatalf("get pprof cmdline: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected pprof status: %d", resp.StatusCode)
	}

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_PprofAddrInUseFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	_, err = Setup(context.Background(), config.Config{PprofEnabled: true, PprofAddr: ln.Addr().String()}, logging.NewNop())
	if err == nil {
		t.Fatalf("expected error when pprof addr is taken")
	}
}

func TestTelemetry_NilShutdown(t *testing.T) {
	var tel *Telemetry
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil shutdown: %v", err)
	}
}
