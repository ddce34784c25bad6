package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

func setMemoryDefaults(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE", StorageMemory)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageValidation(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("APP_STORAGE", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_STORAGE")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("APP_STORAGE", StoragePostgres)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_STORAGE=postgres without DB_URL")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("APP_SERVICE_NAME", "")
	t.Setenv("SCORE_RECOMPUTE_WORKERS", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("APP_LOG_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "soccer-academy-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.ScoreRecomputeWorkers != 4 {
		t.Fatalf("unexpected ScoreRecomputeWorkers: %d", cfg.ScoreRecomputeWorkers)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if !cfg.DBBootstrapSeed {
		t.Fatalf("expected bootstrap seed enabled in dev by default")
	}
}

func TestLoad_ProdRequiresAdminToken(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_API_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APP_ENV=prod without ADMIN_API_TOKEN")
	}

	t.Setenv("ADMIN_API_TOKEN", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBBootstrapSeed {
		t.Fatalf("expected bootstrap seed disabled in prod by default")
	}
}

func TestLoad_ScoreWorkersMustBePositive(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("SCORE_RECOMPUTE_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SCORE_RECOMPUTE_WORKERS=0")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `x-foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddr(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setMemoryDefaults(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected split result: %#v", got)
	}
}
