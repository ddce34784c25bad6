package main

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/riskibarqy/soccer-academy/db"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default of 1 step, got %d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3 steps, got %d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-1", "abc"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for steps %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("1771800100"); err != nil || got != 1771800100 {
		t.Fatalf("unexpected version %d err=%v", got, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("1771800000"); err != nil || got != 1771800000 {
		t.Fatalf("unexpected target %d err=%v", got, err)
	}
	if _, err := parseTarget("-1"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestEnvBool(t *testing.T) {
	for _, raw := range []string{"1", "true", " YES ", "on"} {
		t.Setenv("MIGRATION_TEST_FLAG", raw)
		if !envBool("MIGRATION_TEST_FLAG") {
			t.Fatalf("expected %q to be true", raw)
		}
	}
	for _, raw := range []string{"", "0", "false", "nope"} {
		t.Setenv("MIGRATION_TEST_FLAG", raw)
		if envBool("MIGRATION_TEST_FLAG") {
			t.Fatalf("expected %q to be false", raw)
		}
	}
}

func TestRunRequiresCommandAndDBURL(t *testing.T) {
	logger := logging.NewJSON(logging.LevelError)

	if err := run(nil, logger); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}

	t.Setenv("DB_URL", "")
	if err := run([]string{"up"}, logger); err == nil || errors.Is(err, errUsage) {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(db.Migrations, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	for name := range ups {
		if !downs[name] {
			t.Fatalf("missing down migration for %s", name)
		}
	}
}
