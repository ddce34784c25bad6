package observability

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/soccer-academy/internal/config"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

// Telemetry owns the process-wide tracing and profiling hooks started for the
// API process.
type Telemetry struct {
	logger       *logging.Logger
	stopTracing  func(context.Context) error
	stopProfiler func() error
	pprof        *pprofServer
}

// Setup starts Uptrace, Pyroscope and the pprof listener according to cfg.
// Anything already started is stopped again when a later step fails.
func Setup(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	t.stopTracing = setupTracing(cfg, logger)

	stopProfiler, err := startProfiler(cfg, logger)
	if err != nil {
		return nil, errors.CombineErrors(errors.Wrap(err, "start pyroscope"), t.Shutdown(ctx))
	}
	t.stopProfiler = stopProfiler

	pprof, err := startPprof(cfg, logger)
	if err != nil {
		return nil, errors.CombineErrors(errors.Wrap(err, "start pprof"), t.Shutdown(ctx))
	}
	t.pprof = pprof

	return t, nil
}

// Shutdown stops every started component and flushes pending spans. It is
// safe to call on a partially initialized Telemetry.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}

	var err error
	if t.pprof != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.pprof.stop(ctx), "stop pprof"))
	}
	if t.stopProfiler != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.stopProfiler(), "stop pyroscope"))
	}
	if t.stopTracing != nil {
		err = errors.CombineErrors(err, errors.Wrap(t.stopTracing(ctx), "flush uptrace"))
	}
	return err
}

// PprofAddr is the bound pprof address, or "" when pprof is disabled.
func (t *Telemetry) PprofAddr() string {
	if t == nil || t.pprof == nil {
		return ""
	}
	return t.pprof.addr
}
