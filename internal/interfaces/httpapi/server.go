package httpapi

import (
	"net/http"

	"github.com/riskibarqy/soccer-academy/internal/platform/id"
	"github.com/riskibarqy/soccer-academy/internal/platform/logging"
)

type RouterOptions struct {
	CORSAllowedOrigins []string
	// RequestBodyMaxBytes > 0 records request bodies on trace spans.
	RequestBodyMaxBytes int
	// RequestIDs defaults to a random hex generator.
	RequestIDs id.Generator
}

func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerAdminRoutes(mux, handler, verifier)

	var inner http.Handler = CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))
	if opts.RequestBodyMaxBytes > 0 {
		inner = CaptureRequestBody(opts.RequestBodyMaxBytes, inner)
	}
	requestIDs := opts.RequestIDs
	if requestIDs == nil {
		requestIDs = id.NewRandomGenerator(0)
	}
	return RequestTracing(RequestID(requestIDs, RequestLogging(logger, inner)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
