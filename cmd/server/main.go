// Command server runs the article digest web application: a search form that
// looks up New York Times articles and shows a short summary of each result.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"article-digest/internal/config"
	hhttp "article-digest/internal/handler/http"
	hdigest "article-digest/internal/handler/http/digest"
	"article-digest/internal/handler/http/requestid"
	"article-digest/internal/infra/nytimes"
	"article-digest/internal/infra/summarizer"
	"article-digest/internal/observability/logging"
	"article-digest/internal/observability/tracing"
	digestUC "article-digest/internal/usecase/digest"
	"article-digest/internal/usecase/summarize"
)

// rateLimitCleanupInterval is how often idle rate limiter entries are dropped.
const rateLimitCleanupInterval = 5 * time.Minute

// ServerComponents holds everything runServer needs.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.RateLimiter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Observability)
	logFrameworkFlags(logger, cfg.Framework)

	shutdownTracing := initTracing(logger, cfg.Observability)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg.Server, components)
}

// initLogger creates the process logger and installs it as the slog default.
func initLogger(obs config.ObservabilityConfig) *slog.Logger {
	logger := logging.New(logging.Options{Level: obs.LogLevel, Format: obs.LogFormat})
	slog.SetDefault(logger)
	return logger
}

// logFrameworkFlags records model runtime switches carried over from older
// deployments. They do not change behaviour.
func logFrameworkFlags(logger *slog.Logger, flags config.FrameworkFlags) {
	if flags.TransformersNoTF == "" && flags.TransformersNoFlax == "" {
		return
	}
	logger.Info("framework flags set",
		slog.String("TRANSFORMERS_NO_TF", flags.TransformersNoTF),
		slog.String("TRANSFORMERS_NO_FLAX", flags.TransformersNoFlax))
}

// initTracing installs a tracer provider when tracing is enabled. Spans are
// not exported; they give every request a trace ID for log correlation and
// the X-Trace-Id response header.
func initTracing(logger *slog.Logger, obs config.ObservabilityConfig) func(context.Context) error {
	if !obs.TracingEnabled {
		return func(context.Context) error { return nil }
	}
	logger.Info("tracing enabled", slog.Float64("sample_ratio", obs.TraceSampleRatio))
	return tracing.Setup(obs.TraceSampleRatio)
}

// setupServer wires clients, use cases and routes.
func setupServer(logger *slog.Logger, cfg *config.Config) (*ServerComponents, error) {
	searchClient := nytimes.New(cfg.Search.Client())
	if !searchClient.Configured() {
		logger.Warn("NYT_API_KEY is not set; searches will report a configuration error")
	}

	model := summarizer.NewFromConfig(cfg.Summarizer.ModelConfig())
	summarizeSvc := summarize.NewService(model, summarize.WithTimeout(cfg.Summarizer.Timeout))
	digestSvc := digestUC.NewService(searchClient, summarizeSvc)

	pages, err := hdigest.ParsePages()
	if err != nil {
		return nil, err
	}

	logger.Info("summarizer configured",
		slog.String("backend", model.Backend()),
		slog.String("model", cfg.Summarizer.Model),
		slog.Duration("timeout", cfg.Summarizer.Timeout))

	router := setupRoutes(cfg.Server, searchClient, model, digestSvc, pages)

	var limiter *hhttp.RateLimiter
	if cfg.Server.RatePerMinute > 0 {
		limiter = hhttp.NewRateLimiter(cfg.Server.RatePerMinute, cfg.Server.RateBurst, cfg.Server.TrustProxy)
		logger.Info("rate limiting enabled",
			slog.Float64("per_minute", cfg.Server.RatePerMinute),
			slog.Int("burst", cfg.Server.RateBurst))
	}

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg.Server, router, limiter),
		RateLimiter: limiter,
	}, nil
}

// setupRoutes registers the pages and the operational endpoints.
func setupRoutes(
	srv config.ServerConfig,
	search *nytimes.Client,
	model *summarizer.Lazy,
	svc hdigest.Runner,
	pages *hdigest.Pages,
) *mux.Router {
	r := mux.NewRouter()
	hdigest.Register(r, svc, pages)

	r.Handle("/health", &hhttp.HealthHandler{
		Search:     search,
		Summarizer: model,
		Version:    srv.Version,
		CSPEnabled: srv.CSPEnabled,
	}).Methods(http.MethodGet)
	r.Handle("/ready", &hhttp.ReadyHandler{Search: search}).Methods(http.MethodGet)
	r.Handle("/live", &hhttp.LiveHandler{}).Methods(http.MethodGet)
	r.Handle("/metrics", hhttp.MetricsHandler()).Methods(http.MethodGet)
	return r
}

// applyMiddleware builds the middleware chain, outermost first:
// request ID, tracing, rate limit, recovery, logging, input validation,
// body limit, security headers, metrics.
func applyMiddleware(logger *slog.Logger, srv config.ServerConfig, handler http.Handler, limiter *hhttp.RateLimiter) http.Handler {
	if srv.CSPEnabled {
		logger.Info("CSP enabled", slog.Bool("report_only", srv.CSPReportOnly))
	} else {
		logger.Warn("CSP is disabled")
	}

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.SecurityHeaders(hhttp.CSPConfig{
		Enabled:    srv.CSPEnabled,
		ReportOnly: srv.CSPReportOnly,
		Policy:     hhttp.PagePolicy(),
	})(chain)
	chain = hhttp.LimitRequestBody(srv.MaxBodyBytes)(chain)
	chain = hhttp.InputValidation(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	if limiter != nil {
		chain = limiter.Limit(chain)
	}
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func runServer(logger *slog.Logger, cfg config.ServerConfig, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.RateLimiter != nil {
		go components.RateLimiter.StartCleanup(ctx, rateLimitCleanupInterval)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
