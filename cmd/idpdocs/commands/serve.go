package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erraggy/idpdocs"
	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/handler"
	"github.com/erraggy/idpdocs/instrumentation"
	"github.com/erraggy/idpdocs/internal/cliutil"
	"github.com/erraggy/idpdocs/openapi"
)

const defaultAddr = ":8080"

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	documentFlags
	Addr            string
	Path            string
	Metrics         bool
	RateLimit       int
	Burst           int
	TrustProxy      bool
	LogLevel        string
	ShutdownTimeout time.Duration
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", envDefault(EnvAddr, defaultAddr), "listen address")
	fs.StringVar(&flags.Issuer, "issuer", envDefault(EnvIssuer, ""), "fixed issuer (default: derived from each request)")
	fs.StringVar(&flags.Path, "path", handler.DefaultPath, "URL path the document is served at")
	fs.StringVar(&flags.Mode, "mode", "omit", "unsupported endpoints: omit or placeholder")
	fs.BoolVar(&flags.StaticExample, "static-example", false, "use the fixed demo discovery example")
	fs.BoolVar(&flags.Metrics, "metrics", false, "expose Prometheus metrics at /metrics")
	fs.IntVar(&flags.RateLimit, "rate-limit", 0, "requests per second allowed per client (0 disables)")
	fs.IntVar(&flags.Burst, "burst", 20, "burst size for --rate-limit")
	fs.BoolVar(&flags.TrustProxy, "trust-proxy", false, "trust X-Forwarded-* headers for client IPs and the derived issuer")
	fs.StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.DurationVar(&flags.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: idpdocs serve [flags]\n\n")
		Writef(fs.Output(), "Serve the OpenAPI document over HTTP.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nEnvironment:\n")
		Writef(fs.Output(), "  %s    default for --issuer\n", EnvIssuer)
		Writef(fs.Output(), "  %s      default for --addr\n", EnvAddr)
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  idpdocs serve\n")
		Writef(fs.Output(), "  idpdocs serve --addr :9000 --issuer https://idp.example.org --metrics\n")
	}

	return fs, flags
}

// HandleServe executes the serve command and blocks until SIGINT or SIGTERM.
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("serve command takes no arguments")
	}

	logger, err := cliutil.NewLogger(os.Stderr, flags.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := newServer(flags, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return runServer(ctx, srv, flags.ShutdownTimeout, logger)
}

// newServer wires the document handler, instrumentation and rate limiting
// into an http.Server. cleanup releases the handler and flushes telemetry.
func newServer(flags *ServeFlags, logger *slog.Logger) (*http.Server, func(), error) {
	mode, err := parseMode(flags.Mode)
	if err != nil {
		return nil, nil, err
	}
	if mode == catalog.StrictUnsupported {
		return nil, nil, fmt.Errorf("mode strict cannot serve a document; use omit or placeholder")
	}
	catalogOpts, err := flags.catalogOptions()
	if err != nil {
		return nil, nil, err
	}

	docLogger := openapi.NewSlogAdapter(logger)
	catalogOpts = append(catalogOpts, catalog.WithLogger(docLogger))

	exporter := instrumentation.ExporterNone
	if flags.Metrics {
		exporter = instrumentation.ExporterPrometheus
	}
	inst, err := instrumentation.New(instrumentation.Config{
		ServiceVersion:  idpdocs.Version(),
		Enabled:         flags.Metrics,
		MetricsExporter: exporter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing instrumentation: %w", err)
	}

	opts := []handler.Option{
		handler.WithGenerator(catalog.New(catalogOpts...)),
		handler.WithPath(flags.Path),
		handler.WithLogger(docLogger),
		handler.WithInstrumentation(inst),
		handler.WithTrustProxy(flags.TrustProxy),
	}
	if flags.Issuer != "" {
		opts = append(opts, handler.WithStaticIssuer(flags.Issuer))
	}
	if flags.RateLimit > 0 {
		opts = append(opts, handler.WithRateLimit(flags.RateLimit, flags.Burst))
	}
	h := handler.New(opts...)

	srv := &http.Server{
		Addr:              flags.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	cleanup := func() {
		h.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := inst.Shutdown(ctx); err != nil {
			logger.Warn("instrumentation shutdown failed", "error", err)
		}
	}
	return srv, cleanup, nil
}

// runServer listens on srv.Addr until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	}
	logger.Info("serving document", "addr", ln.Addr().String(), "version", idpdocs.Version())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
