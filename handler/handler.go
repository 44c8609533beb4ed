package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/instrumentation"
	"github.com/erraggy/idpdocs/internal/httputil"
	"github.com/erraggy/idpdocs/oaserrors"
	"github.com/erraggy/idpdocs/openapi"
	"github.com/erraggy/idpdocs/serializer"
)

// allowedMethods is sent in the Allow header of 405 responses.
const allowedMethods = "GET, HEAD"

// Handler serves the generated document.
type Handler struct {
	generator    catalog.Generator
	path         string
	logger       openapi.Logger
	inst         *instrumentation.Instrumentation
	tracer       trace.Tracer
	limiter      *RateLimiter
	rateLimit    int
	rateBurst    int
	trustProxy   bool
	staticIssuer string
	indent       string
}

// New creates a Handler. Without WithGenerator it builds documents with catalog.New().
func New(opts ...Option) *Handler {
	h := &Handler{
		path:   DefaultPath,
		logger: openapi.NopLogger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.generator == nil {
		h.generator = catalog.New(catalog.WithLogger(h.logger))
	}
	if h.rateLimit > 0 {
		h.limiter = NewRateLimiter(h.rateLimit, h.rateBurst, h.logger)
	}
	if h.inst != nil {
		h.tracer = h.inst.Tracer("handler")
	} else {
		h.tracer = tracenoop.NewTracerProvider().Tracer("handler")
	}
	return h
}

// Path returns the URL path the document is served at.
func (h *Handler) Path() string {
	return h.path
}

// Close releases the rate limiter's background cleanup.
func (h *Handler) Close() {
	if h.limiter != nil {
		h.limiter.Stop()
	}
}

// ServeHTTP serves the document at the configured path and 404 elsewhere.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != h.path {
		http.NotFound(w, r)
		return
	}
	h.serveDocument(w, r)
}

// Middleware serves the document at the configured path and passes every
// other request to next.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != h.path {
			next.ServeHTTP(w, r)
			return
		}
		h.serveDocument(w, r)
	})
}

// Router returns a chi router serving the document, with request IDs and
// panic recovery, plus /metrics when Prometheus instrumentation is configured.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Handle(h.path, http.HandlerFunc(h.serveDocument))
	if h.inst != nil && h.inst.HasMetricsEndpoint() {
		r.Get("/metrics", h.inst.MetricsHandler().ServeHTTP)
	}
	return r
}

func (h *Handler) serveDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := h.tracer.Start(r.Context(), instrumentation.SpanServeDocument,
		trace.WithAttributes(attribute.String(instrumentation.AttrHTTPMethod, r.Method)))
	defer span.End()

	status := h.respond(ctx, w, r, span)

	instrumentation.SetSpanAttributes(span, attribute.Int(instrumentation.AttrHTTPStatusCode, status))
	if status < http.StatusBadRequest {
		instrumentation.SetSpanSuccess(span)
	}
	if h.inst != nil {
		h.inst.Metrics().RecordHTTPRequest(ctx, r.Method, h.path, status,
			float64(time.Since(start).Microseconds())/1000)
	}
}

// respond writes the response and returns its status code.
func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, r *http.Request, span trace.Span) int {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", allowedMethods)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return http.StatusMethodNotAllowed
	}

	if h.limiter != nil {
		clientIP := httputil.ClientIP(r, h.trustProxy)
		if !h.limiter.Allow(clientIP) {
			h.logger.Warn("rate limit exceeded", "ip", clientIP)
			if h.inst != nil {
				h.inst.Metrics().RecordRateLimitExceeded(ctx)
			}
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return http.StatusTooManyRequests
		}
	}

	format, err := requestFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return http.StatusBadRequest
	}
	issuer := h.issuer(r)
	instrumentation.SetSpanAttributes(span,
		attribute.String(instrumentation.AttrIssuer, issuer),
		attribute.String(instrumentation.AttrFormat, string(format)))

	body, reason, err := h.render(ctx, issuer, format)
	if err != nil {
		h.logger.Error("failed to serve document", "issuer", issuer, "reason", reason, "error", err)
		instrumentation.RecordError(span, err)
		if h.inst != nil {
			h.inst.Metrics().RecordGenerationError(ctx, reason)
		}
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, http.StatusText(status), status)
		return status
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		if _, err := w.Write(body); err != nil {
			h.logger.Debug("failed to write document", "error", err)
		}
	}
	if h.inst != nil {
		h.inst.Metrics().RecordDocumentSize(ctx, string(format), len(body))
	}
	instrumentation.SetSpanAttributes(span, attribute.Int(instrumentation.AttrDocumentSize, len(body)))
	return http.StatusOK
}

// render builds and serializes the document. The reason names the failing
// stage for logs and metrics.
func (h *Handler) render(ctx context.Context, issuer string, format serializer.Format) ([]byte, string, error) {
	doc, err := h.generator.Generate(ctx, issuer)
	if err != nil {
		return nil, "build", err
	}
	if doc == nil {
		return nil, "build", &oaserrors.ConfigError{Option: "generator", Message: "handler: generator returned no document"}
	}
	if err := serializer.CheckReferences(doc); err != nil {
		return nil, "reference", err
	}
	opts := []serializer.Option{serializer.WithFormat(format)}
	if h.indent != "" {
		opts = append(opts, serializer.WithIndent(h.indent))
	}
	body, err := serializer.Serialize(doc, opts...)
	if err != nil {
		return nil, "serialize", err
	}
	return body, "", nil
}

// issuer picks the request-context issuer, then the static issuer, then the
// address the request was sent to.
func (h *Handler) issuer(r *http.Request) string {
	if issuer, ok := IssuerFromContext(r.Context()); ok {
		return issuer
	}
	if h.staticIssuer != "" {
		return h.staticIssuer
	}
	return httputil.BaseURL(r, h.trustProxy)
}

// requestFormat honours an explicit format query parameter before the Accept header.
func requestFormat(r *http.Request) (serializer.Format, error) {
	if q := r.URL.Query().Get("format"); strings.TrimSpace(q) != "" {
		return serializer.ParseFormat(q)
	}
	if httputil.PrefersYAML(r.Header.Get("Accept")) {
		return serializer.FormatYAML, nil
	}
	return serializer.FormatJSON, nil
}
