package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netscore/pkg/buildinfo"
	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/scoring"
)

const (
	// MaxBatchSize caps the URLs accepted by one batch request.
	MaxBatchSize = 500

	maxBodyBytes = 1 << 20
)

// Options configures the handler.
type Options struct {
	// Workers bounds concurrent evaluations per batch request.
	Workers int

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger

	// Extra receives every record in addition to the response, e.g. a
	// MongoDB sink. Failures are logged.
	Extra []scoring.Sink
}

// Handler serves the scoring API.
type Handler struct {
	eval    scoring.Evaluator
	workers int
	logger  *log.Logger
	extra   []scoring.Sink
	router  chi.Router
}

// New creates a Handler serving eval.
func New(eval scoring.Evaluator, opts Options) *Handler {
	h := &Handler{
		eval:    eval,
		workers: opts.Workers,
		logger:  opts.Logger,
		extra:   opts.Extra,
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", h.evaluate)
		r.Post("/batch", h.batch)
	})
	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	jsonResp(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

// evaluate handles POST /v1/evaluate.
func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		jsonErr(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "url is required")
		return
	}

	rec := h.eval.Evaluate(r.Context(), req.URL)
	for _, s := range h.extra {
		if err := s.Write(context.WithoutCancel(r.Context()), rec); err != nil {
			h.logger.Warn("secondary sink failed", "url", rec.URL, "err", err)
		}
	}
	jsonResp(w, http.StatusOK, rec)
}

// batch handles POST /v1/batch, streaming one NDJSON line per URL.
func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	urls := make([]string, 0, len(req.URLs))
	for _, u := range req.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	switch {
	case len(urls) == 0:
		jsonErr(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "urls is required")
		return
	case len(urls) > MaxBatchSize:
		jsonErr(w, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput, fmt.Sprintf("at most %d urls per batch", MaxBatchSize))
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	b := scoring.NewBatch(h.eval, scoring.BatchOptions{
		Workers:   h.workers,
		Unordered: req.Unordered,
		RunID:     middleware.GetReqID(r.Context()),
		Logger:    h.logger,
	})
	summary, err := b.Run(r.Context(), urls, newFlushSink(w), h.extra...)
	if err != nil {
		// Headers are gone; the client sees a short stream.
		h.logger.Warn("batch aborted", "written", len(summary.Records), "total", len(urls), "err", err)
		return
	}
	h.logger.Info("batch complete", "run", summary.RunID, "total", summary.Total, "failed", summary.Failed)
}

// flushSink writes NDJSON lines and flushes each one to the client.
type flushSink struct {
	out *scoring.NDJSONWriter
	w   http.ResponseWriter
}

func newFlushSink(w http.ResponseWriter) *flushSink {
	return &flushSink{out: scoring.NewNDJSONWriter(w), w: w}
}

func (s *flushSink) Write(ctx context.Context, r scoring.Record) error {
	if err := s.out.Write(ctx, r); err != nil {
		return err
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

// --- helpers ----------------------------------------------------------------

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		jsonErr(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func jsonResp(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, errCode errors.Code, msg string) {
	jsonResp(w, code, errorResponse{Error: msg, Code: string(errCode)})
}
