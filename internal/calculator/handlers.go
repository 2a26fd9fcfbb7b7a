package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"tapecalc/internal/handlers"
	"tapecalc/internal/observability"
	"tapecalc/internal/sessions"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Remote is a session whose view is mirrored to an HTTP client.
type Remote struct {
	*Session
	view *Display
}

// NewRemote returns a fresh session wired to its own Display.
func NewRemote() *Remote {
	view := &Display{Number: defaultNumber}
	return &Remote{Session: NewSession(view), view: view}
}

func (r *Remote) response(id string) SessionResponse {
	return SessionResponse{
		ID:      id,
		Display: r.view.Number,
		Tape:    r.view.Tape,
		State:   r.State().String(),
		Pending: r.Pending().String(),
	}
}

// Store holds the remote sessions served by the API.
type Store = sessions.Store[*Remote]

// NewStore returns a session store producing remote sessions.
func NewStore(opts sessions.Options) *Store {
	return sessions.New(NewRemote, opts)
}

// API serves calculator sessions over HTTP.
type API struct {
	store *Store
}

// NewAPI serves the sessions held in store.
func NewAPI(store *Store) *API {
	return &API{store: store}
}

// ---------------------------------------------------------------------------
// Handlers: session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	entry, err := a.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create", "cannot create session", err, http.StatusServiceUnavailable, w)
		return
	}

	var resp SessionResponse
	entry.Do(func(rs *Remote) { resp = rs.response(entry.ID) })

	span.SetAttributes(attribute.String("calculator.session.id", entry.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", entry.ID),
		zap.Int("active_sessions", a.store.Len()),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, resp)
}

// GetSession handles GET /calculator/sessions/{id}
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	entry, err := a.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get", "session not found", err, http.StatusNotFound, w)
		return
	}

	var resp SessionResponse
	entry.Do(func(rs *Remote) { resp = rs.response(id) })

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	if err := a.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers: keypad
// ---------------------------------------------------------------------------

// ApplyIntent handles POST /calculator/sessions/{id}/intents. It applies a
// single intent and answers with the texts the view must now show.
func (a *API) ApplyIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.intent",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "intent", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	in, err := req.toIntent()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "intent", "invalid intent", err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.intent", string(in.Kind)))

	entry, err := a.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, string(in.Kind), "session not found", err, http.StatusNotFound, w)
		return
	}

	var (
		out  Outcome
		resp SessionResponse
	)
	start := time.Now()
	entry.Do(func(rs *Remote) {
		out, _ = rs.Apply(in)
		resp = rs.response(id)
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	a.recordOutcome(ctx, span, in.Kind, out, resp, elapsed)

	logger.Info("calculator intent applied",
		zap.String("session_id", id),
		zap.String("intent", string(in.Kind)),
		zap.String("outcome", out.String()),
		zap.String("display", resp.Display),
		zap.String("tape", resp.Tape),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, IntentResponse{SessionResponse: resp, Outcome: out.String()})
}

// PressKeys handles POST /calculator/sessions/{id}/keys. Keys are applied in
// order, each in its own child span, so a whole calculation shows up as one
// multi-level trace.
func (a *API) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	// Parent span for the entire key sequence
	ctx, span := tracer.Start(ctx, "calculator.keys",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "no keys provided", fmt.Errorf("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	// Parse everything up front so a bad key leaves the session untouched.
	intents := make([]Intent, 0, len(req.Keys))
	for i, key := range req.Keys {
		in, err := ParseKey(key)
		if err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, "keys", fmt.Sprintf("invalid key at index %d", i), err, http.StatusBadRequest, w)
			return
		}
		intents = append(intents, in)
	}

	entry, err := a.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys.count", len(intents)))

	outcomes := make([]string, 0, len(intents))
	var resp SessionResponse

	entry.Do(func(rs *Remote) {
		for i, in := range intents {
			// --- Child span per key ---
			stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.keys.%d.%s", i, in.Kind),
				trace.WithAttributes(
					attribute.Int("calculator.keys.index", i),
					attribute.String("calculator.key", req.Keys[i]),
				),
			)

			start := time.Now()
			out, _ := rs.Apply(in)
			step := rs.response(id)
			elapsed := float64(time.Since(start).Microseconds()) / 1000.0

			a.recordOutcome(stepCtx, stepSpan, in.Kind, out, step, elapsed)
			stepSpan.End()

			logger.Debug("calculator key applied",
				zap.Int("index", i),
				zap.String("key", req.Keys[i]),
				zap.String("outcome", out.String()),
				zap.String("display", step.Display),
				zap.String("tape", step.Tape),
			)

			outcomes = append(outcomes, out.String())
			resp = step
		}
	})

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", resp.Display),
		attribute.Int("total_keys", len(intents)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator key sequence applied",
		zap.String("session_id", id),
		zap.Int("keys", len(intents)),
		zap.String("display", resp.Display),
		zap.String("tape", resp.Tape),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{SessionResponse: resp, Outcomes: outcomes})
}

// recordOutcome records metrics and span details for one applied intent.
// A division by zero is a normal calculator outcome, not a request failure.
func (a *API) recordOutcome(ctx context.Context, span trace.Span, kind IntentKind, out Outcome, resp SessionResponse, elapsedMS float64) {
	attrs := metric.WithAttributes(
		attribute.String("intent", string(kind)),
		attribute.String("outcome", out.String()),
	)
	intentCounter.Add(ctx, 1, attrs)
	intentHistogram.Record(ctx, elapsedMS, attrs)

	span.SetAttributes(
		attribute.String("calculator.outcome", out.String()),
		attribute.String("calculator.display", resp.Display),
		attribute.String("calculator.tape", resp.Tape),
	)

	if err := out.Err(); err != nil {
		divZeroCounter.Add(ctx, 1)
		span.AddEvent("calculator.division_by_zero", trace.WithAttributes(
			attribute.String("error", err.Error()),
		))
	}
	if out == OutcomeResult {
		if v, ok := parseNumber(resp.Display); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			resultGauge.Record(ctx, v)
			span.SetAttributes(attribute.Float64("calculator.result", v))
		}
	}
	span.SetStatus(codes.Ok, "")
}
