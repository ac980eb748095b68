// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/typebuddy/internal/calc"
	"github.com/jeranaias/typebuddy/internal/prefs"
	"github.com/jeranaias/typebuddy/internal/storage"
	"github.com/jeranaias/typebuddy/internal/suggest"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8787"

	// MaxRequestBodySize is the maximum size for request body to prevent DoS (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// MaxExpressionLength bounds expressions sent to /v1/evaluate and /v1/graph.
	MaxExpressionLength = 4096

	// MaxTextLength bounds text sent to /v1/suggest.
	MaxTextLength = 10000

	// MaxSuggestions bounds the max field of /v1/suggest.
	MaxSuggestions = 20

	// PinHeader carries the caregiver PIN for preference changes.
	PinHeader = "X-TypeBuddy-Pin"

	// Version is the API version.
	Version = "1.0.0"
)

// Error types in the JSON error envelope.
const (
	errInvalidRequest = "invalid_request_error"
	errNotFound       = "not_found_error"
	errLocked         = "locked_error"
	errRateLimited    = "rate_limit_error"
	errUnavailable    = "unavailable_error"
	errServer         = "server_error"
)

// ============================================================================
// SERVER STATS
// ============================================================================

// ServerStats tracks server usage statistics.
type ServerStats struct {
	evaluations atomic.Int64
	graphs      atomic.Int64
	suggestions atomic.Int64
	failures    atomic.Int64
	startTime   time.Time
}

// NewServerStats creates a new ServerStats instance.
func NewServerStats() *ServerStats {
	return &ServerStats{startTime: time.Now()}
}

// Uptime returns the server uptime duration.
func (s *ServerStats) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// ============================================================================
// SERVER
// ============================================================================

// GraphDefaults fill in graph requests that leave fields out.
type GraphDefaults struct {
	XMin     float64
	XMax     float64
	Points   int
	Variable string
}

// Server is the TypeBuddy HTTP API.
type Server struct {
	addr    string
	router  *http.ServeMux
	server  *http.Server
	limiter *RateLimiter
	cors    *CORSConfig
	stats   *ServerStats

	mu        sync.RWMutex
	suggester *suggest.Suggester
	prefs     *prefs.Store
	store     *storage.Store
	graph     GraphDefaults
	logger    *log.Logger
}

// NewServer creates a Server listening on addr (DefaultAddr when empty).
// The evaluate, graph and suggest endpoints work out of the box;
// preferences, notes and history answer 503 until their stores are
// attached.
func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{
		addr:      addr,
		router:    http.NewServeMux(),
		cors:      DefaultCORSConfig(),
		stats:     NewServerStats(),
		suggester: suggest.New(nil),
		graph: GraphDefaults{
			XMin:     -10,
			XMax:     10,
			Points:   calc.DefaultGraphPoints,
			Variable: calc.GraphVariable,
		},
		logger: log.Default(),
	}

	s.setupRoutes()
	return s
}

// WithSuggester replaces the default word suggester.
func (s *Server) WithSuggester(sg *suggest.Suggester) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggester = sg
	return s
}

// WithPrefs attaches the preferences store.
func (s *Server) WithPrefs(store *prefs.Store) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = store
	return s
}

// WithStorage attaches the history and notes database.
func (s *Server) WithStorage(store *storage.Store) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
	return s
}

// WithGraphDefaults sets the domain and sample count used when a graph
// request leaves them out.
func (s *Server) WithGraphDefaults(d GraphDefaults) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Points <= 0 {
		d.Points = calc.DefaultGraphPoints
	}
	if d.Variable == "" {
		d.Variable = calc.GraphVariable
	}
	s.graph = d
	return s
}

// WithRateLimit limits each client IP to perMinute requests with bursts of
// burst. perMinute <= 0 turns limiting off.
func (s *Server) WithRateLimit(perMinute, burst int) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiter.Stop()
	s.limiter = NewRateLimiter(perMinute, burst)
	return s
}

// WithLogger sets the request logger.
func (s *Server) WithLogger(logger *log.Logger) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Calculator and suggestions
	s.router.HandleFunc("POST /v1/evaluate", s.handleEvaluate)
	s.router.HandleFunc("POST /v1/graph", s.handleGraph)
	s.router.HandleFunc("POST /v1/suggest", s.handleSuggest)

	// Preferences
	s.router.HandleFunc("GET /v1/preferences", s.handleGetPreferences)
	s.router.HandleFunc("PUT /v1/preferences", s.handlePutPreferences)

	// Notes
	s.router.HandleFunc("GET /v1/notes", s.handleListNotes)
	s.router.HandleFunc("POST /v1/notes", s.handleCreateNote)
	s.router.HandleFunc("GET /v1/notes/{id}", s.handleGetNote)
	s.router.HandleFunc("PUT /v1/notes/{id}", s.handleUpdateNote)
	s.router.HandleFunc("DELETE /v1/notes/{id}", s.handleDeleteNote)

	// History
	s.router.HandleFunc("GET /v1/history", s.handleHistory)
	s.router.HandleFunc("DELETE /v1/history", s.handleClearHistory)

	// Health and stats endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /stats", s.handleStats)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handlerLocked()
}

// ============================================================================
// CALCULATOR HANDLERS
// ============================================================================

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`

	// Record adds the calculation to history when storage is attached.
	Record bool `json:"record,omitempty"`
}

// EvaluateResponse is the reply of POST /v1/evaluate. Result is "Error"
// when the expression cannot be evaluated, with Error saying why.
type EvaluateResponse struct {
	Expression string   `json:"expression"`
	Canonical  string   `json:"canonical"`
	Result     string   `json:"result"`
	Value      *float64 `json:"value,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !checkExpression(w, req.Expression) {
		return
	}
	s.stats.evaluations.Add(1)

	resp := EvaluateResponse{
		Expression: req.Expression,
		Canonical:  calc.Normalize(req.Expression),
	}
	if v, err := calc.Eval(req.Expression); err != nil {
		resp.Result = calc.ErrorResult
		resp.Error = err.Error()
	} else {
		resp.Result = calc.FormatResult(v)
		resp.Value = &v
	}

	if req.Record {
		s.record(r.Context(), storage.Entry{
			Expression: resp.Expression,
			Canonical:  resp.Canonical,
			Result:     resp.Result,
			Mode:       storage.ModeEval,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GraphRequest is the body of POST /v1/graph. Nil bounds and a zero point
// count take the server defaults.
type GraphRequest struct {
	Expression string   `json:"expression"`
	Variable   string   `json:"variable,omitempty"`
	XMin       *float64 `json:"x_min,omitempty"`
	XMax       *float64 `json:"x_max,omitempty"`
	Points     int      `json:"points,omitempty"`
}

// GraphResponse is the reply of POST /v1/graph.
type GraphResponse struct {
	Expression string       `json:"expression"`
	Canonical  string       `json:"canonical"`
	Variable   string       `json:"variable"`
	XMin       float64      `json:"x_min"`
	XMax       float64      `json:"x_max"`
	Points     []calc.Point `json:"points"`
	Count      int          `json:"count"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !checkExpression(w, req.Expression) {
		return
	}

	s.mu.RLock()
	defaults := s.graph
	s.mu.RUnlock()

	if req.Variable == "" {
		req.Variable = defaults.Variable
	}
	if !calc.ValidVariable(req.Variable) {
		writeError(w, http.StatusBadRequest, errInvalidRequest, "variable must be a single letter")
		return
	}
	xMin, xMax := defaults.XMin, defaults.XMax
	if req.XMin != nil {
		xMin = *req.XMin
	}
	if req.XMax != nil {
		xMax = *req.XMax
	}
	switch {
	case req.Points < 0:
		writeError(w, http.StatusBadRequest, errInvalidRequest, "points must not be negative")
		return
	case req.Points > calc.MaxGraphPoints:
		writeError(w, http.StatusBadRequest, errInvalidRequest,
			fmt.Sprintf("points must be at most %d", calc.MaxGraphPoints))
		return
	case req.Points == 0:
		req.Points = defaults.Points
	}

	prog, err := calc.Compile(req.Expression, req.Variable)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, errInvalidRequest, err.Error())
		return
	}
	s.stats.graphs.Add(1)

	points := prog.Sample(xMin, xMax, req.Points)
	if points == nil {
		points = []calc.Point{}
	}
	writeJSON(w, http.StatusOK, GraphResponse{
		Expression: req.Expression,
		Canonical:  prog.Canonical(),
		Variable:   prog.Variable(),
		XMin:       xMin,
		XMax:       xMax,
		Points:     points,
		Count:      len(points),
	})
}

// SuggestRequest is the body of POST /v1/suggest.
type SuggestRequest struct {
	Text string `json:"text"`
	Max  int    `json:"max,omitempty"`
}

// SuggestResponse is the reply of POST /v1/suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Text) > MaxTextLength {
		writeError(w, http.StatusBadRequest, errInvalidRequest,
			fmt.Sprintf("text too long (max %d bytes)", MaxTextLength))
		return
	}
	if req.Max < 0 || req.Max > MaxSuggestions {
		writeError(w, http.StatusBadRequest, errInvalidRequest,
			fmt.Sprintf("max must be between 0 and %d", MaxSuggestions))
		return
	}
	s.stats.suggestions.Add(1)

	s.mu.RLock()
	sg := s.suggester
	s.mu.RUnlock()

	words := sg.Suggest(req.Text, req.Max)
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: words})
}

// ============================================================================
// PREFERENCES HANDLERS
// ============================================================================

// PreferencesResponse is the reply of GET and PUT /v1/preferences. The PIN
// hash never leaves the server; Locked says whether one is set.
type PreferencesResponse struct {
	Preferences prefs.Preferences `json:"preferences"`
	Locked      bool              `json:"locked"`
}

func (s *Server) prefsStore(w http.ResponseWriter) *prefs.Store {
	s.mu.RLock()
	store := s.prefs
	s.mu.RUnlock()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, errUnavailable, "preferences are not enabled")
	}
	return store
}

func preferencesResponse(store *prefs.Store) PreferencesResponse {
	p := store.Get()
	p.CaregiverLock = nil
	return PreferencesResponse{Preferences: p, Locked: store.Locked()}
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	store := s.prefsStore(w)
	if store == nil {
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse(store))
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	store := s.prefsStore(w)
	if store == nil {
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	err := store.PatchWithPin(r.Header.Get(PinHeader), body)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, preferencesResponse(store))
	case errors.Is(err, prefs.ErrLockedOut):
		w.Header().Set("Retry-After", strconv.Itoa(int(prefs.PinLockoutDuration.Seconds())))
		writeError(w, http.StatusLocked, errLocked, err.Error())
	case errors.Is(err, prefs.ErrPinRequired), errors.Is(err, prefs.ErrWrongPin):
		writeError(w, http.StatusLocked, errLocked, err.Error())
	case errors.Is(err, prefs.ErrInvalid):
		writeError(w, http.StatusBadRequest, errInvalidRequest, err.Error())
	default:
		log.Printf("PREFS_SAVE_FAILED | error=%v", err)
		writeError(w, http.StatusInternalServerError, errServer, "failed to save preferences")
	}
}

// ============================================================================
// NOTES AND HISTORY HANDLERS
// ============================================================================

// NoteRequest is the body of POST /v1/notes and PUT /v1/notes/{id}.
type NoteRequest struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

// NotesResponse is the reply of GET /v1/notes.
type NotesResponse struct {
	Notes []storage.Note `json:"notes"`
	Count int            `json:"count"`
}

// HistoryResponse is the reply of GET /v1/history.
type HistoryResponse struct {
	Entries []storage.Entry `json:"entries"`
	Count   int             `json:"count"`
}

func (s *Server) storage(w http.ResponseWriter) *storage.Store {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, errUnavailable, "storage is not enabled")
	}
	return store
}

// storageError maps storage errors to responses.
func storageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, errNotFound, err.Error())
	case errors.Is(err, storage.ErrEmptyNote), errors.Is(err, storage.ErrInvalidID):
		writeError(w, http.StatusBadRequest, errInvalidRequest, err.Error())
	case errors.Is(err, storage.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, errUnavailable, err.Error())
	default:
		log.Printf("STORAGE_ERROR | error=%v", err)
		writeError(w, http.StatusInternalServerError, errServer, "storage error")
	}
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	store := s.storage(w)
	if store == nil {
		return
	}
	notes, err := store.Notes(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}
	if notes == nil {
		notes = []storage.Note{}
	}
	writeJSON(w, http.StatusOK, NotesResponse{Notes: notes, Count: len(notes)})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	s.saveNote(w, r, "", http.StatusCreated)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	store := s.storage(w)
	if store == nil {
		return
	}
	id := r.PathValue("id")
	if _, err := store.Note(r.Context(), id); err != nil {
		storageError(w, err)
		return
	}
	s.saveNote(w, r, id, http.StatusOK)
}

func (s *Server) saveNote(w http.ResponseWriter, r *http.Request, id string, status int) {
	store := s.storage(w)
	if store == nil {
		return
	}
	var req NoteRequest
	if !s.decode(w, r, &req) {
		return
	}
	note, err := store.SaveNote(r.Context(), storage.Note{ID: id, Title: req.Title, Body: req.Body})
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, status, note)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	store := s.storage(w)
	if store == nil {
		return
	}
	note, err := store.Note(r.Context(), r.PathValue("id"))
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	store := s.storage(w)
	if store == nil {
		return
	}
	if err := store.DeleteNote(r.Context(), r.PathValue("id")); err != nil {
		storageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	store := s.storage(w)
	if store == nil {
		return
	}
	limit := storage.DefaultRecent
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			writeError(w, http.StatusBadRequest, errInvalidRequest, "limit must be between 1 and 1000")
			return
		}
		limit = n
	}
	entries, err := store.Recent(r.Context(), limit)
	if err != nil {
		storageError(w, err)
		return
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Entries: entries, Count: len(entries)})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	store := s.storage(w)
	if store == nil {
		return
	}
	removed, err := store.Clear(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

// record adds e to history when storage is attached. Failures are logged,
// never returned to the caller.
func (s *Server) record(ctx context.Context, e storage.Entry) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return
	}
	if _, err := store.Record(ctx, e); err != nil {
		log.Printf("HISTORY_RECORD_FAILED | error=%v", err)
	}
}

// ============================================================================
// HEALTH AND STATS HANDLERS
// ============================================================================

// HealthResponse is the reply of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Preferences string `json:"preferences"`
	Storage     string `json:"storage"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:      "ok",
		Version:     Version,
		Preferences: "not_configured",
		Storage:     "not_configured",
	}

	s.mu.RLock()
	prefsStore, store := s.prefs, s.store
	s.mu.RUnlock()

	if prefsStore != nil {
		health.Preferences = "ok"
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if _, err := store.Count(ctx); err == nil {
			health.Storage = "ok"
		} else {
			health.Storage = "unavailable"
			health.Status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, health)
}

// StatsResponse is the reply of GET /stats.
type StatsResponse struct {
	Evaluations   int64 `json:"evaluations"`
	Graphs        int64 `json:"graphs"`
	Suggestions   int64 `json:"suggestions"`
	BadRequests   int64 `json:"bad_requests"`
	HistoryCount  int   `json:"history_count"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Evaluations:   s.stats.evaluations.Load(),
		Graphs:        s.stats.graphs.Load(),
		Suggestions:   s.stats.suggestions.Load(),
		BadRequests:   s.stats.failures.Load(),
		UptimeSeconds: int64(s.stats.Uptime().Seconds()),
	}

	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store != nil {
		if n, err := store.Count(r.Context()); err == nil {
			resp.HistoryCount = n
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// Start listens on the server address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.handlerLocked(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	log.Printf("SERVER_START | addr=%s version=%s", ln.Addr(), Version)
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handlerLocked() http.Handler {
	return Chain(
		RecoveryMiddleware(),
		SecurityHeadersMiddleware(),
		CORSMiddleware(s.cors),
		LoggingMiddleware(s.logger),
		RateLimitMiddleware(s.limiter),
	)(s.router)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv, limiter := s.server, s.limiter
	s.mu.RUnlock()

	limiter.Stop()
	if srv == nil {
		return nil
	}

	log.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RESPONSE_ENCODE_FAILED | error=%v", err)
	}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes one error.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Message: message, Type: errType, Code: status}})
}

// readBody reads at most MaxRequestBodySize bytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errInvalidRequest,
				fmt.Sprintf("request body too large (max %d bytes)", MaxRequestBodySize))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, errInvalidRequest, "failed to read request body")
		return nil, false
	}
	return body, true
}

// decode reads a JSON body into v, rejecting unknown fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, ok := readBody(w, r)
	if !ok {
		s.stats.failures.Add(1)
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.stats.failures.Add(1)
		writeError(w, http.StatusBadRequest, errInvalidRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// checkExpression rejects empty and oversized expressions.
func checkExpression(w http.ResponseWriter, expr string) bool {
	switch {
	case expr == "":
		writeError(w, http.StatusBadRequest, errInvalidRequest, "expression is required")
		return false
	case len(expr) > MaxExpressionLength:
		writeError(w, http.StatusBadRequest, errInvalidRequest,
			fmt.Sprintf("expression too long (max %d bytes)", MaxExpressionLength))
		return false
	}
	return true
}
