// internal/httpserver/server.go
//
// HTTP wiring for the Pangram backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): create a game, dispatch events, read
//     snapshots and round stats. Both the UI and remote agents use the same
//     event endpoint; neither gets anything the other doesn't.
//   - Benchmark result submission + leaderboard, persisted in SQLite.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Submission events return the *settled* snapshot: the handler waits
//     (bounded) for the in-flight dictionary check before responding, so
//     callers see the outcome rather than a transient "validating".

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pangramlab/pangram/internal/dict"
	"github.com/pangramlab/pangram/internal/machine"
	"github.com/pangramlab/pangram/internal/puzzle"
	"github.com/pangramlab/pangram/internal/store"
)

// settleTimeout bounds how long an event request waits for an in-flight
// dictionary check before returning the validating snapshot as-is.
const settleTimeout = 5 * time.Second

// Server bundles router, machine registry, oracle, and DB handle.
type Server struct {
	r      *chi.Mux
	reg    store.Registry
	db     *sql.DB
	oracle dict.Oracle
	words  *dict.WordList // for /debug/words; may be nil with a pure-remote oracle
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg store.Registry, db *sql.DB, oracle dict.Oracle, words *dict.WordList) *Server {
	s := &Server{r: chi.NewRouter(), reg: reg, db: db, oracle: oracle, words: words}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pangram","endpoints":["/health","POST /game/new","POST /game/event","GET /game/{id}","POST /results","GET /leaderboard","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if s.words != nil {
			n = s.words.Stats()
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"words": n, "puzzles": puzzle.Size()})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/new", s.handleNewGame)
	s.r.With(s.withOptionalAuth()).Post("/game/event", s.handleEvent)
	s.r.Get("/game/{id}", s.handleSnapshot)
	s.r.Get("/game/{id}/stats", s.handleStats)

	// Benchmark results + leaderboard
	s.r.With(s.withOptionalAuth()).Post("/results", s.handlePostResult)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// Accounts
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	PuzzleIndex *int `json:"puzzleIndex"` // optional; defaults to 0
	Daily       bool `json:"daily"`       // pick today's puzzle instead
}
type newGameRes struct {
	GameID   string           `json:"gameId"`
	Snapshot machine.Snapshot `json:"snapshot"`
}

// handleNewGame creates a new machine and registers it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	idx := 0
	switch {
	case req.Daily:
		idx = puzzle.DailyIndex(time.Now(), getEnv("DAILY_SALT", "pangram"))
	case req.PuzzleIndex != nil:
		idx = *req.PuzzleIndex
	}

	m := machine.New(s.oracle, idx)
	if err := s.reg.Save(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", m.ID()).Int("puzzle", idx).Msg("new game")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: m.ID(), Snapshot: m.Snapshot()})
}

// eventReq/Res payloads for POST /game/event.
type eventReq struct {
	GameID string        `json:"gameId"`
	Event  machine.Event `json:"event"`
}
type eventRes struct {
	Snapshot machine.Snapshot `json:"snapshot"`
}

// handleEvent dispatches one event and returns the settled snapshot.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	m, err := s.reg.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	m.Dispatch(req.Event)

	ctx, cancel := context.WithTimeout(r.Context(), settleTimeout)
	defer cancel()
	_ = json.NewEncoder(w).Encode(eventRes{Snapshot: m.AwaitReady(ctx)})
}

// handleSnapshot returns the current observable state without dispatching.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	m, err := s.reg.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(m.Snapshot())
}

// handleStats returns aggregate stats for the current round.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	m, err := s.reg.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(m.Stats())
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
