// internal/httpserver/server.go
//
// HTTP server wiring for the Hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/health", "/debug/phrases".
//   - REST API under /api (games, guesses, scores).
//   - Web page at "/" bound to a signed session cookie.
//
// Notes:
//   - The game registry and leaderboard are injected; the server holds no
//     package-level state.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/leaderboard"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Config holds server settings.
type Config struct {
	ClientOrigin   string        // CORS origin; defaults to http://localhost:5173
	SessionSecret  string        // signs the web session cookie
	SessionCookie  string        // cookie name; defaults to "hangman"
	SecureCookies  bool          // set Secure and SameSite=None on cookies
	HandlerTimeout time.Duration // per-request bound; defaults to 10s
}

// Server bundles router, game registry and leaderboard.
type Server struct {
	r        *chi.Mux
	games    store.Store
	scores   leaderboard.Store
	sessions *Sessions
	page     *template.Template
}

// New constructs a Server, installs middleware, and registers routes.
func New(games store.Store, scores leaderboard.Store, cfg Config) (*Server, error) {
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 10 * time.Second
	}
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	sessions, err := NewSessions(cfg.SessionSecret, cfg.SessionCookie, cfg.SecureCookies)
	if err != nil {
		return nil, err
	}
	page, err := assets.IndexTemplate()
	if err != nil {
		return nil, err
	}

	s := &Server{r: chi.NewRouter(), games: games, scores: scores, sessions: sessions, page: page}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog())                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.HandlerTimeout)) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/phrases", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"phrases": words.Count()})
	})

	// Web page (session cookie)
	s.r.Get("/", s.handlePage)
	s.r.Post("/", s.handlePageAction)

	// REST API
	s.r.Route("/api", s.mountAPI)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Location")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
