package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/leaderboard"
	"github.com/robalobadob/hangman/internal/store"
)

const (
	defaultScoreLimit = 10
	maxScoreLimit     = 100
	maxBodyBytes      = 4 << 10
)

// errBadBody marks a missing or malformed JSON payload.
var errBadBody = errors.New("bad request body")

// mountAPI registers the REST endpoints under /api.
func (s *Server) mountAPI(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/", s.handleListGames)
		r.Post("/", s.handleCreateGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Post("/guesses", s.handleGuess)
			r.Post("/score", s.handleScore)
		})
	})
	r.Get("/scores", s.handleScores)
}

// gameRes is the JSON shape of a game.
type gameRes struct {
	ID string `json:"id,omitempty"`
	game.State
}

func newGameRes(id string, g *game.Game) gameRes {
	return gameRes{ID: id, State: g.State()}
}

// handleListGames returns all live identifiers.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	ids, err := s.games.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// handleCreateGame registers a new game and points Location at it.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	id, g, err := s.games.Create(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("gameId", id).Msg("game created")
	w.Header().Set("Location", "/api/games/"+id)
	writeJSON(w, http.StatusCreated, newGameRes(id, g))
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameRes(id, g))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.games.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("gameId", id).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

// guessReq is the payload for POST /api/games/{id}/guesses.
type guessReq struct {
	Guess *string `json:"guess"`
}

// handleGuess applies one guess.
// Check order: unknown id (404), finished game (409), payload (400).
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req guessReq
	bodyErr := decodeBody(r, &req)
	if bodyErr == nil && req.Guess == nil {
		bodyErr = fmt.Errorf("%w: guess is required", errBadBody)
	}

	var res gameRes
	err := s.games.Update(r.Context(), id, func(g *game.Game) error {
		if g.IsGameOver() {
			return game.ErrGameOver
		}
		if bodyErr != nil {
			return bodyErr
		}
		if _, err := g.Guess(*req.Guess); err != nil {
			return err
		}
		res = newGameRes(id, g)
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// scoreReq is the payload for POST /api/games/{id}/score.
type scoreReq struct {
	User *string `json:"user"`
}

// handleScore records the score of a won game and removes the game.
// Check order: unknown id (404), game not won (409), payload (400).
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req scoreReq
	bodyErr := decodeBody(r, &req)
	if bodyErr == nil && req.User == nil {
		bodyErr = fmt.Errorf("%w: user is required", errBadBody)
	}

	var stored leaderboard.Entry
	err := s.games.Finish(r.Context(), id, func(g *game.Game) error {
		if !g.IsGameWon() {
			return game.ErrNotWon
		}
		if bodyErr != nil {
			return bodyErr
		}
		user, err := leaderboard.ValidateUser(*req.User)
		if err != nil {
			return err
		}
		stored, err = s.scores.Record(r.Context(), leaderboard.Entry{User: user, Score: g.Tries()})
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.Info().Str("gameId", id).Str("user", stored.User).Int("score", stored.Score).Msg("score recorded")
	writeJSON(w, http.StatusCreated, stored)
}

// handleScores returns a page of the leaderboard.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultScoreLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if limit > maxScoreLimit {
		limit = maxScoreLimit
	}
	entries, err := s.scores.Query(r.Context(), offset, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ------------------------------- helpers -----------------------------------

// decodeBody parses a JSON object body into v. Unknown keys are ignored.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: missing body", errBadBody)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: missing body", errBadBody)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// queryInt reads a non-negative integer query parameter.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", leaderboard.ErrInvalidRange, key, raw)
	}
	return n, nil
}

// statusFor maps domain errors to an HTTP status and a short error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrNotWon):
		return http.StatusConflict, "game_not_won"
	case errors.Is(err, store.ErrFinishing):
		return http.StatusConflict, "game_finishing"
	case errors.Is(err, game.ErrInvalidGuess):
		return http.StatusBadRequest, "invalid_guess"
	case errors.Is(err, leaderboard.ErrInvalidUser):
		return http.StatusBadRequest, "invalid_user"
	case errors.Is(err, leaderboard.ErrInvalidRange):
		return http.StatusBadRequest, "invalid_range"
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, "bad_json"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError renders err as {"error": code}; 5xx errors are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": code})
}

// writeJSON encodes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
