// internal/httpserver/web.go
//
// Server-rendered game page.
// Exposes two routes at "/":
//   - GET  / → show the current game, or the splash screen with leaderboard
//   - POST / → form actions: play, guess, high-score, exit
//
// The browser is bound to a registry entry through the session cookie.
// A cookie that no longer names a live game is cleared. Games are removed
// from the registry when the player exits or saves a high score.

package httpserver

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/leaderboard"
	"github.com/robalobadob/hangman/internal/store"
)

// splashSize is how many leaderboard rows the splash screen shows.
const splashSize = 10

// pageData feeds templates/index.html.
type pageData struct {
	MaxTries    int
	Leaderboard []leaderboard.Entry
	Game        *gameView
}

// gameView is the in-game part of the page.
type gameView struct {
	game.State
	InvalidGuess bool
}

// handlePage shows the session's game, or the splash screen.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessions.Read(r)
	if !ok {
		s.renderSplash(w, r)
		return
	}
	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		// Either the session is stale or the game expired.
		s.sessions.Clear(w)
		s.renderSplash(w, r)
		return
	}
	s.render(w, r, pageData{Game: &gameView{State: g.State()}})
}

// handlePageAction handles the page's forms.
//   - Any POST without a live game starts one ("play").
//   - "guess" applies guess-text, flagging invalid input.
//   - "high-score" saves the name of a won game, then ends it like "exit".
//   - "exit" removes the game and the session.
func (s *Server) handlePageAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_form"})
		return
	}
	ctx := r.Context()

	id, ok := s.sessions.Read(r)
	var g *game.Game
	if ok {
		if live, err := s.games.Get(ctx, id); err == nil {
			g = live
		}
	}
	if g == nil {
		var err error
		id, g, err = s.games.Create(ctx)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.sessions.Write(w, id); err != nil {
			writeError(w, r, err)
			return
		}
		log.Info().Str("gameId", id).Msg("web game started")
	}

	view := &gameView{State: g.State()}
	switch {
	case r.PostForm.Has("guess"):
		input := r.PostForm.Get("guess-text")
		err := s.games.Update(ctx, id, func(live *game.Game) error {
			if _, err := live.Guess(input); err != nil {
				view.InvalidGuess = true
			}
			view.State = live.State()
			return nil
		})
		if err != nil {
			s.endSession(w, r, err)
			return
		}

	case r.PostForm.Has("high-score"), r.PostForm.Has("exit"):
		saveScore := r.PostForm.Has("high-score")
		user := leaderboard.NormalizeUser(r.PostForm.Get("user"))
		err := s.games.Finish(ctx, id, func(live *game.Game) error {
			if !saveScore || !live.IsGameWon() || user == "" {
				return nil
			}
			_, err := s.scores.Record(ctx, leaderboard.Entry{User: user, Score: live.Tries()})
			return err
		})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			writeError(w, r, err)
			return
		}
		s.sessions.Clear(w)
		s.renderSplash(w, r)
		return
	}

	s.render(w, r, pageData{Game: view})
}

// endSession clears a session whose game vanished mid-request.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.sessions.Clear(w)
		s.renderSplash(w, r)
		return
	}
	writeError(w, r, err)
}

// renderSplash shows the start screen with the top of the leaderboard.
func (s *Server) renderSplash(w http.ResponseWriter, r *http.Request) {
	top, err := s.scores.Query(r.Context(), 0, splashSize)
	if err != nil {
		log.Warn().Err(err).Msg("load leaderboard")
		top = nil
	}
	s.render(w, r, pageData{Leaderboard: top})
}

// render buffers the page; a template error becomes a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	data.MaxTries = game.MaximumTries
	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "index.html", data); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
