package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blasherlabs/oshack/internal/minigames"
	"github.com/blasherlabs/oshack/internal/oshack"
)

type MiniGameResult struct {
	Score int `json:"score"`
}

// handleCompleteMiniGame scores a scenario mini-game. A passing submission
// completes the objective the game is bound to, but only while that objective
// is the current one.
func handleCompleteMiniGame(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		gameID := chi.URLParam(r, "gameID")
		objectiveID, ok := minigames.ObjectiveFor(gameID)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown mini-game")
			return
		}

		var req MiniGameResult
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		score := oshack.ClampScore(req.Score)
		sess.SetProgress(fmt.Sprintf("minigame:%s", gameID), score)

		var trs []oshack.Transition
		if sess.CurrentObjective == objectiveID {
			tr, err := sess.CompleteObjective(objectiveID)
			if err != nil {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			if !tr.AlreadyDone {
				trs = append(trs, tr)
			}
		}

		sess.Touch()
		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Error("failed to persist session after mini-game",
				"session", sess.UserID, "game", gameID, "error", err)
		}
		publishTransitions(broker, sess.UserID, trs)

		writeJSON(w, http.StatusOK, sess)
	}
}

// handleCompletePsychoGame records a psychotest score. Re-submissions
// overwrite the previous score for the same game.
func handleCompletePsychoGame(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		gameID := chi.URLParam(r, "gameID")

		var req MiniGameResult
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tr, err := sess.CompletePsychoGame(gameID, req.Score)
		if errors.Is(err, oshack.ErrUnknownGame) {
			writeError(w, http.StatusNotFound, "unknown psycho game")
			return
		}
		if errors.Is(err, oshack.ErrWrongKind) {
			writeError(w, http.StatusConflict, "not a psychotest session")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Error("failed to persist session after psycho game",
				"session", sess.UserID, "game", gameID, "error", err)
		}
		publishPsychoTransition(broker, sess.UserID, tr)

		writeJSON(w, http.StatusOK, sess)
	}
}
