package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blasherlabs/oshack/internal/oshack"
)

// Attach retry knobs. Freshly bulk-created sessions may not be visible to
// the first lookup, so attach polls a few times before giving up.
var (
	attachAttempts   = 3
	attachRetryDelay = 800 * time.Millisecond
)

type AttachRequest struct {
	Username string `json:"username"`
}

// handleAttach resolves a username to its session so a returning client can
// reattach. A distinguished "session not found" error lets the UI show a
// specific message instead of a generic failure.
func handleAttach(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AttachRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}

		var sess *oshack.Session
		var err error
		for attempt := 1; attempt <= attachAttempts; attempt++ {
			sess, err = store.FindSessionByUsername(r.Context(), req.Username)
			if err == nil {
				break
			}
			if !errors.Is(err, ErrNotFound) || attempt == attachAttempts {
				break
			}
			logger.Debug("session not visible yet, retrying",
				"username", req.Username, "attempt", attempt)
			select {
			case <-r.Context().Done():
				return
			case <-time.After(attachRetryDelay):
			}
		}
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			logger.Error("attach lookup failed", "username", req.Username, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		sess.Touch()
		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Warn("failed to update last activity", "session", sess.UserID, "error", err)
		}

		writeJSON(w, http.StatusOK, sess)
	}
}

func handleGetSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// handleAckOwnerNotification clears the one-shot admin message after the
// player's client has displayed it.
func handleAckOwnerNotification(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		if sess.OwnerNotification == nil {
			writeJSON(w, http.StatusOK, sess)
			return
		}
		sess.OwnerNotification = nil
		sess.Touch()
		if err := store.SaveSession(r.Context(), sess); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// loadSession resolves {sessionID} from the URL, writing the error response
// itself when the session is missing.
func loadSession(w http.ResponseWriter, r *http.Request, store Store) (*oshack.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := store.GetSession(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return sess, true
}
