package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blasherlabs/oshack/internal/oshack"
)

// presenceWindow is how recently a session must have been active to be shown
// as online in the fleet view.
const presenceWindow = 30 * time.Second

// Bulk creation bounds.
const (
	bulkMin = 1
	bulkMax = 50
)

// SessionSummary is the fleet-view row: the full document minus nothing, plus
// a derived online flag so the admin client does not have to do clock math.
type SessionSummary struct {
	*oshack.Session
	Online bool `json:"online"`
}

type CreateSessionRequest struct {
	Username    string      `json:"username"`
	SessionType oshack.Kind `json:"sessionType"`
}

type BulkCreateRequest struct {
	Prefix      string      `json:"prefix"`
	Count       int         `json:"count"`
	SessionType oshack.Kind `json:"sessionType"`
}

type AdminMessageRequest struct {
	Message string `json:"message"`
}

func validKind(k oshack.Kind) bool {
	return k == oshack.KindScenario || k == oshack.KindPsychoTest
}

func handleAdminListSessions(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := store.ListSessions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		cutoff := time.Now().Add(-presenceWindow).UnixMilli()
		out := make([]SessionSummary, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, SessionSummary{
				Session: s,
				Online:  s.LastActivity >= cutoff,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleAdminCreateSession(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			writeError(w, http.StatusBadRequest, "username is required")
			return
		}
		if !validKind(req.SessionType) {
			writeError(w, http.StatusBadRequest, "sessionType must be scenario or psychotest")
			return
		}

		sess := oshack.NewSession(req.Username, req.SessionType)
		if err := store.CreateSession(r.Context(), sess); err != nil {
			logger.Error("failed to create session", "username", req.Username, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, sess)
	}
}

// handleAdminBulkCreate creates count sessions named prefix_01..prefix_NN in
// one transaction. Bounds are checked before anything is written.
func handleAdminBulkCreate(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkCreateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Prefix = strings.TrimSpace(req.Prefix)
		if req.Prefix == "" {
			writeError(w, http.StatusBadRequest, "prefix is required")
			return
		}
		if req.Count < bulkMin || req.Count > bulkMax {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("count must be between %d and %d", bulkMin, bulkMax))
			return
		}
		if !validKind(req.SessionType) {
			writeError(w, http.StatusBadRequest, "sessionType must be scenario or psychotest")
			return
		}

		sessions := make([]*oshack.Session, 0, req.Count)
		for i := 1; i <= req.Count; i++ {
			name := fmt.Sprintf("%s_%02d", req.Prefix, i)
			sessions = append(sessions, oshack.NewSession(name, req.SessionType))
		}
		if err := store.CreateSessions(r.Context(), sessions); err != nil {
			logger.Error("bulk create failed", "prefix", req.Prefix, "count", req.Count, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		logger.Info("bulk created sessions", "prefix", req.Prefix, "count", req.Count)
		writeJSON(w, http.StatusCreated, sessions)
	}
}

// handleAdminSkipObjective force-completes the session's current objective,
// running the same transition as an organic completion.
func handleAdminSkipObjective(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		if sess.IsCompleted {
			writeJSON(w, http.StatusOK, sess)
			return
		}
		tr, err := sess.CompleteObjective(sess.CurrentObjective)
		if errors.Is(err, oshack.ErrWrongKind) {
			writeError(w, http.StatusConflict, "not a scenario session")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Error("failed to persist skip", "session", sess.UserID, "error", err)
		}
		if !tr.AlreadyDone {
			publishTransitions(broker, sess.UserID, []oshack.Transition{tr})
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

func handleAdminSkipPsychoGame(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		gameID := chi.URLParam(r, "gameID")
		tr, err := sess.SkipPsychoGame(gameID)
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
			logger.Error("failed to persist psycho skip", "session", sess.UserID, "error", err)
		}
		publishPsychoTransition(broker, sess.UserID, tr)
		writeJSON(w, http.StatusOK, sess)
	}
}

// handleAdminSendMessage sets the one-shot owner notification on the document
// and pushes it live to any connected client.
func handleAdminSendMessage(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		var req AdminMessageRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Message = strings.TrimSpace(req.Message)
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		sess.OwnerNotification = &oshack.OwnerNotification{
			Message:   req.Message,
			Timestamp: time.Now().UnixMilli(),
		}
		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Error("failed to persist owner message", "session", sess.UserID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		n := oshack.NewNotification(oshack.NotifyOwner, "Message from control", req.Message, 0)
		broker.Publish(sess.UserID, Event{Type: EventOwnerMessage, Notification: &n})
		writeJSON(w, http.StatusOK, sess)
	}
}

func handleAdminResetSession(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		sess.Reset()
		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Error("failed to persist reset", "session", sess.UserID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		broker.Publish(sess.UserID, Event{Type: EventSessionReset})
		writeJSON(w, http.StatusOK, sess)
	}
}

func handleAdminDeleteSession(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		err := store.DeleteSession(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		if err != nil {
			logger.Error("failed to delete session", "session", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		broker.Publish(id, Event{Type: EventSessionDeleted})
		w.WriteHeader(http.StatusNoContent)
	}
}
