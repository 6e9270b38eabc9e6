package server

import (
	"log/slog"
	"net/http"

	"github.com/blasherlabs/oshack/internal/oshack"
	"github.com/blasherlabs/oshack/internal/terminal"
)

type CommandRequest struct {
	Command   string `json:"command"`
	Directory string `json:"directory"`
}

type CommandResponse struct {
	Output       string `json:"output"`
	Error        bool   `json:"error,omitempty"`
	NewDirectory string `json:"newDirectory,omitempty"`
	Clear        bool   `json:"clear,omitempty"`
}

func handleCommand(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}

		var req CommandRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Directory == "" {
			req.Directory = "~"
		}

		res := runCommand(r, logger, store, broker, sess, req)
		writeJSON(w, http.StatusOK, CommandResponse{
			Output:       res.Output,
			Error:        res.Err,
			NewDirectory: res.NewDir,
			Clear:        res.Clear,
		})
	}
}

// runCommand executes one terminal line against the session, persists the
// mutated state, and fans out notifications. The in-memory result is
// returned even when the persistence write fails: the inconsistency window
// is accepted and the failure only logged, matching the optimistic write
// policy of the rest of the system.
func runCommand(r *http.Request, logger *slog.Logger, store Store, broker *Broker, sess *oshack.Session, req CommandRequest) terminal.Result {
	res, trs := terminal.Execute(req.Command, req.Directory, sess)

	sess.Touch()
	if err := store.SaveSession(r.Context(), sess); err != nil {
		logger.Error("failed to persist session after command",
			"session", sess.UserID, "error", err)
	}
	publishTransitions(broker, sess.UserID, trs)
	return res
}
