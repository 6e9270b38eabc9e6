package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/blasherlabs/oshack/internal/oshack"
	"github.com/blasherlabs/oshack/internal/simfs"
)

type ViewFileRequest struct {
	Path string `json:"path"`
	// Key optionally decrypts an encrypted file.
	Key string `json:"key,omitempty"`
}

type ViewFileResponse struct {
	Node    *simfs.Node `json:"node"`
	Content string      `json:"content,omitempty"`
}

// File-manager paths that complete file-type objectives.
const (
	pathDocuments = "/Documents"
	pathEmployees = "/Documents/corporate/employees.txt"
	pathMasterKey = "/Documents/keys/master.key"
)

// handleViewFile records a file-manager open: it resolves the node, applies
// any file-objective side effects, and returns the contents.
func handleViewFile(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}

		var req ViewFileRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Path = strings.TrimSpace(req.Path)
		if req.Path == "" {
			writeError(w, http.StatusBadRequest, "path is required")
			return
		}

		node := simfs.FindByPath(req.Path)
		if node == nil {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}

		var trs []oshack.Transition
		complete := func(id int) {
			if sess.CurrentObjective != id {
				return
			}
			tr, err := sess.CompleteObjective(id)
			if err == nil && !tr.AlreadyDone {
				trs = append(trs, tr)
			}
		}

		switch req.Path {
		case pathDocuments:
			complete(4)
		case pathEmployees:
			sess.SetProgress("viewedEmployees", true)
			complete(5)
		case pathMasterKey:
			sess.SetProgress("hasDecryptionKey", true)
			complete(6)
		}

		content := node.Content
		if node.Encrypted {
			plain, ok := simfs.Decrypt(req.Key)
			if !ok {
				writeError(w, http.StatusForbidden, "file is encrypted")
				return
			}
			content = plain
		}

		sess.Touch()
		if err := store.SaveSession(r.Context(), sess); err != nil {
			logger.Error("failed to persist session after file view",
				"session", sess.UserID, "error", err)
		}
		publishTransitions(broker, sess.UserID, trs)

		writeJSON(w, http.StatusOK, ViewFileResponse{Node: node, Content: content})
	}
}
