package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
)

// handleTerminalWS runs the command interpreter over a WebSocket: the client
// sends CommandRequest frames and receives CommandResponse frames. State
// mutations go through the same path as the HTTP command endpoint.
func handleTerminalWS(logger *slog.Logger, store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Minute)
		defer cancel()

		for {
			_, msg, err := conn.Read(ctx)
			if err != nil {
				logger.Debug("terminal websocket closed", "session", sess.UserID, "error", err)
				return
			}

			var req CommandRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				logger.Debug("bad terminal frame", "session", sess.UserID, "error", err)
				continue
			}
			if req.Directory == "" {
				req.Directory = "~"
			}

			res := runCommand(r, logger, store, broker, sess, req)
			out, _ := json.Marshal(CommandResponse{
				Output:       res.Output,
				Error:        res.Err,
				NewDirectory: res.NewDir,
				Clear:        res.Clear,
			})
			if err := conn.Write(ctx, websocket.MessageText, out); err != nil {
				logger.Debug("terminal websocket write failed", "session", sess.UserID, "error", err)
				return
			}
		}
	}
}
