package server

import (
	"fmt"
	"net/http"
	"time"
)

// handleEvents streams a player's own notification events over SSE.
func handleEvents(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := loadSession(w, r, store)
		if !ok {
			return
		}
		streamEvents(w, r, broker, sess.UserID)
	}
}

// handleAdminEvents streams every event in the fleet. Mounted behind the
// admin auth middleware.
func handleAdminEvents(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streamEvents(w, r, broker, AdminTopic)
	}
}

func streamEvents(w http.ResponseWriter, r *http.Request, broker *Broker, topic string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	flusher.Flush()

	ch := broker.Subscribe(topic)
	defer broker.Unsubscribe(topic, ch)

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-ch:
			fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
			flusher.Flush()
		case <-ping.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
