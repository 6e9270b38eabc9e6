package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/blasherlabs/oshack/internal/oshack"
)

func TestAttachByUsername(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/attach",
		AttachRequest{Username: "alice"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got oshack.Session
	json.NewDecoder(w.Body).Decode(&got)
	if got.UserID != sess.UserID {
		t.Errorf("expected session %q, got %q", sess.UserID, got.UserID)
	}
}

func TestAttachUnknownUsername(t *testing.T) {
	// Shorten the retry loop so the not-found path stays fast.
	oldDelay := attachRetryDelay
	attachRetryDelay = time.Millisecond
	defer func() { attachRetryDelay = oldDelay }()

	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/attach",
		AttachRequest{Username: "ghost"}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var resp ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Error != "session not found" {
		t.Errorf("expected the distinguished message, got %q", resp.Error)
	}
}

func TestAttachRejectsEmptyUsername(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/attach",
		AttachRequest{Username: "   "}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetSession(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)

	w := doJSON(t, r, http.MethodGet, "/api/sessions/"+sess.UserID+"/", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/sessions/user_missing/", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing session, got %d", w.Code)
	}
}

func TestAckOwnerNotification(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)
	sess.OwnerNotification = &oshack.OwnerNotification{Message: "hi", Timestamp: 1}
	if err := store.SaveSession(context.Background(), sess); err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/notifications/ack", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got, err := store.GetSession(context.Background(), sess.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if got.OwnerNotification != nil {
		t.Errorf("notification not cleared: %+v", got.OwnerNotification)
	}

	// Acking again is a no-op.
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/notifications/ack", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat ack, got %d", w.Code)
	}
}
