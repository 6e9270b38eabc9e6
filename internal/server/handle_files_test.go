package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/blasherlabs/oshack/internal/oshack"
	"github.com/blasherlabs/oshack/internal/simfs"
)

func TestViewFileReturnsContent(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/files/view",
		ViewFileRequest{Path: "/Documents/corporate/README.txt"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ViewFileResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Content == "" {
		t.Error("expected file content")
	}
}

func TestViewFileCompletesFileObjectives(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)
	advanceSession(t, store, sess, 4)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/files/view",
		ViewFileRequest{Path: "/Documents"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("open documents: expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/files/view",
		ViewFileRequest{Path: "/Documents/corporate/employees.txt"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("open employees: expected 200, got %d", w.Code)
	}

	got, err := store.GetSession(context.Background(), sess.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentObjective != 6 {
		t.Errorf("expected chain at 6 after both opens, got %d", got.CurrentObjective)
	}
	if !got.ProgressFlag("viewedEmployees") {
		t.Error("expected viewedEmployees flag")
	}
}

func TestViewEncryptedFileRequiresKey(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/files/view",
		ViewFileRequest{Path: "/Documents/keys/master.key"}, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without key, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/files/view",
		ViewFileRequest{Path: "/Documents/keys/master.key", Key: simfs.MasterKey}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d: %s", w.Code, w.Body.String())
	}

	var resp ViewFileResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if !strings.Contains(resp.Content, "Admin2025!") {
		t.Errorf("decrypted content missing credentials: %q", resp.Content)
	}

	got, err := store.GetSession(context.Background(), sess.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.ProgressFlag("hasDecryptionKey") {
		t.Error("expected hasDecryptionKey flag")
	}
}

func TestViewFileNotFound(t *testing.T) {
	r, store := testRouter(t)
	sess := createSession(t, store, "alice", oshack.KindScenario)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sess.UserID+"/files/view",
		ViewFileRequest{Path: "/no/such/file"}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestFileTreeCatalog(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/catalog/files", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var tree []*simfs.Node
	json.NewDecoder(w.Body).Decode(&tree)
	if len(tree) == 0 {
		t.Fatal("expected a non-empty tree")
	}
}
