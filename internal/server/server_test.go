package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/blasherlabs/oshack/internal/database"
	"github.com/blasherlabs/oshack/internal/migrations"
	"github.com/blasherlabs/oshack/internal/oshack"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestDB(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if err := EnsureAdmin(ctx, testLogger(), db, "Blasher", "changeme"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return NewSQLiteStore(db), db
}

// testRouter wires the full route tree against an in-memory database.
func testRouter(t *testing.T) (*chi.Mux, *SQLiteStore) {
	t.Helper()
	store, db := setupTestDB(t)
	broker := NewBroker(nil)

	r := chi.NewRouter()
	addRoutes(r, testLogger(), store, broker, db, nil, "")
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// adminLogin authenticates against the seeded account and returns the cookies.
func adminLogin(t *testing.T, r http.Handler) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/admin/login",
		AdminLoginRequest{Username: "Blasher", Password: "changeme"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

// createSession persists a fresh session directly through the store.
func createSession(t *testing.T, store *SQLiteStore, username string, kind oshack.Kind) *oshack.Session {
	t.Helper()
	sess := oshack.NewSession(username, kind)
	if err := store.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}
