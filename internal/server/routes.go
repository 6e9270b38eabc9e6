package server

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, broker *Broker, db *sql.DB, rdb *redis.Client, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("OS-Hack API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db, rdb))

	// Reference catalogs. Static, no auth.
	r.Get("/api/catalog/objectives", handleListObjectives())
	r.Get("/api/catalog/psychogames", handleListPsychoGames())
	r.Get("/api/catalog/files", handleFileTree())

	// Player routes. The session id is the credential: it is opaque and
	// only ever handed out by the admin panel or the attach endpoint.
	r.Post("/api/sessions/attach", handleAttach(logger, store))
	r.Route("/api/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", handleGetSession(store))
		r.Post("/command", handleCommand(logger, store, broker))
		r.Get("/terminal/ws", handleTerminalWS(logger, store, broker))
		r.Post("/files/view", handleViewFile(logger, store, broker))
		r.Post("/minigames/{gameID}/complete", handleCompleteMiniGame(logger, store, broker))
		r.Post("/psychogames/{gameID}/complete", handleCompletePsychoGame(logger, store, broker))
		r.Post("/notifications/ack", handleAckOwnerNotification(store))
		r.Get("/events", handleEvents(store, broker))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))

	// Admin fleet control.
	r.Route("/api/admin/sessions", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))
		r.Get("/", handleAdminListSessions(store))
		r.Post("/", handleAdminCreateSession(logger, store))
		r.Post("/bulk", handleAdminBulkCreate(logger, store))
		r.Get("/events", handleAdminEvents(broker))
		r.Post("/{sessionID}/skip", handleAdminSkipObjective(logger, store, broker))
		r.Post("/{sessionID}/psychogames/{gameID}/skip", handleAdminSkipPsychoGame(logger, store, broker))
		r.Post("/{sessionID}/message", handleAdminSendMessage(logger, store, broker))
		r.Post("/{sessionID}/reset", handleAdminResetSession(logger, store, broker))
		r.Delete("/{sessionID}", handleAdminDeleteSession(logger, store, broker))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
