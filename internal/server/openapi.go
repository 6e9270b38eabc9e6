package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/blasherlabs/oshack/internal/oshack"
	"github.com/blasherlabs/oshack/internal/simfs"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "OS-Hack API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the OS-Hack training simulation.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(map[string]struct {
		Status string `json:"status"`
	}{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealthz)

	// GET /api/catalog/objectives
	getObjectives, _ := r.NewOperationContext(http.MethodGet, "/api/catalog/objectives")
	getObjectives.SetSummary("List objectives")
	getObjectives.SetDescription("Returns the full scenario objective catalog.")
	getObjectives.AddRespStructure([]oshack.Objective{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getObjectives)

	// GET /api/catalog/psychogames
	getGames, _ := r.NewOperationContext(http.MethodGet, "/api/catalog/psychogames")
	getGames.SetSummary("List psychotest games")
	getGames.SetDescription("Returns the psychotest mini-game catalog.")
	getGames.AddRespStructure([]oshack.PsychoGame{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getGames)

	// GET /api/catalog/files
	getFiles, _ := r.NewOperationContext(http.MethodGet, "/api/catalog/files")
	getFiles.SetSummary("File tree")
	getFiles.SetDescription("Returns the simulated filesystem tree.")
	getFiles.AddRespStructure([]simfs.Node{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getFiles)

	// POST /api/sessions/attach
	postAttach, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/attach")
	postAttach.SetSummary("Attach to a session")
	postAttach.SetDescription("Resolves a username to its session so a returning client can reattach.")
	postAttach.AddReqStructure(AttachRequest{})
	postAttach.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	postAttach.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postAttach)

	// GET /api/sessions/{sessionID}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}")
	getSession.SetSummary("Get session")
	getSession.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// POST /api/sessions/{sessionID}/command
	postCommand, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/command")
	postCommand.SetSummary("Run a terminal command")
	postCommand.SetDescription("Executes one terminal line and returns its output. Objective completions are pushed over the event stream.")
	postCommand.AddReqStructure(CommandRequest{})
	postCommand.AddRespStructure(CommandResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCommand.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postCommand)

	// GET /api/sessions/{sessionID}/terminal/ws
	getTerminalWS, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/terminal/ws")
	getTerminalWS.SetSummary("Terminal over WebSocket")
	getTerminalWS.SetDescription("Upgrades to a WebSocket carrying terminal command frames.")
	getTerminalWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getTerminalWS)

	// POST /api/sessions/{sessionID}/files/view
	postView, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/files/view")
	postView.SetSummary("Open a file")
	postView.SetDescription("Records a file-manager open and returns the node's contents. Encrypted files require the key.")
	postView.AddReqStructure(ViewFileRequest{})
	postView.AddRespStructure(ViewFileResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postView.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postView)

	// POST /api/sessions/{sessionID}/minigames/{gameID}/complete
	postMiniGame, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/minigames/{gameID}/complete")
	postMiniGame.SetSummary("Submit a scenario mini-game score")
	postMiniGame.AddReqStructure(MiniGameResult{})
	postMiniGame.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	postMiniGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postMiniGame)

	// POST /api/sessions/{sessionID}/psychogames/{gameID}/complete
	postPsycho, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/psychogames/{gameID}/complete")
	postPsycho.SetSummary("Submit a psychotest score")
	postPsycho.SetDescription("Records a score for one game of the battery. Re-submissions overwrite the previous score.")
	postPsycho.AddReqStructure(MiniGameResult{})
	postPsycho.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	postPsycho.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postPsycho.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postPsycho)

	// POST /api/sessions/{sessionID}/notifications/ack
	postAck, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/notifications/ack")
	postAck.SetSummary("Acknowledge owner message")
	postAck.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postAck)

	// GET /api/sessions/{sessionID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of the session's notifications.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticates the panel account and sets the admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// GET /api/admin/sessions
	listSessions, _ := r.NewOperationContext(http.MethodGet, "/api/admin/sessions")
	listSessions.SetSummary("List sessions")
	listSessions.SetDescription("Fleet view: every session with a derived online flag. Requires admin_session cookie.")
	listSessions.AddRespStructure([]SessionSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	listSessions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listSessions)

	// POST /api/admin/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/admin/sessions")
	createSession.SetSummary("Create session")
	createSession.AddReqStructure(CreateSessionRequest{})
	createSession.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createSession)

	// POST /api/admin/sessions/bulk
	bulkCreate, _ := r.NewOperationContext(http.MethodPost, "/api/admin/sessions/bulk")
	bulkCreate.SetSummary("Bulk create sessions")
	bulkCreate.SetDescription("Creates 1 to 50 sessions named prefix_01..prefix_NN in one transaction.")
	bulkCreate.AddReqStructure(BulkCreateRequest{})
	bulkCreate.AddRespStructure([]oshack.Session{}, openapi.WithHTTPStatus(http.StatusCreated))
	bulkCreate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	bulkCreate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(bulkCreate)

	// POST /api/admin/sessions/{sessionID}/skip
	skipObjective, _ := r.NewOperationContext(http.MethodPost, "/api/admin/sessions/{sessionID}/skip")
	skipObjective.SetSummary("Skip current objective")
	skipObjective.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	skipObjective.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(skipObjective)

	// POST /api/admin/sessions/{sessionID}/message
	sendMessage, _ := r.NewOperationContext(http.MethodPost, "/api/admin/sessions/{sessionID}/message")
	sendMessage.SetSummary("Message a participant")
	sendMessage.AddReqStructure(AdminMessageRequest{})
	sendMessage.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	sendMessage.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(sendMessage)

	// POST /api/admin/sessions/{sessionID}/reset
	resetSession, _ := r.NewOperationContext(http.MethodPost, "/api/admin/sessions/{sessionID}/reset")
	resetSession.SetSummary("Reset session")
	resetSession.SetDescription("Restores the session to its initial state while keeping its identity.")
	resetSession.AddRespStructure(oshack.Session{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(resetSession)

	// DELETE /api/admin/sessions/{sessionID}
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/sessions/{sessionID}")
	deleteSession.SetSummary("Delete session")
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteSession)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
