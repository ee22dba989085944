package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decred/slog"
	"github.com/gorilla/mux"

	"github.com/pokermesa/mesa/pkg/poker"
)

// apiError is the JSON body of every non-2xx response
type apiError struct {
	Error string `json:"error"`
}

type joinRequest struct {
	Name  string `json:"name"`
	Chips int64  `json:"chips"`
}

type joinResponse struct {
	PlayerID string `json:"playerId"`
	Seated   bool   `json:"seated"`
}

type actionRequest struct {
	PlayerID string       `json:"playerId"`
	Action   poker.Action `json:"action"`
}

type actionResponse struct {
	Result *poker.HandResult `json:"result,omitempty"`
}

type leaveRequest struct {
	PlayerID string `json:"playerId"`
}

type leaveResponse struct {
	Chips int64 `json:"chips"`
}

// Handler serves the table API over HTTP and upgrades websocket
// subscriptions.
type Handler struct {
	log     slog.Logger
	manager *TableManager
	router  *mux.Router
}

// NewHandler builds the HTTP handler for a table manager
func NewHandler(manager *TableManager, log slog.Logger) *Handler {
	if log == nil {
		log = slog.Disabled
	}
	h := &Handler{log: log, manager: manager}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tables", h.listTables).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/state", h.tableState).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/join", h.join).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/start", h.start).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/action", h.action).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/leave", h.leave).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id}/ws", h.subscribe).Methods(http.MethodGet)
	h.router = r

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.manager.ListTables())
}

func (h *Handler) tableState(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]
	viewerID := r.URL.Query().Get("player")

	snap, err := h.manager.Snapshot(tableID, viewerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	player, seated, err := h.manager.Join(mux.Vars(r)["id"], req.Name, req.Chips)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, joinResponse{PlayerID: player.ID, Seated: seated})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.StartHand(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	result, err := h.manager.SubmitAction(mux.Vars(r)["id"], req.PlayerID, req.Action)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, actionResponse{Result: result})
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	chips, err := h.manager.Leave(mux.Vars(r)["id"], req.PlayerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, leaveResponse{Chips: chips})
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	tableID := mux.Vars(r)["id"]
	if _, err := h.manager.GetTable(tableID); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.manager.Events().Subscribe(tableID, w, r); err != nil {
		h.log.Debugf("ws upgrade for table %s failed: %v", tableID, err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encoding response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownTable), errors.Is(err, poker.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, poker.ErrHandInProgress):
		status = http.StatusConflict
	case errors.Is(err, poker.ErrTableFull),
		errors.Is(err, poker.ErrDuplicateName),
		errors.Is(err, poker.ErrNoChips),
		errors.Is(err, poker.ErrNotEnoughPlayers),
		errors.Is(err, poker.ErrNotYourTurn),
		errors.Is(err, poker.ErrInsufficientChips),
		errors.Is(err, ErrInsufficientBalance):
		status = http.StatusBadRequest
	}
	h.writeJSON(w, status, apiError{Error: err.Error()})
}
