package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rahulrajesh21/Ticket-Booking-system/internal/hub"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/logutil"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/seat"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/session"
)

// Handler serves the request/response side: login, the REST snapshot, and
// the stats view. The realtime stream lives in WSHandler.
type Handler struct {
	Store    *seat.Store
	Sessions *session.Registry
	Hub      *hub.Hub
}

type loginRequest struct {
	Username string `json:"username"`
}

// Login claims a display name. 400 when missing, 409 when the name belongs
// to an active session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username is required"})
		return
	}

	if err := h.Sessions.Login(req.Username); err != nil {
		if errors.Is(err, session.ErrNameTaken) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "Username already in use. Please choose a different name.",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	zap.L().Info("user logged in", logutil.User(req.Username))
	writeJSON(w, http.StatusOK, map[string]string{"username": req.Username})
}

// Seats returns the same ordered snapshot the stream broadcasts, for clients
// that want to render before the websocket is up.
func (h *Handler) Seats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Snapshot())
}

// Stats exposes a small operational view of the coordinator.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"clients":  h.Hub.Len(),
		"sessions": h.Sessions.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("response encode failed", zap.Error(err))
	}
}
