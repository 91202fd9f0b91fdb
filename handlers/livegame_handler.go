package handlers

import (
	"net/http"

	"github.com/kidstats/kidstats-server/models"
	"github.com/kidstats/kidstats-server/services"
)

type LiveGameHandler struct {
	liveService services.LiveGameService
}

func NewLiveGameHandler(ls services.LiveGameService) *LiveGameHandler {
	return &LiveGameHandler{liveService: ls}
}

func (h *LiveGameHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.liveService.StartSession(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LiveGameHandler) RecordStat(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		StatType models.StatType `json:"stat_type"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.liveService.RecordFocusPlayerStat(r.Context(), gameID, input.StatType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LiveGameHandler) RecordTeammateScore(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		PlayerID int `json:"player_id"`
		Points   int `json:"points"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.liveService.RecordTeammateScore(r.Context(), gameID, input.PlayerID, input.Points)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LiveGameHandler) RecordOpponentScore(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Points int `json:"points"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.liveService.RecordOpponentScore(r.Context(), gameID, input.Points)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LiveGameHandler) UndoLastAction(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.liveService.UndoLastAction(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LiveGameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.liveService.EndGame(r.Context(), gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LiveGameHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.liveService.SessionState(gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayerStats rebuilds one player's box score for the game straight from
// the ledger.
func (h *LiveGameHandler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.liveService.CurrentLiveStats(r.Context(), gameID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
