package handlers

import (
	"errors"
	"net/http"

	"github.com/kidstats/kidstats-server/services"
)

type ChildHandler struct {
	childService  services.ChildService
	playerService services.PlayerService
	careerService services.CareerService
}

func NewChildHandler(cs services.ChildService, ps services.PlayerService, career services.CareerService) *ChildHandler {
	return &ChildHandler{
		childService:  cs,
		playerService: ps,
		careerService: career,
	}
}

func (h *ChildHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChildInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	child, err := h.childService.CreateChild(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChildHandler) GetChildByID(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	child, err := h.childService.GetChildByID(r.Context(), childID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChildHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.childService.ListChildren(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"children": children}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetDefaultChild returns the most recently active child, the one the app
// should preselect when it opens.
func (h *ChildHandler) GetDefaultChild(w http.ResponseWriter, r *http.Request) {
	child, err := h.childService.DefaultChild(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChildHandler) UpdateChild(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateChildInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	child, err := h.childService.UpdateChild(r.Context(), childID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"child": child}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.childService.DeleteChild(r.Context(), childID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChildHandler) ListChildPlayers(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListPlayersByChild(r.Context(), childID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCareerStats rebuilds the child's career aggregates from the full event
// history.
func (h *ChildHandler) GetCareerStats(w http.ResponseWriter, r *http.Request) {
	childID, err := getIDFromURL(r, "childID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.careerService.CalculateCareerStats(r.Context(), childID)
	if err != nil {
		if errors.Is(err, services.ErrCareerNoData) {
			// The client renders this as an empty placeholder state.
			errorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"career_stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
