package http

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pet-adoption-hub/internal/domain"
)

type handlers struct {
	deps Deps
	log  zerolog.Logger
}

type scoreResponse struct {
	PetID string `json:"petId"`
	Score int    `json:"score"`
}

func (h *handlers) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.deps.Scores.Read()
	if !ok {
		WriteError(w, http.StatusNotFound, "no valid snapshot")
		return
	}
	w.Header().Set("Last-Modified", snapshot.SavedTime().UTC().Format(http.TimeFormat))
	WriteJSON(w, http.StatusOK, snapshot)
}

func (h *handlers) getScore(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "petId")
	score, ok := h.deps.Scores.ScoreFor(petID)
	if !ok {
		WriteError(w, http.StatusNotFound, "score not found")
		return
	}
	WriteJSON(w, http.StatusOK, scoreResponse{PetID: petID, Score: score})
}

func (h *handlers) putScores(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var recs []domain.Recommendation
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.deps.Scores.Write(recs)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listDonations(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"campaigns": h.deps.Donations.List()})
}

func (h *handlers) hasDonation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "campaignId")
	WriteJSON(w, http.StatusOK, map[string]any{"campaignId": id, "donated": h.deps.Donations.Has(id)})
}

func (h *handlers) markDonation(w http.ResponseWriter, r *http.Request) {
	h.deps.Donations.Mark(chi.URLParam(r, "campaignId"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listPanels(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.deps.Panels.Snapshot())
}

func (h *handlers) panelAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	switch chi.URLParam(r, "action") {
	case "open":
		h.deps.Panels.Open(name)
	case "close":
		h.deps.Panels.Close(name)
	case "toggle":
		h.deps.Panels.Toggle(name)
	default:
		WriteError(w, http.StatusBadRequest, "unknown panel action")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"name": name, "open": h.deps.Panels.IsOpen(name)})
}

func (h *handlers) refresh(w http.ResponseWriter, r *http.Request) {
	if h.deps.Matching == nil {
		WriteError(w, http.StatusServiceUnavailable, "matching is not configured")
		return
	}
	recs, err := h.deps.Matching.Refresh(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.log.Error().Err(err).Str("request_id", RequestID(r)).Msg("matching: refresh failed")
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}
