package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/soccer-academy/internal/usecase"
)

func (h *Handler) ResolveParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveParticipant")
	defer span.End()

	var req resolveParticipantRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, found, err := h.participantService.ResolveOpponent(ctx, req.Opponent)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve participant failed", "opponent", req.Opponent, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: opponent must not be blank", usecase.ErrInvalidInput))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(item))
}

func (h *Handler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetParticipant")
	defer span.End()

	participantID, err := pathID(r, "participantID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.participantService.Get(ctx, participantID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantToDTO(item))
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	items, err := h.clubService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]clubDTO, 0, len(items))
	for _, item := range items {
		out = append(out, clubToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.clubService.Get(ctx, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubToDTO(item))
}

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	var req createClubRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.clubService.Create(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create club failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, clubToDTO(item))
}
