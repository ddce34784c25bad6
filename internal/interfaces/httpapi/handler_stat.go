package httpapi

import (
	"net/http"

	"github.com/riskibarqy/soccer-academy/internal/usecase"
)

func (h *Handler) AddStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddStat")
	defer span.End()

	var req addStatRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.statService.Add(ctx, usecase.AddStatInput{
		PlayerID:      req.PlayerID,
		MatchID:       req.MatchID,
		Goals:         req.Goals,
		Assists:       req.Assists,
		MinutesPlayed: req.MinutesPlayed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add stat failed", "player_id", req.PlayerID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, statToDTO(item))
}

func (h *Handler) UpdateStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateStatRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.statService.Update(ctx, statID, usecase.UpdateStatInput{
		Goals:         req.Goals,
		Assists:       req.Assists,
		MinutesPlayed: req.MinutesPlayed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statToDTO(item))
}

func (h *Handler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.statService.Delete(ctx, statID); err != nil {
		h.logger.WarnContext(ctx, "delete stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": statID, "deleted": true})
}

func (h *Handler) ListMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStats")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.statService.ListByMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]statDTO, 0, len(items))
	for _, item := range items {
		out = append(out, statToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
