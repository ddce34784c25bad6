package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/soccer-academy/internal/domain/match"
	"github.com/riskibarqy/soccer-academy/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "opponent", req.Opponent, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, matchToDTO(result.Match))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMatchRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.matchService.Update(ctx, matchID, patch)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter, err := parseMatchListFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": matchID, "deleted": true})
}

func (h *Handler) RecomputeMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeMatchScore")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoreService.Recompute(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "recompute score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !result.Found {
		writeError(ctx, w, fmt.Errorf("%w: match=%d", usecase.ErrNotFound, matchID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreToDTO(result))
}

func (h *Handler) RecomputeMatchScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeMatchScores")
	defer span.End()

	var req recomputeScoresRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.scoreService.RecomputeMany(ctx, req.MatchIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "bulk recompute failed", "match_count", len(req.MatchIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scoreDTO, 0, len(results))
	for _, result := range results {
		out = append(out, scoreToDTO(result))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func parseMatchListFilter(r *http.Request) (match.ListFilter, error) {
	query := r.URL.Query()
	var filter match.ListFilter

	if raw := strings.TrimSpace(query.Get("team_id")); raw != "" {
		teamID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || teamID <= 0 {
			return match.ListFilter{}, fmt.Errorf("%w: invalid team_id %q", usecase.ErrInvalidInput, raw)
		}
		filter.TeamID = &teamID
	}
	if raw := query.Get("from"); strings.TrimSpace(raw) != "" {
		from, err := parseOptionalTime("from", &raw)
		if err != nil {
			return match.ListFilter{}, err
		}
		filter.From = from
	}
	if raw := query.Get("to"); strings.TrimSpace(raw) != "" {
		to, err := parseOptionalTime("to", &raw)
		if err != nil {
			return match.ListFilter{}, err
		}
		filter.To = to
	}

	return filter, nil
}
