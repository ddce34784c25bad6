package httpapi

import (
	"net/http"

	"github.com/riskibarqy/soccer-academy/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/stats", handler.ListMatchStats)
	mux.HandleFunc("GET /v1/participants/{participantID}", handler.GetParticipant)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
	mux.HandleFunc("GET /v1/clubs/{clubID}", handler.GetClub)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireRole(verifier, user.RoleAdmin, h)
	}

	mux.Handle("POST /v1/matches", admin(handler.CreateMatch))
	mux.Handle("PATCH /v1/matches/{matchID}", admin(handler.UpdateMatch))
	mux.Handle("DELETE /v1/matches/{matchID}", admin(handler.DeleteMatch))
	mux.Handle("POST /v1/matches/{matchID}/score/recompute", admin(handler.RecomputeMatchScore))
	mux.Handle("POST /v1/matches/score/recompute", admin(handler.RecomputeMatchScores))

	mux.Handle("POST /v1/stats", admin(handler.AddStat))
	mux.Handle("PATCH /v1/stats/{statID}", admin(handler.UpdateStat))
	mux.Handle("DELETE /v1/stats/{statID}", admin(handler.DeleteStat))

	// Resolving may insert a participant, so it is gated like other writes.
	mux.Handle("POST /v1/participants/resolve", admin(handler.ResolveParticipant))
	mux.Handle("POST /v1/clubs", admin(handler.CreateClub))
}
