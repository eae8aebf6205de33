package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/feed", handler.GetFeed)
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/badges", handler.ListBadgeCatalog)
	mux.HandleFunc("GET /v1/users/{username}/badges", handler.ListUserBadges)
	mux.HandleFunc("GET /v1/stats/leaders", handler.ListStatLeaders)
	// The leaderboard is public; an attached principal only anchors myRank.
	mux.Handle("GET /v1/leaderboard", OptionalAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/picks", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPick)))
	mux.Handle("GET /v1/picks", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPicks)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /internal/jobs/resolve-picks", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResolvePicksJob)))
}
