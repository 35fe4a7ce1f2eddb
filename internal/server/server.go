// Package server Ajor
//
// The Ajor gateway exposes read-only state of the cooperative lending contract and the journal of executed actions.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//
// swagger:meta
package server

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/Decentr-net/go-api"

	"github.com/ajor-finance/ajor/internal/service"
)

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, timeout time.Duration, maxBodySize int64) {
	r.Use(
		api.LoggerMiddleware,
		api.RequestIDMiddleware,
		middleware.StripSlashes,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}),
		api.RecovererMiddleware,
		api.TimeoutMiddleware(timeout),
		api.BodyLimiterMiddleware(maxBodySize),
	)

	srv := server{
		s: s,
	}

	r.Get("/v1/cooperatives", srv.listCooperativesHandler)
	r.Get("/v1/cooperatives/{name}", srv.getCooperativeHandler)
	r.Get("/v1/cooperatives/{name}/tokens", srv.getWhitelistedTokensHandler)
	r.Get("/v1/cooperatives/{name}/members/{address}", srv.getMemberHandler)
	r.Get("/v1/cooperatives/{name}/members/{address}/contribution", srv.getContributionHandler)
	r.Get("/v1/tokens/{token}/id", srv.getTokenIDHandler)
	r.Get("/v1/proposals/{id}", srv.getProposalHandler)
	r.Get("/v1/journal", srv.listJournalHandler)
	r.Get("/v1/journal/{id}", srv.getJournalEntryHandler)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		api.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		api.WriteError(w, http.StatusNotFound, err.Error())
	default:
		api.WriteInternalErrorf(r.Context(), w, "%s", err.Error())
	}
}

// urlParam returns unescaped path parameter.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}

	if u, err := url.PathUnescape(v); err == nil {
		return u
	}

	return v
}
