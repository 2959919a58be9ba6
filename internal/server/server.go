// Package server Pythia
//
// Pythia is a read-model service which projects creator communities, posts,
// polls and memberships out of raw chain state.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fanbase-labs/pythia/internal/account"
	"github.com/fanbase-labs/pythia/internal/feed"
	mm "github.com/fanbase-labs/pythia/internal/middleware"
	"github.com/fanbase-labs/pythia/internal/projector"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

type server struct {
	p *projector.Projector
	a *account.Aggregator
	f *feed.Builder
}

// SetupRouter setups handlers to chi router.
func SetupRouter(p *projector.Projector, a *account.Aggregator, f *feed.Builder,
	cache mm.Storage, cacheTTL time.Duration, r chi.Router, timeout time.Duration) {
	r.Use(
		mm.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
	)

	srv := server{
		p: p,
		a: a,
		f: f,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/communities/{id}", srv.getCommunity)
		r.Get("/communities/{id}/polls", srv.getCommunityPolls)
		r.Get("/accounts/{address}", mm.Cached(cache, cacheTTL, srv.getAccount))
		r.Get("/accounts/{address}/communities", mm.Cached(cache, cacheTTL, srv.getAccountCommunities))
		r.Get("/accounts/{address}/feed", mm.Cached(cache, cacheTTL, srv.getFeed))
	})
}
