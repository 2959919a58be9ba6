package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s server) getCommunity(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /communities/{id} Communities GetCommunity
	//
	// Get community with posts, tiers and membership counters.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// - name: viewer
	//   description: resolves membership flags and gated content for the address
	//   in: query
	//   required: false
	//   type: string
	// responses:
	//   '200':
	//     description: Community
	//     schema:
	//       "$ref": "#/definitions/Community"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: community not found
	//     schema:
	//       "$ref": "#/definitions/Error"

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid community id")
		return
	}

	c, err := s.p.Community(r.Context(), id, r.URL.Query().Get("viewer"))
	if err != nil {
		// a fetch failure and a type mismatch are indistinguishable to
		// the client, both render the not-found state
		writeError(w, http.StatusNotFound, "community not found")
		return
	}

	writeOK(w, http.StatusOK, toAPICommunity(c))
}

func (s server) getCommunityPolls(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /communities/{id}/polls Communities GetCommunityPolls
	//
	// List community polls, newest first.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Polls
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/Poll"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: community not found
	//     schema:
	//       "$ref": "#/definitions/Error"

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid community id")
		return
	}

	polls, err := s.p.CommunityPolls(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "community not found")
		return
	}

	writeOK(w, http.StatusOK, toAPIPolls(polls))
}

func (s server) getAccount(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /accounts/{address} Accounts GetAccount
	//
	// Get account summary with follower and following sets.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: address
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Account
	//     schema:
	//       "$ref": "#/definitions/AccountResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"

	address := chi.URLParam(r, "address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}

	writeOK(w, http.StatusOK, newAccountResponse(address, s.a.Account(r.Context(), address)))
}

func (s server) getAccountCommunities(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /accounts/{address}/communities Accounts GetAccountCommunities
	//
	// List communities the address owns and follows, with tier memberships.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: address
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Communities
	//     schema:
	//       "$ref": "#/definitions/CommunitiesResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"

	address := chi.URLParam(r, "address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}

	writeOK(w, http.StatusOK, newCommunitiesResponse(s.a.Communities(r.Context(), address)))
}

func (s server) getFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /accounts/{address}/feed Accounts GetFeed
	//
	// Get the merged feed of the address's followed communities, newest first.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: address
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Feed
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"

	address := chi.URLParam(r, "address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}

	writeOK(w, http.StatusOK, newFeedResponse(s.f.Build(r.Context(), address)))
}
