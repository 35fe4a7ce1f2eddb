package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Decentr-net/go-api"

	"github.com/ajor-finance/ajor/internal/governance"
	"github.com/ajor-finance/ajor/internal/storage"
	ajorapi "github.com/ajor-finance/ajor/pkg/api"
	"github.com/ajor-finance/ajor/pkg/entities"
)

// listCooperativesHandler returns cooperative names.
func (s *server) listCooperativesHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /cooperatives Cooperative List
	//
	// Returns cooperative names between inclusive bounds
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: min
	//   in: query
	//   type: string
	// - name: max
	//   in: query
	//   type: string
	// responses:
	//   '200':
	//     description: cooperative names
	//     schema:
	//       type: array
	//       items:
	//         type: string
	//   '400':
	//      description: bad request
	//      schema:
	//        "$ref": "#/definitions/Error"
	//   '500':
	//      description: internal server error
	//      schema:
	//        "$ref": "#/definitions/Error"

	l, err := s.s.ListCooperatives(r.Context(), r.URL.Query().Get("min"), r.URL.Query().Get("max"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, l)
}

// getCooperativeHandler returns cooperative with resolved token ids.
func (s *server) getCooperativeHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /cooperatives/{name} Cooperative Get
	//
	// Returns cooperative
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: name
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: cooperative
	//   '404':
	//     description: cooperative is not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//      description: internal server error
	//      schema:
	//        "$ref": "#/definitions/Error"

	c, err := s.s.GetCooperative(r.Context(), urlParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, CooperativeResponse(c))
}

// getWhitelistedTokensHandler returns tokens whitelisted by cooperative.
func (s *server) getWhitelistedTokensHandler(w http.ResponseWriter, r *http.Request) {
	tokens, err := s.s.GetWhitelistedTokens(r.Context(), urlParam(r, "name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, Tokens(tokens))
}

// getMemberHandler returns member of cooperative.
func (s *server) getMemberHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /cooperatives/{name}/members/{address} Member Get
	//
	// Returns member of cooperative
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: name
	//   in: path
	//   required: true
	//   type: string
	// - name: address
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: member
	//   '400':
	//     description: address is invalid
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: address is not a member
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//      description: internal server error
	//      schema:
	//        "$ref": "#/definitions/Error"

	m, err := s.s.GetMember(r.Context(), urlParam(r, "name"), urlParam(r, "address"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, m.ToMsg())
}

// getContributionHandler returns member's contributions, shares and loans.
func (s *server) getContributionHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.s.GetContribution(r.Context(), urlParam(r, "name"), urlParam(r, "address"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, c)
}

// getTokenIDHandler returns numeric id of token.
func (s *server) getTokenIDHandler(w http.ResponseWriter, r *http.Request) {
	token := urlParam(r, "token")

	id, err := s.s.GetTokenID(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, ajorapi.TokenIDResponse{Token: token, ID: id})
}

// getProposalHandler returns proposal with its current status.
func (s *server) getProposalHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /proposals/{id} Proposal Get
	//
	// Returns proposal with status derived at the moment of request
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: integer
	// responses:
	//   '200':
	//     description: proposal
	//   '400':
	//     description: id is invalid
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: proposal is not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//      description: internal server error
	//      schema:
	//        "$ref": "#/definitions/Error"

	id, err := strconv.ParseUint(urlParam(r, "id"), 10, 64)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := s.s.GetProposal(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, ProposalResponse(p))
}

// listJournalHandler returns journal entries ordered from the newest.
func (s *server) listJournalHandler(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /journal Journal List
	//
	// Returns executed actions
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: sender
	//   in: query
	//   type: string
	// - name: action
	//   in: query
	//   type: string
	// - name: before
	//   description: RFC3339 time
	//   in: query
	//   type: string
	// - name: limit
	//   in: query
	//   type: integer
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     description: journal entries
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//      description: internal server error
	//      schema:
	//        "$ref": "#/definitions/Error"

	q := r.URL.Query()

	p := storage.ListParams{
		Sender: q.Get("sender"),
		Action: q.Get("action"),
	}

	if p.Sender != "" && !entities.IsAddressValid(p.Sender) {
		api.WriteError(w, http.StatusBadRequest, "invalid sender")
		return
	}

	if v := q.Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, "invalid before")
			return
		}
		p.Before = &t
	}

	if v := q.Get("limit"); v != "" {
		l, err := strconv.ParseUint(v, 10, 16)
		if err != nil || l == 0 || l > storage.DefaultListLimit {
			api.WriteErrorf(w, http.StatusBadRequest, "limit should be in [1, %d]", storage.DefaultListLimit)
			return
		}
		p.Limit = uint16(l)
	}

	l, err := s.s.ListJournal(r.Context(), p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, JournalEntries(l))
}

// getJournalEntryHandler returns journal entry by id.
func (s *server) getJournalEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(urlParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := s.s.GetJournalEntry(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	api.WriteOK(w, http.StatusOK, JournalEntry(e))
}

// CooperativeResponse ...
func CooperativeResponse(c entities.Cooperative) ajorapi.CooperativeResponse {
	return ajorapi.CooperativeResponse{
		Cooperative:       c.ToMsg(),
		WhitelistedTokens: Tokens(c.WhitelistedTokens),
	}
}

// Tokens ...
func Tokens(tokens []entities.WhitelistedToken) []ajorapi.Token {
	out := make([]ajorapi.Token, len(tokens))
	for i, t := range tokens {
		out[i] = ajorapi.Token{
			WhitelistedToken: t.ToMsg(),
			ID:               t.ID,
		}
	}

	return out
}

// ProposalResponse ...
func ProposalResponse(p governance.ProposalState) ajorapi.ProposalResponse {
	return ajorapi.ProposalResponse{
		Proposal: p.ToMsg(),
		Status:   string(p.Status),
	}
}

// JournalEntries ...
func JournalEntries(l []*storage.Entry) []ajorapi.JournalEntry {
	out := make([]ajorapi.JournalEntry, len(l))
	for i, e := range l {
		out[i] = JournalEntry(e)
	}

	return out
}

// JournalEntry ...
func JournalEntry(e *storage.Entry) ajorapi.JournalEntry {
	return ajorapi.JournalEntry{
		ID:        e.ID.String(),
		Action:    e.Action,
		Sender:    e.Sender,
		Contract:  e.Contract,
		Funds:     e.Funds,
		Memo:      e.Memo,
		TxHash:    e.TxHash,
		Height:    e.Height,
		CreatedAt: e.CreatedAt,
	}
}
