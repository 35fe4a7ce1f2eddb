// Package api provides read-only HTTP API of the ajor gateway and a client for it.
package api

import (
	"context"
	"errors"
	"time"

	"github.com/ajor-finance/ajor/pkg/msg"
)

//go:generate mockgen -destination=./api_mock.go -package=api -source=api.go

// Endpoints.
const (
	CooperativesEndpoint = "v1/cooperatives"
	TokensEndpoint       = "v1/tokens"
	ProposalsEndpoint    = "v1/proposals"
	JournalEndpoint      = "v1/journal"
)

// ErrInvalidRequest is returned when request is invalid.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound is returned when object is not found.
var ErrNotFound = errors.New("not found")

// Error ...
type Error struct {
	Error string `json:"error"`
}

// Token is a whitelisted token with its numeric id.
type Token struct {
	msg.WhitelistedToken
	ID uint64 `json:"id"`
}

// CooperativeResponse is a cooperative with resolved token ids.
type CooperativeResponse struct {
	msg.Cooperative
	WhitelistedTokens []Token `json:"whitelisted_tokens"`
}

// ProposalResponse is a proposal with its status derived at the moment of request.
type ProposalResponse struct {
	msg.Proposal
	Status string `json:"status"`
}

// TokenIDResponse ...
type TokenIDResponse struct {
	Token string `json:"token"`
	ID    uint64 `json:"id"`
}

// JournalEntry is a confirmed execution submitted through the gateway's account.
type JournalEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Sender    string    `json:"sender"`
	Contract  string    `json:"contract"`
	Funds     string    `json:"funds,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	TxHash    string    `json:"tx_hash"`
	Height    int64     `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// ListJournalParams ...
type ListJournalParams struct {
	Sender string
	Action string
	Before *time.Time
	Limit  uint16
}

// Ajor is a client of the gateway.
type Ajor interface {
	ListCooperatives(ctx context.Context, min, max string) ([]string, error)
	GetCooperative(ctx context.Context, name string) (CooperativeResponse, error)
	GetMember(ctx context.Context, cooperative, address string) (msg.Member, error)
	GetContribution(ctx context.Context, cooperative, address string) (msg.MemberContributionAndShareResponse, error)
	GetWhitelistedTokens(ctx context.Context, cooperative string) ([]Token, error)
	GetTokenID(ctx context.Context, token string) (uint64, error)
	GetProposal(ctx context.Context, id uint64) (ProposalResponse, error)
	ListJournal(ctx context.Context, p ListJournalParams) ([]JournalEntry, error)
	GetJournalEntry(ctx context.Context, id string) (JournalEntry, error)
}
