// Package service contains read-side logic of the gateway.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ajor-finance/ajor/internal/chain"
	"github.com/ajor-finance/ajor/internal/governance"
	"github.com/ajor-finance/ajor/internal/orchestrator"
	"github.com/ajor-finance/ajor/internal/storage"
	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

//go:generate mockgen -destination=./service_mock.go -package=service -source=service.go

// ErrNotFound means that requested object is not found.
var ErrNotFound = errors.New("not found")

// ErrInvalidRequest means that request's arguments are invalid.
var ErrInvalidRequest = orchestrator.ErrInvalidRequest

// Service interface provides service's logic's methods.
type Service interface {
	// ListCooperatives returns cooperative names between inclusive bounds.
	ListCooperatives(ctx context.Context, min, max string) ([]string, error)
	// GetCooperative returns cooperative with resolved token ids.
	GetCooperative(ctx context.Context, name string) (entities.Cooperative, error)
	// GetMember returns member of cooperative or ErrNotFound.
	GetMember(ctx context.Context, cooperative, address string) (entities.Member, error)
	// GetContribution returns member's contributions, shares and loans.
	GetContribution(ctx context.Context, cooperative, address string) (msg.MemberContributionAndShareResponse, error)
	// GetWhitelistedTokens returns tokens whitelisted by cooperative with resolved ids.
	GetWhitelistedTokens(ctx context.Context, cooperative string) ([]entities.WhitelistedToken, error)
	// GetTokenID returns numeric id of token.
	GetTokenID(ctx context.Context, token string) (uint64, error)
	// GetProposal returns proposal with its current status.
	GetProposal(ctx context.Context, id uint64) (governance.ProposalState, error)
	// ListJournal returns journal entries ordered from the newest.
	ListJournal(ctx context.Context, p storage.ListParams) ([]*storage.Entry, error)
	// GetJournalEntry returns journal entry by id.
	GetJournalEntry(ctx context.Context, id uuid.UUID) (*storage.Entry, error)
}

// service is Service interface implementation.
type service struct {
	o *orchestrator.Orchestrator
	g *governance.Governance
	j storage.Journal
}

// New returns new instance of service.
func New(o *orchestrator.Orchestrator, g *governance.Governance, j storage.Journal) Service {
	if j == nil {
		j = storage.NewNop()
	}

	return &service{
		o: o,
		g: g,
		j: j,
	}
}

// ListCooperatives returns cooperative names between inclusive bounds.
func (s *service) ListCooperatives(ctx context.Context, min, max string) ([]string, error) {
	if min != "" && max != "" && min > max {
		return nil, fmt.Errorf("%w: min %q is greater than max %q", ErrInvalidRequest, min, max)
	}

	l, err := s.o.ListCooperatives(ctx, min, max)
	return l, translate(err)
}

// GetCooperative returns cooperative with resolved token ids.
func (s *service) GetCooperative(ctx context.Context, name string) (entities.Cooperative, error) {
	c, err := s.o.Cooperative(ctx, name)
	if err != nil {
		return entities.Cooperative{}, translate(err)
	}

	if err := s.o.ResolveTokenIDs(ctx, &c); err != nil {
		return entities.Cooperative{}, translate(err)
	}

	return c, nil
}

// GetMember returns member of cooperative or ErrNotFound.
func (s *service) GetMember(ctx context.Context, cooperative, address string) (entities.Member, error) {
	if !entities.IsAddressValid(address) {
		return entities.Member{}, fmt.Errorf("%w: address %q is invalid", ErrInvalidRequest, address)
	}

	m, err := s.o.MemberInfo(ctx, cooperative, address)
	if err != nil {
		return entities.Member{}, translate(err)
	}

	if !m.Exists() {
		return entities.Member{}, fmt.Errorf("%w: %s is not a member of %s", ErrNotFound, address, cooperative)
	}

	return m, nil
}

// GetContribution returns member's contributions, shares and loans.
func (s *service) GetContribution(ctx context.Context, cooperative, address string) (msg.MemberContributionAndShareResponse, error) {
	if !entities.IsAddressValid(address) {
		return msg.MemberContributionAndShareResponse{}, fmt.Errorf("%w: address %q is invalid", ErrInvalidRequest, address)
	}

	r, err := s.o.MemberContributionAndShare(ctx, cooperative, address)
	return r, translate(err)
}

// GetWhitelistedTokens returns tokens whitelisted by cooperative with resolved ids.
func (s *service) GetWhitelistedTokens(ctx context.Context, cooperative string) ([]entities.WhitelistedToken, error) {
	tokens, err := s.o.WhitelistedTokens(ctx, cooperative)
	if err != nil {
		return nil, translate(err)
	}

	for i := range tokens {
		id, err := s.o.TokenID(ctx, tokens[i].TokenIDKey())
		if err != nil {
			return nil, translate(err)
		}
		tokens[i].ID = id
	}

	return tokens, nil
}

// GetTokenID returns numeric id of token.
func (s *service) GetTokenID(ctx context.Context, token string) (uint64, error) {
	id, err := s.o.TokenID(ctx, token)
	return id, translate(err)
}

// GetProposal returns proposal with its current status.
func (s *service) GetProposal(ctx context.Context, id uint64) (governance.ProposalState, error) {
	p, err := s.g.Proposal(ctx, id)
	return p, translate(err)
}

// ListJournal returns journal entries ordered from the newest.
func (s *service) ListJournal(ctx context.Context, p storage.ListParams) ([]*storage.Entry, error) {
	if p.Limit == 0 || p.Limit > storage.DefaultListLimit {
		p.Limit = storage.DefaultListLimit
	}

	l, err := s.j.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	return l, nil
}

// GetJournalEntry returns journal entry by id.
func (s *service) GetJournalEntry(ctx context.Context, id uuid.UUID) (*storage.Entry, error) {
	e, err := s.j.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: entry %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return e, nil
}

// translate maps contract query rejections to ErrNotFound. The contract rejects queries of unknown objects.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, chain.ErrRejected) {
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	}

	return err
}
