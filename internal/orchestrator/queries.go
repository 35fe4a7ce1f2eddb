package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

// Cooperative returns cooperative by name.
func (o *Orchestrator) Cooperative(ctx context.Context, name string) (entities.Cooperative, error) {
	if strings.TrimSpace(name) == "" {
		return entities.Cooperative{}, invalidRequest("cooperative name is empty")
	}

	var resp msg.GetCooperativeResponse
	if err := o.Query(ctx, msg.QueryMsg{GetCooperative: &msg.GetCooperative{CooperativeName: name}}, &resp); err != nil {
		return entities.Cooperative{}, err
	}

	return entities.CooperativeFromMsg(resp.Cooperative), nil
}

// MemberInfo returns member of cooperative. Use Member.Exists to check whether the member is found.
func (o *Orchestrator) MemberInfo(ctx context.Context, cooperative, member string) (entities.Member, error) {
	if strings.TrimSpace(cooperative) == "" {
		return entities.Member{}, invalidRequest("cooperative name is empty")
	}

	var resp msg.GetMemberInfoResponse
	if err := o.Query(ctx, msg.QueryMsg{GetMemberInfo: &msg.GetMemberInfo{
		CooperativeName: cooperative,
		Member:          member,
	}}, &resp); err != nil {
		return entities.Member{}, err
	}

	return entities.MemberFromMsg(resp.Info), nil
}

// MemberContributionAndShare returns member's contributions, shares and loans with token details.
func (o *Orchestrator) MemberContributionAndShare(
	ctx context.Context,
	cooperative, member string,
) (msg.MemberContributionAndShareResponse, error) {
	if strings.TrimSpace(cooperative) == "" {
		return msg.MemberContributionAndShareResponse{}, invalidRequest("cooperative name is empty")
	}

	var resp msg.MemberContributionAndShareResponse
	if err := o.Query(ctx, msg.QueryMsg{MemberContributionAndShare: &msg.MemberContributionAndShare{
		CooperativeName: cooperative,
		MemberAddress:   member,
	}}, &resp); err != nil {
		return msg.MemberContributionAndShareResponse{}, err
	}

	return resp, nil
}

// ListCooperatives returns cooperative names between inclusive bounds. Empty bound means unbounded.
func (o *Orchestrator) ListCooperatives(ctx context.Context, min, max string) ([]string, error) {
	q := msg.ListCooperatives{}
	if min != "" {
		q.Min = &min
	}
	if max != "" {
		q.Max = &max
	}

	var resp msg.GetListCooperativesResponse
	if err := o.Query(ctx, msg.QueryMsg{ListCooperatives: &q}, &resp); err != nil {
		return nil, err
	}

	if resp.Cooperatives == nil {
		return []string{}, nil
	}

	return resp.Cooperatives, nil
}

// Proposal returns proposal by id.
func (o *Orchestrator) Proposal(ctx context.Context, id uint64) (entities.Proposal, error) {
	var resp msg.GetProposalResponse
	if err := o.Query(ctx, msg.QueryMsg{GetProposal: &msg.GetProposal{ProposalID: id}}, &resp); err != nil {
		return entities.Proposal{}, err
	}

	return entities.ProposalFromMsg(resp.Proposal), nil
}

// WhitelistedTokens returns tokens whitelisted by cooperative.
func (o *Orchestrator) WhitelistedTokens(ctx context.Context, cooperative string) ([]entities.WhitelistedToken, error) {
	if strings.TrimSpace(cooperative) == "" {
		return nil, invalidRequest("cooperative name is empty")
	}

	var resp msg.GetWhitelistedTokensResponse
	if err := o.Query(ctx, msg.QueryMsg{GetWhitelistedTokens: &msg.GetWhitelistedTokens{
		CooperativeName: cooperative,
	}}, &resp); err != nil {
		return nil, err
	}

	out := make([]entities.WhitelistedToken, len(resp.Tokens))
	for i, t := range resp.Tokens {
		out[i] = entities.WhitelistedTokenFromMsg(t)
	}

	return out, nil
}

// TokenID returns numeric id of token. Ids are stable so they are cached.
func (o *Orchestrator) TokenID(ctx context.Context, token string) (uint64, error) {
	if strings.TrimSpace(token) == "" {
		return 0, invalidRequest("token is empty")
	}

	if v, ok := o.tokenIDs.Get(token); ok {
		return v.(uint64), nil // nolint:forcetypeassert
	}

	var resp msg.GetTokenIDResponse
	if err := o.Query(ctx, msg.QueryMsg{GetTokenID: &msg.GetTokenID{Token: token}}, &resp); err != nil {
		return 0, err
	}

	o.tokenIDs.Add(token, resp.TokenID)

	return resp.TokenID, nil
}

// FindToken finds whitelisted token of cooperative by denom or contract address.
func (o *Orchestrator) FindToken(ctx context.Context, cooperative, key string) (entities.WhitelistedToken, error) {
	tokens, err := o.WhitelistedTokens(ctx, cooperative)
	if err != nil {
		return entities.WhitelistedToken{}, err
	}

	for _, t := range tokens {
		if t.Matches(key) {
			return t, nil
		}
	}

	return entities.WhitelistedToken{}, invalidRequest("token %s is not whitelisted by %s", key, cooperative)
}

// ResolveTokenIDs sets ids of cooperative's whitelisted tokens.
func (o *Orchestrator) ResolveTokenIDs(ctx context.Context, c *entities.Cooperative) error {
	for i := range c.WhitelistedTokens {
		t := &c.WhitelistedTokens[i]

		id, err := o.TokenID(ctx, t.TokenIDKey())
		if err != nil {
			return fmt.Errorf("failed to resolve id of %s: %w", t.Denom, err)
		}
		t.ID = id
	}

	return nil
}
