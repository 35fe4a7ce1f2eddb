package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ajor-finance/ajor/pkg/msg"
)

type client struct {
	host string

	c *http.Client
}

// NewClient returns client with http.DefaultClient.
func NewClient(host string) Ajor {
	return NewClientWithHTTPClient(host, &http.Client{})
}

// NewClientWithHTTPClient returns client with provided http.Client.
func NewClientWithHTTPClient(host string, c *http.Client) Ajor {
	return &client{
		host: strings.TrimSuffix(host, "/"),
		c:    c,
	}
}

// ListCooperatives returns cooperative names between inclusive bounds. Empty bound means unbounded.
func (c *client) ListCooperatives(ctx context.Context, min, max string) ([]string, error) {
	q := url.Values{}
	if min != "" {
		q.Set("min", min)
	}
	if max != "" {
		q.Set("max", max)
	}

	var resp []string
	if err := c.get(ctx, CooperativesEndpoint, q, &resp); err != nil {
		return nil, fmt.Errorf("failed to make ListCooperatives request: %w", err)
	}

	return resp, nil
}

// GetCooperative returns cooperative by name.
func (c *client) GetCooperative(ctx context.Context, name string) (CooperativeResponse, error) {
	if strings.TrimSpace(name) == "" {
		return CooperativeResponse{}, ErrInvalidRequest
	}

	var resp CooperativeResponse
	if err := c.get(ctx, cooperativePath(name), nil, &resp); err != nil {
		return CooperativeResponse{}, fmt.Errorf("failed to make GetCooperative request: %w", err)
	}

	return resp, nil
}

// GetMember returns member of cooperative.
// GetMember returns ErrNotFound if the address is not a member.
func (c *client) GetMember(ctx context.Context, cooperative, address string) (msg.Member, error) {
	if strings.TrimSpace(cooperative) == "" || address == "" {
		return msg.Member{}, ErrInvalidRequest
	}

	var resp msg.Member
	if err := c.get(ctx, memberPath(cooperative, address), nil, &resp); err != nil {
		return msg.Member{}, fmt.Errorf("failed to make GetMember request: %w", err)
	}

	return resp, nil
}

// GetContribution returns member's contributions, shares and loans.
func (c *client) GetContribution(ctx context.Context, cooperative, address string) (msg.MemberContributionAndShareResponse, error) {
	if strings.TrimSpace(cooperative) == "" || address == "" {
		return msg.MemberContributionAndShareResponse{}, ErrInvalidRequest
	}

	var resp msg.MemberContributionAndShareResponse
	if err := c.get(ctx, memberPath(cooperative, address)+"/contribution", nil, &resp); err != nil {
		return msg.MemberContributionAndShareResponse{}, fmt.Errorf("failed to make GetContribution request: %w", err)
	}

	return resp, nil
}

// GetWhitelistedTokens returns tokens whitelisted by cooperative.
func (c *client) GetWhitelistedTokens(ctx context.Context, cooperative string) ([]Token, error) {
	if strings.TrimSpace(cooperative) == "" {
		return nil, ErrInvalidRequest
	}

	var resp []Token
	if err := c.get(ctx, cooperativePath(cooperative)+"/tokens", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to make GetWhitelistedTokens request: %w", err)
	}

	return resp, nil
}

// GetTokenID returns numeric id of token.
func (c *client) GetTokenID(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrInvalidRequest
	}

	var resp TokenIDResponse
	if err := c.get(ctx, fmt.Sprintf("%s/%s/id", TokensEndpoint, url.PathEscape(token)), nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to make GetTokenID request: %w", err)
	}

	return resp.ID, nil
}

// GetProposal returns proposal by id.
func (c *client) GetProposal(ctx context.Context, id uint64) (ProposalResponse, error) {
	var resp ProposalResponse
	if err := c.get(ctx, fmt.Sprintf("%s/%d", ProposalsEndpoint, id), nil, &resp); err != nil {
		return ProposalResponse{}, fmt.Errorf("failed to make GetProposal request: %w", err)
	}

	return resp, nil
}

// ListJournal returns journal entries ordered from the newest.
func (c *client) ListJournal(ctx context.Context, p ListJournalParams) ([]JournalEntry, error) {
	q := url.Values{}
	if p.Sender != "" {
		q.Set("sender", p.Sender)
	}
	if p.Action != "" {
		q.Set("action", p.Action)
	}
	if p.Before != nil {
		q.Set("before", p.Before.UTC().Format(time.RFC3339Nano))
	}
	if p.Limit != 0 {
		q.Set("limit", strconv.Itoa(int(p.Limit)))
	}

	var resp []JournalEntry
	if err := c.get(ctx, JournalEndpoint, q, &resp); err != nil {
		return nil, fmt.Errorf("failed to make ListJournal request: %w", err)
	}

	return resp, nil
}

// GetJournalEntry returns journal entry by id.
func (c *client) GetJournalEntry(ctx context.Context, id string) (JournalEntry, error) {
	if id == "" {
		return JournalEntry{}, ErrInvalidRequest
	}

	var resp JournalEntry
	if err := c.get(ctx, fmt.Sprintf("%s/%s", JournalEndpoint, url.PathEscape(id)), nil, &resp); err != nil {
		return JournalEntry{}, fmt.Errorf("failed to make GetJournalEntry request: %w", err)
	}

	return resp, nil
}

func cooperativePath(name string) string {
	return fmt.Sprintf("%s/%s", CooperativesEndpoint, url.PathEscape(name))
}

func memberPath(cooperative, address string) string {
	return fmt.Sprintf("%s/members/%s", cooperativePath(cooperative), url.PathEscape(address))
}

// get is utility method which sends GET request to the gateway.
// Also converts http.StatusCode to package's errors.
func (c *client) get(ctx context.Context, endpoint string, q url.Values, resp interface{}) error {
	u := fmt.Sprintf("%s/%s", c.host, endpoint)
	if len(q) > 0 {
		u = fmt.Sprintf("%s?%s", u, q.Encode())
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	rr, err := c.c.Do(r)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer rr.Body.Close() // nolint:errcheck

	if rr.StatusCode < 200 || rr.StatusCode >= 300 {
		var e Error
		if err := json.NewDecoder(rr.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = fmt.Sprintf("status %d", rr.StatusCode)
		}

		switch rr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, e.Error)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrInvalidRequest, e.Error)
		default:
			return errors.Errorf("request failed: %s", e.Error)
		}
	}

	if err := json.NewDecoder(rr.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
