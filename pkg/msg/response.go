package msg

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetCooperativeResponse ...
type GetCooperativeResponse struct {
	// Cooperative is named "corporative" by the contract.
	Cooperative Cooperative `json:"corporative"`
}

// GetMemberInfoResponse ...
type GetMemberInfoResponse struct {
	Info Member `json:"info"`
}

// MemberContributionAndShareResponse ...
type MemberContributionAndShareResponse struct {
	MemberAddress   string        `json:"member_address"`
	CooperativeName string        `json:"cooperative_name"`
	Contributions   []TokenAmount `json:"contributions"`
	Shares          []TokenAmount `json:"shares"`
	Loans           []Loan        `json:"loans"`
	TokenInfo       []TokenInfo   `json:"token_info"`
}

// TokenAmount ...
type TokenAmount struct {
	TokenID uint64  `json:"token_id"`
	Amount  sdk.Int `json:"amount"`
	Symbol  *string `json:"symbol,omitempty"`
	Name    *string `json:"name,omitempty"`
}

// TokenInfo ...
type TokenInfo struct {
	TokenID      uint64  `json:"token_id"`
	Denom        string  `json:"denom"`
	ContractAddr *string `json:"contract_addr,omitempty"`
	IsNative     bool    `json:"is_native"`
	Symbol       *string `json:"symbol,omitempty"`
	Name         *string `json:"name,omitempty"`
}

// GetListCooperativesResponse ...
type GetListCooperativesResponse struct {
	Cooperatives []string `json:"cooperatives"`
}

// GetProposalResponse ...
type GetProposalResponse struct {
	Proposal Proposal `json:"proposal"`
}

// GetWhitelistedTokensResponse ...
type GetWhitelistedTokensResponse struct {
	Tokens []WhitelistedToken `json:"tokens"`
}

// GetTokenIDResponse ...
type GetTokenIDResponse struct {
	TokenID uint64 `json:"token_id"`
}

// AllowanceResponse is cw20 allowance query response.
type AllowanceResponse struct {
	Allowance sdk.Int    `json:"allowance"`
	Expires   Expiration `json:"expires"`
}
