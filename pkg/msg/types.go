package msg

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TokenIDAmount is a (token_id, amount) pair. It's encoded as two-element array: [1, "100"].
type TokenIDAmount struct {
	TokenID uint64
	Amount  sdk.Int
}

// MarshalJSON ...
func (p TokenIDAmount) MarshalJSON() ([]byte, error) {
	amount := p.Amount
	if amount.IsNil() {
		amount = sdk.ZeroInt()
	}
	return json.Marshal([]interface{}{p.TokenID, amount})
}

// UnmarshalJSON ...
func (p *TokenIDAmount) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw) != 2 {
		return fmt.Errorf("token amount pair must have 2 elements, got %d", len(raw)) // nolint:goerr113
	}

	if err := json.Unmarshal(raw[0], &p.TokenID); err != nil {
		return fmt.Errorf("failed to decode token id: %w", err)
	}

	if err := json.Unmarshal(raw[1], &p.Amount); err != nil {
		return fmt.Errorf("failed to decode amount: %w", err)
	}

	return nil
}

// RiskProfile ...
type RiskProfile struct {
	InterestRate           sdk.Dec `json:"interest_rate"`
	CollateralizationRatio sdk.Dec `json:"collateralization_ratio"`
}

// WhitelistedToken ...
type WhitelistedToken struct {
	Denom        string  `json:"denom"`
	ContractAddr *string `json:"contract_addr,omitempty"`
	IsNative     bool    `json:"is_native"`
	MaxLoanRatio sdk.Dec `json:"max_loan_ratio"`
}

// Loan ...
type Loan struct {
	ID                uint64    `json:"id"`
	Amount            sdk.Int   `json:"amount"`
	Token             string    `json:"token"`
	Collaterals       []string  `json:"collaterals"`
	CollateralsAmount []sdk.Int `json:"collaterals_amount"`
	InterestRate      sdk.Dec   `json:"interest_rate"`
	Status            string    `json:"status"`
}

// Member ...
type Member struct {
	Address         string          `json:"address"`
	Contribution    []TokenIDAmount `json:"contribution"`
	Share           []TokenIDAmount `json:"share"`
	JoinedAt        uint64          `json:"joined_at"`
	ReputationScore sdk.Dec         `json:"reputation_score"`
	ActiveLoans     []Loan          `json:"active_loans"`
}

// Cooperative ...
type Cooperative struct {
	Name              string             `json:"name"`
	TotalFunds        []TokenIDAmount    `json:"total_funds"`
	Members           []Member           `json:"members"`
	RiskProfile       RiskProfile        `json:"risk_profile"`
	WhitelistedTokens []WhitelistedToken `json:"whitelisted_tokens"`
}

// ProposalData is type-specific payload of proposal.
type ProposalData struct {
	// WhitelistToken
	Denom        *string  `json:"denom,omitempty"`
	TokenAddr    *string  `json:"token_addr,omitempty"`
	IsNative     *bool    `json:"is_native,omitempty"`
	MaxLoanRatio *sdk.Dec `json:"max_loan_ratio,omitempty"`

	// AddMember
	NewMemberAddr *string `json:"new_member_addr,omitempty"`
}

// Vote ...
type Vote struct {
	Voter      string  `json:"voter"`
	Conviction sdk.Int `json:"conviction"`
	VotedAt    uint64  `json:"voted_at"`
}

// Proposal ...
type Proposal struct {
	ID           uint64       `json:"id"`
	Description  string       `json:"description"`
	Data         ProposalData `json:"data"`
	Votes        []Vote       `json:"votes"`
	AyeCount     uint64       `json:"aye_count"`
	NayCount     uint64       `json:"nay_count"`
	AyeWeights   uint64       `json:"aye_weights"`
	NayWeights   uint64       `json:"nay_weights"`
	EndTime      uint64       `json:"end_time"`
	Quorum       *sdk.Dec     `json:"quorum,omitempty"`
	ProposalType string       `json:"proposal_type"`
	Outcome      *string      `json:"outcome,omitempty"`
	Executed     bool         `json:"executed"`
}

// Expiration is cw20 allowance expiration. At most one field is set, none means never.
type Expiration struct {
	AtHeight *uint64   `json:"at_height,omitempty"`
	AtTime   *string   `json:"at_time,omitempty"`
	Never    *struct{} `json:"never,omitempty"`
}
