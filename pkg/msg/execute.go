package msg

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Execute action names.
const (
	ActionUpdateTokenPrice              = "update_token_price"
	ActionCreateCooperative             = "create_cooperative"
	ActionFundCooperative               = "fund_cooperative"
	ActionBorrow                        = "borrow"
	ActionRepay                         = "repay"
	ActionPropose                       = "propose"
	ActionVote                          = "vote"
	ActionWithdrawWeight                = "withdraw_weight"
	ActionWithdrawContributionAndReward = "withdraw_contribution_and_reward"
	ActionExecuteProposal               = "execute_proposal"
	ActionIncreaseAllowance             = "increase_allowance"
)

var (
	_ OneOf = ExecuteMsg{}
	_ OneOf = CW20ExecuteMsg{}
)

// ExecuteMsg is execute message of the ajor contract.
type ExecuteMsg struct {
	UpdateTokenPrice              *UpdateTokenPrice              `json:"update_token_price,omitempty"`
	CreateCooperative             *CreateCooperative             `json:"create_cooperative,omitempty"`
	FundCooperative               *FundCooperative               `json:"fund_cooperative,omitempty"`
	Borrow                        *Borrow                        `json:"borrow,omitempty"`
	Repay                         *Repay                         `json:"repay,omitempty"`
	Propose                       *Propose                       `json:"propose,omitempty"`
	Vote                          *VoteOnProposal                `json:"vote,omitempty"`
	WithdrawWeight                *WithdrawWeight                `json:"withdraw_weight,omitempty"`
	WithdrawContributionAndReward *WithdrawContributionAndReward `json:"withdraw_contribution_and_reward,omitempty"`
	ExecuteProposal               *ExecuteProposal               `json:"execute_proposal,omitempty"`
}

// Action ...
func (m ExecuteMsg) Action() string {
	a, _ := action(m)
	return a
}

// Validate ...
func (m ExecuteMsg) Validate() error {
	_, err := action(m)
	return err
}

// UnmarshalJSON ...
func (m *ExecuteMsg) UnmarshalJSON(data []byte) error {
	type plain ExecuteMsg
	if err := unmarshalOneOf(data, (*plain)(m)); err != nil {
		return err
	}
	return m.Validate()
}

// UpdateTokenPrice ...
type UpdateTokenPrice struct {
	TokenAddr string  `json:"token_addr"`
	USDPrice  sdk.Dec `json:"usd_price"`
}

// CreateCooperative ...
type CreateCooperative struct {
	Name                     string             `json:"name"`
	RiskProfile              RiskProfile        `json:"risk_profile"`
	InitialMembers           []Member           `json:"initial_members"`
	InitialWhitelistedTokens []WhitelistedToken `json:"initial_whitelisted_tokens"`
}

// FundCooperative ...
type FundCooperative struct {
	CooperativeName string  `json:"cooperative_name"`
	Token           string  `json:"token"`
	IsNative        bool    `json:"is_native"`
	Amount          sdk.Int `json:"amount"`
}

// Borrow ...
type Borrow struct {
	CooperativeName string    `json:"cooperative_name"`
	TokensIn        []string  `json:"tokens_in"`
	AmountIn        []sdk.Int `json:"amount_in"`
	TokenOut        string    `json:"token_out"`
	MinAmountOut    sdk.Int   `json:"min_amount_out"`
}

// Repay ...
type Repay struct {
	CooperativeName string `json:"cooperative_name"`
	Token           string `json:"token"`
}

// Propose ...
type Propose struct {
	CooperativeName string   `json:"cooperative_name"`
	Proposal        Proposal `json:"proposal"`
}

// VoteOnProposal ...
type VoteOnProposal struct {
	CooperativeName string  `json:"cooperative_name"`
	ProposalID      uint64  `json:"proposal_id"`
	Weight          sdk.Int `json:"weight"`
	Aye             bool    `json:"aye"`
}

// WithdrawWeight ...
type WithdrawWeight struct {
	CooperativeName string `json:"cooperative_name"`
	ProposalID      uint64 `json:"proposal_id"`
}

// WithdrawContributionAndReward ...
type WithdrawContributionAndReward struct {
	CooperativeName string `json:"cooperative_name"`
	Token           string `json:"token"`
}

// ExecuteProposal ...
type ExecuteProposal struct {
	CooperativeName string `json:"cooperative_name"`
	ProposalID      uint64 `json:"proposal_id"`
}

// CW20ExecuteMsg is execute message of a cw20 token contract. Only actions used by the client are listed.
type CW20ExecuteMsg struct {
	IncreaseAllowance *IncreaseAllowance `json:"increase_allowance,omitempty"`
}

// Action ...
func (m CW20ExecuteMsg) Action() string {
	a, _ := action(m)
	return a
}

// Validate ...
func (m CW20ExecuteMsg) Validate() error {
	_, err := action(m)
	return err
}

// UnmarshalJSON ...
func (m *CW20ExecuteMsg) UnmarshalJSON(data []byte) error {
	type plain CW20ExecuteMsg
	if err := unmarshalOneOf(data, (*plain)(m)); err != nil {
		return err
	}
	return m.Validate()
}

// IncreaseAllowance allows spender to access an additional amount of tokens from the sender's account.
type IncreaseAllowance struct {
	Spender string      `json:"spender"`
	Amount  sdk.Int     `json:"amount"`
	Expires *Expiration `json:"expires,omitempty"`
}
