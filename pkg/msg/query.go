package msg

// Query action names.
const (
	QueryGetCooperative             = "get_cooperative"
	QueryGetMemberInfo              = "get_member_info"
	QueryMemberContributionAndShare = "member_contribution_and_share"
	QueryListCooperatives           = "list_cooperatives"
	QueryGetProposal                = "get_proposal"
	QueryGetWhitelistedTokens       = "get_whitelisted_tokens"
	QueryGetTokenID                 = "get_token_id"
	QueryAllowance                  = "allowance"
)

var (
	_ OneOf = QueryMsg{}
	_ OneOf = CW20QueryMsg{}
)

// QueryMsg is query message of the ajor contract.
type QueryMsg struct {
	GetCooperative             *GetCooperative             `json:"get_cooperative,omitempty"`
	GetMemberInfo              *GetMemberInfo              `json:"get_member_info,omitempty"`
	MemberContributionAndShare *MemberContributionAndShare `json:"member_contribution_and_share,omitempty"`
	ListCooperatives           *ListCooperatives           `json:"list_cooperatives,omitempty"`
	GetProposal                *GetProposal                `json:"get_proposal,omitempty"`
	GetWhitelistedTokens       *GetWhitelistedTokens       `json:"get_whitelisted_tokens,omitempty"`
	GetTokenID                 *GetTokenID                 `json:"get_token_id,omitempty"`
}

// Action ...
func (m QueryMsg) Action() string {
	a, _ := action(m)
	return a
}

// Validate ...
func (m QueryMsg) Validate() error {
	_, err := action(m)
	return err
}

// UnmarshalJSON ...
func (m *QueryMsg) UnmarshalJSON(data []byte) error {
	type plain QueryMsg
	if err := unmarshalOneOf(data, (*plain)(m)); err != nil {
		return err
	}
	return m.Validate()
}

// GetCooperative ...
type GetCooperative struct {
	CooperativeName string `json:"cooperative_name"`
}

// GetMemberInfo ...
type GetMemberInfo struct {
	CooperativeName string `json:"cooperative_name"`
	Member          string `json:"member"`
}

// MemberContributionAndShare ...
type MemberContributionAndShare struct {
	CooperativeName string `json:"cooperative_name"`
	MemberAddress   string `json:"member_address"`
}

// ListCooperatives lists cooperative names between inclusive bounds.
type ListCooperatives struct {
	Min *string `json:"min,omitempty"`
	Max *string `json:"max,omitempty"`
}

// GetProposal ...
type GetProposal struct {
	ProposalID uint64 `json:"proposal_id"`
}

// GetWhitelistedTokens ...
type GetWhitelistedTokens struct {
	CooperativeName string `json:"cooperative_name"`
}

// GetTokenID ...
type GetTokenID struct {
	Token string `json:"token"`
}

// CW20QueryMsg is query message of a cw20 token contract.
type CW20QueryMsg struct {
	Allowance *Allowance `json:"allowance,omitempty"`
}

// Action ...
func (m CW20QueryMsg) Action() string {
	a, _ := action(m)
	return a
}

// Validate ...
func (m CW20QueryMsg) Validate() error {
	_, err := action(m)
	return err
}

// UnmarshalJSON ...
func (m *CW20QueryMsg) UnmarshalJSON(data []byte) error {
	type plain CW20QueryMsg
	if err := unmarshalOneOf(data, (*plain)(m)); err != nil {
		return err
	}
	return m.Validate()
}

// Allowance ...
type Allowance struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}
