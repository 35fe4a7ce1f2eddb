package entities

import (
	"sort"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/pkg/msg"
)

// Limits enforced by the contract on cooperative creation.
const (
	MaxInitialMembers           = 20
	MaxInitialWhitelistedTokens = 5
)

// RiskProfile of cooperative.
type RiskProfile struct {
	InterestRate sdk.Dec
	// CollateralizationRatio is a multiplier of the loan value, e.g. 1.5 means 150%.
	CollateralizationRatio sdk.Dec
}

// NewRiskProfile returns validated risk profile.
func NewRiskProfile(interestRate, collateralizationRatio string) (RiskProfile, error) {
	ir, err := ParseFraction(interestRate)
	if err != nil {
		return RiskProfile{}, err
	}

	cr, err := ParseFraction(collateralizationRatio)
	if err != nil {
		return RiskProfile{}, err
	}

	p := RiskProfile{InterestRate: ir, CollateralizationRatio: cr}
	if err := p.Validate(); err != nil {
		return RiskProfile{}, err
	}

	return p, nil
}

// Validate ...
func (p RiskProfile) Validate() error {
	if !isUnitFraction(p.InterestRate) {
		return invalid("risk profile", "interest rate must be in (0, 1]")
	}

	// collateralization ratio is allowed to exceed 1
	if p.CollateralizationRatio.IsNil() || !p.CollateralizationRatio.IsPositive() {
		return invalid("risk profile", "collateralization ratio must be positive")
	}

	return nil
}

// ToMsg ...
func (p RiskProfile) ToMsg() msg.RiskProfile {
	return msg.RiskProfile{
		InterestRate:           decOrZero(p.InterestRate),
		CollateralizationRatio: decOrZero(p.CollateralizationRatio),
	}
}

// Cooperative is a named pool of members, collateral and whitelisted tokens.
type Cooperative struct {
	Name              string
	RiskProfile       RiskProfile
	Members           []Member
	WhitelistedTokens []WhitelistedToken
	TotalFunds        map[uint64]sdk.Int
}

// Validate ...
func (c Cooperative) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("cooperative", "name is empty")
	}

	if err := c.RiskProfile.Validate(); err != nil {
		return err
	}

	ids := make(map[uint64]struct{}, len(c.WhitelistedTokens))
	resolved := true
	for _, t := range c.WhitelistedTokens {
		if err := t.Validate(); err != nil {
			return err
		}
		if t.ID == 0 {
			resolved = false
		}
		ids[t.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(c.Members))
	for _, m := range c.Members {
		if err := m.Validate(); err != nil {
			return err
		}

		if _, ok := seen[m.Address]; ok {
			return invalid("cooperative", "member %s is listed twice", m.Address)
		}
		seen[m.Address] = struct{}{}

		// ledger keys can be checked only when all token ids are known
		if !resolved {
			continue
		}
		if err := checkLedgerKeys(m, ids); err != nil {
			return err
		}
	}

	return nil
}

func checkLedgerKeys(m Member, ids map[uint64]struct{}) error {
	for _, ledger := range []map[uint64]sdk.Int{m.Contribution, m.Share} {
		for id := range ledger {
			if _, ok := ids[id]; !ok {
				return invalid("member", "%s holds token %d which is not whitelisted", m.Address, id)
			}
		}
	}
	return nil
}

// Token finds whitelisted token by denom or contract address.
func (c Cooperative) Token(key string) (WhitelistedToken, bool) {
	for _, t := range c.WhitelistedTokens {
		if t.Matches(key) {
			return t, true
		}
	}
	return WhitelistedToken{}, false
}

// Member finds member by address.
func (c Cooperative) Member(address string) (Member, bool) {
	for _, m := range c.Members {
		if m.Address == address {
			return m, true
		}
	}
	return Member{}, false
}

// CreateMsg returns create_cooperative message.
func (c Cooperative) CreateMsg() (msg.ExecuteMsg, error) {
	if err := c.Validate(); err != nil {
		return msg.ExecuteMsg{}, err
	}

	if len(c.Members) > MaxInitialMembers {
		return msg.ExecuteMsg{}, invalid("cooperative", "no more than %d initial members are allowed", MaxInitialMembers)
	}

	if len(c.WhitelistedTokens) > MaxInitialWhitelistedTokens {
		return msg.ExecuteMsg{}, invalid("cooperative", "no more than %d initial tokens are allowed", MaxInitialWhitelistedTokens)
	}

	m := c.ToMsg()

	return msg.ExecuteMsg{CreateCooperative: &msg.CreateCooperative{
		Name:                     m.Name,
		RiskProfile:              m.RiskProfile,
		InitialMembers:           m.Members,
		InitialWhitelistedTokens: m.WhitelistedTokens,
	}}, nil
}

// ToMsg ...
func (c Cooperative) ToMsg() msg.Cooperative {
	out := msg.Cooperative{
		Name:              c.Name,
		TotalFunds:        ledgerToMsg(c.TotalFunds),
		Members:           make([]msg.Member, len(c.Members)),
		RiskProfile:       c.RiskProfile.ToMsg(),
		WhitelistedTokens: make([]msg.WhitelistedToken, len(c.WhitelistedTokens)),
	}

	for i, m := range c.Members {
		out.Members[i] = m.ToMsg()
	}

	for i, t := range c.WhitelistedTokens {
		out.WhitelistedTokens[i] = t.ToMsg()
	}

	return out
}

// CooperativeFromMsg ...
func CooperativeFromMsg(m msg.Cooperative) Cooperative {
	out := Cooperative{
		Name: m.Name,
		RiskProfile: RiskProfile{
			InterestRate:           m.RiskProfile.InterestRate,
			CollateralizationRatio: m.RiskProfile.CollateralizationRatio,
		},
		Members:           make([]Member, len(m.Members)),
		WhitelistedTokens: make([]WhitelistedToken, len(m.WhitelistedTokens)),
		TotalFunds:        ledgerFromMsg(m.TotalFunds),
	}

	for i, v := range m.Members {
		out.Members[i] = MemberFromMsg(v)
	}

	for i, v := range m.WhitelistedTokens {
		out.WhitelistedTokens[i] = WhitelistedTokenFromMsg(v)
	}

	return out
}

func ledgerToMsg(l map[uint64]sdk.Int) []msg.TokenIDAmount {
	out := make([]msg.TokenIDAmount, 0, len(l))
	for id, amount := range l {
		out = append(out, msg.TokenIDAmount{TokenID: id, Amount: intOrZero(amount)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TokenID < out[j].TokenID })

	return out
}

func ledgerFromMsg(l []msg.TokenIDAmount) map[uint64]sdk.Int {
	out := make(map[uint64]sdk.Int, len(l))
	for _, v := range l {
		if prev, ok := out[v.TokenID]; ok {
			out[v.TokenID] = prev.Add(intOrZero(v.Amount))
			continue
		}
		out[v.TokenID] = intOrZero(v.Amount)
	}
	return out
}

func unixTime(sec uint64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}

func toUnix(t time.Time) uint64 {
	if t.IsZero() || t.Unix() < 0 {
		return 0
	}
	return uint64(t.Unix())
}
