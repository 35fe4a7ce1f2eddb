package entities

import (
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/pkg/msg"
)

// ProposalType ...
type ProposalType string

// nolint
const (
	ProposalWhitelistToken      ProposalType = "WhitelistToken"
	ProposalAddMember           ProposalType = "AddMember"
	ProposalAddLP               ProposalType = "AddLP"
	ProposalApproveLoan         ProposalType = "ApproveLoan"
	ProposalLiquidateCollateral ProposalType = "LiquidateCollateral"
)

// IsValid ...
func (t ProposalType) IsValid() bool {
	switch t {
	case ProposalWhitelistToken, ProposalAddMember, ProposalAddLP, ProposalApproveLoan, ProposalLiquidateCollateral:
		return true
	default:
		return false
	}
}

// ProposalOutcome is set by the contract once quorum is reached.
type ProposalOutcome string

// nolint
const (
	OutcomePassed   ProposalOutcome = "Passed"
	OutcomeRejected ProposalOutcome = "Rejected"
)

// ProposalStatus is the client-side view of proposal lifecycle.
type ProposalStatus string

// nolint
const (
	ProposalOpen       ProposalStatus = "open"
	ProposalExecutable ProposalStatus = "executable"
	ProposalExecuted   ProposalStatus = "executed"
)

// ProposalData is type-specific payload. Empty strings and nil pointers mean the field isn't set.
type ProposalData struct {
	// WhitelistToken
	Denom        string
	TokenAddr    string
	IsNative     *bool
	MaxLoanRatio *sdk.Dec

	// AddMember
	NewMemberAddr string
}

// Vote ...
type Vote struct {
	Voter      string
	Conviction sdk.Int
	VotedAt    time.Time
}

// Proposal is a governance record. ID is assigned by the contract.
type Proposal struct {
	ID          uint64
	Description string
	Type        ProposalType
	Data        ProposalData
	Votes       []Vote
	AyeCount    uint64
	NayCount    uint64
	AyeWeights  uint64
	NayWeights  uint64
	EndTime     time.Time
	Quorum      *sdk.Dec
	Outcome     ProposalOutcome
	Executed    bool
}

// NewProposal returns validated proposal which isn't submitted yet.
func NewProposal(description string, t ProposalType, data ProposalData, endTime time.Time) (Proposal, error) {
	p := Proposal{
		Description: description,
		Type:        t,
		Data:        data,
		EndTime:     endTime,
	}

	if err := p.Validate(); err != nil {
		return Proposal{}, err
	}

	return p, nil
}

// Validate ...
func (p Proposal) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return invalid("proposal", "description is empty")
	}

	if !p.Type.IsValid() {
		return invalid("proposal", "unknown type %q", p.Type)
	}

	if p.EndTime.IsZero() {
		return invalid("proposal", "end time is not set")
	}

	if p.Quorum != nil && !isUnitFraction(*p.Quorum) {
		return invalid("proposal", "quorum must be in (0, 1]")
	}

	switch p.Outcome {
	case "", OutcomePassed, OutcomeRejected:
	default:
		return invalid("proposal", "unknown outcome %q", p.Outcome)
	}

	switch p.Type { // nolint:exhaustive
	case ProposalWhitelistToken:
		return p.Data.validateWhitelistToken()
	case ProposalAddMember:
		if !IsAddressValid(p.Data.NewMemberAddr) {
			return invalid("proposal", "new member address %q is invalid", p.Data.NewMemberAddr)
		}
	}

	return nil
}

func (d ProposalData) validateWhitelistToken() error {
	if d.Denom == "" {
		return invalid("proposal", "denom of token to whitelist is empty")
	}

	if d.MaxLoanRatio == nil || !isUnitFraction(*d.MaxLoanRatio) {
		return invalid("proposal", "max loan ratio must be in (0, 1]")
	}

	native := d.IsNative == nil || *d.IsNative
	if native && d.TokenAddr != "" {
		return invalid("proposal", "native token %s must not have contract address", d.Denom)
	}

	if !native && !IsAddressValid(d.TokenAddr) {
		return invalid("proposal", "non-native token %s must have valid contract address", d.Denom)
	}

	return nil
}

// Status derives lifecycle state at the moment now.
func (p Proposal) Status(now time.Time) ProposalStatus {
	switch {
	case p.Executed:
		return ProposalExecuted
	case p.Outcome != "" || !now.Before(p.EndTime):
		return ProposalExecutable
	default:
		return ProposalOpen
	}
}

// AcceptsVotes ...
func (p Proposal) AcceptsVotes(now time.Time) bool {
	return p.Status(now) == ProposalOpen
}

// ProposeMsg returns propose message. Proposal's id is sent as is, the contract assigns its own.
func (p Proposal) ProposeMsg(cooperative string) (msg.ExecuteMsg, error) {
	if strings.TrimSpace(cooperative) == "" {
		return msg.ExecuteMsg{}, invalid("proposal", "cooperative name is empty")
	}

	if err := p.Validate(); err != nil {
		return msg.ExecuteMsg{}, err
	}

	return msg.ExecuteMsg{Propose: &msg.Propose{
		CooperativeName: cooperative,
		Proposal:        p.ToMsg(),
	}}, nil
}

// ToMsg ...
func (p Proposal) ToMsg() msg.Proposal {
	out := msg.Proposal{
		ID:           p.ID,
		Description:  p.Description,
		Data:         p.Data.ToMsg(),
		Votes:        make([]msg.Vote, len(p.Votes)),
		AyeCount:     p.AyeCount,
		NayCount:     p.NayCount,
		AyeWeights:   p.AyeWeights,
		NayWeights:   p.NayWeights,
		EndTime:      toUnix(p.EndTime),
		Quorum:       p.Quorum,
		ProposalType: string(p.Type),
		Executed:     p.Executed,
	}

	for i, v := range p.Votes {
		out.Votes[i] = msg.Vote{
			Voter:      v.Voter,
			Conviction: intOrZero(v.Conviction),
			VotedAt:    toUnix(v.VotedAt),
		}
	}

	if p.Outcome != "" {
		o := string(p.Outcome)
		out.Outcome = &o
	}

	return out
}

// ToMsg ...
func (d ProposalData) ToMsg() msg.ProposalData {
	var out msg.ProposalData

	if d.Denom != "" {
		v := d.Denom
		out.Denom = &v
	}
	if d.TokenAddr != "" {
		v := d.TokenAddr
		out.TokenAddr = &v
	}
	if d.IsNative != nil {
		v := *d.IsNative
		out.IsNative = &v
	}
	if d.MaxLoanRatio != nil {
		v := *d.MaxLoanRatio
		out.MaxLoanRatio = &v
	}
	if d.NewMemberAddr != "" {
		v := d.NewMemberAddr
		out.NewMemberAddr = &v
	}

	return out
}

// ProposalFromMsg ...
func ProposalFromMsg(m msg.Proposal) Proposal {
	out := Proposal{
		ID:          m.ID,
		Description: m.Description,
		Type:        ProposalType(m.ProposalType),
		Data:        ProposalDataFromMsg(m.Data),
		Votes:       make([]Vote, len(m.Votes)),
		AyeCount:    m.AyeCount,
		NayCount:    m.NayCount,
		AyeWeights:  m.AyeWeights,
		NayWeights:  m.NayWeights,
		EndTime:     unixTime(m.EndTime),
		Quorum:      m.Quorum,
		Executed:    m.Executed,
	}

	for i, v := range m.Votes {
		out.Votes[i] = Vote{
			Voter:      v.Voter,
			Conviction: intOrZero(v.Conviction),
			VotedAt:    unixTime(v.VotedAt),
		}
	}

	if m.Outcome != nil {
		out.Outcome = ProposalOutcome(*m.Outcome)
	}

	return out
}

// ProposalDataFromMsg ...
func ProposalDataFromMsg(m msg.ProposalData) ProposalData {
	var out ProposalData

	if m.Denom != nil {
		out.Denom = *m.Denom
	}
	if m.TokenAddr != nil {
		out.TokenAddr = *m.TokenAddr
	}
	if m.IsNative != nil {
		v := *m.IsNative
		out.IsNative = &v
	}
	if m.MaxLoanRatio != nil {
		v := *m.MaxLoanRatio
		out.MaxLoanRatio = &v
	}
	if m.NewMemberAddr != nil {
		out.NewMemberAddr = *m.NewMemberAddr
	}

	return out
}
