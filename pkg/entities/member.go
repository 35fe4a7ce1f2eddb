package entities

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/pkg/msg"
)

// unknownMemberAddress is returned by the contract as address of a member which doesn't exist.
const unknownMemberAddress = "0"

// Member of a cooperative.
type Member struct {
	Address string
	// Contribution maps token id to contributed amount.
	Contribution map[uint64]sdk.Int
	// Share maps token id to share amount.
	Share           map[uint64]sdk.Int
	JoinedAt        time.Time
	ReputationScore sdk.Dec
	ActiveLoans     []Loan
}

// NewMember returns a member without contributions which joins at joinedAt.
func NewMember(address string, joinedAt time.Time, reputationScore string) (Member, error) {
	score, err := ParseFraction(reputationScore)
	if err != nil {
		return Member{}, err
	}

	m := Member{
		Address:         address,
		Contribution:    map[uint64]sdk.Int{},
		Share:           map[uint64]sdk.Int{},
		JoinedAt:        joinedAt,
		ReputationScore: score,
	}

	if err := m.Validate(); err != nil {
		return Member{}, err
	}

	return m, nil
}

// Exists reports whether the member was found by the contract.
func (m Member) Exists() bool {
	return m.Address != "" && m.Address != unknownMemberAddress
}

// Validate ...
func (m Member) Validate() error {
	if !IsAddressValid(m.Address) {
		return invalid("member", "address %q is invalid", m.Address)
	}

	for id, v := range m.Contribution {
		if !isNonNegative(v) {
			return invalid("member", "contribution of token %d is negative", id)
		}
	}

	for id, v := range m.Share {
		if !isNonNegative(v) {
			return invalid("member", "share of token %d is negative", id)
		}
	}

	if !m.ReputationScore.IsNil() && m.ReputationScore.IsNegative() {
		return invalid("member", "reputation score is negative")
	}

	for _, l := range m.ActiveLoans {
		if err := l.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ToMsg ...
func (m Member) ToMsg() msg.Member {
	out := msg.Member{
		Address:         m.Address,
		Contribution:    ledgerToMsg(m.Contribution),
		Share:           ledgerToMsg(m.Share),
		JoinedAt:        toUnix(m.JoinedAt),
		ReputationScore: decOrZero(m.ReputationScore),
		ActiveLoans:     make([]msg.Loan, len(m.ActiveLoans)),
	}

	for i, l := range m.ActiveLoans {
		out.ActiveLoans[i] = l.ToMsg()
	}

	return out
}

// MemberFromMsg ...
func MemberFromMsg(m msg.Member) Member {
	out := Member{
		Address:         m.Address,
		Contribution:    ledgerFromMsg(m.Contribution),
		Share:           ledgerFromMsg(m.Share),
		JoinedAt:        unixTime(m.JoinedAt),
		ReputationScore: m.ReputationScore,
		ActiveLoans:     make([]Loan, len(m.ActiveLoans)),
	}

	for i, l := range m.ActiveLoans {
		out.ActiveLoans[i] = LoanFromMsg(l)
	}

	return out
}
