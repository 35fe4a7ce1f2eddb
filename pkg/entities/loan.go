package entities

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/pkg/msg"
)

// LoanStatus ...
type LoanStatus string

// nolint
const (
	LoanActive    LoanStatus = "Active"
	LoanRepaid    LoanStatus = "Repaid"
	LoanDefaulted LoanStatus = "Defaulted"
)

// Loan is an entry of a member's active loans list.
type Loan struct {
	ID     uint64
	Amount sdk.Int
	Token  string
	// Collaterals and CollateralsAmount are matched by position.
	Collaterals       []string
	CollateralsAmount []sdk.Int
	InterestRate      sdk.Dec
	Status            LoanStatus
}

// IsActive ...
func (l Loan) IsActive() bool {
	return l.Status == LoanActive
}

// Validate ...
func (l Loan) Validate() error {
	if len(l.Collaterals) != len(l.CollateralsAmount) {
		return invalid("loan", "%d collaterals have %d amounts", len(l.Collaterals), len(l.CollateralsAmount))
	}

	if !isNonNegative(l.Amount) {
		return invalid("loan", "amount is negative")
	}

	switch l.Status {
	case LoanActive, LoanRepaid, LoanDefaulted:
	default:
		return invalid("loan", "unknown status %q", l.Status)
	}

	return nil
}

// ToMsg ...
func (l Loan) ToMsg() msg.Loan {
	out := msg.Loan{
		ID:                l.ID,
		Amount:            intOrZero(l.Amount),
		Token:             l.Token,
		Collaterals:       append([]string{}, l.Collaterals...),
		CollateralsAmount: make([]sdk.Int, len(l.CollateralsAmount)),
		InterestRate:      decOrZero(l.InterestRate),
		Status:            string(l.Status),
	}

	for i, v := range l.CollateralsAmount {
		out.CollateralsAmount[i] = intOrZero(v)
	}

	return out
}

// LoanFromMsg ...
func LoanFromMsg(m msg.Loan) Loan {
	return Loan{
		ID:                m.ID,
		Amount:            intOrZero(m.Amount),
		Token:             m.Token,
		Collaterals:       m.Collaterals,
		CollateralsAmount: m.CollateralsAmount,
		InterestRate:      m.InterestRate,
		Status:            LoanStatus(m.Status),
	}
}
