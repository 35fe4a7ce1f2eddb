package entities

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/pkg/msg"
)

// NativeTokenKey is the key under which the contract stores ids of native tokens.
const NativeTokenKey = "NATIVE"

// WhitelistedToken is an asset approved for contribution and borrowing within a cooperative.
type WhitelistedToken struct {
	Denom        string
	ContractAddr string
	IsNative     bool
	MaxLoanRatio sdk.Dec

	// ID is numeric token id used as ledger key. Zero means the id is not resolved yet.
	ID uint64
	// USDPrice is the price last set by update_token_price, nil if unknown.
	USDPrice *sdk.Dec
}

// NewWhitelistedToken returns validated token.
func NewWhitelistedToken(denom, contractAddr string, isNative bool, maxLoanRatio string) (WhitelistedToken, error) {
	ratio, err := ParseFraction(maxLoanRatio)
	if err != nil {
		return WhitelistedToken{}, err
	}

	t := WhitelistedToken{
		Denom:        denom,
		ContractAddr: contractAddr,
		IsNative:     isNative,
		MaxLoanRatio: ratio,
	}

	if err := t.Validate(); err != nil {
		return WhitelistedToken{}, err
	}

	return t, nil
}

// Validate ...
func (t WhitelistedToken) Validate() error {
	if t.Denom == "" {
		return invalid("whitelisted token", "denom is empty")
	}

	if t.IsNative && t.ContractAddr != "" {
		return invalid("whitelisted token", "native token %s must not have contract address", t.Denom)
	}

	if !t.IsNative {
		if t.ContractAddr == "" {
			return invalid("whitelisted token", "non-native token %s must have contract address", t.Denom)
		}
		if !IsAddressValid(t.ContractAddr) {
			return invalid("whitelisted token", "contract address %q is invalid", t.ContractAddr)
		}
	}

	if !isUnitFraction(t.MaxLoanRatio) {
		return invalid("whitelisted token", "max loan ratio of %s must be in (0, 1]", t.Denom)
	}

	return nil
}

// Key returns token identifier used by the contract: contract address for cw20 tokens and denom for native ones.
func (t WhitelistedToken) Key() string {
	if t.IsNative {
		return t.Denom
	}
	return t.ContractAddr
}

// TokenIDKey returns key of token in the contract's token id registry.
// All native tokens share NativeTokenKey there.
func (t WhitelistedToken) TokenIDKey() string {
	if t.IsNative {
		return NativeTokenKey
	}
	return t.ContractAddr
}

// Matches reports whether key identifies t by denom or contract address.
func (t WhitelistedToken) Matches(key string) bool {
	return key != "" && (key == t.Denom || key == t.ContractAddr)
}

// ToMsg ...
func (t WhitelistedToken) ToMsg() msg.WhitelistedToken {
	out := msg.WhitelistedToken{
		Denom:        t.Denom,
		IsNative:     t.IsNative,
		MaxLoanRatio: decOrZero(t.MaxLoanRatio),
	}

	if t.ContractAddr != "" {
		addr := t.ContractAddr
		out.ContractAddr = &addr
	}

	return out
}

// WhitelistedTokenFromMsg ...
func WhitelistedTokenFromMsg(m msg.WhitelistedToken) WhitelistedToken {
	t := WhitelistedToken{
		Denom:        m.Denom,
		IsNative:     m.IsNative,
		MaxLoanRatio: m.MaxLoanRatio,
	}

	if m.ContractAddr != nil {
		t.ContractAddr = *m.ContractAddr
	}

	return t
}
