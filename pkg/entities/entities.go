// Package entities contains validated in-memory views of the cooperative protocol's state.
//
// Entities are snapshots of the contract's state. They are used to build messages and to display
// query results; they are never the source of truth for a subsequent write.
package entities

import (
	"errors"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// AddressPrefix is bech32 prefix of accounts and contracts.
var AddressPrefix = "neutron" // nolint:gochecknoglobals

// ErrInvalidEntity is returned when entity is structurally invalid.
var ErrInvalidEntity = errors.New("invalid entity")

// InvalidEntityError describes why entity is invalid.
type InvalidEntityError struct {
	Entity string
	Reason string
}

// Error ...
func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidEntity, e.Entity, e.Reason)
}

// Unwrap ...
func (e *InvalidEntityError) Unwrap() error {
	return ErrInvalidEntity
}

func invalid(entity, format string, args ...interface{}) error {
	return &InvalidEntityError{
		Entity: entity,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Validator is implemented by all entities.
type Validator interface {
	Validate() error
}

// Validate validates entity.
func Validate(v Validator) error {
	return v.Validate()
}

// NormalizeName returns cooperative name in the form used by the contract as a key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsAddressValid checks that s is a bech32 address with AddressPrefix.
func IsAddressValid(s string) bool {
	hrp, _, err := bech32.DecodeAndConvert(s)
	return err == nil && hrp == AddressPrefix
}

// ParseAmount parses a non-negative integer amount.
func ParseAmount(s string) (sdk.Int, error) {
	v, ok := sdk.NewIntFromString(strings.TrimSpace(s))
	if !ok {
		return sdk.Int{}, invalid("amount", "%q is not an integer", s)
	}
	if v.IsNegative() {
		return sdk.Int{}, invalid("amount", "%q is negative", s)
	}
	return v, nil
}

// ParseFraction parses decimal fraction.
func ParseFraction(s string) (sdk.Dec, error) {
	v, err := sdk.NewDecFromStr(strings.TrimSpace(s))
	if err != nil {
		return sdk.Dec{}, invalid("decimal", "%q: %s", s, err)
	}
	return v, nil
}

// isUnitFraction reports whether d is in (0, 1].
func isUnitFraction(d sdk.Dec) bool {
	return !d.IsNil() && d.IsPositive() && d.LTE(sdk.OneDec())
}

func isNonNegative(i sdk.Int) bool {
	return !i.IsNil() && !i.IsNegative()
}

func intOrZero(i sdk.Int) sdk.Int {
	if i.IsNil() {
		return sdk.ZeroInt()
	}
	return i
}

func decOrZero(d sdk.Dec) sdk.Dec {
	if d.IsNil() {
		return sdk.ZeroDec()
	}
	return d
}
