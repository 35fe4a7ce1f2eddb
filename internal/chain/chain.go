// Package chain contains the interface of a CosmWasm chain the protocol client talks to.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/internal/health"
)

//go:generate mockgen -destination=./mock/chain_mock.go -package=mock -source=chain.go

// FeeModeAuto means gas is simulated and multiplied by the configured adjustment.
const FeeModeAuto = "auto"

// ErrTransient wraps transport failures which can be retried with the same message.
var ErrTransient = errors.New("transient chain error")

// ErrRejected is returned when the chain or contract refused the transaction.
var ErrRejected = errors.New("rejected by chain")

// RejectedError is a semantic rejection: an error returned by contract or ante handler.
type RejectedError struct {
	Code      uint32
	Codespace string
	Log       string
}

// Error ...
func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: code=%d codespace=%s: %s", ErrRejected, e.Code, e.Codespace, e.Log)
}

// Unwrap ...
func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// Transient marks err as transient.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTransient, err)
}

// ExecuteRequest is a single contract execution.
type ExecuteRequest struct {
	Sender   string
	Contract string
	// Msg is JSON encoded execute message.
	Msg     json.RawMessage
	FeeMode string
	Memo    string
	Funds   sdk.Coins
}

// Event is an abci event emitted by the transaction.
type Event struct {
	Type       string
	Attributes map[string]string
}

// TxResult is the result of an included transaction.
type TxResult struct {
	Hash   string
	Height int64
	Events []Event
}

// Attribute returns value of the first attribute with key in events of eventType.
func (r *TxResult) Attribute(eventType, key string) (string, bool) {
	if r == nil {
		return "", false
	}

	for _, e := range r.Events {
		if e.Type != eventType {
			continue
		}
		if v, ok := e.Attributes[key]; ok {
			return v, true
		}
	}

	return "", false
}

// Chain is interface for interacting with the chain.
type Chain interface {
	health.Pinger

	// Execute signs, broadcasts and waits for inclusion of execute contract message.
	Execute(ctx context.Context, req ExecuteRequest) (*TxResult, error)
	// Query performs smart query of contract state.
	Query(ctx context.Context, contract string, msg json.RawMessage) (json.RawMessage, error)
}
