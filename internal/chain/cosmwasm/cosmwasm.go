// Package cosmwasm contains implementation of chain.Chain on top of cosmos-sdk client and wasm module.
package cosmwasm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/avast/retry-go"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/sirupsen/logrus"
	rpchttp "github.com/tendermint/tendermint/rpc/client/http"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ajor-finance/ajor/internal/chain"
)

const keyName = "ajor"

// ErrNoSigner is returned by Execute when the chain was created without mnemonic.
var ErrNoSigner = errors.New("signer is not configured")

// ErrNotIncluded is returned when transaction was broadcast but wasn't found in a block in time.
// Such errors are never retried since the transaction can still be included.
var ErrNotIncluded = errors.New("transaction is not included")

var log = logrus.WithField("package", "cosmwasm")

var configOnce sync.Once // nolint:gochecknoglobals

// Config ...
type Config struct {
	NodeURI       string
	ChainID       string
	AddressPrefix string
	// Mnemonic of the signer. Chain is read-only if it's empty.
	Mnemonic      string
	GasPrices     string
	GasAdjustment float64

	InclusionTimeout time.Duration
	PollInterval     time.Duration
}

// Chain implements chain.Chain.
type Chain struct {
	ctx client.Context
	txf tx.Factory

	inclusionTimeout time.Duration
	pollInterval     time.Duration

	mu sync.Mutex
}

// New returns new instance of Chain connected to cfg.NodeURI.
func New(cfg Config) (*Chain, error) {
	configOnce.Do(func() {
		c := sdk.GetConfig()
		c.SetBech32PrefixForAccount(cfg.AddressPrefix, cfg.AddressPrefix+sdk.PrefixPublic)
		c.SetBech32PrefixForValidator(
			cfg.AddressPrefix+sdk.PrefixValidator+sdk.PrefixOperator,
			cfg.AddressPrefix+sdk.PrefixValidator+sdk.PrefixOperator+sdk.PrefixPublic,
		)
	})

	node, err := rpchttp.New(cfg.NodeURI, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc client: %w", err)
	}

	registry := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	wasmtypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	txConfig := authtx.NewTxConfig(cdc, authtx.DefaultSignModes)

	kr := keyring.NewInMemory()

	ctx := client.Context{}.
		WithCodec(cdc).
		WithInterfaceRegistry(registry).
		WithTxConfig(txConfig).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithClient(node).
		WithNodeURI(cfg.NodeURI).
		WithChainID(cfg.ChainID).
		WithKeyring(kr).
		WithBroadcastMode(flags.BroadcastSync)

	if cfg.Mnemonic != "" {
		info, err := kr.NewAccount(keyName, cfg.Mnemonic, "", sdk.FullFundraiserPath, hd.Secp256k1)
		if err != nil {
			return nil, fmt.Errorf("failed to import mnemonic: %w", err)
		}

		ctx = ctx.
			WithFrom(keyName).
			WithFromName(keyName).
			WithFromAddress(info.GetAddress())
	}

	txf := tx.Factory{}.
		WithChainID(cfg.ChainID).
		WithKeybase(kr).
		WithTxConfig(txConfig).
		WithAccountRetriever(authtypes.AccountRetriever{}).
		WithGasAdjustment(cfg.GasAdjustment).
		WithGasPrices(cfg.GasPrices).
		WithSignMode(txConfig.SignModeHandler().DefaultMode())

	return &Chain{
		ctx: ctx,
		txf: txf,

		inclusionTimeout: cfg.InclusionTimeout,
		pollInterval:     cfg.PollInterval,
	}, nil
}

// Account returns address of the signer. It's empty for read-only chain.
func (c *Chain) Account() string {
	if c.ctx.FromAddress.Empty() {
		return ""
	}
	return c.ctx.FromAddress.String()
}

// Execute ...
func (c *Chain) Execute(ctx context.Context, req chain.ExecuteRequest) (*chain.TxResult, error) {
	if c.ctx.FromAddress.Empty() {
		return nil, ErrNoSigner
	}

	if req.Sender != c.Account() {
		return nil, fmt.Errorf("sender %s doesn't match signer %s", req.Sender, c.Account()) // nolint:goerr113
	}

	m := &wasmtypes.MsgExecuteContract{
		Sender:   req.Sender,
		Contract: req.Contract,
		Msg:      wasmtypes.RawContractMessage(req.Msg),
		Funds:    req.Funds,
	}
	if err := m.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	hash, err := c.broadcast(ctx, req.FeeMode, req.Memo, m)
	if err != nil {
		return nil, err
	}

	log.WithField("tx", hash).WithField("contract", req.Contract).Debug("tx is broadcast")

	return c.waitForInclusion(ctx, hash)
}

func (c *Chain) broadcast(ctx context.Context, feeMode, memo string, msgs ...sdk.Msg) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	txf, err := c.txf.WithMemo(memo).Prepare(c.ctx)
	if err != nil {
		return "", chain.Transient(fmt.Errorf("failed to prepare factory: %w", err))
	}

	switch feeMode {
	case "", chain.FeeModeAuto:
		_, gas, err := tx.CalculateGas(c.ctx, txf, msgs...)
		if err != nil {
			return "", grpcError(err)
		}
		txf = txf.WithGas(gas)
	default:
		gas, err := strconv.ParseUint(feeMode, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid fee mode %q: %w", feeMode, err)
		}
		txf = txf.WithGas(gas)
	}

	txb, err := tx.BuildUnsignedTx(txf, msgs...)
	if err != nil {
		return "", fmt.Errorf("failed to build tx: %w", err)
	}

	if err := tx.Sign(txf, c.ctx.GetFromName(), txb, true); err != nil {
		return "", fmt.Errorf("failed to sign tx: %w", err)
	}

	txBytes, err := c.ctx.TxConfig.TxEncoder()(txb.GetTx())
	if err != nil {
		return "", fmt.Errorf("failed to encode tx: %w", err)
	}

	resp, err := c.ctx.BroadcastTx(txBytes)
	if err != nil {
		return "", chain.Transient(fmt.Errorf("failed to broadcast tx: %w", err))
	}

	if err := checkTxError(resp.Codespace, resp.Code, resp.RawLog); err != nil {
		return "", err
	}

	return resp.TxHash, nil
}

func (c *Chain) waitForInclusion(ctx context.Context, hash string) (*chain.TxResult, error) {
	attempts := uint(1)
	if c.pollInterval > 0 {
		attempts += uint(c.inclusionTimeout / c.pollInterval)
	}

	var resp *sdk.TxResponse
	err := retry.Do(
		func() error {
			var err error
			resp, err = authtx.QueryTx(c.ctx, hash)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrNotIncluded, hash, err)
	}

	if resp.Code != 0 {
		return nil, &chain.RejectedError{Code: resp.Code, Codespace: resp.Codespace, Log: resp.RawLog}
	}

	return &chain.TxResult{
		Hash:   resp.TxHash,
		Height: resp.Height,
		Events: eventsFromLogs(resp.Logs),
	}, nil
}

// Query ...
func (c *Chain) Query(ctx context.Context, contract string, msg json.RawMessage) (json.RawMessage, error) {
	resp, err := wasmtypes.NewQueryClient(c.ctx).SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contract,
		QueryData: wasmtypes.RawContractMessage(msg),
	})
	if err != nil {
		return nil, grpcError(err)
	}

	return json.RawMessage(resp.Data), nil
}

// Ping ...
func (c *Chain) Ping(ctx context.Context) error {
	node, err := c.ctx.GetNode()
	if err != nil {
		return fmt.Errorf("failed to get rpc client: %w", err)
	}
	st, err := node.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to check node status: %w", err)
	}

	if st.NodeInfo.Network != c.ctx.ChainID {
		return fmt.Errorf("node is connected to %s instead of %s", st.NodeInfo.Network, c.ctx.ChainID)
	}
	if st.SyncInfo.CatchingUp {
		return errors.New("node is catching up")
	}

	return nil
}

func checkTxError(codespace string, code uint32, rawLog string) error {
	if code == 0 {
		return nil
	}

	if codespace == sdkerrors.RootCodespace {
		switch code {
		case sdkerrors.ErrTxInMempoolCache.ABCICode():
			// the same tx is already known to the node, waiting for it is enough
			return nil
		case sdkerrors.ErrWrongSequence.ABCICode(), sdkerrors.ErrMempoolIsFull.ABCICode():
			return chain.Transient(fmt.Errorf("failed to broadcast tx: %s", rawLog)) // nolint:goerr113
		}
	}

	return &chain.RejectedError{Code: code, Codespace: codespace, Log: rawLog}
}

func grpcError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return chain.Transient(err)
	}

	switch st.Code() { // nolint:exhaustive
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return chain.Transient(err)
	default:
		return &chain.RejectedError{Code: uint32(st.Code()), Codespace: "grpc", Log: st.Message()}
	}
}

func eventsFromLogs(logs sdk.ABCIMessageLogs) []chain.Event {
	var out []chain.Event

	for _, l := range logs {
		for _, e := range l.Events {
			ev := chain.Event{
				Type:       e.Type,
				Attributes: make(map[string]string, len(e.Attributes)),
			}

			for _, a := range e.Attributes {
				if _, ok := ev.Attributes[a.Key]; !ok {
					ev.Attributes[a.Key] = a.Value
				}
			}

			out = append(out, ev)
		}
	}

	return out
}
