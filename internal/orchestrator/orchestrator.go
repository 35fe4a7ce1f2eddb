// Package orchestrator sequences protocol calls into complete operations.
//
// It decides how funds are attached to a call: native coins are sent with the call itself,
// cw20 tokens are authorised with increase_allowance on the token contract before the call.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/davecgh/go-spew/spew"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/ajor-finance/ajor/internal/chain"
	"github.com/ajor-finance/ajor/internal/storage"
	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

const (
	defaultTokenCacheSize = 256
	defaultAllowanceTTL   = 10 * time.Minute
)

var log = logrus.WithField("package", "orchestrator")

var (
	// ErrNotConnected is returned when an execute operation is called before Connect.
	ErrNotConnected = errors.New("session is not connected")
	// ErrAlreadyConnected is returned when Connect is called with another account.
	ErrAlreadyConnected = errors.New("session is already connected")
	// ErrInvalidRequest is returned when operation's arguments are invalid.
	ErrInvalidRequest = errors.New("invalid request")
)

// ActionError is returned by operations on remote failure.
type ActionError struct {
	Action string
	Err    error
}

// Error ...
func (e *ActionError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Action, e.Err)
}

// Unwrap ...
func (e *ActionError) Unwrap() error {
	return e.Err
}

func invalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Config ...
type Config struct {
	// Contract is address of the cooperative contract.
	Contract string
	// NativeDenom is denom of the chain's native coin, e.g. untrn.
	NativeDenom string
	// FeeMode is passed to the chain as is.
	FeeMode string
	Memo    string

	RetryAttempts uint
	RetryDelay    time.Duration

	AllowanceTTL   time.Duration
	TokenCacheSize int
}

// Session is either disconnected or ready with a bound account.
type Session struct {
	account string
}

// Account returns bound account.
func (s Session) Account() (string, bool) {
	return s.account, s.account != ""
}

// IsReady ...
func (s Session) IsReady() bool {
	return s.account != ""
}

// Orchestrator executes operations of the cooperative contract.
type Orchestrator struct {
	cfg     Config
	chain   chain.Chain
	journal storage.Journal

	allowances *allowanceTracker
	tokenIDs   *lru.ARCCache

	mu      sync.RWMutex
	session Session
}

// New returns new instance of Orchestrator.
func New(cfg Config, c chain.Chain, j storage.Journal) (*Orchestrator, error) {
	if !entities.IsAddressValid(cfg.Contract) {
		return nil, invalidRequest("contract address %q is invalid", cfg.Contract)
	}

	if err := sdk.ValidateDenom(cfg.NativeDenom); err != nil {
		return nil, invalidRequest("native denom: %s", err)
	}

	if cfg.FeeMode == "" {
		cfg.FeeMode = chain.FeeModeAuto
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 1
	}
	if cfg.AllowanceTTL == 0 {
		cfg.AllowanceTTL = defaultAllowanceTTL
	}
	if cfg.TokenCacheSize <= 0 {
		cfg.TokenCacheSize = defaultTokenCacheSize
	}

	cache, err := lru.NewARC(cfg.TokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token cache: %w", err)
	}

	if j == nil {
		j = storage.NewNop()
	}

	return &Orchestrator{
		cfg:        cfg,
		chain:      c,
		journal:    j,
		allowances: newAllowanceTracker(cfg.AllowanceTTL),
		tokenIDs:   cache,
	}, nil
}

// Config returns orchestrator's config.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Connect binds account to the session. It can be called once.
func (o *Orchestrator) Connect(account string) error {
	if !entities.IsAddressValid(account) {
		return invalidRequest("account %q is invalid", account)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session.IsReady() {
		if o.session.account == account {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrAlreadyConnected, o.session.account)
	}

	o.session = Session{account: account}
	log.WithField("account", account).Info("session is connected")

	return nil
}

// Session returns current session.
func (o *Orchestrator) Session() Session {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.session
}

func (o *Orchestrator) account() (string, error) {
	account, ok := o.Session().Account()
	if !ok {
		return "", ErrNotConnected
	}
	return account, nil
}

// Execute sends execute message to the cooperative contract.
func (o *Orchestrator) Execute(ctx context.Context, m msg.ExecuteMsg, funds sdk.Coins) (*chain.TxResult, error) {
	sender, err := o.account()
	if err != nil {
		return nil, err
	}

	return o.execute(ctx, sender, o.cfg.Contract, m, funds)
}

func (o *Orchestrator) execute(ctx context.Context, sender, contract string, m msg.OneOf, funds sdk.Coins) (*chain.TxResult, error) {
	payload, err := msg.Encode(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	action := m.Action()
	l := log.WithFields(logrus.Fields{
		"action":   action,
		"contract": contract,
		"funds":    funds.String(),
	})

	if l.Logger.IsLevelEnabled(logrus.DebugLevel) {
		l.Debug(spew.Sdump(m))
	}

	req := chain.ExecuteRequest{
		Sender:   sender,
		Contract: contract,
		Msg:      payload,
		FeeMode:  o.cfg.FeeMode,
		Memo:     o.cfg.Memo,
		Funds:    funds,
	}

	var res *chain.TxResult
	if err := retry.Do(
		func() error {
			var err error
			res, err = o.chain.Execute(ctx, req)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(o.cfg.RetryAttempts),
		retry.Delay(o.cfg.RetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, chain.ErrTransient)
		}),
		retry.OnRetry(func(n uint, err error) {
			l.WithError(err).Warnf("retrying execution, attempt %d", n+1)
		}),
	); err != nil {
		return nil, &ActionError{Action: action, Err: err}
	}

	l.WithField("tx", res.Hash).Info("executed")

	if err := o.journal.Append(ctx, storage.NewEntry(
		action, sender, contract, funds.String(), o.cfg.Memo, res.Hash, res.Height,
	)); err != nil {
		l.WithError(err).WithField("tx", res.Hash).Error("failed to append journal entry")
	}

	return res, nil
}

// Query sends query message to the cooperative contract and decodes response into resp.
func (o *Orchestrator) Query(ctx context.Context, m msg.QueryMsg, resp interface{}) error {
	return o.query(ctx, o.cfg.Contract, m, resp)
}

func (o *Orchestrator) query(ctx context.Context, contract string, m msg.OneOf, resp interface{}) error {
	payload, err := msg.Encode(m)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	var data []byte
	if err := retry.Do(
		func() error {
			var err error
			data, err = o.chain.Query(ctx, contract, payload)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(o.cfg.RetryAttempts),
		retry.Delay(o.cfg.RetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, chain.ErrTransient)
		}),
	); err != nil {
		return &ActionError{Action: m.Action(), Err: err}
	}

	if err := msg.Decode(data, resp); err != nil {
		return &ActionError{Action: m.Action(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// Ping ...
func (o *Orchestrator) Ping(ctx context.Context) error {
	return o.chain.Ping(ctx)
}
