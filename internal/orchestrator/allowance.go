package orchestrator

import (
	"context"
	"strings"
	"sync"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/patrickmn/go-cache"

	"github.com/ajor-finance/ajor/internal/chain"
	"github.com/ajor-finance/ajor/pkg/msg"
)

// allowanceTracker keeps known unspent cw20 allowances.
type allowanceTracker struct {
	c  *cache.Cache
	mu sync.Mutex
}

func newAllowanceTracker(ttl time.Duration) *allowanceTracker {
	return &allowanceTracker{
		c: cache.New(ttl, time.Hour),
	}
}

func allowanceKey(token, owner, spender string) string {
	return strings.Join([]string{token, owner, spender}, "/")
}

func (t *allowanceTracker) get(key string) (sdk.Int, bool) {
	v, ok := t.c.Get(key)
	if !ok {
		return sdk.Int{}, false
	}
	return v.(sdk.Int), true // nolint:forcetypeassert
}

func (t *allowanceTracker) set(key string, v sdk.Int) {
	t.c.SetDefault(key, v)
}

// remember stores v unless the key was recorded meanwhile and returns the tracked value.
func (t *allowanceTracker) remember(key string, v sdk.Int) sdk.Int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.c.Add(key, v, cache.DefaultExpiration); err != nil {
		if known, ok := t.get(key); ok {
			return known
		}
		t.set(key, v)
	}

	return v
}

func (t *allowanceTracker) add(key string, v sdk.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if known, ok := t.get(key); ok {
		t.set(key, known.Add(v))
	}
}

// consume decreases known allowance after it was spent by the contract.
func (t *allowanceTracker) consume(key string, v sdk.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	known, ok := t.get(key)
	if !ok {
		return
	}

	if known.LTE(v) {
		t.set(key, sdk.ZeroInt())
		return
	}
	t.set(key, known.Sub(v))
}

// knownAllowance returns tracked allowance or asks the token contract.
func (o *Orchestrator) knownAllowance(ctx context.Context, token, owner string) sdk.Int {
	key := allowanceKey(token, owner, o.cfg.Contract)
	if v, ok := o.allowances.get(key); ok {
		return v
	}

	var resp msg.AllowanceResponse
	if err := o.query(ctx, token, msg.CW20QueryMsg{Allowance: &msg.Allowance{
		Owner:   owner,
		Spender: o.cfg.Contract,
	}}, &resp); err != nil {
		log.WithError(err).WithField("token", token).Warn("failed to get allowance, assuming zero")
		return sdk.ZeroInt()
	}

	v := resp.Allowance
	if v.IsNil() || resp.Expires.AtHeight != nil || resp.Expires.AtTime != nil {
		// expiring allowance can't be relied on
		v = sdk.ZeroInt()
	}

	return o.allowances.remember(key, v)
}

// ensureAllowance increases allowance of the contract up to amount of token.
func (o *Orchestrator) ensureAllowance(ctx context.Context, owner, token string, amount sdk.Int) error {
	known := o.knownAllowance(ctx, token, owner)
	if known.GTE(amount) {
		log.WithField("token", token).Debug("allowance is sufficient")
		return nil
	}

	_, err := o.increaseAllowance(ctx, owner, token, amount.Sub(known))
	return err
}

func (o *Orchestrator) increaseAllowance(ctx context.Context, owner, token string, amount sdk.Int) (*chain.TxResult, error) {
	res, err := o.execute(ctx, owner, token, msg.CW20ExecuteMsg{IncreaseAllowance: &msg.IncreaseAllowance{
		Spender: o.cfg.Contract,
		Amount:  amount,
	}}, nil)
	if err != nil {
		return nil, err
	}

	key := allowanceKey(token, owner, o.cfg.Contract)
	o.allowances.add(key, amount)

	return res, nil
}
