package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajor-finance/ajor/internal/chain"
	chainmock "github.com/ajor-finance/ajor/internal/chain/mock"
	"github.com/ajor-finance/ajor/internal/storage"
	storagemock "github.com/ajor-finance/ajor/internal/storage/mock"
	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

const (
	contract    = "neutron16qhawx7cy6cmte2jluu39d6j09emzml5yvmhdglyz0re99v6wpms0rh63m"
	tATOM       = "neutron1sr60e2velepytzsdyuutcmccl9n2p2lu3pjcggllxyc9rzyu562sqegazj"
	tNGN        = "neutron1he6zd5kk03cs5ywxk5tth9qfewxwnh7k9hjwekr7gs9gl9argadsqdc9rp"
	account     = "neutron107nhk9pqhp446fr0fc83z0v82rg9guy8runkuz"
	cooperative = "My Cooperative"
)

var ctx = context.Background()

// executeMatcher matches execute request by contract, action and funds.
type executeMatcher struct {
	contract string
	action   string
	funds    string
	check    func(m map[string]json.RawMessage) bool
}

func (m executeMatcher) Matches(x interface{}) bool {
	req, ok := x.(chain.ExecuteRequest)
	if !ok {
		return false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(req.Msg, &payload); err != nil {
		return false
	}

	if _, ok := payload[m.action]; !ok || len(payload) != 1 {
		return false
	}

	if m.check != nil && !m.check(payload) {
		return false
	}

	return req.Sender == account && req.Contract == m.contract && req.Funds.String() == m.funds
}

func (m executeMatcher) String() string {
	return fmt.Sprintf("execute %s on %s with funds %q", m.action, m.contract, m.funds)
}

func execReq(contract, action, funds string) gomock.Matcher {
	return executeMatcher{contract: contract, action: action, funds: funds}
}

func payloadEq(contract, action, funds, expected string) gomock.Matcher {
	return executeMatcher{
		contract: contract,
		action:   action,
		funds:    funds,
		check: func(m map[string]json.RawMessage) bool {
			var a, b interface{}
			if err := json.Unmarshal(m[action], &a); err != nil {
				return false
			}
			if err := json.Unmarshal([]byte(expected), &b); err != nil {
				return false
			}
			return fmt.Sprint(a) == fmt.Sprint(b)
		},
	}
}

type queryMatcher struct {
	contract string
	action   string
}

func (m queryMatcher) Matches(x interface{}) bool {
	data, ok := x.(json.RawMessage)
	if !ok {
		return false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return false
	}

	_, ok = payload[m.action]
	return ok
}

func (m queryMatcher) String() string {
	return fmt.Sprintf("query %s", m.action)
}

func newTestOrchestrator(t *testing.T) (*Orchestrator, *chainmock.MockChain) {
	t.Helper()

	ctrl := gomock.NewController(t)
	c := chainmock.NewMockChain(ctrl)

	o, err := New(Config{
		Contract:      contract,
		NativeDenom:   "untrn",
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	}, c, storage.NewNop())
	require.NoError(t, err)

	require.NoError(t, o.Connect(account))

	return o, c
}

func nativeToken(t *testing.T) entities.WhitelistedToken {
	t.Helper()

	tok, err := entities.NewWhitelistedToken("untrn", "", true, "0.7")
	require.NoError(t, err)
	return tok
}

func cw20Token(t *testing.T, addr string) entities.WhitelistedToken {
	t.Helper()

	tok, err := entities.NewWhitelistedToken("tATOM", addr, false, "0.65")
	require.NoError(t, err)
	return tok
}

func txResult(hash string) *chain.TxResult {
	return &chain.TxResult{Hash: hash, Height: 1}
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := chainmock.NewMockChain(ctrl)

	_, err := New(Config{Contract: "x", NativeDenom: "untrn"}, c, nil)
	require.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = New(Config{Contract: contract, NativeDenom: "1"}, c, nil)
	require.True(t, errors.Is(err, ErrInvalidRequest))

	o, err := New(Config{Contract: contract, NativeDenom: "untrn"}, c, nil)
	require.NoError(t, err)
	assert.Equal(t, chain.FeeModeAuto, o.Config().FeeMode)
	assert.False(t, o.Session().IsReady())
}

func TestOrchestrator_Connect(t *testing.T) {
	ctrl := gomock.NewController(t)
	o, err := New(Config{Contract: contract, NativeDenom: "untrn"}, chainmock.NewMockChain(ctrl), nil)
	require.NoError(t, err)

	require.True(t, errors.Is(o.Connect("bad"), ErrInvalidRequest))
	require.NoError(t, o.Connect(account))
	require.NoError(t, o.Connect(account))
	require.True(t, errors.Is(o.Connect(tATOM), ErrAlreadyConnected))

	acc, ok := o.Session().Account()
	require.True(t, ok)
	assert.Equal(t, account, acc)
}

func TestOrchestrator_NotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no calls are expected
	o, err := New(Config{Contract: contract, NativeDenom: "untrn"}, chainmock.NewMockChain(ctrl), nil)
	require.NoError(t, err)

	tt := []struct {
		name string
		f    func() error
	}{
		{"fund", func() error {
			_, err := o.FundCooperative(ctx, cooperative, nativeToken(t), sdk.NewInt(1))
			return err
		}},
		{"borrow", func() error {
			_, err := o.Borrow(ctx, cooperative, nil, []sdk.Int{sdk.NewInt(1)}, "untrn", sdk.ZeroInt())
			return err
		}},
		{"repay", func() error {
			_, err := o.Repay(ctx, cooperative, nativeToken(t), sdk.NewInt(1))
			return err
		}},
		{"update price", func() error {
			_, err := o.UpdateTokenPrice(ctx, tATOM, sdk.OneDec())
			return err
		}},
		{"create", func() error {
			_, err := o.CreateCooperative(ctx, entities.Cooperative{})
			return err
		}},
		{"withdraw", func() error {
			_, err := o.WithdrawContributionAndReward(ctx, cooperative, "untrn")
			return err
		}},
		{"increase allowance", func() error {
			_, err := o.IncreaseAllowance(ctx, tATOM, sdk.NewInt(1))
			return err
		}},
		{"execute", func() error {
			_, err := o.Execute(ctx, msg.ExecuteMsg{ExecuteProposal: &msg.ExecuteProposal{}}, nil)
			return err
		}},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, errors.Is(tc.f(), ErrNotConnected))
		})
	}
}

func TestOrchestrator_FundCooperative_Native(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionFundCooperative, "1untrn",
		`{"cooperative_name":"My Cooperative","token":"untrn","is_native":true,"amount":"1"}`,
	)).Return(txResult("A"), nil).Times(1)

	res, err := o.FundCooperative(ctx, cooperative, nativeToken(t), sdk.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "A", res.Hash)
}

func TestOrchestrator_FundCooperative_CW20(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Query(gomock.Any(), tATOM, queryMatcher{action: msg.QueryAllowance}).
		Return(json.RawMessage(`{"allowance":"0","expires":{"never":{}}}`), nil)

	gomock.InOrder(
		c.EXPECT().Execute(gomock.Any(), payloadEq(tATOM, msg.ActionIncreaseAllowance, "",
			`{"spender":"`+contract+`","amount":"200"}`,
		)).Return(txResult("A"), nil),
		c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionFundCooperative, "",
			`{"cooperative_name":"My Cooperative","token":"`+tATOM+`","is_native":false,"amount":"200"}`,
		)).Return(txResult("B"), nil),
	)

	res, err := o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, "B", res.Hash)
}

func TestOrchestrator_FundCooperative_AllowanceIsTracked(t *testing.T) {
	o, c := newTestOrchestrator(t)

	// 50 is already granted, only the shortfall is increased
	c.EXPECT().Query(gomock.Any(), tATOM, queryMatcher{action: msg.QueryAllowance}).
		Return(json.RawMessage(`{"allowance":"50","expires":{"never":{}}}`), nil).Times(1)

	gomock.InOrder(
		c.EXPECT().Execute(gomock.Any(), payloadEq(tATOM, msg.ActionIncreaseAllowance, "",
			`{"spender":"`+contract+`","amount":"150"}`,
		)).Return(txResult("A"), nil),
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "")).
			Return(nil, &chain.RejectedError{Code: 5, Codespace: "wasm", Log: "Unauthorized"}),
		// retry after rejection: allowance of 200 is still known, no increase
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "")).
			Return(txResult("B"), nil),
		// allowance was consumed
		c.EXPECT().Execute(gomock.Any(), payloadEq(tATOM, msg.ActionIncreaseAllowance, "",
			`{"spender":"`+contract+`","amount":"10"}`,
		)).Return(txResult("C"), nil),
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "")).
			Return(txResult("D"), nil),
	)

	_, err := o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.True(t, errors.Is(err, chain.ErrRejected))

	_, err = o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.NoError(t, err)

	_, err = o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(10))
	require.NoError(t, err)
}

func TestOrchestrator_FundCooperative_AllowanceFailure(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Query(gomock.Any(), tATOM, gomock.Any()).
		Return(json.RawMessage(`{"allowance":"0","expires":{"never":{}}}`), nil)

	c.EXPECT().Execute(gomock.Any(), execReq(tATOM, msg.ActionIncreaseAllowance, "")).
		Return(nil, &chain.RejectedError{Code: 5, Codespace: "wasm", Log: "insufficient balance"})

	_, err := o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.Error(t, err)

	var ae *ActionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, msg.ActionIncreaseAllowance, ae.Action)
	require.True(t, errors.Is(err, chain.ErrRejected))
}

func TestOrchestrator_FundCooperative_AllowanceQueryFailure(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Query(gomock.Any(), tATOM, gomock.Any()).
		Return(nil, &chain.RejectedError{Code: 1, Codespace: "grpc", Log: "no such contract"})

	gomock.InOrder(
		c.EXPECT().Execute(gomock.Any(), payloadEq(tATOM, msg.ActionIncreaseAllowance, "",
			`{"spender":"`+contract+`","amount":"200"}`,
		)).Return(txResult("A"), nil),
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "")).
			Return(txResult("B"), nil),
	)

	_, err := o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.NoError(t, err)
}

func TestOrchestrator_FundCooperative_CancelledAfterAllowance(t *testing.T) {
	o, c := newTestOrchestrator(t)

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.EXPECT().Query(gomock.Any(), tATOM, queryMatcher{action: msg.QueryAllowance}).
		Return(json.RawMessage(`{"allowance":"0","expires":{"never":{}}}`), nil).Times(1)

	gomock.InOrder(
		c.EXPECT().Execute(gomock.Any(), payloadEq(tATOM, msg.ActionIncreaseAllowance, "",
			`{"spender":"`+contract+`","amount":"200"}`,
		)).DoAndReturn(func(_ context.Context, _ chain.ExecuteRequest) (*chain.TxResult, error) {
			cancel()
			return txResult("A"), nil
		}).Times(1),
		// granted allowance is reused, no second increase
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "")).
			Return(txResult("B"), nil).Times(1),
	)

	_, err := o.FundCooperative(cctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))

	var ae *ActionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, msg.ActionFundCooperative, ae.Action)

	res, err := o.FundCooperative(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, "B", res.Hash)
}

func TestOrchestrator_FundCooperative_Invalid(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	_, err := o.FundCooperative(ctx, cooperative, nativeToken(t), sdk.ZeroInt())
	require.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = o.FundCooperative(ctx, " ", nativeToken(t), sdk.NewInt(1))
	require.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = o.FundCooperative(ctx, cooperative, entities.WhitelistedToken{Denom: "untrn", IsNative: true, ContractAddr: tATOM}, sdk.NewInt(1))
	require.True(t, errors.Is(err, entities.ErrInvalidEntity))
}

func TestOrchestrator_Execute_RetriesTransient(t *testing.T) {
	o, c := newTestOrchestrator(t)

	gomock.InOrder(
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "1untrn")).
			Return(nil, chain.Transient(errors.New("connection reset"))),
		c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionFundCooperative, "1untrn")).
			Return(txResult("A"), nil),
	)

	res, err := o.FundCooperative(ctx, cooperative, nativeToken(t), sdk.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "A", res.Hash)
}

func TestOrchestrator_Execute_GivesUpOnTransient(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Execute(gomock.Any(), gomock.Any()).
		Return(nil, chain.Transient(errors.New("connection reset"))).Times(3)

	_, err := o.FundCooperative(ctx, cooperative, nativeToken(t), sdk.NewInt(1))
	require.True(t, errors.Is(err, chain.ErrTransient))

	var ae *ActionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, msg.ActionFundCooperative, ae.Action)
}

func TestOrchestrator_Execute_Journal(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := chainmock.NewMockChain(ctrl)
	j := storagemock.NewMockJournal(ctrl)

	o, err := New(Config{Contract: contract, NativeDenom: "untrn", Memo: "memo"}, c, j)
	require.NoError(t, err)
	require.NoError(t, o.Connect(account))

	c.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(&chain.TxResult{Hash: "A", Height: 7}, nil)
	j.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *storage.Entry) error {
		assert.Equal(t, msg.ActionFundCooperative, e.Action)
		assert.Equal(t, account, e.Sender)
		assert.Equal(t, contract, e.Contract)
		assert.Equal(t, "1untrn", e.Funds)
		assert.Equal(t, "memo", e.Memo)
		assert.Equal(t, "A", e.TxHash)
		assert.EqualValues(t, 7, e.Height)
		return errors.New("db is down")
	})

	// journal failure doesn't fail confirmed execution
	res, err := o.FundCooperative(ctx, cooperative, nativeToken(t), sdk.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "A", res.Hash)
}

func TestOrchestrator_Borrow(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		o, _ := newTestOrchestrator(t)

		_, err := o.Borrow(ctx, cooperative,
			[]entities.WhitelistedToken{nativeToken(t), cw20Token(t, tATOM)},
			[]sdk.Int{sdk.NewInt(1)},
			tNGN, sdk.NewInt(1),
		)
		require.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("no collateral", func(t *testing.T) {
		o, _ := newTestOrchestrator(t)

		_, err := o.Borrow(ctx, cooperative, nil, nil, tNGN, sdk.NewInt(1))
		require.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("mixed collateral", func(t *testing.T) {
		o, c := newTestOrchestrator(t)

		// collateral is taken from contribution: no funds and no allowance
		c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionBorrow, "",
			`{"cooperative_name":"My Cooperative","tokens_in":["NATIVE","`+tATOM+`","`+tATOM+`"],"amount_in":["100","10","20"],"token_out":"`+tNGN+`","min_amount_out":"5"}`,
		)).Return(txResult("B"), nil).Times(1)

		res, err := o.Borrow(ctx, cooperative,
			[]entities.WhitelistedToken{nativeToken(t), cw20Token(t, tATOM), cw20Token(t, tATOM)},
			[]sdk.Int{sdk.NewInt(100), sdk.NewInt(10), sdk.NewInt(20)},
			tNGN, sdk.NewInt(5),
		)
		require.NoError(t, err)
		assert.Equal(t, "B", res.Hash)
	})
}

func TestOrchestrator_Repay(t *testing.T) {
	t.Run("native", func(t *testing.T) {
		o, c := newTestOrchestrator(t)

		c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionRepay, "5untrn",
			`{"cooperative_name":"My Cooperative","token":"untrn"}`,
		)).Return(txResult("A"), nil)

		_, err := o.Repay(ctx, cooperative, nativeToken(t), sdk.NewInt(5))
		require.NoError(t, err)
	})

	t.Run("cw20", func(t *testing.T) {
		o, c := newTestOrchestrator(t)

		c.EXPECT().Query(gomock.Any(), tATOM, gomock.Any()).
			Return(json.RawMessage(`{"allowance":"0","expires":{"never":{}}}`), nil)

		gomock.InOrder(
			c.EXPECT().Execute(gomock.Any(), execReq(tATOM, msg.ActionIncreaseAllowance, "")).Return(txResult("A"), nil),
			c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionRepay, "",
				`{"cooperative_name":"My Cooperative","token":"`+tATOM+`"}`,
			)).Return(txResult("B"), nil),
		)

		_, err := o.Repay(ctx, cooperative, cw20Token(t, tATOM), sdk.NewInt(5))
		require.NoError(t, err)
	})
}

func TestOrchestrator_IncreaseAllowance(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Execute(gomock.Any(), payloadEq(tATOM, msg.ActionIncreaseAllowance, "",
		`{"spender":"`+contract+`","amount":"200"}`,
	)).Return(txResult("A"), nil)

	_, err := o.IncreaseAllowance(ctx, tATOM, sdk.NewInt(200))
	require.NoError(t, err)

	_, err = o.IncreaseAllowance(ctx, "untrn", sdk.NewInt(200))
	require.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestOrchestrator_UpdateTokenPrice(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionUpdateTokenPrice, "",
		`{"token_addr":"`+tATOM+`","usd_price":"12.500000000000000000"}`,
	)).Return(txResult("A"), nil)

	_, err := o.UpdateTokenPrice(ctx, tATOM, sdk.MustNewDecFromStr("12.5"))
	require.NoError(t, err)

	_, err = o.UpdateTokenPrice(ctx, tATOM, sdk.ZeroDec())
	require.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestOrchestrator_CreateCooperative(t *testing.T) {
	o, c := newTestOrchestrator(t)

	rp, err := entities.NewRiskProfile("0.05", "1.5")
	require.NoError(t, err)

	coop := entities.Cooperative{
		Name:              cooperative,
		RiskProfile:       rp,
		WhitelistedTokens: []entities.WhitelistedToken{nativeToken(t), cw20Token(t, tATOM)},
	}

	c.EXPECT().Execute(gomock.Any(), execReq(contract, msg.ActionCreateCooperative, "")).Return(txResult("A"), nil)

	_, err = o.CreateCooperative(ctx, coop)
	require.NoError(t, err)

	_, err = o.CreateCooperative(ctx, entities.Cooperative{Name: cooperative})
	require.True(t, errors.Is(err, entities.ErrInvalidEntity))
}

func TestOrchestrator_WithdrawContributionAndReward(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Execute(gomock.Any(), payloadEq(contract, msg.ActionWithdrawContributionAndReward, "",
		`{"cooperative_name":"My Cooperative","token":"untrn"}`,
	)).Return(txResult("A"), nil)

	_, err := o.WithdrawContributionAndReward(ctx, cooperative, "untrn")
	require.NoError(t, err)
}

const whitelistedTokens = `{"tokens":[
	{"denom":"untrn","is_native":true,"max_loan_ratio":"0.7"},
	{"denom":"tATOM","contract_addr":"` + tATOM + `","is_native":false,"max_loan_ratio":"0.65"}
]}`

func TestOrchestrator_FindToken(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Query(gomock.Any(), contract, queryMatcher{action: msg.QueryGetWhitelistedTokens}).
		Return(json.RawMessage(whitelistedTokens), nil).Times(3)

	tok, err := o.FindToken(ctx, cooperative, "untrn")
	require.NoError(t, err)
	assert.True(t, tok.IsNative)
	assert.EqualValues(t, 0, tok.ID)

	tok, err = o.FindToken(ctx, cooperative, tATOM)
	require.NoError(t, err)
	assert.Equal(t, "tATOM", tok.Denom)

	_, err = o.FindToken(ctx, cooperative, tNGN)
	require.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestOrchestrator_ResolveTokenIDs(t *testing.T) {
	o, c := newTestOrchestrator(t)

	c.EXPECT().Query(gomock.Any(), contract, queryMatcher{action: msg.QueryGetTokenID}).DoAndReturn(
		func(_ context.Context, _ string, data json.RawMessage) (json.RawMessage, error) {
			var q msg.QueryMsg
			require.NoError(t, json.Unmarshal(data, &q))

			switch q.GetTokenID.Token {
			case entities.NativeTokenKey:
				return json.RawMessage(`{"token_id":1}`), nil
			case tATOM:
				return json.RawMessage(`{"token_id":2}`), nil
			}
			return nil, &chain.RejectedError{Code: 6, Codespace: "wasm", Log: "u64 not found"}
		},
	).Times(2)

	coop := entities.Cooperative{
		Name:              cooperative,
		WhitelistedTokens: []entities.WhitelistedToken{nativeToken(t), cw20Token(t, tATOM)},
	}

	require.NoError(t, o.ResolveTokenIDs(ctx, &coop))
	assert.EqualValues(t, 1, coop.WhitelistedTokens[0].ID)
	assert.EqualValues(t, 2, coop.WhitelistedTokens[1].ID)

	// ids are cached
	require.NoError(t, o.ResolveTokenIDs(ctx, &coop))
}

func TestAllowanceTracker_Remember(t *testing.T) {
	tr := newAllowanceTracker(time.Minute)
	key := allowanceKey(tATOM, account, contract)

	assert.Equal(t, "0", tr.remember(key, sdk.ZeroInt()).String())

	tr.add(key, sdk.NewInt(30))

	// result of a query started before the increase doesn't overwrite it
	assert.Equal(t, "30", tr.remember(key, sdk.ZeroInt()).String())

	v, ok := tr.get(key)
	require.True(t, ok)
	assert.Equal(t, "30", v.String())
}
