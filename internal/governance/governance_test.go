package governance

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
	"github.com/ajor-finance/ajor/internal/orchestrator"
	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

const (
	contract    = "neutron16qhawx7cy6cmte2jluu39d6j09emzml5yvmhdglyz0re99v6wpms0rh63m"
	tNGN        = "neutron1he6zd5kk03cs5ywxk5tth9qfewxwnh7k9hjwekr7gs9gl9argadsqdc9rp"
	account     = "neutron107nhk9pqhp446fr0fc83z0v82rg9guy8runkuz"
	cooperative = "My Cooperative"
)

var ctx = context.Background()

type voteMatcher struct {
	funds  string
	weight string
}

func (m voteMatcher) Matches(x interface{}) bool {
	req, ok := x.(chain.ExecuteRequest)
	if !ok {
		return false
	}

	var v msg.ExecuteMsg
	if err := json.Unmarshal(req.Msg, &v); err != nil || v.Vote == nil {
		return false
	}

	return req.Contract == contract &&
		req.Funds.String() == m.funds &&
		v.Vote.Weight.String() == m.weight &&
		v.Vote.CooperativeName == cooperative &&
		v.Vote.ProposalID == 1 &&
		v.Vote.Aye
}

func (m voteMatcher) String() string {
	return fmt.Sprintf("vote with weight %s and funds %q", m.weight, m.funds)
}

type actionMatcher string

func (m actionMatcher) Matches(x interface{}) bool {
	req, ok := x.(chain.ExecuteRequest)
	if !ok {
		return false
	}

	var v msg.ExecuteMsg
	if err := json.Unmarshal(req.Msg, &v); err != nil {
		return false
	}

	return v.Action() == string(m) && req.Funds.Empty()
}

func (m actionMatcher) String() string {
	return "execute " + string(m)
}

func newTestGovernance(t *testing.T, connect bool) (*Governance, *chainmock.MockChain) {
	t.Helper()

	ctrl := gomock.NewController(t)
	c := chainmock.NewMockChain(ctrl)

	o, err := orchestrator.New(orchestrator.Config{
		Contract:    contract,
		NativeDenom: "untrn",
	}, c, nil)
	require.NoError(t, err)

	if connect {
		require.NoError(t, o.Connect(account))
	}

	return New(o), c
}

func TestGovernance_Vote(t *testing.T) {
	tt := []struct {
		name   string
		weight string
		funds  string
	}{
		{name: "zero weight", weight: "0", funds: ""},
		{name: "positive weight", weight: "1000", funds: "1000untrn"},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g, c := newTestGovernance(t, true)

			c.EXPECT().Execute(gomock.Any(), voteMatcher{funds: tc.funds, weight: tc.weight}).
				Return(&chain.TxResult{Hash: "A"}, nil).Times(1)

			w, err := ParseWeight(tc.weight)
			require.NoError(t, err)

			res, err := g.Vote(ctx, cooperative, 1, w, true)
			require.NoError(t, err)
			assert.Equal(t, "A", res.Hash)
		})
	}
}

func TestGovernance_Vote_Invalid(t *testing.T) {
	g, _ := newTestGovernance(t, true)

	_, err := ParseWeight("-1")
	require.True(t, errors.Is(err, orchestrator.ErrInvalidRequest))

	_, err = ParseWeight("1.5")
	require.True(t, errors.Is(err, orchestrator.ErrInvalidRequest))

	_, err = g.Vote(ctx, cooperative, 1, sdk.NewInt(-1), true)
	require.True(t, errors.Is(err, orchestrator.ErrInvalidRequest))

	_, err = g.Vote(ctx, "", 1, sdk.NewInt(1), true)
	require.True(t, errors.Is(err, orchestrator.ErrInvalidRequest))
}

func TestGovernance_NotConnected(t *testing.T) {
	g, _ := newTestGovernance(t, false)

	_, err := g.Vote(ctx, cooperative, 1, sdk.ZeroInt(), true)
	require.True(t, errors.Is(err, orchestrator.ErrNotConnected))

	_, err = g.WithdrawWeight(ctx, cooperative, 1)
	require.True(t, errors.Is(err, orchestrator.ErrNotConnected))

	_, err = g.ExecuteProposal(ctx, cooperative, 1)
	require.True(t, errors.Is(err, orchestrator.ErrNotConnected))

	_, err = g.Propose(ctx, cooperative, entities.Proposal{})
	require.True(t, errors.Is(err, orchestrator.ErrNotConnected))
}

func whitelistProposal(t *testing.T, end time.Time) entities.Proposal {
	t.Helper()

	native := false
	ratio := sdk.MustNewDecFromStr("0.5")

	p, err := entities.NewProposal("Whitelist tNGN", entities.ProposalWhitelistToken, entities.ProposalData{
		Denom:        "tNGN",
		TokenAddr:    tNGN,
		IsNative:     &native,
		MaxLoanRatio: &ratio,
	}, end)
	require.NoError(t, err)

	return p
}

func TestGovernance_Propose(t *testing.T) {
	g, c := newTestGovernance(t, true)

	createdAt := time.Now()
	end := createdAt.Add(24 * time.Hour).Truncate(time.Second)
	p := whitelistProposal(t, end)

	c.EXPECT().Execute(gomock.Any(), actionMatcher(msg.ActionPropose)).Return(&chain.TxResult{
		Hash: "A",
		Events: []chain.Event{
			{Type: "wasm", Attributes: map[string]string{"method": "propose", "proposal_id": "1"}},
		},
	}, nil)

	c.EXPECT().Query(gomock.Any(), contract, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data json.RawMessage) (json.RawMessage, error) {
			var q msg.QueryMsg
			require.NoError(t, json.Unmarshal(data, &q))
			require.NotNil(t, q.GetProposal)
			require.EqualValues(t, 1, q.GetProposal.ProposalID)

			echoed := p.ToMsg()
			echoed.ID = 1
			return json.Marshal(msg.GetProposalResponse{Proposal: echoed})
		},
	)

	out, err := g.Propose(ctx, cooperative, p)
	require.NoError(t, err)

	assert.EqualValues(t, 1, out.ID)
	assert.False(t, out.Executed)
	assert.True(t, out.EndTime.After(createdAt))
	assert.Equal(t, p.Description, out.Description)
	assert.Equal(t, p.Type, out.Type)
	assert.Equal(t, p.Data.TokenAddr, out.Data.TokenAddr)
	assert.Equal(t, entities.ProposalOpen, out.Status(createdAt))
}

func TestGovernance_Propose_NoProposalID(t *testing.T) {
	g, c := newTestGovernance(t, true)

	c.EXPECT().Execute(gomock.Any(), actionMatcher(msg.ActionPropose)).Return(&chain.TxResult{Hash: "A"}, nil)

	_, err := g.Propose(ctx, cooperative, whitelistProposal(t, time.Now().Add(time.Hour)))
	require.True(t, errors.Is(err, ErrProposalIDUnknown))

	var pe *ProposalIDError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "A", pe.TxHash)
}

func TestGovernance_Propose_Invalid(t *testing.T) {
	g, _ := newTestGovernance(t, true)

	_, err := g.Propose(ctx, cooperative, entities.Proposal{Description: "x", Type: entities.ProposalAddMember})
	require.True(t, errors.Is(err, entities.ErrInvalidEntity))
}

func TestGovernance_ExecuteProposal_Rejected(t *testing.T) {
	g, c := newTestGovernance(t, true)

	c.EXPECT().Execute(gomock.Any(), actionMatcher(msg.ActionExecuteProposal)).
		Return(nil, &chain.RejectedError{Code: 5, Codespace: "wasm", Log: "Proposal already executed"}).Times(1)

	_, err := g.ExecuteProposal(ctx, cooperative, 1)
	require.True(t, errors.Is(err, chain.ErrRejected))
	assert.Contains(t, err.Error(), "Proposal already executed")
	assert.Contains(t, err.Error(), msg.ActionExecuteProposal)
}

func TestGovernance_WithdrawWeight(t *testing.T) {
	g, c := newTestGovernance(t, true)

	c.EXPECT().Execute(gomock.Any(), actionMatcher(msg.ActionWithdrawWeight)).Return(&chain.TxResult{Hash: "A"}, nil)

	_, err := g.WithdrawWeight(ctx, cooperative, 1)
	require.NoError(t, err)
}

func TestGovernance_Proposal(t *testing.T) {
	g, c := newTestGovernance(t, false)

	now := time.Unix(1700000000, 0)
	g.now = func() time.Time { return now }

	c.EXPECT().Query(gomock.Any(), contract, gomock.Any()).Return(json.RawMessage(`{"proposal":{
		"id": 2,
		"description": "add member",
		"data": {"new_member_addr": "`+account+`"},
		"votes": [{"voter": "`+account+`", "conviction": "10", "voted_at": 1699999000}],
		"aye_count": 1,
		"nay_count": 0,
		"aye_weights": 10,
		"nay_weights": 0,
		"end_time": 1699999999,
		"proposal_type": "AddMember",
		"executed": false
	}}`), nil)

	p, err := g.Proposal(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entities.ProposalExecutable, p.Status)
	assert.Equal(t, entities.ProposalAddMember, p.Type)
	require.Len(t, p.Votes, 1)
	assert.True(t, sdk.NewInt(10).Equal(p.Votes[0].Conviction))
}
