package entities

import (
	"errors"
	"testing"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajor-finance/ajor/pkg/msg"
)

const (
	tATOM   = "neutron1sr60e2velepytzsdyuutcmccl9n2p2lu3pjcggllxyc9rzyu562sqegazj"
	tNGN    = "neutron1he6zd5kk03cs5ywxk5tth9qfewxwnh7k9hjwekr7gs9gl9argadsqdc9rp"
	member1 = "neutron107nhk9pqhp446fr0fc83z0v82rg9guy8runkuz"
	member2 = "neutron1qyqszqgpqyqszqgpqyqszqgpqyqszqgpkvguhm"
)

func boolPtr(b bool) *bool { return &b }

func decPtr(s string) *sdk.Dec {
	d := sdk.MustNewDecFromStr(s)
	return &d
}

func TestNewWhitelistedToken(t *testing.T) {
	tt := []struct {
		name     string
		denom    string
		addr     string
		isNative bool
		ratio    string
		err      bool
	}{
		{name: "native", denom: "untrn", isNative: true, ratio: "0.7"},
		{name: "cw20", denom: "tATOM", addr: tATOM, ratio: "0.65"},
		{name: "ratio is one", denom: "tNGN", addr: tNGN, ratio: "1"},
		{name: "native with address", denom: "untrn", addr: tATOM, isNative: true, ratio: "0.7", err: true},
		{name: "cw20 without address", denom: "tATOM", ratio: "0.7", err: true},
		{name: "cw20 with foreign prefix", denom: "tATOM", addr: "cosmos1qyqszqgpqyqszqgpqyqszqgpqyqszqgpjnp7du", ratio: "0.7", err: true},
		{name: "cw20 with broken address", denom: "tATOM", addr: "neutron1xyz", ratio: "0.7", err: true},
		{name: "empty denom", addr: tATOM, ratio: "0.7", err: true},
		{name: "zero ratio", denom: "untrn", isNative: true, ratio: "0", err: true},
		{name: "ratio above one", denom: "untrn", isNative: true, ratio: "1.01", err: true},
		{name: "ratio is not a number", denom: "untrn", isNative: true, ratio: "seventy", err: true},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tok, err := NewWhitelistedToken(tc.denom, tc.addr, tc.isNative, tc.ratio)
			if tc.err {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrInvalidEntity))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.denom, tok.Denom)
		})
	}
}

func TestWhitelistedToken_Key(t *testing.T) {
	native, err := NewWhitelistedToken("untrn", "", true, "0.7")
	require.NoError(t, err)
	assert.Equal(t, "untrn", native.Key())
	assert.Equal(t, NativeTokenKey, native.TokenIDKey())
	assert.True(t, native.Matches("untrn"))
	assert.False(t, native.Matches(""))

	cw20, err := NewWhitelistedToken("tATOM", tATOM, false, "0.7")
	require.NoError(t, err)
	assert.Equal(t, tATOM, cw20.Key())
	assert.Equal(t, tATOM, cw20.TokenIDKey())
	assert.True(t, cw20.Matches("tATOM"))
	assert.True(t, cw20.Matches(tATOM))

	m := cw20.ToMsg()
	require.NotNil(t, m.ContractAddr)
	assert.Equal(t, tATOM, *m.ContractAddr)
	assert.Nil(t, native.ToMsg().ContractAddr)
	assert.Equal(t, cw20, WhitelistedTokenFromMsg(m))
}

func TestNewRiskProfile(t *testing.T) {
	p, err := NewRiskProfile("0.05", "1.5")
	require.NoError(t, err)
	assert.True(t, sdk.MustNewDecFromStr("1.5").Equal(p.CollateralizationRatio))

	_, err = NewRiskProfile("0", "1.5")
	require.True(t, errors.Is(err, ErrInvalidEntity))

	_, err = NewRiskProfile("1.2", "1.5")
	require.True(t, errors.Is(err, ErrInvalidEntity))

	_, err = NewRiskProfile("0.05", "0")
	require.True(t, errors.Is(err, ErrInvalidEntity))

	_, err = NewRiskProfile("0.05", "-1")
	require.True(t, errors.Is(err, ErrInvalidEntity))
}

func TestMember_Exists(t *testing.T) {
	assert.True(t, Member{Address: member1}.Exists())
	assert.False(t, Member{Address: "0"}.Exists())
	assert.False(t, Member{}.Exists())
}

func TestNewMember(t *testing.T) {
	m, err := NewMember(member1, time.Unix(1700000000, 0), "1.0")
	require.NoError(t, err)
	assert.Empty(t, m.Contribution)

	_, err = NewMember("0", time.Now(), "1.0")
	require.True(t, errors.Is(err, ErrInvalidEntity))

	_, err = NewMember(member1, time.Now(), "-0.5")
	require.True(t, errors.Is(err, ErrInvalidEntity))
}

func TestMember_ToMsg_EmptyCollections(t *testing.T) {
	m, err := NewMember(member1, time.Unix(1700000000, 0), "1")
	require.NoError(t, err)

	out := m.ToMsg()
	assert.NotNil(t, out.Contribution)
	assert.NotNil(t, out.Share)
	assert.NotNil(t, out.ActiveLoans)
	assert.Equal(t, uint64(1700000000), out.JoinedAt)
}

func TestLoan_Validate(t *testing.T) {
	l := Loan{
		ID:                1,
		Amount:            sdk.NewInt(100),
		Token:             "untrn",
		Collaterals:       []string{tATOM},
		CollateralsAmount: []sdk.Int{sdk.NewInt(200)},
		InterestRate:      sdk.MustNewDecFromStr("0.05"),
		Status:            LoanActive,
	}
	require.NoError(t, l.Validate())
	assert.True(t, l.IsActive())

	mismatch := l
	mismatch.CollateralsAmount = nil
	require.True(t, errors.Is(mismatch.Validate(), ErrInvalidEntity))

	unknown := l
	unknown.Status = "Paused"
	require.True(t, errors.Is(unknown.Validate(), ErrInvalidEntity))

	assert.Equal(t, l, LoanFromMsg(l.ToMsg()))
}

func testCooperative(t *testing.T) Cooperative {
	t.Helper()

	rp, err := NewRiskProfile("0.05", "1.5")
	require.NoError(t, err)

	native, err := NewWhitelistedToken("untrn", "", true, "0.7")
	require.NoError(t, err)
	cw20, err := NewWhitelistedToken("tATOM", tATOM, false, "0.65")
	require.NoError(t, err)

	m, err := NewMember(member1, time.Unix(1700000000, 0), "1")
	require.NoError(t, err)

	return Cooperative{
		Name:              "My Cooperative",
		RiskProfile:       rp,
		Members:           []Member{m},
		WhitelistedTokens: []WhitelistedToken{native, cw20},
		TotalFunds:        map[uint64]sdk.Int{},
	}
}

func TestCooperative_Validate(t *testing.T) {
	c := testCooperative(t)
	require.NoError(t, c.Validate())

	t.Run("duplicate member", func(t *testing.T) {
		c := testCooperative(t)
		c.Members = append(c.Members, c.Members[0])
		require.True(t, errors.Is(c.Validate(), ErrInvalidEntity))
	})

	t.Run("empty name", func(t *testing.T) {
		c := testCooperative(t)
		c.Name = "  "
		require.True(t, errors.Is(c.Validate(), ErrInvalidEntity))
	})

	t.Run("ledger key is not whitelisted", func(t *testing.T) {
		c := testCooperative(t)
		c.WhitelistedTokens[0].ID = 1
		c.WhitelistedTokens[1].ID = 2
		c.Members[0].Contribution[3] = sdk.NewInt(10)
		require.True(t, errors.Is(c.Validate(), ErrInvalidEntity))

		c.Members[0].Contribution[3] = sdk.ZeroInt()
		require.True(t, errors.Is(c.Validate(), ErrInvalidEntity))

		delete(c.Members[0].Contribution, 3)
		c.Members[0].Share[2] = sdk.ZeroInt()
		require.NoError(t, c.Validate())
	})

	t.Run("ledger keys are unchecked while ids are unknown", func(t *testing.T) {
		c := testCooperative(t)
		c.Members[0].Contribution[3] = sdk.NewInt(10)
		require.NoError(t, c.Validate())
	})
}

func TestCooperative_Lookup(t *testing.T) {
	c := testCooperative(t)

	tok, ok := c.Token(tATOM)
	require.True(t, ok)
	assert.Equal(t, "tATOM", tok.Denom)

	_, ok = c.Token(tNGN)
	assert.False(t, ok)

	_, ok = c.Member(member1)
	assert.True(t, ok)
	_, ok = c.Member(member2)
	assert.False(t, ok)
}

func TestCooperative_CreateMsg(t *testing.T) {
	c := testCooperative(t)

	m, err := c.CreateMsg()
	require.NoError(t, err)
	assert.Equal(t, msg.ActionCreateCooperative, m.Action())
	assert.Len(t, m.CreateCooperative.InitialMembers, 1)
	assert.Len(t, m.CreateCooperative.InitialWhitelistedTokens, 2)

	tooMany := testCooperative(t)
	for len(tooMany.WhitelistedTokens) <= MaxInitialWhitelistedTokens {
		tooMany.WhitelistedTokens = append(tooMany.WhitelistedTokens, tooMany.WhitelistedTokens[0])
	}
	_, err = tooMany.CreateMsg()
	require.True(t, errors.Is(err, ErrInvalidEntity))
}

func TestCooperative_FromMsg(t *testing.T) {
	c := testCooperative(t)
	c.TotalFunds[1] = sdk.NewInt(201)

	out := CooperativeFromMsg(c.ToMsg())
	assert.Equal(t, c.Name, out.Name)
	assert.True(t, sdk.NewInt(201).Equal(out.TotalFunds[1]))
	assert.Equal(t, c.WhitelistedTokens, out.WhitelistedTokens)
	assert.Equal(t, member1, out.Members[0].Address)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "my cooperative", NormalizeName("  My Cooperative "))
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("340282366920938463463374607431768211455")
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", v.String())

	_, err = ParseAmount("-1")
	require.True(t, errors.Is(err, ErrInvalidEntity))

	_, err = ParseAmount("1.5")
	require.True(t, errors.Is(err, ErrInvalidEntity))
}

func TestNewProposal(t *testing.T) {
	end := time.Now().Add(time.Hour)

	tt := []struct {
		name string
		typ  ProposalType
		data ProposalData
		err  bool
	}{
		{
			name: "whitelist native",
			typ:  ProposalWhitelistToken,
			data: ProposalData{Denom: "untrn", IsNative: boolPtr(true), MaxLoanRatio: decPtr("0.5")},
		},
		{
			name: "whitelist cw20",
			typ:  ProposalWhitelistToken,
			data: ProposalData{Denom: "tNGN", TokenAddr: tNGN, IsNative: boolPtr(false), MaxLoanRatio: decPtr("0.5")},
		},
		{
			name: "whitelist cw20 without address",
			typ:  ProposalWhitelistToken,
			data: ProposalData{Denom: "tNGN", IsNative: boolPtr(false), MaxLoanRatio: decPtr("0.5")},
			err:  true,
		},
		{
			name: "whitelist without denom",
			typ:  ProposalWhitelistToken,
			data: ProposalData{IsNative: boolPtr(true), MaxLoanRatio: decPtr("0.5")},
			err:  true,
		},
		{
			name: "whitelist without ratio",
			typ:  ProposalWhitelistToken,
			data: ProposalData{Denom: "untrn", IsNative: boolPtr(true)},
			err:  true,
		},
		{
			name: "add member",
			typ:  ProposalAddMember,
			data: ProposalData{NewMemberAddr: member2},
		},
		{
			name: "add member without address",
			typ:  ProposalAddMember,
			err:  true,
		},
		{
			name: "approve loan",
			typ:  ProposalApproveLoan,
		},
		{
			name: "unknown type",
			typ:  "Dissolve",
			err:  true,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := NewProposal("proposal", tc.typ, tc.data, end)
			if tc.err {
				require.True(t, errors.Is(err, ErrInvalidEntity))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ProposalOpen, p.Status(time.Now()))
		})
	}
}

func TestProposal_RoundTrip(t *testing.T) {
	p, err := NewProposal(
		"Whitelist tNGN",
		ProposalWhitelistToken,
		ProposalData{Denom: "tNGN", TokenAddr: tNGN, IsNative: boolPtr(false), MaxLoanRatio: decPtr("0.5")},
		time.Unix(1800000000, 0).UTC(),
	)
	require.NoError(t, err)

	m, err := p.ProposeMsg("my cooperative")
	require.NoError(t, err)
	require.NotNil(t, m.Propose.Proposal.Votes)
	assert.Nil(t, m.Propose.Proposal.Data.NewMemberAddr)

	data, err := msg.Encode(m)
	require.NoError(t, err)

	var decoded msg.ExecuteMsg
	require.NoError(t, msg.Decode(data, &decoded))
	require.NotNil(t, decoded.Propose)

	out := ProposalFromMsg(decoded.Propose.Proposal)
	assert.Equal(t, p.Description, out.Description)
	assert.Equal(t, p.Type, out.Type)
	assert.Equal(t, p.Data.Denom, out.Data.Denom)
	assert.Equal(t, p.Data.TokenAddr, out.Data.TokenAddr)
	assert.Equal(t, *p.Data.IsNative, *out.Data.IsNative)
	assert.True(t, p.Data.MaxLoanRatio.Equal(*out.Data.MaxLoanRatio))
	assert.Equal(t, p.EndTime, out.EndTime)
	assert.False(t, out.Executed)
}

func TestProposal_Status(t *testing.T) {
	now := time.Unix(1700000000, 0)
	p := Proposal{EndTime: now.Add(time.Minute)}

	assert.Equal(t, ProposalOpen, p.Status(now))
	assert.True(t, p.AcceptsVotes(now))
	assert.Equal(t, ProposalExecutable, p.Status(now.Add(time.Minute)))

	p.Outcome = OutcomePassed
	assert.Equal(t, ProposalExecutable, p.Status(now))
	assert.False(t, p.AcceptsVotes(now))

	p.Executed = true
	assert.Equal(t, ProposalExecuted, p.Status(now))
}

func TestProposal_ProposeMsg_EmptyCooperative(t *testing.T) {
	p, err := NewProposal("add", ProposalAddMember, ProposalData{NewMemberAddr: member2}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = p.ProposeMsg(" ")
	require.True(t, errors.Is(err, ErrInvalidEntity))
}
