package main

import (
	"fmt"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/sirupsen/logrus"

	"github.com/ajor-finance/ajor/internal/governance"
	"github.com/ajor-finance/ajor/pkg/entities"
)

type createCooperativeCommand struct {
	Name                   string   `long:"name" required:"true" description:"cooperative name"`
	InterestRate           string   `long:"interest-rate" required:"true" description:"interest rate in (0, 1]"`
	CollateralizationRatio string   `long:"collateralization-ratio" required:"true" description:"collateral multiplier of loan value, e.g. 1.5"`
	Members                []string `long:"member" description:"address of initial member"`
	Native                 []string `long:"native" description:"native token as denom:max_loan_ratio"`
	CW20                   []string `long:"cw20" description:"cw20 token as denom:contract:max_loan_ratio"`
}

func (c *createCooperativeCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	if n := entities.NormalizeName(c.Name); n != c.Name {
		logrus.Warnf("cooperative will be keyed as %q", n)
	}

	rp, err := entities.NewRiskProfile(c.InterestRate, c.CollateralizationRatio)
	if err != nil {
		return err
	}

	coop := entities.Cooperative{
		Name:        c.Name,
		RiskProfile: rp,
	}

	now := time.Now()
	for _, addr := range c.Members {
		m, err := entities.NewMember(addr, now, "0")
		if err != nil {
			return err
		}
		coop.Members = append(coop.Members, m)
	}

	for _, v := range c.Native {
		p := strings.Split(v, ":")
		if len(p) != 2 {
			return fmt.Errorf("invalid native token %q", v)
		}

		t, err := entities.NewWhitelistedToken(p[0], "", true, p[1])
		if err != nil {
			return err
		}
		coop.WhitelistedTokens = append(coop.WhitelistedTokens, t)
	}

	for _, v := range c.CW20 {
		p := strings.Split(v, ":")
		if len(p) != 3 {
			return fmt.Errorf("invalid cw20 token %q", v)
		}

		t, err := entities.NewWhitelistedToken(p[0], p[1], false, p[2])
		if err != nil {
			return err
		}
		coop.WhitelistedTokens = append(coop.WhitelistedTokens, t)
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := o.CreateCooperative(ctx, coop)
	if err != nil {
		return err
	}

	return printTx(res)
}

type fundCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	Token       string `long:"token" required:"true" description:"denom or contract address of whitelisted token"`
	Amount      string `long:"amount" required:"true" description:"amount in base units"`
}

func (c *fundCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	amount, err := entities.ParseAmount(c.Amount)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	t, err := o.FindToken(ctx, c.Cooperative, c.Token)
	if err != nil {
		return err
	}

	res, err := o.FundCooperative(ctx, c.Cooperative, t, amount)
	if err != nil {
		return err
	}

	return printTx(res)
}

type borrowCommand struct {
	Cooperative  string   `long:"cooperative" required:"true" description:"cooperative name"`
	Collaterals  []string `long:"collateral" required:"true" description:"collateral as token:amount"`
	TokenOut     string   `long:"token-out" required:"true" description:"token to borrow"`
	MinAmountOut string   `long:"min-amount-out" default:"0" description:"minimal amount to receive"`
}

func (c *borrowCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	minOut, err := entities.ParseAmount(c.MinAmountOut)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	tokens := make([]entities.WhitelistedToken, len(c.Collaterals))
	amounts := make([]sdk.Int, len(c.Collaterals))
	for i, v := range c.Collaterals {
		idx := strings.LastIndex(v, ":")
		if idx <= 0 {
			return fmt.Errorf("invalid collateral %q", v)
		}

		if amounts[i], err = entities.ParseAmount(v[idx+1:]); err != nil {
			return err
		}

		if tokens[i], err = o.FindToken(ctx, c.Cooperative, v[:idx]); err != nil {
			return err
		}
	}

	res, err := o.Borrow(ctx, c.Cooperative, tokens, amounts, c.TokenOut, minOut)
	if err != nil {
		return err
	}

	return printTx(res)
}

type repayCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	Token       string `long:"token" required:"true" description:"denom or contract address of loan token"`
	Amount      string `long:"amount" required:"true" description:"amount in base units"`
}

func (c *repayCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	amount, err := entities.ParseAmount(c.Amount)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	t, err := o.FindToken(ctx, c.Cooperative, c.Token)
	if err != nil {
		return err
	}

	res, err := o.Repay(ctx, c.Cooperative, t, amount)
	if err != nil {
		return err
	}

	return printTx(res)
}

type withdrawCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	Token       string `long:"token" required:"true" description:"denom or contract address of contributed token"`
}

func (c *withdrawCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	ctx, cancel := signalContext()
	defer cancel()

	res, err := o.WithdrawContributionAndReward(ctx, c.Cooperative, c.Token)
	if err != nil {
		return err
	}

	return printTx(res)
}

type updatePriceCommand struct {
	Token string `long:"token" required:"true" description:"denom or contract address of token"`
	Price string `long:"price" required:"true" description:"usd price"`
}

func (c *updatePriceCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	price, err := entities.ParseFraction(c.Price)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := o.UpdateTokenPrice(ctx, c.Token, price)
	if err != nil {
		return err
	}

	return printTx(res)
}

type increaseAllowanceCommand struct {
	Token  string `long:"token" required:"true" description:"cw20 contract address"`
	Amount string `long:"amount" required:"true" description:"amount in base units"`
}

func (c *increaseAllowanceCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, true)

	amount, err := entities.ParseAmount(c.Amount)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := o.IncreaseAllowance(ctx, c.Token, amount)
	if err != nil {
		return err
	}

	return printTx(res)
}

type proposeCommand struct {
	Cooperative string        `long:"cooperative" required:"true" description:"cooperative name"`
	Type        string        `long:"type" required:"true" description:"proposal type" choice:"WhitelistToken" choice:"AddMember" choice:"AddLP" choice:"ApproveLoan" choice:"LiquidateCollateral"`
	Description string        `long:"description" required:"true" description:"proposal description"`
	Duration    time.Duration `long:"duration" default:"72h" description:"voting period"`

	Denom        string `long:"denom" description:"WhitelistToken: denom"`
	TokenAddr    string `long:"token-addr" description:"WhitelistToken: cw20 contract address, native token if empty"`
	MaxLoanRatio string `long:"max-loan-ratio" description:"WhitelistToken: max loan ratio in (0, 1]"`
	Member       string `long:"new-member" description:"AddMember: address"`
}

func (c *proposeCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	_, g := mustGetGovernance(j, true)

	var data entities.ProposalData

	switch t := entities.ProposalType(c.Type); t {
	case entities.ProposalWhitelistToken:
		ratio, err := entities.ParseFraction(c.MaxLoanRatio)
		if err != nil {
			return err
		}

		native := c.TokenAddr == ""
		data = entities.ProposalData{
			Denom:        c.Denom,
			TokenAddr:    c.TokenAddr,
			IsNative:     &native,
			MaxLoanRatio: &ratio,
		}
	case entities.ProposalAddMember:
		data = entities.ProposalData{NewMemberAddr: c.Member}
	}

	p, err := entities.NewProposal(c.Description, entities.ProposalType(c.Type), data, time.Now().Add(c.Duration))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	created, err := g.Propose(ctx, c.Cooperative, p)
	if err != nil {
		return err
	}

	return printJSON(created.ToMsg())
}

type voteCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	ID          uint64 `long:"id" required:"true" description:"proposal id"`
	Weight      string `long:"weight" default:"0" description:"amount of native coins to bond"`
	Nay         bool   `long:"nay" description:"vote against"`
}

func (c *voteCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	_, g := mustGetGovernance(j, true)

	w, err := governance.ParseWeight(c.Weight)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := g.Vote(ctx, c.Cooperative, c.ID, w, !c.Nay)
	if err != nil {
		return err
	}

	return printTx(res)
}

type withdrawWeightCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	ID          uint64 `long:"id" required:"true" description:"proposal id"`
}

func (c *withdrawWeightCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	_, g := mustGetGovernance(j, true)

	ctx, cancel := signalContext()
	defer cancel()

	res, err := g.WithdrawWeight(ctx, c.Cooperative, c.ID)
	if err != nil {
		return err
	}

	return printTx(res)
}

type executeProposalCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	ID          uint64 `long:"id" required:"true" description:"proposal id"`
}

func (c *executeProposalCommand) Execute(_ []string) error {
	j, _ := mustGetJournal()
	_, g := mustGetGovernance(j, true)

	ctx, cancel := signalContext()
	defer cancel()

	res, err := g.ExecuteProposal(ctx, c.Cooperative, c.ID)
	if err != nil {
		return err
	}

	return printTx(res)
}
