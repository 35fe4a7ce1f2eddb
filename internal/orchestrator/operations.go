package orchestrator

import (
	"context"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ajor-finance/ajor/internal/chain"
	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

// UpdateTokenPrice sets usd price of token.
func (o *Orchestrator) UpdateTokenPrice(ctx context.Context, token string, usdPrice sdk.Dec) (*chain.TxResult, error) {
	if _, err := o.account(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(token) == "" {
		return nil, invalidRequest("token is empty")
	}

	if usdPrice.IsNil() || !usdPrice.IsPositive() {
		return nil, invalidRequest("price must be positive")
	}

	return o.Execute(ctx, msg.ExecuteMsg{UpdateTokenPrice: &msg.UpdateTokenPrice{
		TokenAddr: token,
		USDPrice:  usdPrice,
	}}, nil)
}

// CreateCooperative creates cooperative with initial members and whitelisted tokens.
func (o *Orchestrator) CreateCooperative(ctx context.Context, c entities.Cooperative) (*chain.TxResult, error) {
	if _, err := o.account(); err != nil {
		return nil, err
	}

	m, err := c.CreateMsg()
	if err != nil {
		return nil, err
	}

	return o.Execute(ctx, m, nil)
}

// FundCooperative contributes amount of token to the cooperative.
func (o *Orchestrator) FundCooperative(
	ctx context.Context,
	cooperative string,
	token entities.WhitelistedToken,
	amount sdk.Int,
) (*chain.TxResult, error) {
	sender, err := o.account()
	if err != nil {
		return nil, err
	}

	if err := o.checkPayment(cooperative, token, amount); err != nil {
		return nil, err
	}

	m := msg.ExecuteMsg{FundCooperative: &msg.FundCooperative{
		CooperativeName: cooperative,
		Token:           token.Key(),
		IsNative:        token.IsNative,
		Amount:          amount,
	}}

	return o.executeWithPayment(ctx, sender, m, []payment{{token: token, amount: amount}})
}

// Borrow borrows tokenOut against collaterals. Collaterals and amounts are matched by position.
// Collateral is taken from the member's contribution, so nothing is attached to the call.
func (o *Orchestrator) Borrow(
	ctx context.Context,
	cooperative string,
	collaterals []entities.WhitelistedToken,
	amounts []sdk.Int,
	tokenOut string,
	minAmountOut sdk.Int,
) (*chain.TxResult, error) {
	if _, err := o.account(); err != nil {
		return nil, err
	}

	if len(collaterals) != len(amounts) {
		return nil, invalidRequest("%d collateral tokens have %d amounts", len(collaterals), len(amounts))
	}

	if len(collaterals) == 0 {
		return nil, invalidRequest("no collateral")
	}

	if strings.TrimSpace(tokenOut) == "" {
		return nil, invalidRequest("token out is empty")
	}

	if minAmountOut.IsNil() || minAmountOut.IsNegative() {
		return nil, invalidRequest("min amount out must not be negative")
	}

	m := msg.Borrow{
		CooperativeName: cooperative,
		TokensIn:        make([]string, len(collaterals)),
		AmountIn:        make([]sdk.Int, len(amounts)),
		TokenOut:        tokenOut,
		MinAmountOut:    minAmountOut,
	}

	for i, t := range collaterals {
		if err := o.checkPayment(cooperative, t, amounts[i]); err != nil {
			return nil, err
		}

		m.TokensIn[i] = t.TokenIDKey()
		m.AmountIn[i] = amounts[i]
	}

	return o.Execute(ctx, msg.ExecuteMsg{Borrow: &m}, nil)
}

// Repay repays loan in token. Amount is attached as funds or granted as allowance.
func (o *Orchestrator) Repay(
	ctx context.Context,
	cooperative string,
	token entities.WhitelistedToken,
	amount sdk.Int,
) (*chain.TxResult, error) {
	sender, err := o.account()
	if err != nil {
		return nil, err
	}

	if err := o.checkPayment(cooperative, token, amount); err != nil {
		return nil, err
	}

	m := msg.ExecuteMsg{Repay: &msg.Repay{
		CooperativeName: cooperative,
		Token:           token.Key(),
	}}

	return o.executeWithPayment(ctx, sender, m, []payment{{token: token, amount: amount}})
}

// WithdrawContributionAndReward withdraws member's contribution in token together with reward.
func (o *Orchestrator) WithdrawContributionAndReward(ctx context.Context, cooperative, token string) (*chain.TxResult, error) {
	if _, err := o.account(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cooperative) == "" {
		return nil, invalidRequest("cooperative name is empty")
	}

	if strings.TrimSpace(token) == "" {
		return nil, invalidRequest("token is empty")
	}

	return o.Execute(ctx, msg.ExecuteMsg{WithdrawContributionAndReward: &msg.WithdrawContributionAndReward{
		CooperativeName: cooperative,
		Token:           token,
	}}, nil)
}

// IncreaseAllowance grants the contract permission to spend amount of cw20 token.
func (o *Orchestrator) IncreaseAllowance(ctx context.Context, token string, amount sdk.Int) (*chain.TxResult, error) {
	sender, err := o.account()
	if err != nil {
		return nil, err
	}

	if !entities.IsAddressValid(token) {
		return nil, invalidRequest("token contract %q is invalid", token)
	}

	if amount.IsNil() || !amount.IsPositive() {
		return nil, invalidRequest("amount must be positive")
	}

	return o.increaseAllowance(ctx, sender, token, amount)
}

type payment struct {
	token  entities.WhitelistedToken
	amount sdk.Int
}

func (o *Orchestrator) checkPayment(cooperative string, token entities.WhitelistedToken, amount sdk.Int) error {
	if strings.TrimSpace(cooperative) == "" {
		return invalidRequest("cooperative name is empty")
	}

	if err := token.Validate(); err != nil {
		return err
	}

	if amount.IsNil() || !amount.IsPositive() {
		return invalidRequest("amount of %s must be positive", token.Denom)
	}

	if token.IsNative {
		if err := sdk.ValidateDenom(token.Denom); err != nil {
			return invalidRequest("denom %q: %s", token.Denom, err)
		}
	}

	return nil
}

// executeWithPayment attaches native payments as funds and authorises cw20 payments before the call.
func (o *Orchestrator) executeWithPayment(ctx context.Context, sender string, m msg.ExecuteMsg, payments []payment) (*chain.TxResult, error) {
	funds := sdk.Coins{}
	cw20 := make(map[string]sdk.Int)
	var cw20Order []string

	for _, p := range payments {
		if p.token.IsNative {
			funds = funds.Add(sdk.Coin{Denom: p.token.Denom, Amount: p.amount})
			continue
		}

		addr := p.token.ContractAddr
		if v, ok := cw20[addr]; ok {
			cw20[addr] = v.Add(p.amount)
			continue
		}
		cw20[addr] = p.amount
		cw20Order = append(cw20Order, addr)
	}

	for _, token := range cw20Order {
		if err := o.ensureAllowance(ctx, sender, token, cw20[token]); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, &ActionError{Action: m.Action(), Err: err}
	}

	if funds.Empty() {
		funds = nil
	}

	res, err := o.execute(ctx, sender, o.cfg.Contract, m, funds)
	if err != nil {
		return nil, err
	}

	for _, token := range cw20Order {
		o.allowances.consume(allowanceKey(token, sender, o.cfg.Contract), cw20[token])
	}

	return res, nil
}
