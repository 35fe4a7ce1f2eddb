// Package governance contains proposal lifecycle operations: propose, vote, withdraw weight and execute.
package governance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/sirupsen/logrus"

	"github.com/ajor-finance/ajor/internal/chain"
	"github.com/ajor-finance/ajor/internal/orchestrator"
	"github.com/ajor-finance/ajor/pkg/entities"
	"github.com/ajor-finance/ajor/pkg/msg"
)

const (
	wasmEventType       = "wasm"
	proposalIDAttribute = "proposal_id"
)

var log = logrus.WithField("package", "governance")

// ErrProposalIDUnknown is returned when the propose transaction doesn't report id of the created proposal.
var ErrProposalIDUnknown = errors.New("proposal id is unknown")

// ProposalIDError contains hash of the transaction which created a proposal with unknown id.
type ProposalIDError struct {
	TxHash string
}

// Error ...
func (e *ProposalIDError) Error() string {
	return fmt.Sprintf("%s: tx %s", ErrProposalIDUnknown, e.TxHash)
}

// Unwrap ...
func (e *ProposalIDError) Unwrap() error {
	return ErrProposalIDUnknown
}

// Governance ...
type Governance struct {
	o   *orchestrator.Orchestrator
	now func() time.Time
}

// New returns new instance of Governance.
func New(o *orchestrator.Orchestrator) *Governance {
	return &Governance{
		o:   o,
		now: time.Now,
	}
}

// Propose submits proposal and returns it as stored by the contract.
func (g *Governance) Propose(ctx context.Context, cooperative string, p entities.Proposal) (entities.Proposal, error) {
	if !g.o.Session().IsReady() {
		return entities.Proposal{}, orchestrator.ErrNotConnected
	}

	m, err := p.ProposeMsg(cooperative)
	if err != nil {
		return entities.Proposal{}, err
	}

	res, err := g.o.Execute(ctx, m, nil)
	if err != nil {
		return entities.Proposal{}, err
	}

	v, ok := res.Attribute(wasmEventType, proposalIDAttribute)
	if !ok {
		return entities.Proposal{}, &ProposalIDError{TxHash: res.Hash}
	}

	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.WithError(err).WithField("tx", res.Hash).Errorf("invalid proposal id %q", v)
		return entities.Proposal{}, &ProposalIDError{TxHash: res.Hash}
	}

	log.WithField("tx", res.Hash).WithField("id", id).Info("proposal is created")

	return g.o.Proposal(ctx, id)
}

// Vote votes on proposal bonding weight of native coins. Zero weight is a vote without bonding.
func (g *Governance) Vote(ctx context.Context, cooperative string, id uint64, weight sdk.Int, aye bool) (*chain.TxResult, error) {
	if !g.o.Session().IsReady() {
		return nil, orchestrator.ErrNotConnected
	}

	if strings.TrimSpace(cooperative) == "" {
		return nil, fmt.Errorf("%w: cooperative name is empty", orchestrator.ErrInvalidRequest)
	}

	if weight.IsNil() || weight.IsNegative() {
		return nil, fmt.Errorf("%w: weight must not be negative", orchestrator.ErrInvalidRequest)
	}

	var funds sdk.Coins
	if weight.IsPositive() {
		funds = sdk.Coins{sdk.Coin{Denom: g.o.Config().NativeDenom, Amount: weight}}
	}

	return g.o.Execute(ctx, msg.ExecuteMsg{Vote: &msg.VoteOnProposal{
		CooperativeName: cooperative,
		ProposalID:      id,
		Weight:          weight,
		Aye:             aye,
	}}, funds)
}

// ParseWeight parses vote weight given as a decimal integer string.
func ParseWeight(s string) (sdk.Int, error) {
	w, err := entities.ParseAmount(s)
	if err != nil {
		return sdk.Int{}, fmt.Errorf("%w: %s", orchestrator.ErrInvalidRequest, err)
	}
	return w, nil
}

// WithdrawWeight releases weight bonded to proposal.
func (g *Governance) WithdrawWeight(ctx context.Context, cooperative string, id uint64) (*chain.TxResult, error) {
	if !g.o.Session().IsReady() {
		return nil, orchestrator.ErrNotConnected
	}

	if strings.TrimSpace(cooperative) == "" {
		return nil, fmt.Errorf("%w: cooperative name is empty", orchestrator.ErrInvalidRequest)
	}

	return g.o.Execute(ctx, msg.ExecuteMsg{WithdrawWeight: &msg.WithdrawWeight{
		CooperativeName: cooperative,
		ProposalID:      id,
	}}, nil)
}

// ExecuteProposal asks the contract to apply proposal. Quorum and majority are evaluated by the contract.
func (g *Governance) ExecuteProposal(ctx context.Context, cooperative string, id uint64) (*chain.TxResult, error) {
	if !g.o.Session().IsReady() {
		return nil, orchestrator.ErrNotConnected
	}

	if strings.TrimSpace(cooperative) == "" {
		return nil, fmt.Errorf("%w: cooperative name is empty", orchestrator.ErrInvalidRequest)
	}

	return g.o.Execute(ctx, msg.ExecuteMsg{ExecuteProposal: &msg.ExecuteProposal{
		CooperativeName: cooperative,
		ProposalID:      id,
	}}, nil)
}

// ProposalState is proposal with its status at the moment of query.
type ProposalState struct {
	entities.Proposal
	Status entities.ProposalStatus
}

// Proposal re-reads proposal and derives its status.
func (g *Governance) Proposal(ctx context.Context, id uint64) (ProposalState, error) {
	p, err := g.o.Proposal(ctx, id)
	if err != nil {
		return ProposalState{}, err
	}

	return ProposalState{
		Proposal: p,
		Status:   p.Status(g.now()),
	}, nil
}
