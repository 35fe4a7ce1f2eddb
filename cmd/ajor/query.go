package main

import (
	"context"
	"errors"

	"github.com/ajor-finance/ajor/internal/governance"
	"github.com/ajor-finance/ajor/internal/server"
	"github.com/ajor-finance/ajor/internal/service"
	"github.com/ajor-finance/ajor/internal/storage"
	"github.com/ajor-finance/ajor/pkg/api"
)

// runQuery runs f against read-only service.
func runQuery(f func(ctx context.Context, s service.Service) (interface{}, error)) error {
	j, _ := mustGetJournal()
	o := mustGetOrchestrator(j, false)

	ctx, cancel := signalContext()
	defer cancel()

	v, err := f(ctx, service.New(o, governance.New(o), j))
	if err != nil {
		return err
	}

	return printJSON(v)
}

type cooperativesCommand struct {
	Min string `long:"min" description:"inclusive lower bound"`
	Max string `long:"max" description:"inclusive upper bound"`
}

func (c *cooperativesCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		return s.ListCooperatives(ctx, c.Min, c.Max)
	})
}

type cooperativeCommand struct {
	Name string `long:"name" required:"true" description:"cooperative name"`
}

func (c *cooperativeCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		coop, err := s.GetCooperative(ctx, c.Name)
		if err != nil {
			return nil, err
		}

		return server.CooperativeResponse(coop), nil
	})
}

type memberCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	Address     string `long:"address" required:"true" description:"member address"`
}

func (c *memberCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		m, err := s.GetMember(ctx, c.Cooperative, c.Address)
		if err != nil {
			return nil, err
		}

		return m.ToMsg(), nil
	})
}

type contributionCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
	Address     string `long:"address" required:"true" description:"member address"`
}

func (c *contributionCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		return s.GetContribution(ctx, c.Cooperative, c.Address)
	})
}

type tokensCommand struct {
	Cooperative string `long:"cooperative" required:"true" description:"cooperative name"`
}

func (c *tokensCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		tokens, err := s.GetWhitelistedTokens(ctx, c.Cooperative)
		if err != nil {
			return nil, err
		}

		return server.Tokens(tokens), nil
	})
}

type tokenIDCommand struct {
	Token string `long:"token" required:"true" description:"denom or contract address"`
}

func (c *tokenIDCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		id, err := s.GetTokenID(ctx, c.Token)
		if err != nil {
			return nil, err
		}

		return api.TokenIDResponse{Token: c.Token, ID: id}, nil
	})
}

type proposalCommand struct {
	ID uint64 `long:"id" required:"true" description:"proposal id"`
}

func (c *proposalCommand) Execute(_ []string) error {
	return runQuery(func(ctx context.Context, s service.Service) (interface{}, error) {
		p, err := s.GetProposal(ctx, c.ID)
		if err != nil {
			return nil, err
		}

		return server.ProposalResponse(p), nil
	})
}

type historyCommand struct {
	Sender string `long:"sender" description:"filter by sender"`
	Action string `long:"action" description:"filter by action"`
	Limit  uint16 `long:"limit" default:"20" description:"max entries"`
}

func (c *historyCommand) Execute(_ []string) error {
	if opts.Postgres == "" {
		return errors.New("journal is disabled: --postgres is not set")
	}

	j, _ := mustGetJournal()

	ctx, cancel := signalContext()
	defer cancel()

	l, err := j.List(ctx, storage.ListParams{
		Sender: c.Sender,
		Action: c.Action,
		Limit:  c.Limit,
	})
	if err != nil {
		return err
	}

	return printJSON(server.JournalEntries(l))
}
