// Package storage contains Journal interface which keeps confirmed contract executions.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=./mock/storage_mock.go -package=mock -source=storage.go

// ErrNotFound means that entry is not found.
var ErrNotFound = errors.New("not found")

// DefaultListLimit is used when ListParams.Limit is zero.
const DefaultListLimit = 100

// Journal is append-only log of executed actions.
type Journal interface {
	InTx(ctx context.Context, f func(j Journal) error) error

	Append(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	List(ctx context.Context, p ListParams) ([]*Entry, error)
}

// Entry is a confirmed contract execution.
type Entry struct {
	ID       uuid.UUID
	Action   string
	Sender   string
	Contract string
	// Funds are coins attached to the call in sdk.Coins string form, e.g. "1untrn".
	Funds     string
	Memo      string
	TxHash    string
	Height    int64
	CreatedAt time.Time
}

// ListParams ...
type ListParams struct {
	Sender string
	Action string
	// Before filters entries created strictly before the moment.
	Before *time.Time
	Limit  uint16
}

// NewEntry returns entry with generated id.
func NewEntry(action, sender, contract, funds, memo, txHash string, height int64) *Entry {
	return &Entry{
		ID:       uuid.New(),
		Action:   action,
		Sender:   sender,
		Contract: contract,
		Funds:    funds,
		Memo:     memo,
		TxHash:   txHash,
		Height:   height,
	}
}

type nop struct{}

// NewNop returns journal which drops all entries.
func NewNop() Journal {
	return nop{}
}

func (n nop) InTx(_ context.Context, f func(j Journal) error) error {
	return f(n)
}

func (nop) Append(_ context.Context, _ *Entry) error {
	return nil
}

func (nop) Get(_ context.Context, _ uuid.UUID) (*Entry, error) {
	return nil, ErrNotFound
}

func (nop) List(_ context.Context, _ ListParams) ([]*Entry, error) {
	return []*Entry{}, nil
}
