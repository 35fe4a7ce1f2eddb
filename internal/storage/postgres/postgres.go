// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ajor-finance/ajor/internal/storage"
)

var log = logrus.WithField("package", "postgres")

type pg struct {
	ext sqlx.ExtContext
}

type entryDTO struct {
	ID        uuid.UUID `db:"id"`
	Action    string    `db:"action"`
	Sender    string    `db:"sender"`
	Contract  string    `db:"contract"`
	Funds     string    `db:"funds"`
	Memo      string    `db:"memo"`
	TxHash    string    `db:"tx_hash"`
	Height    int64     `db:"height"`
	CreatedAt time.Time `db:"created_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Journal {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(j storage.Journal) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return f(s)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.WithError(err).Error("failed to rollback tx")
		}
	}()

	if err := f(pg{ext: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) Append(ctx context.Context, e *storage.Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	var createdAt time.Time
	query, args, err := sqlx.Named(`
		INSERT INTO journal(id, action, sender, contract, funds, memo, tx_hash, height)
		VALUES(:id, :action, :sender, :contract, :funds, :memo, :tx_hash, :height)
		RETURNING created_at
	`, toDTO(e))
	if err != nil {
		return fmt.Errorf("failed to bind named query: %w", err)
	}

	if err := sqlx.GetContext(ctx, s.ext, &createdAt, s.ext.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	e.CreatedAt = createdAt

	return nil
}

func (s pg) Get(ctx context.Context, id uuid.UUID) (*storage.Entry, error) {
	var e entryDTO
	if err := sqlx.GetContext(ctx, s.ext, &e, `
		SELECT id, action, sender, contract, funds, memo, tx_hash, height, created_at
		FROM journal
		WHERE id = $1
	`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toStorageEntry(&e), nil
}

func (s pg) List(ctx context.Context, p storage.ListParams) ([]*storage.Entry, error) {
	var (
		where []string
		args  []interface{}
	)

	if p.Sender != "" {
		args = append(args, p.Sender)
		where = append(where, fmt.Sprintf("sender = $%d", len(args)))
	}
	if p.Action != "" {
		args = append(args, p.Action)
		where = append(where, fmt.Sprintf("action = $%d", len(args)))
	}
	if p.Before != nil {
		args = append(args, *p.Before)
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}

	limit := p.Limit
	if limit == 0 {
		limit = storage.DefaultListLimit
	}
	args = append(args, limit)

	query := `SELECT id, action, sender, contract, funds, memo, tx_hash, height, created_at FROM journal`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d", len(args))

	var ee []*entryDTO
	if err := sqlx.SelectContext(ctx, s.ext, &ee, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*storage.Entry, len(ee))
	for i, v := range ee {
		out[i] = toStorageEntry(v)
	}

	return out, nil
}

func toDTO(e *storage.Entry) *entryDTO {
	return &entryDTO{
		ID:       e.ID,
		Action:   e.Action,
		Sender:   e.Sender,
		Contract: e.Contract,
		Funds:    e.Funds,
		Memo:     e.Memo,
		TxHash:   e.TxHash,
		Height:   e.Height,
	}
}

func toStorageEntry(e *entryDTO) *storage.Entry {
	return &storage.Entry{
		ID:        e.ID,
		Action:    e.Action,
		Sender:    e.Sender,
		Contract:  e.Contract,
		Funds:     e.Funds,
		Memo:      e.Memo,
		TxHash:    e.TxHash,
		Height:    e.Height,
		CreatedAt: e.CreatedAt.UTC(),
	}
}
