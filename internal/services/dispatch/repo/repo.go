// Package repo provides the dead-letter repository
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"flatfinder/internal/modkit/repokit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/dispatch/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the dead-letter repository
type Storage interface {
	Insert(ctx context.Context, dl domain.DeadLetter) error
	List(ctx context.Context, kind domain.IntentKind, state string, limit int) ([]domain.DeadLetter, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, dl domain.DeadLetter) error {
	const sql = `
		INSERT INTO dead_letters (id, kind, payload, attempts, last_error, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := store.Exec(ctx, s.q, sql,
		dl.ID, string(dl.Kind), dl.Payload, dl.Attempts, dl.LastError, dl.State, dl.CreatedAt,
	)
	return perr.FromPostgres(err, "insert dead letter")
}

// List implements Storage. Empty kind or state means no filter
func (s *pg) List(
	ctx context.Context,
	kind domain.IntentKind,
	state string,
	limit int,
) ([]domain.DeadLetter, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT id, kind, payload, attempts, last_error, state, created_at, resolved_at
		FROM dead_letters
		WHERE TRUE
	`)
	if kind != "" {
		sb.WriteString(" AND kind = " + arg(string(kind)))
	}
	if state != "" {
		sb.WriteString(" AND state = " + arg(state))
	}
	sb.WriteString(" ORDER BY created_at DESC LIMIT " + arg(limit))

	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.DeadLetter, error) {
		var (
			dl domain.DeadLetter
			k  string
		)
		err := r.Scan(&dl.ID, &k, &dl.Payload, &dl.Attempts,
			&dl.LastError, &dl.State, &dl.CreatedAt, &dl.ResolvedAt)
		dl.Kind = domain.IntentKind(k)
		return dl, err
	}, sb.String(), args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "list dead letters")
	}
	return out, nil
}

// Resolve implements Storage
func (s *pg) Resolve(ctx context.Context, id uuid.UUID) error {
	const sql = `
		UPDATE dead_letters
		SET state = 'resolved', resolved_at = now()
		WHERE id = $1 AND state = 'open'
	`
	tag, err := s.q.Exec(ctx, sql, id)
	if err != nil {
		return perr.FromPostgres(err, "resolve dead letter")
	}
	if tag.RowsAffected() == 0 {
		return perr.Newf(perr.ErrorCodeNotFound, "open dead letter %s", id)
	}
	return nil
}
