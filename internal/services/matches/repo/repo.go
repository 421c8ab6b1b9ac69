// Package repo provides the match history repository
package repo

import (
	"context"
	"fmt"
	"strings"

	"flatfinder/internal/modkit/repokit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/matches/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the matches repository
type Storage interface {
	UpsertBatch(ctx context.Context, xs []domain.MatchResult) error
	Recent(ctx context.Context, limit int) ([]domain.MatchResult, error)
}

// UpsertBatch implements Storage. The (user_id, listing_id) conflict target
// is the uniqueness invariant: recomputation replaces, never duplicates
func (s *pg) UpsertBatch(ctx context.Context, xs []domain.MatchResult) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO match_results
		(user_id, listing_id, score, computed_at) VALUES `)

	args := make([]any, 0, len(xs)*4)
	for i, m := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*4 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d)", base, base+1, base+2, base+3)
		args = append(args, m.UserID, m.ListingID, m.Score, m.ComputedAt)
	}
	sb.WriteString(` ON CONFLICT (user_id, listing_id) DO UPDATE SET
		score = EXCLUDED.score,
		computed_at = EXCLUDED.computed_at`)

	_, err := store.Exec(ctx, s.q, sb.String(), args...)
	return perr.FromPostgres(err, "upsert match results")
}

// Recent implements Storage
func (s *pg) Recent(ctx context.Context, limit int) ([]domain.MatchResult, error) {
	const sql = `
		SELECT user_id, listing_id, score, computed_at
		FROM match_results
		ORDER BY computed_at DESC
		LIMIT $1
	`
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.MatchResult, error) {
		var m domain.MatchResult
		err := r.Scan(&m.UserID, &m.ListingID, &m.Score, &m.ComputedAt)
		return m, err
	}, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list recent matches")
	}
	return out, nil
}
