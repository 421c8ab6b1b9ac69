// Package repo provides the Postgres seen-store for listings
package repo

import (
	"context"
	"errors"
	"time"

	"flatfinder/internal/core/scoring"
	"flatfinder/internal/modkit/repokit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/listings/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the seen-store surface the detector service runs on
type Storage interface {
	// UpsertSeen atomically records a sighting and reports the transition.
	// Concurrent callers for the same external id serialize on the row:
	// exactly one of them observes TransitionNew
	UpsertSeen(ctx context.Context, l domain.Listing) (domain.Transition, error)

	DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error)
	ByExternalID(ctx context.Context, externalID string) (domain.Listing, error)
}

// UpsertSeen implements Storage.
// The prev_hash column is written from the pre-update row inside the same
// statement, which is what makes the new/changed/unchanged classification
// safe under concurrent pollers without an advisory lock
func (s *pg) UpsertSeen(ctx context.Context, l domain.Listing) (domain.Transition, error) {
	const sql = `
		INSERT INTO listings (
			external_id, title, price, rooms, size_sqm, district,
			pet_friendly, balcony, furnished, raw,
			first_seen_at, last_seen_at, is_active, content_hash, prev_hash
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11,TRUE,$12,$12)
		ON CONFLICT (external_id) DO UPDATE SET
			title        = EXCLUDED.title,
			price        = EXCLUDED.price,
			rooms        = EXCLUDED.rooms,
			size_sqm     = EXCLUDED.size_sqm,
			district     = EXCLUDED.district,
			pet_friendly = EXCLUDED.pet_friendly,
			balcony      = EXCLUDED.balcony,
			furnished    = EXCLUDED.furnished,
			raw          = EXCLUDED.raw,
			last_seen_at = EXCLUDED.last_seen_at,
			is_active    = TRUE,
			prev_hash    = listings.content_hash,
			content_hash = EXCLUDED.content_hash
		RETURNING (xmax = 0) AS inserted, prev_hash
	`
	var (
		inserted bool
		prev     int64
	)
	err := s.q.QueryRow(ctx, sql,
		l.ExternalID, l.Title, l.Price, l.Rooms, l.SizeSqm, l.District,
		int16(l.Amenities.PetFriendly), int16(l.Amenities.Balcony), int16(l.Amenities.Furnished),
		l.Raw, l.LastSeenAt, int64(l.ContentHash),
	).Scan(&inserted, &prev)
	if err != nil {
		return domain.TransitionUnchanged, perr.FromPostgres(err, "listings upsert seen")
	}
	switch {
	case inserted:
		return domain.TransitionNew, nil
	case uint64(prev) != l.ContentHash:
		return domain.TransitionChanged, nil
	default:
		return domain.TransitionUnchanged, nil
	}
}

// DeactivateStale implements Storage
func (s *pg) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	const sql = `
		UPDATE listings
		SET is_active = FALSE
		WHERE is_active AND last_seen_at < $1
	`
	tag, err := s.q.Exec(ctx, sql, cutoff)
	if err != nil {
		return 0, perr.FromPostgres(err, "listings deactivate stale")
	}
	return tag.RowsAffected(), nil
}

// ByExternalID implements Storage
func (s *pg) ByExternalID(ctx context.Context, externalID string) (domain.Listing, error) {
	const sql = `
		SELECT external_id, title, price, rooms, size_sqm, district,
		       pet_friendly, balcony, furnished, raw,
		       first_seen_at, last_seen_at, is_active, content_hash
		FROM listings
		WHERE external_id = $1
	`
	l, err := store.One(ctx, s.q, func(r store.Row) (domain.Listing, error) {
		var (
			l    domain.Listing
			pet  int16
			bal  int16
			fur  int16
			hash int64
		)
		err := r.Scan(
			&l.ExternalID, &l.Title, &l.Price, &l.Rooms, &l.SizeSqm, &l.District,
			&pet, &bal, &fur, &l.Raw,
			&l.FirstSeenAt, &l.LastSeenAt, &l.IsActive, &hash,
		)
		if err != nil {
			return l, err
		}
		l.Amenities = scoring.Amenities{
			PetFriendly: scoring.Tri(pet),
			Balcony:     scoring.Tri(bal),
			Furnished:   scoring.Tri(fur),
		}
		l.ContentHash = uint64(hash)
		return l, nil
	}, sql, externalID)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.Listing{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "listing %q", externalID)
		}
		return domain.Listing{}, perr.FromPostgres(err, "listings by external id")
	}
	return l, nil
}
