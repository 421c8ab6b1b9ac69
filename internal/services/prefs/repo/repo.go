// Package repo provides the Postgres reader for user preferences
package repo

import (
	"context"

	"flatfinder/internal/core/scoring"
	"flatfinder/internal/modkit/repokit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/prefs/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the preference read surface
type Storage interface {
	GetActivePreferences(ctx context.Context) ([]domain.UserPreference, error)
}

// GetActivePreferences implements Storage
func (s *pg) GetActivePreferences(ctx context.Context) ([]domain.UserPreference, error) {
	const sql = `
		SELECT user_id, price_min, price_max, ideal_price,
		       districts_top, districts_ok,
		       rooms_min, rooms_max, ideal_rooms, min_size_sqm,
		       pet_friendly, balcony, furnished,
		       notify_threshold, channels, auto_apply, auto_apply_threshold,
		       updated_at
		FROM user_preferences
		WHERE is_active
		ORDER BY user_id
	`
	out, err := store.Many(ctx, s.q, func(r store.Row) (domain.UserPreference, error) {
		var (
			p   domain.UserPreference
			pet int16
			bal int16
			fur int16
		)
		err := r.Scan(
			&p.UserID, &p.PriceMin, &p.PriceMax, &p.IdealPrice,
			&p.DistrictsTop, &p.DistrictsOK,
			&p.RoomsMin, &p.RoomsMax, &p.IdealRooms, &p.MinSizeSqm,
			&pet, &bal, &fur,
			&p.NotifyThreshold, &p.Channels, &p.AutoApply, &p.AutoApplyThreshold,
			&p.UpdatedAt,
		)
		if err != nil {
			return p, err
		}
		p.Amenities = scoring.Amenities{
			PetFriendly: scoring.Tri(pet),
			Balcony:     scoring.Tri(bal),
			Furnished:   scoring.Tri(fur),
		}
		p.Active = true
		return p, nil
	}, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "load active preferences")
	}
	return out, nil
}
