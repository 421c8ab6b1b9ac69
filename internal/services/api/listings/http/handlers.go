// Package http provides http transport for listing lookups
package http

import (
	stdhttp "net/http"
	"time"

	"flatfinder/internal/core/scoring"
	"flatfinder/internal/modkit/httpkit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/services/api/listings/domain"
	listdom "flatfinder/internal/services/listings/domain"
)

// Register mounts listing endpoints on the given router
func Register(r httpkit.Router, reader listdom.ReaderPort) {
	h := &handlers{reader: reader}
	httpkit.Get(r, "/lookup", h.lookup)
}

type handlers struct{ reader listdom.ReaderPort }

// swagger:route GET /listings/lookup Listings listingsLookup
// @Summary Look up one listing by feed external id
// @Tags Listings
// @Produce json
// @Param external_id query string true "feed external id"
// @Success 200 {object} domain.Row "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /listings/lookup [get]
func (h *handlers) lookup(r *stdhttp.Request) (any, error) {
	id := r.URL.Query().Get("external_id")
	if id == "" {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "external_id is required")
	}

	l, err := h.reader.ByExternalID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return toRow(l), nil
}

func toRow(l listdom.Listing) domain.Row {
	return domain.Row{
		ExternalID:  l.ExternalID,
		Title:       l.Title,
		Price:       l.Price,
		Rooms:       l.Rooms,
		SizeSqm:     l.SizeSqm,
		District:    l.District,
		PetFriendly: triLabel(l.Amenities.PetFriendly),
		Balcony:     triLabel(l.Amenities.Balcony),
		Furnished:   triLabel(l.Amenities.Furnished),
		Raw:         l.Raw,
		FirstSeenAt: l.FirstSeenAt.UTC().Format(time.RFC3339),
		LastSeenAt:  l.LastSeenAt.UTC().Format(time.RFC3339),
		IsActive:    l.IsActive,
	}
}

// triLabel renders an amenity flag; unspecified stays empty and is
// omitted from the JSON body
func triLabel(t scoring.Tri) string {
	switch t {
	case scoring.TriYes:
		return "yes"
	case scoring.TriNo:
		return "no"
	default:
		return ""
	}
}
