// Package http provides http transport for match history
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"flatfinder/internal/modkit/httpkit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/services/api/matches/domain"
	matchesdom "flatfinder/internal/services/matches/domain"
)

// Register mounts match history endpoints on the given router
func Register(r httpkit.Router, q matchesdom.QueryPort) {
	h := &handlers{q: q}
	httpkit.Get(r, "/recent", h.recent)
}

type handlers struct{ q matchesdom.QueryPort }

// swagger:route GET /matches/recent Matches matchesRecent
// @Summary Most recently computed match results
// @Tags Matches
// @Produce json
// @Param limit query int false "max rows"
// @Success 200 {array} domain.Row "ok"
// @Router /matches/recent [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "limit must be an integer")
		}
		limit = n
	}

	xs, err := h.q.Recent(r.Context(), limit)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(xs))
	for _, m := range xs {
		rows = append(rows, domain.Row{
			UserID:     m.UserID.String(),
			ListingID:  m.ListingID,
			Score:      m.Score,
			ComputedAt: m.ComputedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows, nil
}
