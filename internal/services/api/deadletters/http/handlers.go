// Package http provides http transport for dead letters
package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"flatfinder/internal/modkit/httpkit"
	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/services/api/deadletters/domain"
	"flatfinder/internal/services/api/deadletters/service"
	dispatchdom "flatfinder/internal/services/dispatch/domain"
)

// Register mounts dead-letter endpoints on the given router
func Register(r httpkit.Router, svc service.Service) {
	h := &handlers{svc: svc}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
}

type handlers struct{ svc service.Service }

// swagger:route GET /deadletters DeadLetters deadLettersList
// @Summary List dead-lettered dispatch intents
// @Tags DeadLetters
// @Produce json
// @Param kind query string false "notify or apply"
// @Param state query string false "open or resolved"
// @Param limit query int false "max rows"
// @Success 200 {array} domain.Row "ok"
// @Router /deadletters [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()

	kind := dispatchdom.IntentKind(q.Get("kind"))
	switch kind {
	case "", dispatchdom.IntentNotify, dispatchdom.IntentApply:
	default:
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "unknown kind %q", kind)
	}
	state := q.Get("state")
	switch state {
	case "", dispatchdom.StateOpen, dispatchdom.StateResolved:
	default:
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "unknown state %q", state)
	}
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "limit must be an integer")
		}
		limit = n
	}

	dls, err := h.svc.List(r.Context(), kind, state, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(dls))
	for _, dl := range dls {
		rows = append(rows, toRow(dl))
	}
	return rows, nil
}

// swagger:route POST /deadletters/resolve DeadLetters deadLettersResolve
// @Summary Mark a dead letter as resolved
// @Tags DeadLetters
// @Accept json
// @Produce json
// @Param payload body domain.ResolveInput true "Dead letter id"
// @Success 200 {object} httpkit.Envelope "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /deadletters/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "malformed dead letter id")
	}
	if err := h.svc.Resolve(r.Context(), id); err != nil {
		return nil, err
	}
	return map[string]string{"id": in.ID, "state": dispatchdom.StateResolved}, nil
}

func toRow(dl dispatchdom.DeadLetter) domain.Row {
	row := domain.Row{
		ID:        dl.ID.String(),
		Kind:      string(dl.Kind),
		Attempts:  dl.Attempts,
		LastError: dl.LastError,
		State:     dl.State,
		CreatedAt: dl.CreatedAt.UTC().Format(time.RFC3339),
	}
	if dl.ResolvedAt != nil {
		row.ResolvedAt = dl.ResolvedAt.UTC().Format(time.RFC3339)
	}
	// payload is stored as intent JSON; surface it structured when possible
	var payload any
	if err := json.Unmarshal(dl.Payload, &payload); err == nil {
		row.Payload = payload
	} else {
		row.Payload = string(dl.Payload)
	}
	return row
}
