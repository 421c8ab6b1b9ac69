// Package intents publishes dispatch intents on the message bus.
// Downstream consumers (notification sender, application filler) are
// separate deployments; the pipeline only emits
package intents

import (
	"context"
	"encoding/json"

	perr "flatfinder/internal/platform/errors"
	"flatfinder/internal/platform/store"
	"flatfinder/internal/services/dispatch/domain"
)

// Subjects the pipeline publishes on
const (
	SubjectNotify = "flatfinder.notify.intent"
	SubjectApply  = "flatfinder.apply.enqueue"
)

// Notifier implements domain.NotifierPort over NATS
type Notifier struct {
	bus store.Bus
}

// NewNotifier constructs a Notifier
func NewNotifier(bus store.Bus) *Notifier { return &Notifier{bus: bus} }

// Notify implements domain.NotifierPort
func (n *Notifier) Notify(ctx context.Context, intent domain.NotifyIntent) error {
	return publish(ctx, n.bus, SubjectNotify, intent)
}

// AppQueue implements domain.ApplicationQueuePort over NATS
type AppQueue struct {
	bus store.Bus
}

// NewAppQueue constructs an AppQueue
func NewAppQueue(bus store.Bus) *AppQueue { return &AppQueue{bus: bus} }

// Enqueue implements domain.ApplicationQueuePort
func (a *AppQueue) Enqueue(ctx context.Context, intent domain.ApplyIntent) error {
	return publish(ctx, a.bus, SubjectApply, intent)
}

func publish(ctx context.Context, bus store.Bus, subject string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode intent")
	}
	if err := bus.Publish(ctx, subject, body); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "publish %s", subject)
	}
	return nil
}
