package domain

import (
	"context"

	"github.com/google/uuid"

	listdom "flatfinder/internal/services/listings/domain"
)

// NotifierPort is the external notification collaborator
type NotifierPort interface {
	Notify(ctx context.Context, intent NotifyIntent) error
}

// ApplicationQueuePort is the external application queue collaborator
type ApplicationQueuePort interface {
	Enqueue(ctx context.Context, intent ApplyIntent) error
}

// DispatcherPort routes decisions for one listing to the collaborators
type DispatcherPort interface {
	Dispatch(ctx context.Context, listing listdom.Summary, decisions []Decision) error
}

// DeadLetterPort is the review surface exposed through the ops API
type DeadLetterPort interface {
	List(ctx context.Context, kind IntentKind, state string, limit int) ([]DeadLetter, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}
