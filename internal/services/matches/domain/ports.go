package domain

import "context"

// WriterPort records match results for one listing pass
type WriterPort interface {
	RecordBatch(ctx context.Context, xs []MatchResult) error
}

// QueryPort is the read surface for the ops API
type QueryPort interface {
	Recent(ctx context.Context, limit int) ([]MatchResult, error)
}
