package core

import "context"

// Context keys for board options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	generationKey     contextKey = "generation"
	snapshotIDKey     contextKey = "snapshotID"
)

// WithSuppressHeader marks the context so board runs print no header
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withGeneration stores the board refresh generation in the context
func withGeneration(ctx context.Context, gen uint64) context.Context {
	return context.WithValue(ctx, generationKey, gen)
}

// generationOf returns the board refresh generation, if any
func generationOf(ctx context.Context) (uint64, bool) {
	gen, ok := ctx.Value(generationKey).(uint64)
	return gen, ok
}

// withSnapshotID stores the history snapshot ID in the context
func withSnapshotID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, snapshotIDKey, id)
}

// getSnapshotID returns the history snapshot ID from context
func getSnapshotID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(snapshotIDKey).(int64)
	return id, ok
}
