package core

import "context"

// Context keys for analysis options
type contextKey string

const suppressProgressKey contextKey = "suppressProgress"

// withSuppressProgress marks the run as having no terminal to draw progress on.
func withSuppressProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressProgressKey, true)
}

// shouldSuppressProgress returns whether progress output should be suppressed
func shouldSuppressProgress(ctx context.Context) bool {
	val := ctx.Value(suppressProgressKey)
	if val == nil {
		return false // default: show progress when configured
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
