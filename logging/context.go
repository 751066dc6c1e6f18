package logging

import (
	"context"

	"github.com/google/uuid"
)

type debugKeyType struct{}

// EnableDebugMode returns a context in which C prefixed log calls are emitted regardless of the
// logger level and tagged with key. An empty key gets a random one.
func EnableDebugMode(ctx context.Context, key string) context.Context {
	if key == "" {
		key = uuid.NewString()[:8]
	}
	return context.WithValue(ctx, debugKeyType{}, key)
}

// DebugKey returns the tag of a debug mode context, or "" when debug mode is off.
func DebugKey(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	key, _ := ctx.Value(debugKeyType{}).(string)
	return key
}

// IsDebugMode returns whether the context has debug logging enabled.
func IsDebugMode(ctx context.Context) bool {
	return DebugKey(ctx) != ""
}
