// Package appctx provides request-scoped values extraction.
//
// Authentication happens upstream (the desktop shell verifies the
// signed token before the request reaches this service); this package
// only carries the already-resolved identity.
package appctx

import (
	"context"
)

// Caller contains the resolved identity of an authenticated caller.
type Caller struct {
	// DisplayName is what gets stamped into created_by on documents.
	DisplayName string
	Email       string
}

// DefaultDisplayName is used when no caller was resolved upstream.
const DefaultDisplayName = "Admin"

type callerKey struct{}
type requestIDKey struct{}

// WithCaller adds Caller to context.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller returns Caller from context, or nil.
func GetCaller(ctx context.Context) *Caller {
	if v, ok := ctx.Value(callerKey{}).(*Caller); ok {
		return v
	}
	return nil
}

// CallerName returns the caller display name, falling back to
// DefaultDisplayName when the context carries no identity.
func CallerName(ctx context.Context) string {
	c := GetCaller(ctx)
	if c == nil {
		return DefaultDisplayName
	}
	if c.DisplayName != "" {
		return c.DisplayName
	}
	if c.Email != "" {
		return c.Email
	}
	return DefaultDisplayName
}

// WithRequestID adds a request id to context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the request id from context or empty string.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
