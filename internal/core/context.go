package core

import "context"

type contextKey string

const ctxKeyClient contextKey = "client"

// ClientInfo identifies who started a run; it is stored with the run history.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// ContextWithClient attaches client details to ctx.
func ContextWithClient(ctx context.Context, c ClientInfo) context.Context {
	return context.WithValue(ctx, ctxKeyClient, c)
}

// ClientFromContext returns the client attached by ContextWithClient, if any.
func ClientFromContext(ctx context.Context) ClientInfo {
	if c, ok := ctx.Value(ctxKeyClient).(ClientInfo); ok {
		return c
	}
	return ClientInfo{}
}
