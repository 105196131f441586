package telemetry

import (
	"context"
)

const (
	telemeterContextKey ctxKey = iota
)

type ctxKey byte

func ContextWithTelemeter(ctx context.Context, tlm *Telemeter) context.Context {
	return context.WithValue(ctx, telemeterContextKey, tlm)
}

// TelemeterFromContext returns the telemeter stored in ctx.
// A zero Telemeter is returned when none is set; it runs functions without collecting anything.
func TelemeterFromContext(ctx context.Context) *Telemeter {
	if val, ok := ctx.Value(telemeterContextKey).(*Telemeter); ok && val != nil {
		return val
	}

	return new(Telemeter)
}
