package listener

import (
	"context"
	"iter"
	"reflect"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/telemetry"
	"github.com/gruntwork-io/declscan/pkg/log"
)

const (
	TelemetryOpBroadcast = "broadcast"

	AttrListenerCount = "listener.count"
)

// Broadcaster hands every record of a sequence to its listeners in order.
type Broadcaster struct {
	listeners []Listener
}

// NewBroadcaster returns a Broadcaster for the given listeners. A nil listener is an error.
func NewBroadcaster(listeners ...Listener) (*Broadcaster, error) {
	for i, listener := range listeners {
		if isNil(listener) {
			return nil, errors.Errorf("listener %d is nil", i)
		}
	}

	return &Broadcaster{listeners: listeners}, nil
}

// Len returns the number of listeners.
func (b *Broadcaster) Len() int {
	return len(b.listeners)
}

// Broadcast calls Handle on every listener for each record of seq, in sequence order, and then
// Finalize once on every listener implementing Finalizer. It returns the number of records delivered.
//
// A failing listener does not stop delivery: its errors are logged, aggregated and returned
// once the sequence is exhausted. When ctx is done, delivery stops, finalization is skipped and
// the context error is returned along with any listener errors.
func (b *Broadcaster) Broadcast(ctx context.Context, l log.Logger, seq iter.Seq2[string, *declaration.Declaration]) (int, error) {
	var (
		delivered int
		errs      = &errors.MultiError{}
	)

	attrs := map[string]any{
		AttrListenerCount: len(b.listeners),
	}

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpBroadcast, attrs, func(ctx context.Context) error {
		for key, decl := range seq {
			if err := ctx.Err(); err != nil {
				return err
			}

			for _, listener := range b.listeners {
				if err := listener.Handle(ctx, decl); err != nil {
					l.WithField(log.FieldKeyName, key).Warnf("Listener failed to handle record: %v", err)
					errs = errs.Append(err)
				}
			}

			delivered++
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		for _, listener := range b.listeners {
			finalizer, ok := listener.(Finalizer)
			if !ok {
				continue
			}

			if err := finalizer.Finalize(ctx); err != nil {
				l.Warnf("Listener failed to finalize: %v", err)
				errs = errs.Append(err)
			}
		}

		return nil
	})
	if err != nil {
		errs = errs.Append(err)
	}

	l.WithField(log.FieldKeyCount, delivered).Debugf("Broadcast %d records to %d listeners", delivered, len(b.listeners))

	return delivered, errs.ErrorOrNil()
}

func isNil(listener Listener) bool {
	if listener == nil {
		return true
	}

	value := reflect.ValueOf(listener)

	switch value.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}
