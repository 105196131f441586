package listener_test

import (
	"context"
	"io"
	"iter"
	"testing"

	"github.com/gruntwork-io/declscan/internal/declaration"
	"github.com/gruntwork-io/declscan/internal/errors"
	"github.com/gruntwork-io/declscan/internal/listener"
	"github.com/gruntwork-io/declscan/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() log.Logger {
	return log.New(log.WithOutput(io.Discard))
}

func records(names ...string) iter.Seq2[string, *declaration.Declaration] {
	return func(yield func(string, *declaration.Declaration) bool) {
		for _, name := range names {
			decl := declaration.MustNew(declaration.Spec{Name: name, Namespace: "App", Kind: declaration.KindClass})
			if !yield(decl.QualifiedName(), decl) {
				return
			}
		}
	}
}

// recorder logs every call it receives into a shared journal.
type recorder struct {
	journal *[]string
	name    string
	failOn  string
}

func (r *recorder) Handle(_ context.Context, decl *declaration.Declaration) error {
	*r.journal = append(*r.journal, r.name+":"+decl.Name())

	if decl.Name() == r.failOn {
		return errors.Errorf("%s rejected %s", r.name, decl.Name())
	}

	return nil
}

// finalizingRecorder also records Finalize calls.
type finalizingRecorder struct {
	recorder
}

func (r *finalizingRecorder) Finalize(context.Context) error {
	*r.journal = append(*r.journal, r.name+":finalize")
	return nil
}

func TestBroadcastOrder(t *testing.T) {
	t.Parallel()

	var journal []string

	plain := &recorder{name: "plain", journal: &journal}
	final := &finalizingRecorder{recorder{name: "final", journal: &journal}}

	b, err := listener.NewBroadcaster(plain, final)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	delivered, err := b.Broadcast(t.Context(), newLogger(), records("A", "B"))
	require.NoError(t, err)
	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{"plain:A", "final:A", "plain:B", "final:B", "final:finalize"}, journal)
}

func TestBroadcastAggregatesListenerErrors(t *testing.T) {
	t.Parallel()

	var journal []string

	failing := &recorder{name: "failing", journal: &journal, failOn: "A"}
	collector := listener.NewCollector()

	b, err := listener.NewBroadcaster(failing, collector)
	require.NoError(t, err)

	delivered, err := b.Broadcast(t.Context(), newLogger(), records("A", "B", "C"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing rejected A")
	assert.Equal(t, 3, delivered)

	assert.Equal(t, []string{`App\A`, `App\B`, `App\C`}, collector.Declarations().QualifiedNames())
	assert.Equal(t, 1, collector.Finalized())
}

func TestBroadcastCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	collector := listener.NewCollector()

	stopper := listener.Func(func(_ context.Context, decl *declaration.Declaration) error {
		if decl.Name() == "B" {
			cancel()
		}

		return nil
	})

	b, err := listener.NewBroadcaster(stopper, collector)
	require.NoError(t, err)

	delivered, err := b.Broadcast(ctx, newLogger(), records("A", "B", "C"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{`App\A`, `App\B`}, collector.Declarations().QualifiedNames())
	assert.Zero(t, collector.Finalized())
}

func TestBroadcastEmptySequenceStillFinalizes(t *testing.T) {
	t.Parallel()

	collector := listener.NewCollector()

	b, err := listener.NewBroadcaster(collector)
	require.NoError(t, err)

	delivered, err := b.Broadcast(t.Context(), newLogger(), records())
	require.NoError(t, err)
	assert.Zero(t, delivered)
	assert.Empty(t, collector.Declarations())
	assert.Equal(t, 1, collector.Finalized())
}

func TestNewBroadcasterRejectsNil(t *testing.T) {
	t.Parallel()

	var collector *listener.Collector

	_, err := listener.NewBroadcaster(listener.NewCollector(), nil)
	require.Error(t, err)

	_, err = listener.NewBroadcaster(collector)
	require.Error(t, err)

	var fn listener.Func

	_, err = listener.NewBroadcaster(fn)
	require.Error(t, err)
}
