package loop_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/laszlopandy/redux-loop/future"
	"github.com/laszlopandy/redux-loop/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// collectingFeedback records dispatched actions in arrival order and echoes
// each action back as its cascade result.
type collectingFeedback struct {
	mu      sync.Mutex
	actions []string
}

func (c *collectingFeedback) dispatch(_ context.Context, action string) *future.Future[[]any] {
	c.mu.Lock()
	c.actions = append(c.actions, action)
	c.mu.Unlock()
	return future.Resolved([]any{action})
}

func (c *collectingFeedback) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.actions...)
}

func delayed(d time.Duration, action string) loop.Effect[string] {
	return loop.Func(func(context.Context) (string, error) {
		time.Sleep(d)
		return action, nil
	})
}

func TestDrain_EmptyBatchResolvesImmediately(t *testing.T) {
	fb := &collectingFeedback{}
	results, err := loop.Drain(context.Background(), []loop.Effect[string]{}, fb.dispatch, nil).Wait()
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, fb.snapshot())
}

func TestDrain_ResultsPreserveBatchOrder(t *testing.T) {
	fb := &collectingFeedback{}
	batch := []loop.Effect[string]{
		delayed(40*time.Millisecond, "first"),
		delayed(10*time.Millisecond, "second"),
		delayed(25*time.Millisecond, "third"),
	}

	results, err := loop.Drain(context.Background(), batch, fb.dispatch, nil).Wait()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []any{"first"}, results[0])
	assert.Equal(t, []any{"second"}, results[1])
	assert.Equal(t, []any{"third"}, results[2])
}

func TestDrain_FeedbackRunsInSettlementOrder(t *testing.T) {
	fb := &collectingFeedback{}
	batch := []loop.Effect[string]{
		delayed(60*time.Millisecond, "slow"),
		delayed(10*time.Millisecond, "fast"),
	}

	_, err := loop.Drain(context.Background(), batch, fb.dispatch, nil).Wait()
	require.NoError(t, err)
	assert.Equal(t, []string{"fast", "slow"}, fb.snapshot())
}

func TestDrain_RejectionIsLoggedAndWrapped(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	boom := errors.New("boom")

	fb := &collectingFeedback{}
	batch := []loop.Effect[string]{
		loop.Func(func(context.Context) (string, error) { return "", boom }),
	}

	_, err := loop.Drain(context.Background(), batch, fb.dispatch, zap.New(core)).Wait()
	assert.ErrorIs(t, err, loop.ErrEffectFailed)
	assert.ErrorIs(t, err, boom, "original failure must stay reachable as the cause")
	assert.Empty(t, fb.snapshot(), "a rejected effect must not dispatch")
	assert.Equal(t, 1, logs.FilterMessage("effect rejected").Len())
}

func TestDrain_InvalidProducerDoesNotAffectSiblings(t *testing.T) {
	fb := &collectingFeedback{}
	var invalid loop.Effect[string]
	batch := []loop.Effect[string]{
		invalid,
		delayed(10*time.Millisecond, "healthy"),
	}

	_, err := loop.Drain(context.Background(), batch, fb.dispatch, nil).Wait()
	assert.ErrorIs(t, err, loop.ErrProducerInvalid)

	assert.Eventually(t, func() bool {
		actions := fb.snapshot()
		return len(actions) == 1 && actions[0] == "healthy"
	}, time.Second, 5*time.Millisecond, "sibling must still resolve and dispatch")
}

func TestDrain_FailsFastWhileSiblingsFinishInBackground(t *testing.T) {
	fb := &collectingFeedback{}
	var slowDone atomic.Bool
	batch := []loop.Effect[string]{
		loop.Func(func(context.Context) (string, error) {
			return "", errors.New("early failure")
		}),
		loop.Func(func(context.Context) (string, error) {
			time.Sleep(150 * time.Millisecond)
			slowDone.Store(true)
			return "late", nil
		}),
	}

	started := time.Now()
	_, err := loop.Drain(context.Background(), batch, fb.dispatch, nil).Wait()
	elapsed := time.Since(started)

	assert.ErrorIs(t, err, loop.ErrEffectFailed)
	assert.Less(t, elapsed, 100*time.Millisecond, "aggregate must settle before the slow sibling")

	assert.Eventually(t, slowDone.Load, time.Second, 5*time.Millisecond,
		"abandoned sibling still runs to completion")
}
