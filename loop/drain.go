package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/laszlopandy/redux-loop/future"
	"go.uber.org/zap"
)

// Feedback re-dispatches an action produced by a resolved effect and
// returns the future of the cascade that dispatch spawns.
type Feedback[A any] func(ctx context.Context, action A) *future.Future[[]any]

// Drain resolves every effect in batch concurrently, feeds each resulting
// action back through feedback, and aggregates the cascade.
//
// The returned future resolves with one result per effect, in batch order,
// once every element has settled successfully. It rejects as soon as any
// element fails; unsettled siblings keep running in the background and
// their results are discarded. A rejected production is logged, then
// wrapped in ErrEffectFailed with the original failure as its cause. A
// producer contract violation propagates as ErrProducerInvalid for that
// element only.
//
// Effects start in batch order but invoke feedback in settlement order:
// whichever production finishes first dispatches first.
func Drain[A any](ctx context.Context, batch []Effect[A], feedback Feedback[A], logger *zap.Logger) *future.Future[[]any] {
	if len(batch) == 0 {
		return future.Resolved([]any{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	type settled struct {
		idx    int
		result any
		err    error
	}
	// buffered to capacity so siblings abandoned after an early rejection
	// can still settle without blocking
	settle := make(chan settled, len(batch))

	for i, eff := range batch {
		go func(idx int, eff Effect[A]) {
			action, err := eff.Resolve(ctx).Wait()
			if err != nil {
				if errors.Is(err, ErrProducerInvalid) {
					settle <- settled{idx: idx, err: err}
					return
				}
				logger.Error("effect rejected",
					zap.Int("batch_index", idx),
					zap.Error(err),
				)
				settle <- settled{idx: idx, err: fmt.Errorf("%w: %w", ErrEffectFailed, err)}
				return
			}
			result, err := feedback(ctx, action).Wait()
			settle <- settled{idx: idx, result: result, err: err}
		}(i, eff)
	}

	return future.New(func() ([]any, error) {
		results := make([]any, len(batch))
		for range batch {
			s := <-settle
			if s.err != nil {
				return nil, s.err
			}
			results[s.idx] = s.result
		}
		return results, nil
	})
}
