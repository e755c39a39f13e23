package loop

import (
	"context"

	"github.com/laszlopandy/redux-loop/future"
)

// Effect is a lazy, composable description of a deferred asynchronous
// computation that eventually yields an action of type A.
//
// Constructing or mapping an effect never runs anything; only Resolve
// invokes the producer, and every Resolve call invokes it anew.
type Effect[A any] struct {
	produce func(context.Context) *future.Future[A]
}

// New wraps a producer into an effect. The producer is not invoked here.
func New[A any](producer func(context.Context) *future.Future[A]) Effect[A] {
	return Effect[A]{produce: producer}
}

// Func wraps a plain asynchronous function into an effect.
func Func[A any](fn func(context.Context) (A, error)) Effect[A] {
	return Effect[A]{produce: func(ctx context.Context) *future.Future[A] {
		return future.New(func() (A, error) {
			return fn(ctx)
		})
	}}
}

// Constant describes an effect that immediately yields action.
func Constant[A any](action A) Effect[A] {
	return Effect[A]{produce: func(context.Context) *future.Future[A] {
		return future.Resolved(action)
	}}
}

// Resolve invokes the wrapped producer and returns its future.
// A zero-value effect, or a producer that returns a nil future, resolves
// to a future rejected with ErrProducerInvalid.
func (e Effect[A]) Resolve(ctx context.Context) *future.Future[A] {
	if e.produce == nil {
		return future.Rejected[A](ErrProducerInvalid)
	}
	f := e.produce(ctx)
	if f == nil {
		return future.Rejected[A](ErrProducerInvalid)
	}
	return f
}

// Map derives an effect whose eventual action is fn applied to e's action.
// Composition preserves laziness: e's producer is not invoked.
// A free function because methods cannot introduce type parameters.
func Map[A, B any](e Effect[A], fn func(A) B) Effect[B] {
	return Effect[B]{produce: func(ctx context.Context) *future.Future[B] {
		return future.Then(e.Resolve(ctx), fn)
	}}
}
