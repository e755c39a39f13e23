// Package loop augments a synchronous, pure-reducer state container with
// declarative, composable side effects.
//
// A loop-style reducer does not return just the next state: it returns a
// Loop, pairing the next state with an ordered batch of effects. An Effect
// is a lazy description of an asynchronous computation that eventually
// yields an action. The Store commits the state synchronously, then resolves
// the declared effects concurrently and feeds each resulting action back
// into its own dispatch, recursively, until no further effects remain.
//
// # Why describe effects as data?
//
// Reducers stay pure and trivially testable: "fetch this, then dispatch
// that" becomes a value the reducer returns, not an imperative call buried
// in application code. The Store owns all execution.
//
// # Dispatch semantics
//
//   - Dispatch commits the reducer's state before it returns; GetState
//     observes the transition synchronously.
//   - Dispatch returns a future that settles only once the entire effect
//     cascade spawned by the action has settled.
//   - Effects in one batch start in declaration order but feed their actions
//     back in settlement order: whichever effect finishes first dispatches
//     first. This is the documented ordering contract, not an accident.
//   - A failed effect rejects the dispatch future but never rolls back the
//     state already committed.
//
// # Example
//
//	reducer := func(n int, action string) loop.Loop[int, string] {
//		if action == "ping" {
//			return loop.From(n+1, loop.Constant[string]("pong"))
//		}
//		return loop.From[int, string](n + 1)
//	}
//	store := loop.NewStore(ctx, reducer, loop.From[int, string](0))
//	results, err := store.Dispatch(ctx, "ping").Wait()
package loop
