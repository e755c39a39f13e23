package loop

import "sort"

// CombineReducers composes key-sliced reducers over a map-shaped state.
//
// Each child reducer owns the state slice under its key and may declare
// effects of its own. Children run in sorted-key order on every action, and
// their effects are concatenated in that same order, so the combined batch
// order is deterministic across dispatches.
func CombineReducers[A any](reducers map[string]Reducer[any, A]) Reducer[map[string]any, A] {
	keys := make([]string, 0, len(reducers))
	for k := range reducers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return func(state map[string]any, action A) Loop[map[string]any, A] {
		next := make(map[string]any, len(keys))
		var effects []Effect[A]
		for _, k := range keys {
			var slice any
			if state != nil {
				slice = state[k]
			}
			out := reducers[k](slice, action)
			next[k] = out.State
			effects = append(effects, out.Effects...)
		}
		return Loop[map[string]any, A]{State: next, Effects: effects}
	}
}
