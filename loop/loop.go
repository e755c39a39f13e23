package loop

// Loop pairs the next state with the effects a reducer call declared.
// Effects are kept in declaration order; only the state is threaded into
// the underlying container.
type Loop[S, A any] struct {
	State   S
	Effects []Effect[A]
}

// Reducer is a pure function from (state, action) to a Loop.
// Its only output channel is the returned value; it must not block.
type Reducer[S, A any] func(state S, action A) Loop[S, A]

// From builds a Loop from a state and optional effects.
func From[S, A any](state S, effects ...Effect[A]) Loop[S, A] {
	return Loop[S, A]{State: state, Effects: effects}
}
