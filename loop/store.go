package loop

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/laszlopandy/redux-loop/container"
	"github.com/laszlopandy/redux-loop/future"
	"go.uber.org/zap"
)

// Container is the capability the store needs from an underlying
// synchronous state container. Dispatch must run the installed reducer and
// commit its state before returning.
type Container[S, A any] interface {
	GetState() S
	Dispatch(action A)
	Subscribe(listener func()) func()
	ReplaceReducer(reducer func(S, A) S)
}

// ContainerFactory constructs the underlying container for a store.
type ContainerFactory[S, A any] func(reducer func(S, A) S, initial S) Container[S, A]

// Store wraps one underlying container, one effect queue, and the current
// lifted reducer. It is safe for concurrent use.
type Store[S, A any] struct {
	// mu spans the whole synchronous phase of a dispatch: container
	// dispatch, reducer queue appends, and the queue swap. Appends can
	// therefore never land in another dispatch's batch.
	mu        sync.Mutex
	queue     []Effect[A]
	container Container[S, A]
	logger    *zap.Logger
	id        string
	journal   chan JournalEntry[A]
}

type options struct {
	logger      *zap.Logger
	journalSize int
}

// Option configures a store at construction time.
type Option func(*options)

// WithLogger sets the logger used for drain diagnostics.
// The default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithJournal enables the dispatch journal with the given channel capacity.
func WithJournal(size int) Option {
	return func(o *options) { o.journalSize = size }
}

// NewStore builds a store over the default in-memory container.
//
// The initial Loop seeds the container's state; its effects are drained
// once, immediately, using the store's own dispatch as feedback.
// Construction does not wait for that drain to settle: the store is usable
// at once, and any rejection surfaces asynchronously through the log.
func NewStore[S, A any](ctx context.Context, reducer Reducer[S, A], initial Loop[S, A], opts ...Option) *Store[S, A] {
	return NewStoreWith(ctx, func(r func(S, A) S, init S) Container[S, A] {
		return container.New(r, init)
	}, reducer, initial, opts...)
}

// NewStoreWith is NewStore with a caller-supplied container factory.
// The container instance must be used exclusively through the store.
func NewStoreWith[S, A any](ctx context.Context, factory ContainerFactory[S, A], reducer Reducer[S, A], initial Loop[S, A], opts ...Option) *Store[S, A] {
	cfg := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store[S, A]{
		logger: cfg.logger.With(zap.String("store_id", uuid.NewString())),
	}
	if cfg.journalSize > 0 {
		s.journal = make(chan JournalEntry[A], cfg.journalSize)
	}
	s.container = factory(s.lift(reducer), initial.State)

	s.logger.Debug("store created", zap.Int("initial_effects", len(initial.Effects)))
	s.drain(ctx, initial.Effects)
	return s
}

// GetState returns the most recently committed state.
func (s *Store[S, A]) GetState() S {
	return s.container.GetState()
}

// Subscribe delegates to the underlying container. Listeners run
// synchronously inside the dispatch critical section and must not
// dispatch back into the store.
func (s *Store[S, A]) Subscribe(listener func()) func() {
	return s.container.Subscribe(listener)
}

// Dispatch runs the reducer synchronously, commits the next state, then
// drains the effects the reducer declared.
//
// The returned future settles once the entire cascade spawned by action has
// settled: it resolves with one result per declared effect, or rejects with
// the first effect failure. Effect failures never roll back the committed
// state.
func (s *Store[S, A]) Dispatch(ctx context.Context, action A) *future.Future[[]any] {
	start := time.Now()

	s.mu.Lock()
	s.container.Dispatch(action)
	batch := s.queue
	s.queue = nil
	s.mu.Unlock()

	s.record(action, start)
	return s.drain(ctx, batch)
}

// ReplaceReducer lifts reducer and installs it into the underlying
// container. The effect queue is shared across reducer swaps: effects
// queued under the old reducer drain through the same dispatch path.
func (s *Store[S, A]) ReplaceReducer(reducer Reducer[S, A]) {
	s.mu.Lock()
	s.container.ReplaceReducer(s.lift(reducer))
	s.mu.Unlock()
}

// lift adapts a loop-style reducer to the plain reducer the container
// expects, diverting declared effects into the store's queue.
//
// The returned reducer appends without locking: it only ever runs inside
// the dispatch critical section, which already holds s.mu.
func (s *Store[S, A]) lift(reducer Reducer[S, A]) func(S, A) S {
	return func(state S, action A) S {
		next := reducer(state, action)
		s.queue = append(s.queue, next.Effects...)
		return next.State
	}
}

func (s *Store[S, A]) drain(ctx context.Context, batch []Effect[A]) *future.Future[[]any] {
	if len(batch) > 0 {
		s.logger.Debug("draining effects", zap.Int("batch_size", len(batch)))
	}
	return Drain(ctx, batch, s.Dispatch, s.logger)
}
