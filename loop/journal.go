package loop

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// JournalEntry records one committed dispatch: the action and the time
// span of its synchronous reduce-and-commit phase.
type JournalEntry[A any] struct {
	Action A
	Span   timespan.TimeSpan
}

// Journal returns the dispatch journal, or nil when the store was built
// without WithJournal. The channel is never closed.
func (s *Store[S, A]) Journal() <-chan JournalEntry[A] {
	return s.journal
}

// record emits a journal entry without ever blocking a dispatch: when the
// journal is full the entry is dropped.
func (s *Store[S, A]) record(action A, start time.Time) {
	if s.journal == nil {
		return
	}
	entry := JournalEntry[A]{
		Action: action,
		Span:   timespan.BetweenTimes(start, time.Now()),
	}
	select {
	case s.journal <- entry:
	default:
		s.logger.Debug("journal full, dropping entry")
	}
}
