// Package session drives one study session over a prepared queue of items.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/SheaGuev/studykit/internal/algorithm"
	"github.com/SheaGuev/studykit/internal/models"
	"github.com/SheaGuev/studykit/internal/queue"
)

// ErrInvalidTransition is returned when a session method is called from a
// state it is not valid in. This always indicates a caller bug; the
// session never silently repairs its state.
var ErrInvalidTransition = errors.New("session: invalid state transition")

// State is the lifecycle state of a study session.
type State int

const (
	Idle State = iota
	Prepared
	InProgress
	Completed
)

var stateNames = [...]string{Idle: "Idle", Prepared: "Prepared", InProgress: "InProgress", Completed: "Completed"}

func (s State) String() string {
	if s >= Idle && s <= Completed {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session sequences through a study queue and tracks per-session counters.
// It performs no I/O: RecordResult returns the updated item and the caller
// persists it. A session must not be shared across goroutines or across
// concurrent study contexts for the same user.
type Session struct {
	state State
	queue []models.KnowledgeItem
	index int
	stats models.SessionStats
}

// New returns an Idle session. Completed sessions are terminal; start over
// with a fresh Session rather than reusing one.
func New() *Session {
	return &Session{state: Idle}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// Stats returns the counters accumulated so far.
func (s *Session) Stats() models.SessionStats { return s.stats }

// Remaining returns how many items are left, including the current one.
func (s *Session) Remaining() int { return len(s.queue) - s.index }

// Len returns the total queue length for this session.
func (s *Session) Len() int { return len(s.queue) }

// Prepare builds the study queue from the user's items. It is valid only
// from Idle. An empty queue keeps the session Idle and returns false: a
// normal "nothing to study" outcome, not an error. Otherwise the session
// moves to Prepared with the position at the first item.
func (s *Session) Prepare(items []models.KnowledgeItem, now time.Time, settings models.StudySettings, rng *rand.Rand) (bool, error) {
	if s.state != Idle {
		return false, fmt.Errorf("%w: Prepare from %s", ErrInvalidTransition, s.state)
	}

	q := queue.Build(items, now, settings, rng)
	if len(q) == 0 {
		return false, nil
	}

	s.queue = q
	s.index = 0
	s.stats = models.SessionStats{}
	s.state = Prepared
	return true, nil
}

// Start begins reviewing. Valid only from Prepared.
func (s *Session) Start() error {
	if s.state != Prepared {
		return fmt.Errorf("%w: Start from %s", ErrInvalidTransition, s.state)
	}
	s.state = InProgress
	return nil
}

// Current returns the item under review. Valid only while InProgress.
func (s *Session) Current() (models.KnowledgeItem, error) {
	if s.state != InProgress {
		return models.KnowledgeItem{}, fmt.Errorf("%w: Current from %s", ErrInvalidTransition, s.state)
	}
	if s.index < 0 || s.index >= len(s.queue) {
		// Unreachable if transitions hold; fail loudly rather than repair.
		return models.KnowledgeItem{}, fmt.Errorf("%w: position %d outside queue of %d", ErrInvalidTransition, s.index, len(s.queue))
	}
	return s.queue[s.index], nil
}

// RecordResult applies the recall quality to the current item and advances.
// It returns the updated item for the caller to persist. When the last
// item is recorded the session transitions to Completed.
func (s *Session) RecordResult(quality int, now time.Time) (models.KnowledgeItem, error) {
	item, err := s.Current()
	if err != nil {
		return models.KnowledgeItem{}, err
	}

	res, err := algorithm.ComputeNextReview(item, quality, now)
	if err != nil {
		return models.KnowledgeItem{}, err
	}
	perf, err := algorithm.ComputePerformance(item, quality)
	if err != nil {
		return models.KnowledgeItem{}, err
	}

	wasNew := item.IsNew()

	item.EaseFactor = res.EaseFactor
	item.Interval = res.Interval
	item.NextReviewDate = &res.NextReviewDate
	reviewedAt := now
	item.LastReviewed = &reviewedAt
	item.Performance = perf
	item.ReviewCount++

	s.queue[s.index] = item
	s.stats.TotalReviewed++
	if wasNew {
		s.stats.NewCards++
	} else {
		s.stats.ReviewCards++
	}

	s.index++
	if s.index == len(s.queue) {
		s.state = Completed
	}
	return item, nil
}

// Exit ends the session early. Valid only while InProgress; the partial
// stats accumulated so far are preserved and returned.
func (s *Session) Exit() (models.SessionStats, error) {
	if s.state != InProgress {
		return models.SessionStats{}, fmt.Errorf("%w: Exit from %s", ErrInvalidTransition, s.state)
	}
	s.state = Completed
	return s.stats, nil
}
