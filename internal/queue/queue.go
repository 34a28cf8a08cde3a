// Package queue classifies a user's items by due status and assembles
// priority-ordered study queues.
package queue

import (
	"math/rand"
	"sort"
	"time"

	"github.com/SheaGuev/studykit/internal/models"
)

// OverdueThresholdDays separates plain "due" items from "overdue" ones.
const OverdueThresholdDays = 7

// Buckets partitions items by due status relative to one instant.
type Buckets struct {
	Overdue   []models.KnowledgeItem // due 7+ days ago, most overdue first
	Due       []models.KnowledgeItem // due 0-6 days ago
	New       []models.KnowledgeItem // never reviewed, shuffled
	NotYetDue []models.KnowledgeItem // soonest first
}

// Classify partitions flashcard and quiz items into due-status buckets.
// Items of other types are ignored. New items are shuffled with rng so the
// same ones don't always surface first; pass a seeded rng for
// reproducibility, or nil to seed from the clock.
func Classify(items []models.KnowledgeItem, now time.Time, rng *rand.Rand) Buckets {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var b Buckets
	for _, item := range items {
		if !item.Type.Valid() {
			continue
		}
		if item.IsNew() || item.NextReviewDate == nil {
			b.New = append(b.New, item)
			continue
		}
		late := daysLate(now, *item.NextReviewDate)
		switch {
		case late >= OverdueThresholdDays:
			b.Overdue = append(b.Overdue, item)
		case late >= 0:
			b.Due = append(b.Due, item)
		default:
			b.NotYetDue = append(b.NotYetDue, item)
		}
	}

	byNextReview := func(items []models.KnowledgeItem) func(i, j int) bool {
		return func(i, j int) bool {
			return items[i].NextReviewDate.Before(*items[j].NextReviewDate)
		}
	}
	sort.SliceStable(b.Overdue, byNextReview(b.Overdue))
	sort.SliceStable(b.Due, byNextReview(b.Due))
	sort.SliceStable(b.NotYetDue, byNextReview(b.NotYetDue))

	rng.Shuffle(len(b.New), func(i, j int) {
		b.New[i], b.New[j] = b.New[j], b.New[i]
	})

	return b
}

// Build assembles a study queue in strict priority order:
// overdue, due, new, then not-yet-due as filler if settings allow.
// The result never exceeds the settings' queue cap. An empty queue is a
// legitimate "nothing to study" outcome, not an error.
func Build(items []models.KnowledgeItem, now time.Time, settings models.StudySettings, rng *rand.Rand) []models.KnowledgeItem {
	settings = settings.Normalized()
	b := Classify(items, now, rng)

	newItems := b.New
	if settings.NewPerSession > 0 && len(newItems) > settings.NewPerSession {
		newItems = newItems[:settings.NewPerSession]
	}

	q := make([]models.KnowledgeItem, 0, settings.MaxQueueSize)
	q = append(q, b.Overdue...)
	q = append(q, b.Due...)
	q = append(q, newItems...)
	if settings.IncludeUpcoming && len(q) < settings.MaxQueueSize {
		q = append(q, b.NotYetDue...)
	}

	if len(q) > settings.MaxQueueSize {
		q = q[:settings.MaxQueueSize]
	}
	return q
}

// daysLate returns how many whole calendar days past due the item is.
// Negative means not yet due. Both instants are truncated to their
// calendar date so the boundary doesn't drift with time of day.
func daysLate(now, nextReview time.Time) int {
	return int(dateOf(now).Sub(dateOf(nextReview)).Hours() / 24)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
