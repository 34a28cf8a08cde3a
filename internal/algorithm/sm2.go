package algorithm

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/SheaGuev/studykit/internal/models"
)

// ErrInvalidQuality is returned when a recall quality outside 0..5 is
// passed in. Out-of-range quality is a caller bug, never clamped.
var ErrInvalidQuality = errors.New("algorithm: recall quality out of range")

// Scheduling bounds. Ease factors are stored ×100, so 250 means 2.5.
const (
	MinEaseFactor     = 130
	MaxEaseFactor     = 250
	DefaultEaseFactor = 250
	InitialInterval   = 1
)

// ReviewResult is the scheduling state produced by one recall result.
// The three fields are computed together and must be persisted as one unit.
type ReviewResult struct {
	NextReviewDate time.Time `json:"next_review_date"`
	EaseFactor     int       `json:"ease_factor"`
	Interval       int       `json:"interval"`
}

// ComputeNextReview applies the SM-2 recurrence to the item's current state.
// quality: 0 (blackout) to 5 (perfect recollection).
// The input item is not mutated; the caller persists the result and
// increments ReviewCount itself.
func ComputeNextReview(item models.KnowledgeItem, quality int, now time.Time) (ReviewResult, error) {
	if quality < 0 || quality > 5 {
		return ReviewResult{}, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	ease := item.EaseFactor
	if ease == 0 {
		ease = DefaultEaseFactor
	}
	interval := item.Interval
	if interval < 1 {
		interval = InitialInterval
	}

	if quality < 3 {
		// Failed recall: start the interval over, ease stays put.
		interval = InitialInterval
	} else {
		switch item.ReviewCount {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * float64(ease) / 100.0))
		}
		if interval < 1 {
			interval = 1
		}

		// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)), clamped to [1.3, 2.5]
		q := float64(quality)
		delta := 0.1 - (5-q)*(0.08+(5-q)*0.02)
		ease = int(math.Round(float64(ease) + delta*100))
		if ease < MinEaseFactor {
			ease = MinEaseFactor
		}
		if ease > MaxEaseFactor {
			ease = MaxEaseFactor
		}
	}

	return ReviewResult{
		NextReviewDate: now.AddDate(0, 0, interval),
		EaseFactor:     ease,
		Interval:       interval,
	}, nil
}

// ComputePerformance folds one recall result into the item's running
// performance score. Early reviews weigh heavier: the newest observation
// carries weight 1/(reviewCount+1). The result is always in [0, 100].
func ComputePerformance(item models.KnowledgeItem, quality int) (int, error) {
	if quality < 0 || quality > 5 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	qualityPct := math.Round(float64(quality) / 5.0 * 100)
	weight := 1.0 / float64(item.ReviewCount+1)
	score := int(math.Round(float64(item.Performance)*(1-weight) + qualityPct*weight))

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
