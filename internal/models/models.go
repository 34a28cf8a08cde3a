package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemType identifies how an item's content should be interpreted.
type ItemType string

const (
	ItemFlashcard ItemType = "flashcard"
	ItemQuiz      ItemType = "quiz"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	return t == ItemFlashcard || t == ItemQuiz
}

// KnowledgeItem is a single unit of study material with its scheduling state.
type KnowledgeItem struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Type           ItemType   `json:"type"`
	Content        string     `json:"content"` // front/back text or question/options, opaque to the scheduler
	Tags           []string   `json:"tags,omitempty"`
	SourceFileID   string     `json:"source_file_id,omitempty"`   // weak reference, may dangle
	SourceFolderID string     `json:"source_folder_id,omitempty"` // weak reference, may dangle
	ReviewCount    int        `json:"review_count"`
	EaseFactor     int        `json:"ease_factor"` // SM-2 multiplier ×100, kept in [130, 250]
	Interval       int        `json:"interval"`    // days until next review
	Performance    int        `json:"performance"` // running weighted score, 0-100
	LastReviewed   *time.Time `json:"last_reviewed"`
	NextReviewDate *time.Time `json:"next_review_date"`
}

// NewItem creates an item with default scheduling state (never reviewed).
func NewItem(userID string, typ ItemType, content string, tags []string) KnowledgeItem {
	return KnowledgeItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        typ,
		Content:     content,
		Tags:        NormalizeTags(tags),
		ReviewCount: 0,
		EaseFactor:  250,
		Interval:    1,
		Performance: 0,
	}
}

// IsNew reports whether the item has never been studied.
// LastReviewed and NextReviewDate are always both nil or both set.
func (i KnowledgeItem) IsNew() bool {
	return i.LastReviewed == nil && i.NextReviewDate == nil
}

// HasTag reports whether the item carries the given tag (case-insensitive).
func (i KnowledgeItem) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags lowercases, trims and deduplicates tags,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// StudySettings controls how a study queue is assembled. Persisting the
// settings is the caller's concern; the core only reads them.
type StudySettings struct {
	// MaxQueueSize caps the study queue. Values < 1 fall back to the default.
	MaxQueueSize int `json:"max_queue_size"`
	// NewPerSession caps how many never-reviewed items enter the queue.
	// Zero means no cap.
	NewPerSession int `json:"new_per_session"`
	// IncludeUpcoming fills remaining queue slots with not-yet-due items.
	IncludeUpcoming bool `json:"include_upcoming"`
}

// DefaultQueueSize is the queue cap used when settings leave it unset.
const DefaultQueueSize = 20

// DefaultSettings returns the settings used when no configuration exists.
func DefaultSettings() StudySettings {
	return StudySettings{
		MaxQueueSize:    DefaultQueueSize,
		NewPerSession:   0,
		IncludeUpcoming: true,
	}
}

// Normalized returns a copy with out-of-range values replaced by defaults.
func (s StudySettings) Normalized() StudySettings {
	if s.MaxQueueSize < 1 {
		s.MaxQueueSize = DefaultQueueSize
	}
	if s.NewPerSession < 0 {
		s.NewPerSession = 0
	}
	return s
}

// SessionStats accumulates counters over one study session.
type SessionStats struct {
	TotalReviewed int `json:"total_reviewed"`
	NewCards      int `json:"new_cards"`
	ReviewCards   int `json:"review_cards"`
}

// ReviewLog records a single recall result with a snapshot of the
// scheduling state it produced.
type ReviewLog struct {
	ID         int       `json:"id"`
	ItemID     string    `json:"item_id"`
	UserID     string    `json:"user_id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
	// Snapshot of scheduling state after the review
	Interval   int `json:"interval"`
	EaseFactor int `json:"ease_factor"`
}

// ReviewStats aggregates a user's review history.
type ReviewStats struct {
	TotalReviews       int
	ReviewsLast7Days   int
	AverageQuality     float64
	AveragePerformance float64
	CountByType        map[ItemType]int
}
