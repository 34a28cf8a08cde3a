package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewItemDefaults(t *testing.T) {
	item := NewItem("user-1", ItemFlashcard, "What is 2+2?", []string{"Math", "math", " Basics "})

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "user-1", item.UserID)
	assert.Equal(t, 250, item.EaseFactor)
	assert.Equal(t, 1, item.Interval)
	assert.Equal(t, 0, item.ReviewCount)
	assert.Equal(t, 0, item.Performance)
	assert.Equal(t, []string{"math", "basics"}, item.Tags)
	assert.True(t, item.IsNew())
}

func TestIsNew(t *testing.T) {
	now := time.Now()
	reviewed := KnowledgeItem{LastReviewed: &now, NextReviewDate: &now}

	assert.True(t, KnowledgeItem{}.IsNew())
	assert.False(t, reviewed.IsNew())
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases", []string{"Math", "ALGEBRA"}, []string{"math", "algebra"}},
		{"dedupes keeping first-seen order", []string{"b", "a", "b"}, []string{"b", "a"}},
		{"drops empties", []string{"", "  ", "x"}, []string{"x"}},
		{"nil in nil out", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestHasTag(t *testing.T) {
	item := KnowledgeItem{Tags: []string{"math", "algebra"}}

	assert.True(t, item.HasTag("math"))
	assert.True(t, item.HasTag(" MATH "))
	assert.False(t, item.HasTag("biology"))
}

func TestItemTypeValid(t *testing.T) {
	assert.True(t, ItemFlashcard.Valid())
	assert.True(t, ItemQuiz.Valid())
	assert.False(t, ItemType("note").Valid())
	assert.False(t, ItemType("").Valid())
}

func TestSettingsNormalized(t *testing.T) {
	s := StudySettings{MaxQueueSize: 0, NewPerSession: -3}.Normalized()

	assert.Equal(t, DefaultQueueSize, s.MaxQueueSize)
	assert.Equal(t, 0, s.NewPerSession)

	kept := StudySettings{MaxQueueSize: 5, NewPerSession: 2, IncludeUpcoming: true}.Normalized()
	assert.Equal(t, 5, kept.MaxQueueSize)
	assert.Equal(t, 2, kept.NewPerSession)
	assert.True(t, kept.IncludeUpcoming)
}
