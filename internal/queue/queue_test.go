package queue

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SheaGuev/studykit/internal/models"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func reviewedItem(id string, nextReview time.Time) models.KnowledgeItem {
	last := nextReview.AddDate(0, 0, -1)
	return models.KnowledgeItem{
		ID:             id,
		Type:           models.ItemFlashcard,
		ReviewCount:    1,
		EaseFactor:     250,
		Interval:       1,
		LastReviewed:   &last,
		NextReviewDate: &nextReview,
	}
}

func newItem(id string) models.KnowledgeItem {
	return models.KnowledgeItem{ID: id, Type: models.ItemFlashcard, EaseFactor: 250, Interval: 1}
}

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func ids(items []models.KnowledgeItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestClassifyBuckets(t *testing.T) {
	items := []models.KnowledgeItem{
		reviewedItem("overdue-9d", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		reviewedItem("overdue-7d", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
		reviewedItem("due-6d", time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)),
		reviewedItem("due-today", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)),
		reviewedItem("upcoming", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)),
		newItem("fresh"),
	}

	b := Classify(items, now, testRng())

	assert.Equal(t, []string{"overdue-9d", "overdue-7d"}, ids(b.Overdue))
	assert.Equal(t, []string{"due-6d", "due-today"}, ids(b.Due))
	assert.Equal(t, []string{"upcoming"}, ids(b.NotYetDue))
	assert.Equal(t, []string{"fresh"}, ids(b.New))
}

func TestClassifyIgnoresUnknownTypes(t *testing.T) {
	items := []models.KnowledgeItem{
		{ID: "note", Type: "note"},
		newItem("card"),
	}

	b := Classify(items, now, testRng())

	assert.Equal(t, []string{"card"}, ids(b.New))
	assert.Empty(t, b.Overdue)
	assert.Empty(t, b.Due)
	assert.Empty(t, b.NotYetDue)
}

func TestClassifyOverdueMostLateFirst(t *testing.T) {
	var items []models.KnowledgeItem
	// Insert out of order to prove sorting.
	for _, day := range []int{20, 5, 25, 15, 10} {
		next := now.AddDate(0, 0, -day)
		items = append(items, reviewedItem(fmt.Sprintf("late-%02d", day), next))
	}

	b := Classify(items, now, testRng())

	require.Len(t, b.Overdue, 5)
	assert.Equal(t, []string{"late-25", "late-20", "late-15", "late-10", "late-05"}, ids(b.Overdue))
}

func TestClassifyShufflesNewDeterministically(t *testing.T) {
	var items []models.KnowledgeItem
	for i := 0; i < 10; i++ {
		items = append(items, newItem(fmt.Sprintf("new-%d", i)))
	}

	first := Classify(items, now, rand.New(rand.NewSource(7)))
	second := Classify(items, now, rand.New(rand.NewSource(7)))

	assert.Equal(t, ids(first.New), ids(second.New))
	assert.ElementsMatch(t, ids(first.New), ids(items))
}

func TestBuildPriorityOrder(t *testing.T) {
	items := []models.KnowledgeItem{
		newItem("fresh"),
		reviewedItem("upcoming", now.AddDate(0, 0, 3)),
		reviewedItem("due", now.AddDate(0, 0, -2)),
		reviewedItem("overdue", now.AddDate(0, 0, -10)),
	}

	q := Build(items, now, models.DefaultSettings(), testRng())

	assert.Equal(t, []string{"overdue", "due", "fresh", "upcoming"}, ids(q))
}

func TestBuildTruncatesToMostOverdue(t *testing.T) {
	var items []models.KnowledgeItem
	for i := 0; i < 30; i++ {
		next := now.AddDate(0, 0, -(7 + i))
		items = append(items, reviewedItem(fmt.Sprintf("overdue-%02d", i), next))
	}

	q := Build(items, now, models.StudySettings{MaxQueueSize: 20}, testRng())

	require.Len(t, q, 20)
	// The 20 most overdue survive, most overdue first.
	assert.Equal(t, "overdue-29", q[0].ID)
	assert.Equal(t, "overdue-10", q[19].ID)
}

func TestBuildQueueBound(t *testing.T) {
	var items []models.KnowledgeItem
	for i := 0; i < 50; i++ {
		items = append(items, newItem(fmt.Sprintf("new-%d", i)))
	}

	for _, max := range []int{1, 5, 20, 100} {
		q := Build(items, now, models.StudySettings{MaxQueueSize: max}, testRng())
		assert.LessOrEqual(t, len(q), max)
	}
}

func TestBuildUpcomingOnlyFillsSpareRoom(t *testing.T) {
	items := []models.KnowledgeItem{
		reviewedItem("due-1", now.AddDate(0, 0, -1)),
		reviewedItem("due-2", now),
		reviewedItem("upcoming", now.AddDate(0, 0, 5)),
	}

	full := Build(items, now, models.StudySettings{MaxQueueSize: 2, IncludeUpcoming: true}, testRng())
	assert.Equal(t, []string{"due-1", "due-2"}, ids(full))

	withRoom := Build(items, now, models.StudySettings{MaxQueueSize: 5, IncludeUpcoming: true}, testRng())
	assert.Equal(t, []string{"due-1", "due-2", "upcoming"}, ids(withRoom))

	noUpcoming := Build(items, now, models.StudySettings{MaxQueueSize: 5}, testRng())
	assert.Equal(t, []string{"due-1", "due-2"}, ids(noUpcoming))
}

func TestBuildCapsNewPerSession(t *testing.T) {
	var items []models.KnowledgeItem
	for i := 0; i < 8; i++ {
		items = append(items, newItem(fmt.Sprintf("new-%d", i)))
	}

	q := Build(items, now, models.StudySettings{MaxQueueSize: 20, NewPerSession: 3}, testRng())
	assert.Len(t, q, 3)
}

func TestBuildEmptyInput(t *testing.T) {
	q := Build(nil, now, models.DefaultSettings(), testRng())
	assert.Empty(t, q)
}

func TestBuildNormalizesQueueSize(t *testing.T) {
	var items []models.KnowledgeItem
	for i := 0; i < 30; i++ {
		items = append(items, newItem(fmt.Sprintf("new-%d", i)))
	}

	q := Build(items, now, models.StudySettings{MaxQueueSize: 0}, testRng())
	assert.Len(t, q, models.DefaultQueueSize)
}

func TestDaysLateUsesCalendarDays(t *testing.T) {
	lateMorning := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)
	dueEvening := time.Date(2024, 6, 3, 1, 0, 0, 0, time.UTC)
	// 7 calendar days apart regardless of time of day.
	assert.Equal(t, 7, daysLate(lateMorning, dueEvening))

	sameDay := time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, daysLate(now, sameDay))
}
