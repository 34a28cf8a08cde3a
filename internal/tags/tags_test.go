package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SheaGuev/studykit/internal/models"
)

func itemWithTags(id string, tags ...string) models.KnowledgeItem {
	return models.KnowledgeItem{ID: id, Type: models.ItemFlashcard, Tags: tags}
}

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"basic", "Learn about #Math and #algebra today", []string{"math", "algebra"}},
		{"dedupes case-insensitively", "#go #GO #Go", []string{"go"}},
		{"underscores and digits", "see #chapter_2 and #unit3", []string{"chapter_2", "unit3"}},
		{"punctuation ends the tag", "done! #review. next", []string{"review"}},
		{"no tags", "nothing to see here", nil},
		{"bare hash ignored", "# not a tag", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractHashtags(tt.text))
		})
	}
}

func TestExtractAllSortedUnion(t *testing.T) {
	items := []models.KnowledgeItem{
		itemWithTags("a", "math", "algebra"),
		itemWithTags("b", "biology", "math"),
		itemWithTags("c"),
	}

	assert.Equal(t, []string{"algebra", "biology", "math"}, ExtractAll(items))
}

func TestFilterByTagsConjunction(t *testing.T) {
	mathOnly := itemWithTags("math-only", "math")
	both := itemWithTags("both", "math", "algebra")
	items := []models.KnowledgeItem{mathOnly, both}

	got := FilterByTags(items, []string{"math", "algebra"})

	// Items must carry ALL selected tags, not any of them.
	assert.Len(t, got, 1)
	assert.Equal(t, "both", got[0].ID)
}

func TestFilterByTagsEmptySelectionMatchesAll(t *testing.T) {
	items := []models.KnowledgeItem{itemWithTags("a", "x"), itemWithTags("b")}

	assert.Equal(t, items, FilterByTags(items, nil))
	assert.Equal(t, items, FilterByTags(items, []string{" ", ""}))
}

func TestFilterByTagsNormalizesSelection(t *testing.T) {
	items := []models.KnowledgeItem{itemWithTags("a", "math")}

	got := FilterByTags(items, []string{" MATH "})
	assert.Len(t, got, 1)
}

func TestGroupBySource(t *testing.T) {
	folderItem := models.KnowledgeItem{ID: "a", SourceFolderID: "f1", SourceFileID: "doc1"}
	fileItem := models.KnowledgeItem{ID: "b", SourceFileID: "doc1"}
	orphan := models.KnowledgeItem{ID: "c"}

	groups := GroupBySource([]models.KnowledgeItem{folderItem, fileItem, orphan})

	assert.Len(t, groups, 3)
	// Folder reference wins over file reference.
	assert.Equal(t, "a", groups["folder:f1"][0].ID)
	assert.Equal(t, "b", groups["file:doc1"][0].ID)
	assert.Equal(t, "c", groups["unknown"][0].ID)
}
