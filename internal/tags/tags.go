// Package tags provides hashtag extraction and tag-based grouping over
// knowledge items.
package tags

import (
	"regexp"
	"sort"
	"strings"

	"github.com/SheaGuev/studykit/internal/models"
)

var hashtagPattern = regexp.MustCompile(`#([A-Za-z0-9_]+)`)

// ExtractHashtags scans free text for #word tokens (alphanumeric plus
// underscore), lowercased and deduplicated in first-seen order.
func ExtractHashtags(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(m[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// ExtractAll returns the union of every item's tags, deduplicated and
// lexicographically sorted.
func ExtractAll(items []models.KnowledgeItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		for _, tag := range item.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// FilterByTags returns the items carrying ALL of the selected tags.
// The match is a conjunction: an item tagged only "math" does not match
// a selection of {"math", "algebra"}. An empty selection matches everything.
func FilterByTags(items []models.KnowledgeItem, selected []string) []models.KnowledgeItem {
	selected = models.NormalizeTags(selected)
	if len(selected) == 0 {
		return items
	}

	var out []models.KnowledgeItem
	for _, item := range items {
		matches := true
		for _, tag := range selected {
			if !item.HasTag(tag) {
				matches = false
				break
			}
		}
		if matches {
			out = append(out, item)
		}
	}
	return out
}

// GroupBySource groups items by their originating document. Folder
// references win over file references; items with neither land under
// "unknown". Dangling references still group, lookup is the caller's
// problem.
func GroupBySource(items []models.KnowledgeItem) map[string][]models.KnowledgeItem {
	groups := make(map[string][]models.KnowledgeItem)
	for _, item := range items {
		key := "unknown"
		switch {
		case item.SourceFolderID != "":
			key = "folder:" + item.SourceFolderID
		case item.SourceFileID != "":
			key = "file:" + item.SourceFileID
		}
		groups[key] = append(groups[key], item)
	}
	return groups
}
