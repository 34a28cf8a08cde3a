package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SheaGuev/studykit/internal/models"
	"github.com/SheaGuev/studykit/internal/tags"
)

var (
	listTags     string
	listBySource bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked items",
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		items, err := store.ListItems(flagUser)
		if err != nil {
			fmt.Println("❌ Error listing items:", err)
			return
		}

		if listTags != "" {
			items = tags.FilterByTags(items, strings.Split(listTags, ","))
		}

		if len(items) == 0 {
			fmt.Println("📭 No items yet. Add some with 'studykit add'.")
			return
		}

		if listBySource {
			for key, group := range tags.GroupBySource(items) {
				fmt.Printf("\n📂 %s\n", key)
				printItemTable(group)
			}
			return
		}

		fmt.Printf("📚 %d items:\n\n", len(items))
		printItemTable(items)
	},
}

func printItemTable(items []models.KnowledgeItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tType\tContent\tPerf\tNext Review\tTags")
	fmt.Fprintln(w, "--\t----\t-------\t----\t-----------\t----")

	for _, item := range items {
		next := "new"
		if item.NextReviewDate != nil {
			next = item.NextReviewDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\t%s\n",
			shortID(item.ID), item.Type, truncate(item.Content, 40),
			item.Performance, next, strings.Join(item.Tags, ", "))
	}
	w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listTags, "tags", "", "Only items carrying all of these comma-separated tags")
	listCmd.Flags().BoolVar(&listBySource, "by-source", false, "Group items by originating file/folder")
}
