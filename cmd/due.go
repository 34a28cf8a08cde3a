package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SheaGuev/studykit/internal/models"
	"github.com/SheaGuev/studykit/internal/queue"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show items due for review",
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

		buckets := queue.Classify(items, time.Now(), nil)

		total := len(buckets.Overdue) + len(buckets.Due) + len(buckets.New)
		if total == 0 {
			fmt.Println("✅ Nothing due today. Good job!")
			return
		}

		fmt.Printf("🔥 %d overdue, %d due, %d new\n\n",
			len(buckets.Overdue), len(buckets.Due), len(buckets.New))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Status\tID\tType\tContent\tDue")
		fmt.Fprintln(w, "------\t--\t----\t-------\t---")
		printDueRows(w, "overdue", buckets.Overdue)
		printDueRows(w, "due", buckets.Due)
		printDueRows(w, "new", buckets.New)
		w.Flush()
	},
}

func printDueRows(w *tabwriter.Writer, status string, items []models.KnowledgeItem) {
	for _, item := range items {
		due := "-"
		if item.NextReviewDate != nil {
			due = item.NextReviewDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			status, shortID(item.ID), item.Type, truncate(item.Content, 40), due)
	}
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
