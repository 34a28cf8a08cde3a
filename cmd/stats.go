package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review statistics",
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		stats, err := store.GetReviewStats(flagUser)
		if err != nil {
			fmt.Println("❌ Error fetching stats:", err)
			return
		}

		fmt.Println("📊 Statistics")
		fmt.Println("-------------")
		fmt.Printf("Total Reviews:       %d\n", stats.TotalReviews)
		fmt.Printf("Reviews Last 7D:     %d\n", stats.ReviewsLast7Days)
		fmt.Printf("Average Quality:     %.2f\n", stats.AverageQuality)
		fmt.Printf("Average Performance: %.1f%%\n", stats.AveragePerformance)

		if len(stats.CountByType) > 0 {
			fmt.Println("\n📈 Items by type")
			for typ, count := range stats.CountByType {
				fmt.Printf("  %-10s %d\n", typ, count)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
