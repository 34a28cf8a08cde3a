package cmd

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SheaGuev/studykit/internal/models"
	"github.com/SheaGuev/studykit/internal/session"
)

var studyMax int

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start an interactive study session",
	Long: `Start a study session over your due items. Overdue items come
first, then due ones, then new cards in random order. Rate each item
0 (blackout) to 5 (perfect) and the next review is scheduled for you.
Type 'q' to end the session early.`,
	Run: func(cmd *cobra.Command, args []string) {
		store, cfg, err := openStore()
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

		settings := cfg.Settings
		if studyMax > 0 {
			settings.MaxQueueSize = studyMax
		}

		sess := session.New()
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		ready, err := sess.Prepare(items, time.Now(), settings, rng)
		if err != nil {
			fmt.Println("❌ Could not prepare session:", err)
			return
		}
		if !ready {
			fmt.Println("✅ Nothing to study right now. Come back later!")
			return
		}

		if err := sess.Start(); err != nil {
			fmt.Println("❌ Could not start session:", err)
			return
		}
		logger.Debug("session started", zap.Int("queue", sess.Len()))

		reader := bufio.NewReader(os.Stdin)
		total := sess.Len()

		for sess.State() == session.InProgress {
			item, err := sess.Current()
			if err != nil {
				fmt.Println("❌ Session error:", err)
				return
			}

			fmt.Println("\n========================================")
			fmt.Printf("Item [%d/%d] (%s)\n", total-sess.Remaining()+1, total, item.Type)
			fmt.Println(item.Content)
			if len(item.Tags) > 0 {
				fmt.Println("Tags:", strings.Join(item.Tags, ", "))
			}
			fmt.Println("========================================")

			fmt.Print("Rate recall quality (0: Blackout -> 5: Perfect, q: quit): ")
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(input)

			if input == "q" || input == "quit" {
				stats, err := sess.Exit()
				if err != nil {
					fmt.Println("❌ Could not exit session:", err)
					return
				}
				printSessionStats(stats)
				return
			}

			quality, err := strconv.Atoi(input)
			if err != nil || quality < 0 || quality > 5 {
				fmt.Println("⚠️ Please enter a number between 0 and 5.")
				continue
			}

			now := time.Now()
			updated, err := sess.RecordResult(quality, now)
			if err != nil {
				fmt.Println("❌ Error recording result:", err)
				return
			}

			// Persist the scheduling triple as one write, then the log entry.
			if err := store.UpdateReviewState(updated); err != nil {
				fmt.Println("❌ Error saving item:", err)
				return
			}
			if err := store.AddReviewLog(models.ReviewLog{
				ItemID:     updated.ID,
				UserID:     updated.UserID,
				Quality:    quality,
				ReviewedAt: now,
				Interval:   updated.Interval,
				EaseFactor: updated.EaseFactor,
			}); err != nil {
				fmt.Println("⚠️ Could not record review history:", err)
			}

			fmt.Printf("✅ Next review in %d days (performance %d%%).\n", updated.Interval, updated.Performance)
		}

		fmt.Println("\n🎉 Session complete!")
		printSessionStats(sess.Stats())
	},
}

func printSessionStats(stats models.SessionStats) {
	fmt.Printf("\n📊 Reviewed %d items (%d new, %d review)\n",
		stats.TotalReviewed, stats.NewCards, stats.ReviewCards)
}

func init() {
	rootCmd.AddCommand(studyCmd)

	studyCmd.Flags().IntVarP(&studyMax, "max", "m", 0, "Queue size cap for this session (0 = use configured default)")
}
