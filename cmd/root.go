package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SheaGuev/studykit/internal/config"
	"github.com/SheaGuev/studykit/internal/db"
)

var (
	flagUser    string
	flagVerbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "studykit",
	Short: "Spaced repetition for your notes, flashcards and quizzes",
	Long: `Studykit schedules flashcard and quiz reviews with the SM-2
spaced repetition algorithm and keeps track of how well you know each item.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			l, err := zap.NewDevelopment()
			if err == nil {
				logger = l
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "U", "local", "User whose items to operate on")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// openStore loads config and opens the item store. Callers must Close it.
func openStore() (*db.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	store, err := db.Open(cfg.DataDir, logger)
	if err != nil {
		return nil, config.Config{}, err
	}
	return store, cfg, nil
}
