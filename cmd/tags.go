package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SheaGuev/studykit/internal/tags"
)

var tagsFromText bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags across your items",
	Long: `List every tag used by your items, sorted alphabetically.
With --from-text, read free text from stdin and extract #hashtags instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		if tagsFromText {
			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Println("❌ Error reading stdin:", err)
				return
			}
			found := tags.ExtractHashtags(string(text))
			if len(found) == 0 {
				fmt.Println("📭 No hashtags found.")
				return
			}
			fmt.Println(strings.Join(found, "\n"))
			return
		}

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

		all := tags.ExtractAll(items)
		if len(all) == 0 {
			fmt.Println("📭 No tags yet.")
			return
		}

		fmt.Printf("🏷️  %d tags:\n", len(all))
		for _, tag := range all {
			fmt.Println("  " + tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().BoolVar(&tagsFromText, "from-text", false, "Extract #hashtags from stdin instead of listing item tags")
}
