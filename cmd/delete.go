package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete [item id]",
	Short: "Delete an item permanently",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, _, err := openStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		item, err := store.GetItem(args[0])
		if err != nil {
			fmt.Println("❌ Item not found:", err)
			return
		}

		if !deleteForce {
			fmt.Printf("Delete %s \"%s\"? (y/N): ", item.Type, truncate(item.Content, 40))
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(answer)) != "y" {
				fmt.Println("Cancelled.")
				return
			}
		}

		if err := store.DeleteItem(item.ID); err != nil {
			fmt.Println("❌ Error deleting item:", err)
			return
		}

		fmt.Printf("🗑️  Deleted %s\n", shortID(item.ID))
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}
