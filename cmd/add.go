package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SheaGuev/studykit/internal/models"
)

var (
	addType     string
	addTags     string
	addFileID   string
	addFolderID string
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a new flashcard or quiz item",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content := strings.Join(args, " ")

		typ := models.ItemType(strings.ToLower(addType))
		if !typ.Valid() {
			fmt.Println("❌ Type must be 'flashcard' or 'quiz'")
			return
		}

		store, _, err := openStore()
		if err != nil {
			fmt.Println("❌ Database error:", err)
			return
		}
		defer store.Close()

		var tags []string
		if addTags != "" {
			tags = strings.Split(addTags, ",")
		}

		item := models.NewItem(flagUser, typ, content, tags)
		item.SourceFileID = addFileID
		item.SourceFolderID = addFolderID

		if err := store.AddItem(item); err != nil {
			fmt.Println("❌ Error adding item:", err)
			return
		}

		fmt.Printf("✅ Added %s %s\n", typ, item.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addType, "type", "t", "flashcard", "Item type: flashcard or quiz")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags (e.g. math,algebra)")
	addCmd.Flags().StringVar(&addFileID, "file", "", "Originating file id")
	addCmd.Flags().StringVar(&addFolderID, "folder", "", "Originating folder id")
}
