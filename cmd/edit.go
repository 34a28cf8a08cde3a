package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SheaGuev/studykit/internal/models"
)

var (
	editContent string
	editTags    string
	editType    string
)

var editCmd = &cobra.Command{
	Use:   "edit [item id]",
	Short: "Edit an item's content, type or tags",
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

		if editContent != "" {
			item.Content = editContent
		}
		if editType != "" {
			typ := models.ItemType(strings.ToLower(editType))
			if !typ.Valid() {
				fmt.Println("❌ Type must be 'flashcard' or 'quiz'")
				return
			}
			item.Type = typ
		}
		if cmd.Flags().Changed("tags") {
			item.Tags = models.NormalizeTags(strings.Split(editTags, ","))
		}

		if err := store.UpdateItemDetails(*item); err != nil {
			fmt.Println("❌ Error updating item:", err)
			return
		}

		fmt.Printf("🔄 Updated %s\n", shortID(item.ID))
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "New type: flashcard or quiz")
	editCmd.Flags().StringVar(&editTags, "tags", "", "Replacement comma-separated tag set")
}
