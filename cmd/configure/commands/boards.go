package commands

import (
	"fmt"

	"github.com/adrienjoly/telegram-scribe-bot/internal/config"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/trello"
	"github.com/spf13/cobra"
)

// NewBoardsCmd creates the boards command
func NewBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List the Trello boards accessible with the configured token",
		Long:  "List Trello boards and their ids, to help pick a TRELLO_BOARD_ID value",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := config.LoadOptions()
			creds, err := options.Check(values, "trello", "apikey", "usertoken")
			if err != nil {
				return err
			}

			client := trello.New(creds["apikey"], creds["usertoken"])
			boards, err := client.Boards(cmd.Context(), "me")
			if err != nil {
				return fmt.Errorf("failed to list boards: %w", err)
			}

			if len(boards) == 0 {
				fmt.Println("No boards found for this token")
				return nil
			}
			for _, board := range boards {
				fmt.Printf("%s  %s\n", board.ID, board.Name)
			}
			return nil
		},
	}
}
