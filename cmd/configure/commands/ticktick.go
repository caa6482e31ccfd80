package commands

import (
	"fmt"

	"github.com/adrienjoly/telegram-scribe-bot/internal/config"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/adrienjoly/telegram-scribe-bot/internal/services/ticktick"
	"github.com/spf13/cobra"
)

// NewTicktickCmd creates the ticktick command
func NewTicktickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ticktick",
		Short: "Test the configured TickTick credentials",
		Long:  "Sign in to TickTick with the configured email and password, without creating any task",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := config.LoadOptions()
			creds, err := options.Check(values, "ticktick", "email", "password")
			if err != nil {
				return err
			}

			client := ticktick.New(creds["email"], creds["password"])
			if err := client.Connect(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("TickTick sign-in OK")
			return nil
		},
	}
}
