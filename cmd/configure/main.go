package main

import (
	"fmt"
	"os"

	"github.com/adrienjoly/telegram-scribe-bot/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "scribe-bot-configure",
		Short: "Configuration tool for the Telegram scribe bot",
		Long:  "CLI tool to verify the bot's integration credentials before deploying",
	}

	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewBoardsCmd())
	rootCmd.AddCommand(commands.NewTicktickCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
