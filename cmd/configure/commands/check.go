// Package commands holds the subcommands of the configure tool.
package commands

import (
	"fmt"

	"github.com/adrienjoly/telegram-scribe-bot/internal/config"
	"github.com/adrienjoly/telegram-scribe-bot/internal/options"
	"github.com/spf13/cobra"
)

// commandRequirements maps each chat command to the options it needs.
var commandRequirements = []struct {
	command   string
	namespace string
	keys      []string
}{
	{"/todo, /today", "ticktick", []string{"email", "password"}},
	{"/note, /next", "trello", []string{"apikey", "usertoken", "boardid"}},
	{"/album", "github", []string{"token"}},
	{"/album", "spotify", []string{"clientid", "secret"}},
	{"/openwhyd", "openwhyd", []string{"username", "password", "api_client_id", "api_client_secret", "youtube_api_key"}},
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check which chat commands are fully configured",
		Long:  "Check the environment for each chat command's credentials and report what is missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := config.LoadOptions()

			incomplete := 0
			for _, req := range commandRequirements {
				if _, err := options.Check(values, req.namespace, req.keys...); err != nil {
					fmt.Printf("✗ %s: %v\n", req.command, err)
					incomplete++
					continue
				}
				fmt.Printf("✓ %s: %s configured\n", req.command, req.namespace)
			}

			if incomplete > 0 {
				fmt.Printf("\n%d integration(s) incomplete; the related commands will report their missing option in chat\n", incomplete)
			} else {
				fmt.Println("\nAll integrations configured")
			}
			return nil
		},
	}
}
