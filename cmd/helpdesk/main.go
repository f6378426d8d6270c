package main

import (
	"os"

	"github.com/spf13/cobra"

	"helpdesk/internal/interfaces/cli/inbox"
	"helpdesk/internal/interfaces/cli/migrate"
	"helpdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk - ticket management with email ingestion",
		Long:  `Helpdesk is a ticket management backend with an email-to-ticket ingestion pipeline, background inbox polling, and notification fan-out.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		inbox.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
