package main

import (
	"os"

	"github.com/spf13/cobra"

	"shipdesk/internal/interfaces/cli/migrate"
	"shipdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shipdesk",
		Short: "Shipdesk - ticket lifecycle and activity timeline engine",
		Long:  `Shipdesk tracks deployment support tickets from intake through triage, decision, agent work, and resolution, with a dual-visibility activity timeline.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
