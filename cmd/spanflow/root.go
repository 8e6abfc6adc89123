package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spanflow/flow"
)

func newRootCommand(version string) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "spanflow",
		Short:        "Route ecosystem-service flow from supply to demand and analyze the resulting network.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newRunCommand(), newRunsCommand(), newModelsCommand())
	return root
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List registered flow models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range flow.Models() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
