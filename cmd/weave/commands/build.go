package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the module graph from the configured entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := buildOptions(cmd)
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
			_, err := c.app.Build(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the persistent module cache")
	return cmd
}

func (c *CLI) newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the module graph and print its entries and edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := buildOptions(cmd)
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
			return c.app.Graph(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the persistent module cache")
	return cmd
}
