package internal

import (
	"github.com/gmssl/gmssl-src/build"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build GmSSL and print linker metadata",
	Long: `Build stages the vendored GmSSL tree under the output root, configures,
builds and installs it, then prints one linker metadata line per fact.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	addConfigFlags(buildCmd.Flags())
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	artifacts, err := build.Build(cmd.Context(), loadConfig(cmd))
	if err != nil {
		return err
	}
	return artifacts.PrintMetadata(cmd.OutOrStdout())
}
