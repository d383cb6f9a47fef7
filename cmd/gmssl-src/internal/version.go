package internal

import (
	"fmt"

	"github.com/gmssl/gmssl-src/build"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the package and vendored GmSSL versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gmssl-src %s (GmSSL %s)\n", build.Version(), build.UpstreamVersion())
	},
}

var sourceDirCmd = &cobra.Command{
	Use:   "source-dir",
	Short: "Print the location of the vendored GmSSL tree",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.SourceDir())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sourceDirCmd)
}
