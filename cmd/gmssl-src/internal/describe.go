package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gmssl/gmssl-src/build"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var describeFormat string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the artifact layout a build would produce",
	Long:  `Describe prints the include, lib and bin directories and the libraries a build would report, without building.`,
	Args:  cobra.NoArgs,
	RunE:  runDescribe,
}

func init() {
	addConfigFlags(describeCmd.Flags())
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "text", "output format (text, json, yaml)")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	artifacts, err := build.Describe(loadConfig(cmd))
	if err != nil {
		return err
	}
	return writeLayout(cmd.OutOrStdout(), artifacts.Layout(), describeFormat)
}

func writeLayout(w io.Writer, l build.Layout, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintf(w, "target:  %s\ninclude: %s\nlib:     %s\nbin:     %s\nlibs:    %s\n",
			l.Target, l.IncludeDir, l.LibDir, l.BinDir, strings.Join(l.Libs, " "))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
