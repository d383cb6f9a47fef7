package internal

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gmssl/gmssl-src/build"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gmssl-src",
	Short: "gmssl-src builds the vendored GmSSL library from source",
	Long: `gmssl-src stages the vendored GmSSL tree, builds it with CMake and make
(or nmake for MSVC targets) and prints the linker metadata of the result.

Settings are read from flags first, then from the environment:
  OUT_DIR, TARGET, HOST, CARGO_MAKEFLAGS, GMSSL_SOURCE_DIR, OPENSSL_RUST_USE_NASM`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

var flagViper = viper.New()

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	flagViper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	flagViper.BindEnv("log-level", "GMSSL_SRC_LOG_LEVEL")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(flagViper.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// addConfigFlags registers the flags overriding build.ConfigFromEnv.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("out-dir", "", "output root (default $OUT_DIR/gmssl-build)")
	fs.String("target", "", "target triple (default $TARGET)")
	fs.String("host", "", "host triple (default $HOST)")
	fs.String("source-dir", "", "vendored GmSSL tree (default $GMSSL_SOURCE_DIR or $CARGO_MANIFEST_DIR/gmssl)")
}

// loadConfig merges flags of cmd over the environment captured by
// build.ConfigFromEnv. Only flags go through viper.
func loadConfig(cmd *cobra.Command) build.Config {
	v := viper.New()
	fs := cmd.Flags()
	for _, key := range []string{"out-dir", "target", "host", "source-dir"} {
		v.BindPFlag(key, fs.Lookup(key))
	}

	cfg := build.ConfigFromEnv()
	if s := v.GetString("out-dir"); s != "" {
		cfg.OutDir = s
	}
	if s := v.GetString("target"); s != "" {
		cfg.Target = s
	}
	if s := v.GetString("host"); s != "" {
		cfg.Host = s
	}
	if s := v.GetString("source-dir"); s != "" {
		cfg.SourceDir = s
	}
	return cfg
}
