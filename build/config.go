// Package build compiles the vendored GmSSL library from source and
// describes the installed artifacts to the invoking build.
//
// Output directory layout:
//
//	<out_dir>/
//	  build/              # cmake cache and objects, kept between runs
//	    src/              # staged copy of the vendored tree, removed on success
//	  install/            # purged at the start of every run
//	    include/
//	    lib/
//	    bin/
package build

import (
	"runtime"

	"github.com/gmssl/gmssl-src/internal/env"
)

// Config is everything a build depends on. It is a plain value: construct
// it with ConfigFromEnv, adjust fields, then hand it to Builder.Build.
type Config struct {
	// OutDir is the working root that build/ and install/ are created in.
	OutDir string
	// Target and Host are toolchain triples, e.g. "x86_64-pc-windows-msvc".
	Target string
	Host   string

	// SourceDir is the vendored GmSSL tree. It is only read.
	SourceDir string

	// MakeFlags is forwarded as MAKEFLAGS to make on non-Windows hosts
	// when HasMakeFlags is set, even if it is empty.
	MakeFlags    string
	HasMakeFlags bool

	// AsmOverride is the captured OPENSSL_RUST_USE_NASM value.
	AsmOverride    string
	HasAsmOverride bool

	// HostOS is the GOOS of the machine running the tools. Empty means
	// runtime.GOOS.
	HostOS string
}

// ConfigFromEnv captures OUT_DIR, TARGET, HOST and the other build
// variables from the process environment.
func ConfigFromEnv() Config {
	return configFrom(env.Capture(nil))
}

func configFrom(s env.Snapshot) Config {
	return Config{
		OutDir:         s.OutDir,
		Target:         s.Target,
		Host:           s.Host,
		SourceDir:      s.SourceDir,
		MakeFlags:      s.MakeFlags,
		HasMakeFlags:   s.HasMakeFlags,
		AsmOverride:    s.UseNasm,
		HasAsmOverride: s.HasUseNasm,
	}
}

func (c Config) hostOS() string {
	if c.HostOS != "" {
		return c.HostOS
	}
	return runtime.GOOS
}

// Validate reports the first missing required field.
func (c Config) Validate() error {
	switch {
	case c.Target == "":
		return &ConfigError{Field: "TARGET", Msg: "not set"}
	case c.Host == "":
		return &ConfigError{Field: "HOST", Msg: "not set"}
	case c.OutDir == "":
		return &ConfigError{Field: "OUT_DIR", Msg: "not set"}
	case c.SourceDir == "":
		return &ConfigError{Field: "source dir", Msg: "not set"}
	}
	return nil
}

// ConfigError is returned before any subprocess runs when the configuration
// is incomplete or holds an unacceptable value.
type ConfigError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Field + " " + e.Msg + ": " + e.Err.Error()
	}
	return e.Field + " " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SourceDir returns the default location of the vendored GmSSL tree.
func SourceDir() string {
	return env.DefaultSourceDir()
}
