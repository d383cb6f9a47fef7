// Package env is the single place the build reads process environment
// variables.
package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/qiniu/x/gsh"
)

// Variables set by the invoking build, or by the user.
const (
	OutDir      = "OUT_DIR"
	Target      = "TARGET"
	Host        = "HOST"
	MakeFlags   = "CARGO_MAKEFLAGS"
	ManifestDir = "CARGO_MANIFEST_DIR"
	SourceDir   = "GMSSL_SOURCE_DIR"
	UseNasm     = "OPENSSL_RUST_USE_NASM"
)

// buildSubdir is appended to OUT_DIR so the tree never collides with other
// outputs of the invoking build.
const buildSubdir = "gmssl-build"

// vendoredDir is the vendored GmSSL checkout below the manifest directory.
const vendoredDir = "gmssl"

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Snapshot holds the values read at one point in time.
type Snapshot struct {
	OutDir    string
	Target    string
	Host      string
	MakeFlags string
	SourceDir string

	// HasMakeFlags reports whether CARGO_MAKEFLAGS was set, even to "".
	HasMakeFlags bool

	UseNasm    string
	HasUseNasm bool
}

// Capture reads every variable once through lookup. A nil lookup reads the
// environment of gsh.Sys.
func Capture(lookup LookupFunc) Snapshot {
	if lookup == nil {
		lookup = Lookup(gsh.Sys)
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	var s Snapshot
	if dir := get(OutDir); dir != "" {
		s.OutDir = filepath.Join(dir, buildSubdir)
	}
	s.Target = get(Target)
	s.Host = get(Host)
	s.MakeFlags, s.HasMakeFlags = lookup(MakeFlags)
	s.SourceDir = sourceDir(get)
	s.UseNasm, s.HasUseNasm = lookup(UseNasm)
	return s
}

// Lookup returns a LookupFunc over the environment of sys. Unlike
// sys.Getenv it tells an empty variable from an unset one.
func Lookup(sys gsh.OS) LookupFunc {
	return func(key string) (string, bool) {
		prefix := key + "="
		for _, kv := range sys.Environ() {
			if strings.HasPrefix(kv, prefix) {
				return kv[len(prefix):], true
			}
		}
		return "", false
	}
}

// DefaultSourceDir returns the vendored source location derived from the
// process environment.
func DefaultSourceDir() string {
	return sourceDir(gsh.Sys.Getenv)
}

func sourceDir(get func(string) string) string {
	if dir := get(SourceDir); dir != "" {
		return dir
	}
	if dir := get(ManifestDir); dir != "" {
		return filepath.Join(dir, vendoredDir)
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, vendoredDir)
	}
	return vendoredDir
}
