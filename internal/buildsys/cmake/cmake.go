// Package cmake drives the CMake configure step followed by make/gmake.
package cmake

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gmssl/gmssl-src/internal/buildsys"
	"github.com/gmssl/gmssl-src/internal/runner"
)

// CMake configures a source tree with cmake and builds it with make in a
// separate build directory.
type CMake struct {
	runner        runner.Runner
	sourceDir     string
	buildDir      string
	installPrefix string
	makeName      string
	makeFlags     string
	hasMakeFlags  bool
	defines       map[string]bool
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a CMake building sourceDir inside buildDir.
func New(r runner.Runner, sourceDir, buildDir string) *CMake {
	return &CMake{
		runner:    r,
		sourceDir: sourceDir,
		buildDir:  buildDir,
		makeName:  "make",
		defines:   map[string]bool{},
	}
}

// InstallPrefix sets CMAKE_INSTALL_PREFIX. It should be absolute.
func (c *CMake) InstallPrefix(dir string) *CMake {
	c.installPrefix = dir
	return c
}

// Make selects the make executable, e.g. "gmake".
func (c *CMake) Make(name string) *CMake {
	c.makeName = name
	return c
}

// MakeFlags is forwarded to the build step as MAKEFLAGS, even when empty.
// Without a call the build step inherits MAKEFLAGS, if any.
func (c *CMake) MakeFlags(flags string) *CMake {
	c.makeFlags = flags
	c.hasMakeFlags = true
	return c
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) *CMake {
	c.defines[key] = value
	return c
}

// Configure runs "cmake <source> -DCMAKE_INSTALL_PREFIX=<prefix>" from the
// build directory.
func (c *CMake) Configure(ctx context.Context) error {
	args := []string{c.sourceArg()}
	if c.installPrefix != "" {
		args = append(args, "-DCMAKE_INSTALL_PREFIX="+c.installPrefix)
	}
	args = append(args, c.definesArgs()...)
	return c.runner.Run(ctx, runner.Command{Name: "cmake", Args: args, Dir: c.buildDir}, "configuring GmSSL")
}

// Build runs make in the build directory.
func (c *CMake) Build(ctx context.Context) error {
	cmd := runner.Command{Name: c.makeName, Dir: c.buildDir}
	if c.hasMakeFlags {
		cmd.Env = map[string]string{"MAKEFLAGS": c.makeFlags}
	}
	return c.runner.Run(ctx, cmd, "building GmSSL")
}

// Install runs "make install" in the build directory.
func (c *CMake) Install(ctx context.Context) error {
	cmd := runner.Command{Name: c.makeName, Args: []string{"install"}, Dir: c.buildDir}
	return c.runner.Run(ctx, cmd, "installing GmSSL")
}

// sourceArg returns the source directory relative to the build directory
// when it lives below it.
func (c *CMake) sourceArg() string {
	rel, err := filepath.Rel(c.buildDir, c.sourceDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return c.sourceDir
	}
	return rel
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		value := "OFF"
		if c.defines[k] {
			value = "ON"
		}
		args = append(args, "-D"+k+":BOOL="+value)
	}
	return args
}
