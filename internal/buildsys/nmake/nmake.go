// Package nmake drives the MSVC nmake build of GmSSL.
package nmake

import (
	"context"

	"github.com/gmssl/gmssl-src/internal/buildsys"
	"github.com/gmssl/gmssl-src/internal/runner"
)

// NMake builds inside the source directory; there is no separate configure
// step.
type NMake struct {
	runner    runner.Runner
	nmake     string
	sourceDir string
}

var _ buildsys.BuildSystem = (*NMake)(nil)

// New returns an NMake using the nmake executable at path.
func New(r runner.Runner, path, sourceDir string) *NMake {
	return &NMake{runner: r, nmake: path, sourceDir: sourceDir}
}

// Configure is a no-op: the nmake targets configure implicitly.
func (n *NMake) Configure(context.Context) error { return nil }

// Build runs "nmake build_libs".
func (n *NMake) Build(ctx context.Context) error {
	return n.run(ctx, "build_libs", "building GmSSL")
}

// Install runs "nmake install_dev".
func (n *NMake) Install(ctx context.Context) error {
	return n.run(ctx, "install_dev", "installing GmSSL")
}

func (n *NMake) run(ctx context.Context, target, desc string) error {
	return n.runner.Run(ctx, runner.Command{Name: n.nmake, Args: []string{target}, Dir: n.sourceDir}, desc)
}
