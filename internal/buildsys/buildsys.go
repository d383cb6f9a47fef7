// Package buildsys defines the configure/build/install lifecycle shared by
// the toolchains able to build GmSSL.
package buildsys

import "context"

// BuildSystem drives one toolchain through its lifecycle. Every step runs a
// subprocess to completion; the steps must be called in order.
type BuildSystem interface {
	Configure(ctx context.Context) error
	Build(ctx context.Context) error
	Install(ctx context.Context) error
}

// Run executes all steps of bs in order, stopping at the first failure.
func Run(ctx context.Context, bs BuildSystem) error {
	if err := bs.Configure(ctx); err != nil {
		return err
	}
	if err := bs.Build(ctx); err != nil {
		return err
	}
	return bs.Install(ctx)
}
