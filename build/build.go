package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gmssl/gmssl-src/internal/buildsys"
	"github.com/gmssl/gmssl-src/internal/buildsys/cmake"
	"github.com/gmssl/gmssl-src/internal/buildsys/nmake"
	"github.com/gmssl/gmssl-src/internal/runner"
	"github.com/gmssl/gmssl-src/internal/shpath"
	"github.com/gmssl/gmssl-src/internal/stage"
	"github.com/gmssl/gmssl-src/internal/toolchain"
)

// Options holds the collaborators a Builder talks to. Zero values select
// the real implementations.
type Options struct {
	Runner    runner.Runner
	Logger    *slog.Logger
	FindNmake func(target string) (string, error)
	Where     toolchain.WhereFunc
}

// Builder runs the stage, configure, build and install pipeline.
type Builder struct {
	runner    runner.Runner
	logger    *slog.Logger
	findNmake func(target string) (string, error)
	where     toolchain.WhereFunc
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	b := &Builder{
		runner:    opts.Runner,
		logger:    logger,
		findNmake: opts.FindNmake,
		where:     opts.Where,
	}
	if b.runner == nil {
		b.runner = runner.New(logger)
	}
	if b.findNmake == nil {
		b.findNmake = toolchain.FindNmake
	}
	return b
}

// Build compiles GmSSL with a default Builder.
func Build(ctx context.Context, cfg Config) (*Artifacts, error) {
	return NewBuilder(Options{}).Build(ctx, cfg)
}

type layout struct {
	buildDir   string
	srcDir     string
	installDir string
}

func newLayout(outDir string) layout {
	buildDir := filepath.Join(outDir, "build")
	return layout{
		buildDir:   buildDir,
		srcDir:     filepath.Join(buildDir, "src"),
		installDir: filepath.Join(outDir, "install"),
	}
}

// Describe returns the artifacts a successful Build of cfg would report,
// without touching the filesystem or running any tool.
func Describe(cfg Config) (*Artifacts, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newArtifacts(newLayout(cfg.OutDir).installDir, cfg.Target, false), nil
}

// Build stages the vendored tree, then configures, builds and installs it.
// Any failure aborts the run; there is no partially valid install tree.
// Builds sharing one OutDir must not run concurrently.
func (b *Builder) Build(ctx context.Context, cfg Config) (*Artifacts, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hostOS := cfg.hostOS()
	l := newLayout(cfg.OutDir)

	asm, err := b.asmReady(ctx, cfg, hostOS)
	if err != nil {
		return nil, err
	}
	bs, err := b.buildSystem(cfg, hostOS, l, asm)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("staging GmSSL",
		"source", cfg.SourceDir, "src", l.srcDir, "build", l.buildDir, "install", l.installDir)
	if err := stage.Purge(l.buildDir, l.installDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(l.srcDir, 0o755); err != nil {
		return nil, err
	}
	if err := stage.CopyTree(cfg.SourceDir, l.srcDir); err != nil {
		return nil, fmt.Errorf("stage %s: %w", cfg.SourceDir, err)
	}

	if err := buildsys.Run(ctx, bs); err != nil {
		return nil, err
	}

	if err := stage.Purge(l.srcDir); err != nil {
		return nil, err
	}
	return newArtifacts(l.installDir, cfg.Target, asm), nil
}

// asmReady runs the nasm probe. Only Windows hosts consult it.
func (b *Builder) asmReady(ctx context.Context, cfg Config, hostOS string) (bool, error) {
	probe := toolchain.AsmProbe{
		GOOS:        hostOS,
		Override:    cfg.AsmOverride,
		HasOverride: cfg.HasAsmOverride,
		Where:       b.where,
		Logger:      b.logger,
	}
	ok, err := probe.Ready(ctx)
	if errors.Is(err, toolchain.ErrInvalidOverride) {
		return false, &ConfigError{Field: toolchain.NasmEnv, Msg: "is invalid", Err: err}
	}
	return ok, err
}

// buildSystem selects nmake for MSVC targets and CMake + make otherwise.
func (b *Builder) buildSystem(cfg Config, hostOS string, l layout, asm bool) (buildsys.BuildSystem, error) {
	if toolchain.IsMSVC(cfg.Target) {
		path, err := b.findNmake(cfg.Target)
		if err != nil {
			return nil, err
		}
		return nmake.New(b.runner, path, l.srcDir), nil
	}

	prefix, err := filepath.Abs(l.installDir)
	if err != nil {
		return nil, err
	}
	if toolchain.IsWindowsGNU(cfg.Target) {
		prefix = shpath.SanitizeOS(hostOS, prefix)
	}
	c := cmake.New(b.runner, l.srcDir, l.buildDir).
		InstallPrefix(prefix).
		Make(toolchain.Make(cfg.Host))
	if hostOS == "windows" {
		c.DefineBool("ENABLE_ASM", asm)
	} else if cfg.HasMakeFlags {
		c.MakeFlags(cfg.MakeFlags)
	}
	return c, nil
}
