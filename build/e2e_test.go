package build

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gmssl/gmssl-src/internal/runner"
	"github.com/gmssl/gmssl-src/internal/toolchain"
)

func TestBuildE2E(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX toolchain")
	}
	const host = "x86_64-unknown-linux-gnu"
	for _, tool := range []string{"cmake", toolchain.Make(host), "cc"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not found in PATH", tool)
		}
	}

	out := t.TempDir()
	r := runner.New(quietLogger())
	r.Stdout = io.Discard
	r.Stderr = io.Discard
	b := NewBuilder(Options{Runner: r, Logger: quietLogger()})
	cfg := Config{
		OutDir:    out,
		Target:    host,
		Host:      host,
		SourceDir: filepath.Join("testdata", "gmssl"),
	}

	// The second run must start from purged build and install trees.
	for i := 0; i < 2; i++ {
		art, err := b.Build(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Build #%d: %v", i+1, err)
		}
		for _, path := range []string{
			filepath.Join(art.LibDir(), "libgmssl.a"),
			filepath.Join(art.IncludeDir(), "gmssl", "version.h"),
		} {
			if _, err := os.Stat(path); err != nil {
				t.Errorf("build #%d: missing %s", i+1, path)
			}
		}
		if _, err := os.Stat(filepath.Join(out, "build", "src")); !os.IsNotExist(err) {
			t.Errorf("build #%d: staged source left behind (err=%v)", i+1, err)
		}
	}
}
