package toolchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// NasmEnv forces nasm detection on ("1") or off ("0").
const NasmEnv = "OPENSSL_RUST_USE_NASM"

// ErrInvalidOverride is returned when NasmEnv holds anything but "0" or "1".
var ErrInvalidOverride = errors.New("unacceptable value")

// WhereFunc reports whether tool is present on the host PATH.
type WhereFunc func(ctx context.Context, tool string) (bool, error)

// AsmProbe decides whether assembly optimized code paths may be enabled.
type AsmProbe struct {
	// GOOS of the host running the build. The probe is only meaningful on
	// windows; everywhere else it reports false.
	GOOS string

	// Override is the captured value of NasmEnv; HasOverride is false when
	// the variable was unset.
	Override    string
	HasOverride bool

	// Where defaults to running "cmd /C where <tool>".
	Where  WhereFunc
	Logger *slog.Logger
}

// Ready reports whether nasm is usable.
func (p AsmProbe) Ready(ctx context.Context) (bool, error) {
	if p.GOOS != "windows" {
		return false, nil
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if p.HasOverride {
		switch p.Override {
		case "1":
			logger.Info("nasm.exe is force enabled", "env", NasmEnv)
			return true, nil
		case "0":
			logger.Info("nasm.exe is force disabled", "env", NasmEnv)
			return false, nil
		}
		return false, fmt.Errorf("the environment variable %s is set to an %w: %q", NasmEnv, ErrInvalidOverride, p.Override)
	}
	where := p.Where
	if where == nil {
		where = cmdWhere
	}
	found, err := where(ctx, "nasm")
	if err != nil {
		return false, fmt.Errorf("probe nasm: %w", err)
	}
	return found, nil
}

// cmdWhere runs the Windows "where" builtin. A nonzero exit means the tool
// was not found; failing to start cmd at all is an error.
func cmdWhere(ctx context.Context, tool string) (bool, error) {
	err := exec.CommandContext(ctx, "cmd", "/C", "where "+tool).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("failed to execute `cmd`: %w", err)
}
