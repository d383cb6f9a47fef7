package build

import (
	"bufio"
	"io"
	"path/filepath"
	"slices"

	"github.com/gmssl/gmssl-src/internal/toolchain"
)

// wasiTarget needs the wasi-libc emulation shims at link time.
const wasiTarget = "wasm32-wasi"

var wasiEmulatedLibs = []string{
	"wasi-emulated-signal",
	"wasi-emulated-process-clocks",
	"wasi-emulated-mman",
	"wasi-emulated-getpid",
}

// Artifacts describes an installed GmSSL build.
type Artifacts struct {
	includeDir string
	libDir     string
	binDir     string
	libs       []string
	target     string
	asmEnabled bool
}

// Layout is the serializable form of Artifacts.
type Layout struct {
	IncludeDir string   `json:"include_dir" yaml:"include_dir"`
	LibDir     string   `json:"lib_dir" yaml:"lib_dir"`
	BinDir     string   `json:"bin_dir" yaml:"bin_dir"`
	Libs       []string `json:"libs" yaml:"libs"`
	Target     string   `json:"target" yaml:"target"`
	AsmEnabled bool     `json:"asm_enabled" yaml:"asm_enabled"`
}

// Libs returns the library names GmSSL installs for target. Upstream names
// its MSVC outputs after OpenSSL.
func Libs(target string) []string {
	if toolchain.IsMSVC(target) {
		return []string{"libssl", "libcrypto"}
	}
	return []string{"gmssl"}
}

func newArtifacts(installDir, target string, asmEnabled bool) *Artifacts {
	return &Artifacts{
		includeDir: filepath.Join(installDir, "include"),
		libDir:     filepath.Join(installDir, "lib"),
		binDir:     filepath.Join(installDir, "bin"),
		libs:       Libs(target),
		target:     target,
		asmEnabled: asmEnabled,
	}
}

func (a *Artifacts) IncludeDir() string { return a.includeDir }
func (a *Artifacts) LibDir() string     { return a.libDir }
func (a *Artifacts) BinDir() string     { return a.binDir }
func (a *Artifacts) Target() string     { return a.target }
func (a *Artifacts) Libs() []string     { return slices.Clone(a.libs) }

// AsmEnabled reports whether nasm was found for the build. It is always
// false on non-Windows hosts.
func (a *Artifacts) AsmEnabled() bool { return a.asmEnabled }

// Layout returns a copy of a suitable for encoding.
func (a *Artifacts) Layout() Layout {
	return Layout{
		IncludeDir: a.includeDir,
		LibDir:     a.libDir,
		BinDir:     a.binDir,
		Libs:       a.Libs(),
		Target:     a.target,
		AsmEnabled: a.asmEnabled,
	}
}

// Metadata returns the linker configuration lines for the invoking build,
// one fact per line.
func (a *Artifacts) Metadata() []string {
	lines := []string{"cargo:rustc-link-search=native=" + a.libDir}
	for _, lib := range a.libs {
		lines = append(lines, "cargo:rustc-link-lib="+lib)
	}
	lines = append(lines,
		"cargo:include="+a.includeDir,
		"cargo:lib="+a.libDir,
	)
	switch {
	case toolchain.IsMSVC(a.target):
		lines = append(lines, "cargo:rustc-link-lib=user32")
	case a.target == wasiTarget:
		for _, lib := range wasiEmulatedLibs {
			lines = append(lines, "cargo:rustc-link-lib="+lib)
		}
	}
	return lines
}

// PrintMetadata writes Metadata to w.
func (a *Artifacts) PrintMetadata(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range a.Metadata() {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
