//go:build windows

package toolchain

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sys/windows/registry"
)

// vs7Key lists VS2015/VS2017 installations by version.
const vs7Key = `SOFTWARE\Microsoft\VisualStudio\SxS\VS7`

func findNmake(target string) (string, error) {
	arch := msvcArch(target)
	if arch == "" {
		return "", fmt.Errorf("%w: unsupported MSVC target %s", ErrNmakeNotFound, target)
	}
	hostArch := msvcHostArch(runtime.GOARCH)

	// A developer command prompt already selected a toolset.
	if dir := os.Getenv("VCToolsInstallDir"); dir != "" {
		p := filepath.Join(dir, "bin", "Host"+hostArch, arch, "nmake.exe")
		if fileExists(p) {
			return p, nil
		}
	}
	for _, dir := range vswhereInstalls() {
		if p, ok := nmakeInInstall(dir, hostArch, arch); ok {
			return p, nil
		}
	}
	for _, dir := range registryInstalls() {
		if p, ok := nmakeInInstall(dir, hostArch, arch); ok {
			return p, nil
		}
	}
	if p, err := exec.LookPath("nmake.exe"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w for %s", ErrNmakeNotFound, target)
}

// registryInstalls returns installation directories recorded under vs7Key,
// newest first.
func registryInstalls() []string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, vs7Key, registry.QUERY_VALUE|registry.WOW64_32KEY)
	if err != nil {
		return nil
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	dirs := make([]string, 0, len(names))
	for _, name := range names {
		dir, _, err := k.GetStringValue(name)
		if err != nil || dir == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

// vswhereInstalls asks the Visual Studio installer for VS2017+ instances
// carrying the C++ toolset.
func vswhereInstalls() []string {
	root := os.Getenv("ProgramFiles(x86)")
	if root == "" {
		return nil
	}
	vswhere := filepath.Join(root, "Microsoft Visual Studio", "Installer", "vswhere.exe")
	if !fileExists(vswhere) {
		return nil
	}
	out, err := exec.Command(vswhere,
		"-latest", "-products", "*",
		"-requires", "Microsoft.VisualStudio.Component.VC.Tools.x86.x64",
		"-property", "installationPath",
	).Output()
	if err != nil {
		return nil
	}
	var dirs []string
	for _, line := range strings.Split(string(bytes.TrimSpace(out)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			dirs = append(dirs, line)
		}
	}
	return dirs
}
