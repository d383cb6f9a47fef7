package toolchain

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// msvcArch maps the architecture of a target triple to the MSVC tools
// directory name.
func msvcArch(target string) string {
	arch, _, _ := strings.Cut(target, "-")
	switch arch {
	case "x86_64":
		return "x64"
	case "i586", "i686":
		return "x86"
	case "aarch64", "arm64ec":
		return "arm64"
	case "thumbv7a", "armv7":
		return "arm"
	}
	return ""
}

// msvcHostArch maps a GOARCH value to the MSVC host directory name.
func msvcHostArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	case "arm64":
		return "arm64"
	}
	return "x64"
}

// nmakeInTools finds nmake.exe under a VS2017+ "VC\Tools\MSVC" directory,
// preferring the newest toolset.
func nmakeInTools(toolsDir, hostArch, arch string) (string, bool) {
	entries, err := os.ReadDir(toolsDir)
	if err != nil {
		return "", false
	}
	var versions []string
	for _, e := range entries {
		if e.IsDir() && semver.IsValid("v"+e.Name()) {
			versions = append(versions, e.Name())
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare("v"+versions[i], "v"+versions[j]) > 0
	})
	for _, v := range versions {
		p := filepath.Join(toolsDir, v, "bin", "Host"+hostArch, arch, "nmake.exe")
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// nmakeInLegacyVC finds nmake.exe in a VS2015 style "VC\bin" layout.
func nmakeInLegacyVC(vcDir, hostArch, arch string) (string, bool) {
	var sub string
	switch {
	case hostArch == "x64" && arch == "x64":
		sub = "amd64"
	case hostArch == "x64" && arch == "x86":
		sub = "amd64_x86"
	case hostArch == "x64" && arch == "arm":
		sub = "amd64_arm"
	case arch == "x86":
		sub = ""
	case arch == "x64":
		sub = "x86_amd64"
	case arch == "arm":
		sub = "x86_arm"
	default:
		return "", false
	}
	p := filepath.Join(vcDir, "bin", sub, "nmake.exe")
	if fileExists(p) {
		return p, true
	}
	return "", false
}

// nmakeInInstall searches one Visual Studio installation directory.
func nmakeInInstall(installDir, hostArch, arch string) (string, bool) {
	if p, ok := nmakeInTools(filepath.Join(installDir, "VC", "Tools", "MSVC"), hostArch, arch); ok {
		return p, true
	}
	return nmakeInLegacyVC(filepath.Join(installDir, "VC"), hostArch, arch)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
