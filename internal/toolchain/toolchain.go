// Package toolchain decides which build tool executables drive a GmSSL
// build for a given host and target.
package toolchain

import (
	"errors"
	"strings"
)

// ErrNmakeNotFound is returned when no nmake.exe can be located for an MSVC
// target.
var ErrNmakeNotFound = errors.New("failed to find nmake")

// gmakeHosts ship BSD make as "make" and GNU make as "gmake".
var gmakeHosts = []string{
	"dragonfly",
	"freebsd",
	"netbsd",
	"openbsd",
	"solaris",
	"illumos",
}

// Make returns the GNU make executable name for host.
func Make(host string) string {
	for _, marker := range gmakeHosts {
		if strings.Contains(host, marker) {
			return "gmake"
		}
	}
	return "make"
}

// CMake returns the CMake executable name.
func CMake() string {
	return "cmake"
}

// IsMSVC reports whether target is built with the MSVC toolchain.
func IsMSVC(target string) bool {
	return strings.Contains(target, "msvc")
}

// IsWindowsGNU reports whether target is a MinGW target whose tools expect
// POSIX-style paths.
func IsWindowsGNU(target string) bool {
	return strings.Contains(target, "windows") && strings.Contains(target, "gnu")
}

// FindNmake locates nmake.exe able to build for target.
func FindNmake(target string) (string, error) {
	return findNmake(target)
}
