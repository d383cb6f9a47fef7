// Package shpath rewrites Windows paths into the form POSIX-style shell
// tooling (MSYS, MinGW make) expects.
package shpath

import (
	"runtime"
	"strings"
)

// Sanitize converts path for the host platform. Outside Windows the path is
// returned unchanged.
func Sanitize(path string) string {
	return SanitizeOS(runtime.GOOS, path)
}

// SanitizeOS is Sanitize for a host running goos.
func SanitizeOS(goos, path string) string {
	if goos != "windows" {
		return path
	}
	path = strings.ReplaceAll(path, `\`, "/")
	if p, ok := changeDrive(path); ok {
		return p
	}
	return path
}

// changeDrive rewrites "X:/rest" as "/X/rest" when X is an ASCII letter.
// The drive letter keeps its case.
func changeDrive(s string) (string, bool) {
	if len(s) < 3 || !isDriveLetter(s[0]) || s[1:3] != ":/" {
		return "", false
	}
	return "/" + s[:1] + "/" + s[3:], true
}

func isDriveLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
