//go:build !windows

package toolchain

import "fmt"

func findNmake(target string) (string, error) {
	return "", fmt.Errorf("%w for %s: MSVC toolchains are only available on Windows hosts", ErrNmakeNotFound, target)
}
