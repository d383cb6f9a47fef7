package build

import (
	"strings"

	"golang.org/x/mod/semver"
)

// version carries the vendored GmSSL release as build metadata.
const version = "0.1.0+3.1.1"

// Version returns the version of this package.
func Version() string {
	return version
}

// UpstreamVersion returns the GmSSL release that is vendored.
func UpstreamVersion() string {
	return strings.TrimPrefix(semver.Build("v"+version), "+")
}
