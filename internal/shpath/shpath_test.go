package shpath

import (
	"runtime"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSanitizeWindows(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`C:/foo/bar`, `/C/foo/bar`},
		{`C:\foo\bar`, `/C/foo/bar`},
		{`d:\Build\gmssl-build\install`, `/d/Build/gmssl-build/install`},
		{`C:`, `C:`},
		{`C:foo`, `C:foo`},
		{`\\server\share\dir`, `//server/share/dir`},
		{`relative\path`, `relative/path`},
		{``, ``},
		{"\xff:/foo", "\xff:/foo"},
		{`1:\foo`, `1:/foo`},
		{`é:\foo`, `é:/foo`},
	}
	for _, tt := range tests {
		if got := SanitizeOS("windows", tt.in); got != tt.want {
			t.Errorf("SanitizeOS(windows, %q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeNonWindows(t *testing.T) {
	for _, p := range []string{`/usr/local/lib`, `C:\foo`, `C:/foo`, ``} {
		if got := SanitizeOS("linux", p); got != p {
			t.Errorf("SanitizeOS(linux, %q) = %q, want unchanged", p, got)
		}
	}
}

func TestSanitizeHost(t *testing.T) {
	if runtime.GOOS == "windows" {
		if got := Sanitize(`C:\x`); got != "/C/x" {
			t.Errorf("Sanitize = %q", got)
		}
		return
	}
	if got := Sanitize(`C:\x`); got != `C:\x` {
		t.Errorf("Sanitize = %q, want unchanged", got)
	}
}

func TestSanitizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("non-windows is identity", prop.ForAll(
		func(p string) bool {
			return SanitizeOS("darwin", p) == p
		},
		gen.AnyString(),
	))

	properties.Property("windows output has no backslashes", prop.ForAll(
		func(p string) bool {
			return !strings.Contains(SanitizeOS("windows", p), `\`)
		},
		gen.AnyString(),
	))

	properties.Property("drive prefix is rewritten", prop.ForAll(
		func(drive string, rest string) bool {
			return SanitizeOS("windows", drive+`:\`+rest) == "/"+drive+"/"+strings.ReplaceAll(rest, `\`, "/")
		},
		gen.RegexMatch(`^[A-Za-z]$`),
		gen.RegexMatch(`^[a-zA-Z0-9_\\.-]*$`),
	))

	properties.Property("paths without a drive only normalize slashes", prop.ForAll(
		func(p string) bool {
			return SanitizeOS("windows", p) == strings.ReplaceAll(p, `\`, "/")
		},
		gen.RegexMatch(`^[a-zA-Z0-9_/\\.-]*$`),
	))

	properties.TestingRun(t)
}
