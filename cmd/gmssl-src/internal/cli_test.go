package internal

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmssl/gmssl-src/build"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addConfigFlags(cmd.Flags())
	return cmd
}

func TestLoadConfigFromEnv(t *testing.T) {
	out := t.TempDir()
	t.Setenv("OUT_DIR", out)
	t.Setenv("TARGET", "x86_64-unknown-freebsd")
	t.Setenv("HOST", "x86_64-unknown-freebsd")
	t.Setenv("GMSSL_SOURCE_DIR", filepath.Join(out, "gmssl"))

	cfg := loadConfig(newConfigCmd())
	if cfg.OutDir != filepath.Join(out, "gmssl-build") {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if cfg.Target != "x86_64-unknown-freebsd" || cfg.Host != "x86_64-unknown-freebsd" {
		t.Errorf("triples = %q, %q", cfg.Target, cfg.Host)
	}
	if cfg.SourceDir != filepath.Join(out, "gmssl") {
		t.Errorf("SourceDir = %q", cfg.SourceDir)
	}
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Setenv("OUT_DIR", t.TempDir())
	t.Setenv("TARGET", "x86_64-unknown-linux-gnu")
	t.Setenv("HOST", "x86_64-unknown-linux-gnu")

	cmd := newConfigCmd()
	for name, value := range map[string]string{
		"out-dir":    "custom-out",
		"target":     "x86_64-pc-windows-msvc",
		"source-dir": "vendor/gmssl",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	cfg := loadConfig(cmd)
	if cfg.OutDir != "custom-out" {
		t.Errorf("OutDir = %q, want flag value", cfg.OutDir)
	}
	if cfg.Target != "x86_64-pc-windows-msvc" {
		t.Errorf("Target = %q, want flag value", cfg.Target)
	}
	if cfg.Host != "x86_64-unknown-linux-gnu" {
		t.Errorf("Host = %q, want env value", cfg.Host)
	}
	if cfg.SourceDir != "vendor/gmssl" {
		t.Errorf("SourceDir = %q, want flag value", cfg.SourceDir)
	}
}

func testLayout() build.Layout {
	return build.Layout{
		IncludeDir: "/out/install/include",
		LibDir:     "/out/install/lib",
		BinDir:     "/out/install/bin",
		Libs:       []string{"libssl", "libcrypto"},
		Target:     "x86_64-pc-windows-msvc",
	}
}

func TestWriteLayoutText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLayout(&buf, testLayout(), "text"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"target:  x86_64-pc-windows-msvc", "lib:     /out/install/lib", "libs:    libssl libcrypto"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("text output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestWriteLayoutEncoded(t *testing.T) {
	var jsonBuf, yamlBuf bytes.Buffer
	if err := writeLayout(&jsonBuf, testLayout(), "json"); err != nil {
		t.Fatal(err)
	}
	if err := writeLayout(&yamlBuf, testLayout(), "yaml"); err != nil {
		t.Fatal(err)
	}

	var fromJSON, fromYAML build.Layout
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if diff := cmp.Diff(testLayout(), fromJSON); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testLayout(), fromYAML); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(yamlBuf.String(), "include_dir: /out/install/include") {
		t.Errorf("yaml keys not snake_case:\n%s", yamlBuf.String())
	}
}

func TestWriteLayoutUnknownFormat(t *testing.T) {
	if err := writeLayout(&bytes.Buffer{}, testLayout(), "toml"); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); got != "gmssl-src 0.1.0+3.1.1 (GmSSL 3.1.1)\n" {
		t.Errorf("version output = %q", got)
	}
}
