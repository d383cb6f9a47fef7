// Package runner launches build tool subprocesses and converts any failure
// into a fatal, descriptive error.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/qiniu/x/gsh"
)

// Command describes a single tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Env holds variables set on top of the inherited environment.
	Env map[string]string
}

// String renders the command the way it is reported in logs and errors.
// Words are written as they are passed to the tool; only words holding
// whitespace, or empty ones, are quoted.
func (c Command) String() string {
	var sb strings.Builder
	if c.Dir != "" {
		sb.WriteString("cd ")
		sb.WriteString(word(c.Dir))
		sb.WriteString(" && ")
	}
	for _, k := range sortedKeys(c.Env) {
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(word(c.Env[k]))
		sb.WriteByte(' ')
	}
	sb.WriteString(word(c.Name))
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(word(arg))
	}
	return sb.String()
}

// word single-quotes s only when it holds whitespace, so backslashes in
// Windows paths are never escaped.
func word(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n") {
		return s
	}
	return shellquote.Join(s)
}

// Kind classifies a subprocess failure.
type Kind int

const (
	// ExitStatus means the process ran and exited unsuccessfully.
	ExitStatus Kind = iota + 1
	// LaunchFailure means the process could not be started at all.
	LaunchFailure
)

func (k Kind) String() string {
	switch k {
	case ExitStatus:
		return "Exit status"
	case LaunchFailure:
		return "Failed to execute"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Error is the fatal result of a failed invocation. No partial success is
// defined: callers abort the whole build when they see one.
type Error struct {
	Desc    string
	Command Command
	Kind    Kind
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error %s:\n    Command: %s\n    %s: %s", e.Desc, e.Command, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command, desc string) error
}

// Exec runs commands as real subprocesses with inherited stdio, so the
// invoking build shows live tool output. The child environment and the
// launch itself go through Sys.
type Exec struct {
	Sys    gsh.OS
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

var _ Runner = (*Exec)(nil)

// New returns an Exec bound to the host system and the process stdio.
func New(logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{
		Sys:    gsh.Sys,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run launches cmd and waits for it. A nonzero exit or a launch failure is
// returned as *Error.
func (r *Exec) Run(ctx context.Context, cmd Command, desc string) error {
	sys := r.Sys
	if sys == nil {
		sys = gsh.Sys
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("running", "desc", desc, "command", cmd.String())

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = r.Stdin
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	c.Env = MergeEnv(sys.Environ(), cmd.Env)

	err := sys.Run(c)
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := err.Error()
		if exitErr.ProcessState != nil {
			detail = exitErr.ProcessState.String()
		}
		return &Error{Desc: desc, Command: cmd, Kind: ExitStatus, Detail: detail, Err: err}
	}
	return &Error{Desc: desc, Command: cmd, Kind: LaunchFailure, Detail: err.Error(), Err: err}
}

// MergeEnv overlays override on a KEY=VALUE environment list. The result is
// sorted by key.
func MergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(override))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	out := make([]string, 0, len(envMap))
	for _, k := range sortedKeys(envMap) {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
