// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"

	"github.com/gmssl/gmssl-src/internal/runner"
)

// Call is one recorded invocation.
type Call struct {
	Desc    string
	Command runner.Command
}

// Recorder records every command instead of running it. When Hook is set it
// is called for each command and its error is returned.
type Recorder struct {
	Calls []Call
	Hook  func(cmd runner.Command) error
}

var _ runner.Runner = (*Recorder)(nil)

func (r *Recorder) Run(_ context.Context, cmd runner.Command, desc string) error {
	r.Calls = append(r.Calls, Call{Desc: desc, Command: cmd})
	if r.Hook != nil {
		return r.Hook(cmd)
	}
	return nil
}

// Names returns the executable and arguments of each call, joined by
// spaces.
func (r *Recorder) Names() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		s := c.Command.Name
		for _, a := range c.Command.Args {
			s += " " + a
		}
		out = append(out, s)
	}
	return out
}
