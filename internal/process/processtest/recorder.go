// Package processtest provides a scripted process.Runner for tests.
package processtest

import (
	"context"
	"sync"

	"ftpprobe/internal/process"
)

// Call is one recorded invocation.
type Call struct {
	Command process.Command
	Check   bool
}

// Response is what the recorder returns for a matching command.
type Response struct {
	Output string
	Err    error
}

// Recorder records every command it is asked to run and answers from a
// list of rules. The first rule whose matcher accepts the command wins; with
// no match the output is empty and the error nil.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	rules []rule
}

type rule struct {
	match   func(process.Command) bool
	respond func(process.Command) Response
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// On registers a static response for commands accepted by match.
func (r *Recorder) On(match func(process.Command) bool, resp Response) *Recorder {
	return r.OnFunc(match, func(process.Command) Response { return resp })
}

// OnFunc registers a dynamic response for commands accepted by match.
func (r *Recorder) OnFunc(match func(process.Command) bool, respond func(process.Command) Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{match: match, respond: respond})
	return r
}

// Run implements process.Runner.
func (r *Recorder) Run(_ context.Context, cmd process.Command, check bool) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Command: cmd, Check: check})
	rules := append([]rule(nil), r.rules...)
	r.mu.Unlock()

	for _, ru := range rules {
		if ru.match(cmd) {
			resp := ru.respond(cmd)
			return resp.Output, resp.Err
		}
	}
	return "", nil
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Lines returns the recorded commands rendered with Command.String.
func (r *Recorder) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Command.String()
	}
	return lines
}

// Any matches every command.
func Any(process.Command) bool { return true }

// Name matches commands by program name.
func Name(name string) func(process.Command) bool {
	return func(c process.Command) bool { return c.Name == name }
}

// LastArg matches commands whose final argument equals s.
func LastArg(s string) func(process.Command) bool {
	return func(c process.Command) bool {
		return len(c.Args) > 0 && c.Args[len(c.Args)-1] == s
	}
}
