// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/fyntora/fyn/internal/runner"
)

// Response is the canned outcome of one command
type Response struct {
	Result *runner.Result
	Err    error
	// Do runs before the response is returned, e.g. to create a clone
	// directory the way git would.
	Do func(cmd runner.Command)
}

// Exit returns a Response with the given exit code
func Exit(code int) Response {
	return Response{Result: &runner.Result{ExitCode: code}}
}

// Output returns a successful Response with captured stdout
func Output(stdout string) Response {
	return Response{Result: &runner.Result{Stdout: stdout}}
}

// Runner replays responses keyed by program name, in call order.
// Calls without a scripted response succeed with exit code 0.
type Runner struct {
	mu        sync.Mutex
	responses map[string][]Response
	Calls     []runner.Command
}

// New creates an empty scripted runner
func New() *Runner {
	return &Runner{responses: make(map[string][]Response)}
}

// On queues a response for the next call of the named program
func (r *Runner) On(name string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[name] = append(r.responses[name], resp)
	return r
}

// Run records cmd and returns the next scripted response
func (r *Runner) Run(_ context.Context, cmd runner.Command) (*runner.Result, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, cmd)
	queue := r.responses[cmd.Name]
	var resp Response
	if len(queue) > 0 {
		resp = queue[0]
		r.responses[cmd.Name] = queue[1:]
	} else {
		resp = Exit(0)
	}
	r.mu.Unlock()

	if resp.Do != nil {
		resp.Do(cmd)
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("runnertest: empty response for %s", cmd.Name)
	}
	return resp.Result, nil
}

// CallsTo returns the recorded invocations of one program
func (r *Runner) CallsTo(name string) []runner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	var calls []runner.Command
	for _, c := range r.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}
