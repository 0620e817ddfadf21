// Package runner starts external programs (pacman, git, makepkg) and waits
// for them to finish.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Mode selects what happens to a child's output
type Mode int

const (
	// ModeCapture collects stdout and stderr into the Result
	ModeCapture Mode = iota
	// ModeStream attaches the child to the runner's stdio
	ModeStream
)

// Command describes one program invocation
type Command struct {
	Name       string
	Args       []string
	Dir        string
	Privileged bool // run through sudo unless already root
	Mode       Mode
}

// String returns the command line for logs and error messages
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of a finished command
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs a command to completion. A non-zero exit status is reported in
// the Result, only a failure to start the program is returned as an error.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExitError reports a command that ran but exited with a non-zero status
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// CheckExit turns a non-zero Result into an *ExitError.
func CheckExit(cmd Command, res *Result) error {
	if res.Success() {
		return nil
	}
	return &ExitError{Command: cmd.String(), Code: res.ExitCode}
}

// Exec runs commands with os/exec
type Exec struct {
	Sudo   string // privilege wrapper, defaults to "sudo"
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	geteuid func() int
}

// NewExec creates a runner attached to the process' stdio
func NewExec(sudo string) *Exec {
	return &Exec{
		Sudo:    sudo,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		geteuid: os.Geteuid,
	}
}

// Run executes cmd and waits for it
func (e *Exec) Run(ctx context.Context, cmd Command) (*Result, error) {
	name, args := e.argv(cmd)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	switch cmd.Mode {
	case ModeStream:
		c.Stdin = e.Stdin
		c.Stdout = e.Stdout
		c.Stderr = e.Stderr
	default:
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	logrus.Debugf("Running %s (dir=%q)", strings.Join(append([]string{name}, args...), " "), cmd.Dir)

	err := c.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		logrus.Debugf("%s exited with status %d", cmd.Name, res.ExitCode)
		return res, nil
	}

	return nil, fmt.Errorf("failed to start %s: %w", cmd.Name, err)
}

// argv applies the privilege wrapper when needed
func (e *Exec) argv(cmd Command) (string, []string) {
	euid := os.Geteuid
	if e.geteuid != nil {
		euid = e.geteuid
	}

	if !cmd.Privileged || euid() == 0 {
		return cmd.Name, cmd.Args
	}

	sudo := e.Sudo
	if sudo == "" {
		sudo = "sudo"
	}
	return sudo, append([]string{cmd.Name}, cmd.Args...)
}
