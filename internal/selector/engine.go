package selector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fyntora/fyn/internal/models"
)

// Console is the line-oriented user channel the engine talks through
type Console interface {
	Printf(format string, a ...any)
	Warnf(format string, a ...any)
	// ReadLine shows prompt and blocks for one line; io.EOF ends the input
	ReadLine(prompt string) (string, error)
}

// Outcome is the terminal state of a selection
type Outcome struct {
	State   State
	Package models.Package
	Index   int
}

// Engine drives a Session over a Console
type Engine struct {
	console Console
}

// NewEngine creates an engine reading from and writing to console
func NewEngine(console Console) *Engine {
	return &Engine{console: console}
}

// Select resolves query against packages. An exact name match is returned
// without prompting; otherwise the user pages through the list until they
// pick a package or cancel.
func (e *Engine) Select(query string, packages []models.Package) (Outcome, error) {
	if len(packages) == 0 {
		return Outcome{}, models.NewError(models.ErrNotFound, query, fmt.Errorf("package '%s' not found", query))
	}

	session := NewSession(query, packages)

	if i, ok := session.ExactMatch(); ok {
		e.console.Printf("Found exact match: %s\n", packages[i].Label())
		return Outcome{State: StateExactMatch, Package: packages[i], Index: i}, nil
	}

	e.console.Printf("Found %d matching package(s):\n\n", len(packages))

	redraw := true
	for {
		if redraw {
			e.render(session, packages)
			redraw = false
		}

		input, err := e.console.ReadLine(session.Prompt())
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return Outcome{State: StateCancelled}, nil
			}
			return Outcome{}, err
		}

		t := session.Handle(input)
		switch t.State {
		case StateCancelled:
			return Outcome{State: StateCancelled}, nil
		case StateSelected:
			return Outcome{State: StateSelected, Package: packages[t.Index], Index: t.Index}, nil
		}

		if t.Notice != "" {
			e.console.Warnf("%s\n", t.Notice)
		}
		if t.PageChanged {
			e.console.Printf("\n")
			redraw = true
		}
	}
}

// render lists the current page with 1-based labels that continue across pages
func (e *Engine) render(s *Session, packages []models.Package) {
	start, end := s.Bounds()
	for i := start; i < end; i++ {
		e.console.Printf("[%d] %s\n", i+1, packages[i].Label())
		e.console.Printf("    %s\n", packages[i].Description)
	}
	e.console.Printf("\n")
}
