// Package ui is the interactive side of fyn: styled output, prompts, the
// recipe pager and search progress.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"
)

var (
	warnStyle    = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed, color.OpBold)
	successStyle = color.New(color.FgGreen, color.OpBold)
	headerStyle  = color.New(color.FgCyan, color.OpBold)
)

// Console writes the user conversation and reads answers. Input is read one
// byte at a time so that nothing past the answered line is consumed; child
// processes sharing stdin still see the rest of piped input.
type Console struct {
	in     io.Reader
	out    io.Writer
	styled bool
	pager  Pager
	ctx    context.Context
}

// NewConsole creates a console over in and out. Styles are applied only when
// styled is set.
func NewConsole(in io.Reader, out io.Writer, styled bool) *Console {
	return &Console{
		in:     in,
		out:    out,
		styled: styled,
	}
}

// SetContext makes prompts return ctx.Err() as soon as ctx is done, instead
// of waiting for a line that may never come.
func (c *Console) SetContext(ctx context.Context) {
	c.ctx = ctx
}

// SetPager routes ShowText through p
func (c *Console) SetPager(p Pager) {
	c.pager = p
}

func (c *Console) print(style color.Style, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if c.styled {
		msg = style.Sprint(msg)
	}
	fmt.Fprint(c.out, msg)
}

// Printf writes unstyled text
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Warnf writes a warning
func (c *Console) Warnf(format string, a ...any) {
	c.print(warnStyle, format, a...)
}

// Errorf writes an error message
func (c *Console) Errorf(format string, a ...any) {
	c.print(errorStyle, format, a...)
}

// Successf writes a success message
func (c *Console) Successf(format string, a ...any) {
	c.print(successStyle, format, a...)
}

// Headerf writes a section header
func (c *Console) Headerf(format string, a ...any) {
	c.print(headerStyle, format, a...)
}

// ReadLine prints prompt and returns the next input line without its line
// terminator. io.EOF is returned once input is exhausted. With a context
// set, cancellation interrupts the wait; the pending read is abandoned and
// the console must not be read from again.
func (c *Console) ReadLine(prompt string) (string, error) {
	if c.ctx == nil || c.ctx.Done() == nil {
		fmt.Fprint(c.out, prompt)
		return c.readLine()
	}
	if err := c.ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := c.readLine()
		done <- result{line, err}
	}()

	select {
	case r := <-done:
		// An interrupt wins over a line that arrived after it
		if err := c.ctx.Err(); err != nil {
			fmt.Fprintln(c.out)
			return "", err
		}
		return r.line, r.err
	case <-c.ctx.Done():
		fmt.Fprintln(c.out)
		return "", c.ctx.Err()
	}
}

func (c *Console) readLine() (string, error) {
	var line []byte
	b := make([]byte, 1)
	for {
		n, err := c.in.Read(b)
		if n == 1 {
			if b[0] == '\n' {
				return strings.TrimRight(string(line), "\r"), nil
			}
			line = append(line, b[0])
		}
		if err == io.EOF && len(line) > 0 {
			return strings.TrimRight(string(line), "\r"), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Confirm asks a yes/no question where an empty answer means yes. Only "y"
// and "Y" accept; end of input declines.
func (c *Console) Confirm(prompt string) (bool, error) {
	answer, err := c.ReadLine(prompt)
	if err == io.EOF {
		fmt.Fprintln(c.out)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	answer = strings.TrimSpace(answer)
	return answer == "" || answer == "y" || answer == "Y", nil
}

// ShowText prints text verbatim, or hands it to the pager when one is set
func (c *Console) ShowText(title, text string) {
	if c.pager != nil {
		lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
		err := c.pager.Page(title, lines)
		if err == nil {
			return
		}
		c.Warnf("Pager failed (%v), printing instead\n", err)
	}

	fmt.Fprint(c.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(c.out)
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
