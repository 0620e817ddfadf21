package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/term"
)

// Pager displays a block of lines to the user
type Pager interface {
	Page(title string, lines []string) error
}

// TermPager is a scrollable full-screen viewer for terminals
type TermPager struct {
	fd  int
	out io.Writer
}

// NewTermPager creates a pager for the terminal fd. Text that fits the
// screen is written to out directly.
func NewTermPager(fd int, out io.Writer) *TermPager {
	return &TermPager{fd: fd, out: out}
}

// Page shows lines, scrolling only when they overflow the terminal
func (p *TermPager) Page(title string, lines []string) error {
	// Two rows go to the border
	_, height, err := term.GetSize(p.fd)
	if err == nil && len(lines) <= height-2 {
		for _, line := range lines {
			fmt.Fprintln(p.out, line)
		}
		return nil
	}

	app := tview.NewApplication()

	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	textView.SetBorder(true).SetTitle(" " + title + " ")

	// PKGBUILDs are shell; keep brackets from being read as color tags
	fmt.Fprint(tview.ANSIWriter(textView), tview.Escape(strings.Join(lines, "\n")))

	footer := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]Use ↑/↓, PgUp/PgDn, Home/End to scroll. Press 'q' or 'Esc' to continue.[white]")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(textView, 0, 1, true).
		AddItem(footer, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc, tcell.KeyCtrlQ:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	if err := app.SetRoot(flex, true).SetFocus(textView).Run(); err != nil {
		return fmt.Errorf("pager execution failed: %w", err)
	}

	return nil
}
