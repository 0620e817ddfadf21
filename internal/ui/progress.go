package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress reports search sources as they complete
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress creates a bar of total steps written to w
func NewProgress(total int, w io.Writer) *Progress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Searching"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// Step marks one source as done
func (p *Progress) Step(name string, count int) {
	p.bar.Describe(fmt.Sprintf("Searched %s (%d)", name, count))
	_ = p.bar.Add(1)
}

// Done clears the bar
func (p *Progress) Done() {
	_ = p.bar.Finish()
}
