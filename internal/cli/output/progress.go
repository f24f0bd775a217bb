package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar shows completed work out of a known total.
// It is safe for concurrent use by bench workers.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int
	current int
	width   int
	mu      sync.Mutex
}

// NewProgressBar creates a progress bar for total units of work.
func NewProgressBar(w io.Writer, title string, total int) *ProgressBar {
	return &ProgressBar{
		w:     w,
		title: title,
		total: total,
		width: 30,
	}
}

// Increment marks one more unit done.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total <= 0 || p.current < p.total {
		p.current++
	}
	p.render()
}

// Finish ends the bar with a newline.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render()
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) render() {
	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r%s %d", p.title, p.current)
		return
	}

	filled := p.width * p.current / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Fprintf(p.w, "\r%s [%s] %3d%% (%d/%d)",
		p.title, bar, 100*p.current/p.total, p.current, p.total)
}
