// Package progress renders a single-line progress bar for terminal output.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const defaultWidth = 30

// Bar draws "[=====>    ] done/total (pct%)" on one line, redrawing only when
// the rendered text changes.
type Bar struct {
	mu    sync.Mutex
	w     io.Writer
	width int
	last  string
	drawn bool
}

// NewBar creates a bar writing to w
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w, width: defaultWidth}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Update redraws the bar for done out of total
func (b *Bar) Update(done, total int) {
	line := render(done, total, b.width)

	b.mu.Lock()
	defer b.mu.Unlock()
	if line == b.last {
		return
	}
	b.last = line
	b.drawn = true
	fmt.Fprintf(b.w, "\r%s", line)
}

// Finish ends the bar's line
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

func render(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if done > total {
		done = total
	}
	if done < 0 {
		done = 0
	}

	filled := done * width / total
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat("=", filled))
	if filled < width {
		sb.WriteByte('>')
		sb.WriteString(strings.Repeat(" ", width-filled-1))
	}
	sb.WriteByte(']')
	fmt.Fprintf(&sb, " %d/%d (%d%%)", done, total, done*100/total)
	return sb.String()
}
