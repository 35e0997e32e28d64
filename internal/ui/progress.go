package ui

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// WindowProgress shows how many day windows have been retrieved
type WindowProgress struct {
	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	enabled bool
	done    int
}

// NewWindowProgress creates a progress bar for total windows writing to w.
// When enabled is false every call is a no-op.
func NewWindowProgress(w io.Writer, total int, enabled bool) *WindowProgress {
	p := &WindowProgress{enabled: enabled && total > 0}
	if !p.enabled {
		return p
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("[cyan]Reading history[reset]"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]#[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	return p
}

// Update moves the bar to done windows
func (p *WindowProgress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = done
	if p.enabled {
		_ = p.bar.Set(done)
	}
}

// Done returns the last reported window count
func (p *WindowProgress) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish clears the bar
func (p *WindowProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		_ = p.bar.Finish()
	}
}
