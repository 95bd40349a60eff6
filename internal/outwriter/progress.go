package outwriter

import (
	"fmt"
	"io"
	"sync"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/schollz/progressbar/v3"
)

// ProgressObserver renders analysis progress as a terminal progress bar.
// It is safe for concurrent use.
type ProgressObserver struct {
	mu          sync.Mutex
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

var _ contract.Observer = &ProgressObserver{} // Compile-time check

// NewProgressObserver returns an observer that draws onto w.
func NewProgressObserver(w io.Writer, description string) *ProgressObserver {
	if w == nil {
		w = io.Discard
	}
	return &ProgressObserver{w: w, description: description}
}

// OnStart creates the bar. A negative total renders a spinner.
func (p *ProgressObserver) OnStart(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w := p.w
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(p.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// OnUnitProcessed advances the bar by one.
func (p *ProgressObserver) OnUnitProcessed(string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// OnFinish completes the bar.
func (p *ProgressObserver) OnFinish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
