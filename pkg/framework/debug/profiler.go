package debug

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// BlockProfiler measures audio callback time against the block deadline.
// Record only touches atomics, so it may be called from the audio thread.
type BlockProfiler struct {
	sampleRate float64
	blockSize  int

	count     atomic.Uint64
	total     atomic.Int64
	max       atomic.Int64
	overruns  atomic.Uint64
	threshold float64 // fraction of the deadline counted as an overrun
}

// NewBlockProfiler creates a profiler for the given stream format.
func NewBlockProfiler(sampleRate float64, blockSize int) *BlockProfiler {
	return &BlockProfiler{
		sampleRate: sampleRate,
		blockSize:  blockSize,
		threshold:  0.5,
	}
}

// Deadline returns the wall-clock duration of one block.
func (p *BlockProfiler) Deadline() time.Duration {
	if p.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(p.blockSize) / p.sampleRate * float64(time.Second))
}

// Start begins timing one block.
func (p *BlockProfiler) Start() time.Time {
	return time.Now()
}

// Stop records the block started at start.
func (p *BlockProfiler) Stop(start time.Time) {
	p.Record(time.Since(start))
}

// Record stores one block's processing time.
func (p *BlockProfiler) Record(elapsed time.Duration) {
	p.count.Add(1)
	p.total.Add(int64(elapsed))
	for {
		cur := p.max.Load()
		if int64(elapsed) <= cur || p.max.CompareAndSwap(cur, int64(elapsed)) {
			break
		}
	}
	if d := p.Deadline(); d > 0 && float64(elapsed) > float64(d)*p.threshold {
		p.overruns.Add(1)
	}
}

// Blocks returns the number of recorded blocks.
func (p *BlockProfiler) Blocks() uint64 {
	return p.count.Load()
}

// Overruns returns how many blocks used more than half their deadline.
func (p *BlockProfiler) Overruns() uint64 {
	return p.overruns.Load()
}

// Average returns the mean processing time per block.
func (p *BlockProfiler) Average() time.Duration {
	n := p.count.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(p.total.Load() / int64(n))
}

// Max returns the slowest block.
func (p *BlockProfiler) Max() time.Duration {
	return time.Duration(p.max.Load())
}

// Load returns the average processing time as a percentage of the deadline.
func (p *BlockProfiler) Load() float64 {
	d := p.Deadline()
	if d == 0 {
		return 0
	}
	return float64(p.Average()) / float64(d) * 100
}

// Report summarizes the recorded blocks.
func (p *BlockProfiler) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "blocks=%d avg=%v max=%v deadline=%v load=%.2f%% overruns=%d",
		p.Blocks(), p.Average(), p.Max(), p.Deadline(), p.Load(), p.Overruns())
	return sb.String()
}
