package metrics

import (
	"runtime"
	"sync"
	"time"
)

// StageTiming is the wall time spent in one named stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// RunSummary describes a finished run.
type RunSummary struct {
	Outcome       string
	Elapsed       time.Duration
	PeakHeapBytes uint64
	Stages        []StageTiming
}

// Probe times one pipeline run and tracks the highest heap allocation seen at
// its stage boundaries. A Probe is scoped to a single run; Stop publishes the
// results to its Manager and is safe to call more than once.
type Probe struct {
	m   *Manager
	now func() time.Time

	mu      sync.Mutex
	start   time.Time
	last    time.Time
	peak    uint64
	stages  []StageTiming
	stopped bool
	summary RunSummary
}

// StartProbe starts a probe reporting to the global manager.
func StartProbe() *Probe {
	return globalManager.StartProbe()
}

// StartProbe starts a probe reporting to m.
func (m *Manager) StartProbe() *Probe {
	p := &Probe{m: m, now: time.Now}
	p.start = p.now()
	p.last = p.start
	p.sample()
	return p
}

// Mark closes the current stage under the given name and starts the next one.
func (p *Probe) Mark(stage string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return 0
	}
	now := p.now()
	d := now.Sub(p.last)
	p.last = now
	p.stages = append(p.stages, StageTiming{Stage: stage, Duration: d})
	p.sample()
	p.m.ObserveStage(stage, d)
	return d
}

// Stop ends the run with the given outcome. Later calls return the first summary.
func (p *Probe) Stop(outcome string) RunSummary {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return p.summary
	}
	p.stopped = true
	p.sample()
	p.summary = RunSummary{
		Outcome:       outcome,
		Elapsed:       p.now().Sub(p.start),
		PeakHeapBytes: p.peak,
		Stages:        append([]StageTiming(nil), p.stages...),
	}
	p.m.RecordRun(outcome, p.summary.Elapsed)
	p.m.SetPeakHeap(p.peak)
	return p.summary
}

// sample reads the live heap; callers hold p.mu.
func (p *Probe) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	if ms.HeapAlloc > p.peak {
		p.peak = ms.HeapAlloc
	}
}
