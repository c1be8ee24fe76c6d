// Package timing accumulates per-stage durations of the scan loop.
package timing

import (
	"sort"
	"sync"
	"time"
)

// Stats summarizes one stage
type Stats struct {
	Count int
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average duration, zero when nothing was recorded
func (s Stats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

type Tracker struct {
	mu     sync.Mutex
	stages map[string]*Stats
	now    func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		stages: make(map[string]*Stats),
		now:    time.Now,
	}
}

// Start begins timing stage; calling the returned func records it
func (t *Tracker) Start(stage string) func() {
	start := t.now()
	return func() {
		t.Record(stage, t.now().Sub(start))
	}
}

func (t *Tracker) Record(stage string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.stages[stage]
	if !ok {
		s = &Stats{}
		t.stages[stage] = s
	}
	s.Count++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
}

func (t *Tracker) Stats(stage string) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.stages[stage]; ok {
		return *s
	}
	return Stats{}
}

// Fields renders the summary as log fields, keyed "<stage>_mean_ms" and
// "<stage>_max_ms"
func (t *Tracker) Fields() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.stages))
	for name := range t.stages {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]interface{}, len(names)*2)
	for _, name := range names {
		s := t.stages[name]
		fields[name+"_mean_ms"] = float64(s.Mean().Microseconds()) / 1000
		fields[name+"_max_ms"] = float64(s.Max.Microseconds()) / 1000
	}
	return fields
}
