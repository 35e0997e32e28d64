package observability

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing value
type Counter struct {
	name  string
	value uint64
}

// NewCounter creates a counter
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by one
func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

// Add increments the counter by delta
func (c *Counter) Add(delta int) {
	if delta <= 0 {
		return
	}
	atomic.AddUint64(&c.value, uint64(delta))
}

// Value returns the current count
func (c *Counter) Value() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

// Timer records durations and reports count, total and max
type Timer struct {
	mu    sync.Mutex
	name  string
	count uint64
	total time.Duration
	max   time.Duration
}

// NewTimer creates a timer
func NewTimer(name string) *Timer {
	return &Timer{name: name}
}

// Observe records one duration
func (t *Timer) Observe(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
	t.total += d
	if d > t.max {
		t.max = d
	}
}

// Since records the time elapsed since start
func (t *Timer) Since(start time.Time) {
	t.Observe(time.Since(start))
}

// Count returns the number of observations
func (t *Timer) Count() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Max returns the longest observation
func (t *Timer) Max() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.max
}

// Mean returns the average observation, rounded to the millisecond
func (t *Timer) Mean() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return 0
	}
	mean := float64(t.total) / float64(t.count)
	return time.Duration(math.Round(mean/float64(time.Millisecond))) * time.Millisecond
}

// ScanMetrics groups the counters recorded while collecting windows
type ScanMetrics struct {
	Windows  *Counter
	Failures *Counter
	Commits  *Counter
	Latency  *Timer
}

// NewScanMetrics creates an empty set of scan metrics
func NewScanMetrics() *ScanMetrics {
	return &ScanMetrics{
		Windows:  NewCounter("windows_retrieved"),
		Failures: NewCounter("windows_failed"),
		Commits:  NewCounter("commits_parsed"),
		Latency:  NewTimer("window_latency"),
	}
}

// Fields renders the metrics as log fields
func (m *ScanMetrics) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	for _, c := range []*Counter{m.Windows, m.Failures, m.Commits} {
		fields[c.Name()] = c.Value()
	}
	fields[m.Latency.name+"_count"] = m.Latency.Count()
	fields[m.Latency.name+"_mean"] = m.Latency.Mean().String()
	fields[m.Latency.name+"_max"] = m.Latency.Max().String()
	return fields
}
