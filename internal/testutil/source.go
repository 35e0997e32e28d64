package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gitoutofhours/pkg/models"
)

// Reply is what MockSource returns for one window offset
type Reply struct {
	Text string
	Err  error
}

// MockSource is a log source answering per window offset. It records the
// windows and branches it was asked for and the peak concurrency.
type MockSource struct {
	mu       sync.Mutex
	Replies  map[int]Reply
	Delay    time.Duration
	windows  []models.DayWindow
	branches []string
	inFlight int32
	maxSeen  int32
}

// NewMockSource creates a MockSource with the given replies
func NewMockSource(replies map[int]Reply) *MockSource {
	if replies == nil {
		replies = map[int]Reply{}
	}
	return &MockSource{Replies: replies}
}

// Log returns the reply registered for window.Offset
func (m *MockSource) Log(ctx context.Context, window models.DayWindow, branch string) (string, error) {
	n := atomic.AddInt32(&m.inFlight, 1)
	defer atomic.AddInt32(&m.inFlight, -1)
	for {
		seen := atomic.LoadInt32(&m.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&m.maxSeen, seen, n) {
			break
		}
	}

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = append(m.windows, window)
	m.branches = append(m.branches, branch)
	r := m.Replies[window.Offset]
	return r.Text, r.Err
}

// Calls returns how many retrievals were made
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// Windows returns the windows requested, in call order
func (m *MockSource) Windows() []models.DayWindow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.DayWindow(nil), m.windows...)
}

// Branches returns the branches requested, in call order
func (m *MockSource) Branches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.branches...)
}

// MaxConcurrent returns the highest number of overlapping retrievals seen
func (m *MockSource) MaxConcurrent() int {
	return int(atomic.LoadInt32(&m.maxSeen))
}

// LogEntry renders one entry in git log --date=iso format. hashChar is
// repeated to form the 40 character hash.
func LogEntry(hashChar, author, date, message string) string {
	email := "dev@example.com"
	if fields := strings.Fields(author); len(fields) > 0 {
		email = strings.ToLower(fields[0]) + "@example.com"
	}
	return fmt.Sprintf("commit %s\nAuthor: %s <%s>\nDate:   %s\n\n    %s\n",
		strings.Repeat(hashChar, 40), author, email, date, message)
}

// LogText joins entries the way git separates them
func LogText(entries ...string) string {
	return strings.Join(entries, "\n")
}
