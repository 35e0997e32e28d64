package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:   DebugLevel,
		Output:  &buf,
		Service: "test-service",
		Version: "1.0.0",
		Encoder: NewJSONEncoder(false),
	})

	logger.Infof("collected %d commits", 4)

	var entry LogEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "collected 4 commits", entry.Message)
	assert.Equal(t, "test-service", entry.Service)
	assert.Equal(t, "INFO", entry.Level)
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: InfoLevel, Output: &buf})

	logger.WithField("window", 3).
		WithError(errors.New("exit status 128")).
		WarnWithFields("window failed", nil)

	assert.Equal(t, "WARN  window failed error=exit status 128 window=3\n", buf.String())
}

func TestLoggerChildDoesNotLeakFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: InfoLevel, Output: &buf})

	_ = logger.WithField("branch", "master")
	logger.Infof("plain")

	assert.Equal(t, "INFO  plain\n", buf.String())
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: WarnLevel, Output: &buf})

	logger.DebugWithFields("hidden", nil)
	logger.Infof("hidden")
	logger.WarnWithFields("shown", nil)
	logger.Error("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, WarnLevel, logger.Level())

	buf.Reset()
	debug := NewLogger(LoggerConfig{Level: DebugLevel, Output: &buf})
	debug.DebugWithFields("window", map[string]interface{}{"offset": 0})
	assert.Equal(t, "DEBUG window offset=0\n", buf.String())
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing")
	assert.Equal(t, Silent, logger.Level())
}

func TestEncoderFromString(t *testing.T) {
	enc, ok := EncoderFromString("")
	require.True(t, ok)
	assert.IsType(t, TextEncoder{}, enc)

	enc, ok = EncoderFromString("JSON")
	require.True(t, ok)
	assert.IsType(t, &JSONEncoder{}, enc)

	_, ok = EncoderFromString("xml")
	assert.False(t, ok)
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, DebugLevel, LogLevelFromString("debug"))
	assert.Equal(t, InfoLevel, LogLevelFromString("INFO"))
	assert.Equal(t, WarnLevel, LogLevelFromString("warning"))
	assert.Equal(t, ErrorLevel, LogLevelFromString("error"))
	assert.Equal(t, Silent, LogLevelFromString("off"))
	assert.Equal(t, WarnLevel, LogLevelFromString("bogus"))
}

func TestLoggerConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: InfoLevel, Output: &buf})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.WithField("i", i).Infof("line")
		}(i)
	}
	wg.Wait()

	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 20)
}

func TestScanMetrics(t *testing.T) {
	m := NewScanMetrics()
	m.Windows.Inc()
	m.Windows.Inc()
	m.Failures.Inc()
	m.Commits.Add(5)
	m.Commits.Add(-1)
	m.Latency.Observe(10 * time.Millisecond)
	m.Latency.Observe(30 * time.Millisecond)

	fields := m.Fields()
	assert.Equal(t, uint64(2), fields["windows_retrieved"])
	assert.Equal(t, uint64(1), fields["windows_failed"])
	assert.Equal(t, uint64(5), fields["commits_parsed"])
	assert.Equal(t, "20ms", fields["window_latency_mean"])
	assert.Equal(t, "30ms", fields["window_latency_max"])
	assert.Equal(t, uint64(2), fields["window_latency_count"])
	assert.Len(t, fields, 6)
}
