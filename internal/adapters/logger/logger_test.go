package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/adapters/logger"
	"go.trai.ch/weave/internal/core/domain"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = originalStderr }()

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	return output
}

func TestLogger_DefaultsToStderr(t *testing.T) {
	output := captureStderr(t, func() {
		l := logger.New()
		l.Info("graph ready", "modules", 4)
	})

	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "graph ready")
	assert.Contains(t, output, "modules=4")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(domain.LogLevelDebug)
	l.Debug("visible", "module_id", "a.js")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "module_id=a.js")

	buf.Reset()
	l.SetLevel(domain.LogLevelError)
	l.Warn("suppressed")
	assert.Empty(t, buf.String())
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "boom")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)
	l.Configure(domain.LogConfig{Level: "debug", JSON: true})

	l.Debug("module built", "module_id", "a.js", "dependencies", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "module built", record["msg"])
	assert.Equal(t, "a.js", record["module_id"])
	assert.InDelta(t, 2, record["dependencies"], 0)

	buf.Reset()
	l.SetJSON(false)
	l.Info("plain")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf safeBuffer
	l := logger.New()
	l.SetOutput(&buf)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				l.SetLevel(domain.LogLevelInfo)
			}
			l.Info("tick", "worker", i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, strings.Count(buf.String(), "tick"))
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
