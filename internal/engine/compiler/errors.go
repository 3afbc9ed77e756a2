package compiler

import (
	"sync/atomic"

	"go.trai.ch/weave/internal/core/ports"
)

// errorChannelCapacity bounds the number of undrained per-module errors.
const errorChannelCapacity = 1024

// errorSink collects per-module errors from concurrent tasks through a bounded channel.
// Sends never block: when the channel is full the error is counted as dropped.
type errorSink struct {
	ch        chan error
	done      chan struct{}
	logger    ports.Logger
	dropped   atomic.Int64
	collected []error
}

func newErrorSink(capacity int, logger ports.Logger) *errorSink {
	return &errorSink{
		ch:     make(chan error, capacity),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// start drains the channel until close is called.
func (s *errorSink) start() {
	go func() {
		defer close(s.done)
		for err := range s.ch {
			s.collected = append(s.collected, err)
		}
	}()
}

func (s *errorSink) report(err error) {
	select {
	case s.ch <- err:
		s.logger.Debug("module failed", "error", err.Error())
	default:
		s.dropped.Add(1)
		s.logger.Warn("error channel full, dropping build error", "error", err.Error())
	}
}

// close stops accepting errors and returns everything collected.
// It must be called once, after every reporter has returned.
func (s *errorSink) close() ([]error, int64) {
	close(s.ch)
	<-s.done
	return s.collected, s.dropped.Load()
}
