// Package history keeps a time window of measurement results for the host's
// trend view and exports.
package history

import (
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/goohm/pkg/ohmmeter"
)

// History is a FIFO of results ordered oldest first. Removal is based on
// timestamp (time window), not on the number of results.
type History struct {
	window time.Duration

	results []ohmmeter.Result
	mu      sync.RWMutex

	callbacks []func(results []ohmmeter.Result)
	cbMu      sync.RWMutex
}

// Stats summarizes the results in the window. Min, Max and Mean cover the
// results that were not out of range.
type Stats struct {
	Count int
	Open  int
	Min   float32
	Max   float32
	Mean  float32
	Last  ohmmeter.Result
}

// New creates a History keeping results younger than window. A zero window
// keeps everything.
func New(window time.Duration) *History {
	return &History{
		window:  window,
		results: make([]ohmmeter.Result, 0),
	}
}

// Add appends a result, drops the results that fell out of the window and
// notifies the callbacks. The pixel buffer is not kept.
func (h *History) Add(r ohmmeter.Result) {
	r.Pixels = nil

	h.mu.Lock()
	h.results = append(h.results, r)

	cutoff := r.Timestamp.Add(-h.window)
	cutoffIndex := 0
	for i, res := range h.results {
		if res.Timestamp.After(cutoff) {
			cutoffIndex = i
			break
		}
	}
	if cutoffIndex > 0 {
		h.results = h.results[cutoffIndex:]
	}

	results := h.copyLocked()
	h.mu.Unlock()

	h.notifyCallbacks(results)
}

// Results returns a copy of the results in the window.
func (h *History) Results() []ohmmeter.Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.copyLocked()
}

// Len returns the number of results in the window.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.results)
}

// Clear drops every result.
func (h *History) Clear() {
	h.mu.Lock()
	h.results = h.results[:0]
	h.mu.Unlock()

	h.notifyCallbacks(nil)
}

// Stats computes the summary of the current window.
func (h *History) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Summarize(h.results)
}

// Summarize computes Stats over results.
func Summarize(results []ohmmeter.Result) Stats {
	s := Stats{Count: len(results)}
	if len(results) == 0 {
		return s
	}
	s.Last = results[len(results)-1]

	var sum float32
	valid := 0
	s.Min = math32.Inf(1)
	s.Max = math32.Inf(-1)
	for _, r := range results {
		if r.OutOfRange {
			s.Open++
			continue
		}
		valid++
		sum += r.Reading.Resistance
		s.Min = math32.Min(s.Min, r.Reading.Resistance)
		s.Max = math32.Max(s.Max, r.Reading.Resistance)
	}

	if valid == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	s.Mean = sum / float32(valid)
	return s
}

// OnUpdate registers a callback invoked with a copy of the window after every
// change. The callback should return quickly.
func (h *History) OnUpdate(callback func(results []ohmmeter.Result)) {
	h.cbMu.Lock()
	defer h.cbMu.Unlock()
	h.callbacks = append(h.callbacks, callback)
}

func (h *History) copyLocked() []ohmmeter.Result {
	result := make([]ohmmeter.Result, len(h.results))
	copy(result, h.results)
	return result
}

func (h *History) notifyCallbacks(results []ohmmeter.Result) {
	h.cbMu.RLock()
	callbacks := make([]func([]ohmmeter.Result), len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(results)
		}
	}
}
