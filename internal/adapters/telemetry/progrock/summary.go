package progrock

import (
	"sort"
	"sync"

	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Summary)(nil)

// Counts tallies vertex outcomes.
type Counts struct {
	Total   int
	Cached  int
	Failed  int
	Running int
}

// Summary is a progrock.Writer that tracks the latest state of every vertex and forwards
// updates to an optional next writer.
type Summary struct {
	mu       sync.Mutex
	next     progrock.Writer
	vertices map[string]vertexState
}

// vertexState is copied out of each update; progrock keeps mutating the vertices it sends.
type vertexState struct {
	name      string
	cached    bool
	completed bool
	failed    bool
}

// NewSummary creates a Summary forwarding to next, which may be nil.
func NewSummary(next progrock.Writer) *Summary {
	return &Summary{
		next:     next,
		vertices: make(map[string]vertexState),
	}
}

// WriteStatus records the vertex updates and forwards the status.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	for _, v := range update.Vertexes {
		s.vertices[v.Id] = vertexState{
			name:      v.Name,
			cached:    v.Cached,
			completed: v.Completed != nil,
			failed:    v.Error != nil,
		}
	}
	s.mu.Unlock()

	if s.next != nil {
		return s.next.WriteStatus(update)
	}
	return nil
}

// Close closes the next writer.
func (s *Summary) Close() error {
	if s.next != nil {
		return s.next.Close()
	}
	return nil
}

// Counts returns the outcome tally of internal and external vertices alike.
func (s *Summary) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c Counts
	for _, v := range s.vertices {
		c.Total++
		switch {
		case v.failed:
			c.Failed++
		case v.cached:
			c.Cached++
		case !v.completed:
			c.Running++
		}
	}
	return c
}

// Failed returns the names of failed vertices in sorted order.
func (s *Summary) Failed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	for _, v := range s.vertices {
		if v.failed {
			names = append(names, v.name)
		}
	}
	sort.Strings(names)
	return names
}
