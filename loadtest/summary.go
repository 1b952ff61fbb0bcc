package loadtest

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Check is the tally of one named check across all iterations.
type Check struct {
	Name   string
	Passes int64
	Fails  int64
}

// Summary collects the outcome of a run. It is safe for concurrent use.
type Summary struct {
	mu         sync.Mutex
	checks     map[string]*Check
	order      []string
	iterations int64
	errors     int64
	maxVUs     int
	duration   time.Duration
}

func NewSummary() *Summary {
	return &Summary{checks: make(map[string]*Check)}
}

func (s *Summary) Record(name string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.checks[name]
	if !exists {
		c = &Check{Name: name}
		s.checks[name] = c
		s.order = append(s.order, name)
	}
	if ok {
		c.Passes++
	} else {
		c.Fails++
	}
}

func (s *Summary) iterationDone(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iterations++
	if err != nil {
		s.errors++
	}
}

func (s *Summary) observeVUs(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.maxVUs {
		s.maxVUs = n
	}
}

func (s *Summary) finish(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = d
}

// Checks returns the checks in the order they were first recorded.
func (s *Summary) Checks() []Check {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Check, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.checks[name])
	}
	return out
}

func (s *Summary) Iterations() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iterations
}

// Failed reports whether any check failed or any iteration errored.
func (s *Summary) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errors > 0 {
		return true
	}
	for _, c := range s.checks {
		if c.Fails > 0 {
			return true
		}
	}
	return false
}

// Print writes a k6-style report of the run to w.
func (s *Summary) Print(w io.Writer) {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	dim := color.New(color.Faint)

	for _, c := range s.Checks() {
		total := c.Passes + c.Fails
		if c.Fails == 0 {
			pass.Fprintf(w, "     ✓ %s\n", c.Name)
			continue
		}
		fail.Fprintf(w, "     ✗ %s\n", c.Name)
		dim.Fprintf(w, "      ↳  %d%% — ✓ %d / ✗ %d\n", c.Passes*100/total, c.Passes, c.Fails)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(w, "\n     iterations.....: %d\n", s.iterations)
	fmt.Fprintf(w, "     errors.........: %d\n", s.errors)
	fmt.Fprintf(w, "     vus_max........: %d\n", s.maxVUs)
	fmt.Fprintf(w, "     duration.......: %s\n", s.duration.Round(time.Millisecond))
}
