package loadtest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ClientFactory returns the HTTP client for virtual user vu and a function
// releasing it once the user stops.
type ClientFactory func(vu int) (*http.Client, func(), error)

// SharedClient gives every virtual user the same client.
func SharedClient(c *http.Client) ClientFactory {
	return func(int) (*http.Client, func(), error) {
		return c, func() {}, nil
	}
}

type Options struct {
	BaseURL    string
	FactoryURL string
	Stages     []Stage
	ThinkTime  time.Duration
	NewClient  ClientFactory
	// Tick is how often the number of running users is adjusted. Defaults to 100ms.
	Tick time.Duration
}

type vuHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Run executes LoginAndOrder with a ramping number of virtual users until
// every stage has elapsed or ctx ends. Users stopped by a ramp-down finish
// no further requests.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if len(opts.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidStages)
	}
	if opts.NewClient == nil {
		return nil, errors.New("no client factory")
	}
	if opts.FactoryURL == "" {
		opts.FactoryURL = opts.BaseURL
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}

	summary := NewSummary()
	start := time.Now()
	total := TotalDuration(opts.Stages)

	var (
		running []*vuHandle
		nextID  = 1
		runErr  error
	)
	stopLast := func() {
		h := running[len(running)-1]
		running = running[:len(running)-1]
		h.cancel()
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

loop:
	for {
		elapsed := time.Since(start)
		if elapsed >= total {
			break
		}

		target := TargetAt(opts.Stages, elapsed)
		for len(running) < target {
			h, err := startVU(ctx, opts, nextID, summary)
			if err != nil {
				runErr = err
				break loop
			}
			nextID++
			running = append(running, h)
		}
		for len(running) > target {
			stopLast()
		}
		summary.observeVUs(len(running))

		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}
	}

	handles := append([]*vuHandle(nil), running...)
	for len(running) > 0 {
		stopLast()
	}
	for _, h := range handles {
		<-h.done
	}
	summary.finish(time.Since(start))

	if runErr != nil {
		return summary, runErr
	}
	return summary, nil
}

func startVU(parent context.Context, opts Options, id int, summary *Summary) (*vuHandle, error) {
	client, release, err := opts.NewClient(id)
	if err != nil {
		return nil, fmt.Errorf("client for vu %d: %w", id, err)
	}

	ctx, cancel := context.WithCancel(parent)
	h := &vuHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		defer release()

		for iter := 0; ctx.Err() == nil; iter++ {
			err := LoginAndOrder(ctx, VU{
				ID:         id,
				Iteration:  iter,
				Client:     client,
				BaseURL:    opts.BaseURL,
				FactoryURL: opts.FactoryURL,
				Summary:    summary,
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				log.Printf("vu %d iteration %d: %v", id, iter, err)
			}
			summary.iterationDone(err)

			if !sleep(ctx, opts.ThinkTime) {
				return
			}
		}
	}()
	return h, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
