// Package browser provides an in-process page: a stand-in for a browser tab
// that lets tests intercept the requests an application makes, register init
// scripts and navigate, all over a plain *http.Client.
package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
)

var ErrPageClosed = errors.New("page closed")

// RequestRecord describes one intercepted request and its response status.
type RequestRecord struct {
	Method string
	Path   string
	Status int
}

type interceptor struct {
	pattern *regexp.Regexp
	handler http.Handler
}

// Page routes requests whose path matches a registered pattern to that
// pattern's handler, in registration order, and everything else to the
// fallback transport.
type Page struct {
	baseURL  *url.URL
	fallback http.RoundTripper
	client   *http.Client

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	routes      []interceptor
	initScripts []string
	current     string
	journal     []RequestRecord
}

type Option func(*Page)

// WithFallback sets the transport for requests no route matches. It defaults
// to http.DefaultTransport.
func WithFallback(rt http.RoundTripper) Option {
	return func(p *Page) { p.fallback = rt }
}

// NewPage opens a page whose relative URLs resolve against baseURL.
func NewPage(baseURL string, opts ...Option) (*Page, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{
		baseURL:  u,
		fallback: http.DefaultTransport,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = &http.Client{Transport: &transport{page: p}}
	return p, nil
}

func (p *Page) Route(pattern *regexp.Regexp, handler http.Handler) error {
	if p.ctx.Err() != nil {
		return ErrPageClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes = append(p.routes, interceptor{pattern: pattern, handler: handler})
	return nil
}

func (p *Page) AddInitScript(script string) error {
	if p.ctx.Err() != nil {
		return ErrPageClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initScripts = append(p.initScripts, script)
	return nil
}

// InitScripts returns the registered init scripts in registration order.
func (p *Page) InitScripts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.initScripts...)
}

// Goto loads target, resolved against the base URL, and makes it the current
// URL. Error statuses fail the navigation.
func (p *Page) Goto(ctx context.Context, target string) error {
	ref, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	u := p.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("goto %s: %w", u, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("goto %s: status %d", u, resp.StatusCode)
	}

	p.mu.Lock()
	p.current = u.String()
	p.mu.Unlock()
	return nil
}

// URL returns the URL of the last successful navigation.
func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// BaseURL returns the URL relative navigations resolve against.
func (p *Page) BaseURL() string {
	return p.baseURL.String()
}

// Client returns an HTTP client whose requests go through the page's routes.
func (p *Page) Client() *http.Client {
	return p.client
}

// Requests returns every intercepted request so far.
func (p *Page) Requests() []RequestRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]RequestRecord(nil), p.journal...)
}

// Close tears the page down. In-flight intercepted requests are abandoned and
// later requests fail with ErrPageClosed.
func (p *Page) Close() {
	p.cancel()
}

func (p *Page) match(path string) http.Handler {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, r := range p.routes {
		if r.pattern.MatchString(path) {
			return r.handler
		}
	}
	return nil
}

func (p *Page) record(rec RequestRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.journal = append(p.journal, rec)
}

type transport struct {
	page *Page
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	p := t.page
	if p.ctx.Err() != nil {
		closeBody(req)
		return nil, ErrPageClosed
	}

	handler := p.match(req.URL.Path)
	if handler == nil {
		return p.fallback.RoundTrip(req)
	}
	defer closeBody(req)

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	inner := req.Clone(ctx)
	if inner.Body == nil {
		inner.Body = http.NoBody
	}
	inner.RequestURI = req.URL.RequestURI()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, inner)

	if p.ctx.Err() != nil {
		return nil, ErrPageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := rec.Result()
	resp.Request = req
	p.record(RequestRecord{Method: req.Method, Path: req.URL.Path, Status: resp.StatusCode})
	return resp, nil
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		req.Body.Close()
	}
}
