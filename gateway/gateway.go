// Package gateway is the mock pizza API used by browser-driven tests. A
// Gateway simulates the auth, menu, franchise, order, docs and verification
// endpoints for one page session, serving scenario fixtures and keeping the
// logged-in user in memory.
//
// Each session gets its own Gateway; gateways share no state, so tests using
// them can run in parallel.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"pizza-harness/dtos"
	"pizza-harness/fixtures"
	"pizza-harness/models"
	"pizza-harness/routes"
	"pizza-harness/utils"

	"github.com/gin-gonic/gin"
)

// Page is the browser session a gateway is installed into.
type Page interface {
	// Route sends every request whose path matches pattern to handler.
	Route(pattern *regexp.Regexp, handler http.Handler) error
	// AddInitScript runs script in every document before the page's own scripts.
	AddInitScript(script string) error
	Goto(ctx context.Context, url string) error
}

// ShimScript stubs the page globals of the UI toolkit the application expects
// at load time, so modals open without the real library.
const ShimScript = `window.HSOverlay = window.HSOverlay ?? {
  open: (element) => { element.classList.remove('hidden'); },
};
window.HSStaticMethods = window.HSStaticMethods ?? { autoInit: () => {} };`

type options struct {
	reporter     utils.Reporter
	tokens       utils.TokenIssuer
	latency      time.Duration
	allowOrigins []string
	debug        bool
}

type Option func(*options)

// WithReporter sends test-authoring defects, such as a wrong method on a
// read-only endpoint, to rep. Pass the test's *testing.T to fail it.
func WithReporter(rep utils.Reporter) Option {
	return func(o *options) { o.reporter = rep }
}

// WithSigningSecret makes login and registration issue signed JWTs instead
// of the fixed tokens.
func WithSigningSecret(secret string) Option {
	return func(o *options) { o.tokens.Secret = secret }
}

// WithLatency delays every response by d.
func WithLatency(d time.Duration) Option {
	return func(o *options) { o.latency = d }
}

// WithAllowedOrigins restricts CORS to the given origins. By default any
// origin is allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) { o.allowOrigins = origins }
}

// WithDebug logs every request and every failure response.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// Gateway is the mock backend of one session.
type Gateway struct {
	session *utils.Session
	engine  *gin.Engine
}

// New creates a gateway for scenario. The scenario is read, never modified.
func New(scenario dtos.Scenario, opts ...Option) (*Gateway, error) {
	o := options{reporter: utils.LogReporter{}}
	for _, opt := range opts {
		opt(&o)
	}

	set := fixtures.Select(scenario)
	session, err := utils.NewSession(set.Users)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	table := routes.NewTable(routes.Deps{
		Scenario: scenario,
		Fixtures: set,
		Session:  session,
		Tokens:   o.tokens,
		Reporter: o.reporter,
	})
	engine := routes.NewEngine(routes.EngineConfig{
		AllowOrigins: o.allowOrigins,
		Latency:      o.latency,
		Debug:        o.debug,
	}, table)

	return &Gateway{session: session, engine: engine}, nil
}

// ServeHTTP answers one intercepted request.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.engine.ServeHTTP(w, r)
}

// CurrentUser returns the logged-in user, if any.
func (g *Gateway) CurrentUser() (models.User, bool) {
	return g.session.CurrentUser()
}

// Install registers the gateway's interceptors and the page shims on page.
func (g *Gateway) Install(page Page) error {
	if err := page.AddInitScript(ShimScript); err != nil {
		return fmt.Errorf("add init script: %w", err)
	}
	for _, pattern := range routes.InterceptPatterns {
		if err := page.Route(pattern, g); err != nil {
			return fmt.Errorf("route %s: %w", pattern, err)
		}
	}
	return nil
}

// BasicInit installs a new gateway for scenario into page and navigates the
// page to its start URL.
func BasicInit(ctx context.Context, page Page, scenario dtos.Scenario, opts ...Option) (*Gateway, error) {
	g, err := New(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := g.Install(page); err != nil {
		return nil, err
	}
	if err := page.Goto(ctx, "/"); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	return g, nil
}
