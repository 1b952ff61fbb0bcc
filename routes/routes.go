package routes

import (
	"log"
	"net/http"
	"regexp"
	"time"

	"pizza-harness/dtos"
	"pizza-harness/fixtures"
	"pizza-harness/handlers"
	"pizza-harness/middleware"
	"pizza-harness/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Route is one row of the route table. An empty Method matches any method.
// Patterns are matched against the request path and are not anchored at the
// start, so the API may live under any prefix.
type Route struct {
	Method  string
	Pattern *regexp.Regexp
	Handler gin.HandlerFunc
}

// Table is evaluated in order; the first matching row handles the request.
type Table []Route

func (t Table) Match(method, path string) (Route, bool) {
	for _, r := range t {
		if (r.Method == "" || r.Method == method) && r.Pattern.MatchString(path) {
			return r, true
		}
	}
	return Route{}, false
}

// Dispatch hands the request to the first matching row.
func (t Table) Dispatch(c *gin.Context) {
	r, ok := t.Match(c.Request.Method, c.Request.URL.Path)
	if !ok {
		c.Set(handlers.FailureKey, handlers.RouteNotFound)
		c.JSON(http.StatusNotFound, gin.H{"message": "No mock route for " + c.Request.Method + " " + c.Request.URL.Path})
		return
	}
	r.Handler(c)
}

// InterceptPatterns are the request paths a page must hand to the gateway.
// Anything else goes to the application under test.
var InterceptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/api/auth$`),
	regexp.MustCompile(`/api/user/me$`),
	regexp.MustCompile(`/api/order/menu$`),
	regexp.MustCompile(`/api/franchise(.*)$`),
	regexp.MustCompile(`/api/order$`),
	regexp.MustCompile(`/api/docs$`),
	regexp.MustCompile(`/api/order/verify$`),
}

// Deps is everything the route handlers of one session read or mutate.
type Deps struct {
	Scenario dtos.Scenario
	Fixtures fixtures.Set
	Session  *utils.Session
	Tokens   utils.TokenIssuer
	Reporter utils.Reporter
}

func route(method, pattern string, h gin.HandlerFunc) Route {
	return Route{Method: method, Pattern: regexp.MustCompile(pattern), Handler: h}
}

// NewTable builds the route table of the mocked pizza service.
func NewTable(d Deps) Table {
	authHandler := &handlers.AuthHandler{
		Session:       d.Session,
		Tokens:        d.Tokens,
		Reporter:      d.Reporter,
		RegisterError: d.Scenario.RegisterError,
	}
	userHandler := &handlers.UserHandler{Session: d.Session}
	menuHandler := &handlers.MenuHandler{Menu: d.Fixtures.Menu}
	franchiseHandler := &handlers.FranchiseHandler{
		List:     d.Fixtures.Franchises,
		Details:  d.Fixtures.FranchiseDetails,
		Reporter: d.Reporter,
	}
	orderHandler := &handlers.OrderHandler{
		History:  d.Fixtures.OrderHistory,
		Response: d.Scenario.OrderResponse,
		Error:    d.Scenario.OrderError,
		Reporter: d.Reporter,
	}
	docsHandler := &handlers.DocsHandler{Docs: d.Fixtures.Docs}
	verifyHandler := &handlers.VerifyHandler{
		Response: d.Fixtures.VerifyResponse,
		Error:    d.Scenario.VerifyError,
	}

	return Table{
		// Auth
		route(http.MethodPost, `/api/auth$`, authHandler.Register),
		route(http.MethodPut, `/api/auth$`, authHandler.Login),
		route(http.MethodDelete, `/api/auth$`, authHandler.Logout),
		route("", `/api/auth$`, authHandler.Unsupported),

		route("", `/api/user/me$`, middleware.RequireMethod(d.Reporter, http.MethodGet, userHandler.Me)),
		route("", `/api/order/menu$`, middleware.RequireMethod(d.Reporter, http.MethodGet, menuHandler.GetMenu)),

		// Franchises
		route(http.MethodGet, `/api/franchise$`, franchiseHandler.ListFranchises),
		route(http.MethodGet, `/api/franchise/.+`, franchiseHandler.GetFranchise),
		route(http.MethodPost, `/api/franchise$`, franchiseHandler.CreateFranchise),
		route(http.MethodPost, `/api/franchise/.+/store$`, franchiseHandler.CreateFranchise),
		route(http.MethodDelete, `/api/franchise/.+/store/.+`, franchiseHandler.Delete),
		route(http.MethodDelete, `/api/franchise/.+`, franchiseHandler.Delete),
		route("", `/api/franchise(.*)$`, franchiseHandler.Unhandled),

		// Orders
		route(http.MethodGet, `/api/order$`, orderHandler.GetOrders),
		route("", `/api/order$`, middleware.RequireMethod(d.Reporter, http.MethodPost, orderHandler.CreateOrder)),
		route("", `/api/order/verify$`, verifyHandler.Verify),

		route("", `/api/docs$`, docsHandler.GetDocs),
	}
}

// EngineConfig controls the gin engine wrapped around a route table.
type EngineConfig struct {
	AllowOrigins []string
	Latency      time.Duration
	Debug        bool
}

// NewEngine returns a gin engine that sends every request through t.
func NewEngine(cfg EngineConfig, t Table) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger(), logFailures())
	}

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(cfg.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))
	r.Use(middleware.Latency(cfg.Latency))

	SetupRoutes(r, t)
	return r
}

func SetupRoutes(r *gin.Engine, t Table) {
	r.Any("/*path", t.Dispatch)
}

func logFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if kind, ok := c.Get(handlers.FailureKey); ok {
			log.Printf("mock gateway: %s %s failed with %s (%d)", c.Request.Method, c.Request.URL.Path, kind, c.Writer.Status())
		}
	}
}
