package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pizza-harness/browser"
	"pizza-harness/config"
	"pizza-harness/dtos"
	"pizza-harness/gateway"
	"pizza-harness/loadtest"

	"github.com/gin-gonic/gin"
)

// offline fails any request that reaches it; in mock mode nothing may leave
// the process.
type offline struct{}

func (offline) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		req.Body.Close()
	}
	return nil, fmt.Errorf("no mock route for %s %s", req.Method, req.URL)
}

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to read configuration: ", err)
	}
	if err := config.ValidateEnv(cfg); err != nil {
		log.Fatal("Environment validation failed: ", err)
	}

	stages, err := cfg.LoadStages()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	newClient := loadtest.SharedClient(http.DefaultClient)
	if cfg.Mock {
		var scenario dtos.Scenario
		if cfg.ScenarioFile != "" {
			scenario, err = dtos.LoadScenario(cfg.ScenarioFile)
			if err != nil {
				log.Fatal(err)
			}
		}
		newClient = mockClients(cfg, scenario)
		log.Printf("Running against the mock gateway (%s)", cfg.BaseURL)
	} else {
		log.Printf("Running against %s (factory %s)", cfg.BaseURL, cfg.FactoryURL)
	}

	// Stop early on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := loadtest.Run(ctx, loadtest.Options{
		BaseURL:    cfg.BaseURL,
		FactoryURL: cfg.FactoryURL,
		Stages:     stages,
		ThinkTime:  cfg.ThinkTime,
		NewClient:  newClient,
	})
	if summary != nil {
		summary.Print(os.Stdout)
	}
	if err != nil {
		log.Fatal("Load test failed: ", err)
	}
	if summary.Failed() {
		os.Exit(1)
	}
}

// mockClients gives every virtual user its own page and gateway session.
func mockClients(cfg config.Config, scenario dtos.Scenario) loadtest.ClientFactory {
	opts := []gateway.Option{
		gateway.WithLatency(cfg.MockLatency),
		gateway.WithAllowedOrigins(cfg.FrontendURL),
		gateway.WithDebug(cfg.Debug),
	}
	if cfg.JWTSecret != "" {
		opts = append(opts, gateway.WithSigningSecret(cfg.JWTSecret))
	}

	return func(vu int) (*http.Client, func(), error) {
		page, err := browser.NewPage(cfg.BaseURL, browser.WithFallback(offline{}))
		if err != nil {
			return nil, nil, err
		}
		g, err := gateway.New(scenario, opts...)
		if err != nil {
			page.Close()
			return nil, nil, fmt.Errorf("gateway for vu %d: %w", vu, err)
		}
		if err := g.Install(page); err != nil {
			page.Close()
			return nil, nil, err
		}
		return page.Client(), page.Close, nil
	}
}
