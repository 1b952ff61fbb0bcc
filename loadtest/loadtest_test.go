package loadtest

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"pizza-harness/browser"
	"pizza-harness/dtos"
	"pizza-harness/gateway"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	color.NoColor = true
}

type offline struct{}

func (offline) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("offline")
}

// mockClients gives every virtual user its own page and gateway.
func mockClients(t *testing.T, scenario dtos.Scenario) ClientFactory {
	return func(vu int) (*http.Client, func(), error) {
		page, err := browser.NewPage("http://pizza.test", browser.WithFallback(offline{}))
		if err != nil {
			return nil, nil, err
		}
		g, err := gateway.New(scenario, gateway.WithReporter(t))
		if err != nil {
			return nil, nil, err
		}
		if err := g.Install(page); err != nil {
			return nil, nil, err
		}
		return page.Client(), page.Close, nil
	}
}

func TestParseStages(t *testing.T) {
	stages, err := ParseStages("10s:10, 30s:10,10s:0")
	require.NoError(t, err)
	assert.Equal(t, DefaultStages(), stages)
	assert.Equal(t, 50*time.Second, TotalDuration(stages))
}

func TestParseStagesErrors(t *testing.T) {
	for _, in := range []string{"", "10s", "ten:1", "10s:-1", "0s:3", "10s:x"} {
		_, err := ParseStages(in)
		assert.ErrorIs(t, err, ErrInvalidStages, "input %q", in)
	}
}

func TestTargetAt(t *testing.T) {
	stages := DefaultStages()

	assert.Equal(t, 0, TargetAt(stages, 0))
	assert.Equal(t, 5, TargetAt(stages, 5*time.Second))
	assert.Equal(t, 10, TargetAt(stages, 10*time.Second))
	assert.Equal(t, 10, TargetAt(stages, 25*time.Second))
	assert.Equal(t, 5, TargetAt(stages, 45*time.Second))
	assert.Equal(t, 0, TargetAt(stages, time.Minute))
}

func TestLoginAndOrderAgainstMock(t *testing.T) {
	client, release, err := mockClients(t, dtos.Scenario{})(1)
	require.NoError(t, err)
	defer release()

	summary := NewSummary()
	err = LoginAndOrder(context.Background(), VU{
		ID:         1,
		Client:     client,
		BaseURL:    "http://pizza.test/",
		FactoryURL: "http://factory.test",
		Summary:    summary,
	})
	require.NoError(t, err)

	checks := summary.Checks()
	require.Len(t, checks, 9)
	for _, c := range checks {
		assert.Equal(t, int64(1), c.Passes, c.Name)
		assert.Equal(t, int64(0), c.Fails, c.Name)
	}
	assert.False(t, summary.Failed())
}

func TestLoginAndOrderRecordsOrderFailure(t *testing.T) {
	client, release, err := mockClients(t, dtos.Scenario{
		OrderError: &dtos.OrderError{Status: http.StatusPaymentRequired, Message: "Payment declined"},
	})(1)
	require.NoError(t, err)
	defer release()

	summary := NewSummary()
	require.NoError(t, LoginAndOrder(context.Background(), VU{ID: 1, Client: client, BaseURL: "http://pizza.test", FactoryURL: "http://pizza.test", Summary: summary}))

	byName := map[string]Check{}
	for _, c := range summary.Checks() {
		byName[c.Name] = c
	}
	assert.Equal(t, int64(1), byName[CheckOrder].Fails)
	assert.Equal(t, int64(1), byName[CheckPizzaJWT].Fails)
	assert.Equal(t, int64(1), byName[CheckLogin].Passes)
	assert.True(t, summary.Failed())
}

func TestLoginAndOrderReportsTransportErrors(t *testing.T) {
	summary := NewSummary()
	err := LoginAndOrder(context.Background(), VU{
		Client:     &http.Client{Transport: offline{}},
		BaseURL:    "http://pizza.test",
		FactoryURL: "http://pizza.test",
		Summary:    summary,
	})
	require.Error(t, err)
	assert.Equal(t, []Check{{Name: CheckRegister, Fails: 1}}, summary.Checks())
}

func TestRunRampsVirtualUsers(t *testing.T) {
	stages := []Stage{
		{Duration: 150 * time.Millisecond, Target: 3},
		{Duration: 150 * time.Millisecond, Target: 0},
	}
	summary, err := Run(context.Background(), Options{
		BaseURL:   "http://pizza.test",
		Stages:    stages,
		ThinkTime: 10 * time.Millisecond,
		NewClient: mockClients(t, dtos.Scenario{}),
		Tick:      10 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Greater(t, summary.Iterations(), int64(0))
	assert.False(t, summary.Failed(), "unexpected failures: %+v", summary.Checks())

	var out bytes.Buffer
	summary.Print(&out)
	assert.Contains(t, out.String(), "✓ "+CheckPizzaValid)
	assert.Contains(t, out.String(), "vus_max........: 3")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := Run(ctx, Options{
		BaseURL:   "http://pizza.test",
		Stages:    []Stage{{Duration: time.Hour, Target: 2}},
		NewClient: mockClients(t, dtos.Scenario{}),
		Tick:      10 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunRequiresClientFactory(t *testing.T) {
	_, err := Run(context.Background(), Options{Stages: DefaultStages()})
	assert.Error(t, err)
}

func TestSummaryPrintShowsFailures(t *testing.T) {
	s := NewSummary()
	s.Record("Login successful (200)", true)
	s.Record("Login successful (200)", false)

	var out bytes.Buffer
	s.Print(&out)
	assert.Contains(t, out.String(), "✗ Login successful (200)")
	assert.Contains(t, out.String(), "50% — ✓ 1 / ✗ 1")
}
