package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pizza-harness/models"

	"github.com/google/uuid"
)

// Names of the checks LoginAndOrder records.
const (
	CheckRegister      = "Register successful (200)"
	CheckLogin         = "Login successful (200)"
	CheckToken         = "Auth token received"
	CheckMenu          = "Menu retrieved (200)"
	CheckFranchises    = "Franchises retrieved (200)"
	CheckOrder         = "Order successful (200)"
	CheckPizzaJWT      = "Pizza JWT received"
	CheckVerifyRequest = "Verification request successful (200)"
	CheckPizzaValid    = "Pizza is valid"
)

// VU is one virtual user running one iteration.
type VU struct {
	ID         int
	Iteration  int
	Client     *http.Client
	BaseURL    string
	FactoryURL string
	Summary    *Summary
}

type orderRequest struct {
	Items       []models.OrderItem `json:"items"`
	StoreID     models.ID          `json:"storeId"`
	FranchiseID models.ID          `json:"franchiseId"`
}

// LoginAndOrder registers a fresh diner, logs in, browses the menu and
// franchises, buys a pizza and verifies its JWT, recording a check for every
// step. It returns an error only when a request could not be made at all.
func LoginAndOrder(ctx context.Context, vu VU) error {
	uniqueID := fmt.Sprintf("%d-%d-%s", vu.ID, vu.Iteration, uuid.NewString()[:8])
	email := fmt.Sprintf("user%s@test.com", uniqueID)
	password := "password123"
	name := "Test User " + uniqueID
	base := strings.TrimRight(vu.BaseURL, "/")
	factory := strings.TrimRight(vu.FactoryURL, "/")

	status, _, err := vu.call(ctx, http.MethodPost, base+"/api/auth", "",
		map[string]string{"name": name, "email": email, "password": password}, nil)
	if err != nil {
		vu.abandon(ctx, CheckRegister)
		return fmt.Errorf("register: %w", err)
	}
	vu.Summary.Record(CheckRegister, status == http.StatusOK)

	var login struct {
		Token *string `json:"token"`
	}
	status, _, err = vu.call(ctx, http.MethodPut, base+"/api/auth", "",
		map[string]string{"email": email, "password": password}, &login)
	if err != nil {
		vu.abandon(ctx, CheckLogin, CheckToken)
		return fmt.Errorf("login: %w", err)
	}
	vu.Summary.Record(CheckLogin, status == http.StatusOK)
	vu.Summary.Record(CheckToken, login.Token != nil && *login.Token != "")

	token := ""
	if login.Token != nil {
		token = *login.Token
	}

	status, _, err = vu.call(ctx, http.MethodGet, base+"/api/order/menu", token, nil, nil)
	if err != nil {
		vu.abandon(ctx, CheckMenu)
		return fmt.Errorf("menu: %w", err)
	}
	vu.Summary.Record(CheckMenu, status == http.StatusOK)

	var franchises models.FranchiseList
	status, decodeErr, err := vu.call(ctx, http.MethodGet, base+"/api/franchise", token, nil, &franchises)
	if err != nil {
		vu.abandon(ctx, CheckFranchises)
		return fmt.Errorf("franchises: %w", err)
	}
	vu.Summary.Record(CheckFranchises, status == http.StatusOK)

	order := orderRequest{
		Items:       []models.OrderItem{{MenuID: 1, Description: "Veggie", Price: 0.0038}},
		StoreID:     models.NumericID(1),
		FranchiseID: models.NumericID(1),
	}
	if decodeErr == nil && len(franchises.Franchises) > 0 {
		first := franchises.Franchises[0]
		order.FranchiseID = first.ID
		if len(first.Stores) > 0 {
			order.StoreID = first.Stores[0].ID
		}
	}

	var placed struct {
		JWT *string `json:"jwt"`
	}
	status, _, err = vu.call(ctx, http.MethodPost, base+"/api/order", token, order, &placed)
	if err != nil {
		vu.abandon(ctx, CheckOrder, CheckPizzaJWT)
		return fmt.Errorf("order: %w", err)
	}
	vu.Summary.Record(CheckOrder, status == http.StatusOK)
	vu.Summary.Record(CheckPizzaJWT, placed.JWT != nil)

	pizzaJWT := ""
	if placed.JWT != nil {
		pizzaJWT = *placed.JWT
	}

	var verified models.JWTPayload
	status, _, err = vu.call(ctx, http.MethodPost, factory+"/api/order/verify", token,
		map[string]string{"jwt": pizzaJWT}, &verified)
	if err != nil {
		vu.abandon(ctx, CheckVerifyRequest, CheckPizzaValid)
		return fmt.Errorf("verify: %w", err)
	}
	vu.Summary.Record(CheckVerifyRequest, status == http.StatusOK)
	vu.Summary.Record(CheckPizzaValid, verified.Message == "valid")

	return nil
}

// abandon fails the checks of a step whose request could not be made. A step
// cut short by cancellation records nothing.
func (vu VU) abandon(ctx context.Context, checks ...string) {
	if ctx.Err() != nil {
		return
	}
	for _, name := range checks {
		vu.Summary.Record(name, false)
	}
}

// call sends a JSON request and decodes a JSON response into out when out is
// non-nil. A body that does not decode is reported as decodeErr, not err, so
// the step's status check still counts.
func (vu VU) call(ctx context.Context, method, url, token string, body, out any) (status int, decodeErr, err error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := vu.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if out != nil {
		decodeErr = json.NewDecoder(resp.Body).Decode(out)
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, decodeErr, nil
}
