package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SubscriptionClient asks the main application whether a user has a paid
// subscription (school or personal). A failure here must be surfaced as
// "unknown", never as "unpaid".
type SubscriptionClient struct {
	baseURL string
	client  *http.Client
}

// NewSubscriptionClient builds a client for the subscription backend at
// baseURL.
func NewSubscriptionClient(baseURL string) *SubscriptionClient {
	return &SubscriptionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// HasPaidSubscription resolves the entitlement behind the given caller
// token. The returned error means the entitlement could not be determined.
func (c *SubscriptionClient) HasPaidSubscription(ctx context.Context, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user", nil)
	if err != nil {
		return false, errors.Wrap(err, "build subscription request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "query subscription backend")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, errors.Errorf("subscription backend returned status %d", resp.StatusCode)
	}

	var payload struct {
		Status           *bool `json:"status"`
		SubscribedSchool bool  `json:"subscribed_school"`
		SubscribedStripe bool  `json:"subscribed_stripe"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, errors.Wrap(err, "decode subscription response")
	}
	if payload.Status == nil {
		return false, nil
	}
	return payload.SubscribedSchool || payload.SubscribedStripe, nil
}
