package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-withdrawal-service/internal/domain"
)

const paymentCallTimeout = 3 * time.Second

// HTTPPaymentClient executes approved/rejected decisions against the upstream
// payment provider. Every call is bounded by paymentCallTimeout; a timeout is
// treated like any other provider failure and surfaces as ErrPaymentProvider.
type HTTPPaymentClient struct {
	Address    string
	httpClient *http.Client
}

func NewHTTPPaymentClient(address string) (*HTTPPaymentClient, error) {
	return &HTTPPaymentClient{
		Address:    address,
		httpClient: &http.Client{Timeout: paymentCallTimeout},
	}, nil
}

type rejectPayoutRequest struct {
	Reason string `json:"reason"`
}

type paymentErrorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPPaymentClient) ApprovePayout(ctx context.Context, externalRef string) error {
	return c.execute(ctx, fmt.Sprintf("%s/payouts/%s/approve", c.Address, externalRef), nil)
}

func (c *HTTPPaymentClient) RejectPayout(ctx context.Context, externalRef, reason string) error {
	body, err := json.Marshal(rejectPayoutRequest{Reason: reason})
	if err != nil {
		return err
	}
	return c.execute(ctx, fmt.Sprintf("%s/payouts/%s/reject", c.Address, externalRef), body)
}

func (c *HTTPPaymentClient) execute(ctx context.Context, url string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, paymentCallTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPaymentProvider, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}

	var errorResponse paymentErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil || errorResponse.Error == "" {
		return fmt.Errorf("%w: provider returned status %d", domain.ErrPaymentProvider, response.StatusCode)
	}
	return fmt.Errorf("%w: %s", domain.ErrPaymentProvider, errors.New(errorResponse.Error))
}
