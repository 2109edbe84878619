// internal/gateway/mercadopago.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/soutech/shop-backend/internal/config"
)

const maxErrorBody = 2048

// MercadoPagoClient calls the Mercado Pago REST API with a static bearer
// credential. Calls are not retried.
type MercadoPagoClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

var _ PaymentGateway = (*MercadoPagoClient)(nil)

func NewMercadoPagoClient(cfg config.PaymentConfig) *MercadoPagoClient {
	return &MercadoPagoClient{
		baseURL:     cfg.MPAPIURL,
		accessToken: cfg.MPAccessToken,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

func (c *MercadoPagoClient) Configured() bool {
	return c.accessToken != ""
}

func (c *MercadoPagoClient) CreatePreference(ctx context.Context, pref *Preference) (*PreferenceResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, newStatusError("create preference", resp)
	}

	var result PreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}
	return &result, nil
}

type paymentResponse struct {
	ID                json.RawMessage `json:"id"`
	Status            string          `json:"status"`
	ExternalReference json.RawMessage `json:"external_reference"`
}

func (c *MercadoPagoClient) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, url.PathEscape(paymentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("fetch payment", resp)
	}

	var pr paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	return &Payment{
		ID:                rawString(pr.ID),
		Status:            pr.Status,
		ExternalReference: rawString(pr.ExternalReference),
	}, nil
}

func (c *MercadoPagoClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
}

func newStatusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}
