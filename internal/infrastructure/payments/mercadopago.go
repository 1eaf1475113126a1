// Package payments adaptador del proveedor de pagos (API REST de Mercado Pago).
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
)

const service = "pagos"

// Verificar en tiempo de compilación que Client implementa PaymentGateway.
var _ ports.PaymentGateway = (*Client)(nil)

// Client cliente HTTP del proveedor. Usa net/http; no requiere SDK.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient construye el adaptador. Si accessToken está vacío las llamadas devuelven error.
func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type preferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"` // la API exige número, no texto
	CurrencyID string  `json:"currency_id,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem  `json:"items"`
	ExternalReference string            `json:"external_reference"`
	NotificationURL   string            `json:"notification_url,omitempty"`
	BackURLs          map[string]string `json:"back_urls,omitempty"`
	AutoReturn        string            `json:"auto_return,omitempty"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponse struct {
	ID                json.Number     `json:"id"`
	Status            string          `json:"status"`
	ExternalReference string          `json:"external_reference"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

// CreatePreference crea un checkout de un único ítem.
func (c *Client) CreatePreference(ctx context.Context, in ports.PreferenceRequest) (*ports.Preference, error) {
	payload := preferenceRequest{
		Items: []preferenceItem{{
			Title:     in.Title,
			Quantity:  1,
			UnitPrice: in.Amount.InexactFloat64(),
		}},
		ExternalReference: in.ExternalReference,
		NotificationURL:   in.NotificationURL,
	}
	if in.SuccessURL != "" {
		payload.BackURLs = map[string]string{"success": in.SuccessURL}
		payload.AutoReturn = "approved"
	}
	var out preferenceResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", payload, &out); err != nil {
		return nil, domain.Upstream(service, "crear preferencia", err)
	}
	if out.ID == "" || out.InitPoint == "" {
		return nil, domain.Upstream(service, "crear preferencia", errors.New("respuesta sin id o init_point"))
	}
	return &ports.Preference{ID: out.ID, InitPoint: out.InitPoint}, nil
}

// GetPayment consulta un pago por ID. Un 404 del proveedor se traduce en ErrNotFound.
func (c *Client) GetPayment(ctx context.Context, id string) (*ports.PaymentInfo, error) {
	var out paymentResponse
	err := c.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(id), nil, &out)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, domain.NotFound("pago", id)
		}
		return nil, domain.Upstream(service, "consultar pago", err)
	}
	return &ports.PaymentInfo{
		ID:                out.ID.String(),
		Status:            out.Status,
		ExternalReference: out.ExternalReference,
		Amount:            out.TransactionAmount,
	}, nil
}

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string { return fmt.Sprintf("HTTP %d: %s", e.code, e.msg) }

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.accessToken == "" {
		return errors.New("PAYMENTS_ACCESS_TOKEN no configurado")
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		if jsonErr := json.Unmarshal(raw, &ae); jsonErr == nil && ae.Message != "" {
			return &statusError{code: resp.StatusCode, msg: ae.Message}
		}
		return &statusError{code: resp.StatusCode, msg: string(raw)}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsear respuesta: %w", err)
	}
	return nil
}
