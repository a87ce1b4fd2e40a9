// Package backend lee tagihan ya calculadas desde la API REST del backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Tagihan-api/internal/application/billing"
	"github.com/jhoicas/Tagihan-api/internal/application/dto"
	"github.com/jhoicas/Tagihan-api/internal/domain"
	"github.com/jhoicas/Tagihan-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa InvoiceSource.
var _ billing.InvoiceSource = (*Client)(nil)

const maxPayloadBytes = 5 << 20

// Client adaptador HTTP del backend. Reenvía el bearer del usuario.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetInvoice GET {base}/api/invoices/{id}. Devuelve (nil, nil) ante un 404.
func (c *Client) GetInvoice(ctx context.Context, q billing.InvoiceQuery) (*entity.Invoice, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: BACKEND_BASE_URL no configurada", domain.ErrUpstream)
	}
	endpoint := c.baseURL + "/api/invoices/" + url.PathEscape(q.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if q.Token != "" {
		req.Header.Set("Authorization", "Bearer "+q.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: el backend respondió %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}
	if len(body) > maxPayloadBytes {
		return nil, fmt.Errorf("%w: respuesta demasiado grande", domain.ErrInvalidPayload)
	}

	inv, err := Decode(body)
	if err != nil {
		return nil, err
	}
	if inv.ID == "" {
		inv.ID = q.ID
	}
	return inv, nil
}

// Decode interpreta el JSON del backend, plano o envuelto en {"data": {...}}.
// Cualquier fallo devuelve domain.ErrInvalidPayload.
func Decode(body []byte) (*entity.Invoice, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if raw := bytes.TrimSpace(env.Data); len(raw) > 0 && raw[0] == '{' {
			body = raw
		}
	}

	var payload dto.InvoiceRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if err := dto.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	inv, err := payload.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return &inv, nil
}
