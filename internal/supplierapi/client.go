// Package supplierapi talks to the suppliers' billing API. Configs without
// credentials get a mock source that generates stable sample invoices.
package supplierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultBaseURL  = "https://api.billtrust.com/v1"
	maxPageSize     = 100
	tokenExpirySkew = 60 * time.Second
	defaultTokenTTL = 3600
)

var (
	// ErrAuthFailed is returned when the token endpoint rejects the client
	// credentials.
	ErrAuthFailed = errors.New("supplier API authentication failed")
	// ErrUnexpectedStatus wraps non-2xx API responses.
	ErrUnexpectedStatus = errors.New("supplier API returned unexpected status")
)

// InvoiceQuery filters an invoice listing. Page is 1-based.
type InvoiceQuery struct {
	Status   string
	DateFrom string
	DateTo   string
	Page     int
	PerPage  int
}

// Invoice is an invoice as the billing API reports it.
type Invoice struct {
	ID            string                   `json:"id"`
	InvoiceNumber string                   `json:"invoice_number"`
	InvoiceDate   string                   `json:"invoice_date"`
	DueDate       string                   `json:"due_date"`
	Status        string                   `json:"status"`
	PONumber      string                   `json:"po_number"`
	Subtotal      domain.Number            `json:"subtotal"`
	TaxRate       domain.Number            `json:"tax_rate"`
	TaxAmount     domain.Number            `json:"tax_amount"`
	Total         domain.Number            `json:"total"`
	AmountPaid    domain.Number            `json:"amount_paid"`
	BalanceDue    domain.Number            `json:"balance_due"`
	PaidDate      *string                  `json:"paid_date"`
	LineItems     []domain.InvoiceLineItem `json:"line_items"`
	SupplierName  string                   `json:"supplier_name"`
}

// Source lists a supplier's invoices.
type Source interface {
	Authenticate(ctx context.Context) error
	ListInvoices(ctx context.Context, q InvoiceQuery) ([]Invoice, error)
}

// Client is the OAuth client-credentials API client. A token is reused
// until a minute before it expires; a 401 triggers one re-authentication
// and retry.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	supplierName string
	logger       *zap.Logger

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClient creates an API client for one supplier config.
func NewClient(apiCfg config.SupplierAPIConfig, supplier domain.SupplierConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(apiCfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := apiCfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		clientID:     supplier.ClientID,
		clientSecret: supplier.ClientSecret,
		supplierName: supplier.SupplierName,
		logger:       logger.With(zap.String("supplier", supplier.SupplierName)),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate fetches a fresh access token.
func (c *Client) Authenticate(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.clearToken()
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.clearToken()
		return fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil || tok.AccessToken == "" {
		c.clearToken()
		return fmt.Errorf("%w: no access token in response", ErrAuthFailed)
	}
	if tok.ExpiresIn <= 0 {
		tok.ExpiresIn = defaultTokenTTL
	}

	c.mu.Lock()
	c.token = tok.AccessToken
	c.expires = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySkew)
	c.mu.Unlock()
	return nil
}

func (c *Client) clearToken() {
	c.mu.Lock()
	c.token = ""
	c.expires = time.Time{}
	c.mu.Unlock()
}

func (c *Client) validToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.expires) {
		return c.token
	}
	return ""
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if tok := c.validToken(); tok != "" {
		return tok, nil
	}
	if err := c.Authenticate(ctx); err != nil {
		return "", err
	}
	return c.validToken(), nil
}

// get performs an authenticated GET and returns the body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	status, body, err := c.do(ctx, target, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.logger.Info("Supplier API token rejected, re-authenticating")
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
		status, body, err = c.do(ctx, target, c.validToken())
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, target, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("supplier API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read supplier API response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// ListInvoices returns one page of invoices. The API answers with either a
// bare array or an object wrapping it in "invoices" or "data".
func (c *Client) ListInvoices(ctx context.Context, q InvoiceQuery) ([]Invoice, error) {
	page, perPage := normalizePage(q)
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.DateFrom != "" {
		params.Set("date_from", q.DateFrom)
	}
	if q.DateTo != "" {
		params.Set("date_to", q.DateTo)
	}

	body, err := c.get(ctx, "/invoices", params)
	if err != nil {
		return nil, err
	}
	return decodeInvoices(body)
}

func decodeInvoices(body []byte) ([]Invoice, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var invoices []Invoice
		if err := json.Unmarshal(body, &invoices); err != nil {
			return nil, fmt.Errorf("decode invoices: %w", err)
		}
		return invoices, nil
	}

	var wrapped struct {
		Invoices []Invoice `json:"invoices"`
		Data     []Invoice `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	if wrapped.Invoices != nil {
		return wrapped.Invoices, nil
	}
	return wrapped.Data, nil
}

func normalizePage(q InvoiceQuery) (int, int) {
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}
	return page, perPage
}

// NewSource picks the mock for configs in mock mode and the API client
// otherwise.
func NewSource(apiCfg config.SupplierAPIConfig, supplier domain.SupplierConfig, logger *zap.Logger) Source {
	if supplier.MockMode() {
		return NewMock(supplier.SupplierName)
	}
	return NewClient(apiCfg, supplier, logger)
}
