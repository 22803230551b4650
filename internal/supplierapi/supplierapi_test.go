package supplierapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/config"
	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/supplierapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

func newMock(name string) *supplierapi.Mock {
	m := supplierapi.NewMock(name)
	m.Now = func() time.Time { return fixedNow }
	return m
}

func TestMock_IsStable(t *testing.T) {
	first := newMock("Locke Supply").Invoices()
	second := newMock("Locke Supply").Invoices()

	require.Len(t, first, 18)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, newMock("Plumb Supply").Invoices())
}

func TestMock_InvoiceShape(t *testing.T) {
	for _, inv := range newMock("Plumb Supply").Invoices() {
		assert.Regexp(t, `^PS-\d+$`, inv.InvoiceNumber)
		assert.NotEmpty(t, inv.LineItems)
		assert.InDelta(t, inv.Subtotal.Float()+inv.TaxAmount.Float(), inv.Total.Float(), 0.011)

		switch inv.Status {
		case domain.InvoiceStatusPaid:
			require.NotNil(t, inv.PaidDate)
			assert.Zero(t, inv.BalanceDue.Float())
			assert.Equal(t, inv.Total, inv.AmountPaid)
		case domain.InvoiceStatusOpen:
			// open invoices are never past due
			assert.GreaterOrEqual(t, inv.DueDate, fixedNow.Format("2006-01-02"))
		}
	}
}

func TestMock_ListInvoicesPages(t *testing.T) {
	m := newMock("Acme HVAC")
	ctx := context.Background()

	page1, err := m.ListInvoices(ctx, supplierapi.InvoiceQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	page2, err := m.ListInvoices(ctx, supplierapi.InvoiceQuery{Page: 2, PerPage: 10})
	require.NoError(t, err)
	page3, err := m.ListInvoices(ctx, supplierapi.InvoiceQuery{Page: 3, PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, page1, 10)
	assert.Len(t, page2, 8)
	assert.Empty(t, page3)
	assert.Regexp(t, `^BT-\d+$`, page1[0].InvoiceNumber)

	since := fixedNow.AddDate(0, 0, -10).Format("2006-01-02")
	recent, err := m.ListInvoices(ctx, supplierapi.InvoiceQuery{DateFrom: since})
	require.NoError(t, err)
	for _, inv := range recent {
		assert.GreaterOrEqual(t, inv.InvoiceDate, since)
	}
}

func TestNewSource(t *testing.T) {
	mock := supplierapi.NewSource(config.SupplierAPIConfig{}, domain.SupplierConfig{SupplierName: "Locke Supply"}, zap.NewNop())
	assert.IsType(t, &supplierapi.Mock{}, mock)

	live := supplierapi.NewSource(config.SupplierAPIConfig{}, domain.SupplierConfig{
		SupplierName: "Locke Supply",
		ClientID:     "id",
		ClientSecret: "secret",
	}, zap.NewNop())
	assert.IsType(t, &supplierapi.Client{}, live)
}

// billingServer issues tokens and serves invoices. The first token it
// hands out is rejected once to exercise re-authentication.
func billingServer(t *testing.T, tokens *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["client_secret"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		n := atomic.AddInt32(tokens, 1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-" + string(rune('0'+n)),
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"x1","invoice_number":"LS-1","total":"1,020.00","status":"open"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ReauthenticatesOnce(t *testing.T) {
	var tokens int32
	srv := billingServer(t, &tokens)
	client := supplierapi.NewClient(config.SupplierAPIConfig{BaseURL: srv.URL, Timeout: 5}, domain.SupplierConfig{
		SupplierName: "Locke Supply",
		ClientID:     "id",
		ClientSecret: "secret",
	}, zap.NewNop())

	invoices, err := client.ListInvoices(context.Background(), supplierapi.InvoiceQuery{Page: 2, PerPage: 500})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "LS-1", invoices[0].InvoiceNumber)
	assert.Equal(t, 1020.0, invoices[0].Total.Float())
	assert.Equal(t, int32(2), atomic.LoadInt32(&tokens))
}

func TestClient_AuthenticateRejected(t *testing.T) {
	var tokens int32
	srv := billingServer(t, &tokens)
	client := supplierapi.NewClient(config.SupplierAPIConfig{BaseURL: srv.URL}, domain.SupplierConfig{
		SupplierName: "Locke Supply",
		ClientID:     "id",
		ClientSecret: "wrong",
	}, zap.NewNop())

	err := client.Authenticate(context.Background())
	assert.ErrorIs(t, err, supplierapi.ErrAuthFailed)

	_, err = client.ListInvoices(context.Background(), supplierapi.InvoiceQuery{})
	assert.ErrorIs(t, err, supplierapi.ErrAuthFailed)
}
