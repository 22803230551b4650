package supplierapi

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

const (
	mockInvoiceCount = 18
	mockTaxRate      = 0.085
	dateLayout       = "2006-01-02"
)

type catalogItem struct {
	description string
	unit        string
	low, high   float64
}

var hvacCatalog = []catalogItem{
	{`3/4" Type L Copper Pipe - 10ft`, "length", 28.00, 55.00},
	{`1-1/8" Type L Copper Pipe - 10ft`, "length", 48.00, 95.00},
	{`1-3/8" ACR Copper Tubing - 50ft`, "coil", 125.00, 280.00},
	{"R-410A Refrigerant - 25lb Cylinder", "cylinder", 125.00, 350.00},
	{"R-22 Refrigerant - 30lb (reclaimed)", "cylinder", 275.00, 500.00},
	{`3/4" Copper Elbow 90-deg (bag of 10)`, "bag", 18.00, 35.00},
	{`1" Copper Tee Fitting`, "each", 8.50, 22.00},
	{`1/2" x 3/4" Reducer Coupling`, "each", 4.50, 12.00},
	{"Silver Brazing Alloy Rods - 1lb", "pkg", 45.00, 85.00},
	{`6" Round Galvanized Duct - 5ft`, "piece", 12.00, 28.00},
	{`8" Round Galvanized Duct - 5ft`, "piece", 16.00, 35.00},
	{"12x12 Sheet Metal Duct - 5ft", "piece", 32.00, 65.00},
	{"24x12 Sheet Metal Duct - 5ft", "piece", 48.00, 95.00},
	{`Flex Duct 6" x 25ft R-8 Insulated`, "roll", 38.00, 72.00},
	{`Flex Duct 8" x 25ft R-8 Insulated`, "roll", 52.00, 95.00},
	{"4-Ton 14 SEER Condenser Unit", "unit", 2800.00, 4500.00},
	{"3-Ton 16 SEER Heat Pump Condenser", "unit", 3200.00, 5500.00},
	{"5-Ton Package Unit 14 SEER", "unit", 4500.00, 7200.00},
	{"2.5-Ton Air Handler with TXV", "unit", 1200.00, 2200.00},
	{"4-Ton Air Handler with TXV", "unit", 1800.00, 3200.00},
	{"Programmable Thermostat - WiFi", "each", 85.00, 175.00},
	{"50-gal Gas Water Heater", "unit", 550.00, 950.00},
	{"Condensate Pump - 120V", "each", 45.00, 85.00},
	{"Condensate Drain Line Kit", "kit", 22.00, 45.00},
	{`3/4" Armaflex Insulation - 6ft`, "piece", 6.50, 14.00},
	{`1-1/8" Armaflex Insulation - 6ft`, "piece", 9.00, 18.00},
	{`HVAC Foil Tape 2.5" x 60yd`, "roll", 8.00, 16.00},
	{"Mastic Duct Sealant - 1 Gallon", "gallon", 14.00, 28.00},
	{"24x24 Return Air Grille", "each", 18.00, 38.00},
	{"12x6 Supply Register - White", "each", 8.00, 18.00},
	{"10x6 Supply Register - White", "each", 7.00, 15.00},
	{"Filter Rack 20x25", "each", 22.00, 45.00},
	{"20x25x1 Pleated Filter (4-pack)", "pack", 18.00, 35.00},
	{"Line Set 3/8 x 3/4 - 25ft", "set", 65.00, 140.00},
	{"Line Set 3/8 x 7/8 - 50ft", "set", 120.00, 250.00},
	{"Disconnect Box 60A Non-Fused", "each", 12.00, 28.00},
	{`Whip 3/4" x 6ft Liquid-Tight`, "each", 14.00, 30.00},
	{"Concrete Condenser Pad 36x36", "each", 35.00, 65.00},
	{`Pipe Hangers 1" (box of 50)`, "box", 22.00, 48.00},
	{`Gas Flex Connector 3/4" x 24"`, "each", 18.00, 38.00},
}

// Open is weighted to three of eight, Paid to four, Overdue to one.
var mockStatuses = []string{
	domain.InvoiceStatusOpen, domain.InvoiceStatusOpen, domain.InvoiceStatusOpen,
	domain.InvoiceStatusPaid, domain.InvoiceStatusPaid, domain.InvoiceStatusPaid, domain.InvoiceStatusPaid,
	domain.InvoiceStatusOverdue,
}

// Mock generates the same invoices for a supplier name on every call,
// relative to the current date.
type Mock struct {
	SupplierName string
	Now          func() time.Time
	seed         int64
}

// NewMock creates a mock source seeded from the supplier name.
func NewMock(supplierName string) *Mock {
	sum := md5.Sum([]byte(supplierName))
	seed, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return &Mock{SupplierName: supplierName, Now: time.Now, seed: seed}
}

// Authenticate always succeeds.
func (m *Mock) Authenticate(ctx context.Context) error {
	return nil
}

func (m *Mock) numberPrefix() (string, int) {
	name := strings.ToLower(m.SupplierName)
	switch {
	case strings.Contains(name, "locke"):
		return "LS", 580000
	case strings.Contains(name, "plumb"):
		return "PS", 420000
	default:
		return "BT", 100000
	}
}

func round2(x float64) float64 {
	return domain.Round2(x)
}

// Invoices returns every generated invoice, newest first.
func (m *Mock) Invoices() []Invoice {
	rng := rand.New(rand.NewSource(m.seed))
	now := m.Now()
	base := now.AddDate(0, 0, -85)
	prefix, baseNum := m.numberPrefix()

	between := func(lo, hi int) int { return lo + rng.Intn(hi-lo+1) }

	invoices := make([]Invoice, 0, mockInvoiceCount)
	for i := 0; i < mockInvoiceCount; i++ {
		number := fmt.Sprintf("%s-%d", prefix, baseNum+i*between(1, 12))
		invDate := base.AddDate(0, 0, between(0, 80))
		dueDate := invDate.AddDate(0, 0, 30)
		status := mockStatuses[rng.Intn(len(mockStatuses))]

		if status == domain.InvoiceStatusOpen && dueDate.Before(now) {
			status = domain.InvoiceStatusOverdue
		}
		var paidDate *string
		if status == domain.InvoiceStatusPaid {
			d := dueDate.AddDate(0, 0, -between(0, 15)).Format(dateLayout)
			paidDate = &d
		}

		count := between(1, 6)
		items := make([]domain.InvoiceLineItem, 0, count)
		subtotal := 0.0
		for j := 0; j < count; j++ {
			item := hvacCatalog[rng.Intn(len(hvacCatalog))]
			qty := between(1, 20)
			unitPrice := round2(item.low + rng.Float64()*(item.high-item.low))
			ext := round2(float64(qty) * unitPrice)
			subtotal += ext
			items = append(items, domain.InvoiceLineItem{
				LineNumber:    domain.Number(j + 1),
				Description:   item.description,
				Unit:          item.unit,
				Quantity:      domain.Number(qty),
				UnitPrice:     domain.Number(unitPrice),
				ExtendedPrice: domain.Number(ext),
			})
		}
		subtotal = round2(subtotal)
		tax := round2(subtotal * mockTaxRate)
		total := round2(subtotal + tax)

		inv := Invoice{
			ID:            fmt.Sprintf("bt-inv-%d-%d", m.seed, i),
			InvoiceNumber: number,
			InvoiceDate:   invDate.Format(dateLayout),
			DueDate:       dueDate.Format(dateLayout),
			Status:        status,
			PONumber:      fmt.Sprintf("PO-%d", between(1000, 9999)),
			Subtotal:      domain.Number(subtotal),
			TaxRate:       domain.Number(mockTaxRate),
			TaxAmount:     domain.Number(tax),
			Total:         domain.Number(total),
			BalanceDue:    domain.Number(total),
			PaidDate:      paidDate,
			LineItems:     items,
			SupplierName:  m.SupplierName,
		}
		if status == domain.InvoiceStatusPaid {
			inv.AmountPaid = domain.Number(total)
			inv.BalanceDue = 0
		}
		invoices = append(invoices, inv)
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].InvoiceDate > invoices[j].InvoiceDate
	})
	return invoices
}

// ListInvoices filters and pages the generated invoices the way the API
// does.
func (m *Mock) ListInvoices(ctx context.Context, q InvoiceQuery) ([]Invoice, error) {
	var filtered []Invoice
	for _, inv := range m.Invoices() {
		if q.Status != "" && inv.Status != q.Status {
			continue
		}
		if q.DateFrom != "" && inv.InvoiceDate < q.DateFrom {
			continue
		}
		if q.DateTo != "" && inv.InvoiceDate > q.DateTo {
			continue
		}
		filtered = append(filtered, inv)
	}

	page, perPage := normalizePage(q)
	start := (page - 1) * perPage
	if start >= len(filtered) {
		return []Invoice{}, nil
	}
	end := start + perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}
