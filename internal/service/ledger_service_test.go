package service_test

import (
	"context"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/service"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLedgerService(t *testing.T, maxVersions int) (*service.LedgerService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := service.NewLedgerService(repository.NewMaterialsRepository(db), service.LedgerConfig{
		MaxVersions:        maxVersions,
		OutOfStateShipping: 10000,
		HomeStates:         []string{"", "OK", "Oklahoma"},
	}, zap.NewNop())
	return svc, db
}

func oneLineItem() []domain.LineItemInput {
	return []domain.LineItemInput{{LineNumber: 1, SKU: "A", QtyOrdered: 10, PricePer: 2.50}}
}

func TestLedgerService_RoundTrip(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Maple Court")

	view, err := svc.ReplaceLineItems(ctx, job.ID, oneLineItem())
	require.NoError(t, err)
	require.Len(t, view.LineItems, 1)
	itemID := view.LineItems[0].ID

	view, err = svc.SaveEntries(ctx, job.ID, "received", []domain.EntryInput{
		{LineItemID: itemID, ColumnNumber: 3, Quantity: 4},
	})
	require.NoError(t, err)
	item := view.LineItems[0]
	assert.Equal(t, 4.0, item.TotalReceived)
	assert.Equal(t, 25.0, item.TotalNetPrice)
	require.Contains(t, item.ReceivedEntries, "3")
	assert.Equal(t, repository.Today(), item.ReceivedEntries["3"].EntryDate)

	view, err = svc.SaveEntries(ctx, job.ID, "received", []domain.EntryInput{
		{LineItemID: itemID, ColumnNumber: 3, Quantity: 0},
	})
	require.NoError(t, err)
	assert.Zero(t, view.LineItems[0].TotalReceived)
	assert.Empty(t, view.LineItems[0].ReceivedEntries)

	versions, err := svc.ListVersions(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "Before received update", versions[0].Description)
	assert.Equal(t, "Before received update", versions[1].Description)
	assert.Equal(t, "Before master list update", versions[2].Description)

	// the oldest snapshot predates every line item
	oldest, err := svc.GetVersion(ctx, job.ID, versions[2].ID)
	require.NoError(t, err)
	assert.Empty(t, oldest.Snapshot.LineItems)
	assert.Equal(t, "Maple Court", oldest.Snapshot.Job.Name)

	view, err = svc.Revert(ctx, job.ID, versions[2].ID)
	require.NoError(t, err)
	assert.Empty(t, view.LineItems)
	assert.NotEqual(t, job.UpdatedAt, view.Job.UpdatedAt)

	versions, err = svc.ListVersions(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 4)
}

func TestLedgerService_ZeroQuantityOnMissingCell(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Oak Ridge")
	view, err := svc.ReplaceLineItems(ctx, job.ID, oneLineItem())
	require.NoError(t, err)

	view, err = svc.SaveEntries(ctx, job.ID, "shipped", []domain.EntryInput{
		{LineItemID: view.LineItems[0].ID, ColumnNumber: 15, Quantity: 0},
	})
	require.NoError(t, err)
	assert.Empty(t, view.LineItems[0].ShippedEntries)
}

func TestLedgerService_SaveEntriesRejects(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Cedar Point")
	view, err := svc.ReplaceLineItems(ctx, job.ID, oneLineItem())
	require.NoError(t, err)
	itemID := view.LineItems[0].ID

	tests := []struct {
		name    string
		kind    string
		entries []domain.EntryInput
		wantErr error
	}{
		{"column zero", "received", []domain.EntryInput{{LineItemID: itemID, ColumnNumber: 0, Quantity: 1}}, service.ErrInvalidColumn},
		{"column sixteen", "received", []domain.EntryInput{{LineItemID: itemID, ColumnNumber: 16, Quantity: 1}}, service.ErrInvalidColumn},
		{"negative quantity", "invoiced", []domain.EntryInput{{LineItemID: itemID, ColumnNumber: 2, Quantity: -1}}, service.ErrNegativeQuantity},
		{"unknown ledger", "returned", []domain.EntryInput{{LineItemID: itemID, ColumnNumber: 2, Quantity: 1}}, service.ErrInvalidLedger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveEntries(ctx, job.ID, tt.kind, tt.entries)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// rejected writes leave no version behind
	versions, err := svc.ListVersions(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestLedgerService_ForeignLineItemSkipped(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	jobA := testutil.CreateTestJob(t, db, "Job A")
	jobB := testutil.CreateTestJob(t, db, "Job B")

	viewB, err := svc.ReplaceLineItems(ctx, jobB.ID, oneLineItem())
	require.NoError(t, err)
	foreign := viewB.LineItems[0].ID

	_, err = svc.ReplaceLineItems(ctx, jobA.ID, oneLineItem())
	require.NoError(t, err)
	_, err = svc.SaveEntries(ctx, jobA.ID, "received", []domain.EntryInput{
		{LineItemID: foreign, ColumnNumber: 1, Quantity: 5},
	})
	require.NoError(t, err)

	viewB, err = svc.GetJobView(ctx, jobB.ID)
	require.NoError(t, err)
	assert.Zero(t, viewB.LineItems[0].TotalReceived)
}

func TestLedgerService_ReplaceLineItemsKeepsIDs(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Pine Hollow")

	view, err := svc.ReplaceLineItems(ctx, job.ID, []domain.LineItemInput{
		{LineNumber: 1, SKU: "A", QtyOrdered: 1, PricePer: 1},
		{LineNumber: 2, SKU: "B", QtyOrdered: 2, PricePer: 1},
	})
	require.NoError(t, err)
	require.Len(t, view.LineItems, 2)
	keep := view.LineItems[0].ID

	view, err = svc.ReplaceLineItems(ctx, job.ID, []domain.LineItemInput{
		{ID: &keep, LineNumber: 1, SKU: "A2", QtyOrdered: 3, PricePer: 1},
	})
	require.NoError(t, err)
	require.Len(t, view.LineItems, 1)
	assert.Equal(t, keep, view.LineItems[0].ID)
	assert.Equal(t, "A2", view.LineItems[0].SKU)
}

func TestLedgerService_VersionCap(t *testing.T) {
	svc, db := newLedgerService(t, 3)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Willow Bend")

	for i := 0; i < 5; i++ {
		_, err := svc.ReplaceLineItems(ctx, job.ID, oneLineItem())
		require.NoError(t, err)
	}

	versions, err := svc.ListVersions(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 3)
}

func TestLedgerService_MissingJob(t *testing.T) {
	svc, _ := newLedgerService(t, 0)
	ctx := context.Background()

	_, err := svc.ReplaceLineItems(ctx, 999, oneLineItem())
	assert.ErrorIs(t, err, service.ErrJobNotFound)

	_, err = svc.GetJobView(ctx, 999)
	assert.ErrorIs(t, err, service.ErrJobNotFound)

	_, err = svc.GetVersion(ctx, 999, 1)
	assert.ErrorIs(t, err, service.ErrVersionNotFound)
}

func TestLedgerService_Shipping(t *testing.T) {
	svc, _ := newLedgerService(t, 0)

	tests := []struct {
		state string
		want  float64
	}{
		{"TX", 10000},
		{"", 0},
		{"OK", 0},
		{"Oklahoma", 0},
		{"ok", 0},
	}
	for _, tt := range tests {
		t.Run("state "+tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ShippingFor(&domain.Job{State: tt.state}))
		})
	}
}

func TestLedgerService_CostBreakdown(t *testing.T) {
	svc, _ := newLedgerService(t, 0)

	b := svc.CostBreakdown(&domain.Job{Name: "No Tax", State: "OK"}, 1234.5)
	assert.Equal(t, 0.0, b.Tax)
	assert.Equal(t, 1234.5, b.Total)
	assert.Equal(t, "OK", b.Location)

	b = svc.CostBreakdown(&domain.Job{Name: "Dallas", City: "Dallas", State: "TX", TaxRate: 8.25}, 1000)
	assert.Equal(t, 82.5, b.Tax)
	assert.Equal(t, 10000.0, b.Shipping)
	assert.Equal(t, 11082.5, b.Total)
	assert.Equal(t, "Dallas TX", b.Location)
}

func TestLedgerService_Analytics(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Birch Lane")
	_, err := svc.ReplaceLineItems(ctx, job.ID, oneLineItem())
	require.NoError(t, err)

	odd := *job
	odd.ID = job.ID + 1000
	odd.Status = "Archived"

	out, err := svc.Analytics(ctx, []domain.Job{*job, odd})
	require.NoError(t, err)

	bucket := out.Stages[domain.JobStatusNeedsBid]
	require.NotNil(t, bucket)
	assert.Equal(t, 2, bucket.Count)
	assert.Equal(t, 25.0, out.GrandSubtotal)
	assert.Equal(t, 25.0, out.GrandTotal)
	assert.Equal(t, domain.JobStages, out.StageOrder)
}

func TestParseQuoteLines(t *testing.T) {
	lines := []string{
		"QUOTE 12345",
		"1 CU-38 100 0 0 FT 1.25 125.00",
		"3/8 copper line set",
		"2 AHU-3T 4 0 0 EA 1,100.00 4,400.00",
		"Air handler 3 ton",
		"Subtotal 4,525.00",
	}

	items := service.ParseQuoteLines(lines)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].LineNumber)
	assert.Equal(t, "CU-38", items[0].SKU)
	assert.Equal(t, "3/8 copper line set", items[0].Description)
	assert.Equal(t, 100.0, items[0].QtyOrdered)
	assert.Equal(t, 1100.0, items[1].PricePer)
	assert.Equal(t, 4400.0, items[1].TotalNetPrice)
}

func TestLedgerService_ReplaceLineItemsRejectsLineNumber(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Birch Run")

	for _, n := range []int{0, -3} {
		_, err := svc.ReplaceLineItems(ctx, job.ID, []domain.LineItemInput{
			{LineNumber: 1, SKU: "A", QtyOrdered: 1, PricePer: 1},
			{LineNumber: n, SKU: "B", QtyOrdered: 1, PricePer: 1},
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	}

	// nothing was written, not even a version
	view, err := svc.GetJobView(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, view.LineItems)
	versions, err := svc.ListVersions(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestLedgerService_ImportQuotePDF(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Sunrise Estates")

	quote := testutil.PDF(
		[]string{
			"QUOTE 12345",
			"1 ABC-123 10 0 10 EA 2.50 25.00",
			"Copper elbow 3/4in",
		},
		[]string{
			"2\tXYZ-9\t4\t0\t4\tEA\t10.00\t40.00",
			"Flex duct 6in",
			"Subtotal\t65.00",
		},
	)

	out, err := svc.ImportQuotePDF(ctx, job.ID, "Quote.PDF", quote)
	require.NoError(t, err)
	require.Equal(t, 2, out.Count)
	require.Len(t, out.Items, 2)

	assert.Equal(t, domain.QuoteLine{
		LineNumber:    1,
		SKU:           "ABC-123",
		Description:   "Copper elbow 3/4in",
		QuoteQty:      10,
		QtyOrdered:    10,
		PricePer:      2.5,
		TotalNetPrice: 25,
	}, out.Items[0])
	assert.Equal(t, 2, out.Items[1].LineNumber)
	assert.Equal(t, "XYZ-9", out.Items[1].SKU)
	assert.Equal(t, "Flex duct 6in", out.Items[1].Description)
	assert.Equal(t, 4.0, out.Items[1].QtyOrdered)
	assert.Equal(t, 10.0, out.Items[1].PricePer)
	assert.Equal(t, 40.0, out.Items[1].TotalNetPrice)

	// a quote PDF parses without touching the job
	view, err := svc.GetJobView(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, view.LineItems)
}

func TestLedgerService_ImportQuotePDFErrors(t *testing.T) {
	svc, db := newLedgerService(t, 0)
	ctx := context.Background()
	job := testutil.CreateTestJob(t, db, "Sunrise Estates")
	quote := testutil.PDF([]string{"1 ABC-123 10 0 10 EA 2.50 25.00", "Copper elbow"})

	_, err := svc.ImportQuotePDF(ctx, 999, "quote.pdf", quote)
	assert.ErrorIs(t, err, service.ErrJobNotFound)

	_, err = svc.ImportQuotePDF(ctx, job.ID, "quote.txt", quote)
	assert.ErrorIs(t, err, service.ErrNotPDF)

	_, err = svc.ImportQuotePDF(ctx, job.ID, "quote.pdf", []byte("not a pdf at all"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.ImportQuotePDF(ctx, job.ID, "quote.pdf", testutil.PDF([]string{"Thank you for your business"}))
	assert.ErrorIs(t, err, service.ErrNoQuoteLines)
}
