package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
)

const (
	extractMaxTokens = 8192
	reviewMaxTokens  = 2048
)

const extractPrompt = `Extract ALL invoices from this supplier PDF document. The PDF may contain multiple separate invoices, and some invoices may span multiple pages.

Return ONLY a valid JSON array of invoice objects with this structure:
[
  {
    "invoice_number": "string",
    "invoice_date": "string (YYYY-MM-DD format if possible)",
    "ship_to_name": "string (job/project name from ship-to section)",
    "ship_to_address": "string",
    "subtotal": number,
    "tax_amount": number,
    "total": number,
    "line_items": [
      {
        "line_number": number,
        "product_code": "string",
        "description": "string",
        "qty_ordered": number,
        "qty_backordered": number,
        "qty_shipped": number,
        "unit": "string",
        "unit_price": number,
        "extended_price": number
      }
    ]
  }
]

IMPORTANT:
- Each unique invoice number = one object in the array
- If an invoice spans multiple pages, combine ALL its line items into one object
- Extract the correct total for each invoice (not subtotals of individual pages)
- If a field is missing, use null for strings and 0 for numbers
- Make sure every invoice in the document is captured, do not skip any

PDF document text:
`

const reviewPrompt = `Review these supplier invoices for issues. Return ONLY valid JSON array of flags:
[{"severity": "error|warning|info", "category": "string", "invoice_number": "string", "message": "string"}]

Check for:
1. MATH ERRORS: qty x unit_price != extended_price (tolerance $0.02)
2. DUPLICATE LINE ITEMS: same product code appearing multiple times on one invoice
3. BACKORDER SPLITS: items with qty_backordered > 0 (info - may have split invoice)
4. TAX ANOMALIES: effective tax rate outside 5-12%% range
5. PRICING CONCERNS: $0 unit price, single item qty > 100, extended_price > $10,000

If no issues found, return an empty array [].

Invoices:
%s`

// Review flag severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// pagedText joins the non-empty pages with numbered markers.
func pagedText(pages []string) string {
	var b strings.Builder
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- PAGE %d ---\n%s\n", i+1, text)
	}
	return b.String()
}

// extractInvoices asks the model for every invoice in the PDF pages.
func (s *InvoiceImportService) extractInvoices(ctx context.Context, pages []string) ([]domain.ParsedInvoice, error) {
	combined := pagedText(pages)
	if s.llm == nil || combined == "" {
		return nil, nil
	}

	reply, err := llm.Complete(ctx, s.llm, llm.PurposeInvoiceExtract, extractPrompt+combined, extractMaxTokens)
	if err != nil {
		return nil, err
	}
	var invoices []domain.ParsedInvoice
	if err := llm.DecodeArray(reply, &invoices); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}
	return invoices, nil
}

// reviewSummary renders invoices compactly for the review prompt.
func reviewSummary(invoices []domain.ParsedInvoice) string {
	parts := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		var b strings.Builder
		fmt.Fprintf(&b, "Invoice %s:\n", inv.InvoiceNumber)
		fmt.Fprintf(&b, "  Subtotal: $%.2f, Tax: $%.2f, Total: $%.2f\n",
			inv.Subtotal.Float(), inv.TaxAmount.Float(), inv.Total.Float())
		fmt.Fprintf(&b, "  Ship To: %s", inv.ShipToName)
		for _, item := range inv.LineItems {
			line := "?"
			if item.LineNumber != 0 {
				line = fmt.Sprintf("%g", item.LineNumber.Float())
			}
			fmt.Fprintf(&b, "\n  Line %s: %s %s - Qty:%g x $%.2f = $%.2f (ordered:%g, B/O:%g)",
				line, item.ProductCode, item.Description, item.BilledQty(),
				item.UnitPrice.Float(), item.ExtendedPrice.Float(),
				item.QtyOrdered.Float(), item.QtyBackordered.Float())
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// reviewInvoices asks the model for anomaly flags. Flags with an unknown
// severity are reported as warnings.
func (s *InvoiceImportService) reviewInvoices(ctx context.Context, invoices []domain.ParsedInvoice) ([]domain.ReviewFlag, error) {
	if s.llm == nil || len(invoices) == 0 {
		return nil, nil
	}

	reply, err := llm.Complete(ctx, s.llm, llm.PurposeInvoiceReview,
		fmt.Sprintf(reviewPrompt, reviewSummary(invoices)), reviewMaxTokens)
	if err != nil {
		return nil, err
	}
	var flags []domain.ReviewFlag
	if err := llm.DecodeArray(reply, &flags); err != nil {
		return nil, fmt.Errorf("decode review: %w", err)
	}
	for i := range flags {
		switch flags[i].Severity {
		case SeverityError, SeverityWarning, SeverityInfo:
		default:
			flags[i].Severity = SeverityWarning
		}
	}
	return flags, nil
}
