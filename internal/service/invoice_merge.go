package service

import (
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

// mergeExtractions folds extractions that share an invoice number into one
// record, in first-seen order. Line items concatenate, zero totals take
// the first non-zero value seen and empty ship-to fields are filled from
// the first record that has them. Records without a number are dropped.
func mergeExtractions(extractions []domain.ParsedInvoice) ([]string, map[string]*domain.ParsedInvoice) {
	var order []string
	byNumber := make(map[string]*domain.ParsedInvoice, len(extractions))
	for i := range extractions {
		ext := extractions[i]
		number := strings.TrimSpace(ext.InvoiceNumber)
		if number == "" {
			continue
		}
		ext.InvoiceNumber = number

		existing, ok := byNumber[number]
		if !ok {
			copied := ext
			copied.LineItems = append([]domain.InvoiceLineItem(nil), ext.LineItems...)
			byNumber[number] = &copied
			order = append(order, number)
			continue
		}

		existing.LineItems = append(existing.LineItems, ext.LineItems...)
		if existing.Subtotal == 0 && ext.Subtotal != 0 {
			existing.Subtotal = ext.Subtotal
		}
		if existing.TaxAmount == 0 && ext.TaxAmount != 0 {
			existing.TaxAmount = ext.TaxAmount
		}
		if existing.Total == 0 && ext.Total != 0 {
			existing.Total = ext.Total
		}
		if existing.ShipToName == "" {
			existing.ShipToName = ext.ShipToName
		}
		if existing.ShipToAddress == "" {
			existing.ShipToAddress = ext.ShipToAddress
		}
		if existing.InvoiceDate == "" {
			existing.InvoiceDate = ext.InvoiceDate
		}
	}
	return order, byNumber
}

// MergeInvoices combines CSV header rows with PDF extractions by invoice
// number. CSV rows come first and keep their header fields; a matching PDF
// record supplies line items, subtotal, tax and ship-to, and its total
// only when the CSV total is zero. PDF-only invoices follow.
func MergeInvoices(csvRows []CSVInvoice, extractions []domain.ParsedInvoice) []domain.ParsedInvoice {
	order, pdfByNumber := mergeExtractions(extractions)

	merged := make([]domain.ParsedInvoice, 0, len(csvRows)+len(order))
	seen := make(map[string]bool, len(csvRows))

	for _, row := range csvRows {
		seen[row.InvoiceNumber] = true
		inv := domain.ParsedInvoice{
			InvoiceNumber:   row.InvoiceNumber,
			InvoiceDate:     row.InvoiceDate,
			DueDate:         row.DueDate,
			PONumber:        row.PONumber,
			Terms:           row.Terms,
			DiscountMessage: row.DiscountMessage,
			DiscountAmount:  domain.Number(row.DiscountAmount),
			Total:           domain.Number(row.TotalDue),
			LineItems:       []domain.InvoiceLineItem{},
		}
		if pdf, ok := pdfByNumber[row.InvoiceNumber]; ok {
			if pdf.LineItems != nil {
				inv.LineItems = pdf.LineItems
			}
			inv.Subtotal = pdf.Subtotal
			inv.TaxAmount = pdf.TaxAmount
			inv.ShipToName = pdf.ShipToName
			inv.ShipToAddress = pdf.ShipToAddress
			if inv.Total == 0 && pdf.Total != 0 {
				inv.Total = pdf.Total
			}
		}
		merged = append(merged, inv)
	}

	for _, number := range order {
		if seen[number] {
			continue
		}
		pdf := *pdfByNumber[number]
		if pdf.LineItems == nil {
			pdf.LineItems = []domain.InvoiceLineItem{}
		}
		pdf.PONumber = ""
		pdf.Terms = ""
		pdf.DiscountAmount = 0
		merged = append(merged, pdf)
	}
	return merged
}
