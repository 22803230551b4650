package service

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/pdftext"
	"go.uber.org/zap"
)

// quoteLinePattern matches a supplier quote row:
// line, sku, qty ordered, two integer columns, unit, price per, net amount.
// The description is printed on the following line.
var quoteLinePattern = regexp.MustCompile(
	`^(\d+)\s+(.+)\s+([\d,]+)\s+(\d+)\s+(\d+)\s+(\w+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)$`,
)

func parseQuoteNumber(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return f
}

// ParseQuoteLines scans extracted quote text for line items. It never
// touches the database.
func ParseQuoteLines(lines []string) []domain.QuoteLine {
	var items []domain.QuoteLine
	for i := 0; i < len(lines); i++ {
		m := quoteLinePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		lineNumber, _ := strconv.Atoi(m[1])
		qty := parseQuoteNumber(m[3])

		desc := ""
		if i+1 < len(lines) {
			desc = strings.TrimSpace(lines[i+1])
		}
		items = append(items, domain.QuoteLine{
			LineNumber:    lineNumber,
			SKU:           strings.TrimSpace(m[2]),
			Description:   desc,
			QuoteQty:      qty,
			QtyOrdered:    qty,
			PricePer:      parseQuoteNumber(m[7]),
			TotalNetPrice: parseQuoteNumber(m[8]),
		})
		i++
	}
	return items
}

// ImportQuotePDF parses a supplier quote PDF into line items for review.
// Nothing is written.
func (s *LedgerService) ImportQuotePDF(ctx context.Context, jobID int64, filename string, data []byte) (*domain.QuoteImportResponse, error) {
	if _, err := s.materials.GetJob(ctx, jobID); err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, ErrNotPDF
	}

	pages, err := pdftext.Pages(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read PDF: %v", ErrInvalidInput, err)
	}

	items := ParseQuoteLines(strings.Split(strings.Join(pages, "\n"), "\n"))
	if len(items) == 0 {
		return nil, ErrNoQuoteLines
	}

	s.logger.Info("Supplier quote parsed",
		zap.Int64("jobID", jobID),
		zap.String("filename", filename),
		zap.Int("items", len(items)),
	)
	return &domain.QuoteImportResponse{Items: items, Count: len(items)}, nil
}
