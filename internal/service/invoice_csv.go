package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

// CSV export headers recognized by the invoice import.
const (
	csvInvoiceNumber   = "INVOICE_NUMBER"
	csvInvoiceDate     = "INVOICE_DATE"
	csvTotalDue        = "TOTAL_DUE"
	csvPONumber        = "PO_NUMBER"
	csvDiscountMessage = "DISCOUNT_MESSAGE"
	csvDueDate         = "DUE_DATE"
	csvTerms           = "TERMS"
	csvDiscountAmount  = "DISCOUNT_AMOUNT"
)

var (
	utf8BOM        = []byte{0xEF, 0xBB, 0xBF}
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDatePattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// CSVInvoice is the header data for one invoice in a supplier CSV export.
type CSVInvoice struct {
	InvoiceNumber   string
	InvoiceDate     string
	TotalDue        float64
	PONumber        string
	DiscountMessage string
	DueDate         string
	Terms           string
	DiscountAmount  float64
}

// NormalizeDate turns MM/DD/YYYY into YYYY-MM-DD. ISO dates and anything
// unrecognized pass through trimmed.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || isoDatePattern.MatchString(s) {
		return s
	}
	if m := usDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}
	return s
}

// parseCSVMoney parses a money string rounded to cents; junk yields 0.
func parseCSVMoney(s string) float64 {
	return domain.Round2(domain.ParseMoney(s))
}

// ParseInvoiceCSV reads a supplier CSV export. Rows without an invoice
// number are skipped. The result preserves file order; a repeated invoice
// number keeps its first position and its last values.
func ParseInvoiceCSV(data []byte) ([]CSVInvoice, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: file is not valid UTF-8", ErrCSVParse)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return []CSVInvoice{}, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var (
		invoices []CSVInvoice
		position = map[string]int{}
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCSVParse, err)
		}
		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		number := field(csvInvoiceNumber)
		if number == "" {
			continue
		}
		inv := CSVInvoice{
			InvoiceNumber:   number,
			InvoiceDate:     NormalizeDate(field(csvInvoiceDate)),
			TotalDue:        parseCSVMoney(field(csvTotalDue)),
			PONumber:        field(csvPONumber),
			DiscountMessage: field(csvDiscountMessage),
			DueDate:         NormalizeDate(field(csvDueDate)),
			Terms:           field(csvTerms),
			DiscountAmount:  parseCSVMoney(field(csvDiscountAmount)),
		}
		if i, seen := position[number]; seen {
			invoices[i] = inv
			continue
		}
		position[number] = len(invoices)
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
