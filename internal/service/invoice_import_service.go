package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	"github.com/jwilson7981/job-tracker-sub000/internal/pdftext"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"github.com/jwilson7981/job-tracker-sub000/internal/storage"
	"go.uber.org/zap"
)

// Upsert sources, used as the metrics label.
const (
	SourceImport = "import"
	SourceSync   = "sync"
)

const importArchiveFolder = "invoice-imports"

// ImportFiles are the uploads of one invoice import. Either file may be
// empty, not both.
type ImportFiles struct {
	SupplierConfigID int64
	CSV              []byte
	CSVName          string
	PDF              []byte
	PDFName          string
}

// InvoiceImportService turns supplier CSV and PDF exports into linked,
// reviewed supplier invoices.
type InvoiceImportService struct {
	suppliers *repository.SupplierRepository
	jobs      *repository.JobRepository
	store     storage.Storage
	llm       llm.Messenger
	logger    *zap.Logger
}

// NewInvoiceImportService creates a new invoice import service instance.
// A nil store skips archiving and a nil messenger skips PDF extraction and
// review.
func NewInvoiceImportService(
	suppliers *repository.SupplierRepository,
	jobs *repository.JobRepository,
	store storage.Storage,
	messenger llm.Messenger,
	logger *zap.Logger,
) *InvoiceImportService {
	return &InvoiceImportService{
		suppliers: suppliers,
		jobs:      jobs,
		store:     store,
		llm:       messenger,
		logger:    logger,
	}
}

// Import runs the whole pipeline. A CSV that cannot be parsed aborts the
// import; a PDF that cannot be read or extracted only loses its line
// items. Per-invoice write errors are counted and skipped, and a failed
// review yields no flags.
func (s *InvoiceImportService) Import(ctx context.Context, files ImportFiles) (*domain.ImportResult, error) {
	if len(files.CSV) == 0 && len(files.PDF) == 0 {
		return nil, ErrNoImportFile
	}
	if _, err := s.suppliers.GetConfig(ctx, files.SupplierConfigID); err != nil {
		if isNotFound(err) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to load supplier config: %w", err)
	}

	var csvRows []CSVInvoice
	if len(files.CSV) > 0 {
		rows, err := ParseInvoiceCSV(files.CSV)
		if err != nil {
			return nil, err
		}
		csvRows = rows
	}

	s.archive(ctx, files.CSVName, "text/csv", files.CSV)
	s.archive(ctx, files.PDFName, "application/pdf", files.PDF)

	var extracted []domain.ParsedInvoice
	if len(files.PDF) > 0 {
		extracted = s.extractPDF(ctx, files.PDF)
	}

	merged := MergeInvoices(csvRows, extracted)
	result, err := s.writeInvoices(ctx, files.SupplierConfigID, merged)
	if err != nil {
		return nil, err
	}

	flags, err := s.reviewInvoices(ctx, merged)
	if err != nil {
		s.logger.Warn("Invoice review failed", zap.Error(err))
		flags = nil
	}
	if flags == nil {
		flags = []domain.ReviewFlag{}
	}
	result.AIFlags = flags

	s.logger.Info("Supplier invoices imported",
		zap.Int64("supplierConfigID", files.SupplierConfigID),
		zap.Int("csvRows", len(csvRows)),
		zap.Int("pdfInvoices", len(extracted)),
		zap.Int("new", result.Stats.New),
		zap.Int("updated", result.Stats.Updated),
		zap.Int("errors", result.Stats.Errors),
		zap.Int("flags", len(flags)),
	)
	return result, nil
}

// extractPDF reads the PDF pages and asks the model for invoices. Every
// failure degrades to no extractions.
func (s *InvoiceImportService) extractPDF(ctx context.Context, data []byte) []domain.ParsedInvoice {
	pages, err := pdftext.Pages(data, 0)
	if err != nil {
		s.logger.Warn("Invoice PDF could not be read", zap.Error(err))
		return nil
	}
	s.logger.Debug("Invoice PDF read", zap.Int("pages", len(pages)))

	invoices, err := s.extractInvoices(ctx, pages)
	if err != nil {
		s.logger.Warn("Invoice extraction failed", zap.Error(err))
		return nil
	}
	return invoices
}

// writeInvoices auto-links and upserts every merged invoice.
func (s *InvoiceImportService) writeInvoices(ctx context.Context, supplierConfigID int64, merged []domain.ParsedInvoice) (*domain.ImportResult, error) {
	jobs, err := s.jobs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	result := &domain.ImportResult{
		Stats:    domain.ImportStats{Total: len(merged)},
		Invoices: []domain.ImportedInvoice{},
		JobLinks: []domain.JobLink{},
	}

	for i := range merged {
		inv := &merged[i]
		if job, score := BestJobMatch(inv.ShipToName, inv.ShipToAddress, jobs); job != nil {
			id := job.ID
			inv.JobID = &id
			result.JobLinks = append(result.JobLinks, domain.JobLink{
				InvoiceNumber: inv.InvoiceNumber,
				JobID:         job.ID,
				JobName:       job.Name,
				Score:         score,
			})
		}

		row, err := toSupplierInvoice(supplierConfigID, inv)
		if err != nil {
			s.countError(inv.InvoiceNumber, err)
			result.Stats.Errors++
			continue
		}
		isNew, err := s.suppliers.UpsertInvoice(ctx, row)
		if err != nil {
			s.countError(inv.InvoiceNumber, err)
			result.Stats.Errors++
			continue
		}

		if isNew {
			result.Stats.New++
			metrics.InvoiceUpserts.WithLabelValues(SourceImport, "new").Inc()
		} else {
			result.Stats.Updated++
			metrics.InvoiceUpserts.WithLabelValues(SourceImport, "updated").Inc()
		}
		result.Invoices = append(result.Invoices, domain.ImportedInvoice{
			InvoiceNumber: inv.InvoiceNumber,
			Total:         row.Total,
			LineItemCount: len(inv.LineItems),
			IsNew:         isNew,
			JobLinked:     inv.JobID != nil,
		})
	}
	return result, nil
}

func (s *InvoiceImportService) countError(invoiceNumber string, err error) {
	metrics.InvoiceUpserts.WithLabelValues(SourceImport, "error").Inc()
	s.logger.Warn("Invoice upsert failed",
		zap.String("invoiceNumber", invoiceNumber),
		zap.Error(err),
	)
}

// toSupplierInvoice builds the row for a merged invoice. Imported invoices
// are open with nothing paid.
func toSupplierInvoice(supplierConfigID int64, inv *domain.ParsedInvoice) (*domain.SupplierInvoice, error) {
	items := inv.LineItems
	if items == nil {
		items = []domain.InvoiceLineItem{}
	}
	blob, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	total := domain.Round2(inv.Total.Float())
	return &domain.SupplierInvoice{
		SupplierConfigID: supplierConfigID,
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceDate:      inv.InvoiceDate,
		DueDate:          inv.DueDate,
		Status:           domain.InvoiceStatusOpen,
		PONumber:         inv.PONumber,
		Terms:            inv.Terms,
		DiscountAmount:   domain.Round2(inv.DiscountAmount.Float()),
		Subtotal:         domain.Round2(inv.Subtotal.Float()),
		TaxAmount:        domain.Round2(inv.TaxAmount.Float()),
		Total:            total,
		BalanceDue:       total,
		ShipToName:       inv.ShipToName,
		ShipToAddress:    inv.ShipToAddress,
		LineItems:        blob,
		JobID:            inv.JobID,
		Notes:            inv.DiscountMessage,
	}, nil
}

// archive keeps the raw upload. Failures are logged only.
func (s *InvoiceImportService) archive(ctx context.Context, filename, contentType string, data []byte) {
	if s.store == nil || len(data) == 0 {
		return
	}
	if filename == "" {
		filename = "upload"
	}
	path, _, err := s.store.Upload(ctx, importArchiveFolder, filename, contentType, bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("Failed to archive import file", zap.String("filename", filename), zap.Error(err))
		return
	}
	s.logger.Debug("Import file archived", zap.String("filename", filename), zap.String("path", path))
}

// ListInvoices returns supplier invoices matching filters.
func (s *InvoiceImportService) ListInvoices(ctx context.Context, filters *repository.SupplierInvoiceFilters) ([]domain.SupplierInvoice, error) {
	invoices, err := s.suppliers.ListInvoices(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.SupplierInvoice{}
	}
	return invoices, nil
}

// LinkJob sets or clears an invoice's job by hand. Later imports keep a
// manual link.
func (s *InvoiceImportService) LinkJob(ctx context.Context, invoiceID int64, jobID *int64) (*domain.SupplierInvoice, error) {
	if jobID != nil {
		if _, err := s.jobs.GetByID(ctx, *jobID); err != nil {
			if isNotFound(err) {
				return nil, ErrJobNotFound
			}
			return nil, fmt.Errorf("failed to get job: %w", err)
		}
	}
	if err := s.suppliers.SetInvoiceJob(ctx, invoiceID, jobID); err != nil {
		if isNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to link invoice: %w", err)
	}
	return s.suppliers.GetInvoice(ctx, invoiceID)
}
