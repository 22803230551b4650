package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/llm"
	"github.com/jwilson7981/job-tracker-sub000/internal/metrics"
	"github.com/jwilson7981/job-tracker-sub000/internal/pdftext"
	"github.com/jwilson7981/job-tracker-sub000/internal/repository"
	"go.uber.org/zap"
)

const (
	metaMaxPages   = 5
	metaMaxChars   = 4000
	metaPromptText = 3000
	metaMaxTokens  = 256
)

const metaPrompt = `Extract key identifiers from this document text. Return JSON only:
{"title": "document title", "vendor": "company/vendor name", "reference_number": "any reference/quote/PO number", "project_name": "project or job name", "doc_type": "type of document"}

If a field is not found, use empty string. Text:

%s`

// DuplicateService checks uploads against every document-bearing table.
type DuplicateService struct {
	docs   *repository.DocumentRepository
	llm    llm.Messenger
	logger *zap.Logger
}

// NewDuplicateService creates a new duplicate service instance. A nil
// messenger disables near-duplicate matching.
func NewDuplicateService(docs *repository.DocumentRepository, messenger llm.Messenger, logger *zap.Logger) *DuplicateService {
	return &DuplicateService{docs: docs, llm: messenger, logger: logger}
}

// FileHash returns the hex MD5 of data. It identifies identical uploads,
// it is not a security boundary.
func FileHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Check looks for an exact hash match, in the doc type's table when
// docType is registered and in every table otherwise. PDFs of a known doc
// type with no exact match get a metadata search when a model is
// configured.
func (s *DuplicateService) Check(ctx context.Context, data []byte, docType, filename string) (*domain.DuplicateResult, error) {
	hash := FileHash(data)
	result := &domain.DuplicateResult{
		MatchType: domain.DuplicateNone,
		Matches:   []domain.DuplicateMatch{},
		FileHash:  hash,
	}

	_, known := repository.DocumentTables[docType]

	var (
		exact []domain.DuplicateMatch
		err   error
	)
	if known {
		exact, err = s.docs.FindByHash(ctx, docType, hash)
	} else {
		exact, err = s.docs.FindByHashAll(ctx, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search file hashes: %w", err)
	}
	if len(exact) > 0 {
		result.IsDuplicate = true
		result.MatchType = domain.DuplicateExact
		result.Matches = exact
		metrics.DuplicateChecks.WithLabelValues(domain.DuplicateExact).Inc()
		return result, nil
	}

	if known && s.llm != nil && strings.EqualFold(filepath.Ext(filename), ".pdf") {
		meta := s.extractMeta(ctx, data)
		if meta != nil {
			result.Metadata = meta
			near, err := s.docs.FindSimilar(ctx, docType, meta)
			if err != nil {
				s.logger.Warn("Near-duplicate search failed",
					zap.String("docType", docType),
					zap.Error(err),
				)
			} else if len(near) > 0 {
				result.IsDuplicate = true
				result.MatchType = domain.DuplicateNear
				result.Matches = near
				metrics.DuplicateChecks.WithLabelValues(domain.DuplicateNear).Inc()
				return result, nil
			}
		}
	}

	metrics.DuplicateChecks.WithLabelValues(domain.DuplicateNone).Inc()
	return result, nil
}

// extractMeta asks the model for identifying fields of a PDF. Any failure
// yields nil.
func (s *DuplicateService) extractMeta(ctx context.Context, data []byte) *domain.DocumentMeta {
	text, err := pdftext.Text(data, metaMaxPages, metaMaxChars)
	if err != nil || strings.TrimSpace(text) == "" {
		return nil
	}

	reply, err := llm.Complete(ctx, s.llm, llm.PurposeDuplicateMeta,
		fmt.Sprintf(metaPrompt, pdftext.Truncate(text, metaPromptText)), metaMaxTokens)
	if err != nil {
		s.logger.Warn("Document metadata extraction failed", zap.Error(err))
		return nil
	}

	var meta domain.DocumentMeta
	if err := llm.DecodeObject(reply, &meta); err != nil {
		s.logger.Warn("Document metadata reply was not JSON", zap.Error(err))
		return nil
	}
	return &meta
}
