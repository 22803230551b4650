package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
	"github.com/jwilson7981/job-tracker-sub000/internal/pdftext"
	"gorm.io/gorm"
)

// DocumentTable describes a document-bearing table in the duplicate
// registry.
type DocumentTable struct {
	Table       string
	HashColumn  string
	TitleColumn string
}

// DocumentTables maps upload doc types to the tables that store them.
var DocumentTables = map[string]DocumentTable{
	"plan":           {Table: "plans", HashColumn: "file_hash", TitleColumn: "title"},
	"submittal":      {Table: "submittal_files", HashColumn: "file_hash", TitleColumn: "title"},
	"supplier_quote": {Table: "supplier_quotes", HashColumn: "file_hash", TitleColumn: "supplier_name"},
	"contract":       {Table: "contracts", HashColumn: "file_hash", TitleColumn: "title"},
	"license":        {Table: "licenses", HashColumn: "file_hash", TitleColumn: "license_name"},
	"closeout":       {Table: "closeout_checklists", HashColumn: "file_hash", TitleColumn: "item_name"},
}

// DocumentTypes returns the registered doc types in a stable order.
func DocumentTypes() []string {
	types := make([]string, 0, len(DocumentTables))
	for t := range DocumentTables {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// referenceColumns are tried in order for a reference-number match.
var referenceColumns = []string{"quote_number", "license_number", "title"}

const nearMatchLimit = 10

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) hasColumn(table, column string) bool {
	return r.db.Migrator().HasColumn(table, column)
}

// FindByHash returns rows of one doc type whose file hash equals hash.
func (r *DocumentRepository) FindByHash(ctx context.Context, docType, hash string) ([]domain.DuplicateMatch, error) {
	info, ok := DocumentTables[docType]
	if !ok || hash == "" {
		return nil, nil
	}
	var matches []domain.DuplicateMatch
	err := r.db.WithContext(ctx).
		Table(info.Table).
		Select(fmt.Sprintf("id, %s AS name", info.TitleColumn)).
		Where(fmt.Sprintf("%s = ? AND %s != ''", info.HashColumn, info.HashColumn), hash).
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Source = docType
		matches[i].Table = info.Table
	}
	return matches, nil
}

// FindByHashAll searches every registered table. Tables missing the hash
// column are skipped.
func (r *DocumentRepository) FindByHashAll(ctx context.Context, hash string) ([]domain.DuplicateMatch, error) {
	var all []domain.DuplicateMatch
	for _, docType := range DocumentTypes() {
		info := DocumentTables[docType]
		if !r.hasColumn(info.Table, info.HashColumn) {
			continue
		}
		matches, err := r.FindByHash(ctx, docType, hash)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	return all, nil
}

// FindSimilar searches one doc type's table for rows whose title, vendor
// or reference number resembles the extracted metadata.
func (r *DocumentRepository) FindSimilar(ctx context.Context, docType string, meta *domain.DocumentMeta) ([]domain.DuplicateMatch, error) {
	info, ok := DocumentTables[docType]
	if !ok || meta == nil {
		return nil, nil
	}

	var conditions []string
	var args []interface{}

	if title := strings.TrimSpace(meta.Title); utf8.RuneCountInString(title) > 3 {
		title = pdftext.Truncate(title, 30)
		conditions = append(conditions, info.TitleColumn+" LIKE ?")
		args = append(args, likePattern(title))
	}
	if vendor := strings.TrimSpace(meta.Vendor); len(vendor) > 2 && r.hasColumn(info.Table, "vendor") {
		conditions = append(conditions, "vendor LIKE ?")
		args = append(args, likePattern(vendor))
	}
	if ref := strings.TrimSpace(meta.ReferenceNumber); len(ref) > 2 {
		for _, col := range referenceColumns {
			if r.hasColumn(info.Table, col) {
				conditions = append(conditions, col+" LIKE ?")
				args = append(args, likePattern(ref))
				break
			}
		}
	}
	if len(conditions) == 0 {
		return nil, nil
	}

	var matches []domain.DuplicateMatch
	err := r.db.WithContext(ctx).
		Table(info.Table).
		Select(fmt.Sprintf("id, %s AS name", info.TitleColumn)).
		Where(strings.Join(conditions, " OR "), args...).
		Limit(nearMatchLimit).
		Scan(&matches).Error
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Source = docType
		matches[i].Table = info.Table
	}
	return matches, nil
}
