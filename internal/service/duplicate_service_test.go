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
)

func TestFileHash(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", service.FileHash(nil))
	assert.Equal(t, service.FileHash([]byte("abc")), service.FileHash([]byte("abc")))
	assert.NotEqual(t, service.FileHash([]byte("abc")), service.FileHash([]byte("abd")))
}

func TestDuplicateService_Check(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := &scriptedMessenger{}
	svc := service.NewDuplicateService(repository.NewDocumentRepository(db), m, zap.NewNop())
	ctx := context.Background()

	upload := []byte("%PDF-1.4 mechanical license scan")
	license := &domain.License{
		LicenseName: "Mechanical Contractor",
		Status:      domain.LicenseActive,
		FileHash:    service.FileHash(upload),
	}
	require.NoError(t, db.Create(license).Error)

	tests := []struct {
		name    string
		docType string
	}{
		{"registered doc type", "license"},
		{"unknown doc type searches every table", "photo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Check(ctx, upload, tt.docType, "license.pdf")
			require.NoError(t, err)
			assert.True(t, result.IsDuplicate)
			assert.Equal(t, domain.DuplicateExact, result.MatchType)
			require.Len(t, result.Matches, 1)
			assert.Equal(t, license.ID, result.Matches[0].ID)
			assert.Equal(t, "Mechanical Contractor", result.Matches[0].Name)
			assert.Equal(t, "license", result.Matches[0].Source)
			assert.Equal(t, "licenses", result.Matches[0].Table)
		})
	}

	result, err := svc.Check(ctx, upload, "contract", "license.pdf")
	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)

	result, err = svc.Check(ctx, []byte("something else"), "license", "notes.txt")
	require.NoError(t, err)
	assert.False(t, result.IsDuplicate)
	assert.Equal(t, domain.DuplicateNone, result.MatchType)
	assert.NotNil(t, result.Matches)
	assert.Equal(t, service.FileHash([]byte("something else")), result.FileHash)
	assert.Nil(t, result.Metadata)

	// only PDFs are sent for metadata extraction
	assert.Empty(t, m.requests)
}
