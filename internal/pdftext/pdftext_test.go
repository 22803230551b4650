package pdftext_test

import (
	"strings"
	"testing"

	"github.com/jwilson7981/job-tracker-sub000/internal/pdftext"
	"github.com/jwilson7981/job-tracker-sub000/internal/testutil"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_PositionedLines(t *testing.T) {
	data := testutil.PDF(
		[]string{"1 ABC-123 10 0 10 EA 2.50 25.00", "Copper elbow 3/4in"},
		[]string{"Invoice\tINV-100", "Total (USD)\t1,250.00"},
	)

	pages, err := pdftext.Pages(data, 0)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "1 ABC-123 10 0 10 EA 2.50 25.00\nCopper elbow 3/4in", pages[0])
	assert.Equal(t, "Invoice INV-100\nTotal (USD) 1,250.00", pages[1])

	pages, err = pdftext.Pages(data, 1)
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestPages_Unreadable(t *testing.T) {
	_, err := pdftext.Pages([]byte("this is not a PDF document"), 0)
	assert.ErrorIs(t, err, pdftext.ErrUnreadable)
}

func TestText_Truncates(t *testing.T) {
	data := testutil.PDF([]string{"Mechanical Contractor License"}, []string{"Expires 2026-01-31"})

	text, err := pdftext.Text(data, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical", text)

	text, err = pdftext.Text(data, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Contractor License\nExpires 2026-01-31", text)
}

func TestRows(t *testing.T) {
	glyph := func(s string, x, y float64) pdf.Text {
		return pdf.Text{FontSize: 10, X: x, Y: y, W: 6, S: s}
	}

	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   []string
	}{
		{
			name: "rows run top to bottom and left to right",
			glyphs: []pdf.Text{
				glyph("B", 16, 700), glyph("A", 10, 700),
				glyph("D", 16, 720), glyph("C", 10, 720),
			},
			want: []string{"CD", "AB"},
		},
		{
			name: "baseline jitter stays on one row",
			glyphs: []pdf.Text{
				glyph("Q", 10, 500), glyph("T", 16, 501.5), glyph("Y", 22, 499),
			},
			want: []string{"QTY"},
		},
		{
			name: "wide gaps become one space",
			glyphs: []pdf.Text{
				glyph("E", 10, 300), glyph("A", 16, 300), glyph(" ", 22, 300),
				glyph("4", 200, 300), glyph("2", 206, 300),
			},
			want: []string{"EA 42"},
		},
		{
			name:   "blank rows are dropped",
			glyphs: []pdf.Text{glyph(" ", 10, 300), glyph("\n", 20, 300)},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pdftext.Rows(tt.glyphs))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Café", pdftext.Truncate("Café Olé", 4))
	assert.Equal(t, "short", pdftext.Truncate("short", 10))
	assert.Equal(t, "untouched", pdftext.Truncate("untouched", 0))
}

func TestLines(t *testing.T) {
	lines := pdftext.Lines([]string{"  first \n\n second", strings.Repeat(" ", 3)})
	assert.Equal(t, []string{"first", "second"}, lines)
}
