// Package pdftext extracts plain text from PDF pages.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable is returned when the bytes are not a readable PDF.
var ErrUnreadable = errors.New("unreadable PDF")

// Pages returns the text of each page in order, one line per printed row.
// Pages without text yield empty strings. maxPages <= 0 reads every page.
func Pages(data []byte, maxPages int) (pages []string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	n := reader.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	fonts := make(map[string]*pdf.Font)
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := pageText(page, fonts)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pageText lays out the page glyphs as rows. Pages the content parser
// cannot position fall back to the plain text stream.
func pageText(page pdf.Page, fonts map[string]*pdf.Font) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = plainText(page, fonts)
		}
	}()

	rows := Rows(page.Content().Text)
	if len(rows) == 0 {
		return plainText(page, fonts)
	}
	return strings.Join(rows, "\n"), nil
}

func plainText(page pdf.Page, fonts map[string]*pdf.Font) (string, error) {
	for _, name := range page.Fonts() {
		if _, ok := fonts[name]; !ok {
			f := page.Font(name)
			fonts[name] = &f
		}
	}
	return page.GetPlainText(fonts)
}

// Rows groups glyphs sharing a baseline into one row and orders the rows
// top to bottom. Within a row glyphs run left to right, and a horizontal
// gap wider than a third of the font size becomes a single space.
func Rows(glyphs []pdf.Text) []string {
	sorted := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "" || g.S == "\n" || g.S == "\r" {
			continue
		}
		sorted = append(sorted, g)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows []string
	for start := 0; start < len(sorted); {
		rowY := sorted[start].Y
		end := start + 1
		for end < len(sorted) && rowY-sorted[end].Y <= rowTolerance(sorted[end].FontSize) {
			end++
		}
		if line := joinRow(sorted[start:end]); line != "" {
			rows = append(rows, line)
		}
		start = end
	}
	return rows
}

func rowTolerance(fontSize float64) float64 {
	return math.Max(2, fontSize*0.3)
}

func joinRow(row []pdf.Text) string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var b strings.Builder
	var right float64
	space := true
	for i, g := range row {
		blank := strings.TrimSpace(g.S) == ""
		if i > 0 && !space && !blank && g.X-right > math.Max(g.FontSize, 1)/3 {
			b.WriteByte(' ')
		}
		if blank {
			if !space {
				b.WriteByte(' ')
			}
			space = true
		} else {
			b.WriteString(g.S)
			space = false
		}
		if i == 0 || g.X+g.W > right {
			right = g.X + g.W
		}
	}
	return strings.TrimSpace(b.String())
}

// Text joins the text of up to maxPages pages with newlines and truncates
// the result to maxChars runes when maxChars > 0.
func Text(data []byte, maxPages, maxChars int) (string, error) {
	pages, err := Pages(data, maxPages)
	if err != nil {
		return "", err
	}
	text := strings.Join(pages, "\n")
	return Truncate(text, maxChars), nil
}

// Truncate cuts s to at most n runes. n <= 0 leaves s unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Lines splits page text into trimmed, non-empty lines.
func Lines(pages []string) []string {
	var lines []string
	for _, p := range pages {
		for _, l := range strings.Split(p, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, l)
			}
		}
	}
	return lines
}
