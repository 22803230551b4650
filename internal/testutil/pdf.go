package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// PDF builds a minimal PDF with one page per argument. Each line is drawn
// 14pt below the previous one with Td moves, and tab-separated cells are
// placed in 90pt columns, the way report writers lay out tables.
func PDF(pages ...[]string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		pagesObject(len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding " +
			"/FirstChar 32 /LastChar 126 /Widths [" + strings.TrimSpace(strings.Repeat("600 ", 95)) + "] >>",
	}
	for i, lines := range pages {
		content := contentStream(lines)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func pagesObject(n int) string {
	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	return fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)
}

var pdfEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func contentStream(lines []string) string {
	var b strings.Builder
	b.WriteString("BT\n/F1 10 Tf\n72 720 Td\n")
	x := 0
	for i, line := range lines {
		if i > 0 {
			fmt.Fprintf(&b, "%d -14 Td\n", -x)
			x = 0
		}
		for j, cell := range strings.Split(line, "\t") {
			if j > 0 {
				b.WriteString("90 0 Td\n")
				x += 90
			}
			fmt.Fprintf(&b, "(%s) Tj\n", pdfEscaper.Replace(cell))
		}
	}
	b.WriteString("ET\n")
	return b.String()
}
