package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts plain text from PDF bytes, concatenating pages in
// document order. A page that fails to extract contributes an empty string
// rather than aborting the whole parse; only a document that cannot be
// opened at all is an error.
func ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to decode PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		sb.WriteString(extractPage(reader, i))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// extractPage returns the plain text of one page, or "" if the page is
// missing or unreadable. The underlying reader can panic on malformed
// content streams, so that is contained here too.
func extractPage(reader *pdf.Reader, n int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := reader.Page(n)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
