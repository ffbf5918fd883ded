// Package extractor turns uploaded document bytes into plain text.
//
// Extraction is best effort: structured decoders (PDF, Word) run first when
// the declared content type or the filename extension points at them, and any
// decoder that fails falls through to a raw UTF-8 decode. The caller always
// gets a string back, never an error.
package extractor

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ExtractText extracts plain text from an uploaded document. contentType is
// the declared MIME type from the upload (may be empty or wrong — browsers
// label lots of things application/octet-stream), filename supplies the
// extension hint. Structured decoding is attempted once per format, in
// priority order, and degrades to raw UTF-8 decoding on failure.
func ExtractText(content []byte, contentType, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if contentType == mimePDF || ext == ".pdf" {
		text, err := extractPDF(content)
		if err == nil {
			return text
		}
		log.Printf("extractor: pdf decode failed for %q, falling back to raw text: %v", filename, err)
	}

	if contentType == mimeDocx || ext == ".docx" {
		text, err := extractDocx(content)
		if err == nil {
			return text
		}
		log.Printf("extractor: docx decode failed for %q, falling back to raw text: %v", filename, err)
	}

	return extractPlainText(content)
}

// extractPDF walks every page and concatenates its text. The underlying
// parser panics on some malformed cross-reference tables, so the panic is
// converted to an error here to keep the fallback chain intact.
func extractPDF(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}

func extractDocx(content []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	return flattenWordXML(r.Editable().GetContent()), nil
}

var (
	wordTags    = regexp.MustCompile(`<[^>]+>`)
	xmlEntities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

// flattenWordXML reduces the document.xml text layer to plain text:
// paragraph ends become newlines, tabs become tabs, all other markup is
// dropped.
func flattenWordXML(content string) string {
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = wordTags.ReplaceAllString(content, "")
	content = xmlEntities.Replace(content)
	return strings.TrimSpace(content)
}

// extractPlainText never fails: malformed byte sequences are replaced with
// U+FFFD instead of surfacing an error.
func extractPlainText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return strings.ToValidUTF8(string(content), string(utf8.RuneError))
}
