package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal single-page PDF containing text, with a
// correct cross-reference table so the parser accepts it.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	stream := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// buildDocx assembles a minimal Word package with a single paragraph.
func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"_rels/.rels":         `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`,
		// The reader refuses packages without the document-level rels part.
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
		contains    string
	}{
		{
			name:        "plain text",
			filename:    "notes.txt",
			contentType: "text/plain",
			content:     []byte("Hello, world!"),
			contains:    "Hello, world!",
		},
		{
			name:        "unknown extension treated as text",
			filename:    "data.xyz",
			contentType: "",
			content:     []byte("raw content"),
			contains:    "raw content",
		},
		{
			name:        "corrupt pdf falls back to raw text",
			filename:    "broken.pdf",
			contentType: "application/pdf",
			content:     []byte("%PDF-1.4\nthis is not really a pdf"),
			contains:    "not really a pdf",
		},
		{
			name:        "corrupt docx falls back to raw text",
			filename:    "broken.docx",
			contentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			content:     []byte("not a zip archive"),
			contains:    "not a zip archive",
		},
		{
			name:        "empty buffer",
			filename:    "empty.txt",
			contentType: "text/plain",
			content:     nil,
			contains:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractText(tt.content, tt.contentType, tt.filename)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("ExtractText() = %q, want substring %q", result, tt.contains)
			}
		})
	}
}

func TestExtractText_PlainTextRoundTrip(t *testing.T) {
	input := "line one\nline two\némojis 🎉 and ünïcode"
	got := ExtractText([]byte(input), "text/plain", "notes.txt")
	if got != input {
		t.Errorf("round trip mismatch: got %q, want %q", got, input)
	}
}

func TestExtractText_PDF(t *testing.T) {
	content := buildPDF(t, "Hello World")
	got := ExtractText(content, "application/pdf", "doc.pdf")
	if !strings.Contains(got, "Hello World") {
		t.Errorf("expected pdf text %q in result, got %q", "Hello World", got)
	}
}

func TestExtractText_PDFExtensionHint(t *testing.T) {
	// No declared type at all; the .pdf extension alone must route to the
	// structured decoder.
	content := buildPDF(t, "Extension Routed")
	got := ExtractText(content, "", "doc.pdf")
	if !strings.Contains(got, "Extension Routed") {
		t.Errorf("expected pdf text in result, got %q", got)
	}
}

func TestExtractText_DocxGenericContentType(t *testing.T) {
	// Mislabeled upload: the extension hint must win over octet-stream and
	// reach the structured Word decoder.
	content := buildDocx(t, "Hello from Word")
	got := ExtractText(content, "application/octet-stream", "report.docx")
	if got != "Hello from Word" {
		t.Errorf("expected %q, got %q", "Hello from Word", got)
	}
}

func TestExtractText_DocxEntities(t *testing.T) {
	content := buildDocx(t, "Fish &amp; Chips")
	got := ExtractText(content, mimeDocx, "menu.docx")
	if got != "Fish & Chips" {
		t.Errorf("expected entity-decoded text, got %q", got)
	}
}

func TestExtractText_InvalidUTF8Replaced(t *testing.T) {
	content := []byte{0xff, 0xfe, 'h', 'i'}
	got := ExtractText(content, "text/plain", "weird.txt")
	if !strings.Contains(got, "hi") {
		t.Errorf("expected valid bytes preserved, got %q", got)
	}
	if !strings.Contains(got, "�") {
		t.Errorf("expected replacement character for malformed bytes, got %q", got)
	}
	if strings.ContainsRune(got, 0xff) {
		t.Errorf("raw invalid byte leaked into result: %q", got)
	}
}

func TestExtractText_Idempotent(t *testing.T) {
	inputs := []struct {
		filename    string
		contentType string
		content     []byte
	}{
		{"doc.pdf", "application/pdf", buildPDF(t, "same twice")},
		{"doc.docx", "", buildDocx(t, "same twice")},
		{"doc.txt", "text/plain", []byte("same twice")},
		{"broken.pdf", "application/pdf", []byte("garbage")},
	}
	for _, in := range inputs {
		first := ExtractText(in.content, in.contentType, in.filename)
		second := ExtractText(in.content, in.contentType, in.filename)
		if first != second {
			t.Errorf("%s: extraction not idempotent: %q vs %q", in.filename, first, second)
		}
	}
}
