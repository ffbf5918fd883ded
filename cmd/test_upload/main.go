// Exercises the document upload + extraction path end to end: runs the
// extractor locally on a file, prints what came out, then optionally POSTs
// the same file as a multipart upload to the local API so the server-side
// result can be compared.
//
// Usage: test_upload <file> [content-type]
package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"studyvault-ops/config"
	"studyvault-ops/extractor"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: test_upload <file> [content-type]")
		os.Exit(1)
	}
	path := os.Args[1]

	cfg := config.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read file:", err)
	}

	filename := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if len(os.Args) >= 3 {
		contentType = os.Args[2]
	}

	fmt.Println("=== Local Extraction ===")
	fmt.Printf("File: %s (%d bytes, declared type %s)\n", filename, len(data), contentType)

	if ext == ".pdf" {
		pages, err := api.PageCountFile(path)
		if err != nil {
			fmt.Printf("⚠️  pdfcpu could not read page count: %v\n", err)
		} else {
			fmt.Printf("PDF pages: %d\n", pages)
		}
	}

	text := extractor.ExtractText(data, contentType, filename)
	fmt.Printf("Extracted %d characters\n", len(text))

	preview := strings.TrimSpace(text)
	if len(preview) > 300 {
		preview = preview[:300] + "..."
	}
	fmt.Printf("Preview:\n%s\n", preview)

	if len(strings.TrimSpace(text)) == 0 {
		fmt.Println("⚠️  Extraction produced empty text. Upload would be stored without content.")
	}

	if cfg.APIBaseURL == "" {
		fmt.Println("\nAPI_BASE_URL not set, skipping server upload")
		return
	}

	fmt.Println("\n=== Server Upload ===")
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		log.Fatal("Multipart build failed:", err)
	}
	if _, err := fw.Write(data); err != nil {
		log.Fatal("Multipart write failed:", err)
	}
	w.Close()

	url := cfg.APIBaseURL + "/api/materials/upload"
	req, _ := http.NewRequest("POST", url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cfg.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AccessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("Upload request failed:", err)
	}
	defer resp.Body.Close()

	responseBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Printf("Response:\n%s\n", string(responseBody))

	switch {
	case resp.StatusCode == 401:
		fmt.Println("\n⚠️  Need authentication — run auth_probe and export TEST_ACCESS_TOKEN")
	case resp.StatusCode >= 400:
		fmt.Println("\n❌ Upload rejected")
	default:
		fmt.Println("\n✅ Upload accepted")
	}
}
