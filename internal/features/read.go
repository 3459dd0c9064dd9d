package features

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// readDocumentText extracts visible text from a candidate document based on
// its extension. Unsupported extensions return an error so the extractor can
// degrade to empty features.
func readDocumentText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return readDocxText(path)
	case ".html", ".htm":
		return readHTMLText(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document %s: %w", path, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", path)
	}
}

// readDocxText pulls paragraph text out of the word/document.xml part of a
// .docx archive. Formatting runs are flattened; paragraphs become lines.
func readDocxText(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive %s: %w", path, err)
	}
	defer archive.Close()

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("docx archive %s has no word/document.xml", path)
	}

	reader, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document part: %w", err)
	}
	defer reader.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(reader)
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}

// readHTMLText extracts visible text from an HTML document, dropping script
// and style content.
func readHTMLText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open HTML document %s: %w", path, err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML document %s: %w", path, err)
	}

	doc.Find("script, style").Remove()

	var parts []string
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return // only leaf nodes, avoids duplicated text
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		// Documents without a body (fragments) still carry text.
		if text := strings.TrimSpace(doc.Text()); text != "" {
			return text, nil
		}
	}

	return strings.Join(parts, "\n"), nil
}
