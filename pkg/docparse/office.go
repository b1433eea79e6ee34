package docparse

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/richardlehane/mscfb"
)

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return sanitizeText(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	return sanitizeText(flattenWordXML(content)), nil
}

func extractODT(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open odt: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != "content.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open odt content: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read odt content: %w", err)
		}
		return sanitizeText(flattenWordXML(string(content))), nil
	}
	return "", fmt.Errorf("odt archive has no content.xml")
}

var (
	xmlParagraphRe = regexp.MustCompile(`</(?:w:p|text:p|text:h)>`)
	xmlTabRe       = regexp.MustCompile(`<(?:w:tab|text:tab)[^>]*/?>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
)

// flattenWordXML turns OOXML/ODF body markup into plain text: paragraph
// boundaries become newlines, tabs become tabs, every other tag is dropped.
func flattenWordXML(content string) string {
	content = xmlParagraphRe.ReplaceAllString(content, "\n")
	content = xmlTabRe.ReplaceAllString(content, "\t")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// extractDOC salvages readable text from the WordDocument stream of a legacy
// OLE compound file. The binary .doc format interleaves text with formatting
// runs, so this keeps whichever of the 8-bit and UTF-16LE interpretations
// yields more printable content.
func extractDOC(data []byte) (string, error) {
	file, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open ole container: %w", err)
	}

	var stream []byte
	for entry, err := file.Next(); err == nil; entry, err = file.Next() {
		if entry.Name != "WordDocument" {
			continue
		}
		stream, err = io.ReadAll(entry)
		if err != nil {
			return "", fmt.Errorf("read WordDocument stream: %w", err)
		}
		break
	}
	if stream == nil {
		return "", fmt.Errorf("ole container has no WordDocument stream")
	}

	narrow := printableRuns(string(stream))
	wide := printableRuns(decodeUTF16LE(stream))
	if len(wide) > len(narrow) {
		return wide, nil
	}
	return narrow, nil
}

func decodeUTF16LE(b []byte) string {
	if len(b) < 2 {
		return ""
	}
	u16 := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u16 = append(u16, uint16(b[i])|uint16(b[i+1])<<8)
	}
	return string(utf16.Decode(u16))
}

// printableRuns keeps runs of at least four consecutive printable characters,
// separating runs with newlines.
func printableRuns(s string) string {
	const minRun = 4
	var out strings.Builder
	var run []rune
	flush := func() {
		if len(run) >= minRun {
			out.WriteString(strings.TrimSpace(string(run)))
			out.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, r := range s {
		if unicode.IsPrint(r) && r != unicode.ReplacementChar {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return strings.TrimSpace(out.String())
}
