package docparse

import (
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Canonical MIME types accepted for CV uploads.
const (
	MIMEPDF  = "application/pdf"
	MIMEDoc  = "application/msword"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEODT  = "application/vnd.oasis.opendocument.text"
	MIMERTF  = "application/rtf"
	MIMEText = "text/plain"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrEmptyDocument   = errors.New("no text could be extracted from document")
)

// aliases maps alternate spellings to their canonical allow-list entry.
var aliases = map[string]string{
	"text/rtf":        MIMERTF,
	"application/doc": MIMEDoc,
}

var allowed = map[string]bool{
	MIMEPDF:  true,
	MIMEDoc:  true,
	MIMEDocx: true,
	MIMEODT:  true,
	MIMERTF:  true,
	MIMEText: true,
}

// ResolveType decides the effective document type for an upload. The declared
// MIME type is trusted when it is on the allow-list; otherwise the content is
// sniffed and accepted if the detected type is allowed. Anything else is
// ErrUnsupportedType.
func ResolveType(declared string, data []byte) (string, error) {
	if t, ok := canonical(declared); ok {
		return t, nil
	}

	detected := mimetype.Detect(data)
	for mime := range allowed {
		if detected.Is(mime) {
			return mime, nil
		}
	}
	for alias, mime := range aliases {
		if detected.Is(alias) {
			return mime, nil
		}
	}
	return "", ErrUnsupportedType
}

func canonical(mime string) (string, bool) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if t, ok := aliases[mime]; ok {
		return t, true
	}
	if allowed[mime] {
		return mime, true
	}
	return "", false
}

// ExtractText converts a document of the given canonical MIME type into plain
// text. It is a pure function of its inputs; a parse failure is terminal and
// never retried.
func ExtractText(data []byte, mimeType string) (string, error) {
	t, ok := canonical(mimeType)
	if !ok {
		return "", ErrUnsupportedType
	}

	var (
		text string
		err  error
	)
	switch t {
	case MIMEText:
		text = sanitizeText(string(data))
	case MIMEPDF:
		text, err = extractPDF(data)
	case MIMEDocx:
		text, err = extractDOCX(data)
	case MIMEODT:
		text, err = extractODT(data)
	case MIMERTF:
		text, err = extractRTF(data)
	case MIMEDoc:
		text, err = extractDOC(data)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func sanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\x00", "")
}
