package docparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Destination groups whose contents never contain body text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"themedata":  true,
	"header":     true,
	"footer":     true,
}

// extractRTF strips RTF control words and groups, keeping the document text.
func extractRTF(data []byte) (string, error) {
	src := string(data)
	if !strings.HasPrefix(src, `{\rtf`) {
		return "", fmt.Errorf("not an rtf document")
	}

	var out strings.Builder
	skipDepth := 0 // brace depth at which a skipped group started, 0 = not skipping
	depth := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch c {
		case '{':
			depth++
		case '}':
			if skipDepth != 0 && depth == skipDepth {
				skipDepth = 0
			}
			depth--
		case '\\':
			if i+1 >= len(src) {
				break
			}
			next := src[i+1]
			// Escaped characters and hex escapes.
			switch next {
			case '\\', '{', '}':
				if skipDepth == 0 {
					out.WriteByte(next)
				}
				i++
				continue
			case '\'':
				if i+3 < len(src) {
					if v, err := strconv.ParseUint(src[i+2:i+4], 16, 8); err == nil && skipDepth == 0 {
						out.WriteByte(byte(v))
					}
					i += 3
				}
				continue
			case '*':
				// \* marks an ignorable destination.
				if skipDepth == 0 {
					skipDepth = depth
				}
				i++
				continue
			}

			word, length := rtfControlWord(src[i+1:])
			i += length
			if skipDepth != 0 {
				continue
			}
			switch word {
			case "par", "line", "sect", "page":
				out.WriteByte('\n')
			case "tab", "cell":
				out.WriteByte('\t')
			default:
				if rtfSkipGroups[word] {
					skipDepth = depth
				}
			}
		case '\r', '\n':
			// Raw newlines in RTF source are not document text.
		default:
			if skipDepth == 0 {
				out.WriteByte(c)
			}
		}
	}

	return sanitizeText(out.String()), nil
}

// rtfControlWord reads a control word (letters plus optional numeric
// parameter) and returns the word and the number of consumed bytes,
// including the optional trailing space delimiter.
func rtfControlWord(s string) (string, int) {
	i := 0
	for i < len(s) && isASCIILetter(s[i]) {
		i++
	}
	word := s[:i]
	if i < len(s) && (s[i] == '-' || isASCIIDigit(s[i])) {
		i++
		for i < len(s) && isASCIIDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && s[i] == ' ' {
		i++
	}
	return word, i
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
