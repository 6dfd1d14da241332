package sheetpdf

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// unescapePDFString resolves the backslash escapes of a PDF literal string, including
// three-digit octal codes and escaped line breaks.
func unescapePDFString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		default:
			if e >= '0' && e <= '7' {
				v := int(e - '0')
				for n := 0; n < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; n++ {
					i++
					v = v*8 + int(s[i]-'0')
				}
				b.WriteByte(byte(v))
				continue
			}
			b.WriteByte(e)
		}
	}
	return b.String()
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)

// decodeUTF16BE decodes a text string that starts with the FE FF byte order mark.
func decodeUTF16BE(b []byte) (string, error) {
	out, err := utf16BE.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16BE text: %w", err)
	}
	return string(out), nil
}

// DumpStructure is a debug utility that prints the document information, page count and
// layers of a PDF, followed by its first byteCount bytes.
func DumpStructure(w io.Writer, pdfData []byte, byteCount int) {
	content := string(pdfData)

	fmt.Fprintf(w, "size:     %d bytes\n", len(pdfData))
	for _, key := range []string{"Title", "Author", "Subject", "Keywords", "Creator", "Producer"} {
		if v := infoString(content, key); v != "" {
			fmt.Fprintf(w, "%-9s %s\n", strings.ToLower(key)+":", v)
		}
	}
	fmt.Fprintf(w, "pages:    %d\n", len(pagePattern.FindAllStringIndex(content, -1)))
	for _, layer := range detectPDFLayers(content) {
		fmt.Fprintf(w, "layer:    %s\n", layer)
	}

	byteCount = max(0, min(byteCount, len(pdfData)))
	if byteCount == 0 {
		return
	}
	fmt.Fprintf(w, "----- first %d bytes -----\n", byteCount)
	fmt.Fprintln(w, string(pdfData[:byteCount]))
}
