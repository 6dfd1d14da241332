package sheetpdf

import (
	"fmt"
	"regexp"
	"strings"
)

var layerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(((?:\\.|[^\\)])*)\)`),
	regexp.MustCompile(`<</Type/OCG/Name\(((?:\\.|[^\\)])*)\)`),
	regexp.MustCompile(`/Name\s*\(((?:\\.|[^\\)])*)\)[\s\S]{1,50}/Type\s*/OCG`),
}

var pagePattern = regexp.MustCompile(`/Type\s*/Page\b`)

// detectPDFLayers attempts to find optional-content layer names in the raw PDF data.
func detectPDFLayers(content string) []string {
	var layers []string
	for _, re := range layerPatterns {
		for _, match := range re.FindAllStringSubmatch(content, -1) {
			if len(match) >= 2 {
				layers = append(layers, decodePDFText(match[1]))
			}
		}
	}

	// Deduplicate
	unique := make([]string, 0, len(layers))
	seen := make(map[string]bool)
	for _, l := range layers {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique
}

// infoString returns the value of a document information entry such as /Title.
func infoString(content, key string) string {
	re := regexp.MustCompile(`/` + regexp.QuoteMeta(key) + `\s*\(((?:\\.|[^\\)])*)\)`)
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return decodePDFText(m[1])
}

// decodePDFText unescapes a literal string and decodes it from UTF-16BE when it has a BOM.
func decodePDFText(raw string) string {
	s := unescapePDFString(raw)
	if len(s) >= 2 && s[0] == '\xfe' && s[1] == '\xff' {
		if decoded, err := decodeUTF16BE([]byte(s)); err == nil {
			return decoded
		}
	}
	return s
}

// Inspection is what Inspect finds in a PDF produced by this package.
type Inspection struct {
	Title     string
	Author    string
	Keywords  string
	Pages     int
	Layers    []string // All detected layers
	HasLabels bool     // True if the label layer exists
}

// Inspect reads document information and layer names from raw PDF bytes.
// labelLayer is the layer name that marks a labelled sheet.
func Inspect(pdfData []byte, labelLayer string) (Inspection, error) {
	if len(pdfData) == 0 {
		return Inspection{}, fmt.Errorf("empty PDF data")
	}
	content := string(pdfData)
	if !strings.HasPrefix(content, "%PDF-") {
		return Inspection{}, fmt.Errorf("data is not a PDF document")
	}

	result := Inspection{
		Title:    infoString(content, "Title"),
		Author:   infoString(content, "Author"),
		Keywords: infoString(content, "Keywords"),
		Pages:    len(pagePattern.FindAllStringIndex(content, -1)),
		Layers:   detectPDFLayers(content),
	}
	for _, layer := range result.Layers {
		if layer == labelLayer {
			result.HasLabels = true
			break
		}
	}
	return result, nil
}
