package bundle

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/gardar/faixa/pkg/geometry"
)

// ManifestFileName is the archive name of the plain-text summary.
const ManifestFileName = "informacoes.txt"

// DefaultTool is the signature at the end of the manifest.
const DefaultTool = "Calculadora de Faixas Web App"

//go:embed templates/informacoes.tmpl
var templateFS embed.FS

var manifestTemplate = template.Must(template.New("informacoes.tmpl").Funcs(template.FuncMap{
	"cm": geometry.FormatCm,
}).ParseFS(templateFS, "templates/informacoes.tmpl"))

// ManifestInfo is the data summarized in informacoes.txt.
type ManifestInfo struct {
	Banner    geometry.Banner
	Portrait  bool
	Grid      geometry.Grid
	MarginMm  float64
	BleedMm   float64
	Generated time.Time
	Notes     []string // optional remarks, e.g. coverage warnings
	Tool      string
}

// Manifest renders informacoes.txt from the embedded template
func Manifest(info ManifestInfo) (string, error) {
	if info.Tool == "" {
		info.Tool = DefaultTool
	}

	var buf bytes.Buffer
	if err := manifestTemplate.Execute(&buf, info); err != nil {
		return "", fmt.Errorf("error rendering manifest template: %w", err)
	}
	return buf.String(), nil
}
