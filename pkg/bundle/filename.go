package bundle

import (
	"fmt"
	"strings"
	"time"

	"github.com/gardar/faixa/pkg/geometry"
)

// DefaultPrefix starts every archive name.
const DefaultPrefix = "faixa"

// FileName returns <prefix>_<width>x<height>_<YYYY-MM-DD>.zip.
func FileName(prefix string, banner geometry.Banner, date time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%sx%s_%s.zip",
		prefix,
		geometry.FormatCm(banner.WidthCm),
		geometry.FormatCm(banner.HeightCm),
		date.Format("2006-01-02"))
}
