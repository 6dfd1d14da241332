// Package bundle packs the exported sheet PDFs into a single ZIP archive.
//
// Archive layout:
//
//	folha_*.pdf, guia_de_montagem.pdf   every PDF at the root
//	informacoes.txt                      plain-text summary
//	<extra files>                        e.g. todas_as_folhas.pdf
//	arquivos_pdf/...                     a copy of every PDF
//
// Entries are deflated at a fixed mid-range level: the PDFs already carry compressed
// image streams, so a higher level buys little.
package bundle

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

const (
	// DefaultFolder holds the duplicated PDFs.
	DefaultFolder = "arquivos_pdf"
	// DefaultLevel is the deflate level used for every entry.
	DefaultLevel = 6
)

// File is one named archive member.
type File struct {
	Name string
	Data []byte
}

// Options controls archive assembly.
type Options struct {
	Folder   string    // subfolder for PDF copies ("" = DefaultFolder)
	Level    int       // deflate level (0 = DefaultLevel)
	Modified time.Time // entry timestamps (zero = now)
	Extra    []File    // extra root files written after the manifest
}

// Assemble writes the PDFs, the manifest, any extra files and the PDF copies into a ZIP.
func Assemble(pdfs []File, manifest string, opts Options) ([]byte, error) {
	if len(pdfs) == 0 {
		return nil, fmt.Errorf("no PDF files to archive")
	}
	if opts.Folder == "" {
		opts.Folder = DefaultFolder
	}
	if opts.Level == 0 {
		opts.Level = DefaultLevel
	}
	if opts.Level < flate.HuffmanOnly || opts.Level > flate.BestCompression {
		return nil, fmt.Errorf("invalid deflate level %d", opts.Level)
	}
	if opts.Modified.IsZero() {
		opts.Modified = time.Now()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	level := opts.Level
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	seen := make(map[string]bool)
	add := func(name string, data []byte) error {
		if seen[name] {
			return fmt.Errorf("duplicate archive entry %q", name)
		}
		seen[name] = true
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: opts.Modified,
		})
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing entry %s: %w", name, err)
		}
		return nil
	}

	for _, f := range pdfs {
		if err := add(f.Name, f.Data); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := add(ManifestFileName, []byte(manifest)); err != nil {
		zw.Close()
		return nil, err
	}
	for _, f := range opts.Extra {
		if err := add(f.Name, f.Data); err != nil {
			zw.Close()
			return nil, err
		}
	}
	for _, f := range pdfs {
		if err := add(opts.Folder+"/"+f.Name, f.Data); err != nil {
			zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Entries lists the member names of a ZIP archive in order.
func Entries(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadEntry returns the content of one member of a ZIP archive.
func ReadEntry(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening entry %s: %w", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("entry %s not found", name)
}
