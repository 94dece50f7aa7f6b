// Package export encodes rendered pad snapshots as PNG or PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ErrUnknownFormat is returned by ForExtension for an unsupported extension.
var ErrUnknownFormat = errors.New("export: unknown file format")

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePDF writes a single page PDF sized to img, one point per pixel,
// with img placed over the whole page.
func WritePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("export: empty image")
	}
	wd, ht := float64(b.Dx()), float64(b.Dy())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("Sketchpad", false)
	p.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("sketch", opt, &buf)
	p.ImageOptions("sketch", 0, 0, wd, ht, false, opt, 0, "")
	if err := p.Error(); err != nil {
		return fmt.Errorf("export: building pdf: %w", err)
	}
	return p.Output(w)
}

// Encoder writes an image in one file format.
type Encoder func(w io.Writer, img image.Image) error

// ForExtension returns the encoder for a file extension such as ".png".
func ForExtension(ext string) (Encoder, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return WritePNG, nil
	case ".pdf":
		return WritePDF, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}
