package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func sample(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{R: 255, A: 255})
	}
	return img
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, sample(40, 30)); err != nil {
		t.Fatal(err)
	}
	got, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != image.Rect(0, 0, 40, 30) {
		t.Errorf("bounds = %v", got.Bounds())
	}
	if _, _, _, a := got.At(5, 0).RGBA(); a != 0 {
		t.Errorf("pixel off the line has alpha %d", a)
	}
	if r, _, _, a := got.At(5, 15).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("pixel on the line = %v", got.At(5, 15))
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sample(200, 100)); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if !bytes.Contains(buf.Bytes(), []byte("/Image")) {
		t.Error("output has no embedded image")
	}
}

func TestWritePDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, image.NewNRGBA(image.Rectangle{})); err == nil {
		t.Error("expected an error for an empty image")
	}
}

func TestForExtension(t *testing.T) {
	for _, ext := range []string{".png", ".PDF"} {
		encode, err := ForExtension(ext)
		if err != nil {
			t.Fatalf("ForExtension(%q) = %v", ext, err)
		}
		var buf bytes.Buffer
		if err := encode(&buf, sample(10, 10)); err != nil || buf.Len() == 0 {
			t.Errorf("%s: nothing written (%v)", ext, err)
		}
	}

	if _, err := ForExtension(".gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ForExtension(.gif) = %v, want ErrUnknownFormat", err)
	}
}
