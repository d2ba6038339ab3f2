// utils/pdf.go
package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// StencilPDF centers a design on an A4 page at the requested print size in
// centimeters, ready for thermal stencil paper.
func StencilPDF(imageDataURL string, sizeCm float64) ([]byte, error) {
	if sizeCm <= 0 {
		return nil, errors.New("print size must be positive")
	}

	data, mimeType, err := DecodeDataURL(imageDataURL)
	if err != nil {
		return nil, err
	}

	var imageType string
	switch {
	case strings.Contains(mimeType, "png"):
		imageType = "PNG"
	case strings.Contains(mimeType, "jpeg"), strings.Contains(mimeType, "jpg"):
		imageType = "JPEG"
	default:
		return nil, fmt.Errorf("unsupported image type %q", mimeType)
	}

	pdf := gofpdf.New("P", "cm", "A4", "")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	x := (pageW - sizeCm) / 2
	y := (pageH - sizeCm) / 2

	opts := gofpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("design", opts, bytes.NewReader(data))
	pdf.ImageOptions("design", x, y, sizeCm, sizeCm, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering stencil pdf: %w", err)
	}
	return buf.Bytes(), nil
}
