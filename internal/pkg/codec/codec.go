package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/ds124wfegd/tryon-compositor/internal/entity"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"

	DefaultJPEGQuality = 90
)

// Normalize maps aliases such as "jpg" to a canonical format name.
func Normalize(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

func Encode(img image.Image, format string, quality int) ([]byte, error) {
	format, err := Normalize(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func ContentType(format string) string {
	if f, err := Normalize(format); err == nil && f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}
