package compositor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/tryon-compositor/internal/entity"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decode reads any registered format. Animated GIFs yield their first frame.
// The declared size is checked against maxPixels before the pixels are read,
// since an out of memory failure cannot be recovered.
func decode(name string, data []byte, maxPixels int64) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, entity.ErrEmptyInput)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w: %w", name, mimetype.Detect(data).String(), entity.ErrDecode, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxPixels {
		return nil, fmt.Errorf("%s: %dx%d: %w (limit %d pixels)", name, cfg.Width, cfg.Height, entity.ErrTooLarge, maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w: %w", name, mimetype.Detect(data).String(), entity.ErrDecode, err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%s: %w", name, entity.ErrZeroDimension)
	}
	return img, nil
}

// hasAlpha reports whether the decoder produced a model with a transparency channel.
// Paletted and grayscale decodes count as color-only.
func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64, *image.NYCbCrA:
		return true
	}
	return false
}

// toRGB returns an opaque copy anchored at the origin. Alpha is dropped, not
// flattened, so the stored color of transparent pixels comes through as is.
func toRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
