package compositor

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/tryon-compositor/internal/entity"
)

const DefaultFilter = "lanczos"

// DefaultMaxPixels rejects images above roughly 178 megapixels before any
// pixel buffer is allocated.
const DefaultMaxPixels int64 = 2 * 89478485

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// Compositor pastes a cloth image over a user image.
type Compositor interface {
	Compose(user, cloth []byte) entity.CompositionResult
}

type Options struct {
	// Filter names the resampling filter used to stretch the cloth image.
	Filter string
	// MaxPixels caps width*height of each decoded input. Zero means DefaultMaxPixels.
	MaxPixels int64
}

type compositor struct {
	filter    imaging.ResampleFilter
	maxPixels int64
}

func New(opts Options) (Compositor, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Filter))
	if name == "" {
		name = DefaultFilter
	}

	filter, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("unknown resample filter %q", opts.Filter)
	}

	maxPixels := opts.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &compositor{filter: filter, maxPixels: maxPixels}, nil
}

// Compose never panics: any failure is returned inside the result.
func (c *compositor) Compose(user, cloth []byte) (result entity.CompositionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = entity.Failed(fmt.Errorf("composition aborted: %v", r))
		}
	}()

	img, err := c.compose(user, cloth)
	if err != nil {
		return entity.Failed(err)
	}
	return entity.Succeeded(img)
}

func (c *compositor) compose(user, cloth []byte) (*image.NRGBA, error) {
	userImg, err := decode("user image", user, c.maxPixels)
	if err != nil {
		return nil, err
	}

	clothImg, err := decode("cloth image", cloth, c.maxPixels)
	if err != nil {
		return nil, err
	}

	base := toRGB(userImg)
	width, height := base.Bounds().Dx(), base.Bounds().Dy()

	// The mask comes from the original decode, so the alpha-carrying image is
	// resized as a whole and its alpha stays aligned with its color data.
	if hasAlpha(clothImg) {
		overlay := imaging.Resize(clothImg, width, height, c.filter)
		draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Over)
	} else {
		overlay := imaging.Resize(toRGB(clothImg), width, height, c.filter)
		draw.Draw(base, base.Bounds(), overlay, image.Point{}, draw.Src)
	}

	return base, nil
}
