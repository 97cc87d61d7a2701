package service

import (
	"context"
	"time"

	"github.com/ds124wfegd/tryon-compositor/internal/entity"
	"github.com/ds124wfegd/tryon-compositor/internal/pkg/codec"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (s *tryOnService) TryOn(ctx context.Context, req entity.CompositionRequest) entity.TryOnOutcome {
	start := time.Now()
	outcome := entity.TryOnOutcome{RequestID: uuid.New().String()}

	entry := s.log.WithFields(logrus.Fields{
		"request_id":  outcome.RequestID,
		"user_bytes":  len(req.UserImage),
		"cloth_bytes": len(req.ClothImage),
	})

	if err := ctx.Err(); err != nil {
		outcome.Error = entity.ErrorPrefix + err.Error()
		entry.WithError(err).Warn("Try-on request cancelled")
		return outcome
	}

	result := s.compositor.Compose(req.UserImage, req.ClothImage)
	outcome.Duration = time.Since(start)
	if !result.Ok() {
		outcome.Error = result.Message()
		entry.WithField("duration", outcome.Duration).WithError(result.Err).Warn("Composition failed")
		return outcome
	}

	format, err := codec.Normalize(s.format)
	if err == nil {
		outcome.Data, err = codec.Encode(result.Image, format, s.quality)
	}
	if err != nil {
		outcome.Error = entity.ErrorPrefix + err.Error()
		entry.WithError(err).Error("Encoding composed image failed")
		return outcome
	}

	bounds := result.Image.Bounds()
	outcome.Format = format
	outcome.ContentType = codec.ContentType(format)
	outcome.Width = bounds.Dx()
	outcome.Height = bounds.Dy()
	outcome.Duration = time.Since(start)

	entry.WithFields(logrus.Fields{
		"width":    outcome.Width,
		"height":   outcome.Height,
		"format":   outcome.Format,
		"duration": outcome.Duration,
	}).Info("Composition completed")

	return outcome
}
