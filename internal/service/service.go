package service

import (
	"context"

	"github.com/ds124wfegd/tryon-compositor/internal/entity"
	"github.com/ds124wfegd/tryon-compositor/internal/pkg/compositor"
	"github.com/sirupsen/logrus"
)

type TryOnService interface {
	TryOn(ctx context.Context, req entity.CompositionRequest) entity.TryOnOutcome
}

type Options struct {
	OutputFormat string
	JPEGQuality  int
}

type tryOnService struct {
	compositor compositor.Compositor
	format     string
	quality    int
	log        logrus.FieldLogger
}

func NewTryOnService(c compositor.Compositor, opts Options, log logrus.FieldLogger) TryOnService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &tryOnService{
		compositor: c,
		format:     opts.OutputFormat,
		quality:    opts.JPEGQuality,
		log:        log,
	}
}
