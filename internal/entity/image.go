package entity

import (
	"image"
	"time"
)

// CompositionRequest pairs the two encoded uploads of a single try-on call.
type CompositionRequest struct {
	UserImage  []byte
	ClothImage []byte
}

// CompositionResult is either a composed image or the failure that prevented it.
// Exactly one of Image and Err is set.
type CompositionResult struct {
	Image *image.NRGBA
	Err   error
}

func Succeeded(img *image.NRGBA) CompositionResult {
	return CompositionResult{Image: img}
}

func Failed(err error) CompositionResult {
	return CompositionResult{Err: err}
}

func (r CompositionResult) Ok() bool {
	return r.Err == nil && r.Image != nil
}

// Message returns the text shown to the user in place of the image.
func (r CompositionResult) Message() string {
	if r.Ok() {
		return ""
	}
	if r.Err == nil {
		return ErrorPrefix + ErrNoImage.Error()
	}
	return ErrorPrefix + r.Err.Error()
}

// TryOnOutcome is a composition result after output encoding.
type TryOnOutcome struct {
	RequestID   string
	Data        []byte
	Format      string
	ContentType string
	Width       int
	Height      int
	Duration    time.Duration
	Error       string
}

func (o TryOnOutcome) Ok() bool {
	return o.Error == ""
}

type TryOnResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Format    string `json:"format,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Result    string `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
