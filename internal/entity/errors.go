package entity

import "errors"

// ErrorPrefix marks a textual failure result.
const ErrorPrefix = "Error: "

var (
	// Composition errors
	ErrEmptyInput    = errors.New("empty image data")
	ErrDecode        = errors.New("cannot identify image file")
	ErrZeroDimension = errors.New("image has zero width or height")
	ErrNoImage       = errors.New("composition produced no image")
	ErrTooLarge      = errors.New("image size exceeds limit, could be decompression bomb")

	// Request errors
	ErrMissingUserImage  = errors.New("user image is required")
	ErrMissingClothImage = errors.New("cloth image is required")

	// Output errors
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
