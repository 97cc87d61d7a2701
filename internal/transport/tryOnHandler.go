package transport

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ds124wfegd/tryon-compositor/internal/entity"
	"github.com/gin-gonic/gin"
)

// Form field names. "model" is what the mobile client sends for the user photo.
const (
	fieldUser  = "user"
	fieldModel = "model"
	fieldCloth = "cloth"
)

// TryOn answers with JSON; the composed image is base64 encoded in "result".
func (h *TryOnHandler) TryOn(c *gin.Context) {
	outcome, status := h.compose(c)
	if !outcome.Ok() {
		c.JSON(status, entity.TryOnResponse{
			RequestID: outcome.RequestID,
			Status:    "error",
			Error:     outcome.Error,
		})
		return
	}

	c.JSON(http.StatusOK, entity.TryOnResponse{
		RequestID: outcome.RequestID,
		Status:    "ok",
		Format:    outcome.Format,
		Width:     outcome.Width,
		Height:    outcome.Height,
		Result:    base64.StdEncoding.EncodeToString(outcome.Data),
	})
}

// TryOnImage answers with the encoded image itself, or the error text.
func (h *TryOnHandler) TryOnImage(c *gin.Context) {
	outcome, status := h.compose(c)
	if !outcome.Ok() {
		c.String(status, outcome.Error)
		return
	}

	if outcome.RequestID != "" {
		c.Header("X-Request-ID", outcome.RequestID)
	}
	c.Data(http.StatusOK, outcome.ContentType, outcome.Data)
}

func (h *TryOnHandler) compose(c *gin.Context) (entity.TryOnOutcome, int) {
	user, err := readUpload(c, entity.ErrMissingUserImage, fieldUser, fieldModel)
	if err != nil {
		return failure(err), statusFor(err)
	}

	cloth, err := readUpload(c, entity.ErrMissingClothImage, fieldCloth)
	if err != nil {
		return failure(err), statusFor(err)
	}

	outcome := h.service.TryOn(c.Request.Context(), entity.CompositionRequest{
		UserImage:  user,
		ClothImage: cloth,
	})
	return outcome, http.StatusUnprocessableEntity
}

// readUpload returns the content of the first present field, or missing if none is.
func readUpload(c *gin.Context, missing error, fields ...string) ([]byte, error) {
	for _, field := range fields {
		header, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s upload: %w", field, err)
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s upload: %w", field, err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read %s upload: %w", field, err)
		}
		return data, nil
	}
	return nil, missing
}

func failure(err error) entity.TryOnOutcome {
	return entity.TryOnOutcome{Error: entity.ErrorPrefix + err.Error()}
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, entity.ErrMissingUserImage) || errors.Is(err, entity.ErrMissingClothImage) {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
