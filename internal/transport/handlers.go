package transport

import (
	"github.com/ds124wfegd/tryon-compositor/internal/service"
)

type TryOnHandler struct {
	service service.TryOnService
}

func NewTryOnHandler(service service.TryOnService) *TryOnHandler {
	return &TryOnHandler{service: service}
}
