// Package httpapi exposes tiled upscaling over HTTP with a JSON body carrying a base64 image.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/vearutop/tilesr"
)

// MaxBodySize limits request bodies.
const MaxBodySize = 10 << 20

const defaultScale = 2

// Request is the body of POST /upscale.
type Request struct {
	Image string `json:"image"`
	Scale int    `json:"scale,omitempty"`
}

// Response is the body of every reply.
type Response struct {
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

type handler struct {
	up *tilesr.Upscaler
}

// NewHandler returns a gzip-enabled handler that upscales images with up.
func NewHandler(up *tilesr.Upscaler) http.Handler {
	return gzhttp.GzipHandler(&handler{up: up})
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "Method Not Allowed"})
		return
	}

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "invalid request: " + err.Error()})
		return
	}
	if req.Image == "" {
		writeJSON(w, http.StatusBadRequest, Response{Error: "No image provided"})
		return
	}
	if req.Scale == 0 {
		req.Scale = defaultScale
	}

	opt := h.up.Options()
	if err := tilesr.ValidateScale(req.Scale, opt.Scales); err != nil {
		writeError(w, err)
		return
	}

	data, err := tilesr.DecodeBase64(req.Image)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	img, err := tilesr.DecodeLimited(data, opt.Limits, req.Scale)
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.up.Upscale(r.Context(), img, req.Scale)
	if err != nil {
		tilesr.Logger().Warn("upscale request failed", "error", err)
		writeError(w, err)
		return
	}

	encoded, err := tilesr.EncodeBase64PNG(out)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Image: encoded})
}

// StatusCode maps upscale errors to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, tilesr.ErrImageTooLarge), errors.Is(err, tilesr.ErrOutputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, tilesr.ErrInvalidScale), errors.Is(err, tilesr.ErrInvalidImage),
		errors.Is(err, image.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, tilesr.ErrBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusCode(err), Response{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
