package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/gemini-relay/internal/models"
	"github.com/kdduha/gemini-relay/internal/service"
	"github.com/sirupsen/logrus"
)

type rawService interface {
	Configured() bool
	Generate(ctx context.Context, req *models.GenerateRequest) ([]byte, error)
}

type textService interface {
	Configured() bool
	Generate(ctx context.Context, req *models.GenerateRequest) (*models.TextResponse, error)
}

type RelayHandler struct {
	logger       logrus.FieldLogger
	raw          rawService
	text         textService
	maxBodyBytes int64
}

func NewRelayHandler(logger logrus.FieldLogger, raw rawService, text textService, maxBodyBytes int64) *RelayHandler {
	return &RelayHandler{
		logger:       logger,
		raw:          raw,
		text:         text,
		maxBodyBytes: maxBodyBytes,
	}
}

// Generate godoc
// @Summary Relay prompt, raw provider response
// @Description Forwards prompt and optional inline image to Gemini over REST and returns the provider JSON unchanged.
// @Tags relay
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Prompt request"
// @Success 200 {object} map[string]interface{} "Provider generateContent response"
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/gemini [post]
func (h *RelayHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r, h.raw.Configured())
	if !ok {
		return
	}

	body, err := h.raw.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, service.VariantRaw, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.WithError(err).Warn("failed to write response")
	}
}

// GenerateText godoc
// @Summary Relay prompt, text only
// @Description Forwards prompt and optional inline image to Gemini through the SDK and returns the first candidate text.
// @Tags relay
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Prompt request"
// @Success 200 {object} models.TextResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /gemini [post]
func (h *RelayHandler) GenerateText(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r, h.text.Configured())
	if !ok {
		return
	}

	resp, err := h.text.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, service.VariantText, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// readRequest runs the checks shared by both routes, in order: method,
// server key, body, prompt. It writes the error response itself.
func (h *RelayHandler) readRequest(w http.ResponseWriter, r *http.Request, configured bool) (*models.GenerateRequest, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, models.ErrorResponse{Error: "method not allowed"})
		return nil, false
	}

	if !configured {
		h.logger.Error(service.ErrAPIKeyMissing.Error())
		writeJSON(w, h.logger, http.StatusInternalServerError, models.ErrorResponse{Error: service.ErrAPIKeyMissing.Error()})
		return nil, false
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, h.logger, http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
			})
			return nil, false
		}
		writeJSON(w, h.logger, http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("failed to read body: %s", err)})
		return nil, false
	}

	var req models.GenerateRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("invalid JSON: %s", err)})
		return nil, false
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return &req, true
}

func (h *RelayHandler) writeError(w http.ResponseWriter, variant string, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var perr *service.ProviderError
	switch {
	case errors.As(err, &perr):
		status = perr.StatusCode
		message = perr.Body
	case errors.Is(err, service.ErrInvalidImage):
		status = http.StatusBadRequest
	}

	h.logger.WithFields(logrus.Fields{
		"variant": variant,
		"status":  status,
	}).WithError(err).Error("relay failed")

	writeJSON(w, h.logger, status, models.ErrorResponse{Error: message})
}
