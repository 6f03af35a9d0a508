package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kdduha/gemini-relay/internal/config"
	"github.com/kdduha/gemini-relay/internal/metrics"
	"github.com/kdduha/gemini-relay/internal/models"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// TextService goes through the genai SDK and returns only the text of the
// first candidate.
type TextService struct {
	logger    logrus.FieldLogger
	client    *genai.Client
	modelName string
}

// NewTextService builds the SDK client when a key is configured. Without a
// key the service is returned unconfigured and every call fails with
// ErrAPIKeyMissing.
func NewTextService(ctx context.Context, logger logrus.FieldLogger, httpClient *http.Client, cfg config.GeminiConfig) (*TextService, error) {
	s := &TextService{
		logger:    logger.WithField("variant", VariantText),
		modelName: cfg.TextModel,
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	s.client = client
	return s, nil
}

func (s *TextService) Configured() bool {
	return s.client != nil
}

func (s *TextService) Generate(ctx context.Context, req *models.GenerateRequest) (*models.TextResponse, error) {
	if !s.Configured() {
		return nil, ErrAPIKeyMissing
	}

	contents, err := BuildContents(req)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("model", s.modelName).Debug("sending generateContent")

	start := time.Now()
	resp, err := s.client.Models.GenerateContent(ctx, s.modelName, contents, nil)
	if err != nil {
		if perr := providerErrorFrom(err); perr != nil {
			metrics.ProviderRequest(VariantText, perr.StatusCode, time.Since(start))
			return nil, perr
		}
		metrics.ProviderRequest(VariantText, 0, time.Since(start))
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	metrics.ProviderRequest(VariantText, http.StatusOK, time.Since(start))

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if cand := resp.Candidates[0]; !hasText(cand) {
		var reason genai.FinishReason
		if cand != nil {
			reason = cand.FinishReason
		}
		return nil, fmt.Errorf("%w (finish reason %q)", ErrEmptyCandidate, reason)
	}
	return &models.TextResponse{Text: resp.Text()}, nil
}

// hasText reports whether the candidate carries at least one text part.
// Blocked candidates come back with a finish reason and no content.
func hasText(cand *genai.Candidate) bool {
	if cand == nil || cand.Content == nil {
		return false
	}
	for _, p := range cand.Content.Parts {
		if p != nil && p.Text != "" {
			return true
		}
	}
	return false
}

func providerErrorFrom(err error) *ProviderError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code > 0 {
		return &ProviderError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code > 0 {
		return &ProviderError{StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return nil
}
