package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kdduha/gemini-relay/internal/config"
	"github.com/kdduha/gemini-relay/internal/metrics"
	"github.com/kdduha/gemini-relay/internal/models"
	"github.com/sirupsen/logrus"
)

// RawService calls the generateContent REST endpoint directly and hands the
// provider body back untouched.
type RawService struct {
	logger     logrus.FieldLogger
	httpClient *http.Client
	apiKey     string
	baseURL    string
	apiVersion string
	modelName  string
}

func NewRawService(logger logrus.FieldLogger, httpClient *http.Client, cfg config.GeminiConfig) *RawService {
	return &RawService{
		logger:     logger.WithField("variant", VariantRaw),
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		modelName:  cfg.RawModel,
	}
}

func (s *RawService) Configured() bool {
	return s.apiKey != ""
}

func (s *RawService) Generate(ctx context.Context, req *models.GenerateRequest) ([]byte, error) {
	if !s.Configured() {
		return nil, ErrAPIKeyMissing
	}

	body, err := sonic.Marshal(BuildRawPayload(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(true), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	s.logger.WithField("model", s.modelName).Debug("sending generateContent")

	start := time.Now()
	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		metrics.ProviderRequest(VariantRaw, 0, time.Since(start))
		return nil, fmt.Errorf("gemini request: %w", s.redact(err))
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	metrics.ProviderRequest(VariantRaw, httpResp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ProviderError{
			StatusCode: httpResp.StatusCode,
			Body:       string(rawBody),
		}
	}

	if !sonic.ConfigDefault.Valid(rawBody) {
		return nil, errors.New("decode response: gemini returned malformed JSON")
	}
	return rawBody, nil
}

func (s *RawService) endpoint(withKey bool) string {
	u := fmt.Sprintf(generateContentURLTemplate, s.baseURL, s.apiVersion, s.modelName)
	if !withKey {
		return u
	}
	return u + "?" + url.Values{"key": []string{s.apiKey}}.Encode()
}

// redact strips the key from transport errors, which embed the request URL.
func (s *RawService) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = s.endpoint(false)
	}
	return err
}
