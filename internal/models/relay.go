package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// GenerateRequest represents request for both relay endpoints
type GenerateRequest struct {
	Prompt string       `json:"prompt" example:"Describe this picture"`
	Image  *InlineImage `json:"image,omitempty"`
}

// UnmarshalJSON tolerates an image that is not an object (a string, a
// number, a malformed object). Such an image is dropped like an incomplete
// one and the prompt goes out as text only.
func (r *GenerateRequest) UnmarshalJSON(data []byte) error {
	var wire struct {
		Prompt string          `json:"prompt"`
		Image  json.RawMessage `json:"image"`
	}
	if err := sonic.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.Prompt = wire.Prompt
	r.Image = nil

	raw := strings.TrimSpace(string(wire.Image))
	if !strings.HasPrefix(raw, "{") {
		return nil
	}
	var img InlineImage
	if err := sonic.UnmarshalString(raw, &img); err == nil {
		r.Image = &img
	}
	return nil
}

func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// UsableImage returns the attached image if it can be sent to the provider.
func (r GenerateRequest) UsableImage() (*InlineImage, bool) {
	if r.Image == nil || !r.Image.Usable() {
		return nil, false
	}
	return r.Image, true
}

// InlineImage is a base64 encoded image embedded in the request body.
type InlineImage struct {
	Data     string `json:"data" example:"iVBORw0KGgoAAAANSUhEUgAA..."`
	MimeType string `json:"mimeType" example:"image/png"`
}

// Usable reports whether both data and MIME type are present. Images missing
// either are dropped and the prompt goes out as text only.
func (i InlineImage) Usable() bool {
	return i.Data != "" && i.MimeType != ""
}

type TextResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
