package service

import (
	"encoding/base64"
	"fmt"

	"github.com/kdduha/gemini-relay/internal/models"
	"google.golang.org/genai"
)

// RawPayload is the generateContent body sent by the raw variant.
type RawPayload struct {
	Contents []RawContent `json:"contents"`
}

type RawContent struct {
	Parts []RawPart `json:"parts"`
}

type RawPart struct {
	Text       string   `json:"text,omitempty"`
	InlineData *RawBlob `json:"inlineData,omitempty"`
}

type RawBlob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// BuildRawPayload puts the prompt first and the image, if usable, second.
// The image data is forwarded as the caller sent it.
func BuildRawPayload(req *models.GenerateRequest) RawPayload {
	parts := []RawPart{{Text: req.Prompt}}
	if img, ok := req.UsableImage(); ok {
		parts = append(parts, RawPart{
			InlineData: &RawBlob{
				MimeType: img.MimeType,
				Data:     img.Data,
			},
		})
	}
	return RawPayload{Contents: []RawContent{{Parts: parts}}}
}

// BuildContents is the SDK counterpart of BuildRawPayload. The SDK wants raw
// bytes, so the image data has to be decoded here.
func BuildContents(req *models.GenerateRequest) ([]*genai.Content, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if img, ok := req.UsableImage(); ok {
		data, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, img.MimeType))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}
