package models

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr error
	}{
		{name: "prompt", req: GenerateRequest{Prompt: "hi"}},
		{name: "empty", req: GenerateRequest{}, wantErr: ErrEmptyPrompt},
		{name: "whitespace", req: GenerateRequest{Prompt: " \n\t"}, wantErr: ErrEmptyPrompt},
		{
			name:    "image without prompt",
			req:     GenerateRequest{Image: &InlineImage{Data: "aGk=", MimeType: "image/png"}},
			wantErr: ErrEmptyPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateRequest_UsableImage(t *testing.T) {
	t.Parallel()

	img, ok := GenerateRequest{Prompt: "p"}.UsableImage()
	assert.False(t, ok)
	assert.Nil(t, img)

	_, ok = GenerateRequest{Prompt: "p", Image: &InlineImage{Data: "aGk="}}.UsableImage()
	assert.False(t, ok, "missing mimeType")

	_, ok = GenerateRequest{Prompt: "p", Image: &InlineImage{MimeType: "image/png"}}.UsableImage()
	assert.False(t, ok, "missing data")

	img, ok = GenerateRequest{Prompt: "p", Image: &InlineImage{Data: "aGk=", MimeType: "image/png"}}.UsableImage()
	assert.True(t, ok)
	assert.Equal(t, "image/png", img.MimeType)
}

func TestGenerateRequest_UnmarshalImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantImage *InlineImage
	}{
		{
			name:      "object",
			body:      `{"prompt":"hi","image":{"data":"aGk=","mimeType":"image/png"}}`,
			wantImage: &InlineImage{Data: "aGk=", MimeType: "image/png"},
		},
		{name: "missing", body: `{"prompt":"hi"}`},
		{name: "null", body: `{"prompt":"hi","image":null}`},
		{name: "string", body: `{"prompt":"hi","image":"abc"}`},
		{name: "number", body: `{"prompt":"hi","image":42}`},
		{name: "wrong field types", body: `{"prompt":"hi","image":{"data":1,"mimeType":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req GenerateRequest
			require.NoError(t, sonic.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, "hi", req.Prompt)
			assert.Equal(t, tt.wantImage, req.Image)
		})
	}
}

func TestGenerateRequest_UnmarshalInvalidJSON(t *testing.T) {
	t.Parallel()

	var req GenerateRequest
	require.Error(t, sonic.Unmarshal([]byte(`{"prompt":`), &req))
	require.Error(t, sonic.Unmarshal([]byte(`{"prompt":5}`), &req))
}
