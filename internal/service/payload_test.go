package service

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/kdduha/gemini-relay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildRawPayload_TextOnly(t *testing.T) {
	t.Parallel()

	p := BuildRawPayload(&models.GenerateRequest{Prompt: "hello"})
	require.Len(t, p.Contents, 1)
	require.Len(t, p.Contents[0].Parts, 1)
	assert.Equal(t, "hello", p.Contents[0].Parts[0].Text)
	assert.Nil(t, p.Contents[0].Parts[0].InlineData)
}

func TestBuildRawPayload_WithImage(t *testing.T) {
	t.Parallel()

	p := BuildRawPayload(&models.GenerateRequest{
		Prompt: "what is this",
		Image:  &models.InlineImage{Data: "aGVsbG8=", MimeType: "image/png"},
	})
	require.Len(t, p.Contents[0].Parts, 2)
	assert.Equal(t, "what is this", p.Contents[0].Parts[0].Text)
	require.NotNil(t, p.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", p.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "aGVsbG8=", p.Contents[0].Parts[1].InlineData.Data)

	body, err := sonic.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"contents":[{"parts":[{"text":"what is this"},{"inlineData":{"mimeType":"image/png","data":"aGVsbG8="}}]}]}`,
		string(body))
}

func TestBuildRawPayload_IncompleteImageDropped(t *testing.T) {
	t.Parallel()

	for name, img := range map[string]*models.InlineImage{
		"no data":      {MimeType: "image/png"},
		"no mime type": {Data: "aGVsbG8="},
		"empty":        {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p := BuildRawPayload(&models.GenerateRequest{Prompt: "hello", Image: img})
			require.Len(t, p.Contents[0].Parts, 1)
			assert.Equal(t, "hello", p.Contents[0].Parts[0].Text)
			assert.Nil(t, p.Contents[0].Parts[0].InlineData)
		})
	}
}

func TestBuildContents_WithImage(t *testing.T) {
	t.Parallel()

	contents, err := BuildContents(&models.GenerateRequest{
		Prompt: "what is this",
		Image:  &models.InlineImage{Data: "aGVsbG8=", MimeType: "image/jpeg"},
	})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	require.Len(t, contents[0].Parts, 2)
	assert.Equal(t, "what is this", contents[0].Parts[0].Text)
	require.NotNil(t, contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", contents[0].Parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("hello"), contents[0].Parts[1].InlineData.Data)
}

func TestBuildContents_IncompleteImageDropped(t *testing.T) {
	t.Parallel()

	contents, err := BuildContents(&models.GenerateRequest{
		Prompt: "hello",
		Image:  &models.InlineImage{Data: "aGVsbG8="},
	})
	require.NoError(t, err)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "hello", contents[0].Parts[0].Text)
	assert.Nil(t, contents[0].Parts[0].InlineData)
}

func TestBuildContents_InvalidBase64(t *testing.T) {
	t.Parallel()

	_, err := BuildContents(&models.GenerateRequest{
		Prompt: "hello",
		Image:  &models.InlineImage{Data: "%%%not base64", MimeType: "image/png"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidImage)
}
