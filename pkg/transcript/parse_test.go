package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rperrors "github.com/replaykit/replay/pkg/errors"
)

const sampleResult = `{
  "code": 0,
  "message": "ok",
  "data": {
    "videoUrl": "https://cdn.example.com/session.mp4",
    "audioUrl": "https://cdn.example.com/session.m4a",
    "duration": 1800.5,
    "result": "{\"pg\":[{\"sc\":[{\"id\":1,\"bt\":0,\"et\":1000,\"si\":1,\"tc\":\"a\"},{\"id\":2,\"bt\":1000,\"et\":2000,\"si\":1,\"tc\":\"b\"}]},{\"sc\":[{\"id\":3,\"bt\":2000,\"et\":3000,\"si\":2,\"tc\":\"c\"}]}]}"
  }
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(sampleResult))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/session.mp4", doc.VideoURL)
	assert.Equal(t, 1800.5, doc.DurationSec)
	require.Len(t, doc.Payload.Paragraphs, 2)
	assert.Len(t, doc.Payload.Paragraphs[0].Sentences, 2)
	assert.Equal(t, "c", doc.Payload.Paragraphs[1].Sentences[0].Text)
}

func TestDecodeDocument_MalformedJSON(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.True(t, rperrors.IsMalformedDocument(err))
}

func TestDecodeDocument_NonZeroCode(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"code": 50001, "message": "boom"}`))
	require.Error(t, err)
	assert.True(t, rperrors.IsMalformedDocument(err))
}

func TestDecodeDocument_MalformedInnerPayload(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader(`{"code":0,"data":{"result":"{oops"}}`))
	require.Error(t, err)
	assert.True(t, rperrors.IsMalformedDocument(err))
}

func TestDecodeDocument_EmptyResult(t *testing.T) {
	doc, err := DecodeDocument(strings.NewReader(`{"code":0,"data":{"duration":60}}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Payload.Paragraphs)
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload([]byte(`{"pg":[{"sc":[{"id":1,"bt":0,"et":10,"si":1,"tc":"x"}]}]}`))
	require.NoError(t, err)
	require.Len(t, p.Paragraphs, 1)
	assert.Equal(t, "x", p.Paragraphs[0].Sentences[0].Text)
}
