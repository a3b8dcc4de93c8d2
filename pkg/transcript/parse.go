package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	rperrors "github.com/replaykit/replay/pkg/errors"
)

// resultEnvelope is the transcription service's response envelope. The
// transcript body arrives as a JSON-encoded string under data.result.
type resultEnvelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    *resultData `json:"data"`
}

type resultData struct {
	VideoURL string  `json:"videoUrl"`
	AudioURL string  `json:"audioUrl"`
	Duration float64 `json:"duration"`
	Result   string  `json:"result"`
}

// DecodeDocument decodes a transcription-result document. Malformed JSON,
// a non-zero envelope code, or an unparseable inner payload all fail the
// load; this is the one place malformed input is surfaced as an error
// rather than degraded around.
func DecodeDocument(r io.Reader) (*Document, error) {
	var env resultEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decoding transcription result: %v", rperrors.ErrMalformedDocument, err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("%w: transcription result code %d: %s", rperrors.ErrMalformedDocument, env.Code, env.Message)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: transcription result has no data", rperrors.ErrMalformedDocument)
	}

	doc := &Document{
		VideoURL:    env.Data.VideoURL,
		AudioURL:    env.Data.AudioURL,
		DurationSec: env.Data.Duration,
	}

	if env.Data.Result == "" {
		return doc, nil
	}
	if err := json.Unmarshal([]byte(env.Data.Result), &doc.Payload); err != nil {
		return nil, fmt.Errorf("%w: decoding transcript payload: %v", rperrors.ErrMalformedDocument, err)
	}
	return doc, nil
}

// LoadDocument reads and decodes a transcription-result document from disk.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcription result: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}

// DecodePayload decodes a bare transcript payload ({"pg": [...]}), the shape
// returned by the filter endpoint.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: decoding transcript payload: %v", rperrors.ErrMalformedDocument, err)
	}
	return p, nil
}
