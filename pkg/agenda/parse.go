package agenda

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	rperrors "github.com/replaykit/replay/pkg/errors"
)

type labEnvelope struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    *Document `json:"data"`
}

// DecodeDocument decodes a lab-info document. Missing optional blocks are
// fine; a malformed envelope is a load failure.
func DecodeDocument(r io.Reader) (*Document, error) {
	var env labEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decoding lab info: %v", rperrors.ErrMalformedDocument, err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("%w: lab info code %d: %s", rperrors.ErrMalformedDocument, env.Code, env.Message)
	}
	if env.Data == nil {
		return &Document{}, nil
	}
	return env.Data, nil
}

// LoadDocument reads and decodes a lab-info document from disk.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lab info: %w", err)
	}
	defer f.Close()
	return DecodeDocument(f)
}
