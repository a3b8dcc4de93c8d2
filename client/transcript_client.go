package client

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"

	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/transcript"
)

// FetchTranscript retrieves the transcription-result document for a session.
func (c *Client) FetchTranscript(ctx context.Context, sessionID string) (*transcript.Document, error) {
	body, err := c.get(ctx, "/api/session/"+sessionID+"/transcript")
	if err != nil {
		return nil, fmt.Errorf("fetching transcript: %w", err)
	}
	return transcript.DecodeDocument(bytes.NewReader(body))
}

// FetchLabInfo retrieves the lab-info document (agenda, keywords, speaker
// summaries) for a session.
func (c *Client) FetchLabInfo(ctx context.Context, sessionID string) (*agenda.Document, error) {
	body, err := c.get(ctx, "/api/session/"+sessionID+"/lab")
	if err != nil {
		return nil, fmt.Errorf("fetching lab info: %w", err)
	}
	return agenda.DecodeDocument(bytes.NewReader(body))
}

// filterRequest is the speaker-filter request body.
type filterRequest struct {
	SpeakerIDs []int `json:"speakerIds"`
}

// FilterClient issues speaker-filter requests and guards against
// out-of-order responses. Each request takes a generation number; a response
// whose generation is no longer current is discarded, so a stale filter
// result can never overwrite a newer one regardless of network ordering.
type FilterClient struct {
	client *Client
	gen    atomic.Int64
}

// NewFilterClient creates a FilterClient on top of c.
func NewFilterClient(c *Client) *FilterClient {
	return &FilterClient{client: c}
}

// Filter requests the transcript filtered to the given speakers. An empty
// speaker list asks for the unfiltered transcript. The bool result is false
// when the response was stale and must not be adopted; err is non-nil when
// the response was unusable, and callers keep their previous payload in both
// cases.
func (fc *FilterClient) Filter(ctx context.Context, speakerIDs []int) (transcript.Payload, bool, error) {
	gen := fc.gen.Add(1)

	body, err := fc.client.postJSON(ctx, "/api/transcript/filter", filterRequest{SpeakerIDs: speakerIDs})
	if err != nil {
		return transcript.Payload{}, false, fmt.Errorf("filter request: %w", err)
	}
	if fc.gen.Load() != gen {
		return transcript.Payload{}, false, nil
	}

	data, err := unwrap(body)
	if err != nil {
		return transcript.Payload{}, false, err
	}

	// The data block is the filtered payload itself. A response without a
	// usable payload is never adopted; the caller keeps what it has.
	payload, err := transcript.DecodePayload(data)
	if err != nil {
		return transcript.Payload{}, false, err
	}
	return payload, true, nil
}
