package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/replaykit/replay/pkg/annotation"
	rperrors "github.com/replaykit/replay/pkg/errors"
)

// FetchMarks retrieves the stored annotation snapshot for a session.
func (c *Client) FetchMarks(ctx context.Context, sessionID string) (annotation.Snapshot, error) {
	body, err := c.get(ctx, "/api/session/"+sessionID+"/marks")
	if err != nil {
		return annotation.Snapshot{}, fmt.Errorf("fetching marks: %w", err)
	}

	data, err := unwrap(body)
	if err != nil {
		return annotation.Snapshot{}, err
	}

	var snap annotation.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return annotation.Snapshot{}, fmt.Errorf("%w: decoding marks: %v", rperrors.ErrMalformedDocument, err)
	}
	return snap, nil
}

// SaveMarks uploads an annotation snapshot for a session, replacing whatever
// the sidecar held before.
func (c *Client) SaveMarks(ctx context.Context, sessionID string, snap annotation.Snapshot) error {
	body, err := c.postJSON(ctx, "/api/session/"+sessionID+"/marks", snap)
	if err != nil {
		return fmt.Errorf("saving marks: %w", err)
	}
	if _, err := unwrap(body); err != nil {
		return err
	}
	return nil
}
