package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaykit/replay/config"
	"github.com/replaykit/replay/pkg/annotation"
)

// marksBackend is a minimal sidecar stub for the marks endpoints.
type marksBackend struct {
	mu   sync.Mutex
	snap annotation.Snapshot
}

func (b *marksBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/session/lab-42/marks", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{
				"code": 0, "message": "success", "data": b.snap,
			})
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&b.snap); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"code": 0, "message": "success", "data": map[string]any{},
			})
		}
	})
	return mux
}

func marksTestConfig(serverURL string) *config.CLIConfig {
	cfg := testConfig()
	cfg.ServerAddress = serverURL
	return cfg
}

// TestNewMarksCommand verifies the marks command structure.
func TestNewMarksCommand(t *testing.T) {
	cmd := NewMarksCommand(DefaultMarksDeps())

	assert.Equal(t, "marks", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set")
	assert.Contains(t, names, "clear")
}

func TestMarksShow_Empty(t *testing.T) {
	backend := &marksBackend{}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	cmd := NewMarksCommand(&MarksCommandDeps{Config: marksTestConfig(ts.URL)})
	out, err := execute(t, cmd, "show", "-s", "lab-42")
	require.NoError(t, err)

	assert.Contains(t, out, "No marks.")
}

func TestMarksSetShowClear(t *testing.T) {
	backend := &marksBackend{}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	cfg := marksTestConfig(ts.URL)

	cmd := NewMarksCommand(&MarksCommandDeps{Config: cfg})
	out, err := execute(t, cmd, "set", "g1", "-s", "lab-42", "--type", "question")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked g1 as question.")

	cmd = NewMarksCommand(&MarksCommandDeps{Config: cfg})
	out, err = execute(t, cmd, "show", "-s", "lab-42")
	require.NoError(t, err)
	assert.Contains(t, out, "g1")
	assert.Contains(t, out, "question")

	// Setting again replaces the mark instead of duplicating it.
	cmd = NewMarksCommand(&MarksCommandDeps{Config: cfg})
	_, err = execute(t, cmd, "set", "g1", "-s", "lab-42", "--type", "important")
	require.NoError(t, err)
	assert.Len(t, backend.snap.GroupMarks, 1)
	assert.Equal(t, annotation.MarkImportant, backend.snap.GroupMarks[0].Type)

	cmd = NewMarksCommand(&MarksCommandDeps{Config: cfg})
	out, err = execute(t, cmd, "clear", "g1", "-s", "lab-42")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared mark on g1.")
	assert.Empty(t, backend.snap.GroupMarks)
}

func TestMarksSet_InvalidType(t *testing.T) {
	cmd := NewMarksCommand(&MarksCommandDeps{Config: testConfig()})
	_, err := execute(t, cmd, "set", "g1", "-s", "lab-42", "--type", "urgent")
	assert.Error(t, err)
}

func TestMarksClear_NoMark(t *testing.T) {
	backend := &marksBackend{}
	ts := httptest.NewServer(backend.handler())
	defer ts.Close()

	cmd := NewMarksCommand(&MarksCommandDeps{Config: marksTestConfig(ts.URL)})
	out, err := execute(t, cmd, "clear", "g9", "-s", "lab-42")
	require.NoError(t, err)
	assert.Contains(t, out, "No mark on g9.")
}

func TestMarks_RequireSession(t *testing.T) {
	cmd := NewMarksCommand(&MarksCommandDeps{Config: testConfig()})
	_, err := execute(t, cmd, "show")
	assert.Error(t, err)
}
