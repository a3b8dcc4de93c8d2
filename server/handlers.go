package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/replaykit/replay/pkg/annotation"
	"github.com/replaykit/replay/pkg/logging"
	"github.com/replaykit/replay/pkg/transcript"
)

// transcriptData mirrors the upstream transcription service's data block:
// the transcript body travels as a JSON-encoded string under result.
type transcriptData struct {
	VideoURL string  `json:"videoUrl"`
	AudioURL string  `json:"audioUrl"`
	Duration float64 `json:"duration"`
	Result   string  `json:"result"`
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data, ok := s.store.Get(id)
	if !ok || data.Transcript == nil {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}

	doc := data.Transcript
	result, err := json.Marshal(doc.Payload)
	if err != nil {
		s.logger.Error("encoding transcript payload", logging.Err(err))
		s.writeEnvelope(w, codeInternalError, "encoding transcript", nil)
		return
	}

	s.writeOK(w, transcriptData{
		VideoURL: doc.VideoURL,
		AudioURL: doc.AudioURL,
		Duration: doc.DurationSec,
		Result:   string(result),
	})
}

func (s *Server) handleLabInfo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data, ok := s.store.Get(id)
	if !ok {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}
	s.writeOK(w, data.Lab)
}

type filterRequest struct {
	SessionID  string `json:"sessionId,omitempty"`
	SpeakerIDs []int  `json:"speakerIds"`
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeEnvelope(w, codeBadRequest, "invalid filter request", nil)
		return
	}

	var (
		data *SessionData
		ok   bool
	)
	if req.SessionID != "" {
		data, ok = s.store.Get(req.SessionID)
	} else {
		data, ok = s.store.only()
	}
	if !ok || data.Transcript == nil {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}

	// Unlike the transcript document, the filter response carries the
	// payload directly in the data block, not as an encoded result string.
	filtered := transcript.FilterBySpeakers(data.Transcript.Payload, req.SpeakerIDs)

	s.logger.Debug("transcript filtered",
		logging.F("speakers", len(req.SpeakerIDs)),
		logging.F("paragraphs", len(filtered.Paragraphs)))
	s.writeOK(w, filtered)
}

// marksSessionID resolves the target session for a marks request: the path
// segment when present, otherwise the sole loaded session. The session-less
// form matches the upstream /api/marks route.
func (s *Server) marksSessionID(r *http.Request) (string, bool) {
	if id := mux.Vars(r)["id"]; id != "" {
		return id, true
	}
	return s.store.onlyID()
}

func (s *Server) handleGetMarks(w http.ResponseWriter, r *http.Request) {
	id, ok := s.marksSessionID(r)
	if !ok {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}
	snap, ok := s.store.GetMarks(id)
	if !ok {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}
	s.writeOK(w, snap)
}

func (s *Server) handleSaveMarks(w http.ResponseWriter, r *http.Request) {
	id, ok := s.marksSessionID(r)
	if !ok {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}

	var snap annotation.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.writeEnvelope(w, codeBadRequest, "invalid marks payload", nil)
		return
	}

	for _, rec := range snap.GroupMarks {
		if rec.Type != annotation.MarkNone && !rec.Type.Valid() {
			s.writeEnvelope(w, codeBadRequest, "invalid mark type: "+string(rec.Type), nil)
			return
		}
	}
	for _, m := range snap.TextMarks {
		if !annotation.ValidMarkID(m.ID) {
			s.writeEnvelope(w, codeBadRequest, "invalid mark id: "+m.ID, nil)
			return
		}
		if !m.Type.Valid() {
			s.writeEnvelope(w, codeBadRequest, "invalid mark type: "+string(m.Type), nil)
			return
		}
	}

	if !s.store.SetMarks(id, snap) {
		s.writeEnvelope(w, codeNotFound, "session not found", nil)
		return
	}

	s.logger.Debug("marks saved",
		logging.F("session", id),
		logging.F("groupMarks", len(snap.GroupMarks)),
		logging.F("textMarks", len(snap.TextMarks)))
	s.writeOK(w, map[string]any{})
}
