package session

import "github.com/unimap/globe/pkg/core"

// Recorder receives engagement events from live sessions. Implemented by
// the telemetry writer; sessions never block on it.
type Recorder interface {
	RecordHover(sessionID, entityID string)
	RecordSelect(sessionID, entityID string)
	RecordFocus(sessionID string, level core.FocusLevel)
	RecordAltitude(sessionID string, meters float64)
}

// NopRecorder discards all engagement events.
type NopRecorder struct{}

func (NopRecorder) RecordHover(string, string)          {}
func (NopRecorder) RecordSelect(string, string)         {}
func (NopRecorder) RecordFocus(string, core.FocusLevel) {}
func (NopRecorder) RecordAltitude(string, float64)      {}
