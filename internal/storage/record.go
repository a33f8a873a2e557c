package storage

import (
	"github.com/vovakirdan/pixelcore/internal/engine"
)

// Scorer is implemented by apps that keep a score worth recording.
type Scorer interface {
	Score() int
}

// NewRunEntry builds the history record of a finished run on e.
func NewRunEntry(appID, backend string, e *engine.Engine, app engine.App) RunEntry {
	st := e.Stats()
	run := RunEntry{
		AppID:    appID,
		Backend:  backend,
		Frames:   st.Frames,
		Duration: st.Duration,
		AvgFPS:   st.AvgFPS,
	}
	if s, ok := app.(Scorer); ok {
		run.Score = s.Score()
	}
	return run
}

// RecordRun saves the stats of a finished run on e.
func (s *Store) RecordRun(appID, backend string, e *engine.Engine, app engine.App) (int64, error) {
	return s.SaveRun(NewRunEntry(appID, backend, e, app))
}
