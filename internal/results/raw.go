// Package results turns a finished typing test into speed and accuracy metrics.
package results

import (
	"time"

	"github.com/verte-zerg/typecrab/internal/engine"
	"github.com/verte-zerg/typecrab/internal/model"
)

// RawResults is an immutable snapshot of a test's timeline. It holds no
// reference to the test it came from.
type RawResults struct {
	Words   []engine.Word
	Log     []engine.Event
	Elapsed time.Duration
	Config  model.Config
}

// FromTest snapshots a test. Calling it before the test is complete gives
// a partial but valid snapshot.
func FromTest(t *engine.Test) RawResults {
	log := t.Log()
	var elapsed time.Duration
	if len(log) >= 2 {
		elapsed = log[len(log)-1].At.Sub(log[0].At)
	}
	return RawResults{
		Words:   t.Words(),
		Log:     log,
		Elapsed: elapsed,
		Config:  t.Config(),
	}
}
