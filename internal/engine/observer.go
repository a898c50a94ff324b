package engine

import "time"

// Observer receives pipeline lifecycle events. The engine never logs
// directly; a caller that wants visibility wires an Observer. The CLI and
// the HTTP collaborator both pass NopObserver.
type Observer interface {
	StageStarted(stage string)
	StageCompleted(stage string, d time.Duration, warnings int)
	StageDegraded(stage string, reason string)
}

// NopObserver discards every event; it is the default when a caller does
// not supply one.
type NopObserver struct{}

func (NopObserver) StageStarted(stage string)                             {}
func (NopObserver) StageCompleted(stage string, d time.Duration, w int)    {}
func (NopObserver) StageDegraded(stage string, reason string)              {}
