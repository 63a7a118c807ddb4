// Package progress defines the decoder's write-only progress surface
// (SPEC_FULL.md §4.15 / spec.md §7's DecodeProgress observer).
package progress

import "acoumodem/internal/logx"

// Snapshot is a point-in-time view of decoder progress.
type Snapshot struct {
	State           string  `json:"state"`
	SignalLevel     int     `json:"signalLevel"`     // 0-100
	SyncConfidence  float64 `json:"syncConfidence"`  // 0-1
	FramesReceived  int     `json:"framesReceived"`
	FramesExpected  int     `json:"framesExpected"`
	ErrorsCorrected int     `json:"errorsCorrected"`
	Debug           string  `json:"debug,omitempty"`
	NeedsPassword   bool    `json:"needsPassword,omitempty"`
	SignalWarning   bool    `json:"signalWarning,omitempty"`
}

// Observer receives progress snapshots. Implementations must not block
// the decoder for long; OnUpdate is called synchronously from within
// ProcessSamples.
type Observer interface {
	OnUpdate(Snapshot)
}

// LogObserver logs every snapshot via logx, for CLI use without a UI.
type LogObserver struct {
	Logger *logx.Logger
}

func (o LogObserver) OnUpdate(s Snapshot) {
	o.Logger.Debugw("decode progress",
		"state", s.State,
		"signalLevel", s.SignalLevel,
		"syncConfidence", s.SyncConfidence,
		"framesReceived", s.FramesReceived,
		"framesExpected", s.FramesExpected,
		"errorsCorrected", s.ErrorsCorrected,
		"debug", s.Debug,
		"needsPassword", s.NeedsPassword,
		"signalWarning", s.SignalWarning,
	)
}

// NoopObserver discards every update. The decoder does not substitute it
// for a nil Observer; with a nil Observer it skips progress reporting.
type NoopObserver struct{}

func (NoopObserver) OnUpdate(Snapshot) {}
