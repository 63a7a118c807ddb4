// Package decoder implements the receive-side state machine: circular
// PCM buffering, multi-phase symbol extraction, preamble/sync search,
// header FEC auto-detect, data-frame reassembly, and finalize/soft-reset
// handling (spec.md §4.8).
package decoder

// State is one node of the decoder's state machine.
type State int

const (
	Idle State = iota
	Listening
	DetectingPreamble
	ReceivingHeader
	ReceivingData
	Complete
	ErrorState
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case DetectingPreamble:
		return "detecting_preamble"
	case ReceivingHeader:
		return "receiving_header"
	case ReceivingData:
		return "receiving_data"
	case Complete:
		return "complete"
	case ErrorState:
		return "error"
	default:
		return "unknown"
	}
}
