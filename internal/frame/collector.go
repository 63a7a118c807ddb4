package frame

import "fmt"

// Collector accumulates data frames for a single session and reassembles
// them once complete (§4.5). Not safe for concurrent use — the decoder
// drives it from a single goroutine per the module's cooperative,
// single-threaded concurrency model.
type Collector struct {
	header *HeaderInfo
	frames map[uint16][]byte
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{frames: make(map[uint16][]byte)}
}

// SetHeader is idempotent: calling it again with the same session id is a
// no-op; calling it with a different session id is rejected.
func (c *Collector) SetHeader(h *HeaderInfo) error {
	if c.header != nil {
		if c.header.SessionID != h.SessionID {
			return fmt.Errorf("frame: header replacement with different session id (have %d, got %d)", c.header.SessionID, h.SessionID)
		}
		return nil
	}
	c.header = h
	return nil
}

// Header returns the currently accepted header, or nil if none has been
// set yet.
func (c *Collector) Header() *HeaderInfo { return c.header }

// AddFrame records a data frame's payload at idx for sessionID. A
// mismatched session is rejected; a duplicate index is silently ignored
// (first successful decode wins).
func (c *Collector) AddFrame(idx uint16, payload []byte, sessionID uint16) error {
	if c.header != nil && c.header.SessionID != sessionID {
		return fmt.Errorf("frame: frame %d session mismatch (have %d, got %d)", idx, c.header.SessionID, sessionID)
	}
	if _, exists := c.frames[idx]; exists {
		return nil
	}
	stored := make([]byte, len(payload))
	copy(stored, payload)
	c.frames[idx] = stored
	return nil
}

// IsComplete reports whether all N indices (0..TotalFrames-1) named by
// the accepted header have been recorded.
func (c *Collector) IsComplete() bool {
	if c.header == nil {
		return false
	}
	for i := uint16(0); i < c.header.TotalFrames; i++ {
		if _, ok := c.frames[i]; !ok {
			return false
		}
	}
	return true
}

// FramesReceived reports how many distinct indices have been recorded,
// for progress reporting.
func (c *Collector) FramesReceived() int { return len(c.frames) }

// Reassemble concatenates payloads by ascending index. The result's
// length must equal the header's PayloadLength.
func (c *Collector) Reassemble() ([]byte, error) {
	if c.header == nil {
		return nil, fmt.Errorf("frame: reassemble with no header")
	}
	if !c.IsComplete() {
		return nil, fmt.Errorf("frame: reassemble with incomplete frame set (%d/%d)", len(c.frames), c.header.TotalFrames)
	}

	out := make([]byte, 0, c.header.PayloadLength)
	for i := uint16(0); i < c.header.TotalFrames; i++ {
		out = append(out, c.frames[i]...)
	}
	if len(out) != int(c.header.PayloadLength) {
		return nil, fmt.Errorf("frame: reassembled length %d does not match header payload length %d", len(out), c.header.PayloadLength)
	}
	return out, nil
}

// Reset clears all state, used on soft reset.
func (c *Collector) Reset() {
	c.header = nil
	c.frames = make(map[uint16][]byte)
}
