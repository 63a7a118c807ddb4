package decoder

// ringBuffer is a fixed-capacity circular Float32 PCM buffer. Unlike a
// ring that overwrites in place, this one keeps a simple growing slice
// bounded at capacity by dropping the oldest samples once full — the
// decoder only ever reads forward from absolute sample indices it has
// already recorded as "not yet consumed", so dropped history is never
// re-read.
type ringBuffer struct {
	data     []float32
	capacity int
	// base is the absolute sample index of data[0].
	base int64
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{capacity: capacity}
}

// Append adds samples, trimming from the front if capacity is exceeded.
func (r *ringBuffer) Append(samples []float32) {
	r.data = append(r.data, samples...)
	if len(r.data) > r.capacity {
		drop := len(r.data) - r.capacity
		r.data = r.data[drop:]
		r.base += int64(drop)
	}
}

// Len is the number of samples currently retained.
func (r *ringBuffer) Len() int { return len(r.data) }

// End is the absolute index one past the last retained sample.
func (r *ringBuffer) End() int64 { return r.base + int64(len(r.data)) }

// Slice returns the retained samples in [from, to) by absolute index, or
// nil if the range is not (fully) available.
func (r *ringBuffer) Slice(from, to int64) []float32 {
	if from < r.base || to > r.End() || from > to {
		return nil
	}
	return r.data[from-r.base : to-r.base]
}
