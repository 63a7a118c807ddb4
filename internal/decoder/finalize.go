package decoder

import "acoumodem/internal/modemerr"

// finalize implements spec.md §4.8's "Finalize" step: reassemble the
// payload, stash it for a possible password retry, and attempt to
// produce a Result. Soft-resets on recoverable failures.
func (d *Decoder) finalize() {
	payload, err := d.collector.Reassemble()
	if err != nil {
		d.lastErr = modemerr.Wrap(modemerr.Recoverable, err, "reassembly failed")
		d.softReset()
		return
	}
	d.pendingPayload = payload
	d.processPayload(nil)
}

// processPayload implements decrypt (if needed) -> decompress (if
// needed) -> truncate/verify -> checksum. password may be nil if the
// header says the payload is not encrypted.
func (d *Decoder) processPayload(password []byte) {
	info := d.headerInfo
	data := d.pendingPayload

	if info.Encrypted {
		if password == nil {
			d.needsPassword = true
			d.state = Complete
			return
		}
		decrypted, err := d.cfg.Decryptor.Decrypt(data, password)
		if err != nil {
			d.lastErr = modemerr.Wrap(modemerr.NonRecoverable, err, "decryption failed")
			d.needsPassword = true
			return
		}
		data = decrypted
		d.needsPassword = false
	}

	if info.Compressed {
		decompressed, err := d.cfg.Compressor.Decompress(data, info.CompressAlgo, int(info.OriginalLength))
		if err != nil {
			d.lastErr = modemerr.Wrap(modemerr.Recoverable, err, "decompression failed")
			d.softReset()
			return
		}
		data = decompressed
	}

	if len(data) < int(info.OriginalLength) {
		d.lastErr = modemerr.Newf(modemerr.Recoverable, "decoder: payload of %d bytes is shorter than originalLength %d", len(data), info.OriginalLength)
		d.softReset()
		return
	}
	if len(data) > int(info.OriginalLength) {
		data = data[:info.OriginalLength]
	}

	sum, text := checksumAndText(data)
	d.result = &Result{
		Bytes:           data,
		Text:            text,
		Checksum:        sum,
		Encrypted:       info.Encrypted,
		FrameCount:      int(info.TotalFrames),
		ErrorsCorrected: d.errorsCorrected,
	}
	d.state = Complete
}

// Result returns the completed decode result, or nil if the decoder has
// not reached Complete (or is waiting on a password).
func (d *Decoder) Result() *Result { return d.result }

// RetryWithPassword re-attempts finalize using a previously buffered
// pendingPayload and a newly supplied password, per spec.md §4.8's
// "stay ready for retryWithPassword". Runs independently of the sample
// stream.
func (d *Decoder) RetryWithPassword(password []byte) error {
	if d.pendingPayload == nil || d.headerInfo == nil {
		return modemerr.New(modemerr.Input, "decoder: no pending payload to retry")
	}
	d.processPayload(password)
	if d.needsPassword {
		return d.lastErr
	}
	return nil
}
