package decoder

import (
	"acoumodem/internal/bitpack"
	"acoumodem/internal/consts"
	"acoumodem/internal/fec"
	"acoumodem/internal/frame"
	"acoumodem/internal/interleave"
)

// attemptDataFrames implements spec.md §4.8's data frame decoding loop:
// each not-yet-attempted frame index is decoded (robust FEC end-to-end)
// as soon as enough symbols are available.
func (d *Decoder) attemptDataFrames() {
	if d.headerInfo == nil {
		return
	}
	track := d.lockedTrack()
	bitsPerSymbol := d.bestMode.Config().BitsPerSymbol

	headerSymbols := d.headerSymbolsSent()
	frameStartSymbols := d.syncFoundAt + int64(headerSymbols)

	frameSize := consts.FrameSizeFor(int(d.headerInfo.PayloadLength))

	offset := frameStartSymbols
	for i := 0; i < int(d.headerInfo.TotalFrames); i++ {
		if _, already := d.attempted[uint16(i)]; already {
			payloadSize := payloadSizeForFrame(frameSize, int(d.headerInfo.PayloadLength), i)
			offset += int64(d.symbolsForBytesAtBits(fec.RobustEncodedLen(frame.DataFrameOverheadFor(payloadSize)), bitsPerSymbol))
			continue
		}

		payloadSize := payloadSizeForFrame(frameSize, int(d.headerInfo.PayloadLength), i)
		frameLen := frame.DataFrameOverheadFor(payloadSize)
		encodedLen := fec.RobustEncodedLen(frameLen)
		symCount := int64(d.symbolsForBytesAtBits(encodedLen, bitsPerSymbol))

		if int64(len(track.symbols)) < offset+symCount {
			return
		}

		chunk := track.symbols[offset : offset+symCount]
		encodedBytes := bitpack.Unpack(toByteSymbols(chunk), encodedLen, bitsPerSymbol)
		deinterleaved := interleave.Deinterleave(encodedBytes, consts.InterleaveDepth)
		res := fec.DecodeRobust(deinterleaved, frameLen)

		d.markAttempted(uint16(i))
		offset += symCount

		if res.Corrected < 0 {
			continue
		}
		df, err := frame.ParseDataFrame(res.Data)
		if err != nil || !df.CRCValid {
			continue
		}
		if err := d.collector.AddFrame(df.FrameIndex, df.Payload, d.headerInfo.SessionID); err != nil {
			d.cfg.Logger.Warnw("dropped frame: session mismatch", "frameIndex", df.FrameIndex, "err", err.Error())
			continue
		}
		d.errorsCorrected += res.Corrected
	}

	if d.collector.IsComplete() {
		d.finalize()
	}
}

func payloadSizeForFrame(frameSize, totalPayload, idx int) int {
	remaining := totalPayload - idx*frameSize
	if remaining > frameSize {
		return frameSize
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// headerSymbolsSent returns how many symbols the header occupied on air,
// accounting for a second redundant copy when totalFrames > 1.
func (d *Decoder) headerSymbolsSent() int {
	bitsPerSymbol := d.bestMode.Config().BitsPerSymbol
	headerLen := consts.HeaderNormalFECLen
	if d.headerUsedRobust {
		headerLen = consts.HeaderRobustFECLen
	}
	copies := 1
	if d.headerInfo != nil && d.headerInfo.TotalFrames > 1 {
		copies = 2
	}
	return copies * d.symbolsForBytesAtBits(headerLen, bitsPerSymbol)
}

func (d *Decoder) markAttempted(idx uint16) {
	if d.attempted == nil {
		d.attempted = make(map[uint16]struct{})
	}
	d.attempted[idx] = struct{}{}
}
