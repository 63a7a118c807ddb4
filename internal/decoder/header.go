package decoder

import (
	"acoumodem/internal/bitpack"
	"acoumodem/internal/consts"
	"acoumodem/internal/fec"
	"acoumodem/internal/frame"
	"acoumodem/internal/interleave"
)

func deinterleaveBytes(encoded []byte) []byte {
	return interleave.Deinterleave(encoded, consts.InterleaveDepth)
}

func decodeNormalHeader(encoded []byte) []byte {
	res := fec.DecodeNormal(encoded, consts.HeaderFrameLen)
	if res.Corrected < 0 {
		return nil
	}
	return res.Data
}

func decodeRobustHeader(encoded []byte) []byte {
	res := fec.DecodeRobust(encoded, consts.HeaderFrameLen)
	if res.Corrected < 0 {
		return nil
	}
	return res.Data
}

func toByteSymbols(symbols []int) []byte {
	out := make([]byte, len(symbols))
	for i, s := range symbols {
		out[i] = byte(s)
	}
	return out
}

// attemptHeader implements spec.md §4.8's header decoding with FEC
// auto-detect: once enough symbols are available past syncFoundAt for
// the larger (robust) encoding, extract both a normal-length and a
// robust-length prefix and try decoding each under its matching FEC
// mode.
func (d *Decoder) attemptHeader() {
	track := d.lockedTrack()
	bitsPerSymbol := d.bestMode.Config().BitsPerSymbol

	normalSymbols := d.symbolsForBytesAtBits(consts.HeaderNormalFECLen, bitsPerSymbol)
	robustSymbols := d.symbolsForBytesAtBits(consts.HeaderRobustFECLen, bitsPerSymbol)

	available := int64(len(track.symbols)) - d.syncFoundAt
	if available < int64(robustSymbols) {
		return
	}

	start := d.syncFoundAt
	normalChunk := track.symbols[start : start+int64(normalSymbols)]
	robustChunk := track.symbols[start : start+int64(robustSymbols)]

	normalBytes := bitpack.Unpack(toByteSymbols(normalChunk), consts.HeaderNormalFECLen, bitsPerSymbol)
	robustBytes := bitpack.Unpack(toByteSymbols(robustChunk), consts.HeaderRobustFECLen, bitsPerSymbol)

	info, headerBytes, usedRobust, ok := tryDecodeHeader(normalBytes, robustBytes)
	if !ok {
		d.onHeaderFailure()
		return
	}
	d.headerUsedRobust = usedRobust

	// Redundant header copies: when totalFrames > 1 the sender transmits
	// two header copies back-to-back. Attempt to decode the second copy
	// at the offset immediately following the first (using whichever FEC
	// mode decoded the first) and, if it also validates, fuse the two
	// byte-wise before accepting.
	if info.TotalFrames > 1 {
		copyLen := consts.HeaderNormalFECLen
		if usedRobust {
			copyLen = consts.HeaderRobustFECLen
		}
		copySymbols := d.symbolsForBytesAtBits(copyLen, bitsPerSymbol)
		secondStart := start + int64(copySymbols)
		if int64(len(track.symbols)) >= secondStart+int64(copySymbols) {
			secondChunk := track.symbols[secondStart : secondStart+int64(copySymbols)]
			secondEncoded := bitpack.Unpack(toByteSymbols(secondChunk), copyLen, bitsPerSymbol)
			var secondBytes []byte
			if usedRobust {
				secondBytes = decodeRobustHeader(deinterleaveBytes(secondEncoded))
			} else {
				secondBytes = decodeNormalHeader(deinterleaveBytes(secondEncoded))
			}
			if secondBytes != nil {
				if secondInfo, err := frame.ParseHeaderFrame(secondBytes); err == nil && secondInfo.CRCValid {
					fused := frame.FuseHeaderCopies(headerBytes, secondBytes)
					if fusedInfo, err := frame.ParseHeaderFrame(fused); err == nil && fusedInfo.CRCValid {
						info = fusedInfo
					}
				}
			}
		}
	}

	d.headerInfo = info
	d.headerFailures = 0
	if err := d.collector.SetHeader(info); err != nil {
		d.onHeaderFailure()
		return
	}
	d.state = ReceivingData
}

// tryDecodeHeader attempts normal FEC on normalBytes then robust FEC on
// robustBytes, returning the first one whose CRC validates and which
// FEC mode produced it.
func tryDecodeHeader(normalBytes, robustBytes []byte) (info *frame.HeaderInfo, data []byte, usedRobust bool, ok bool) {
	if d := decodeNormalHeader(deinterleaveBytes(normalBytes)); d != nil {
		if hi, err := frame.ParseHeaderFrame(d); err == nil && hi.CRCValid {
			return hi, d, false, true
		}
	}
	if d := decodeRobustHeader(deinterleaveBytes(robustBytes)); d != nil {
		if hi, err := frame.ParseHeaderFrame(d); err == nil && hi.CRCValid {
			return hi, d, true, true
		}
	}
	return nil, nil, false, false
}

// onHeaderFailure counts a failed header decode attempt. Only once the
// count reaches MaxHeaderFailures does it emit a "poor signal" debug
// hint and soft-reset back to preamble search; below that, the decoder
// just waits for more symbols and retries on the same lock.
func (d *Decoder) onHeaderFailure() {
	d.headerFailures++
	if d.headerFailures < consts.MaxHeaderFailures {
		return
	}
	d.cfg.Logger.Debugw("poor signal: repeated header decode failures", "count", d.headerFailures)
	d.softReset()
}

// symbolsForBytesAtBits computes the symbol count needed to carry nBytes
// bytes at bitsPerSymbol bits each.
func (d *Decoder) symbolsForBytesAtBits(nBytes, bitsPerSymbol int) int {
	totalBits := nBytes * 8
	return (totalBits + bitsPerSymbol - 1) / bitsPerSymbol
}
