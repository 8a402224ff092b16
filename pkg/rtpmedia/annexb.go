package rtpmedia

// splitAnnexB scans an Annex-B byte stream and returns the NAL units it
// contains, in order, with their start codes ("00 00 00 01" or
// "00 00 01") stripped. A stream containing no start code yields no
// NAL units.
func splitAnnexB(data []byte) [][]byte {
	starts := findStartCodes(data)
	if len(starts) == 0 {
		return nil
	}

	var nalus [][]byte
	for i, start := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1].codeStart
		}
		nalu := data[start.naluStart:end]
		if len(nalu) > 0 {
			nalus = append(nalus, nalu)
		}
	}
	return nalus
}

type startCode struct {
	codeStart int // index of the first 0x00 of the start code
	naluStart int // index of the first byte after the start code
}

// findStartCodes locates every "00 00 01" and "00 00 00 01" start code
// in data, longest match preferred when both would match at the same
// position.
func findStartCodes(data []byte) []startCode {
	var out []startCode
	i := 0
	for i+2 < len(data) {
		if data[i] == 0x00 && data[i+1] == 0x00 {
			if data[i+2] == 0x01 {
				out = append(out, startCode{codeStart: i, naluStart: i + 3})
				i += 3
				continue
			}
			if i+3 < len(data) && data[i+2] == 0x00 && data[i+3] == 0x01 {
				out = append(out, startCode{codeStart: i, naluStart: i + 4})
				i += 4
				continue
			}
		}
		i++
	}
	return out
}
