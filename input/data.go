// Package input decodes raw fuzzer bytes into a sequence of typed calls: the delimiter-based frame iterator,
// per-frame value/origin/selector/payload split, and the resulting OneInput the harness executes.
package input

import "bytes"

// delimiter separates candidate messages within one fuzzer input. A rare 8-byte pattern lets the external
// mutator reshape, duplicate and permute messages while preserving the "message" unit.
var delimiter = bytes.Repeat([]byte{0x2A}, 8)

// MinFrameLen is the minimum number of bytes a frame must carry to be worth attempting to decode: at least a
// 4-byte transfer value.
const MinFrameLen = 4

// Frames splits raw on the fixed delimiter, discarding any frame shorter than MinFrameLen.
func Frames(raw []byte) [][]byte {
	parts := bytes.Split(raw, delimiter)
	frames := make([][]byte, 0, len(parts))
	for _, p := range parts {
		if len(p) >= MinFrameLen {
			frames = append(frames, p)
		}
	}
	return frames
}
