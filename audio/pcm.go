package audio

import (
	"encoding/binary"
	"math"

	"github.com/gopxl/beep"
)

// PCM16 drains s into signed 16-bit little-endian stereo frames, stopping
// after limit frames when limit is positive.
func PCM16(s beep.Streamer, limit int) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	frames := 0
	for limit <= 0 || frames < limit {
		chunk := buf
		if limit > 0 && limit-frames < len(chunk) {
			chunk = chunk[:limit-frames]
		}
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		frames += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
