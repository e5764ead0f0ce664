package audio

import (
	"encoding/binary"
	"time"
)

// Samples is 16-bit signed PCM. Data holds interleaved frames.
type Samples struct {
	Data       []int16
	SampleRate int
	Channels   int
}

func (s Samples) channels() int {
	if s.Channels < 1 {
		return 1
	}
	return s.Channels
}

// Frames returns the number of sample frames.
func (s Samples) Frames() int {
	return len(s.Data) / s.channels()
}

// Duration returns the playback length.
func (s Samples) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.Frames()) * time.Second / time.Duration(s.SampleRate)
}

// Bytes encodes the samples as little-endian PCM.
func (s Samples) Bytes() []byte {
	out := make([]byte, len(s.Data)*2)
	for i, v := range s.Data {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

// Resample converts to rate with linear interpolation.
func (s Samples) Resample(rate int) Samples {
	if rate <= 0 || s.SampleRate <= 0 || rate == s.SampleRate || len(s.Data) == 0 {
		return s
	}

	ch := s.channels()
	in := s.Frames()
	out := int(int64(in) * int64(rate) / int64(s.SampleRate))
	if out < 1 {
		out = 1
	}

	data := make([]int16, out*ch)
	step := float64(s.SampleRate) / float64(rate)
	for f := 0; f < out; f++ {
		pos := float64(f) * step
		i := int(pos)
		frac := pos - float64(i)
		next := i + 1
		if next >= in {
			next = in - 1
		}
		if i >= in {
			i = in - 1
		}
		for c := 0; c < ch; c++ {
			a := float64(s.Data[i*ch+c])
			b := float64(s.Data[next*ch+c])
			data[f*ch+c] = int16(a + (b-a)*frac)
		}
	}
	return Samples{Data: data, SampleRate: rate, Channels: ch}
}
