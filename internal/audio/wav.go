package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// ErrInvalidWAV is returned for input that is not a RIFF/WAVE PCM file.
var ErrInvalidWAV = errors.New("invalid WAV file")

// ReadWAV decodes a PCM WAV stream into 16-bit samples. 8, 24 and 32-bit
// input is rescaled.
func ReadWAV(r io.ReadSeeker) (Samples, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Samples{}, ErrInvalidWAV
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Samples{}, fmt.Errorf("failed to decode WAV: %w", err)
	}

	data := make([]int16, len(buf.Data))
	shift := int(d.BitDepth) - 16
	for i, v := range buf.Data {
		switch {
		case d.BitDepth == 8:
			// 8-bit WAV is unsigned.
			data[i] = int16((v - 128) << 8)
		case shift > 0:
			data[i] = int16(v >> shift)
		default:
			data[i] = int16(v)
		}
	}

	return Samples{
		Data:       data,
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
	}, nil
}

// ReadWAVFile decodes the WAV file at path.
func ReadWAVFile(path string) (Samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return Samples{}, err
	}
	defer f.Close() //nolint:errcheck

	return ReadWAV(f)
}
