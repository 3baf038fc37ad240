package pcmio

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

// SampleWriter is implemented by Encoder and by the go-audio AIFF encoder.
type SampleWriter interface {
	Write(buf *audio.IntBuffer) error
	Close() error
}

var (
	_ SampleWriter = (*Encoder)(nil)
	_ SampleWriter = (*aiff.Encoder)(nil)
)

// NewAIFFEncoder returns an encoder writing 16-bit mono AIFF.
func NewAIFFEncoder(w io.WriteSeeker, sampleRate int) *aiff.Encoder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	return aiff.NewEncoder(w, sampleRate, BitDepth, 1)
}

// DecodeAIFF reads every sample of a 16-bit mono AIFF file.
func DecodeAIFF(r io.ReadSeeker) (*audio.IntBuffer, error) {
	dec := aiff.NewDecoder(r)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode aiff: %w", err)
	}

	if int(dec.NumChans) != 1 || int(dec.BitDepth) != BitDepth {
		return nil, fmt.Errorf("%w: %d-bit, %d channels", ErrUnsupportedFormat, dec.BitDepth, dec.NumChans)
	}

	buf.Format = monoFormat(int(dec.SampleRate))
	buf.SourceBitDepth = BitDepth

	return buf, nil
}
