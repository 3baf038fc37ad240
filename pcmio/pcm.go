package pcmio

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

const (
	// BitDepth is the only sample width tracks are stored with.
	BitDepth = 16
	// DefaultSampleRate is used when a track is saved without a known rate.
	DefaultSampleRate = 8000

	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
	bytesPerSample      = BitDepth / 8

	// cbSize of an extensible fmt chunk: valid bits, channel mask, GUID.
	extensibleExtraSize = 22
)

// ksSubFormatGUIDTail follows the format tag in every KSDATAFORMAT
// sub-format GUID.
var ksSubFormatGUIDTail = [12]byte{0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

var (
	// ErrPCMDataNotFound indicates a WAV file without a data chunk.
	ErrPCMDataNotFound = errors.New("PCM data not found")
	// ErrUnsupportedFormat is returned for anything other than 16-bit mono
	// linear PCM.
	ErrUnsupportedFormat = errors.New("unsupported sample format")
	errNilBuffer         = errors.New("can't add a nil buffer")
	errNilWriter         = errors.New("can't write to a nil writer")
)

func clampInt16(value int) int16 {
	if value > math.MaxInt16 {
		return math.MaxInt16
	}

	if value < math.MinInt16 {
		return math.MinInt16
	}

	return int16(value)
}

func monoFormat(sampleRate int) *audio.Format {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	return &audio.Format{NumChannels: 1, SampleRate: sampleRate}
}

func checkMono(buf *audio.IntBuffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if buf.Format != nil && buf.Format.NumChannels > 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, buf.Format.NumChannels)
	}

	if buf.SourceBitDepth != 0 && buf.SourceBitDepth != BitDepth {
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, buf.SourceBitDepth)
	}

	return nil
}
