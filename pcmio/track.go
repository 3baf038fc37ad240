package pcmio

import (
	"fmt"
	"io"

	"github.com/cwbudde/track"
	"github.com/go-audio/audio"
)

// FromTrack copies the samples of t into a mono buffer.
func FromTrack(t *track.Track, sampleRate int) *audio.IntBuffer {
	samples := t.Samples()

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v)
	}

	return &audio.IntBuffer{
		Data:           data,
		Format:         monoFormat(sampleRate),
		SourceBitDepth: BitDepth,
	}
}

// ToTrack writes the samples of buf, clamped to 16 bits, into a new track.
func ToTrack(buf *audio.IntBuffer) (*track.Track, error) {
	if err := checkMono(buf); err != nil {
		return nil, err
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = clampInt16(v)
	}

	t := track.New()
	if err := t.Write(samples, 0); err != nil {
		return nil, err
	}

	return t, nil
}

// Export writes every sample of t through sw and closes it.
func Export(sw SampleWriter, t *track.Track, sampleRate int) error {
	if err := sw.Write(FromTrack(t, sampleRate)); err != nil {
		return fmt.Errorf("failed to export track: %w", err)
	}

	return sw.Close()
}

// Load decodes a 16-bit mono wav file into a new track and returns it with
// the file's sample rate.
func Load(r io.ReadSeeker) (*track.Track, int, error) {
	dec := NewDecoder(r)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}

	t, err := ToTrack(buf)
	if err != nil {
		return nil, 0, err
	}

	return t, int(dec.SampleRate), nil
}

// Save encodes t as a 16-bit mono wav file.
func Save(w io.WriteSeeker, t *track.Track, sampleRate int) error {
	return Export(NewEncoder(w, sampleRate), t, sampleRate)
}
