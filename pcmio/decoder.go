package pcmio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// Decoder reads 16-bit mono PCM samples out of a WAV container.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser

	NumChans       uint16
	BitDepth       uint16
	SampleRate     uint32
	WavAudioFormat uint16

	// PCMSize is the size in bytes of the data chunk, excluding padding.
	PCMSize  int
	PCMChunk *riff.Chunk

	err        error
	headerRead bool
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// Err returns the first non-EOF error that was encountered by the Decoder.
func (d *Decoder) Err() error {
	if errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// ReadInfo parses the container up to and including the fmt chunk.
// This method is safe to call multiple times.
func (d *Decoder) ReadInfo() error {
	d.err = d.readHeaders()

	return d.err
}

// FwdToPCM forwards the underlying reader until the start of the PCM chunk.
func (d *Decoder) FwdToPCM() error {
	if d.PCMChunk != nil {
		return nil
	}

	if err := d.ReadInfo(); err != nil {
		return err
	}

	for {
		chunk, size, err := d.nextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrPCMDataNotFound
			}

			d.err = err

			return err
		}

		if chunk.ID == riff.DataFormatID {
			d.PCMSize = int(size)
			d.PCMChunk = chunk

			return nil
		}

		chunk.Drain()
	}
}

// FullPCMBuffer reads every sample of the data chunk. A data chunk cut short
// by the end of the file yields the samples that are present.
func (d *Decoder) FullPCMBuffer() (*audio.IntBuffer, error) {
	if err := d.FwdToPCM(); err != nil {
		return nil, err
	}

	if err := d.checkFormat(); err != nil {
		return nil, err
	}

	// the declared size is untrusted; grow with the bytes actually present.
	raw, err := io.ReadAll(io.LimitReader(d.PCMChunk, int64(d.PCMSize)))
	if err != nil {
		d.err = fmt.Errorf("failed to read PCM data: %w", err)

		return nil, d.err
	}

	raw = raw[:len(raw)-len(raw)%bytesPerSample]

	data := make([]int, len(raw)/bytesPerSample)
	for i := range data {
		data[i] = int(int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample:])))
	}

	return &audio.IntBuffer{
		Data:           data,
		Format:         d.Format(),
		SourceBitDepth: int(d.BitDepth),
	}, nil
}

func (d *Decoder) checkFormat() error {
	if d.WavAudioFormat != wavFormatPCM {
		return fmt.Errorf("%w: wav format %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	if d.BitDepth != BitDepth {
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, d.BitDepth)
	}

	if d.NumChans != 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, d.NumChans)
	}

	return nil
}

// nextChunk returns the next chunk limited to its padded size, along with
// the size declared in its header.
func (d *Decoder) nextChunk() (*riff.Chunk, uint32, error) {
	id, size, err := d.parser.IDnSize()
	if err != nil {
		return nil, 0, err
	}

	// all RIFF chunks must be word aligned; the declared size excludes the
	// padding byte.
	padded := size
	if padded%2 == 1 {
		padded++
	}

	return &riff.Chunk{
		ID:   id,
		Size: int(padded),
		R:    io.LimitReader(d.r, int64(padded)),
	}, size, nil
}

func (d *Decoder) readHeaders() error {
	if d == nil || d.headerRead {
		return nil
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%s - %w", d.parser.ID, riff.ErrFmtNotSupported)
	}

	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%s - %w", d.parser.Format, riff.ErrFmtNotSupported)
	}

	for {
		chunk, _, err := d.nextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("fmt chunk - %w", ErrPCMDataNotFound)
			}

			return fmt.Errorf("error reading chunk header - %w", err)
		}

		if chunk.ID == riff.FmtID {
			if err := d.decodeFmtChunk(chunk); err != nil {
				return err
			}

			d.headerRead = true

			return nil
		}

		chunk.Drain()
	}
}

func (d *Decoder) decodeFmtChunk(chunk *riff.Chunk) error {
	var (
		avgBytesPerSec uint32
		blockAlign     uint16
	)

	fields := []struct {
		dst  any
		name string
	}{
		{&d.WavAudioFormat, "wav format"},
		{&d.NumChans, "channels"},
		{&d.SampleRate, "sample rate"},
		{&avgBytesPerSec, "avg bytes/sec"},
		{&blockAlign, "block align"},
		{&d.BitDepth, "bit depth"},
	}

	for _, f := range fields {
		if err := chunk.ReadLE(f.dst); err != nil {
			return fmt.Errorf("failed to read %s: %w", f.name, err)
		}
	}

	if d.WavAudioFormat == wavFormatExtensible {
		format, err := readExtensibleFormat(chunk)
		if err != nil {
			return err
		}

		d.WavAudioFormat = format
	}

	d.parser.WavAudioFormat = d.WavAudioFormat
	d.parser.NumChannels = d.NumChans
	d.parser.SampleRate = d.SampleRate
	d.parser.AvgBytesPerSec = avgBytesPerSec
	d.parser.BlockAlign = blockAlign
	d.parser.BitsPerSample = d.BitDepth

	chunk.Drain()

	return nil
}

// readExtensibleFormat resolves the sub-format of a WAVE_FORMAT_EXTENSIBLE
// fmt chunk. Sub-formats outside the KSDATAFORMAT GUID family stay
// wavFormatExtensible.
func readExtensibleFormat(chunk *riff.Chunk) (uint16, error) {
	var extraSize uint16
	if err := chunk.ReadLE(&extraSize); err != nil {
		return 0, fmt.Errorf("failed to read fmt extension size: %w", err)
	}

	if extraSize < extensibleExtraSize {
		return wavFormatExtensible, nil
	}

	var (
		validBits   uint16
		channelMask uint32
		subFormat   [16]byte
	)

	for _, dst := range []any{&validBits, &channelMask, &subFormat} {
		if err := chunk.ReadLE(dst); err != nil {
			return 0, fmt.Errorf("failed to read fmt extension: %w", err)
		}
	}

	tag := binary.LittleEndian.Uint32(subFormat[:4])
	if tag > math.MaxUint16 || !bytes.Equal(subFormat[4:], ksSubFormatGUIDTail[:]) {
		return wavFormatExtensible, nil
	}

	return uint16(tag), nil
}
