package pcmio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// fmt chunk payload size for plain PCM.
const pcmFmtChunkSize = 16

// Encoder writes 16-bit mono PCM samples into a wav container.
type Encoder struct {
	w   io.WriteSeeker
	buf *bytes.Buffer

	SampleRate int

	WrittenBytes    int
	frames          int
	pcmChunkSizePos int
	wroteHeader     bool
}

// NewEncoder creates an encoder writing a wav file at the given sample
// rate. A non-positive rate selects DefaultSampleRate.
// Don't forget to Close() the encoder or the file won't be valid.
func NewEncoder(w io.WriteSeeker, sampleRate int) *Encoder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	return &Encoder{
		w:          w,
		buf:        new(bytes.Buffer),
		SampleRate: sampleRate,
	}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// Write encodes the samples of buf, clamped to 16 bits.
func (e *Encoder) Write(buf *audio.IntBuffer) error {
	if err := checkMono(buf); err != nil {
		return err
	}

	if !e.wroteHeader {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}

	for _, v := range buf.Data {
		err := binary.Write(e.buf, binary.LittleEndian, clampInt16(v))
		if err != nil {
			return fmt.Errorf("failed to write 16-bit sample: %w", err)
		}
	}

	e.frames += len(buf.Data)

	n, err := e.w.Write(e.buf.Bytes())
	e.WrittenBytes += n
	e.buf.Reset()

	if err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if e.w == nil {
		return errNilWriter
	}

	e.wroteHeader = true

	blockAlign := bytesPerSample

	// the riff and data sizes are patched by Close.
	fields := []any{
		riff.RiffID,
		uint32(0),
		riff.WavFormatID,
		riff.FmtID,
		uint32(pcmFmtChunkSize),
		uint16(wavFormatPCM),
		uint16(1),
		uint32(e.SampleRate),
		uint32(e.SampleRate * blockAlign),
		uint16(blockAlign),
		uint16(BitDepth),
		riff.DataFormatID,
	}

	for _, f := range fields {
		if err := e.AddLE(f); err != nil {
			return fmt.Errorf("error encoding wav header - %w", err)
		}
	}

	e.pcmChunkSizePos = e.WrittenBytes

	if err := e.AddLE(uint32(0)); err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	return nil
}

// Close flushes the header sizes. An encoder that never received samples
// still produces a valid, empty wav file.
func (e *Encoder) Close() error {
	if e == nil || e.w == nil {
		return nil
	}

	if !e.wroteHeader {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}

	dataSize := e.frames * bytesPerSample

	// go back and write total size in header
	if _, err := e.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	if err := e.AddLE(uint32(e.WrittenBytes) - 8); err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	// rewrite the audio chunk length header
	if _, err := e.w.Seek(int64(e.pcmChunkSizePos), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to PCM chunk size position: %w", err)
	}

	if err := e.AddLE(uint32(dataSize)); err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	// jump back to the end of the file.
	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}
