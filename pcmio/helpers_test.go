package pcmio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/track"
)

type testChunk struct {
	id   string
	data []byte
}

// buildWav assembles a RIFF/WAVE container from the given chunks, padding
// odd sized payloads.
func buildWav(chunks ...testChunk) []byte {
	var body bytes.Buffer

	body.WriteString("WAVE")

	for _, ch := range chunks {
		body.WriteString(ch.id)
		binary.Write(&body, binary.LittleEndian, uint32(len(ch.data)))
		body.Write(ch.data)

		if len(ch.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func fmtChunk(format, channels uint16, sampleRate uint32, bitDepth uint16) testChunk {
	blockAlign := channels * bitDepth / 8

	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, format)
	binary.Write(&b, binary.LittleEndian, channels)
	binary.Write(&b, binary.LittleEndian, sampleRate)
	binary.Write(&b, binary.LittleEndian, sampleRate*uint32(blockAlign))
	binary.Write(&b, binary.LittleEndian, blockAlign)
	binary.Write(&b, binary.LittleEndian, bitDepth)

	return testChunk{id: "fmt ", data: b.Bytes()}
}

func dataChunk(samples ...int16) testChunk {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, samples)

	return testChunk{id: "data", data: b.Bytes()}
}

func newTestTrack(t *testing.T, samples ...int16) *track.Track {
	t.Helper()

	tr := track.New()
	if err := tr.Write(samples, 0); err != nil {
		t.Fatalf("Write(%v) failed: %v", samples, err)
	}

	return tr
}

func createFile(t *testing.T, name string) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}

	t.Cleanup(func() { f.Close() })

	return f
}

func rewind(t *testing.T, f *os.File) {
	t.Helper()

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("seek %s: %v", f.Name(), err)
	}
}

func fmtExtensibleChunk(subFormat uint32, channels uint16, sampleRate uint32, bitDepth uint16) testChunk {
	base := fmtChunk(wavFormatExtensible, channels, sampleRate, bitDepth)

	var guid [16]byte
	binary.LittleEndian.PutUint32(guid[:4], subFormat)
	copy(guid[4:], ksSubFormatGUIDTail[:])

	b := bytes.NewBuffer(base.data)
	binary.Write(b, binary.LittleEndian, uint16(extensibleExtraSize))
	binary.Write(b, binary.LittleEndian, bitDepth)
	binary.Write(b, binary.LittleEndian, uint32(0x4))
	b.Write(guid[:])

	return testChunk{id: "fmt ", data: b.Bytes()}
}
