package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// Open decodes an mp3 or wav file into memory. Only the first channel is
// kept.
func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return DecodeMP3(f)
	case ".wav":
		return DecodeWAV(f)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// DecodeMP3 decodes the left channel of an mp3 stream.
func DecodeMP3(r io.Reader) (*Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	b := &Buffer{Rate: dec.SampleRate()}
	if n := dec.Length(); n > 0 {
		b.Samples = make([]float32, 0, n/4)
	}

	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		b.Samples = appendLeft16(b.Samples, chunk[:n])
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mp3: %w", err)
		}
	}
	return b, nil
}

// appendLeft16 appends the left channel of 16 bit little endian stereo
// frames, the only layout go-mp3 produces. A trailing partial frame is
// ignored.
func appendLeft16(dst []float32, frames []byte) []float32 {
	for i := 0; i+4 <= len(frames); i += 4 {
		s := int16(binary.LittleEndian.Uint16(frames[i:]))
		dst = append(dst, float32(s)/32768)
	}
	return dst
}

// wavPCM is the integer PCM format tag. Float and compressed wavs are not
// decoded.
const wavPCM = 1

// DecodeWAV decodes the first channel of an integer PCM wav stream.
func DecodeWAV(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("wav: not a valid wav file")
	}
	if dec.WavAudioFormat != wavPCM {
		return nil, fmt.Errorf("wav: audio format %d: %w", dec.WavAudioFormat, ErrUnsupportedFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		return nil, errors.New("wav: no channels")
	}

	// 8 bit wav is unsigned, wider depths are signed
	depth := int(dec.BitDepth)
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("wav: unsupported bit depth %d", depth)
	}
	full := float32(int(1) << (depth - 1))
	var offset float32
	if depth == 8 {
		offset = full
	}

	b := &Buffer{
		Rate:    int(dec.SampleRate),
		Samples: make([]float32, 0, len(buf.Data)/chans),
	}
	for i := 0; i < len(buf.Data); i += chans {
		b.Samples = append(b.Samples, (float32(buf.Data[i])-offset)/full)
	}
	return b, nil
}
