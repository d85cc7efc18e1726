package audio

import (
	"context"
	"errors"

	"github.com/gordonklaus/portaudio"
)

// Config describes the capture stream.
type Config struct {
	SampleRate      float64
	FramesPerBuffer int
}

// Microphone records the default input device.
type Microphone struct {
	stream      *portaudio.Stream
	audioBuffer []float32
	config      Config
}

func NewMicrophone(config Config) *Microphone {
	return &Microphone{
		config:      config,
		audioBuffer: make([]float32, config.FramesPerBuffer),
	}
}

func GetDefaultConfig() Config {
	return Config{
		SampleRate:      44100,
		FramesPerBuffer: 1024,
	}
}

func (m *Microphone) Initialize() error {
	return portaudio.Initialize()
}

func (m *Microphone) Terminate() {
	portaudio.Terminate()
}

func (m *Microphone) Open() error {
	stream, err := portaudio.OpenDefaultStream(1, 0, m.config.SampleRate, m.config.FramesPerBuffer, m.audioBuffer)
	if err != nil {
		return err
	}
	m.stream = stream
	return nil
}

func (m *Microphone) Close() error {
	if m.stream != nil {
		return m.stream.Close()
	}
	return nil
}

// Record captures n samples. If ctx ends first the samples captured so far
// are returned together with the context error.
func (m *Microphone) Record(ctx context.Context, n int) (*Buffer, error) {
	if m.stream == nil {
		return nil, errors.New("stream not opened")
	}

	if err := m.stream.Start(); err != nil {
		return nil, err
	}
	defer m.stream.Stop()

	b := &Buffer{
		Rate:    int(m.config.SampleRate),
		Samples: make([]float32, 0, n),
	}
	for len(b.Samples) < n {
		select {
		case <-ctx.Done():
			return b, ctx.Err()
		default:
		}

		if err := m.stream.Read(); err != nil {
			// overflow only means frames were lost; keep recording
			if errors.Is(err, portaudio.InputOverflowed) {
				continue
			}
			return b, err
		}
		b.Samples = append(b.Samples, m.audioBuffer[:min(len(m.audioBuffer), n-len(b.Samples))]...)
	}
	return b, nil
}
