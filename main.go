package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"

	"github.com/d1nch8g/waveform/audio"
	"github.com/d1nch8g/waveform/config"
	"github.com/d1nch8g/waveform/render"
	"github.com/d1nch8g/waveform/vertex"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		fmt.Fprintln(os.Stderr, "Set WAVEFORM_INPUT, WAVEFORM_OUTPUT, WAVEFORM_WIDTH and WAVEFORM_HEIGHT in the environment or a .env file")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	src, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded input", "input", cfg.Input, "samples", src.TotalSamples(), "rate", src.SampleRate())

	format, err := cfg.Format()
	if err != nil {
		return err
	}

	bar := progressbar.Default(int64(src.TotalSamples()), "rendering")
	renderer := render.NewRenderer(render.Config{
		BatchSize: cfg.BatchSize,
		Progress: func(done, _ int) {
			bar.Set(done)
		},
	}, logger)

	frame, err := renderer.Render(ctx, src, cfg.Region(), format, 0, src.TotalSamples())
	if err != nil {
		return err
	}
	bar.Finish()

	buf := vertex.Bytes(binary.LittleEndian, frame.Vertices)
	if err := os.WriteFile(cfg.Output, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write vertex buffer: %w", err)
	}

	logger.Info("wrote vertex buffer",
		"output", cfg.Output,
		"vertices", len(frame.Vertices),
		"bytes", len(buf),
		"samples_per_pixel", frame.SamplesPerPixel,
	)
	return nil
}

func openSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (audio.Source, error) {
	switch cfg.Input {
	case "sine":
		rate := 44100
		return audio.NewSine(cfg.SineFrequency, 0.5, rate, int(cfg.Seconds*float32(rate))), nil

	case "mic":
		micConfig := audio.GetDefaultConfig()
		mic := audio.NewMicrophone(micConfig)

		if err := mic.Initialize(); err != nil {
			return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
		}
		defer mic.Terminate()

		if err := mic.Open(); err != nil {
			return nil, fmt.Errorf("failed to open audio stream: %w", err)
		}
		defer mic.Close()

		logger.Info("recording", "seconds", cfg.Seconds)
		return mic.Record(ctx, int(cfg.Seconds*float32(micConfig.SampleRate)))
	}

	return audio.Open(cfg.Input)
}
