package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// JPEGQuality matches the transcode quality used for camera photos.
const JPEGQuality = 94

// ErrConverterUnavailable is returned when no transcoder binary is found.
var ErrConverterUnavailable = errors.New("heic converter not available")

// Converter transcodes a HEIC/HEIF payload into JPEG bytes.
type Converter interface {
	Convert(ctx context.Context, data []byte) ([]byte, error)
}

type FFmpegOptions struct {
	// Binary overrides the ffmpeg lookup.
	Binary string
	Logger *zerolog.Logger
}

// FFmpegConverter extracts the primary frame with ffmpeg into a temporary
// PNG and re-encodes it as JPEG. Temporary files are always removed.
type FFmpegConverter struct {
	binary string
	logger zerolog.Logger
}

func NewFFmpegConverter(opts FFmpegOptions) *FFmpegConverter {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &FFmpegConverter{binary: opts.Binary, logger: logger}
}

func (c *FFmpegConverter) Convert(ctx context.Context, data []byte) ([]byte, error) {
	bin := c.binary
	if bin == "" {
		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			return nil, ErrConverterUnavailable
		}
		bin = path
	}

	in, err := os.CreateTemp("", "studio-heic-*.heic")
	if err != nil {
		return nil, fmt.Errorf("create temp input: %w", err)
	}
	inPath := in.Name()
	defer os.Remove(inPath)
	if _, err := in.Write(data); err != nil {
		in.Close()
		return nil, fmt.Errorf("write temp input: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("write temp input: %w", err)
	}

	out, err := os.CreateTemp("", "studio-heic-*.png")
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, bin,
		"-hide_banner",
		"-loglevel", "error",
		"-i", inPath,
		"-frames:v", "1",
		"-y", outPath,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		c.logger.Debug().Err(err).Str("output", strings.TrimSpace(string(output))).Msg("ffmpeg failed")
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}

	frame, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("read converted frame: %w", err)
	}
	defer frame.Close()

	img, err := png.Decode(frame)
	if err != nil {
		return nil, fmt.Errorf("decode converted frame: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
