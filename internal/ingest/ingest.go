package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/media"
)

// File is a user-supplied image before normalization. Type is the declared
// MIME type and may be empty.
type File struct {
	Name string
	Type string
	Open func() (io.ReadCloser, error)
}

// PathFile describes a file on disk. The declared type comes from the
// extension, falling back to sniffing the first bytes.
func PathFile(path string) File {
	f := File{
		Name: filepath.Base(path),
		Type: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
	if f.Type == "" {
		f.Type = sniff(path)
	}
	if i := strings.Index(f.Type, ";"); i >= 0 {
		f.Type = strings.TrimSpace(f.Type[:i])
	}
	return f
}

// BytesFile wraps in-memory data, e.g. pasted clipboard content.
func BytesFile(name, mimeType string, data []byte) File {
	return File{
		Name: name,
		Type: mimeType,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

func sniff(path string) string {
	fh, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer fh.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(fh, head)
	if n == 0 {
		return ""
	}
	t := http.DetectContentType(head[:n])
	if t == "application/octet-stream" {
		return ""
	}
	return t
}

var heicSuffix = regexp.MustCompile(`(?i)\.(heic|heif)$`)

// IsHEIC matches the camera format by declared type or file suffix.
func IsHEIC(f File) bool {
	return f.Type == "image/heic" || f.Type == "image/heif" || heicSuffix.MatchString(f.Name)
}

// Accepts reports whether f survives the batch filter.
func Accepts(f File) bool {
	return strings.HasPrefix(f.Type, "image/") || heicSuffix.MatchString(f.Name)
}

type Options struct {
	// Converter transcodes HEIC/HEIF payloads. Defaults to ffmpeg.
	Converter Converter
	// Workers bounds parallel decoding in IngestAll.
	Workers int
	Logger  *zerolog.Logger
}

type Ingester struct {
	conv    Converter
	workers int
	logger  zerolog.Logger
}

func New(opts Options) *Ingester {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	conv := opts.Converter
	if conv == nil {
		conv = NewFFmpegConverter(FFmpegOptions{Logger: &logger})
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Ingester{
		conv:    conv,
		workers: workers,
		logger:  logger.With().Str("component", "ingest").Logger(),
	}
}

// Ingest turns f into a ReferenceImage. Width and height always come from
// decoding the pixels, never from metadata.
func (in *Ingester) Ingest(ctx context.Context, f File) (media.ReferenceImage, error) {
	const op = "ingest"

	heic := IsHEIC(f)
	if !heic && !strings.HasPrefix(f.Type, "image/") {
		return media.ReferenceImage{}, apperr.New(apperr.UnsupportedFormat, op, fmt.Sprintf("%s is not an image", f.Name))
	}
	if f.Open == nil {
		return media.ReferenceImage{}, apperr.New(apperr.ReadFailed, op, fmt.Sprintf("%s has no content", f.Name))
	}

	data, err := readAll(f)
	if err != nil {
		return media.ReferenceImage{}, apperr.Wrap(apperr.ReadFailed, op, fmt.Errorf("read %s: %w", f.Name, err))
	}

	name := f.Name
	if heic {
		data, err = in.conv.Convert(ctx, data)
		if err != nil {
			in.logger.Warn().Err(err).Str("file", f.Name).Msg("HEIC conversion failed")
			return media.ReferenceImage{}, apperr.Wrap(apperr.ConversionFailed, op, fmt.Errorf("convert %s: %w", f.Name, err))
		}
		name = heicSuffix.ReplaceAllString(name, ".jpeg")
	}

	if err := ctx.Err(); err != nil {
		return media.ReferenceImage{}, err
	}

	cfg, format, err := decode(data)
	if err != nil {
		return media.ReferenceImage{}, apperr.Wrap(apperr.UnsupportedFormat, op, fmt.Errorf("decode %s: %w", name, err))
	}

	in.logger.Debug().
		Str("file", name).
		Str("format", format).
		Int("width", cfg.Dx()).
		Int("height", cfg.Dy()).
		Msg("image ingested")

	return media.ReferenceImage{
		Base64:   base64.StdEncoding.EncodeToString(data),
		MimeType: "image/" + format,
		Name:     name,
		Width:    cfg.Dx(),
		Height:   cfg.Dy(),
	}, nil
}

func readAll(f File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// decode reads the whole pixel buffer so a truncated or lying file cannot
// pass on header information alone.
func decode(data []byte) (image.Rectangle, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return image.Rectangle{}, "", err
	}
	b := img.Bounds()
	if b.Empty() {
		return image.Rectangle{}, "", errors.New("image has no pixels")
	}
	return b, format, nil
}

// Dimensions decodes a base64 image, typically a generated result.
func Dimensions(b64 string) (int, int, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.MalformedResponse, "ingest.Dimensions", err)
	}
	b, _, err := decode(data)
	if err != nil {
		return 0, 0, apperr.Wrap(apperr.MalformedResponse, "ingest.Dimensions", err)
	}
	return b.Dx(), b.Dy(), nil
}
