package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/i18n"
	"visual-prompt-studio/internal/media"
)

type generateCall struct {
	Prompt string
	Images []media.ReferenceImage
}

// fakeGateway returns canned results and records generation requests.
// When block is set, DeconstructToStructuredPrompt signals started and
// waits for block to close.
type fakeGateway struct {
	mu sync.Mutex

	enhanced    string
	image       string
	suggestions []string
	issues      []media.IssueTag
	plan        gemini.RetouchPlan
	hairstyle   string
	jsonPrompt  string
	weather     gemini.Weather
	err         error

	started chan struct{}
	block   chan struct{}

	generated []generateCall
	resets    int
	weatherAt [2]float64
}

func (f *fakeGateway) EnhancePrompt(_ context.Context, raw string, _ gemini.ImageModel, _ gemini.PromptLength, _ []media.ReferenceImage) (string, error) {
	return f.enhanced, f.err
}

func (f *fakeGateway) GenerateImage(_ context.Context, prompt string, images []media.ReferenceImage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, generateCall{Prompt: prompt, Images: images})
	return f.image, f.err
}

func (f *fakeGateway) GetSuggestions(context.Context, string, i18n.Locale, []media.ReferenceImage) ([]string, error) {
	return f.suggestions, f.err
}

func (f *fakeGateway) AnalyzeDefects(context.Context, media.ReferenceImage) ([]media.IssueTag, error) {
	return f.issues, f.err
}

func (f *fakeGateway) SynthesizeRetouchPrompt(context.Context, media.ReferenceImage) (gemini.RetouchPlan, error) {
	return f.plan, f.err
}

func (f *fakeGateway) DescribeHairstyle(context.Context, media.ReferenceImage) (string, error) {
	return f.hairstyle, f.err
}

func (f *fakeGateway) DeconstructToStructuredPrompt(ctx context.Context, _ media.ReferenceImage, _ i18n.Locale) (string, error) {
	if f.block != nil {
		close(f.started)
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.jsonPrompt, f.err
}

func (f *fakeGateway) LookupWeather(_ context.Context, lat, lon float64) (gemini.Weather, error) {
	f.weatherAt = [2]float64{lat, lon}
	return f.weather, f.err
}

func (f *fakeGateway) Reset() {
	f.mu.Lock()
	f.resets++
	f.mu.Unlock()
}

func (f *fakeGateway) calls() []generateCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]generateCall(nil), f.generated...)
}

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV { return &memKV{data: map[string]string{}} }

func (m *memKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngBase64(t *testing.T, w, h int) string {
	return base64.StdEncoding.EncodeToString(pngBytes(t, w, h))
}
