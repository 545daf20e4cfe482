package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"visual-prompt-studio/internal/apperr"
)

type contentCall struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

type imagesCall struct {
	Model  string
	Prompt string
	Config *genai.GenerateImagesConfig
}

// fakeModels replays canned responses and records every request.
type fakeModels struct {
	mu sync.Mutex

	contentResp *genai.GenerateContentResponse
	contentErr  error
	imagesResp  *genai.GenerateImagesResponse
	imagesErr   error
	block       chan struct{}

	contentCalls []contentCall
	imagesCalls  []imagesCall
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	f.contentCalls = append(f.contentCalls, contentCall{Model: model, Contents: contents, Config: config})
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.contentResp, f.contentErr
}

func (f *fakeModels) GenerateImages(_ context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imagesCalls = append(f.imagesCalls, imagesCall{Model: model, Prompt: prompt, Config: config})
	return f.imagesResp, f.imagesErr
}

func (f *fakeModels) calls() []contentCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contentCall(nil), f.contentCalls...)
}

type staticKeys struct {
	key string
}

func (k staticKeys) APIKey() (string, error) {
	if k.key == "" {
		return "", apperr.New(apperr.CredentialMissing, "test", "no key")
	}
	return k.key, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func safetyResponse() *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
}

// newTestClient wires a Client to fake. factoryCalls counts backend builds.
func newTestClient(fake *fakeModels, key string) (*Client, *int) {
	builds := 0
	c := New(Options{
		Keys: staticKeys{key: key},
		Factory: func(context.Context, string) (Models, error) {
			builds++
			return fake, nil
		},
		RateInterval: 1,
		RateBurst:    100,
	})
	return c, &builds
}
