package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/media"
)

// rejected reports a safety block on the prompt or the first candidate.
func rejected(resp *genai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil &&
		resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return true
	}
	fb := resp.PromptFeedback
	if fb == nil {
		return false
	}
	if fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return true
	}
	for _, r := range fb.SafetyRatings {
		if r != nil && r.Blocked {
			return true
		}
	}
	return false
}

func finishReason(resp *genai.GenerateContentResponse) genai.FinishReason {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	return resp.Candidates[0].FinishReason
}

// responseText returns the trimmed text of resp. Empty text becomes
// ContentRejected when a safety block is visible, MalformedResponse
// otherwise.
func responseText(op string, resp *genai.GenerateContentResponse, what string) (string, error) {
	var text string
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text != "" {
		return text, nil
	}
	if rejected(resp) {
		return "", apperr.New(apperr.ContentRejected, op, "prompt rejected by safety filters")
	}
	return "", apperr.New(apperr.MalformedResponse, op, "empty response for "+what)
}

// stripFences removes a surrounding markdown code fence some models add
// even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decodeJSON(op, text string, v any) error {
	if err := json.Unmarshal([]byte(stripFences(text)), v); err != nil {
		return apperr.Wrap(apperr.MalformedResponse, op, fmt.Errorf("invalid JSON: %w", err))
	}
	return nil
}

// indentObject validates that text holds one JSON object and re-indents it
// with two spaces, keeping the model's key order.
func indentObject(op, text string) (string, error) {
	raw := []byte(stripFences(text))
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", apperr.Wrap(apperr.MalformedResponse, op, fmt.Errorf("invalid JSON: %w", err))
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", apperr.Wrap(apperr.MalformedResponse, op, err)
	}
	return buf.String(), nil
}

func imageParts(images []media.ReferenceImage) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(images))
	for _, img := range images {
		data, err := img.Bytes()
		if err != nil {
			return nil, apperr.Wrap(apperr.ValidationFailed, "gemini", fmt.Errorf("image %s: %w", img.Name, err))
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: img.MimeType, Data: data}})
	}
	return parts, nil
}

func userContent(parts ...*genai.Part) []*genai.Content {
	return []*genai.Content{{Role: "user", Parts: parts}}
}
