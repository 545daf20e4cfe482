package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"google.golang.org/genai"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/i18n"
	"visual-prompt-studio/internal/media"
)

// EnhancePrompt rewrites raw into a prompt tailored for model.
func (c *Client) EnhancePrompt(ctx context.Context, raw string, model ImageModel, length PromptLength, images []media.ReferenceImage) (string, error) {
	const op = "gemini.EnhancePrompt"

	parts := []*genai.Part{{Text: enhancePrompt(raw, model, length, len(images) > 0)}}
	imgs, err := imageParts(images)
	if err != nil {
		return "", err
	}
	parts = append(parts, imgs...)

	var out string
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(parts...), nil)
		if err != nil {
			return err
		}
		out, err = responseText(op, resp, "prompt enhancement")
		return err
	})
	return out, err
}

// GenerateImage returns a base64 PNG. Without images it uses the
// text-to-image model; with images, the images precede the instruction.
func (c *Client) GenerateImage(ctx context.Context, prompt string, images []media.ReferenceImage) (string, error) {
	if len(images) == 0 {
		return c.generateFromText(ctx, prompt)
	}

	const op = "gemini.GenerateImage"
	parts, err := imageParts(images)
	if err != nil {
		return "", err
	}
	parts = append(parts, &genai.Part{Text: prompt})

	var out string
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelImageEdit, userContent(parts...), &genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE"},
		})
		if err != nil {
			return err
		}
		out, err = imageFromResponse(op, resp)
		return err
	})
	return out, err
}

func (c *Client) generateFromText(ctx context.Context, prompt string) (string, error) {
	const op = "gemini.GenerateImage"

	var out string
	err := c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateImages(ctx, modelTextToImage, prompt, &genai.GenerateImagesConfig{
			NumberOfImages: 1,
			OutputMIMEType: "image/png",
			AspectRatio:    "1:1",
		})
		if err != nil {
			return err
		}
		if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
			return apperr.New(apperr.MalformedResponse, op, "the model did not return an image from the text prompt")
		}
		img := resp.GeneratedImages[0]
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			if img.RAIFilteredReason != "" {
				return apperr.New(apperr.ContentRejected, op, img.RAIFilteredReason)
			}
			return apperr.New(apperr.MalformedResponse, op, "the model did not return an image from the text prompt")
		}
		out = base64.StdEncoding.EncodeToString(img.Image.ImageBytes)
		return nil
	})
	return out, err
}

var refusalMarkers = []string{"i am unable to", "i cannot fulfill"}

func imageFromResponse(op string, resp *genai.GenerateContentResponse) (string, error) {
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0] != nil && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(p.InlineData.Data), nil
			}
		}
	}

	if rejected(resp) {
		return "", apperr.New(apperr.ContentRejected, op, "prompt rejected by safety filters")
	}

	if resp != nil {
		if text := strings.TrimSpace(resp.Text()); text != "" {
			lower := strings.ToLower(text)
			for _, marker := range refusalMarkers {
				if strings.Contains(lower, marker) {
					return "", apperr.New(apperr.MalformedResponse, op, "model refused: "+text)
				}
			}
			return "", apperr.New(apperr.MalformedResponse, op, text)
		}
	}

	if reason := finishReason(resp); reason != "" && reason != genai.FinishReasonStop {
		return "", apperr.New(apperr.MalformedResponse, op, fmt.Sprintf("generation failed, reason: %s", reason))
	}
	return "", apperr.New(apperr.MalformedResponse, op, "the model did not return an image, it may have refused the prompt")
}

// GetSuggestions returns short prompt ideas. Every failure except a safety
// rejection or a missing credential yields an empty list.
func (c *Client) GetSuggestions(ctx context.Context, prompt string, locale i18n.Locale, images []media.ReferenceImage) ([]string, error) {
	const op = "gemini.GetSuggestions"

	key := suggestionKey(prompt, locale, images)
	if v, ok := c.suggests.Get(key); ok {
		if cached, ok := v.([]string); ok {
			c.logger.Debug().Int("count", len(cached)).Msg("suggestions served from cache")
			return append([]string(nil), cached...), nil
		}
	}

	parts := []*genai.Part{{Text: suggestionsPrompt(prompt, locale)}}
	imgs, err := imageParts(images)
	if err != nil {
		return []string{}, nil
	}
	parts = append(parts, imgs...)

	var out []string
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(parts...), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return err
		}
		text, err := responseText(op, resp, "suggestions")
		if err != nil {
			return err
		}
		return decodeJSON(op, text, &out)
	})
	if err != nil {
		switch apperr.Classify(err) {
		case apperr.ContentRejected, apperr.CredentialMissing:
			return nil, err
		}
		c.logger.Warn().Err(err).Msg("suggestions unavailable")
		return []string{}, nil
	}
	if out == nil {
		out = []string{}
	}

	c.suggests.SetDefault(key, append([]string(nil), out...))
	return out, nil
}

func suggestionKey(prompt string, locale i18n.Locale, images []media.ReferenceImage) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s", locale, prompt)
	for _, img := range images {
		fmt.Fprintf(h, "\x00%s\x00%s", img.MimeType, img.Base64)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// AnalyzeDefects lists the photographic problems found in image.
func (c *Client) AnalyzeDefects(ctx context.Context, image media.ReferenceImage) ([]media.IssueTag, error) {
	const op = "gemini.AnalyzeDefects"

	parts, err := imageParts([]media.ReferenceImage{image})
	if err != nil {
		return nil, err
	}
	parts = append([]*genai.Part{{Text: defectsPrompt}}, parts...)

	var out []media.IssueTag
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(parts...), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   stringArraySchema,
		})
		if err != nil {
			return err
		}
		text, err := responseText(op, resp, "image analysis")
		if err != nil {
			return err
		}
		if err := decodeJSON(op, text, &out); err != nil {
			return err
		}
		if out == nil {
			return apperr.New(apperr.MalformedResponse, op, "response was not an array of issue strings")
		}
		return nil
	})
	return out, err
}

// SynthesizeRetouchPrompt detects issues and writes a retouch instruction.
func (c *Client) SynthesizeRetouchPrompt(ctx context.Context, image media.ReferenceImage) (RetouchPlan, error) {
	const op = "gemini.SynthesizeRetouchPrompt"

	parts, err := imageParts([]media.ReferenceImage{image})
	if err != nil {
		return RetouchPlan{}, err
	}
	parts = append([]*genai.Part{{Text: retouchPrompt}}, parts...)

	var plan RetouchPlan
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(parts...), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   retouchSchema,
		})
		if err != nil {
			return err
		}
		text, err := responseText(op, resp, "the retouch prompt")
		if err != nil {
			return err
		}

		var raw struct {
			DetectedIssues *[]media.IssueTag `json:"detectedIssues"`
			RetouchPrompt  *string           `json:"retouchPrompt"`
		}
		if err := decodeJSON(op, text, &raw); err != nil {
			return err
		}
		if raw.DetectedIssues == nil || raw.RetouchPrompt == nil {
			return apperr.New(apperr.MalformedResponse, op, "response was not in the expected format")
		}
		plan = RetouchPlan{Issues: *raw.DetectedIssues, Prompt: *raw.RetouchPrompt}
		return nil
	})
	return plan, err
}

// DescribeHairstyle returns an English description of the hairstyle in image.
func (c *Client) DescribeHairstyle(ctx context.Context, image media.ReferenceImage) (string, error) {
	const op = "gemini.DescribeHairstyle"

	parts, err := imageParts([]media.ReferenceImage{image})
	if err != nil {
		return "", err
	}
	parts = append([]*genai.Part{{Text: hairstylePrompt}}, parts...)

	var out string
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(parts...), nil)
		if err != nil {
			return err
		}
		out, err = responseText(op, resp, "hairstyle analysis")
		return err
	})
	return out, err
}

// DeconstructToStructuredPrompt describes image as a structured JSON prompt,
// returned indented with two spaces.
func (c *Client) DeconstructToStructuredPrompt(ctx context.Context, image media.ReferenceImage, locale i18n.Locale) (string, error) {
	const op = "gemini.DeconstructToStructuredPrompt"

	parts, err := imageParts([]media.ReferenceImage{image})
	if err != nil {
		return "", err
	}
	parts = append([]*genai.Part{{Text: deconstructPrompt(locale)}}, parts...)

	var out string
	err = c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(parts...), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   deconstructSchema(locale),
		})
		if err != nil {
			return err
		}
		text, err := responseText(op, resp, "the structured prompt")
		if err != nil {
			return err
		}
		out, err = indentObject(op, text)
		return err
	})
	return out, err
}

// LookupWeather asks the model for current conditions at a coordinate.
func (c *Client) LookupWeather(ctx context.Context, lat, lon float64) (Weather, error) {
	const op = "gemini.LookupWeather"

	var w Weather
	err := c.do(ctx, op, func(ctx context.Context, m Models) error {
		resp, err := m.GenerateContent(ctx, modelText, userContent(&genai.Part{Text: weatherPrompt(lat, lon)}), &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: weatherInstruction}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    weatherSchema,
		})
		if err != nil {
			return err
		}

		text := ""
		if resp != nil {
			text = strings.TrimSpace(resp.Text())
		}
		if text == "" {
			if reason := finishReason(resp); reason != "" && reason != genai.FinishReasonStop {
				return apperr.New(apperr.MalformedResponse, op, fmt.Sprintf("failed to get weather data, reason: %s", reason))
			}
			return apperr.New(apperr.MalformedResponse, op, "empty response for weather data")
		}

		var raw struct {
			Temperature *float64 `json:"temperature"`
			City        *string  `json:"city"`
			Condition   *string  `json:"condition"`
			Icon        *string  `json:"icon"`
		}
		if err := decodeJSON(op, text, &raw); err != nil {
			return err
		}
		if raw.Temperature == nil || raw.City == nil || raw.Condition == nil || raw.Icon == nil {
			return apperr.New(apperr.MalformedResponse, op, "weather response was not in the expected format")
		}
		w = Weather{
			TemperatureCelsius: int(math.Round(*raw.Temperature)),
			City:               *raw.City,
			Condition:          *raw.Condition,
			Icon:               WeatherIcon(*raw.Icon),
		}
		return nil
	})
	return w, err
}
