package gemini

import (
	"fmt"
	"strings"

	"visual-prompt-studio/internal/media"
)

const (
	modelText        = "gemini-2.5-flash"
	modelImageEdit   = "gemini-2.5-flash-image"
	modelTextToImage = "imagen-4.0-generate-001"
)

// ImageModel is the generator a prompt is being tailored for.
type ImageModel string

const (
	Imagen4          ImageModel = "Imagen 4.0"
	GeminiFlashImage ImageModel = "Gemini 2.5 Flash Image"
	Flux             ImageModel = "Flux"
	SD15             ImageModel = "Stable Diffusion 1.5"
	FluxKontext      ImageModel = "Flux Kontext"
	QwenImage        ImageModel = "Qwen Image"
	FluxKrea         ImageModel = "Flux Krea"
	QwenImageEdit    ImageModel = "Qwen Image Edit"
)

var ImageModels = []ImageModel{Imagen4, GeminiFlashImage, Flux, SD15, FluxKontext, QwenImage, FluxKrea, QwenImageEdit}

var modelAliases = map[string]ImageModel{
	"imagen":    Imagen4,
	"flash":     GeminiFlashImage,
	"flux":      Flux,
	"sd15":      SD15,
	"kontext":   FluxKontext,
	"qwen":      QwenImage,
	"krea":      FluxKrea,
	"qwen-edit": QwenImageEdit,
}

// ParseImageModel accepts a display name or a short alias, case-insensitively.
func ParseImageModel(s string) (ImageModel, error) {
	s = strings.TrimSpace(s)
	for _, m := range ImageModels {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	if m, ok := modelAliases[strings.ToLower(s)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown image model %q", s)
}

type PromptLength string

const (
	Short  PromptLength = "Short"
	Medium PromptLength = "Medium"
	Long   PromptLength = "Long"
)

func ParsePromptLength(s string) (PromptLength, error) {
	for _, l := range []PromptLength{Short, Medium, Long} {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown prompt length %q", s)
}

// RetouchPlan is the outcome of the retouch analysis.
type RetouchPlan struct {
	Issues []media.IssueTag
	Prompt string
}

type WeatherIcon string

const (
	IconSun          WeatherIcon = "SUN"
	IconCloud        WeatherIcon = "CLOUD"
	IconRain         WeatherIcon = "RAIN"
	IconSnow         WeatherIcon = "SNOW"
	IconStorm        WeatherIcon = "STORM"
	IconFog          WeatherIcon = "FOG"
	IconPartlyCloudy WeatherIcon = "PARTLY_CLOUDY"
)

type Weather struct {
	TemperatureCelsius int         `json:"temperature"`
	City               string      `json:"city"`
	Condition          string      `json:"condition"`
	Icon               WeatherIcon `json:"icon"`
}
