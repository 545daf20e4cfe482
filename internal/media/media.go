package media

import (
	"encoding/base64"
	"fmt"
)

// ReferenceImage is an ingested user image. Base64 carries no data-URI
// prefix. Values are never mutated after ingestion.
type ReferenceImage struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Ratio is the literal W:H pair used in aspect-ratio instructions.
func (r ReferenceImage) Ratio() string {
	return fmt.Sprintf("%d:%d", r.Width, r.Height)
}

func (r ReferenceImage) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Base64)
}

type GeneratedImage struct {
	Base64 string `json:"base64"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AsReference turns a generated result back into an input image. Generated
// images are always PNG.
func (g GeneratedImage) AsReference(name string) ReferenceImage {
	return ReferenceImage{
		Base64:   g.Base64,
		MimeType: "image/png",
		Name:     name,
		Width:    g.Width,
		Height:   g.Height,
	}
}

type IssueTag string

const (
	PoorComposition     IssueTag = "POOR_COMPOSITION"
	UnbalancedLighting  IssueTag = "UNBALANCED_LIGHTING"
	DullColors          IssueTag = "DULL_COLORS"
	BlurryOrSoft        IssueTag = "BLURRY_OR_SOFT"
	ImageNoise          IssueTag = "IMAGE_NOISE"
	ChromaticAberration IssueTag = "CHROMATIC_ABERRATION"
	HarshShadows        IssueTag = "HARSH_SHADOWS"
	WashedOutHighlights IssueTag = "WASHED_OUT_HIGHLIGHTS"
	LowContrast         IssueTag = "LOW_CONTRAST"
	OversaturatedColors IssueTag = "OVERSATURATED_COLORS"
	UnevenSkinTone      IssueTag = "UNEVEN_SKIN_TONE"
	SkinBlemishes       IssueTag = "SKIN_BLEMISHES"
	OilySkinShine       IssueTag = "OILY_SKIN_SHINE"
	DullEyes            IssueTag = "DULL_EYES"
	YellowTeeth         IssueTag = "YELLOW_TEETH"
)

// AllIssues lists every tag in the order the analysis prompt enumerates them.
var AllIssues = []IssueTag{
	PoorComposition,
	UnbalancedLighting,
	DullColors,
	BlurryOrSoft,
	ImageNoise,
	ChromaticAberration,
	HarshShadows,
	WashedOutHighlights,
	LowContrast,
	OversaturatedColors,
	UnevenSkinTone,
	SkinBlemishes,
	OilySkinShine,
	DullEyes,
	YellowTeeth,
}
