package preset

import (
	"fmt"
	"strings"

	"visual-prompt-studio/internal/media"
)

// FixKey names one manual correction of the edit preset.
type FixKey string

const (
	FixProfessionalize     FixKey = "professionalize"
	FixComposition         FixKey = "composition"
	FixLighting            FixKey = "lighting"
	FixColors              FixKey = "colors"
	FixSharpness           FixKey = "sharpness"
	FixNoise               FixKey = "noise"
	FixChromaticAberration FixKey = "chromatic_aberration"
	FixShadows             FixKey = "shadows"
	FixHighlights          FixKey = "highlights"
	FixContrast            FixKey = "contrast"
	FixSkinHeal            FixKey = "skin_heal"
	FixSkinTone            FixKey = "skin_tone"
	FixSkinMattify         FixKey = "skin_mattify"
	FixSkinDodgeBurn       FixKey = "skin_dodge_burn"
	FixSkinEyes            FixKey = "skin_eyes"
	FixSkinTeeth           FixKey = "skin_teeth"
	FixFabric              FixKey = "fabric"
	FixBackdrop            FixKey = "backdrop"
)

// Fixes lists every correction in the order selected fixes are joined.
var Fixes = []FixKey{
	FixProfessionalize,
	FixComposition,
	FixLighting,
	FixColors,
	FixSharpness,
	FixNoise,
	FixChromaticAberration,
	FixShadows,
	FixHighlights,
	FixContrast,
	FixSkinHeal,
	FixSkinTone,
	FixSkinMattify,
	FixSkinDodgeBurn,
	FixSkinEyes,
	FixSkinTeeth,
	FixFabric,
	FixBackdrop,
}

var issueFixes = map[media.IssueTag]FixKey{
	media.PoorComposition:     FixComposition,
	media.UnbalancedLighting:  FixLighting,
	media.DullColors:          FixColors,
	media.BlurryOrSoft:        FixSharpness,
	media.ImageNoise:          FixNoise,
	media.ChromaticAberration: FixChromaticAberration,
	media.HarshShadows:        FixShadows,
	media.WashedOutHighlights: FixHighlights,
	media.LowContrast:         FixContrast,
	media.OversaturatedColors: FixColors,
	media.SkinBlemishes:       FixSkinHeal,
	media.UnevenSkinTone:      FixSkinTone,
	media.OilySkinShine:       FixSkinMattify,
	media.DullEyes:            FixSkinEyes,
	media.YellowTeeth:         FixSkinTeeth,
}

func ParseFix(s string) (FixKey, error) {
	s = strings.TrimSpace(s)
	for _, k := range Fixes {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown fix %q", s)
}

func fixIndex(k FixKey) int {
	for i, f := range Fixes {
		if f == k {
			return i
		}
	}
	return -1
}

// FixSet is a value-typed set of fixes; copies never alias.
type FixSet uint32

func (s FixSet) Has(k FixKey) bool {
	i := fixIndex(k)
	return i >= 0 && s&(1<<uint(i)) != 0
}

func (s FixSet) With(k FixKey) FixSet {
	if i := fixIndex(k); i >= 0 {
		return s | 1<<uint(i)
	}
	return s
}

func (s FixSet) Without(k FixKey) FixSet {
	if i := fixIndex(k); i >= 0 {
		return s &^ (1 << uint(i))
	}
	return s
}

// Keys returns the selected fixes in catalog order.
func (s FixSet) Keys() []FixKey {
	var out []FixKey
	for _, k := range Fixes {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s FixSet) Empty() bool { return s == 0 }

// FixesFor turns detected issues into a fresh selection. Unknown tags
// select nothing.
func FixesFor(issues []media.IssueTag) FixSet {
	var s FixSet
	for _, issue := range issues {
		if k, ok := issueFixes[issue]; ok {
			s = s.With(k)
		}
	}
	return s
}

var fixTexts = map[FixKey]string{
	FixProfessionalize: "\n" + `**TASK: Creative & Professional Image Remastering.**
You are a world-class creative director and photo retoucher. Your goal is to take this amateur-looking photo and transform it into a breathtaking, magazine-quality masterpiece. You have full creative freedom to achieve this.

**PROCESS:**
1.  **Artistic Re-Lighting:** Do not just balance the existing light. **Dramatically re-imagine the lighting.** Introduce new, artistic light sources. For example, create soft rim lighting, a warm golden hour glow, or cinematic key lights to sculpt the subject and create a powerful mood.
2.  **Compositional Improvement:** If necessary, **re-compose the shot**. You can crop the image to create a more powerful, balanced, or dynamic composition that draws the eye to the main subject.
3.  **Background Enhancement:** Artistically enhance the background to complement the subject and improve the overall composition. The goal is to make the subject stand out. Depending on the context, this could mean subtly increasing the depth of field (bokeh) for portraits, or keeping the background sharp and clean for landscapes or architectural shots. You are also free to add subtle textures or shift colors.
4.  **High-End Retouching:** Apply professional retouching techniques.
    *   **Simulate High-End Optics:** Process the image to look like it was captured on a top-tier full-frame camera and a prime lens (e.g., 85mm f/1.2).
    *   **Refine Color & Tone:** Apply sophisticated color grading to create a cohesive and evocative mood. Ensure perfect skin tones and rich, deep colors.
    *   **Enhance Micro-contrast & Detail:** Make details pop and add dimensionality, especially in textures like fabric, hair, and eyes.
5.  **Final Vision:** The final result should be a stunning, artistic interpretation that is dramatically superior to the original. It should look intentional, professional, and visually captivating.`,
	FixComposition:         "Subtly improve the composition, potentially through rule-of-thirds cropping, to enhance the main subject.",
	FixLighting:            "Balance the overall lighting. Correct any under or overexposed areas for a full dynamic range.",
	FixColors:              "Enhance the colors. Correct the white balance, increase vibrancy and saturation naturally without looking artificial. Fix any color casts.",
	FixSharpness:           "Increase sharpness and clarity. Deblur any softness and enhance fine details and textures.",
	FixNoise:               "Reduce any visible image noise or grain, especially in shadow areas, while preserving detail.",
	FixChromaticAberration: "Remove any chromatic aberration (color fringing), especially around high-contrast edges.",
	FixShadows:             "Soften harsh shadows and recover details from dark areas.",
	FixHighlights:          "Recover details from blown-out or washed-out highlights.",
	FixContrast:            "Improve the overall contrast, making the image pop without crushing blacks or whites.",
	FixSkinHeal:            "Perform high-end skin retouching. Meticulously remove blemishes, pimples, and minor scars while perfectly preserving the natural skin texture using a frequency separation-like technique.",
	FixSkinTone:            "Even out the skin tone across the face and body. Correct any redness, blotchiness, or discoloration for a smooth, uniform complexion.",
	FixSkinMattify:         "Reduce oily shine on the skin. Apply a subtle mattifying effect to areas like the forehead, nose, and chin for a clean, professional look.",
	FixSkinDodgeBurn:       "Apply a subtle and professional dodge and burn effect to enhance facial contours and create volume. Lighten areas like the bridge of the nose and under the eyes, and darken areas like the cheekbones to add depth.",
	FixSkinEyes:            "Enhance the eyes. Make them brighter and more brilliant, increase the sharpness of the iris, and remove any distracting red blood vessels.",
	FixSkinTeeth:           "Naturally whiten the teeth. Remove any yellow cast without making them look artificial.",
	FixFabric:              "Enhance the texture and details of the fabric in the clothing. Make the patterns and weaves more distinct.",
	FixBackdrop:            "Clean the background. Remove any dust, scratches, or distracting elements from the backdrop to create a clean, uniform look.",
}
