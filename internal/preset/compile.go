package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/media"
)

var (
	ErrSelectPose      = errors.New("a pose must be selected")
	ErrDescribeMockup  = errors.New("the mockup scene must be described")
	ErrNotReady        = errors.New("preset is missing required images or options")
	ErrPromptRequired  = errors.New("a prompt is required")
	ErrPromptOrImage   = errors.New("a prompt or an image is required")
	ErrNothingToRefine = errors.New("no generated image to refine")
)

// RefineSourceName is the file name given to a generated image when it is
// fed back for refinement.
const RefineSourceName = "generated_refinement_source.png"

// Result is a compiled generation request. Prompt already carries the
// aspect lock when Images is non-empty.
type Result struct {
	Prompt string
	Images []media.ReferenceImage
}

// AspectClause pins the output to ref's literal width:height pair.
func AspectClause(ref media.ReferenceImage) string {
	return "**ABSOLUTE RULE: The final output image's aspect ratio MUST EXACTLY MATCH the source image's aspect ratio (" +
		ref.Ratio() +
		").** This is a non-negotiable instruction. Preserve the original framing. The task is as follows:\n\n"
}

// Compile turns a preset selection into the prompt and image list sent to
// the generator. It is pure: the same Input always yields the same Result.
func Compile(in Input) (Result, error) {
	const op = "preset.compile"

	switch o := in.Options.(type) {
	case ReposeOptions:
		if o.Pose == "" {
			return Result{}, apperr.Wrap(apperr.ValidationFailed, op, ErrSelectPose)
		}
	case MockupOptions:
		if strings.TrimSpace(in.FreeText) == "" {
			return Result{}, apperr.Wrap(apperr.ValidationFailed, op, ErrDescribeMockup)
		}
	}
	if !Ready(in) {
		return Result{}, apperr.Wrap(apperr.ValidationFailed, op, fmt.Errorf("%s: %w", in.ID(), ErrNotReady))
	}

	prompt, images, err := build(in)
	if err != nil {
		return Result{}, err
	}
	if len(images) == 0 {
		images = in.Slots[0]
	}
	images = append([]media.ReferenceImage(nil), images...)

	if len(images) > 0 {
		ref := images[0]
		if bg, ok := in.first(1); ok && in.ID() == Background {
			ref = bg
		}
		prompt = AspectClause(ref) + prompt
	}
	return Result{Prompt: prompt, Images: images}, nil
}

// CompilePro builds a free-form request. The enhanced prompt wins over the
// raw one.
func CompilePro(raw, enhanced string, images []media.ReferenceImage) (Result, error) {
	prompt := strings.TrimSpace(enhanced)
	if prompt == "" {
		prompt = strings.TrimSpace(raw)
	}
	if prompt == "" && len(images) == 0 {
		return Result{}, apperr.Wrap(apperr.ValidationFailed, "preset.pro", ErrPromptOrImage)
	}
	images = append([]media.ReferenceImage(nil), images...)
	if len(images) > 0 {
		prompt = AspectClause(images[0]) + prompt
	}
	return Result{Prompt: prompt, Images: images}, nil
}

// CompileRefine edits the last generated image. The aspect lock always
// refers to the generated image.
func CompileRefine(instruction string, generated *media.GeneratedImage) (Result, error) {
	const op = "preset.refine"
	if strings.TrimSpace(instruction) == "" {
		return Result{}, apperr.Wrap(apperr.ValidationFailed, op, ErrPromptRequired)
	}
	if generated == nil || generated.Base64 == "" {
		return Result{}, apperr.Wrap(apperr.ValidationFailed, op, ErrNothingToRefine)
	}
	src := generated.AsReference(RefineSourceName)
	return Result{
		Prompt: AspectClause(src) + instruction,
		Images: []media.ReferenceImage{src},
	}, nil
}

func build(in Input) (string, []media.ReferenceImage, error) {
	free := in.FreeText
	both := func() []media.ReferenceImage {
		out := append([]media.ReferenceImage(nil), in.Slots[0]...)
		return append(out, in.Slots[1]...)
	}

	switch o := in.Options.(type) {
	case AIPromptEngineerOptions:
		style, err := styleFromJSON(in.Derived.JSONPrompt)
		if err != nil {
			return "", nil, err
		}
		return styleTransferPrompt(style), in.Slots[1], nil
	case RetouchOptions:
		return in.Derived.RetouchPrompt, nil, nil
	case RestoreOptions:
		return restorePrompt(o, free), nil, nil
	case RelightOptions:
		return relightPrompt(o, free), nil, nil
	case StyleOptions:
		style := o.Style
		if style == "" {
			style = "Photorealistic"
		}
		return "Task: Transform the image into the " + style + " style, preserving the main subject and composition. " + free, nil, nil
	case HairstyleOptions:
		return hairstylePrompt(o, in.Derived.HairstyleDescription, free), in.Slots[0], nil
	case BackgroundOptions:
		return backgroundPrompt + free, both(), nil
	case VirtualTryOnOptions:
		return tryOnPrompt(o, free), both(), nil
	case PassportOptions:
		return passportPrompt(o, free), nil, nil
	case ColorMatchOptions:
		return colorMatchPrompt + free, both(), nil
	case EditOptions:
		return editPrompt(o, free), nil, nil
	case ReposeOptions:
		return `Task: Change the pose of the person in the image to be **"` + o.Pose + `"**. IMPORTANT: The person's face, identity, clothing, and the background MUST remain exactly the same. The change must be photorealistic and seamless. ` + free, nil, nil
	case MockupOptions:
		return `Task: Place the provided image onto the following scene: **"` + free + `"**. The placement must be photorealistic, accounting for the object's texture, curves, and lighting. The result should be a high-quality mockup.`, nil, nil
	}
	return "", nil, apperr.New(apperr.ValidationFailed, "preset.compile", "no options selected")
}

var styleFields = []string{
	"style_and_medium",
	"composition_and_camera",
	"lighting",
	"color_palette",
	"quality_and_details",
}

// styleFromJSON keeps the style-bearing fields of a deconstructed prompt,
// dropping the subject description and technical parameters.
func styleFromJSON(raw string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return "", apperr.Wrap(apperr.MalformedResponse, "preset.compile", fmt.Errorf("structured prompt: %w", err))
	}
	parts := make([]string, 0, len(styleFields))
	for _, f := range styleFields {
		switch v := obj[f].(type) {
		case nil:
		case string:
			if v != "" {
				parts = append(parts, v)
			}
		case bool:
			if v {
				parts = append(parts, "true")
			}
		case float64:
			if v != 0 {
				parts = append(parts, fmt.Sprint(v))
			}
		default:
			b, _ := json.Marshal(v)
			parts = append(parts, string(b))
		}
	}
	return strings.Join(parts, ", "), nil
}

func styleTransferPrompt(style string) string {
	return `**TASK: Apply a new artistic style to the provided photograph of a person.**

**ABSOLUTE RULES:**
1.  **Preserve Identity:** You MUST preserve the person's identity, facial features, and general likeness from the input image. The final result must be recognizably the same person.
2.  **Apply Style:** You MUST apply the following detailed artistic style to the image.

**Artistic Style Description:**
` + style + `

**Final Instruction:** Generate a new image of the person from the photograph, rendered in the specified artistic style. Do not change the person.`
}

var restoreBase = map[PhotoType]map[RestoreStrategy]string{
	PhotoBW: {
		StrategyStandard:     "Task: Restore and colorize this black and white photo. Your goal is to add natural, lifelike colors, sharpen the details, and remove minor imperfections like dust, creases, and friction scratches. The result should be a clear, vibrant color photograph.",
		StrategyDetailed:     "Task: Perform a detailed restoration and colorization of this old black and white photograph. Focus on enhancing clarity and sharpness significantly. Add realistic, true-to-life colors, paying close attention to preserving and enhancing original textures like skin, hair, and fabric. Remove all age-related damage, paying special attention to friction scratches, creases, and tears.",
		StrategyProfessional: "**ABSOLUTE MASTER TASK: You are a world-class digital restoration artist. Your mission is to bring this old, black-and-white photograph back to life as a modern, ultra-realistic, high-resolution color photograph. This is not a simple colorization; it is a full reconstruction.**\n\n**NON-NEGOTIABLE RULES:**\n1.  **Identity Preservation:** The subject's likeness, facial structure, and expression must be perfectly preserved. The restored person must be undeniably the same person.\n2.  **Photorealism:** The final output must look like a photograph captured with a modern high-end DSLR camera, not a painting or a 3D render. Avoid any 'uncanny valley' or overly smooth AI look.\n\n**DETAILED INSTRUCTIONS:**\n-   **Damage Repair:** Meticulously remove all signs of aging: deep friction scratches, dust, tears, creases, chemical stains, fading, and noise. Reconstruct texture in damaged areas.\n-   **INTELLIGENT DETAIL RECONSTRUCTION & FACIAL REALISM:** This is the highest priority. Where details are blurred, faded, or lost, you must **intelligently and logically recreate them based on context.** This is a reconstruction, not just sharpening.\n    -   **Faces:** Reconstruct facial features with forensic detail and realism. If an eye is blurry, recreate it as sharp and clear with natural reflections. If a mouth is indistinct, redefine its shape. Ensure skin has a natural, porous texture, not an over-smoothed or plastic look.\n    -   **Text & Patterns:** If there is illegible text or blurred patterns (e.g., on clothing, in the background), reconstruct them to be sharp, clear, and contextually appropriate.\n-   **FORENSIC SHARPNESS:** Apply advanced deblurring and sharpening algorithms to the entire image. The final focus must be razor-sharp, especially on crucial details like eyes, hair strands, and fabric textures.\n-   **Color Science:** Apply professional, realistic color grading and colorization. Skin tones must be natural, with subtle variations in hue. Clothing and background colors should be plausible, historically appropriate, and aesthetically harmonious.\n-   **TEXTURE SYNTHESIS:** Where original textures are lost, intelligently recreate them. Hair should have individual strands, fabric should show its weave, and skin should have pores.",
	},
	PhotoColor: {
		StrategyStandard:     "Task: Perform a standard restoration of this faded color photo. Your goal is to correct color casts, restore vibrancy, improve overall sharpness, and clean up minor dust, creases, and friction scratches for a clear and revitalized image.",
		StrategyDetailed:     "Task: Perform a detailed restoration of this faded color photograph, which may be a photo of a physical print. Correct severe color shifts and fading to restore rich, accurate, true-to-life colors. Significantly enhance sharpness and clarity to reveal textures in skin, hair, and clothing. Remove all age-related damage, paying special attention to friction scratches, creases, tears, and digital noise. Correct for minor glare or uneven lighting from the recapture process.",
		StrategyProfessional: "**ULTIMATE RESTORATION DIRECTIVE: You are an elite digital restoration grandmaster. Your task is to analyze what is likely a digital photograph of an old, faded physical color print and completely reconstruct it into a flawless, modern, photorealistic masterpiece. The goal is not just to fix, but to transcend the original quality.**\n\n**CORE COMMANDS (NON-NEGOTIABLE):**\n1.  **IDENTITY LOCK:** The subjects' faces, likeness, and ethnicity MUST be preserved with 100% accuracy. The restored people must be undeniably the same individuals.\n2.  **MODERN PHOTOREALISM:** The final image must look as if it were shot today with a professional DSLR camera and prime lens. Eradicate any hint of an 'AI' or 'uncanny valley' appearance.\n\n**RECONSTRUCTION PROTOCOL:**\n-   **Recapture Flaw Correction:** First, identify and completely eliminate artifacts from the photo-taking process. This includes **glare from lights, surface reflections, uneven room lighting, perspective distortion, and digital noise/artifacts from the camera phone.**\n-   **Archival Damage Repair:** Meticulously remove all physical aging signs: deep friction scratches, dust, tears, creases, chemical stains, color bleeding, and severe fading. Intelligently reconstruct the image information and texture that was lost underneath the damage.\n-   **INTELLIGENT DETAIL RECONSTRUCTION & FACIAL REALISM:** This is the highest priority. Where details are blurred, faded, or lost, you must **intelligently and logically recreate them based on context.** This is a reconstruction, not just sharpening.\n    -   **Faces:** Reconstruct facial features with forensic detail and realism. If an eye is blurry, recreate it as sharp and clear with natural reflections. If a mouth is indistinct, redefine its shape. Ensure skin has a natural, porous texture, not an over-smoothed or plastic look.\n    -   **Text & Patterns:** If there is illegible text or blurred patterns (e.g., on clothing, in the background), reconstruct them to be sharp, clear, and contextually appropriate.\n-   **FORENSIC SHARPNESS:** Apply advanced deblurring and sharpening algorithms to the entire image. The final focus must be razor-sharp, especially on crucial details like eyes, hair strands, and fabric textures.\n-   **TOTAL COLOR RECONSTRUCTION:** This is a critical step. Do not merely adjust existing colors. **Rebuild the entire color palette from scratch.** Aggressively neutralize all dominant color casts (e.g., yellow, magenta, blue tints common in old photos). Re-render skin tones to be natural and lifelike with subtle variations. Make clothing and background colors vibrant, realistic, and harmonious.\n-   **TEXTURE SYNTHESIS:** Where original textures are lost, intelligently recreate them. Hair must have individual strands, clothing must show its weave and material properties.",
	},
}

var restoreBackgrounds = map[RestoreBackground]string{
	RestoreBgWhite: "The final image should have the subject perfectly isolated on a clean, solid, professional white studio background.",
	RestoreBgGrey:  "The final image should have the subject perfectly isolated on a clean, solid, professional medium-grey studio background.",
	RestoreBgBlue:  "The final image should have the subject perfectly isolated on a clean, solid, professional light-blue studio background, similar to a passport photo.",
}

func restorePrompt(o RestoreOptions, free string) string {
	photo, strategy := o.PhotoType, o.Strategy
	if _, ok := restoreBase[photo]; !ok {
		photo = PhotoBW
	}
	base, ok := restoreBase[photo][strategy]
	if !ok {
		base = restoreBase[photo][StrategyProfessional]
	}
	return strings.TrimSpace(base + " " + restoreBackgrounds[o.Background] + " " + free)
}

func relightPrompt(o RelightOptions, free string) string {
	if o.LightStyle == "" && o.LightDirection == "" {
		return `**TASK: Professional Automatic Image Re-Lighting.**

**Primary Goal: Dramatically improve the image's lighting to make it look professional, captivating, and cinematic. Do not just make minor adjustments; create a new, superior lighting environment from scratch.**

**Instructions:**
1.  **Analyze Subject & Mood:** Identify the main subject and the potential mood of the photo (e.g., portrait, landscape, action shot).
2.  **Choose an Optimal Lighting Style:** Based on your analysis, select a professional lighting style that best complements the subject. Examples include: soft cinematic lighting, warm golden hour light, dramatic Rembrandt lighting, or clean three-point studio lighting.
3.  **Apply the New Light:** Re-light the entire scene with your chosen style. This includes creating new virtual light sources and ensuring they cast realistic highlights and physically-accurate shadows.
4.  **Enhance Dynamic Range:** Sculpt the image with light, ensuring there are rich shadows and bright, detailed highlights for a full tonal range.
5.  **Maintain Realism:** The final result must look photorealistic and believable, as if it were shot by a professional photographer with an expert lighting setup. Do not alter the content of the image. ` + free
	}

	style := o.LightStyle
	if style == "" {
		style = "Natural Sunlight"
	}
	dir := o.LightDirection
	if dir == "" {
		dir = "front"
	}
	return `**TASK: Professional & Dramatic Image Re-Lighting.**

**ABSOLUTE RULE: You MUST completely change the lighting of the image. IGNORE the original lighting and apply a new, physically-accurate lighting scheme as described below. The change must be significant and obvious.**

**New Lighting Scheme:**
*   **Style:** ` + style + `
*   **Direction:** From the ` + dir + `

**Instructions:**
1.  **Analyze Scene Geometry:** Understand the 3D form of all subjects and objects in the image.
2.  **Apply New Light Source:** Realistically cast the new '` + style + `' light from the specified direction.
3.  **Create Accurate Shadows:** The new light source MUST cast physically-correct shadows. The direction, softness, and length of shadows must match the new light style and direction perfectly.
4.  **Maintain Subject Integrity:** DO NOT change the subjects, their poses, clothing, or the camera's composition. ONLY the lighting and shadows are to be transformed.
5.  **Final Output:** The result must be a photorealistic image where the lighting has been dramatically and convincingly altered. ` + free
}

const hairstyleRule = `. **ABSOLUTE RULE:** The person's facial features, identity, expression, clothing, and the background environment MUST remain completely unchanged. The edit must be photorealistic and seamlessly blended with the original lighting.`

// hairstylePrompt prefers the description analyzed from a reference photo
// over the dropdown choice.
func hairstylePrompt(o HairstyleOptions, analyzed, free string) string {
	extra := ""
	if free != "" {
		extra = "Additional details: " + free
	}
	if analyzed != "" {
		return `Task: Change the hairstyle of the person in the image. The new hairstyle should be exactly as described: **"` + analyzed + `"**. ` + extra + hairstyleRule
	}
	return "Task: Change the hairstyle of the person in the image. The new style should be: **" + o.Hairstyle + "**. " + extra + hairstyleRule
}

const backgroundPrompt = `This is a high-fidelity background replacement task. The first image contains the subject to be extracted. The second image is the new background. Your task is to: 1. Create a perfect, detailed mask of the subject, paying extreme attention to fine details like hair, fur, and semi-transparent edges. 2. Composite the extracted subject onto the new background. 3. CRITICAL: Analyze the lighting of the new background (direction, color, intensity) and realistically relight the subject to match. This includes casting appropriate shadows from the subject onto the background and adjusting color temperatures and reflections. The final result must be a seamless, photorealistic composition. `

func tryOnPrompt(o VirtualTryOnOptions, free string) string {
	extra := ""
	if free != "" {
		extra = "Specific instructions: " + free + "."
	}
	if o.Mode == TryOnExtract {
		return `Task: This is a virtual try-on task. The first image contains a person wearing an outfit. The second image contains a new person. Your job is to identify and digitally extract the complete outfit (e.g., shirt, pants, dress) from the first person and realistically fit it onto the second person. The new person's face, hair, pose, and the background must remain unchanged. The clothing must adapt to the new person's body shape and pose, with realistic wrinkles and lighting. The final output must be a seamless, photorealistic image of the second person wearing the clothes from the first. ` + extra
	}
	return `Task: Change the clothing of the person in the first image. The subsequent images are references for the new outfit. Analyze the style, type, color, and texture of the clothing in the reference images. Then, apply a new outfit inspired by these references to the person in the first image. Ensure the new clothing fits their body shape and pose naturally. Blend lighting and shadows for a realistic result. ` + extra
}

const (
	defaultPassportOutfit = "simple, professional attire (e.g. a collared shirt or blouse)"
	defaultPassportHair   = "hair should be styled neatly and professionally, away from the face"
)

var passportOutfitTexts = map[string]string{
	"whiteShirt-blackVest": "a white collared shirt and a black vest",
	"darkSuit-tie":         "a dark suit with a tie",
	"blouse-blazer":        "a professional blouse with a blazer",
}

var passportHairTexts = map[PassportHairstyle]string{
	PassportHairLetDown:   "hair should be styled neatly, let down and away from the face",
	PassportHairSweptBack: "hair should be styled neatly, swept back and away from the face",
	PassportHairAuto:      defaultPassportHair,
}

func passportPrompt(o PassportOptions, free string) string {
	var bg string
	switch o.Background {
	case PassportBgWhite:
		bg = "solid white"
	case PassportBgLightBlue:
		bg = "solid light blue"
	case PassportBgCustom:
		bg = o.BackgroundCustom
		if bg == "" {
			bg = "solid light blue"
		}
	default:
		bg = "a solid, neutral color (like light blue or off-white)"
	}

	var outfit string
	if o.OutfitType == OutfitCustom {
		outfit = o.OutfitCustom
	} else {
		outfit = passportOutfitTexts[o.Outfit]
	}
	if outfit == "" {
		outfit = defaultPassportOutfit
	}

	hair, ok := passportHairTexts[o.Hairstyle]
	if !ok {
		hair = defaultPassportHair
	}

	extra := free
	if extra == "" {
		extra = "None."
	}

	return "Task: Recreate this portrait as a professional ID photo (passport photo). The subject's facial features and identity MUST remain unchanged.\n" +
		"-   **Background:** Change the background to a " + bg + " color.\n" +
		"-   **Outfit:** Change the outfit to " + outfit + ".\n" +
		"-   **Hairstyle:** The " + hair + ".\n" +
		"-   **Lighting & Expression:** Ensure the lighting is even and neutral with no harsh shadows, and the subject has a neutral expression looking directly at the camera.\n" +
		"-   **Additional Instructions:** " + extra + "\n" +
		"The final image must be a high-quality, professional headshot suitable for official documents."
}

const colorMatchPrompt = `**ABSOLUTE RULE: EDIT THE FIRST IMAGE. DO NOT CHANGE ITS CONTENT, SUBJECT, OR COMPOSITION.**

This is a professional color grading transfer task. You have two images:
- **Image 1 (Source):** The image to be edited. Its content MUST be preserved.
- **Image 2 (Reference):** The style reference. Its content should be IGNORED.

Your task is to analyze the complete visual aesthetic of Image 2 (color palette, tone curve, contrast, lighting) and apply that exact aesthetic to Image 1. The output must be the edited version of Image 1. `

func editPrompt(o EditOptions, free string) string {
	keys := o.Fixes.Keys()
	if len(keys) == 0 {
		return "Task: Perform a professional, automatic enhancement of this photograph. Analyze and correct any issues with lighting, color, sharpness, and composition to produce a high-quality, natural-looking result. " + free
	}
	texts := make([]string, 0, len(keys))
	for _, k := range keys {
		texts = append(texts, fixTexts[k])
	}
	return "Task: Perform a professional, high-quality edit on the provided image. Focus on these corrections: " +
		strings.Join(texts, " ") +
		". The final result must look natural and high-quality. " + free
}
