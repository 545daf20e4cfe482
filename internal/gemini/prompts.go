package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"visual-prompt-studio/internal/i18n"
)

var modelDescriptions = map[ImageModel]string{
	Imagen4:          "Google's most advanced text-to-image model. Excels at photorealism, high detail, and understanding complex, natural language prompts. Describe scenes with rich detail, focusing on lighting, atmosphere, and specific artistic styles. Less reliant on comma-separated tags.",
	GeminiFlashImage: "A powerful and fast multi-modal model. Ideal for both generating new images and editing existing ones. For editing, provide a clear instruction alongside the image (e.g., 'add a hat', 'change the background to a sunny beach'). For generation, it understands natural prompts well.",
	Flux:             "State-of-the-art for photorealism and detail. It understands natural language exceptionally well. Use descriptive, full sentences. Focus on details like lighting, textures, camera settings (e.g., 'shot on 70mm film, f/2.8'). Avoid simple tag lists.",
	SD15:             "A versatile and classic model. It responds very well to comma-separated keywords, artist names ('style of Greg Rutkowski'), and specific art styles ('Art Deco', 'Cyberpunk'). It's less adept at complex sentences than Flux.",
	FluxKontext:      "Specialized for extremely long and narrative prompts. Perfect for telling a story or describing a highly complex scene with multiple subjects and interactions. The more detailed the narrative, the better.",
	QwenImage:        "Excels at anime, manga, and illustrative styles. Also has a unique ability to generate legible text within images. When prompting for this model, specify Asian aesthetics or artistic styles clearly.",
	FluxKrea:         "Tuned for creative, artistic, and often surreal outputs. It responds well to abstract concepts, emotional language, and unconventional combinations. Don't be afraid to be poetic and imaginative.",
	QwenImageEdit:    "Designed specifically for editing. Requires a reference image and a clear, direct instruction. Use imperative commands like 'Change the background to a beach', 'Make the shirt red', 'Add a hat on his head'.",
}

var lengthInstructions = map[PromptLength]string{
	Short:  "a concise but powerful prompt, around 15-25 words.",
	Medium: "a detailed prompt, around 40-60 words, adding more context, style cues, and composition details.",
	Long:   "a very descriptive, complex prompt, 80+ words, specifying intricate details about lighting, camera angles, art style, textures, and mood.",
}

func enhancePrompt(raw string, model ImageModel, length PromptLength, withImages bool) string {
	refLine, refCue := "", ""
	if withImages {
		refLine = "- **Reference Images:** The user has provided images for context, style, or subject guidance."
		refCue = "and the visual cues from the reference images"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a world-class prompt engineer, a master at crafting the perfect text-to-image prompt. Your task is to transform a user's basic idea into a high-performance prompt, meticulously tailored for the specific target model: **%s**.\n\n", model)
	b.WriteString("**Target Model Deep-Dive:**\n")
	fmt.Fprintf(&b, "- **Model:** **%s**\n", model)
	fmt.Fprintf(&b, "- **Characteristics & Optimal Phrasing:** %s\n\n", modelDescriptions[model])
	b.WriteString("**User's Request:**\n")
	fmt.Fprintf(&b, "- **Base Idea:** \"%s\"\n", raw)
	fmt.Fprintf(&b, "- **Desired Length:** %s\n", length)
	fmt.Fprintf(&b, "%s\n\n", refLine)
	b.WriteString("**Your Mission:**\n")
	fmt.Fprintf(&b, "1.  **Deconstruct the Input:** Deeply analyze the user's base idea %s. Identify the core subject, intent, and any implied style.\n", refCue)
	fmt.Fprintf(&b, "2.  **Strategize for the Model:** Based on the **%s** characteristics above, choose the best prompting strategy. Will you use natural language sentences, comma-separated tags, artist names, or a narrative description?\n", model)
	b.WriteString(`3.  **Craft the Master Prompt:** Rewrite and expand the prompt. Infuse it with rich, evocative vocabulary. Add layers of detail regarding:
    *   **Subject:** Poses, expressions, clothing, specific features.
    *   **Environment:** Setting, atmosphere, weather.
    *   **Lighting:** Type (e.g., cinematic, soft, neon), direction, time of day (e.g., golden hour).
    *   **Composition:** Camera angle (e.g., low angle, wide shot), lens (e.g., 85mm, macro), depth of field.
    *   **Style:** Art medium (e.g., oil painting, 3D render), artistic movement, specific artist styles that align with the model's strengths.
    *   **Quality:** Keywords like 'masterpiece', 'highly detailed', '4K'.
`)
	fmt.Fprintf(&b, "4.  **Adhere to Constraints:** Ensure the final prompt aligns with the desired length: %s.\n", lengthInstructions[length])
	fmt.Fprintf(&b, "5.  **Language & Formatting:** The final prompt **MUST** be in English. Structure it using the optimal phrasing for **%s** (e.g., sentences for Flux, tags for SD1.5).\n", model)
	b.WriteString("6.  **Final Output:** Your response must be **ONLY** the final, enhanced prompt. No commentary, no explanations, no introductory phrases. Just the pure, ready-to-use prompt.")
	return b.String()
}

func suggestionsPrompt(current string, locale i18n.Locale) string {
	languageInstruction := `**IMPORTANT**: Return ONLY a valid JSON array of strings in English. Do not include any other text, explanations, or markdown formatting.`
	if locale == i18n.Vietnamese {
		languageInstruction = `**QUAN TRỌNG**: Chỉ trả về một mảng JSON hợp lệ chứa các chuỗi tiếng Việt. Không bao gồm bất kỳ văn bản, giải thích, hoặc định dạng markdown nào khác.`
	}

	return `You are a creative assistant specializing in text-to-image prompt brainstorming. Your primary task is to deeply analyze the user's input—which may include a text prompt and/or reference images—and provide a list of 8-10 highly relevant, short, evocative keywords or phrases.

**Analysis Process:**
1.  **Analyze the Images (if provided):** Scrutinize the reference images for their core elements: subject, style (e.g., photorealistic, anime, watercolor), color palette, lighting (e.g., golden hour, neon), and composition. Your suggestions should stem directly from these visual cues.
2.  **Analyze the Text Prompt (if provided):** Examine the user's text for keywords and intent. The user's prompt is: "` + current + `"
3.  **Synthesize:** Combine insights from both the images and text to generate complementary and additive ideas. The suggestions must be logically connected to the provided input.

**Output Instructions:**
1.  Keep each suggestion concise (1-5 words).
2.  The suggestions should be diverse, covering style, setting, lighting, detail, etc., but always relevant.
3.  ` + languageInstruction + `

Example (English, with image of a cat and prompt "a cat"):
["in a cyberpunk city", "impressionist oil painting", "wearing a wizard hat", "cinematic lighting", "glowing magical aura"]

Example (Vietnamese, with image of a cat and prompt "một con mèo"):
["trong thành phố cyberpunk", "tranh sơn dầu ấn tượng", "đội mũ phù thủy", "ánh sáng điện ảnh", "hào quang ma thuật phát sáng"]`
}

const issueList = `["POOR_COMPOSITION", "UNBALANCED_LIGHTING", "DULL_COLORS", "BLURRY_OR_SOFT", "IMAGE_NOISE", "CHROMATIC_ABERRATION", "HARSH_SHADOWS", "WASHED_OUT_HIGHLIGHTS", "LOW_CONTRAST", "OVERSATURATED_COLORS", "UNEVEN_SKIN_TONE", "SKIN_BLEMISHES", "OILY_SKIN_SHINE", "DULL_EYES", "YELLOW_TEETH"]`

const defectsPrompt = `You are an expert photo analysis AI. Analyze the user's image and identify common photographic problems. Your response MUST be a valid JSON array containing strings from the following list ONLY: ` + issueList + `. If the image is good quality and has no major issues, return an empty array. Do not add any explanation or other text.`

const retouchPrompt = `You are a world-class photo editor AI. Your task is to analyze the user's image, identify specific problems, and then generate a detailed, imperative prompt in English for another AI to perform a high-quality retouch.

**Analysis Phase:**
Identify any issues from the following list: ` + issueList + `.

**Prompt Generation Phase:**
Based on the detected issues, construct a concise, professional editing prompt.
-   Start with a main goal: "Task: Perform a professional, high-quality retouch of this photograph."
-   For each detected issue, add a clear, actionable instruction.
    -   Example for DULL_COLORS: "Enhance color vibrancy and correct the white balance for a natural look."
    -   Example for SKIN_BLEMISHES: "Gently remove skin blemishes and pimples while perfectly preserving natural skin texture."
-   If no major issues are found, create a general enhancement prompt: "Task: Perform a general professional enhancement. Subtly improve lighting, color balance, and sharpness to make the image pop while maintaining a natural look."

**Output Format:**
Your response MUST be a single, valid JSON object with two keys:
1.  "detectedIssues": An array of strings containing the identified issues from the list. Return an empty array if none are found.
2.  "retouchPrompt": The final, generated English prompt string.

Do not include any other text, explanations, or markdown formatting.`

const hairstylePrompt = `You are an expert hair stylist AI. Your task is to analyze the provided image and create a concise, descriptive, and actionable prompt for an image generation AI to replicate the hairstyle.

**Analysis Process:**
1.  **Identify Key Features:** Look at the hairstyle's cut, length, color (including highlights, balayage, or ombre), texture (e.g., straight, wavy, curly, coily), and overall style (e.g., bob, pixie, messy bun, braids).
2.  **Be Specific:** Instead of "brown hair," use "chocolate brown with subtle caramel highlights." Instead of "wavy," use "soft, beachy waves."
3.  **Structure:** Combine the features into a clear, single-paragraph description.

**Output Format:**
-   Return ONLY the descriptive text.
-   Do not include any introductory phrases like "The hairstyle is..." or "Here is a description:".
-   The output must be in English.

Example Output:
"A shoulder-length wavy lob (long bob) haircut, platinum blonde with dark roots, styled with messy, textured waves."
"A high fade haircut with a textured, spiky top, jet black color."
"Long, flowing, tight spiral curls, dyed a vibrant fiery red."`

const deconstructPromptEN = `You are a world-class prompt engineering AI. Your task is to analyze the provided image and deconstruct it into a detailed, structured JSON object that can be used as a high-performance prompt for advanced text-to-image models like Midjourney or Stable Diffusion.

**Analysis Process:**
1.  **Deconstruct the Image:** Meticulously examine every aspect of the image: the subject, the environment, the lighting, the composition, the colors, and the overall artistic style.
2.  **Identify Core Elements:** Extract the most important keywords and concepts.
3.  **Structure the Output:** Organize these elements into a clear, logical JSON format as defined in the schema. Use rich, evocative, and precise language.

**Output Format:**
Your response MUST be a single, valid JSON object. Do not include any other text, explanations, or markdown formatting. The JSON should be well-formatted for readability.`

const deconstructPromptVI = `Bạn là một AI kỹ sư prompt đẳng cấp thế giới. Nhiệm vụ của bạn là phân tích hình ảnh được cung cấp và phân tách nó thành một đối tượng JSON chi tiết, có cấu trúc, có thể được sử dụng làm prompt hiệu suất cao cho các mô hình chuyển văn bản thành hình ảnh tiên tiến như Midjourney hoặc Stable Diffusion.

**Quy trình phân tích:**
1.  **Phân tách hình ảnh:** Kiểm tra tỉ mỉ mọi khía cạnh của hình ảnh: chủ thể, môi trường, ánh sáng, bố cục, màu sắc và phong cách nghệ thuật tổng thể.
2.  **Xác định các yếu tố cốt lõi:** Trích xuất các từ khóa và khái niệm quan trọng nhất.
3.  **Cấu trúc đầu ra:** Sắp xếp các yếu tố này thành một định dạng JSON rõ ràng, hợp lý như được định nghĩa trong schema. Sử dụng ngôn ngữ phong phú, gợi cảm và chính xác. **Tất cả các giá trị trong JSON PHẢI được viết bằng tiếng Việt.**

**Định dạng đầu ra:**
Phản hồi của bạn PHẢI là một đối tượng JSON hợp lệ duy nhất. Không bao gồm bất kỳ văn bản, giải thích hoặc định dạng markdown nào khác. JSON phải được định dạng tốt để dễ đọc.`

// deconstructFields lists the structured prompt keys in output order.
var deconstructFields = []string{
	"prompt",
	"style_and_medium",
	"composition_and_camera",
	"lighting",
	"color_palette",
	"quality_and_details",
	"parameters",
}

var deconstructDescriptions = map[i18n.Locale]map[string]string{
	i18n.English: {
		"prompt":                 "A comprehensive, comma-separated list of keywords and descriptive phrases capturing the essence of the image. This should include the main subject, actions, environment, and overall scene.",
		"style_and_medium":       "Describe the artistic style, medium, and any specific artist influences. Examples: 'photorealistic, cinematic,' or 'impressionistic oil painting, style of Monet'.",
		"composition_and_camera": "Describe the camera work. Examples: 'wide-angle shot, low angle, shallow depth of field, 85mm lens'.",
		"lighting":               "Describe the lighting in detail. Examples: 'dramatic cinematic lighting, golden hour, volumetric god rays'.",
		"color_palette":          "Describe the dominant color scheme. Examples: 'vibrant complementary colors, warm tones, monochromatic blue'.",
		"quality_and_details":    "Keywords to enhance the quality and detail. Examples: 'masterpiece, 8k, highly detailed, sharp focus'.",
		"parameters":             "Suggested technical parameters for models like Midjourney or Stable Diffusion, such as aspect ratio. Example: '--ar 16:9 --v 6.0'.",
	},
	i18n.Vietnamese: {
		"prompt":                 "Một danh sách toàn diện, được phân tách bằng dấu phẩy, gồm các từ khóa và cụm từ mô tả nắm bắt được bản chất của hình ảnh. Danh sách này nên bao gồm chủ thể chính, hành động, môi trường và cảnh tổng thể.",
		"style_and_medium":       "Mô tả phong cách nghệ thuật, phương tiện và bất kỳ ảnh hưởng nào từ nghệ sĩ cụ thể. Ví dụ: 'chân thực, điện ảnh,' hoặc 'tranh sơn dầu ấn tượng, phong cách của Monet'.",
		"composition_and_camera": "Mô tả kỹ thuật quay phim. Ví dụ: 'góc rộng, góc thấp, độ sâu trường ảnh nông, ống kính 85mm'.",
		"lighting":               "Mô tả chi tiết về ánh sáng. Ví dụ: 'ánh sáng điện ảnh kịch tính, giờ vàng, tia sáng thần thánh'.",
		"color_palette":          "Mô tả bảng màu chủ đạo. Ví dụ: 'màu sắc bổ sung rực rỡ, tông màu ấm, đơn sắc xanh dương'.",
		"quality_and_details":    "Các từ khóa để nâng cao chất lượng và chi tiết. Ví dụ: 'tuyệt tác, 8k, chi tiết cao, lấy nét sắc nét'.",
		"parameters":             "Các tham số kỹ thuật được đề xuất cho các mô hình như Midjourney hoặc Stable Diffusion, chẳng hạn như tỷ lệ khung hình. Ví dụ: '--ar 16:9 --v 6.0'.",
	},
}

func deconstructPrompt(locale i18n.Locale) string {
	if locale == i18n.Vietnamese {
		return deconstructPromptVI
	}
	return deconstructPromptEN
}

func deconstructSchema(locale i18n.Locale) *genai.Schema {
	desc, ok := deconstructDescriptions[locale]
	if !ok {
		desc = deconstructDescriptions[i18n.English]
	}
	props := make(map[string]*genai.Schema, len(deconstructFields))
	for _, f := range deconstructFields {
		props[f] = &genai.Schema{Type: genai.TypeString, Description: desc[f]}
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         deconstructFields,
		PropertyOrdering: deconstructFields,
	}
}

const weatherInstruction = `You are a weather API. Your task is to take latitude and longitude coordinates and return the current weather conditions in a precise JSON format.

**Output Format:**
Your response MUST be a single, valid JSON object with the following keys:
1.  "temperature": An integer representing the current temperature in Celsius.
2.  "city": A string with the name of the city for the given coordinates.
3.  "condition": A string describing the weather (e.g., "Clear", "Clouds", "Rain").
4.  "icon": A string from this exact list: ["SUN", "CLOUD", "RAIN", "SNOW", "STORM", "FOG", "PARTLY_CLOUDY"]. Choose the one that best represents the current condition.

Do not include any other text, explanations, or markdown formatting. Just the JSON object.`

func weatherPrompt(lat, lon float64) string {
	return fmt.Sprintf("Coordinates: latitude=%v, longitude=%v", lat, lon)
}

var (
	stringArraySchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	retouchSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"detectedIssues": stringArraySchema,
			"retouchPrompt":  {Type: genai.TypeString},
		},
		Required: []string{"detectedIssues", "retouchPrompt"},
	}

	weatherSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"temperature": {Type: genai.TypeNumber},
			"city":        {Type: genai.TypeString},
			"condition":   {Type: genai.TypeString},
			"icon":        {Type: genai.TypeString},
		},
		Required: []string{"temperature", "city", "condition", "icon"},
	}
)
