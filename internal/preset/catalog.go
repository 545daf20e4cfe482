package preset

import "strings"

// Option catalogs offered by the preset menus.
var (
	LightingStyles = []string{
		"Natural Sunlight", "Golden Hour", "Blue Hour", "Overcast", "Harsh midday sun", "Dawn", "Dusk",
		"Moonlight", "Starlight", "Misty morning light", "Afternoon sun", "Twilight", "Studio Lighting",
		"Key light", "Fill light", "Three-point lighting", "Rembrandt lighting", "Butterfly lighting",
		"Loop lighting", "Split-lighting", "Soft Light", "Hard Light", "Spotlight", "Stage Lights",
		"Ring light", "Softbox light", "Barn door lighting", "Gobo patterns", "Negative fill",
		"Cinematic Lighting", "Film Noir", "Dramatic Shadows", "Low-Key", "High-Key", "Volumetric",
		"God Rays", "Crepuscular Rays", "Backlight", "Rim Light", "Silhouette", "Stormy lighting",
		"Chiaroscuro", "Tenebrism", "Sidelight", "Anamorphic lens flare", "Spherical lens flare",
		"Long exposure light trails", "Specular highlights", "Diffuse reflection", "Caustics from water",
		"Refraction", "Kelvin 3200K (Warm)", "Kelvin 5500K (Daylight)", "Kelvin 7500K (Cool)",
		"High dynamic range (HDR)", "Blown-out highlights", "Crushed blacks", "Lightning flash",
		"Dense fog", "Morning mist over a lake", "Hazy summer afternoon", "Sunbeams through clouds",
		"Light pillar phenomenon", "Light pollution from a city", "Polluted city smog", "Sandstorm",
		"Blizzard", "Tropical downpour", "Volcanic ash cloud", "Rainbow", "Double rainbow",
	}
	LightDirections = []string{
		"Front", "Side", "Back", "Top", "Bottom", "Three-quarters", "Left", "Right", "Above", "Below",
	}
	ArtStyles = []string{
		"Photorealistic", "Illustration", "Anime", "Manga", "3D Render", "Concept Art", "Pixel Art",
		"Abstract", "Futuristic", "Cyberpunk", "Steampunk", "Vintage", "Retro", "80s", "90s",
		"Minimalist", "Art Deco", "Art Nouveau", "Surrealism", "Impressionism", "Expressionism",
		"Ukiyo-e", "Watercolor", "Oil Painting", "Charcoal Sketch", "Line Art", "Doodle",
	}
	FemaleHairstyles = []string{
		"Pixie Cut", "Short Bob", "Lob (Long Bob)", "Shag Haircut", "Long Wavy Hair",
		"Straight Long Hair", "Curly Afro", "Braided Crown", "High Ponytail", "Messy Bun",
		"Side-swept Bangs", "Curtain Bangs", "Wolf Cut", "Jellyfish Cut", "Hime Cut", "Space Buns",
		"Dutch Braids", "French Braid", "Fishtail Braid", "Ombre coloring", "Balayage highlights",
	}
	MaleHairstyles = []string{
		"Pixie Cut", "Short Bob", "Lob (Long Bob)", "Shag Haircut", "Long Wavy Hair",
		"Straight Long Hair", "Curly Afro", "Braided Crown", "High Ponytail", "Messy Bun",
		"Side-swept Bangs", "Curtain Bangs", "Wolf Cut", "Jellyfish Cut", "Hime Cut", "Space Buns",
		"Dutch Braids", "French Braid", "Fishtail Braid", "Ombre coloring", "Balayage highlights",
	}
)

type Choice struct {
	Value string
	Label string
}

var Poses = []Choice{
	{Value: "standing confidently, looking at viewer", Label: "Confident Standing"},
	{Value: "sitting in a relaxed pose on a chair", Label: "Relaxed Sitting"},
	{Value: "dynamic action pose, mid-jump", Label: "Dynamic Jump"},
	{Value: "elegant dancing pose", Label: "Elegant Dance"},
	{Value: "thoughtful, contemplative pose, looking away", Label: "Contemplative Pose"},
	{Value: "powerful superhero landing pose", Label: "Superhero Landing"},
	{Value: "serene, meditating pose", Label: "Meditating Pose"},
}

var PassportOutfits = []Choice{
	{Value: "whiteShirt-blackVest", Label: "White Shirt & Black Vest"},
	{Value: "darkSuit-tie", Label: "Dark Suit & Tie"},
	{Value: "blouse-blazer", Label: "Blouse & Blazer"},
}

// Hairstyles returns the dropdown choices for gender.
func Hairstyles(g Gender) []string {
	if g == Male {
		return MaleHairstyles
	}
	return FemaleHairstyles
}

type TagCategory struct {
	Name string
	Tags []string
}

// TagCategories are the prompt-building tags in display order.
var TagCategories = []TagCategory{
	{Name: "style", Tags: []string{
		"Photorealistic", "Illustration", "Anime", "Manga", "3D Render", "Concept Art", "Pixel Art",
		"Abstract", "Futuristic", "Cyberpunk", "Steampunk", "Vintage", "Retro", "80s", "90s",
		"Minimalist", "Art Deco", "Art Nouveau", "Surrealism", "Impressionism", "Expressionism",
		"Ukiyo-e", "Watercolor", "Oil Painting", "Charcoal Sketch", "Line Art", "Doodle", "Sticker Art",
		"Graffiti", "Low poly", "Isometric", "Vaporwave", "Glitch Art", "Psychedelic", "Gothic",
		"Baroque", "Rococo", "Neoclassicism", "Romanticism", "Realism", "Cubism", "Fauvism", "Pop Art",
		"Abstract Expressionism", "Fantasy", "Sci-Fi", "Horror", "Noir", "Western", "Dieselpunk",
		"Biopunk", "Nanopunk", "Mythological", "Tribal", "Cel-shaded", "Collage", "Blueprint", "Bauhaus",
		"Pointillism", "Synthwave", "Brutalism", "Lovecraftian horror", "Solarpunk", "Cartoon",
		"Comic book style", "Dadaism", "Memphis Design", "Sovietwave", "Atompunk", "Infographic",
		"style of Alphonse Mucha", "style of H.R. Giger", "style of Moebius", "style of Greg Rutkowski",
		"style of Zdzisław Beksiński", "style of James Gurney", "style of Hayao Miyazaki",
		"style of Banksy", "style of Syd Mead", "style of John Berkey", "style of Katsuhiro Otomo",
		"style of Rembrandt", "style of Caravaggio",
	}},
	{Name: "quality", Tags: []string{
		"Masterpiece", "Best quality", "4K", "8K", "UHD", "Hyperrealistic", "Highly detailed",
		"Intricate details", "Sharp focus", "Professional shot", "Cinematic", "Photorealistic",
		"High resolution", "Flawless", "Award-winning", "Breathtaking", "Epic", "Gorgeous",
		"Insanely detailed", "Octane Render", "Unreal Engine 5", "V-Ray", "Arnold Render",
		"Physically-Based Rendering (PBR)", "Global Illumination", "Ray Tracing",
		"Subsurface Scattering", "Anisotropic Filtering", "Texture Mapping", "Ultra-detailed",
		"Super-resolution", "Crisp details", "Fine details", "Detailed face", "Detailed eyes",
		"Detailed background", "Perfect composition", "Museum quality", "Exquisite detail",
		"Professional color grading", "Canon EOS R5", "Sony A7R IV", "High Dynamic Range (HDR)",
		"Textured", "Smooth", "Clean", "Pristine", "Perfect anatomy", "Perfect hands", "Accurate",
		"Physically accurate", "ISO 50", "ISO 100", "Low noise", "No compression artifacts",
		"Depth of Field (DoF)", "Trending on ArtStation", "Flickr", "500px", "Behance",
		"Fuji Velvia film", "Kodak Portra 400 film", "Ilford HP5 film", "Cinestill 800T film",
	}},
	{Name: "lighting", Tags: []string{
		"Cinematic lighting", "Dramatic lighting", "Volumetric lighting", "God rays", "Crepuscular rays",
		"Rim lighting", "Backlighting", "Silhouette", "Golden hour", "Blue hour", "Sunrise", "Sunset",
		"Midday sun", "Night", "Overcast", "Soft lighting", "Hard lighting", "Studio lighting",
		"Three-point lighting", "Rembrandt lighting", "Low-key", "High-key", "Neon lights",
		"Cyberpunk lighting", "Bioluminescence", "Glowing", "Iridescent", "Holographic", "Natural light",
		"Sunlight", "Moonlight", "Starlight", "Candlelight", "Firelight", "Lantern light",
		"Ethereal lighting", "Magical lighting", "Atmospheric lighting", "Moody lighting", "Chiaroscuro",
		"Fog", "Misty", "Haze", "Underwater lighting", "Aurora borealis", "Lasers", "Stage lighting",
		"Spotlight", "Streetlights", "Caustics", "Light beams", "Strobe light", "Pulsating light",
		"Subsurface scattering",
	}},
	{Name: "color", Tags: []string{
		"Vibrant colors", "Monochromatic", "Pastel colors", "Black and white", "Complementary colors",
		"Analogous colors", "Triadic colors", "Neon color palette", "Warm color palette",
		"Cool color palette", "Blue tones", "Red tones", "Sepia", "Duotone", "Tritone", "Polychromatic",
		"Iridescent", "Holographic", "Technicolor", "Muted colors", "Earthy tones", "Jewel tones",
		"Saturated", "Desaturated", "High contrast", "Low contrast", "Color graded",
		"Cinematic color palette", "Vintage film colors", "Gradient", "Rainbow", "Spectral",
		"Psychedelic colors", "Ethereal colors", "Dark and moody colors", "Bright and cheerful colors",
		"Electric colors", "Metallic colors", "Gold", "Silver", "Bronze", "Brass", "Rich colors",
		"Deep colors", "Soft colors", "Faded colors", "Splash of color", "Selective color",
		"Harmonious colors", "Infernal color palette", "Celestial color palette", "Teal and orange",
		"Synthwave color palette", "Acid colors",
	}},
	{Name: "composition", Tags: []string{
		"Wide shot", "Close-up shot", "Extreme close-up", "Full body shot", "Portrait", "Landscape",
		"Dutch angle", "Low angle shot", "High angle shot", "Top-down view", "Worm's-eye view", "Bokeh",
		"Shallow depth of field", "Deep depth of field", "Rule of thirds", "Leading lines", "Symmetry",
		"Asymmetry", "Dynamic composition", "Centered composition", "Off-center composition",
		"Fisheye lens", "Macro shot", "Telephoto shot", "Panning shot", "Tilt shot", "Crane shot",
		"Dolly zoom", "Over-the-shoulder shot", "First-person view (POV)", "Golden ratio",
		"Frame within a frame", "Negative space", "Headshot", "Bust shot", "Cowboy shot", "Long shot",
		"Canted frame", "24mm lens", "35mm lens", "50mm lens", "85mm lens", "135mm lens", "200mm lens",
		"Forced perspective", "Panoramic", "Extreme long shot", "Medium shot", "Diagonal composition",
		"Drone shot", "GoPro view", "Found footage", "Unique framing", "Flat lay", "Ken Burns effect",
		"Snorricam shot", "Tilt-shift photography",
	}},
	{Name: "effects", Tags: []string{
		"Lens flare", "Glow", "God rays", "Chromatic aberration", "Motion blur", "Anamorphic",
		"Light trails", "Grainy effect", "Sparks", "Smoke", "Fog", "Haze", "Mist", "Rain", "Snow",
		"Drizzle", "Dust particles", "Film grain", "Vignette", "Light leaks", "Bloom effect",
		"Glitch effect", "Scanlines", "VHS effect", "Pixelated", "Halftone", "Double exposure",
		"Long exposure", "Time-lapse", "Water ripples", "Embers", "Electric arcs", "Magic spell",
		"Energy blast", "Force field", "Distortion", "Heatwave", "Atmospheric scattering", "Dreamy",
		"Ethereal", "Explosion", "Fireworks", "Water splash", "Bubbles", "Confetti", "Shimmering",
		"Floating particles", "Aura", "Energy shield", "Time distortion", "Data stream",
		"Fractal patterns", "Liquify", "Lensbaby effect",
	}},
	{Name: "pose", Tags: []string{
		"Standing", "Sitting", "Lying down", "Running", "Jumping", "Walking", "Looking at viewer",
		"Looking away", "Action pose", "Dynamic pose", "Relaxed pose", "Contemplative", "Serene",
		"Victorious", "Defeated", "Squatting", "Leaning", "Stretching", "Dancing", "Fighting",
		"Meditating", "Praying", "Reaching", "Arms crossed", "Hands on hips", "Profile view",
		"Three-quarters view", "From behind", "In motion", "Mid-air", "Floating", "Swimming", "Kneeling",
		"Bowing", "Waving", "Pointing", "Shouting", "Whispering", "Laughing", "Crying", "Smirking",
		"Frowning", "Defensive stance", "Offensive stance", "Elegant pose", "Powerful stance", "Hiding",
		"Peeking", "Cowering", "Stargazing", "Leaping through the air", "Defiant pose", "Summoning",
		"Casting a spell", "Holding a glowing orb", "Drawing a sword",
	}},
	{Name: "outfit", Tags: []string{
		"Casual wear", "Formal suit", "Evening gown", "Sci-fi armor", "Fantasy armor", "Kimono",
		"Hoodie", "Leather jacket", "Vintage dress", "Steampunk attire", "Cyberpunk clothing",
		"Military uniform", "Spacesuit", "Traditional robes", "Victorian dress", "Gothic lolita",
		"Punk rock outfit", "Business attire", "Wedding dress", "Lab coat", "Magical girl outfit",
		"Knight armor", "Samurai armor", "Viking gear", "Post-apocalyptic rags", "Adventurer's gear",
		"Royal attire", "Peasant clothing", "Worn and tattered", "Clean and pristine",
		"Elaborate headpiece", "Flowing cape", "Hooded cloak", "Heavy boots", "Elegant gloves",
		"Intricate jewelry", "Gas mask", "Goggles", "Crown", "Tiara", "Ribbons", "Lace", "Denim",
		"Trench coat", "Superhero costume", "Festival attire", "Biomechanical suit", "Exosuit",
		"Ornately carved armor", "Glowing runes", "Power armor",
	}},
	{Name: "environment", Tags: []string{
		"Forest", "Jungle", "Desert", "Mountains", "Ocean", "Beach", "Cityscape", "Futuristic city",
		"Ruined city", "Underwater city", "Alien planet", "Volcano", "Cave", "Castle", "Temple",
		"Spaceship interior", "Cyberpunk alley", "Steampunk workshop", "Magical library",
		"Enchanted forest", "Post-apocalyptic wasteland", "Barren plains", "Arctic tundra", "Swamp",
		"Meadow", "Floating islands", "Crystal cave", "Inside a giant machine", "On the moon",
		"In deep space", "Surreal landscape", "Dreamscape", "Hellscape", "Heavenly realm",
		"Glacial landscape", "Skyscraper rooftop", "Cozy cottage", "Bustling marketplace",
		"Abandoned factory", "Throne room", "Ballroom", "Spaceship bridge", "Bioluminescent forest",
		"Corrupted landscape", "Cherry blossom garden", "Bamboo forest", "Cloud city",
		"Interdimensional library", "Dyson sphere", "Ringworld", "Galactic nebula", "Post-human Earth",
		"Solarpunk city",
	}},
	{Name: "materials", Tags: []string{
		"Metal", "Wood", "Stone", "Glass", "Fabric", "Leather", "Plastic", "Rubber", "Silk", "Velvet",
		"Cotton", "Wool", "Fur", "Scales", "Feathers", "Bone", "Crystal", "Gemstone", "Marble",
		"Granite", "Concrete", "Brick", "Chrome", "Gold", "Silver", "Copper", "Brass", "Rusted metal",
		"Polished metal", "Matte surface", "Glossy surface", "Translucent", "Opaque", "Glowing material",
		"Holographic material", "Liquid metal", "Organic texture", "Rough texture", "Smooth texture",
		"Woven texture", "Engraved details", "Filigree", "Damascus steel", "Carbon fiber", "Obsidian",
		"Jade", "Amber", "Porcelain", "Stained glass", "Circuit board patterns", "Lava", "Ice",
		"Liquid crystal", "Iridescent scales", "Woven carbon fiber", "Chipped obsidian",
		"Bioluminescent fungi",
	}},
}

func Tags(category string) ([]string, bool) {
	for _, c := range TagCategories {
		if strings.EqualFold(c.Name, category) {
			return c.Tags, true
		}
	}
	return nil, false
}

// AppendTag adds tag to prompt. A prompt already ending in a comma gets a
// space, anything else gets ", ".
func AppendTag(prompt, tag string) string {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return tag
	}
	sep := ", "
	if strings.HasSuffix(p, ",") {
		sep = " "
	}
	return p + sep + tag
}
