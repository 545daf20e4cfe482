package preset

import (
	"fmt"
	"strings"

	"visual-prompt-studio/internal/media"
)

type ID string

const (
	AIPromptEngineer ID = "aiPromptEngineer"
	Passport         ID = "passport"
	Restore          ID = "restore"
	Edit             ID = "edit"
	VirtualTryOn     ID = "virtualTryOn"
	Background       ID = "background"
	Style            ID = "style"
	Repose           ID = "repose"
	Mockup           ID = "mockup"
	Retouch          ID = "retouch"
	Relight          ID = "relight"
	Hairstyle        ID = "hairstyle"
	ColorMatch       ID = "color_match"
)

// Default is selected on startup.
const Default = AIPromptEngineer

// All lists presets in menu order.
var All = []ID{
	AIPromptEngineer,
	Passport,
	Restore,
	Edit,
	VirtualTryOn,
	Background,
	Style,
	Repose,
	Mockup,
	Retouch,
	Relight,
	Hairstyle,
	ColorMatch,
}

var titles = map[ID]string{
	AIPromptEngineer: "AI Prompt Engineer",
	Passport:         "Passport Photo",
	Restore:          "Restore Old Photo",
	Edit:             "Smart Edit",
	VirtualTryOn:     "Virtual Try-On",
	Background:       "Replace Background",
	Style:            "Change Style",
	Repose:           "Change Pose",
	Mockup:           "Product Mockup",
	Retouch:          "AI Retouch",
	Relight:          "Relight",
	Hairstyle:        "Change Hairstyle",
	ColorMatch:       "Color Match",
}

func (id ID) Title() string {
	if t, ok := titles[id]; ok {
		return t
	}
	return string(id)
}

func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	for _, id := range All {
		if strings.EqualFold(s, string(id)) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", s)
}

// Options is implemented by exactly one struct per preset. Each struct
// carries only the fields its preset reads.
type Options interface {
	Preset() ID
}

type AIPromptEngineerOptions struct{}

type PassportBackground string

const (
	PassportBgWhite     PassportBackground = "white"
	PassportBgLightBlue PassportBackground = "lightBlue"
	PassportBgCustom    PassportBackground = "custom"
)

type OutfitType string

const (
	OutfitPreset OutfitType = "preset"
	OutfitCustom OutfitType = "custom"
)

type PassportHairstyle string

const (
	PassportHairAuto      PassportHairstyle = "auto"
	PassportHairLetDown   PassportHairstyle = "letDown"
	PassportHairSweptBack PassportHairstyle = "sweptBack"
)

type PassportOptions struct {
	Background       PassportBackground
	BackgroundCustom string
	OutfitType       OutfitType
	Outfit           string // one of PassportOutfits values
	OutfitCustom     string
	Hairstyle        PassportHairstyle
}

type PhotoType string

const (
	PhotoBW    PhotoType = "bw"
	PhotoColor PhotoType = "color"
)

type RestoreStrategy string

const (
	StrategyStandard     RestoreStrategy = "standard"
	StrategyDetailed     RestoreStrategy = "detailed"
	StrategyProfessional RestoreStrategy = "professional"
)

type RestoreBackground string

const (
	RestoreBgKeep  RestoreBackground = "keep"
	RestoreBgWhite RestoreBackground = "white"
	RestoreBgGrey  RestoreBackground = "grey"
	RestoreBgBlue  RestoreBackground = "blue"
)

type RestoreOptions struct {
	PhotoType  PhotoType
	Strategy   RestoreStrategy
	Background RestoreBackground
}

type EditOptions struct {
	Fixes FixSet
}

type TryOnMode string

const (
	TryOnReference TryOnMode = "reference"
	TryOnExtract   TryOnMode = "extract"
)

type VirtualTryOnOptions struct {
	Mode TryOnMode
}

type BackgroundOptions struct{}

type StyleOptions struct {
	Style string
}

type ReposeOptions struct {
	Pose string
}

type MockupOptions struct{}

type RetouchOptions struct{}

type RelightOptions struct {
	LightStyle     string
	LightDirection string
}

type Gender string

const (
	Female Gender = "female"
	Male   Gender = "male"
)

type HairstyleOptions struct {
	Gender    Gender
	Hairstyle string
}

type ColorMatchOptions struct{}

func (AIPromptEngineerOptions) Preset() ID { return AIPromptEngineer }
func (PassportOptions) Preset() ID         { return Passport }
func (RestoreOptions) Preset() ID          { return Restore }
func (EditOptions) Preset() ID             { return Edit }
func (VirtualTryOnOptions) Preset() ID     { return VirtualTryOn }
func (BackgroundOptions) Preset() ID       { return Background }
func (StyleOptions) Preset() ID            { return Style }
func (ReposeOptions) Preset() ID           { return Repose }
func (MockupOptions) Preset() ID           { return Mockup }
func (RetouchOptions) Preset() ID          { return Retouch }
func (RelightOptions) Preset() ID          { return Relight }
func (HairstyleOptions) Preset() ID        { return Hairstyle }
func (ColorMatchOptions) Preset() ID       { return ColorMatch }

// Defaults returns the options a preset starts with when it is selected.
func Defaults(id ID) Options {
	switch id {
	case Passport:
		return PassportOptions{
			Background: PassportBgLightBlue,
			OutfitType: OutfitPreset,
			Outfit:     "whiteShirt-blackVest",
			Hairstyle:  PassportHairAuto,
		}
	case VirtualTryOn:
		return VirtualTryOnOptions{Mode: TryOnReference}
	case Restore:
		return RestoreOptions{PhotoType: PhotoBW, Strategy: StrategyProfessional, Background: RestoreBgKeep}
	case Hairstyle:
		return HairstyleOptions{Gender: Female}
	case Edit:
		return EditOptions{}
	case Background:
		return BackgroundOptions{}
	case Style:
		return StyleOptions{}
	case Repose:
		return ReposeOptions{}
	case Mockup:
		return MockupOptions{}
	case Retouch:
		return RetouchOptions{}
	case Relight:
		return RelightOptions{}
	case ColorMatch:
		return ColorMatchOptions{}
	default:
		return AIPromptEngineerOptions{}
	}
}

// SlotSpec describes one image input of a preset. Single slots hold at
// most one image.
type SlotSpec struct {
	Label  string
	Single bool
}

var slotLabels = map[ID][]string{
	AIPromptEngineer: {"style source", "face"},
	VirtualTryOn:     {"person", "outfit reference"},
	Background:       {"subject", "new background"},
	Hairstyle:        {"person", "hairstyle reference"},
	ColorMatch:       {"source", "color reference"},
}

// Slots describes the inputs of a preset with its default options.
func Slots(id ID) []SlotSpec {
	return SlotsFor(Defaults(id))
}

// SlotsFor describes the inputs for o. The virtual try-on outfit slot takes
// several references in reference mode and one garment in extract mode;
// every other slot is single.
func SlotsFor(o Options) []SlotSpec {
	id := Default
	if o != nil {
		id = o.Preset()
	}
	labels, ok := slotLabels[id]
	if !ok {
		labels = []string{"image"}
	}
	out := make([]SlotSpec, 0, len(labels))
	for _, l := range labels {
		out = append(out, SlotSpec{Label: l, Single: true})
	}
	if t, ok := o.(VirtualTryOnOptions); ok && t.Mode != TryOnExtract {
		out[1].Single = false
	}
	return out
}

// Derived holds values produced by analysis calls for the current preset.
// Selecting a preset clears all of them.
type Derived struct {
	Issues               []media.IssueTag
	RetouchPrompt        string
	HairstyleDescription string
	JSONPrompt           string
}

type Input struct {
	Options  Options
	Derived  Derived
	FreeText string
	Slots    [2][]media.ReferenceImage
}

// ID reports the preset the input was built for.
func (in Input) ID() ID {
	if in.Options == nil {
		return Default
	}
	return in.Options.Preset()
}

func (in Input) first(slot int) (media.ReferenceImage, bool) {
	if len(in.Slots[slot]) == 0 {
		return media.ReferenceImage{}, false
	}
	return in.Slots[slot][0], true
}

// Ready reports whether the preset has every input generation needs.
func Ready(in Input) bool {
	_, img1 := in.first(0)
	_, img2 := in.first(1)

	switch o := in.Options.(type) {
	case RetouchOptions:
		return img1 && in.Derived.RetouchPrompt != ""
	case RestoreOptions, RelightOptions, EditOptions, PassportOptions, ReposeOptions:
		return img1
	case MockupOptions:
		return img1 && strings.TrimSpace(in.FreeText) != ""
	case StyleOptions:
		return img1 && o.Style != ""
	case HairstyleOptions:
		return img1 && (o.Hairstyle != "" || in.Derived.HairstyleDescription != "")
	case BackgroundOptions, ColorMatchOptions, VirtualTryOnOptions:
		return img1 && img2
	case AIPromptEngineerOptions:
		return in.Derived.JSONPrompt != "" && img2
	default:
		return false
	}
}
