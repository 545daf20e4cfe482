package preset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/media"
)

func img(name string, w, h int) media.ReferenceImage {
	return media.ReferenceImage{Base64: "AAAA", MimeType: "image/png", Name: name, Width: w, Height: h}
}

func input(o Options, slot1, slot2 []media.ReferenceImage) Input {
	return Input{Options: o, Slots: [2][]media.ReferenceImage{slot1, slot2}}
}

func TestAspectClause(t *testing.T) {
	got := AspectClause(img("a.png", 1200, 800))
	assert.Equal(t, "**ABSOLUTE RULE: The final output image's aspect ratio MUST EXACTLY MATCH the source image's aspect ratio (1200:800).** This is a non-negotiable instruction. Preserve the original framing. The task is as follows:\n\n", got)
}

func TestReady(t *testing.T) {
	one := []media.ReferenceImage{img("a", 1, 1)}
	two := []media.ReferenceImage{img("b", 1, 1)}

	cases := []struct {
		name string
		in   Input
		want bool
	}{
		{"restore with image", input(Defaults(Restore), one, nil), true},
		{"restore empty", input(Defaults(Restore), nil, nil), false},
		{"edit with image", input(Defaults(Edit), one, nil), true},
		{"passport with image", input(Defaults(Passport), one, nil), true},
		{"relight with image", input(Defaults(Relight), one, nil), true},
		{"repose with image", input(ReposeOptions{}, one, nil), true},
		{"style without style", input(StyleOptions{}, one, nil), false},
		{"style with style", input(StyleOptions{Style: "Anime"}, one, nil), true},
		{"mockup blank text", Input{Options: MockupOptions{}, FreeText: "   ", Slots: [2][]media.ReferenceImage{one}}, false},
		{"mockup with text", Input{Options: MockupOptions{}, FreeText: "a mug", Slots: [2][]media.ReferenceImage{one}}, true},
		{"retouch without plan", input(RetouchOptions{}, one, nil), false},
		{"retouch with plan", Input{Options: RetouchOptions{}, Derived: Derived{RetouchPrompt: "fix"}, Slots: [2][]media.ReferenceImage{one}}, true},
		{"hairstyle nothing chosen", input(Defaults(Hairstyle), one, nil), false},
		{"hairstyle dropdown", input(HairstyleOptions{Hairstyle: "Bob"}, one, nil), true},
		{"hairstyle analyzed", Input{Options: HairstyleOptions{}, Derived: Derived{HairstyleDescription: "bob"}, Slots: [2][]media.ReferenceImage{one}}, true},
		{"background one slot", input(BackgroundOptions{}, one, nil), false},
		{"background both", input(BackgroundOptions{}, one, two), true},
		{"color match both", input(ColorMatchOptions{}, one, two), true},
		{"try-on second only", input(Defaults(VirtualTryOn), nil, two), false},
		{"engineer without json", input(AIPromptEngineerOptions{}, one, two), false},
		{"engineer json and face", Input{Options: AIPromptEngineerOptions{}, Derived: Derived{JSONPrompt: "{}"}, Slots: [2][]media.ReferenceImage{nil, two}}, true},
		{"nil options", Input{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Ready(tc.in))
		})
	}
}

func TestCompileValidation(t *testing.T) {
	one := []media.ReferenceImage{img("a", 10, 20)}

	t.Run("repose without pose", func(t *testing.T) {
		_, err := Compile(input(ReposeOptions{}, one, nil))
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.ValidationFailed))
		assert.True(t, errors.Is(err, ErrSelectPose))
	})

	t.Run("mockup without scene", func(t *testing.T) {
		_, err := Compile(input(MockupOptions{}, one, nil))
		assert.True(t, errors.Is(err, ErrDescribeMockup))
	})

	t.Run("unready preset", func(t *testing.T) {
		_, err := Compile(input(BackgroundOptions{}, one, nil))
		assert.True(t, apperr.Is(err, apperr.ValidationFailed))
		assert.True(t, errors.Is(err, ErrNotReady))
	})

	t.Run("malformed structured prompt", func(t *testing.T) {
		in := input(AIPromptEngineerOptions{}, nil, one)
		in.Derived.JSONPrompt = "{not json"
		_, err := Compile(in)
		assert.True(t, apperr.Is(err, apperr.MalformedResponse))
	})
}

func TestCompileImages(t *testing.T) {
	a := img("subject", 1000, 1500)
	b := img("backdrop", 1920, 1080)

	t.Run("background uses both slots and locks to the backdrop", func(t *testing.T) {
		res, err := Compile(input(BackgroundOptions{}, []media.ReferenceImage{a}, []media.ReferenceImage{b}))
		require.NoError(t, err)
		assert.Equal(t, []media.ReferenceImage{a, b}, res.Images)
		assert.True(t, strings.HasPrefix(res.Prompt, AspectClause(b)))
		assert.Contains(t, res.Prompt, "high-fidelity background replacement")
	})

	t.Run("color match locks to the source", func(t *testing.T) {
		res, err := Compile(input(ColorMatchOptions{}, []media.ReferenceImage{a}, []media.ReferenceImage{b}))
		require.NoError(t, err)
		assert.Len(t, res.Images, 2)
		assert.True(t, strings.HasPrefix(res.Prompt, AspectClause(a)))
	})

	t.Run("hairstyle ignores the reference photo", func(t *testing.T) {
		in := input(HairstyleOptions{}, []media.ReferenceImage{a}, []media.ReferenceImage{b})
		in.Derived.HairstyleDescription = "short textured crop"
		res, err := Compile(in)
		require.NoError(t, err)
		assert.Equal(t, []media.ReferenceImage{a}, res.Images)
	})

	t.Run("engineer sends only the face", func(t *testing.T) {
		in := input(AIPromptEngineerOptions{}, []media.ReferenceImage{a}, []media.ReferenceImage{b})
		in.Derived.JSONPrompt = `{"subject":"a cat","style_and_medium":"oil painting","lighting":"","color_palette":"warm ochre","technical_parameters":"--ar 3:2"}`
		res, err := Compile(in)
		require.NoError(t, err)
		assert.Equal(t, []media.ReferenceImage{b}, res.Images)
		assert.Contains(t, res.Prompt, "**Artistic Style Description:**\noil painting, warm ochre\n")
		assert.NotContains(t, res.Prompt, "a cat")
		assert.True(t, strings.HasPrefix(res.Prompt, AspectClause(b)))
	})

	t.Run("result does not alias the input slots", func(t *testing.T) {
		slot := []media.ReferenceImage{a}
		res, err := Compile(input(Defaults(Restore), slot, nil))
		require.NoError(t, err)
		res.Images[0].Name = "changed"
		assert.Equal(t, "subject", slot[0].Name)
	})
}

func TestCompileTemplates(t *testing.T) {
	one := []media.ReferenceImage{img("a", 4, 3)}
	clause := AspectClause(one[0])

	compile := func(t *testing.T, in Input) string {
		t.Helper()
		res, err := Compile(in)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(res.Prompt, clause))
		return strings.TrimPrefix(res.Prompt, clause)
	}

	t.Run("style default name", func(t *testing.T) {
		in := Input{Options: StyleOptions{Style: "Anime"}, FreeText: "soft colors", Slots: [2][]media.ReferenceImage{one}}
		assert.Equal(t, "Task: Transform the image into the Anime style, preserving the main subject and composition. soft colors", compile(t, in))
	})

	t.Run("restore keep background", func(t *testing.T) {
		in := input(RestoreOptions{PhotoType: PhotoColor, Strategy: StrategyStandard, Background: RestoreBgKeep}, one, nil)
		got := compile(t, in)
		assert.Equal(t, restoreBase[PhotoColor][StrategyStandard], got)
	})

	t.Run("restore with background and text", func(t *testing.T) {
		in := Input{
			Options:  RestoreOptions{PhotoType: PhotoBW, Strategy: StrategyDetailed, Background: RestoreBgGrey},
			FreeText: "keep the hat",
			Slots:    [2][]media.ReferenceImage{one},
		}
		got := compile(t, in)
		assert.Equal(t, restoreBase[PhotoBW][StrategyDetailed]+" "+restoreBackgrounds[RestoreBgGrey]+" keep the hat", got)
	})

	t.Run("relight automatic", func(t *testing.T) {
		got := compile(t, input(RelightOptions{}, one, nil))
		assert.True(t, strings.HasPrefix(got, "**TASK: Professional Automatic Image Re-Lighting.**"))
	})

	t.Run("relight explicit falls back to front", func(t *testing.T) {
		got := compile(t, input(RelightOptions{LightStyle: "Golden Hour"}, one, nil))
		assert.Contains(t, got, "*   **Style:** Golden Hour\n*   **Direction:** From the front")
		assert.Contains(t, got, "cast the new 'Golden Hour' light")
	})

	t.Run("hairstyle analyzed wins over dropdown", func(t *testing.T) {
		in := Input{
			Options: HairstyleOptions{Hairstyle: "Mullet"},
			Derived: Derived{HairstyleDescription: "long beach waves"},
			Slots:   [2][]media.ReferenceImage{one},
		}
		got := compile(t, in)
		assert.Contains(t, got, `exactly as described: **"long beach waves"**. . **ABSOLUTE RULE:**`)
		assert.NotContains(t, got, "Mullet")
	})

	t.Run("hairstyle dropdown with details", func(t *testing.T) {
		in := Input{Options: HairstyleOptions{Hairstyle: "Mullet"}, FreeText: "blonde", Slots: [2][]media.ReferenceImage{one}}
		got := compile(t, in)
		assert.Contains(t, got, "The new style should be: **Mullet**. Additional details: blonde. **ABSOLUTE RULE:**")
	})

	t.Run("passport defaults", func(t *testing.T) {
		got := compile(t, input(Defaults(Passport), one, nil))
		assert.Contains(t, got, "Change the background to a solid light blue color.")
		assert.Contains(t, got, "Change the outfit to a white collared shirt and a black vest.")
		assert.Contains(t, got, "The hair should be styled neatly and professionally, away from the face.")
		assert.Contains(t, got, "**Additional Instructions:** None.\n")
	})

	t.Run("passport custom outfit and background", func(t *testing.T) {
		o := PassportOptions{
			Background:       PassportBgCustom,
			BackgroundCustom: "pale grey",
			OutfitType:       OutfitCustom,
			Outfit:           "darkSuit-tie",
			OutfitCustom:     "a navy turtleneck",
			Hairstyle:        PassportHairSweptBack,
		}
		got := compile(t, input(o, one, nil))
		assert.Contains(t, got, "to a pale grey color.")
		assert.Contains(t, got, "Change the outfit to a navy turtleneck.")
		assert.Contains(t, got, "swept back and away from the face")
	})

	t.Run("try-on modes", func(t *testing.T) {
		two := []media.ReferenceImage{img("b", 1, 1)}
		ref := compile(t, Input{Options: VirtualTryOnOptions{Mode: TryOnReference}, FreeText: "tuck the shirt", Slots: [2][]media.ReferenceImage{one, two}})
		assert.True(t, strings.HasPrefix(ref, "Task: Change the clothing of the person in the first image."))
		assert.True(t, strings.HasSuffix(ref, "Specific instructions: tuck the shirt."))

		ext := compile(t, input(VirtualTryOnOptions{Mode: TryOnExtract}, one, two))
		assert.True(t, strings.HasPrefix(ext, "Task: This is a virtual try-on task."))
		assert.True(t, strings.HasSuffix(ext, "from the first. "))
	})

	t.Run("edit without fixes", func(t *testing.T) {
		got := compile(t, input(EditOptions{}, one, nil))
		assert.True(t, strings.HasPrefix(got, "Task: Perform a professional, automatic enhancement"))
	})

	t.Run("edit joins fixes in catalog order", func(t *testing.T) {
		fixes := FixSet(0).With(FixBackdrop).With(FixLighting)
		got := compile(t, input(EditOptions{Fixes: fixes}, one, nil))
		want := "Task: Perform a professional, high-quality edit on the provided image. Focus on these corrections: " +
			fixTexts[FixLighting] + " " + fixTexts[FixBackdrop] +
			". The final result must look natural and high-quality. "
		assert.Equal(t, want, got)
	})

	t.Run("repose", func(t *testing.T) {
		got := compile(t, input(ReposeOptions{Pose: "elegant dancing pose"}, one, nil))
		assert.True(t, strings.HasPrefix(got, `Task: Change the pose of the person in the image to be **"elegant dancing pose"**.`))
	})

	t.Run("mockup", func(t *testing.T) {
		got := compile(t, Input{Options: MockupOptions{}, FreeText: "a billboard in Tokyo", Slots: [2][]media.ReferenceImage{one}})
		assert.True(t, strings.HasPrefix(got, `Task: Place the provided image onto the following scene: **"a billboard in Tokyo"**.`))
	})

	t.Run("retouch uses the synthesized plan", func(t *testing.T) {
		in := Input{Options: RetouchOptions{}, Derived: Derived{RetouchPrompt: "Remove the blemish."}, Slots: [2][]media.ReferenceImage{one}}
		assert.Equal(t, "Remove the blemish.", compile(t, in))
	})
}

func TestCompilePro(t *testing.T) {
	t.Run("enhanced wins", func(t *testing.T) {
		res, err := CompilePro("raw", "  enhanced  ", nil)
		require.NoError(t, err)
		assert.Equal(t, "enhanced", res.Prompt)
		assert.Empty(t, res.Images)
	})

	t.Run("images add the aspect lock", func(t *testing.T) {
		a := img("a", 640, 480)
		res, err := CompilePro("a fox", "", []media.ReferenceImage{a})
		require.NoError(t, err)
		assert.Equal(t, AspectClause(a)+"a fox", res.Prompt)
	})

	t.Run("images only", func(t *testing.T) {
		a := img("a", 640, 480)
		res, err := CompilePro(" ", "", []media.ReferenceImage{a})
		require.NoError(t, err)
		assert.Equal(t, AspectClause(a), res.Prompt)
	})

	t.Run("nothing to send", func(t *testing.T) {
		_, err := CompilePro(" ", "", nil)
		assert.True(t, errors.Is(err, ErrPromptOrImage))
	})
}

func TestCompileRefine(t *testing.T) {
	gen := &media.GeneratedImage{Base64: "iVBOR", Width: 1024, Height: 768}

	res, err := CompileRefine("make the sky pink", gen)
	require.NoError(t, err)
	require.Len(t, res.Images, 1)
	assert.Equal(t, RefineSourceName, res.Images[0].Name)
	assert.Equal(t, "image/png", res.Images[0].MimeType)
	assert.Equal(t, AspectClause(res.Images[0])+"make the sky pink", res.Prompt)
	assert.Contains(t, res.Prompt, "(1024:768)")

	_, err = CompileRefine("  ", gen)
	assert.True(t, errors.Is(err, ErrPromptRequired))

	_, err = CompileRefine("x", nil)
	assert.True(t, errors.Is(err, ErrNothingToRefine))
}
