package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-prompt-studio/internal/media"
)

func TestStoreSelectResetsEverything(t *testing.T) {
	s := NewStore()
	assert.Equal(t, Default, s.Get().ID())

	s.Select(Edit)
	_, err := s.SetSlot(0, []media.ReferenceImage{img("a", 1, 1)})
	require.NoError(t, err)
	s.Update(func(sel *Selection) {
		sel.FreeText = "warmer"
		sel.Derived = Derived{
			Issues:               []media.IssueTag{media.DullColors},
			RetouchPrompt:        "r",
			HairstyleDescription: "h",
			JSONPrompt:           "{}",
		}
		sel.Options = EditOptions{Fixes: FixSet(0).With(FixColors)}
	})
	before := s.Get().Epoch

	sel := s.Select(Passport)
	assert.Equal(t, Passport, sel.ID())
	assert.Equal(t, Defaults(Passport), sel.Options)
	assert.Empty(t, sel.Derived.Issues)
	assert.Empty(t, sel.Derived.RetouchPrompt)
	assert.Empty(t, sel.Derived.HairstyleDescription)
	assert.Empty(t, sel.Derived.JSONPrompt)
	assert.Empty(t, sel.FreeText)
	assert.Empty(t, sel.Slots[0])
	assert.Empty(t, sel.Slots[1])
	assert.Greater(t, sel.Epoch, before)
}

func TestStoreDefaults(t *testing.T) {
	assert.Equal(t, PassportOptions{Background: PassportBgLightBlue, OutfitType: OutfitPreset, Outfit: "whiteShirt-blackVest", Hairstyle: PassportHairAuto}, Defaults(Passport))
	assert.Equal(t, VirtualTryOnOptions{Mode: TryOnReference}, Defaults(VirtualTryOn))
	assert.Equal(t, RestoreOptions{PhotoType: PhotoBW, Strategy: StrategyProfessional, Background: RestoreBgKeep}, Defaults(Restore))
	assert.Equal(t, HairstyleOptions{Gender: Female}, Defaults(Hairstyle))
	for _, id := range All {
		assert.Equal(t, id, Defaults(id).Preset())
	}
}

func TestStoreUpdateIf(t *testing.T) {
	s := NewStore()
	s.Select(Retouch)
	epoch := s.Get().Epoch

	s.Select(Retouch)
	_, applied := s.UpdateIf(epoch, func(sel *Selection) { sel.Derived.RetouchPrompt = "stale" })
	assert.False(t, applied)
	assert.Empty(t, s.Get().Derived.RetouchPrompt)

	sel, applied := s.UpdateIf(s.Get().Epoch, func(sel *Selection) { sel.Derived.RetouchPrompt = "fresh" })
	assert.True(t, applied)
	assert.Equal(t, "fresh", sel.Derived.RetouchPrompt)
}

func TestStoreSetOptions(t *testing.T) {
	s := NewStore()
	s.Select(Style)

	_, err := s.SetOptions(ReposeOptions{Pose: "x"})
	assert.Error(t, err)

	sel, err := s.SetOptions(StyleOptions{Style: "Anime"})
	require.NoError(t, err)
	assert.Equal(t, StyleOptions{Style: "Anime"}, sel.Options)
}

func TestStoreSetSlot(t *testing.T) {
	s := NewStore()
	s.Select(Restore)

	_, err := s.SetSlot(1, []media.ReferenceImage{img("a", 1, 1)})
	assert.Error(t, err)

	sel, err := s.SetSlot(0, []media.ReferenceImage{img("a", 1, 1), img("b", 1, 1)})
	require.NoError(t, err)
	require.Len(t, sel.Slots[0], 1)
	assert.Equal(t, "a", sel.Slots[0][0].Name)

	_, err = s.SetSlot(2, nil)
	assert.Error(t, err)
}

func TestStoreTryOnReferences(t *testing.T) {
	refs := []media.ReferenceImage{img("shirt", 1, 1), img("jeans", 1, 1)}

	t.Run("reference mode keeps every outfit image", func(t *testing.T) {
		s := NewStore()
		s.Select(VirtualTryOn)

		_, err := s.SetSlot(0, []media.ReferenceImage{img("person", 1, 1)})
		require.NoError(t, err)
		sel, err := s.SetSlot(1, refs)
		require.NoError(t, err)
		require.Len(t, sel.Slots[1], 2)
		assert.Equal(t, "jeans", sel.Slots[1][1].Name)

		res, err := Compile(sel.Input())
		require.NoError(t, err)
		assert.Len(t, res.Images, 3)
	})

	t.Run("extract mode keeps one garment", func(t *testing.T) {
		s := NewStore()
		s.Select(VirtualTryOn)
		_, err := s.SetOptions(VirtualTryOnOptions{Mode: TryOnExtract})
		require.NoError(t, err)

		sel, err := s.SetSlot(1, refs)
		require.NoError(t, err)
		assert.Len(t, sel.Slots[1], 1)
	})

	t.Run("switching to extract trims the outfit slot", func(t *testing.T) {
		s := NewStore()
		s.Select(VirtualTryOn)
		_, err := s.SetSlot(1, refs)
		require.NoError(t, err)

		sel, err := s.SetOptions(VirtualTryOnOptions{Mode: TryOnExtract})
		require.NoError(t, err)
		require.Len(t, sel.Slots[1], 1)
		assert.Equal(t, "shirt", sel.Slots[1][0].Name)
	})

	t.Run("slot layout follows mode", func(t *testing.T) {
		assert.False(t, SlotsFor(VirtualTryOnOptions{Mode: TryOnReference})[1].Single)
		assert.True(t, SlotsFor(VirtualTryOnOptions{Mode: TryOnExtract})[1].Single)
		assert.True(t, SlotsFor(Defaults(Background))[1].Single)
		assert.Len(t, SlotsFor(nil), 2)
	})
}

func TestStoreHairstyle(t *testing.T) {
	s := NewStore()
	s.Select(Hairstyle)
	_, err := s.SetSlot(1, []media.ReferenceImage{img("ref", 1, 1)})
	require.NoError(t, err)
	s.Update(func(sel *Selection) { sel.Derived.HairstyleDescription = "bob" })

	sel := s.SetHairstyle("Pixie Cut")
	assert.Equal(t, "Pixie Cut", sel.Options.(HairstyleOptions).Hairstyle)
	assert.Empty(t, sel.Derived.HairstyleDescription)
	assert.Empty(t, sel.Slots[1])

	sel = s.SetHairstyleGender(Male)
	assert.Equal(t, HairstyleOptions{Gender: Male}, sel.Options)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Select(Restore)
	_, err := s.SetSlot(0, []media.ReferenceImage{img("a", 1, 1)})
	require.NoError(t, err)

	sel := s.Get()
	sel.Slots[0][0].Name = "mutated"
	assert.Equal(t, "a", s.Get().Slots[0][0].Name)
}

func TestFixes(t *testing.T) {
	t.Run("issues map to fixes", func(t *testing.T) {
		got := FixesFor([]media.IssueTag{media.OversaturatedColors, media.DullColors, media.YellowTeeth, "NOT_A_TAG"})
		assert.Equal(t, []FixKey{FixColors, FixSkinTeeth}, got.Keys())
	})

	t.Run("every issue has a fix", func(t *testing.T) {
		for _, issue := range media.AllIssues {
			assert.False(t, FixesFor([]media.IssueTag{issue}).Empty(), issue)
		}
	})

	t.Run("set operations", func(t *testing.T) {
		s := FixSet(0).With(FixNoise).With(FixNoise)
		assert.True(t, s.Has(FixNoise))
		assert.False(t, s.Without(FixNoise).Has(FixNoise))
		assert.Equal(t, s, s.With("bogus"))
	})

	t.Run("catalog is complete", func(t *testing.T) {
		assert.Len(t, Fixes, 18)
		for _, k := range Fixes {
			assert.NotEmpty(t, fixTexts[k], k)
		}
	})

	t.Run("parse", func(t *testing.T) {
		k, err := ParseFix("Skin_Heal")
		require.NoError(t, err)
		assert.Equal(t, FixSkinHeal, k)
		_, err = ParseFix("glow")
		assert.Error(t, err)
	})
}

func TestAppendTag(t *testing.T) {
	cases := []struct {
		prompt, tag, want string
	}{
		{"", "8K", "8K"},
		{"   ", "8K", "8K"},
		{"a castle", "8K", "a castle, 8K"},
		{"a castle,", "8K", "a castle, 8K"},
		{"  a castle  ", "Anime", "a castle, Anime"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AppendTag(tc.prompt, tc.tag), "%q + %q", tc.prompt, tc.tag)
	}
}

func TestCatalog(t *testing.T) {
	tags, ok := Tags("Quality")
	require.True(t, ok)
	assert.Contains(t, tags, "Masterpiece")

	_, ok = Tags("nope")
	assert.False(t, ok)

	assert.Equal(t, MaleHairstyles, Hairstyles(Male))
	assert.Equal(t, FemaleHairstyles, Hairstyles(Female))

	id, err := Parse("COLOR_MATCH")
	require.NoError(t, err)
	assert.Equal(t, ColorMatch, id)

	assert.Len(t, Slots(Background), 2)
	assert.Len(t, Slots(Restore), 1)
}
