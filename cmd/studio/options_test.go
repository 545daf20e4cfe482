package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visual-prompt-studio/internal/preset"
)

func TestParseOptions(t *testing.T) {
	t.Run("no overrides returns defaults", func(t *testing.T) {
		for _, id := range preset.All {
			o, err := parseOptions(id, nil)
			require.NoError(t, err, id)
			assert.Equal(t, preset.Defaults(id), o, id)
		}
	})

	t.Run("passport custom outfit", func(t *testing.T) {
		o, err := parseOptions(preset.Passport, map[string]string{
			"outfit-custom": "a grey turtleneck",
			"hairstyle":     "SweptBack",
		})
		require.NoError(t, err)
		p := o.(preset.PassportOptions)
		assert.Equal(t, preset.OutfitCustom, p.OutfitType)
		assert.Equal(t, "a grey turtleneck", p.OutfitCustom)
		assert.Equal(t, preset.PassportHairSweptBack, p.Hairstyle)
		assert.Equal(t, preset.PassportBgLightBlue, p.Background)
	})

	t.Run("passport outfit by label", func(t *testing.T) {
		o, err := parseOptions(preset.Passport, map[string]string{"outfit": "dark suit & tie"})
		require.NoError(t, err)
		assert.Equal(t, "darkSuit-tie", o.(preset.PassportOptions).Outfit)
	})

	t.Run("edit fixes", func(t *testing.T) {
		o, err := parseOptions(preset.Edit, map[string]string{"fixes": "contrast, skin_eyes,"})
		require.NoError(t, err)
		fixes := o.(preset.EditOptions).Fixes
		assert.Equal(t, []preset.FixKey{preset.FixContrast, preset.FixSkinEyes}, fixes.Keys())
	})

	t.Run("repose pose by label", func(t *testing.T) {
		o, err := parseOptions(preset.Repose, map[string]string{"pose": "Dynamic Jump"})
		require.NoError(t, err)
		assert.Equal(t, "dynamic action pose, mid-jump", o.(preset.ReposeOptions).Pose)
	})

	t.Run("hairstyle list follows gender", func(t *testing.T) {
		male := preset.Hairstyles(preset.Male)[0]
		o, err := parseOptions(preset.Hairstyle, map[string]string{"gender": "male", "hairstyle": male})
		require.NoError(t, err)
		assert.Equal(t, preset.HairstyleOptions{Gender: preset.Male, Hairstyle: male}, o)
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name string
			id   preset.ID
			kv   map[string]string
		}{
			{"unknown key", preset.Restore, map[string]string{"pose": "x"}},
			{"no options", preset.Mockup, map[string]string{"style": "x"}},
			{"bad enum", preset.Restore, map[string]string{"strategy": "extreme"}},
			{"bad fix", preset.Edit, map[string]string{"fixes": "sparkle"}},
			{"unlisted style", preset.Style, map[string]string{"style": "Crayon Scribble"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := parseOptions(tc.id, tc.kv)
				assert.Error(t, err)
			})
		}
	})
}

func TestOneLine(t *testing.T) {
	assert.Equal(t, "a b c", oneLine("a\n  b\tc", 10))
	assert.Equal(t, "abcd…", oneLine("abcdefgh", 5))
}
