package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"visual-prompt-studio/internal/preset"
)

// optionKeys lists the --opt keys each preset accepts.
var optionKeys = map[preset.ID][]string{
	preset.Passport:     {"background", "background-custom", "outfit", "outfit-custom", "hairstyle"},
	preset.Restore:      {"photo-type", "strategy", "background"},
	preset.Edit:         {"fixes"},
	preset.VirtualTryOn: {"mode"},
	preset.Style:        {"style"},
	preset.Repose:       {"pose"},
	preset.Relight:      {"light-style", "light-direction"},
	preset.Hairstyle:    {"gender", "hairstyle"},
}

// parseOptions applies key=value pairs on top of the preset defaults.
func parseOptions(id preset.ID, kv map[string]string) (preset.Options, error) {
	allowed := optionKeys[id]
	for _, k := range sortedKeys(kv) {
		if !slices.Contains(allowed, k) {
			if len(allowed) == 0 {
				return nil, fmt.Errorf("preset %s takes no options", id)
			}
			return nil, fmt.Errorf("unknown option %q for %s (want one of %s)", k, id, strings.Join(allowed, ", "))
		}
	}

	get := func(k string) (string, bool) {
		v, ok := kv[k]
		return strings.TrimSpace(v), ok
	}

	switch o := preset.Defaults(id).(type) {
	case preset.PassportOptions:
		if v, ok := get("background"); ok {
			bg, err := oneOf(v, preset.PassportBgWhite, preset.PassportBgLightBlue, preset.PassportBgCustom)
			if err != nil {
				return nil, err
			}
			o.Background = bg
		}
		if v, ok := get("background-custom"); ok {
			o.Background = preset.PassportBgCustom
			o.BackgroundCustom = v
		}
		if v, ok := get("outfit"); ok {
			c, err := choice(preset.PassportOutfits, v)
			if err != nil {
				return nil, err
			}
			o.OutfitType = preset.OutfitPreset
			o.Outfit = c
		}
		if v, ok := get("outfit-custom"); ok {
			o.OutfitType = preset.OutfitCustom
			o.OutfitCustom = v
		}
		if v, ok := get("hairstyle"); ok {
			h, err := oneOf(v, preset.PassportHairAuto, preset.PassportHairLetDown, preset.PassportHairSweptBack)
			if err != nil {
				return nil, err
			}
			o.Hairstyle = h
		}
		return o, nil

	case preset.RestoreOptions:
		if v, ok := get("photo-type"); ok {
			t, err := oneOf(v, preset.PhotoBW, preset.PhotoColor)
			if err != nil {
				return nil, err
			}
			o.PhotoType = t
		}
		if v, ok := get("strategy"); ok {
			st, err := oneOf(v, preset.StrategyStandard, preset.StrategyDetailed, preset.StrategyProfessional)
			if err != nil {
				return nil, err
			}
			o.Strategy = st
		}
		if v, ok := get("background"); ok {
			bg, err := oneOf(v, preset.RestoreBgKeep, preset.RestoreBgWhite, preset.RestoreBgGrey, preset.RestoreBgBlue)
			if err != nil {
				return nil, err
			}
			o.Background = bg
		}
		return o, nil

	case preset.EditOptions:
		if v, ok := get("fixes"); ok {
			for _, part := range strings.Split(v, ",") {
				if strings.TrimSpace(part) == "" {
					continue
				}
				k, err := preset.ParseFix(part)
				if err != nil {
					return nil, err
				}
				o.Fixes = o.Fixes.With(k)
			}
		}
		return o, nil

	case preset.VirtualTryOnOptions:
		if v, ok := get("mode"); ok {
			m, err := oneOf(v, preset.TryOnReference, preset.TryOnExtract)
			if err != nil {
				return nil, err
			}
			o.Mode = m
		}
		return o, nil

	case preset.StyleOptions:
		if v, ok := get("style"); ok {
			s, err := listed(preset.ArtStyles, v)
			if err != nil {
				return nil, err
			}
			o.Style = s
		}
		return o, nil

	case preset.ReposeOptions:
		if v, ok := get("pose"); ok {
			p, err := choice(preset.Poses, v)
			if err != nil {
				return nil, err
			}
			o.Pose = p
		}
		return o, nil

	case preset.RelightOptions:
		if v, ok := get("light-style"); ok {
			s, err := listed(preset.LightingStyles, v)
			if err != nil {
				return nil, err
			}
			o.LightStyle = s
		}
		if v, ok := get("light-direction"); ok {
			d, err := listed(preset.LightDirections, v)
			if err != nil {
				return nil, err
			}
			o.LightDirection = d
		}
		return o, nil

	case preset.HairstyleOptions:
		if v, ok := get("gender"); ok {
			g, err := oneOf(v, preset.Female, preset.Male)
			if err != nil {
				return nil, err
			}
			o.Gender = g
		}
		if v, ok := get("hairstyle"); ok {
			h, err := listed(preset.Hairstyles(o.Gender), v)
			if err != nil {
				return nil, err
			}
			o.Hairstyle = h
		}
		return o, nil

	default:
		return o, nil
	}
}

func oneOf[T ~string](v string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if strings.EqualFold(v, string(a)) {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	var zero T
	return zero, fmt.Errorf("%q is not one of %s", v, strings.Join(names, ", "))
}

func listed(list []string, v string) (string, error) {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%q is not a known choice", v)
}

// choice matches a value or its label.
func choice(list []preset.Choice, v string) (string, error) {
	for _, c := range list {
		if strings.EqualFold(c.Value, v) || strings.EqualFold(c.Label, v) {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("%q is not a known choice", v)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
