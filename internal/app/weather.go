package app

import (
	"context"
	"errors"
	"os"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/ingest"
	"visual-prompt-studio/internal/storage"
)

// Weather looks up current conditions for explicit coordinates. The whole
// lookup is bounded by the geolocation timeout.
func (s *Studio) Weather(ctx context.Context, lat, lon float64) (gemini.Weather, error) {
	ctx, cancel := context.WithTimeout(ctx, s.geoTimeout)
	defer cancel()

	w, err := s.gw.LookupWeather(ctx, lat, lon)
	if err != nil {
		s.logger.Warn().Err(err).Msg("weather lookup failed")
		s.handleError("weather", err)
		return gemini.Weather{}, err
	}
	return w, nil
}

// WeatherFromPhoto reads GPS coordinates from the photo's EXIF data.
func (s *Studio) WeatherFromPhoto(ctx context.Context, path string) (gemini.Weather, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gemini.Weather{}, apperr.Wrap(apperr.ReadFailed, "studio.WeatherFromPhoto", err)
	}
	lat, lon, ok := ingest.Coordinates(data)
	if !ok {
		return gemini.Weather{}, apperr.New(apperr.ValidationFailed, "studio.WeatherFromPhoto", "photo has no GPS coordinates")
	}
	return s.Weather(ctx, lat, lon)
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Theme returns the persisted theme, light when unset.
func (s *Studio) Theme() Theme {
	if s.kv == nil {
		return ThemeLight
	}
	v, ok, err := s.kv.Get(storage.KeyTheme)
	if err != nil || !ok {
		return ThemeLight
	}
	if Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (s *Studio) SetTheme(t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return apperr.New(apperr.ValidationFailed, "studio.SetTheme", "theme must be light or dark")
	}
	if s.kv == nil {
		return nil
	}
	if err := s.kv.Set(storage.KeyTheme, string(t)); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return apperr.Wrap(apperr.StorageQuotaExceeded, "studio.SetTheme", err)
		}
		return err
	}
	return nil
}
