package app

import (
	"fmt"
	"strings"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/history"
	"visual-prompt-studio/internal/media"
	"visual-prompt-studio/internal/preset"
)

// Destination for SendToPro.
const DestinationPro = "pro"

func (s *Studio) item(id int64) (history.Item, error) {
	it, ok := s.history.Get(id)
	if !ok {
		return history.Item{}, apperr.New(apperr.ValidationFailed, "studio.history", fmt.Sprintf("no history item %d", id))
	}
	return it, nil
}

func asGenerated(it history.Item) media.GeneratedImage {
	return media.GeneratedImage{Base64: it.Base64, Width: it.Width, Height: it.Height}
}

func (s *Studio) sentName() string {
	return fmt.Sprintf("sent_%d.png", s.now().UnixMilli())
}

// Send routes a generated image to pro mode or into slot 1 of a preset.
// Preset destinations reset that preset first.
func (s *Studio) Send(img media.GeneratedImage, destination string) error {
	ref := img.AsReference(s.sentName())
	if strings.EqualFold(destination, DestinationPro) {
		s.updateWorkspace(func(w *Workspace) {
			w.Mode = ModePro
			w.Images = append(w.Images, ref)
		})
		return nil
	}

	id, err := preset.Parse(destination)
	if err != nil {
		return apperr.Wrap(apperr.ValidationFailed, "studio.Send", err)
	}
	s.SelectPreset(id)
	if _, err := s.presets.SetSlot(0, []media.ReferenceImage{ref}); err != nil {
		return apperr.Wrap(apperr.ValidationFailed, "studio.Send", err)
	}
	return nil
}

// SendHistory sends a stored item like Send.
func (s *Studio) SendHistory(id int64, destination string) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	return s.Send(asGenerated(it), destination)
}

// UseHistory makes a stored item the current result, or the newest one
// when id is zero.
func (s *Studio) UseHistory(id int64) (history.Item, error) {
	var it history.Item
	if id == 0 {
		items := s.history.Snapshot()
		if len(items) == 0 {
			return history.Item{}, apperr.Wrap(apperr.ValidationFailed, "studio.UseHistory", preset.ErrNothingToRefine)
		}
		it = items[0]
	} else {
		var err error
		if it, err = s.item(id); err != nil {
			return history.Item{}, err
		}
	}
	s.UseGenerated(asGenerated(it), it.Prompt)
	return it, nil
}

// ExportHistory writes an item as a PNG into dir.
func (s *Studio) ExportHistory(id int64, dir string) (string, error) {
	it, err := s.item(id)
	if err != nil {
		return "", err
	}
	return history.Export(it, dir)
}

// DownloadName picks the file name for the current result from the first
// non-empty of: explicit prompt, enhanced prompt, original prompt, preset
// text, preset id.
func (s *Studio) DownloadName(prompt string) string {
	return history.SafeFilename(s.nameSource(prompt))
}

func (s *Studio) nameSource(prompt string) string {
	ws := s.Workspace()
	sel := s.presets.Get()
	for _, c := range []string{
		strings.TrimSpace(prompt),
		strings.TrimSpace(ws.EnhancedPrompt),
		strings.TrimSpace(ws.OriginalPrompt),
		strings.TrimSpace(sel.FreeText),
		string(sel.ID()),
	} {
		if c != "" {
			return c
		}
	}
	return ""
}

// SaveResult writes the current result into dir under DownloadName(prompt).
func (s *Studio) SaveResult(dir, prompt string) (string, error) {
	g := s.Workspace().Generated
	if g == nil {
		return "", apperr.Wrap(apperr.ValidationFailed, "studio.SaveResult", preset.ErrNothingToRefine)
	}
	return history.Export(history.Item{Base64: g.Base64, Prompt: s.nameSource(prompt)}, dir)
}

func (s *Studio) ClearHistory() {
	s.history.Clear()
}
