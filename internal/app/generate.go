package app

import (
	"context"
	"strings"
	"time"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/history"
	"visual-prompt-studio/internal/ingest"
	"visual-prompt-studio/internal/media"
	"visual-prompt-studio/internal/preset"
	"visual-prompt-studio/internal/task"
)

func (s *Studio) SetMode(m Mode) Workspace {
	return s.updateWorkspace(func(w *Workspace) { w.Mode = m })
}

// SetPrompt replaces the free-form prompt. The previous enhancement stays
// until the next Enhance.
func (s *Studio) SetPrompt(prompt string) Workspace {
	return s.updateWorkspace(func(w *Workspace) { w.OriginalPrompt = prompt })
}

func (s *Studio) SetTarget(model gemini.ImageModel, length gemini.PromptLength) Workspace {
	return s.updateWorkspace(func(w *Workspace) {
		if model != "" {
			w.TargetModel = model
		}
		if length != "" {
			w.Length = length
		}
	})
}

// AddTag appends a catalog tag to the free-form prompt.
func (s *Studio) AddTag(tag string) Workspace {
	return s.updateWorkspace(func(w *Workspace) { w.OriginalPrompt = preset.AppendTag(w.OriginalPrompt, tag) })
}

// AddImages ingests files and appends them to the pro-mode references.
func (s *Studio) AddImages(ctx context.Context, files []ingest.File) (ingest.Batch, error) {
	existing := s.Workspace().Images
	batch, err := s.ingest.IngestAll(ctx, files, existing, true)
	if err != nil {
		return batch, err
	}
	s.updateWorkspace(func(w *Workspace) { w.Images = batch.Images })
	return batch, batch.Err()
}

// Enhance rewrites the free-form prompt for the target model.
func (s *Studio) Enhance(ctx context.Context) (string, error) {
	ws := s.Workspace()
	if strings.TrimSpace(ws.OriginalPrompt) == "" {
		return "", apperr.Wrap(apperr.ValidationFailed, "studio.Enhance", preset.ErrPromptRequired)
	}
	var out string
	err := s.runner.Run(ctx, task.SlotEnhance, task.SlotEnhance.Duration(), func(ctx context.Context) error {
		s.updateWorkspace(func(w *Workspace) { w.EnhancedPrompt = "" })
		text, err := s.gw.EnhancePrompt(ctx, ws.OriginalPrompt, ws.TargetModel, ws.Length, ws.Images)
		if err != nil {
			return err
		}
		out = text
		s.updateWorkspace(func(w *Workspace) { w.EnhancedPrompt = text })
		return nil
	})
	return out, err
}

// Suggest fetches follow-up keyword ideas for the free-form prompt.
func (s *Studio) Suggest(ctx context.Context) ([]string, error) {
	ws := s.Workspace()
	if strings.TrimSpace(ws.OriginalPrompt) == "" && len(ws.Images) == 0 {
		return nil, apperr.Wrap(apperr.ValidationFailed, "studio.Suggest", preset.ErrPromptOrImage)
	}
	var out []string
	err := s.runner.Run(ctx, task.SlotSuggest, task.SlotSuggest.Duration(), func(ctx context.Context) error {
		s.updateWorkspace(func(w *Workspace) { w.Suggestions = nil })
		list, err := s.gw.GetSuggestions(ctx, ws.OriginalPrompt, s.Locale(), ws.Images)
		if err != nil {
			return err
		}
		out = list
		s.updateWorkspace(func(w *Workspace) { w.Suggestions = list })
		return nil
	})
	return out, err
}

// Compile builds the request the next Generate would send.
func (s *Studio) Compile() (preset.Result, error) {
	ws := s.Workspace()
	if ws.Mode == ModePro {
		return preset.CompilePro(ws.OriginalPrompt, ws.EnhancedPrompt, ws.Images)
	}
	return preset.Compile(s.presets.Get().Input())
}

// Generate compiles the current mode and produces a new image. Success
// updates the current result and prepends a history item.
func (s *Studio) Generate(ctx context.Context) (media.GeneratedImage, error) {
	res, err := s.Compile()
	if err != nil {
		return media.GeneratedImage{}, err
	}
	d := task.SlotGenerate.Duration()
	if len(res.Images) == 0 {
		d = task.TextOnlyGenerate
	}
	return s.produce(ctx, task.SlotGenerate, d, res)
}

// Refine edits the current result with a follow-up instruction.
func (s *Studio) Refine(ctx context.Context, instruction string) (media.GeneratedImage, error) {
	res, err := preset.CompileRefine(instruction, s.Workspace().Generated)
	if err != nil {
		return media.GeneratedImage{}, err
	}
	return s.produce(ctx, task.SlotRefine, task.SlotRefine.Duration(), res)
}

func (s *Studio) produce(ctx context.Context, slot task.Slot, d time.Duration, res preset.Result) (media.GeneratedImage, error) {
	var out media.GeneratedImage
	err := s.runner.Run(ctx, slot, d, func(ctx context.Context) error {
		started := s.now()
		b64, err := s.gw.GenerateImage(ctx, res.Prompt, res.Images)
		if err != nil {
			return err
		}
		w, h, err := ingest.Dimensions(b64)
		if err != nil {
			return err
		}
		out = media.GeneratedImage{Base64: b64, Width: w, Height: h}
		elapsed := s.now().Sub(started)

		s.updateWorkspace(func(ws *Workspace) {
			g := out
			ws.Generated = &g
			ws.FinalPrompt = res.Prompt
			ws.GenerationTime = elapsed
		})
		s.history.Append(history.Item{
			ID:     s.history.NextID(),
			Base64: b64,
			Prompt: res.Prompt,
			Width:  w,
			Height: h,
		})
		s.logger.Info().
			Str("slot", string(slot)).
			Int("width", w).
			Int("height", h).
			Int("images", len(res.Images)).
			Dur("elapsed", elapsed).
			Msg("image generated")
		return nil
	})
	return out, err
}

// UseGenerated makes img the current result, e.g. a history item picked
// for refinement.
func (s *Studio) UseGenerated(img media.GeneratedImage, prompt string) Workspace {
	return s.updateWorkspace(func(w *Workspace) {
		g := img
		w.Generated = &g
		w.FinalPrompt = prompt
	})
}
