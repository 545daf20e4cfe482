package app

import (
	"context"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/ingest"
	"visual-prompt-studio/internal/media"
	"visual-prompt-studio/internal/preset"
	"visual-prompt-studio/internal/task"
)

// SelectPreset switches to preset mode and resets the preset state.
func (s *Studio) SelectPreset(id preset.ID) preset.Selection {
	s.SetMode(ModePreset)
	return s.presets.Select(id)
}

func (s *Studio) SetPresetOptions(o preset.Options) (preset.Selection, error) {
	sel, err := s.presets.SetOptions(o)
	if err != nil {
		return sel, apperr.Wrap(apperr.ValidationFailed, "studio.SetPresetOptions", err)
	}
	return sel, nil
}

func (s *Studio) SetPresetText(text string) preset.Selection {
	return s.presets.Update(func(sel *preset.Selection) { sel.FreeText = text })
}

// SetPresetImages ingests files into slot (0 or 1), replacing what was
// there. A hairstyle reference photo is analyzed right away.
func (s *Studio) SetPresetImages(ctx context.Context, slot int, files []ingest.File) (ingest.Batch, error) {
	if slot < 0 || slot > 1 {
		return ingest.Batch{}, apperr.New(apperr.ValidationFailed, "studio.SetPresetImages", "slot must be 1 or 2")
	}
	cur := s.presets.Get()
	batch, err := s.ingest.IngestAll(ctx, files, cur.Slots[slot], false)
	if err != nil {
		return batch, err
	}
	sel, err := s.presets.SetSlot(slot, batch.Images)
	if err != nil {
		return batch, apperr.Wrap(apperr.ValidationFailed, "studio.SetPresetImages", err)
	}
	if batch.Added > 0 && slot == 1 && sel.ID() == preset.Hairstyle {
		if _, err := s.AnalyzeHairstyle(ctx); err != nil {
			return batch, err
		}
	}
	return batch, batch.Err()
}

func (s *Studio) slotImage(slot int) (media.ReferenceImage, uint64, error) {
	sel := s.presets.Get()
	if len(sel.Slots[slot]) == 0 {
		return media.ReferenceImage{}, 0, apperr.Wrap(apperr.ValidationFailed, "studio", ErrNoImage)
	}
	return sel.Slots[slot][0], sel.Epoch, nil
}

// AnalyzeForEdit detects defects in slot 1 and pre-selects the matching
// fixes, replacing any manual choice.
func (s *Studio) AnalyzeForEdit(ctx context.Context) ([]media.IssueTag, error) {
	img, epoch, err := s.slotImage(0)
	if err != nil {
		return nil, err
	}
	var issues []media.IssueTag
	err = s.runner.Run(ctx, task.SlotAnalyzeEdit, task.SlotAnalyzeEdit.Duration(), func(ctx context.Context) error {
		s.presets.UpdateIf(epoch, func(sel *preset.Selection) { sel.Derived.Issues = nil })
		found, err := s.gw.AnalyzeDefects(ctx, img)
		if err != nil {
			return err
		}
		issues = found
		s.apply(epoch, func(sel *preset.Selection) {
			sel.Derived.Issues = found
			if o, ok := sel.Options.(preset.EditOptions); ok {
				o.Fixes = preset.FixesFor(found)
				sel.Options = o
			}
		})
		return nil
	})
	return issues, err
}

// AnalyzeForRetouch produces the retouch plan the retouch preset sends.
func (s *Studio) AnalyzeForRetouch(ctx context.Context) (gemini.RetouchPlan, error) {
	img, epoch, err := s.slotImage(0)
	if err != nil {
		return gemini.RetouchPlan{}, err
	}
	var plan gemini.RetouchPlan
	err = s.runner.Run(ctx, task.SlotAnalyzeRetouch, task.SlotAnalyzeRetouch.Duration(), func(ctx context.Context) error {
		s.presets.UpdateIf(epoch, func(sel *preset.Selection) {
			sel.Derived.Issues = nil
			sel.Derived.RetouchPrompt = ""
		})
		p, err := s.gw.SynthesizeRetouchPrompt(ctx, img)
		if err != nil {
			return err
		}
		plan = p
		s.apply(epoch, func(sel *preset.Selection) {
			sel.Derived.Issues = p.Issues
			sel.Derived.RetouchPrompt = p.Prompt
		})
		return nil
	})
	return plan, err
}

// AnalyzeHairstyle describes the reference photo in slot 2. The
// description replaces the dropdown choice.
func (s *Studio) AnalyzeHairstyle(ctx context.Context) (string, error) {
	if s.presets.Get().ID() != preset.Hairstyle {
		return "", apperr.New(apperr.ValidationFailed, "studio.AnalyzeHairstyle", "hairstyle preset is not selected")
	}
	img, epoch, err := s.slotImage(1)
	if err != nil {
		return "", err
	}
	var desc string
	err = s.runner.Run(ctx, task.SlotAnalyzeHairstyle, task.SlotAnalyzeHairstyle.Duration(), func(ctx context.Context) error {
		s.presets.UpdateIf(epoch, func(sel *preset.Selection) { sel.Derived.HairstyleDescription = "" })
		d, err := s.gw.DescribeHairstyle(ctx, img)
		if err != nil {
			return err
		}
		desc = d
		s.apply(epoch, func(sel *preset.Selection) {
			sel.Derived.HairstyleDescription = d
			if o, ok := sel.Options.(preset.HairstyleOptions); ok {
				o.Hairstyle = ""
				sel.Options = o
			}
		})
		return nil
	})
	return desc, err
}

// AnalyzeJSON deconstructs slot 1 into the structured prompt used for
// style transfer.
func (s *Studio) AnalyzeJSON(ctx context.Context) (string, error) {
	img, epoch, err := s.slotImage(0)
	if err != nil {
		return "", err
	}
	var out string
	err = s.runner.Run(ctx, task.SlotAnalyzeJSON, task.SlotAnalyzeJSON.Duration(), func(ctx context.Context) error {
		s.presets.UpdateIf(epoch, func(sel *preset.Selection) { sel.Derived.JSONPrompt = "" })
		text, err := s.gw.DeconstructToStructuredPrompt(ctx, img, s.Locale())
		if err != nil {
			return err
		}
		out = text
		s.apply(epoch, func(sel *preset.Selection) { sel.Derived.JSONPrompt = text })
		return nil
	})
	return out, err
}

// PrepareDerived runs the analysis a preset needs before it can generate,
// skipping anything already derived.
func (s *Studio) PrepareDerived(ctx context.Context) error {
	sel := s.presets.Get()
	if len(sel.Slots[0]) == 0 {
		return nil
	}
	var err error
	switch sel.ID() {
	case preset.Retouch:
		if sel.Derived.RetouchPrompt == "" {
			_, err = s.AnalyzeForRetouch(ctx)
		}
	case preset.AIPromptEngineer:
		if sel.Derived.JSONPrompt == "" {
			_, err = s.AnalyzeJSON(ctx)
		}
	}
	return err
}

func (s *Studio) apply(epoch uint64, fn func(*preset.Selection)) {
	if _, ok := s.presets.UpdateIf(epoch, fn); !ok {
		s.logger.Debug().Msg("preset changed during analysis, result dropped")
	}
}
