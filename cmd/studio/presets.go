package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/preset"
)

func presetCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Guided photo editing presets",
	}
	cmd.AddCommand(presetListCmd(e), presetShowCmd(e), presetRunCmd(e))
	return cmd
}

func presetListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, id := range preset.All {
				labels := make([]string, 0, 2)
				for _, s := range preset.Slots(id) {
					labels = append(labels, s.Label)
				}
				fmt.Fprintf(e.out, "%-18s %-20s [%s]\n", id, id.Title(), strings.Join(labels, " + "))
			}
			return nil
		},
	}
}

func presetShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <preset>",
		Short: "Show a preset's inputs, options and choices",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parsePreset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s (%s)\n", id.Title(), id)
			for i, s := range preset.Slots(id) {
				label := s.Label
				if !s.Single {
					label += " (repeatable)"
				}
				fmt.Fprintf(e.out, "  --image%s  %s\n", slotSuffix(i), label)
			}
			if keys := optionKeys[id]; len(keys) > 0 {
				fmt.Fprintf(e.out, "  --opt     %s\n", strings.Join(keys, ", "))
			}
			fmt.Fprintf(e.out, "  defaults  %+v\n", preset.Defaults(id))

			for _, c := range choicesFor(id) {
				fmt.Fprintf(e.out, "\n%s:\n", c.name)
				for _, v := range c.values {
					fmt.Fprintf(e.out, "  %s\n", v)
				}
			}
			return nil
		},
	}
}

type choiceList struct {
	name   string
	values []string
}

func choicesFor(id preset.ID) []choiceList {
	labels := func(cs []preset.Choice) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = fmt.Sprintf("%s (%s)", c.Label, c.Value)
		}
		return out
	}
	switch id {
	case preset.Passport:
		return []choiceList{{"outfit", labels(preset.PassportOutfits)}}
	case preset.Repose:
		return []choiceList{{"pose", labels(preset.Poses)}}
	case preset.Style:
		return []choiceList{{"style", preset.ArtStyles}}
	case preset.Relight:
		return []choiceList{{"light-style", preset.LightingStyles}, {"light-direction", preset.LightDirections}}
	case preset.Hairstyle:
		return []choiceList{
			{"hairstyle (female)", preset.Hairstyles(preset.Female)},
			{"hairstyle (male)", preset.Hairstyles(preset.Male)},
		}
	case preset.Edit:
		keys := make([]string, len(preset.Fixes))
		for i, k := range preset.Fixes {
			keys[i] = string(k)
		}
		return []choiceList{{"fixes", keys}}
	}
	return nil
}

func slotSuffix(i int) string {
	if i == 0 {
		return " "
	}
	return "2"
}

func parsePreset(s string) (preset.ID, error) {
	id, err := preset.Parse(s)
	if err != nil {
		return "", apperr.Wrap(apperr.ValidationFailed, "preset", err)
	}
	return id, nil
}

func presetRunCmd(e *env) *cobra.Command {
	var (
		slot1, slot2 []string
		text         string
		opts         map[string]string
		fromHistory  int64
		analyze      bool
		outDir       string
	)
	cmd := &cobra.Command{
		Use:   "run <preset>",
		Short: "Fill a preset's inputs and generate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := e.studio

			id, err := parsePreset(args[0])
			if err != nil {
				return err
			}
			s.SelectPreset(id)
			if fromHistory != 0 {
				if err := s.SendHistory(fromHistory, string(id)); err != nil {
					return err
				}
			}

			o, err := parseOptions(id, opts)
			if err != nil {
				return apperr.Wrap(apperr.ValidationFailed, "preset", err)
			}
			if _, err := s.SetPresetOptions(o); err != nil {
				return err
			}
			s.SetPresetText(text)

			if err := e.fillSlot(ctx, 0, slot1); err != nil {
				return err
			}
			if err := e.fillSlot(ctx, 1, slot2); err != nil {
				return err
			}

			if analyze && id == preset.Edit {
				err := e.withCredential(func() error {
					issues, err := s.AnalyzeForEdit(ctx)
					if err == nil {
						e.printIssues(issues)
					}
					return err
				})
				if err != nil {
					return err
				}
			}
			if err := e.withCredential(func() error { return s.PrepareDerived(ctx) }); err != nil {
				return err
			}
			return e.generate(ctx, outDir)
		},
	}
	cmd.Flags().StringSliceVarP(&slot1, "image", "i", nil, "image for the first input")
	cmd.Flags().StringSliceVar(&slot2, "image2", nil, "image for the second input")
	cmd.Flags().StringVarP(&text, "text", "t", "", "additional instructions (the product description for mockup)")
	cmd.Flags().StringToStringVar(&opts, "opt", nil, "preset option key=value (see preset show)")
	cmd.Flags().Int64Var(&fromHistory, "from-history", 0, "use a history item as the first input")
	cmd.Flags().BoolVar(&analyze, "analyze", false, "edit only: detect defects and select the matching fixes, replacing --opt fixes")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

// fillSlot loads images into a preset input. A hairstyle reference is
// analyzed as part of the upload, so it may need the key.
func (e *env) fillSlot(ctx context.Context, slot int, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return e.withCredential(func() error {
		_, err := e.studio.SetPresetImages(ctx, slot, pathFiles(paths))
		return err
	})
}
