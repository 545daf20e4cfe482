package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"visual-prompt-studio/internal/media"
	"visual-prompt-studio/internal/preset"
)

func analyzeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a single image analysis",
	}

	edit := &cobra.Command{
		Use:   "edit <image>",
		Short: "Detect photo defects and the fixes that address them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e.studio.SelectPreset(preset.Edit)
			if err := e.fillSlot(ctx, 0, args); err != nil {
				return err
			}
			return e.withCredential(func() error {
				issues, err := e.studio.AnalyzeForEdit(ctx)
				if err != nil {
					return err
				}
				e.printIssues(issues)
				return nil
			})
		},
	}

	retouch := &cobra.Command{
		Use:   "retouch <image>",
		Short: "Build a retouch plan for a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e.studio.SelectPreset(preset.Retouch)
			if err := e.fillSlot(ctx, 0, args); err != nil {
				return err
			}
			return e.withCredential(func() error {
				plan, err := e.studio.AnalyzeForRetouch(ctx)
				if err != nil {
					return err
				}
				for _, issue := range plan.Issues {
					fmt.Fprintf(e.out, "issue: %s\n", issue)
				}
				fmt.Fprintln(e.out, plan.Prompt)
				return nil
			})
		},
	}

	hairstyle := &cobra.Command{
		Use:   "hairstyle <image>",
		Short: "Describe the hairstyle in a reference photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.studio.SelectPreset(preset.Hairstyle)
			if err := e.fillSlot(cmd.Context(), 1, args); err != nil {
				return err
			}
			fmt.Fprintln(e.out, e.studio.Presets().Get().Derived.HairstyleDescription)
			return nil
		},
	}

	jsonCmd := &cobra.Command{
		Use:   "json <image>",
		Short: "Deconstruct an image into a structured JSON prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e.studio.SelectPreset(preset.AIPromptEngineer)
			if err := e.fillSlot(ctx, 0, args); err != nil {
				return err
			}
			return e.withCredential(func() error {
				out, err := e.studio.AnalyzeJSON(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, out)
				return nil
			})
		},
	}

	cmd.AddCommand(edit, retouch, hairstyle, jsonCmd)
	return cmd
}

func (e *env) printIssues(issues []media.IssueTag) {
	if len(issues) == 0 {
		fmt.Fprintln(e.out, "no issues found")
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(e.out, "issue: %s\n", issue)
	}
	for _, k := range preset.FixesFor(issues).Keys() {
		fmt.Fprintf(e.out, "fix:   %s\n", k)
	}
}
