package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"visual-prompt-studio/internal/app"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/ingest"
	"visual-prompt-studio/internal/media"
)

func newRootCmd() (*cobra.Command, *env) {
	e := &env{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
	var lang string

	root := &cobra.Command{
		Use:           "studio",
		Short:         "Prompt engineering and image generation studio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			e.out = cmd.OutOrStdout()
			e.errOut = cmd.ErrOrStderr()
			return e.init(lang)
		},
	}
	root.PersistentFlags().StringVar(&lang, "lang", "", "interface language (en, vi); defaults to STUDIO_LANG")
	root.PersistentFlags().BoolVarP(&e.quiet, "quiet", "q", false, "hide progress and tips")

	root.AddCommand(
		keyCmd(e),
		enhanceCmd(e),
		suggestCmd(e),
		generateCmd(e),
		refineCmd(e),
		presetCmd(e),
		analyzeCmd(e),
		historyCmd(e),
		weatherCmd(e),
		themeCmd(e),
		tagsCmd(e),
	)
	return root, e
}

func pathFiles(paths []string) []ingest.File {
	files := make([]ingest.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, ingest.PathFile(p))
	}
	return files
}

// addImages loads pro-mode reference images. Any file that fails aborts
// the command.
func (e *env) addImages(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	batch, err := e.studio.AddImages(ctx, pathFiles(paths))
	for _, name := range batch.Skipped {
		fmt.Fprintf(e.errOut, "skipped %s: not an image\n", name)
	}
	return err
}

func (e *env) setTarget(model, length string) error {
	var (
		m   gemini.ImageModel
		l   gemini.PromptLength
		err error
	)
	if model != "" {
		if m, err = gemini.ParseImageModel(model); err != nil {
			return err
		}
	}
	if length != "" {
		if l, err = gemini.ParsePromptLength(length); err != nil {
			return err
		}
	}
	e.studio.SetTarget(m, l)
	return nil
}

func (e *env) generate(ctx context.Context, dir string) error {
	var img media.GeneratedImage
	err := e.withCredential(func() error {
		var err error
		img, err = e.studio.Generate(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return e.save(dir, "", img)
}

// save writes the current result. name feeds the file name; empty falls
// back to the prompt.
func (e *env) save(dir, name string, img media.GeneratedImage) error {
	path, err := e.studio.SaveResult(dir, name)
	if err != nil {
		return err
	}
	ws := e.studio.Workspace()
	fmt.Fprintf(e.out, "%s (%dx%d, %.1fs)\n", path, img.Width, img.Height, ws.GenerationTime.Seconds())
	return nil
}

func enhanceCmd(e *env) *cobra.Command {
	var (
		images        []string
		model, length string
	)
	cmd := &cobra.Command{
		Use:   "enhance <prompt...>",
		Short: "Rewrite a prompt for a target image model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := e.setTarget(model, length); err != nil {
				return err
			}
			e.studio.SetMode(app.ModePro)
			e.studio.SetPrompt(strings.Join(args, " "))
			if err := e.addImages(ctx, images); err != nil {
				return err
			}
			var out string
			err := e.withCredential(func() error {
				var err error
				out, err = e.studio.Enhance(ctx)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, out)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&images, "image", "i", nil, "reference image files")
	cmd.Flags().StringVarP(&model, "model", "m", "", "target model (imagen, flash, flux, sd15, kontext, qwen, krea, qwen-edit)")
	cmd.Flags().StringVarP(&length, "length", "l", "", "prompt length (short, medium, long)")
	return cmd
}

func suggestCmd(e *env) *cobra.Command {
	var images []string
	cmd := &cobra.Command{
		Use:   "suggest [prompt...]",
		Short: "Suggest keywords that extend a prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e.studio.SetMode(app.ModePro)
			e.studio.SetPrompt(strings.Join(args, " "))
			if err := e.addImages(ctx, images); err != nil {
				return err
			}
			var list []string
			err := e.withCredential(func() error {
				var err error
				list, err = e.studio.Suggest(ctx)
				return err
			})
			if err != nil {
				return err
			}
			for _, s := range list {
				fmt.Fprintln(e.out, s)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&images, "image", "i", nil, "reference image files")
	return cmd
}

func generateCmd(e *env) *cobra.Command {
	var (
		images        []string
		enhance       bool
		model, length string
		fromHistory   int64
		outDir        string
	)
	cmd := &cobra.Command{
		Use:   "generate [prompt...]",
		Short: "Generate an image from a free-form prompt and optional references",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := e.studio
			if err := e.setTarget(model, length); err != nil {
				return err
			}
			s.SetMode(app.ModePro)
			s.SetPrompt(strings.Join(args, " "))
			if err := e.addImages(ctx, images); err != nil {
				return err
			}
			if fromHistory != 0 {
				if err := s.SendHistory(fromHistory, app.DestinationPro); err != nil {
					return err
				}
			}
			if enhance {
				err := e.withCredential(func() error {
					_, err := s.Enhance(ctx)
					return err
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(e.out, s.Workspace().EnhancedPrompt)
			}
			return e.generate(ctx, outDir)
		},
	}
	cmd.Flags().StringSliceVarP(&images, "image", "i", nil, "reference image files")
	cmd.Flags().BoolVarP(&enhance, "enhance", "e", false, "enhance the prompt before generating")
	cmd.Flags().StringVarP(&model, "model", "m", "", "target model used by --enhance")
	cmd.Flags().StringVarP(&length, "length", "l", "", "prompt length used by --enhance")
	cmd.Flags().Int64Var(&fromHistory, "from-history", 0, "add a history item as a reference image")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

func refineCmd(e *env) *cobra.Command {
	var (
		id     int64
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "refine <instruction...>",
		Short: "Edit a previous result with a follow-up instruction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := e.studio.UseHistory(id); err != nil {
				return err
			}
			instruction := strings.Join(args, " ")
			var img media.GeneratedImage
			err := e.withCredential(func() error {
				var err error
				img, err = e.studio.Refine(ctx, instruction)
				return err
			})
			if err != nil {
				return err
			}
			return e.save(outDir, instruction, img)
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "history item to refine (default: latest)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}
