package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"visual-prompt-studio/internal/app"
	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/i18n"
	"visual-prompt-studio/internal/preset"
)

func keyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the API key",
	}
	set := &cobra.Command{
		Use:   "set [key]",
		Short: "Store an API key (prompts when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				var err error
				if key, err = e.readKey(); err != nil {
					return apperr.Wrap(apperr.ReadFailed, "key", err)
				}
			}
			if err := e.studio.SaveCredential(key); err != nil {
				return err
			}
			fmt.Fprintln(e.out, e.text(i18n.MsgCredentialSaved))
			return nil
		},
	}
	status := &cobra.Command{
		Use:   "status",
		Short: "Report whether a key is available",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			switch {
			case e.cfg.GeminiAPIKey != "":
				fmt.Fprintln(e.out, "configured (environment)")
			case e.studio.Ready():
				fmt.Fprintln(e.out, "configured (saved)")
			default:
				fmt.Fprintln(e.out, "missing")
			}
			return nil
		},
	}
	cmd.AddCommand(set, status)
	return cmd
}

func historyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse generated images",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, it := range e.studio.History().Snapshot() {
				fmt.Fprintf(e.out, "%d  %4dx%-4d  %s\n", it.ID, it.Width, it.Height, oneLine(it.Prompt, 80))
			}
			return nil
		},
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			e.studio.ClearHistory()
			return nil
		},
	}
	var dir string
	export := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a history image to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return apperr.Wrap(apperr.ValidationFailed, "history", err)
			}
			path, err := e.studio.ExportHistory(id, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, path)
			return nil
		},
	}
	export.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.AddCommand(list, clearCmd, export)
	return cmd
}

func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}

func weatherCmd(e *env) *cobra.Command {
	var (
		lat, lon float64
		photo    string
	)
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Current weather for coordinates or a geotagged photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if photo == "" && (!cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon")) {
				return apperr.New(apperr.ValidationFailed, "weather", "pass --lat and --lon, or --photo")
			}
			var w gemini.Weather
			err := e.withCredential(func() error {
				var err error
				if photo != "" {
					w, err = e.studio.WeatherFromPhoto(ctx, photo)
				} else {
					w, err = e.studio.Weather(ctx, lat, lon)
				}
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%s: %d°C, %s (%s)\n", w.City, w.TemperatureCelsius, w.Condition, w.Icon)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&photo, "photo", "", "read coordinates from the photo's GPS data")
	return cmd
}

func themeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the saved theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := e.studio.SetTheme(app.Theme(strings.ToLower(args[0]))); err != nil {
					return err
				}
			}
			fmt.Fprintln(e.out, e.studio.Theme())
			return nil
		},
	}
}

func tagsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tags [category]",
		Short: "List prompt tags by category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, c := range preset.TagCategories {
					fmt.Fprintf(e.out, "%-12s %d tags\n", c.Name, len(c.Tags))
				}
				return nil
			}
			tags, ok := preset.Tags(args[0])
			if !ok {
				return apperr.New(apperr.ValidationFailed, "tags", fmt.Sprintf("unknown category %q", args[0]))
			}
			fmt.Fprintln(e.out, strings.Join(tags, ", "))
			return nil
		},
	}
}
