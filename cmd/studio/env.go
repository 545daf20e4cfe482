package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"visual-prompt-studio/internal/app"
	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/config"
	"visual-prompt-studio/internal/credentials"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/httpclient"
	"visual-prompt-studio/internal/i18n"
	"visual-prompt-studio/internal/ingest"
	"visual-prompt-studio/internal/logging"
	"visual-prompt-studio/internal/storage"
	"visual-prompt-studio/internal/task"
)

// env is built once per invocation before any subcommand runs.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
	locale i18n.Locale
	studio *app.Studio

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	quiet  bool
}

func (e *env) init(lang string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.logger = logging.Init(cfg.LogLevel, cfg.Debug)

	if lang == "" {
		lang = cfg.Language
	}
	e.locale = i18n.Resolve(lang)

	kv, err := storage.NewFileStore(storage.Options{
		Path:       cfg.StoragePath,
		QuotaBytes: cfg.StorageQuotaBytes,
		Logger:     &e.logger,
	})
	if err != nil {
		return err
	}

	creds := credentials.New(credentials.Options{
		EnvKey: cfg.GeminiAPIKey,
		KV:     kv,
		Logger: &e.logger,
	})

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
		Logger:     &e.logger,
	})

	gw := gemini.New(gemini.Options{
		Keys:           creds,
		Factory:        gemini.SDKFactory(httpClient, cfg.GeminiBaseURL, cfg.GeminiAPIVersion),
		RequestTimeout: cfg.RequestTimeout,
		RateInterval:   cfg.RateInterval,
		RateBurst:      cfg.RateBurst,
		SuggestionTTL:  cfg.SuggestionCacheTTL,
		Logger:         &e.logger,
	})

	e.studio = app.New(app.Options{
		Gateway:             gw,
		Credentials:         creds,
		KV:                  kv,
		Ingester:            ingest.New(ingest.Options{Logger: &e.logger}),
		Locale:              e.locale,
		GeolocationTimeout:  cfg.GeolocationTimeout,
		OnProgress:          e.showProgress,
		OnTip:               e.showTip,
		OnCredentialMissing: e.promptCredential,
		Logger:              &e.logger,
	})

	e.logger.Debug().
		Str("data_dir", cfg.DataDir).
		Str("locale", string(e.locale)).
		Bool("key_ready", creds.Ready()).
		Msg("studio initialized")
	return nil
}

func (e *env) message(err error) string {
	return app.Message(e.locale, err)
}

func (e *env) text(key i18n.Key) string {
	return i18n.Text(e.locale, key)
}

// withCredential runs fn again once when it failed for lack of a key and
// the prompt hook has since stored one.
func (e *env) withCredential(fn func() error) error {
	err := fn()
	if apperr.Is(err, apperr.CredentialMissing) && e.studio.Ready() {
		return fn()
	}
	return err
}

func (e *env) showProgress(slot task.Slot, v int) {
	if e.quiet || v == 0 {
		return
	}
	fmt.Fprintf(e.errOut, "\r%-18s %3d%%", slot, v)
	if v == 100 {
		fmt.Fprintln(e.errOut)
	}
}

func (e *env) showTip(tip string) {
	if e.quiet || tip == "" {
		return
	}
	fmt.Fprintf(e.errOut, "\n  tip: %s\n", tip)
}

func (e *env) promptCredential() {
	if !interactive(e.in) {
		return
	}
	key, err := e.readKey()
	if err != nil || key == "" {
		return
	}
	if err := e.studio.SaveCredential(key); err != nil {
		fmt.Fprintln(e.errOut, e.message(err))
		return
	}
	fmt.Fprintln(e.errOut, e.text(i18n.MsgCredentialSaved))
}

func (e *env) readKey() (string, error) {
	fmt.Fprintf(e.errOut, "\n%s ", e.text(i18n.MsgEnterCredential))
	line, err := bufio.NewReader(e.in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
