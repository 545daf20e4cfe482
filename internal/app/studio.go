package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"visual-prompt-studio/internal/apperr"
	"visual-prompt-studio/internal/credentials"
	"visual-prompt-studio/internal/gemini"
	"visual-prompt-studio/internal/history"
	"visual-prompt-studio/internal/i18n"
	"visual-prompt-studio/internal/ingest"
	"visual-prompt-studio/internal/media"
	"visual-prompt-studio/internal/preset"
	"visual-prompt-studio/internal/storage"
	"visual-prompt-studio/internal/task"
)

// Gateway is the AI service surface the studio drives. *gemini.Client
// implements it.
type Gateway interface {
	EnhancePrompt(ctx context.Context, raw string, model gemini.ImageModel, length gemini.PromptLength, images []media.ReferenceImage) (string, error)
	GenerateImage(ctx context.Context, prompt string, images []media.ReferenceImage) (string, error)
	GetSuggestions(ctx context.Context, prompt string, locale i18n.Locale, images []media.ReferenceImage) ([]string, error)
	AnalyzeDefects(ctx context.Context, image media.ReferenceImage) ([]media.IssueTag, error)
	SynthesizeRetouchPrompt(ctx context.Context, image media.ReferenceImage) (gemini.RetouchPlan, error)
	DescribeHairstyle(ctx context.Context, image media.ReferenceImage) (string, error)
	DeconstructToStructuredPrompt(ctx context.Context, image media.ReferenceImage, locale i18n.Locale) (string, error)
	LookupWeather(ctx context.Context, lat, lon float64) (gemini.Weather, error)
	Reset()
}

var ErrNoImage = errors.New("no image to analyze")

type Mode string

const (
	ModePro    Mode = "pro"
	ModePreset Mode = "preset"
)

// Workspace is the free-form (pro mode) state plus the current result.
type Workspace struct {
	Mode           Mode
	OriginalPrompt string
	EnhancedPrompt string
	TargetModel    gemini.ImageModel
	Length         gemini.PromptLength
	Images         []media.ReferenceImage
	Suggestions    []string

	Generated      *media.GeneratedImage
	FinalPrompt    string
	GenerationTime time.Duration
}

func (w Workspace) clone() Workspace {
	out := w
	out.Images = append([]media.ReferenceImage(nil), w.Images...)
	out.Suggestions = append([]string(nil), w.Suggestions...)
	if w.Generated != nil {
		g := *w.Generated
		out.Generated = &g
	}
	return out
}

type Options struct {
	Gateway     Gateway
	Credentials *credentials.Store
	KV          storage.KV
	Ingester    *ingest.Ingester
	Locale      i18n.Locale

	GeolocationTimeout time.Duration
	ProgressResetDelay time.Duration

	OnProgress func(task.Slot, int)
	OnTip      func(string)
	// OnCredentialMissing runs whenever an operation fails for lack of a
	// usable API key.
	OnCredentialMissing func()

	Now    func() time.Time
	Logger *zerolog.Logger
}

type Studio struct {
	gw      Gateway
	creds   *credentials.Store
	kv      storage.KV
	ingest  *ingest.Ingester
	history *history.Store
	presets *preset.Store
	runner  *task.Runner
	tips    *task.Tips

	geoTimeout    time.Duration
	onCredMissing func()
	now           func() time.Time
	logger        zerolog.Logger

	mu     sync.Mutex
	ws     Workspace
	locale i18n.Locale
}

func New(opts Options) *Studio {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	geoTimeout := opts.GeolocationTimeout
	if geoTimeout <= 0 {
		geoTimeout = 10 * time.Second
	}
	locale := opts.Locale
	if locale == "" {
		locale = i18n.English
	}
	in := opts.Ingester
	if in == nil {
		in = ingest.New(ingest.Options{Logger: opts.Logger})
	}

	s := &Studio{
		gw:            opts.Gateway,
		creds:         opts.Credentials,
		kv:            opts.KV,
		ingest:        in,
		presets:       preset.NewStore(),
		geoTimeout:    geoTimeout,
		onCredMissing: opts.OnCredentialMissing,
		now:           now,
		logger:        logger.With().Str("component", "studio").Logger(),
		locale:        locale,
		ws: Workspace{
			Mode:        ModePreset,
			TargetModel: gemini.Imagen4,
			Length:      gemini.Medium,
		},
	}

	var initial []history.Item
	var persister *history.Persister
	if opts.KV != nil {
		persister = history.NewPersister(history.PersisterOptions{KV: opts.KV, Logger: opts.Logger})
		initial = persister.Load()
	}
	s.history = history.NewStore(history.Options{
		Initial: initial,
		Now:     now,
		OnChange: func(items []history.Item) {
			if persister == nil {
				return
			}
			if _, err := persister.Persist(items); err != nil {
				s.logger.Error().Err(err).Msg("history not persisted")
			}
		},
	})

	s.tips = task.NewTips(task.TipsOptions{
		Pool:     func() []string { return i18n.Tips(s.Locale()) },
		OnChange: opts.OnTip,
	})
	s.runner = task.New(task.Options{
		Tips:       s.tips,
		OnProgress: opts.OnProgress,
		OnError:    s.handleError,
		ResetDelay: opts.ProgressResetDelay,
		Logger:     opts.Logger,
	})

	if s.creds != nil && s.gw != nil {
		s.creds.OnChange(s.gw.Reset)
	}
	return s
}

func (s *Studio) handleError(slot task.Slot, err error) {
	if apperr.Classify(err) == apperr.CredentialMissing && s.onCredMissing != nil {
		s.logger.Info().Str("slot", string(slot)).Msg("credential missing, requesting key")
		s.onCredMissing()
	}
}

// Ready reports whether an API key is available.
func (s *Studio) Ready() bool {
	return s.creds != nil && s.creds.Ready()
}

// SaveCredential persists key. The gateway drops its client through the
// credential store's change hook.
func (s *Studio) SaveCredential(key string) error {
	if s.creds == nil {
		return apperr.New(apperr.Unknown, "studio.SaveCredential", "no credential store")
	}
	return s.creds.Save(key)
}

func (s *Studio) Locale() i18n.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

func (s *Studio) Workspace() Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.clone()
}

func (s *Studio) updateWorkspace(fn func(*Workspace)) Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.ws)
	return s.ws.clone()
}

func (s *Studio) Presets() *preset.Store { return s.presets }

func (s *Studio) History() *history.Store { return s.history }

// Message renders err for the user in the current locale.
func (s *Studio) Message(err error) string {
	return Message(s.Locale(), err)
}

func Message(l i18n.Locale, err error) string {
	if err == nil {
		return ""
	}
	switch apperr.Classify(err) {
	case apperr.CredentialMissing:
		return i18n.Text(l, i18n.MsgCredentialMissing)
	case apperr.ContentRejected:
		return i18n.Text(l, i18n.MsgContentRejected)
	case apperr.Timeout:
		return i18n.Text(l, i18n.MsgTimeout)
	case apperr.Busy:
		return i18n.Text(l, i18n.MsgBusy)
	case apperr.UnsupportedFormat:
		return i18n.Text(l, i18n.MsgInvalidFileType)
	case apperr.ConversionFailed:
		return i18n.Text(l, i18n.MsgHeicConversion)
	case apperr.ReadFailed:
		return i18n.Text(l, i18n.MsgImageProcessing)
	case apperr.MalformedResponse:
		return i18n.Text(l, i18n.MsgMalformedResponse)
	case apperr.ValidationFailed:
		for sentinel, key := range validationMessages {
			if errors.Is(err, sentinel) {
				return i18n.Text(l, key)
			}
		}
	}
	return err.Error()
}

var validationMessages = map[error]i18n.Key{
	preset.ErrSelectPose:      i18n.MsgSelectPose,
	preset.ErrDescribeMockup:  i18n.MsgDescribeMockup,
	preset.ErrNotReady:        i18n.MsgPresetNotReady,
	preset.ErrPromptRequired:  i18n.MsgPromptRequired,
	preset.ErrPromptOrImage:   i18n.MsgPromptOrImage,
	preset.ErrNothingToRefine: i18n.MsgNothingToRefine,
	ErrNoImage:                i18n.MsgNoImageForAnalysis,
}
