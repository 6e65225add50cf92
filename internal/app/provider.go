package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/weareopensource/waos-go/internal/domain/user"
	"github.com/weareopensource/waos-go/internal/infrastructure/config"
	"github.com/weareopensource/waos-go/internal/infrastructure/logging"
	"github.com/weareopensource/waos-go/internal/infrastructure/monitoring"
	"github.com/weareopensource/waos-go/internal/infrastructure/tracing"
	"github.com/weareopensource/waos-go/internal/providers/api"
	"github.com/weareopensource/waos-go/internal/providers/preferences"
	"github.com/weareopensource/waos-go/internal/screens/forgot"
	"github.com/weareopensource/waos-go/internal/screens/more"
	"github.com/weareopensource/waos-go/internal/screens/page"
	"github.com/weareopensource/waos-go/internal/screens/preference"
	"github.com/weareopensource/waos-go/internal/screens/screen"
	"github.com/weareopensource/waos-go/internal/screens/signin"
	"github.com/weareopensource/waos-go/internal/screens/signup"
	"github.com/weareopensource/waos-go/internal/screens/tasks"
	"github.com/weareopensource/waos-go/internal/screens/userview"
	"github.com/weareopensource/waos-go/internal/shared/failure"
	"github.com/weareopensource/waos-go/internal/shared/markdown"
)

// Provider holds the application services and builds screens
type Provider struct {
	Config   *config.Config
	Logger   *logging.Logger
	Registry *prometheus.Registry
	Metrics  *monitoring.Metrics
	Tracer   *tracing.Tracer
	API      *api.Client
	Prefs    preferences.Store
	Theme    *config.Theme
	Renderer *markdown.Renderer
	Policy   *failure.Policy
	Screens  *Manager
}

// New creates the provider for cfg. A nil cfg uses the default configuration.
func New(cfg *config.Config) (*Provider, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Development = cfg.Logging.Development
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	theme, err := config.LoadTheme(cfg.Pages.ThemeFile)
	if err != nil {
		return nil, err
	}

	var prefs preferences.Store
	if cfg.Preferences.Path != "" {
		bolt, err := preferences.OpenBolt(cfg.Preferences.Path)
		if err != nil {
			return nil, err
		}
		prefs = bolt
	} else {
		prefs = preferences.NewMemory()
	}

	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)
	tracer := tracing.New("waos-client", logger.Component("tracing").Logger)

	client := api.NewClient(api.Config{
		BaseURL:           cfg.API.URL,
		Timeout:           cfg.API.Timeout,
		Retries:           cfg.API.Retries,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	}, api.WithMetrics(metrics), api.WithTracer(tracer), api.WithLogger(logger.Component("api")))

	policy := failure.NewPolicy(prefs,
		failure.WithRecorder(metrics),
		failure.WithLogger(logger.Component("failure")),
	)

	logger.Info("application ready",
		zap.String("api", cfg.API.URL),
		zap.Bool("persistent_preferences", cfg.Preferences.Path != ""),
		zap.Bool("logged", prefs.IsLogged()),
	)

	return &Provider{
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Metrics:  metrics,
		Tracer:   tracer,
		API:      client,
		Prefs:    prefs,
		Theme:    theme,
		Renderer: markdown.NewRenderer(),
		Policy:   policy,
		Screens:  NewManager(),
	}, nil
}

// Env returns the environment screens are built with
func (p *Provider) Env() screen.Env {
	return screen.Env{
		Policy:   p.Policy,
		Logger:   p.Logger,
		Recorder: p.Metrics,
	}
}

// SignIn opens the sign-in screen
func (p *Provider) SignIn() *signin.Reactor {
	return track(p, signin.New(p.Env(), p.API, p.Prefs))
}

// SignUp opens the sign-up screen
func (p *Provider) SignUp() *signup.Reactor {
	return track(p, signup.New(p.Env(), p.API, p.Prefs))
}

// Forgot opens the password reset screen prefilled with email
func (p *Provider) Forgot(email string) *forgot.Reactor {
	return track(p, forgot.New(p.Env(), p.API, email))
}

// UserView opens the profile screen for u
func (p *Provider) UserView(u user.User) *userview.Reactor {
	return track(p, userview.New(p.Env(), p.API, u))
}

// Preference opens the preferences screen
func (p *Provider) Preference() *preference.Reactor {
	return track(p, preference.New(p.Env(), p.Prefs))
}

// More opens the "more" menu
func (p *Provider) More() *more.Reactor {
	return track(p, more.New(p.Env()))
}

// Tasks opens the task list
func (p *Provider) Tasks() *tasks.Reactor {
	return track(p, tasks.New(p.Env(), p.API))
}

// Page opens a markdown page, stripping links unless links is set. Names that
// are not absolute URLs are resolved against the pages base URL.
func (p *Provider) Page(name string, links bool) *page.Reactor {
	return p.page(name, links)
}

// Changelog opens the changelog page with links stripped
func (p *Provider) Changelog() *page.Reactor {
	return p.page(p.Config.Pages.Changelog, false)
}

// PageOptions returns the rendering options of pages
func (p *Provider) PageOptions(links bool) markdown.Options {
	return markdown.Options{
		Style:      markdown.ParseStyle(p.Config.Pages.Style),
		Links:      links,
		Head:       true,
		Background: p.Theme.Palette(p.Config.Pages.Theme).Background,
	}
}

// PageURL resolves a page name
func (p *Provider) PageURL(name string) string {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return name
	}
	return strings.TrimSuffix(p.Config.Pages.BaseURL, "/") + "/" + strings.TrimPrefix(name, "/")
}

// Close disposes every screen and releases the services
func (p *Provider) Close() error {
	closed := p.Screens.CloseAll()
	p.Logger.Debug("screens closed", zap.Int("count", closed))

	p.Tracer.Close()

	var errs []error
	if err := p.Prefs.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close preferences: %w", err))
	}
	// stderr sync fails on some platforms; nothing to recover
	_ = p.Logger.Sync()
	return errors.Join(errs...)
}

func (p *Provider) page(name string, links bool) *page.Reactor {
	url := p.PageURL(name)
	return track(p, page.New(p.Env(), p.API, p.Renderer, url, p.PageOptions(links)))
}

func track[R Screen](p *Provider, r R) R {
	p.Screens.Track(r)
	return r
}
