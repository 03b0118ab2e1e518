// Package app wires the smartseek surfaces (the terminal player, the
// options form, the popup and the lifecycle) to one settings store.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/smartseek/internal/controller"
	"github.com/dshills/smartseek/internal/options"
	"github.com/dshills/smartseek/internal/player"
	"github.com/dshills/smartseek/internal/popup"
	"github.com/dshills/smartseek/internal/settings"
	"github.com/dshills/smartseek/internal/storage"
)

// Application holds the configuration, logger and store shared by every
// command.
type Application struct {
	cfg     Config
	logger  *Logger
	version string

	store    storage.Store
	fallback bool
}

// Options configures the application.
type Options struct {
	// Config is the resolved command configuration.
	Config Config
	// Logger receives application logs. Defaults to GetLogger().
	Logger *Logger
	// Version is the running release, recorded by the lifecycle.
	Version string
	// Store, when set, is used instead of opening Config.Store.
	Store storage.Store
}

// New creates an application. Call Open before using it.
func New(opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = GetLogger()
	}
	return &Application{
		cfg:     opts.Config,
		logger:  logger,
		version: opts.Version,
		store:   opts.Store,
	}
}

// Open opens the settings store. A store that cannot be opened is replaced
// by an in-memory one, so Open only fails when ctx is done.
func (a *Application) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.store != nil {
		return nil
	}
	a.store, a.fallback = OpenStoreOrMemory(ctx, a.cfg.Store, a.logger)
	if !a.fallback {
		a.logger.WithComponent("store").Debug("opened settings store", "dsn", a.cfg.Store)
	}
	return nil
}

// Close closes the settings store.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// Store returns the settings store.
func (a *Application) Store() storage.Store {
	return a.store
}

// UsingFallback reports whether settings are held in memory because the
// configured store could not be opened.
func (a *Application) UsingFallback() bool {
	return a.fallback
}

// Logger returns the application's logger.
func (a *Application) Logger() *Logger {
	return a.logger
}

// Lifecycle returns the install/update runner for the store.
func (a *Application) Lifecycle() (*settings.Lifecycle, error) {
	if a.store == nil {
		return nil, ErrNotOpen
	}
	return settings.NewLifecycle(a.store, a.version,
		settings.WithLogger(a.logger.WithComponent("lifecycle"))), nil
}

// Startup runs any pending install or update transition.
func (a *Application) Startup(ctx context.Context) (settings.Result, error) {
	l, err := a.Lifecycle()
	if err != nil {
		return settings.Result{}, err
	}
	res, err := l.Run(ctx)
	if err != nil {
		return res, &OperationError{Op: "lifecycle", Target: res.Reason.String(), Err: err}
	}
	return res, nil
}

// OptionsForm returns the options form loaded from the store. A read
// failure is logged and the form shows the defaults.
func (a *Application) OptionsForm(ctx context.Context) (*options.Form, error) {
	if a.store == nil {
		return nil, ErrNotOpen
	}
	f := options.New(a.store)
	if err := f.Load(ctx); err != nil {
		a.logger.WithComponent("options").Warn("could not load settings", "err", err)
	}
	return f, nil
}

// Popup opens the popup over the store. A read failure is logged and the
// popup shows the defaults.
func (a *Application) Popup(ctx context.Context) (*popup.Popup, error) {
	if a.store == nil {
		return nil, ErrNotOpen
	}
	p, err := popup.Open(ctx, a.store)
	if err != nil {
		a.logger.WithComponent("popup").Warn("could not load settings", "err", err)
	}
	return p, nil
}

// NewPage builds the player page from the configuration. The first video
// starts playing.
func (a *Application) NewPage() (*player.Page, error) {
	videos := make([]*player.Video, 0, len(a.cfg.Player.Videos))
	for _, spec := range a.cfg.Player.Videos {
		name, d, err := ParseVideoSpec(spec, a.cfg.Player.Duration)
		if err != nil {
			return nil, err
		}
		videos = append(videos, player.NewVideo(name, d))
	}
	if len(videos) > 0 {
		videos[0].Play()
	}
	return player.NewPage(videos...), nil
}

// Play runs the terminal player on screen until the user quits or ctx is
// done. Play initializes and finalizes the screen.
func (a *Application) Play(ctx context.Context, screen tcell.Screen) error {
	if a.store == nil {
		return ErrNotOpen
	}

	page, err := a.NewPage()
	if err != nil {
		return err
	}
	osd := player.NewOSD(a.cfg.Player.OSD)
	ctrl := controller.New(page, osd,
		controller.WithLogger(a.logger.WithComponent("controller")))

	// Subscribe before loading so no write falls between the two.
	ctrl.Attach(a.store)
	defer ctrl.Detach()
	if err := ctrl.Load(ctx, a.store); err != nil {
		a.logger.WithComponent("controller").Warn("using default settings", "err", err)
	}

	if err := screen.Init(); err != nil {
		return &OperationError{Op: "init screen", Err: err}
	}
	defer screen.Fini()

	host := player.NewHost(screen, page, ctrl, osd,
		player.WithHostLogger(a.logger.WithComponent("player")))
	return host.Run(ctx)
}

// ParseVideoSpec parses "name" or "name=duration". A missing duration uses
// def.
func ParseVideoSpec(spec string, def time.Duration) (string, time.Duration, error) {
	name, dur, found := strings.Cut(strings.TrimSpace(spec), "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("invalid video %q: missing name", spec)
	}
	if !found {
		return name, def, nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(dur))
	if err != nil {
		return "", 0, fmt.Errorf("invalid video %q: %w", spec, err)
	}
	if d <= 0 {
		return "", 0, fmt.Errorf("invalid video %q: duration must be positive", spec)
	}
	return name, d, nil
}
