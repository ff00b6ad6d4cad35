package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/keytune/keytune/internal/albumskip"
	"github.com/keytune/keytune/internal/applescript"
	"github.com/keytune/keytune/internal/artwork"
	"github.com/keytune/keytune/internal/config"
	"github.com/keytune/keytune/internal/control"
	"github.com/keytune/keytune/internal/daemon"
	"github.com/keytune/keytune/internal/domain"
	"github.com/keytune/keytune/internal/fetcher"
	"github.com/keytune/keytune/internal/hotkeys"
	"github.com/keytune/keytune/internal/mpris"
	"github.com/keytune/keytune/internal/notify"
	"github.com/keytune/keytune/internal/trigger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the keytune daemon",
	Long: `Starts the daemon: connects to the configured player backend, opens
the trigger socket and serves commands until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon() error {
	app := fx.New(Options(cfg))

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}

	// Wait for interrupt signal
	<-ctx.Done()

	return app.Stop(context.Background())
}

// Options assembles the daemon's dependency graph from a loaded
// configuration.
func Options(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			config.NewSettings,
			newBindings,
			newBackend,
			newNotifier,
			newScheduler,
			newFetcher,
			newIconResolver,
			albumskip.New,
			control.NewVolumeController,
			control.NewDispatcher,
			newTriggerServer,
			daemon.New,
		),
		fx.Invoke(registerHooks),
	)
}

// newLogger creates the zap logger at the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newBindings(cfg *config.Config) (hotkeys.Bindings, error) {
	return hotkeys.FromConfig(cfg.Bindings)
}

// newBackend selects the player backend. "auto" prefers MPRIS and falls
// back to osascript, so one config works across desktops.
func newBackend(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (domain.Backend, error) {
	switch cfg.Player.Backend {
	case "mpris":
		return newMPRISBackend(lc, cfg, logger)
	case "applescript":
		return newAppleScriptBackend(cfg, logger)
	case "auto":
		b, err := newMPRISBackend(lc, cfg, logger)
		if err == nil {
			return b, nil
		}
		logger.Debug("MPRIS unavailable, trying osascript", zap.Error(err))
		if applescript.Available() {
			return newAppleScriptBackend(cfg, logger)
		}
		return nil, errors.New("no player control available: no session bus and no osascript in PATH")
	}
	return nil, fmt.Errorf("unknown player backend: %s", cfg.Player.Backend)
}

func newMPRISBackend(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (domain.Backend, error) {
	client, err := mpris.NewStdBusClient()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	logger.Info("Player backend selected",
		zap.String("backend", "mpris"),
		zap.String("player", cfg.Player.Name))
	return mpris.New(client, cfg.Player.Name, logger), nil
}

func newAppleScriptBackend(cfg *config.Config, logger *zap.Logger) (domain.Backend, error) {
	if !applescript.Available() {
		return nil, errors.New("osascript not found in PATH")
	}

	logger.Info("Player backend selected",
		zap.String("backend", "applescript"),
		zap.String("player", cfg.Player.Name))
	return applescript.New(applescript.NewOSARunner(logger), cfg.Player.Name, logger), nil
}

func newNotifier(cfg *config.Config, logger *zap.Logger) (domain.Notifier, error) {
	return notify.New(cfg.Alerts.Backend, logger)
}

func newScheduler() domain.Scheduler {
	return albumskip.TimerScheduler{}
}

func newFetcher(logger *zap.Logger) domain.Fetcher {
	return fetcher.NewHTTPFetcher(logger)
}

// newIconResolver wires notification icons to the artwork cache. A nil
// resolver means notifications carry no icon.
func newIconResolver(cfg *config.Config, f domain.Fetcher, logger *zap.Logger) control.IconResolver {
	if cfg.Artwork.Enabled != nil && !*cfg.Artwork.Enabled {
		logger.Info("Artwork thumbnails disabled")
		return nil
	}
	return artwork.NewCache(f, cfg.Artwork.ResolveCacheDir(), logger)
}

func newTriggerServer(cfg *config.Config, dispatcher *control.Dispatcher, logger *zap.Logger) *trigger.Server {
	return trigger.NewServer(dispatcher, cfg.Socket.ResolvePath(), logger)
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, d *daemon.Daemon) {
	lc.Append(fx.Hook{
		OnStart: d.Start,
		OnStop:  d.Stop,
	})
}
