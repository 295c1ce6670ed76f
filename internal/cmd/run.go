package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ncruces/zenity"

	"gipsim/internal/configpaths"
	"gipsim/internal/gip"
	"gipsim/internal/log"
	"gipsim/internal/simulator"
	"gipsim/internal/sink"
	"gipsim/internal/translate"
	"gipsim/internal/tray"
	"gipsim/internal/usbdev"
	"gipsim/pkg/mapping"
)

// Run translates controller input into keyboard and mouse events until
// interrupted or the controller disappears.
type Run struct {
	MappingFile string `help:"Controller mapping file (TOML)" env:"GIPSIM_MAPPING" type:"path"`
	DryRun      bool   `help:"Translate but discard events instead of injecting them"`
	Tray        bool   `help:"Show a system tray icon with pause/quit controls" env:"GIPSIM_TRAY"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := r.loadMapping(logger)
	if err != nil {
		return err
	}

	eventSink, closeSink, err := r.buildSink(logger, cfg.StreamingMode)
	if err != nil {
		return err
	}
	defer closeSink()

	logger.Info("looking for controller")
	dev, err := usbdev.Open(logger)
	if err != nil {
		if r.Tray {
			_ = zenity.Error("No compatible Xbox controller found. Plug it in and try again.",
				zenity.Title("gipsim"))
		}
		return err
	}
	defer dev.Close()
	logger.Info("controller found")

	hs := gip.NewHandshake(dev, logger, rawLogger)
	if err := hs.Run(); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	logger.Info("controller initialized",
		"left-stick", cfg.Sticks.LeftMode, "right-stick", cfg.Sticks.RightMode,
		"left-trigger", cfg.Triggers.LeftMode, "right-trigger", cfg.Triggers.RightMode,
		"deadzone", cfg.Sticks.Deadzone)

	sim := simulator.New(dev, translate.New(cfg, eventSink), logger, rawLogger)

	if r.Tray {
		return r.runWithTray(ctx, stop, sim, logger)
	}

	return sim.Run(ctx)
}

func (r *Run) loadMapping(logger *slog.Logger) (mapping.Mapping, error) {
	path := r.MappingFile
	if path == "" {
		p, err := configpaths.DefaultMappingPath()
		if err != nil {
			return mapping.Mapping{}, fmt.Errorf("resolve mapping path: %w", err)
		}
		path = p
	}
	cfg, err := mapping.Load(path)
	if err != nil {
		return mapping.Mapping{}, err
	}
	logger.Debug("mapping loaded", "path", path)
	return cfg, nil
}

func (r *Run) buildSink(logger *slog.Logger, streaming bool) (translate.Sink, func(), error) {
	if r.DryRun {
		logger.Info("dry run: events are logged, not injected")
		return sink.Debug(sink.Null(), logger), func() {}, nil
	}
	ui, err := sink.NewUinput(logger, streaming)
	if err != nil {
		return nil, nil, fmt.Errorf("create event sink: %w", err)
	}
	return ui, func() { _ = ui.Close() }, nil
}

// runWithTray keeps the read loop on a worker goroutine while the tray event
// loop occupies this one, as the tray library expects.
func (r *Run) runWithTray(ctx context.Context, stop context.CancelFunc, sim *simulator.Simulator, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- sim.Run(ctx)
		stop()
	}()

	tray.Run(ctx, tray.Options{
		OnPause: sim.SetPaused,
		OnQuit:  stop,
	})

	err := <-errCh
	if errors.Is(err, simulator.ErrDeviceLost) {
		_ = zenity.Error("Controller disconnected.", zenity.Title("gipsim"))
	}
	return err
}
