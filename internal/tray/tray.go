// Package tray provides the optional system tray icon: a pause toggle for
// translation and a quit entry. It is a thin shell around fyne.io/systray;
// all state lives in the simulator.
package tray

import (
	"context"
	_ "embed"

	"fyne.io/systray"
)

//go:embed icon.png
var iconData []byte

// Options are the callbacks the tray invokes. Both are called from the tray
// event goroutine.
type Options struct {
	// OnPause is invoked with the new paused state when the toggle is
	// clicked.
	OnPause func(paused bool)
	// OnQuit is invoked when Quit is clicked. The tray loop exits afterward.
	OnQuit func()
}

// Run blocks running the tray event loop until Quit is clicked or ctx is
// cancelled. It must be called from the goroutine the platform expects to own
// UI event handling (in practice: the command's goroutine).
func Run(ctx context.Context, opts Options) {
	systray.Run(func() { onReady(ctx, opts) }, nil)
}

func onReady(ctx context.Context, opts Options) {
	systray.SetIcon(iconData)
	systray.SetTitle("gipsim")
	systray.SetTooltip("Controller to keyboard/mouse translation")

	pause := systray.AddMenuItemCheckbox("Pause translation", "Suspend key and pointer injection", false)
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Exit gipsim")

	go func() {
		for {
			select {
			case <-ctx.Done():
				systray.Quit()
				return
			case <-pause.ClickedCh:
				if pause.Checked() {
					pause.Uncheck()
					opts.OnPause(false)
				} else {
					pause.Check()
					opts.OnPause(true)
				}
			case <-quit.ClickedCh:
				if opts.OnQuit != nil {
					opts.OnQuit()
				}
				systray.Quit()
				return
			}
		}
	}()
}
