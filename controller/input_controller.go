package controller

import (
	"context"
	"time"

	"sense-logger/models"
	"sense-logger/services/hardware"
	"sense-logger/utils"
	"sense-logger/views"
)

// InputController maps joystick presses to device actions:
//
//	UP      toggle low-light mode
//	DOWN    shut the device down
//	MIDDLE  scroll the IP address, then restore the display
//	LEFT    start a recording session
//	RIGHT   finalize the recording session
//
// Releases and holds are ignored.
type InputController struct {
	hw       hardware.Hardware
	state    *DeviceState
	recorder *RecordingController
	disp     *display

	iface      string
	confirm    bool
	loggedHold time.Duration
	handled    uint64
	ignored    uint64
}

// NewInputController wires a dispatcher to the shared device state.
func NewInputController(cfg *utils.Config, hw hardware.Hardware, state *DeviceState,
	recorder *RecordingController, disp *display,
) *InputController {
	return &InputController{
		hw:         hw,
		state:      state,
		recorder:   recorder,
		disp:       disp,
		iface:      cfg.Network.Interface,
		confirm:    cfg.Shutdown.Confirm,
		loggedHold: utils.Millis(cfg.Display.LoggedHoldMs),
	}
}

// Dispatch handles one joystick event. It returns true once the device has
// been halted and the loop should stop.
func (ic *InputController) Dispatch(ctx context.Context, ev models.StickEvent) bool {
	if ev.Action != models.ActionPressed {
		ic.ignored++
		return false
	}
	ic.handled++
	utils.L().Debug("joystick %s", ev.Direction)

	if ic.state.ShutdownArmed {
		return ic.confirmShutdown(ctx, ev.Direction)
	}

	switch ev.Direction {
	case models.DirectionUp:
		ic.toggleLowLight()
	case models.DirectionDown:
		if ic.confirm {
			ic.state.ShutdownArmed = true
			ic.disp.show(views.AreYouSure)
			return false
		}
		return ic.shutdown(ctx)
	case models.DirectionMiddle:
		ic.showIP(ctx)
	case models.DirectionLeft:
		ic.startRecording()
	case models.DirectionRight:
		ic.stopRecording()
	default:
		ic.ignored++
	}
	return false
}

// confirmShutdown resolves an armed shutdown: UP confirms, DOWN cancels.
// Other directions are ignored.
func (ic *InputController) confirmShutdown(ctx context.Context, dir models.Direction) bool {
	switch dir {
	case models.DirectionUp:
		ic.state.ShutdownArmed = false
		return ic.shutdown(ctx)
	case models.DirectionDown:
		ic.state.ShutdownArmed = false
		utils.L().Info("shutdown cancelled")
		if ic.recorder.Recording() {
			ic.disp.show(views.Recording)
		} else {
			ic.disp.show(views.Blank)
		}
	default:
		ic.ignored++
	}
	return false
}

func (ic *InputController) toggleLowLight() {
	mode := ic.state.Mode.Toggled()
	if err := ic.hw.SetLowLight(mode.LowLight()); err != nil {
		utils.L().Warn("set low light: %v", err)
		return
	}
	ic.state.Mode = mode
	utils.L().Info("display mode %s", mode)
}

func (ic *InputController) showIP(ctx context.Context) {
	msg := "No IP"
	ip, err := ic.hw.IPAddress(ic.iface)
	if err != nil {
		utils.L().Warn("ip address of %s: %v", ic.iface, err)
	} else {
		msg = "IP: " + ip
	}
	ic.disp.text(ctx, msg, views.TextColour, views.NoBackground)
}

func (ic *InputController) startRecording() {
	started, err := ic.recorder.Start(ic.disp.clk.Now())
	if err != nil {
		utils.L().Error("start recording: %v", err)
		ic.disp.show(views.Failed)
		return
	}
	if started {
		ic.disp.show(views.Recording)
	}
}

func (ic *InputController) stopRecording() {
	path, stopped, err := ic.recorder.Stop()
	if !stopped {
		return
	}
	if err != nil {
		utils.L().Error("finalize recording, file left at %s: %v", path, err)
		ic.disp.show(views.Failed)
		return
	}
	ic.disp.hold(views.Logged, ic.loggedHold, views.Blank)
}

// shutdown finalizes any open session, then powers the device off. The
// device counts as halted even if the power-off command fails.
func (ic *InputController) shutdown(ctx context.Context) bool {
	utils.L().Warn("shutdown requested")
	ic.disp.text(ctx, "Shutting down", views.TextColour, views.HaltBackground)

	if path, stopped, err := ic.recorder.Stop(); stopped && err != nil {
		utils.L().Error("finalize before shutdown, file left at %s: %v", path, err)
	}
	ic.disp.show(views.Blank)

	ic.state.Halted = true
	if err := ic.hw.Shutdown(ctx); err != nil {
		utils.L().Error("shutdown: %v", err)
	}
	return true
}

// LogStats prints event counters.
func (ic *InputController) LogStats() {
	utils.L().Info("  joystick handled=%d  ignored=%d", ic.handled, ic.ignored)
}
