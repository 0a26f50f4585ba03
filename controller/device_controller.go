package controller

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"sense-logger/models"
	"sense-logger/services/hardware"
	"sense-logger/utils"
	"sense-logger/views"
)

// DeviceController runs the single polling loop. Each iteration drains
// pending joystick events and then takes a sample if one is due. Everything
// the loop touches is owned by it, so nothing here is locked.
type DeviceController struct {
	cfg   *utils.Config
	hw    hardware.Hardware
	clk   clock.Clock
	state *DeviceState
	disp  *display

	recorder *RecordingController
	input    *InputController
	sensors  *SensorsController

	polls uint64
}

// NewDeviceController assembles the controllers around hw. A nil clk means
// the wall clock.
func NewDeviceController(cfg *utils.Config, hw hardware.Hardware, clk clock.Clock) *DeviceController {
	if clk == nil {
		clk = clock.New()
	}
	mode := models.DisplayNormal
	if cfg.Display.LowLight {
		mode = models.DisplayLowLight
	}
	state := NewDeviceState(mode)
	disp := &display{hw: hw, state: state, clk: clk}
	recorder := NewRecordingController(cfg.Storage, state)

	return &DeviceController{
		cfg:      cfg,
		hw:       hw,
		clk:      clk,
		state:    state,
		disp:     disp,
		recorder: recorder,
		input:    NewInputController(cfg, hw, state, recorder, disp),
		sensors:  NewSensorsController(hw, recorder, disp, utils.Millis(cfg.Sampling.IntervalMs)),
	}
}

// Start applies the display mode and shows the startup splash.
func (dc *DeviceController) Start(ctx context.Context) {
	if err := dc.hw.SetLowLight(dc.state.Mode.LowLight()); err != nil {
		utils.L().Warn("set low light: %v", err)
	}
	dc.disp.text(ctx, "Ready!", views.TextColour, views.ReadyBackground)
	dc.disp.hold(views.Ready, utils.Millis(dc.cfg.Display.SplashMs), views.Blank)
	utils.L().Info("device ready  mode=%s  interval=%dms", dc.state.Mode, dc.cfg.Sampling.IntervalMs)
}

// Step runs one loop iteration and reports whether the device halted.
func (dc *DeviceController) Step(ctx context.Context) bool {
	dc.polls++
	for i := 0; i < dc.cfg.Input.MaxEventsPerPoll; i++ {
		ev, ok, err := dc.hw.PollJoystick()
		if err != nil {
			utils.L().Warn("poll joystick: %v", err)
			break
		}
		if !ok {
			break
		}
		if dc.input.Dispatch(ctx, ev) {
			return true
		}
	}

	now := dc.clk.Now()
	if dc.sensors.Due(now) {
		if err := dc.sensors.Sample(ctx, now); err != nil {
			utils.L().Error("%v", err)
		}
	}
	return false
}

// Run shows the splash and loops until the device halts or ctx is done. On
// cancellation an open session is finalized.
func (dc *DeviceController) Run(ctx context.Context) error {
	dc.Start(ctx)

	poll := dc.clk.Ticker(utils.Millis(dc.cfg.Sampling.PollIntervalMs))
	defer poll.Stop()

	var statsC <-chan time.Time
	if every := dc.cfg.Sampling.StatsEverySec; every > 0 {
		stats := dc.clk.Ticker(time.Duration(every) * time.Second)
		defer stats.Stop()
		statsC = stats.C
	}

	for {
		select {
		case <-ctx.Done():
			utils.L().Info("stopping: %v", ctx.Err())
			dc.Stop()
			return nil
		case <-statsC:
			dc.LogStats()
		case <-poll.C:
			if dc.Step(ctx) {
				utils.L().Info("device halted")
				return nil
			}
		}
	}
}

// Stop finalizes an open session and clears the matrix.
func (dc *DeviceController) Stop() {
	if path, stopped, err := dc.recorder.Stop(); stopped {
		if err != nil {
			utils.L().Error("finalize on exit, file left at %s: %v", path, err)
		} else {
			utils.L().Info("session saved to %s", path)
		}
	}
	dc.disp.show(views.Blank)
}

// State exposes the device state.
func (dc *DeviceController) State() *DeviceState { return dc.state }

// LogStats prints all loop counters.
func (dc *DeviceController) LogStats() {
	utils.L().Info("── stats ─────────────────────────")
	utils.L().Info("  loop     polls=%d  mode=%s", dc.polls, dc.state.Mode)
	dc.sensors.LogStats()
	dc.input.LogStats()
	dc.recorder.LogStats()
	utils.L().Info("──────────────────────────────────")
}
