package controller

import (
	"context"
	"image/color"
	"time"

	"github.com/benbjohnson/clock"

	"sense-logger/models"
	"sense-logger/services/hardware"
	"sense-logger/utils"
)

// display puts images and text on the matrix and keeps DeviceState.Shown in
// sync. Display failures are logged and otherwise ignored.
type display struct {
	hw    hardware.Hardware
	state *DeviceState
	clk   clock.Clock
}

func (d *display) show(img models.Image) {
	d.state.Shown = img
	if err := d.hw.ShowImage(img); err != nil {
		utils.L().Warn("show image: %v", err)
	}
}

// hold shows img for dur, then `then`.
func (d *display) hold(img models.Image, dur time.Duration, then models.Image) {
	d.show(img)
	if dur > 0 {
		d.clk.Sleep(dur)
	}
	d.show(then)
}

// text scrolls msg and puts the previous image back afterwards.
func (d *display) text(ctx context.Context, msg string, fg, bg color.RGBA) {
	if err := d.hw.ShowText(ctx, msg, fg, bg); err != nil {
		utils.L().Warn("show text %q: %v", msg, err)
	}
	d.restore()
}

func (d *display) restore() {
	if err := d.hw.ShowImage(d.state.Shown); err != nil {
		utils.L().Warn("restore image: %v", err)
	}
}
