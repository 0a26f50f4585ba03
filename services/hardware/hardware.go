// Package hardware is the facade over the Sense HAT: environmental and
// inertial sensors, the 8x8 LED matrix, the 5-way joystick, plus the two
// host services the logger needs (network address lookup and power-off).
package hardware

import (
	"context"
	"image/color"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"sense-logger/models"
	"sense-logger/utils"
)

// ErrUnavailable marks a device that could not be opened or read.
var ErrUnavailable = errors.New("hardware unavailable")

// Hardware is the capability set the controllers drive.
type Hardware interface {
	// ReadSensors takes one reading from every sensor.
	ReadSensors(ctx context.Context) (models.Readings, error)
	// PollJoystick returns the next pending joystick event without blocking.
	// ok is false when nothing is pending.
	PollJoystick() (ev models.StickEvent, ok bool, err error)
	// ShowText scrolls text across the matrix and returns once it has left
	// the screen.
	ShowText(ctx context.Context, text string, fg, bg color.RGBA) error
	// ShowImage replaces the whole matrix.
	ShowImage(img models.Image) error
	// SetLowLight dims or restores the matrix.
	SetLowLight(on bool) error
	// IPAddress returns the IPv4 address of the named interface.
	IPAddress(iface string) (string, error)
	// Shutdown powers the device off.
	Shutdown(ctx context.Context) error
	Close() error
}

// Options configures either implementation.
type Options struct {
	Config          utils.HardwareConfig
	ScrollStep      time.Duration
	ShutdownCommand []string
	Clock           clock.Clock
}

func (o *Options) clock() clock.Clock {
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return o.Clock
}

// scroll shows frames one after another, pausing step between them.
func scroll(ctx context.Context, clk clock.Clock, step time.Duration, frames []models.Image, show func(models.Image) error) error {
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := show(f); err != nil {
			return err
		}
		if step > 0 {
			clk.Sleep(step)
		}
	}
	return nil
}
