package hardware

import (
	"context"
	"path/filepath"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/viamrobotics/evdev"

	"sense-logger/models"
)

const senseStickName = "Raspberry Pi Sense HAT Joystick"

var keyDirections = map[evdev.KeyType]models.Direction{
	evdev.KeyEnter: models.DirectionMiddle,
	evdev.KeyUp:    models.DirectionUp,
	evdev.KeyDown:  models.DirectionDown,
	evdev.KeyLeft:  models.DirectionLeft,
	evdev.KeyRight: models.DirectionRight,
}

// Joystick delivers key events of the stick's evdev node without blocking
// the caller. Events are read by the evdev poller until ctx is done.
type Joystick struct {
	dev    *evdev.Evdev
	clk    clock.Clock
	events <-chan *evdev.EventEnvelope
}

// FindJoystick returns the /dev/input/eventN node of the Sense HAT stick.
func FindJoystick(sysfs string) (string, error) {
	return findDevice(filepath.Join(sysfs, "class", "input", "event*", "device", "name"), senseStickName, func(match string) string {
		return "/dev/input/" + filepath.Base(filepath.Dir(filepath.Dir(match)))
	})
}

// OpenJoystick opens the evdev node at path and starts polling it.
func OpenJoystick(ctx context.Context, path string, clk clock.Clock) (*Joystick, error) {
	dev, err := evdev.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "open joystick %s: %v", path, err)
	}
	return &Joystick{dev: dev, clk: clk, events: dev.Poll(ctx)}, nil
}

// stickEvent turns an evdev event into a StickEvent. ok is false for
// anything but a key event on one of the five stick keys.
func stickEvent(ev *evdev.EventEnvelope) (models.StickEvent, bool) {
	var out models.StickEvent
	if ev == nil || ev.Event.Type != evdev.EventKey {
		return out, false
	}
	dir, known := keyDirections[evdev.KeyType(ev.Event.Code)]
	if !known {
		return out, false
	}
	out.Direction = dir
	switch ev.Event.Value {
	case 0:
		out.Action = models.ActionReleased
	case 1:
		out.Action = models.ActionPressed
	default:
		out.Action = models.ActionHeld
	}
	return out, true
}

// Poll returns the next pending key event, skipping sync and unknown events.
func (j *Joystick) Poll() (models.StickEvent, bool, error) {
	for {
		select {
		case ev, open := <-j.events:
			if !open {
				return models.StickEvent{}, false, errors.Wrap(ErrUnavailable, "joystick closed")
			}
			if se, ok := stickEvent(ev); ok {
				se.Time = j.clk.Now()
				return se, true, nil
			}
		default:
			return models.StickEvent{}, false, nil
		}
	}
}

func (j *Joystick) Close() error {
	return j.dev.Close()
}
