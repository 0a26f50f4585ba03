package hardware

import (
	"context"
	"image/color"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"sense-logger/models"
	"sense-logger/utils"
	"sense-logger/views"
)

const sysfsRoot = "/sys"

// SenseHAT talks to the real board.
type SenseHAT struct {
	bus    i2c.BusCloser
	hum    *HTS221
	press  *LPS25H
	imu    *LSM9DS1
	matrix *LEDMatrix
	stick  *Joystick

	clk         clock.Clock
	scrollStep  time.Duration
	shutdownCmd []string
}

var _ Hardware = (*SenseHAT)(nil)

// OpenSenseHAT initialises the host drivers and opens every device of the
// board. Any failure is reported as ErrUnavailable. The joystick is polled
// until ctx is done.
func OpenSenseHAT(ctx context.Context, opts Options) (_ *SenseHAT, err error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "periph host init: %v", err)
	}

	hat := &SenseHAT{
		clk:         opts.clock(),
		scrollStep:  opts.ScrollStep,
		shutdownCmd: opts.ShutdownCommand,
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, hat.Close())
		}
	}()

	if hat.bus, err = i2creg.Open(opts.Config.I2CBus); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "open i2c bus %q: %v", opts.Config.I2CBus, err)
	}
	if hat.hum, err = NewHTS221(hat.bus); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%v", err)
	}
	if hat.press, err = NewLPS25H(hat.bus); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%v", err)
	}
	if hat.imu, err = NewLSM9DS1(hat.bus); err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%v", err)
	}

	fb := opts.Config.Framebuffer
	if fb == "" {
		if fb, err = FindFramebuffer(sysfsRoot); err != nil {
			return nil, err
		}
	}
	if hat.matrix, err = OpenLEDMatrix(fb); err != nil {
		return nil, err
	}

	js := opts.Config.Joystick
	if js == "" {
		if js, err = FindJoystick(sysfsRoot); err != nil {
			return nil, err
		}
	}
	if hat.stick, err = OpenJoystick(ctx, js, hat.clk); err != nil {
		return nil, err
	}

	utils.L().Info("sense hat ready  (i2c=%s, fb=%s, joystick=%s)", hat.bus, fb, js)
	return hat, nil
}

func (h *SenseHAT) ReadSensors(ctx context.Context) (models.Readings, error) {
	var r models.Readings
	if err := ctx.Err(); err != nil {
		return r, err
	}

	hum, tempH, err := h.hum.Sense()
	if err != nil {
		return r, errors.Wrapf(ErrUnavailable, "%v", err)
	}
	press, tempP, err := h.press.Sense()
	if err != nil {
		return r, errors.Wrapf(ErrUnavailable, "%v", err)
	}
	accel, gyro, mag, err := h.imu.Sense()
	if err != nil {
		return r, errors.Wrapf(ErrUnavailable, "%v", err)
	}

	r.Env = models.EnvData{
		TempFromHumidity: tempH,
		TempFromPressure: tempP,
		Humidity:         hum,
		Pressure:         press,
	}
	pitch, roll, yaw := Orientation(accel, mag)
	r.IMU = models.IMUData{
		Pitch: pitch, Roll: roll, Yaw: yaw,
		MagX: mag.X, MagY: mag.Y, MagZ: mag.Z,
		AccelX: accel.X, AccelY: accel.Y, AccelZ: accel.Z,
		GyroX: gyro.X, GyroY: gyro.Y, GyroZ: gyro.Z,
	}
	return r, nil
}

func (h *SenseHAT) PollJoystick() (models.StickEvent, bool, error) {
	return h.stick.Poll()
}

func (h *SenseHAT) ShowText(ctx context.Context, text string, fg, bg color.RGBA) error {
	return scroll(ctx, h.clk, h.scrollStep, views.TextFrames(text, fg, bg), h.matrix.Show)
}

func (h *SenseHAT) ShowImage(img models.Image) error {
	return h.matrix.Show(img)
}

func (h *SenseHAT) SetLowLight(on bool) error {
	return h.matrix.SetLowLight(on)
}

func (h *SenseHAT) IPAddress(iface string) (string, error) {
	return interfaceIPv4(iface)
}

func (h *SenseHAT) Shutdown(ctx context.Context) error {
	return runShutdown(ctx, h.shutdownCmd)
}

// Close blanks the matrix and releases every device that was opened.
func (h *SenseHAT) Close() error {
	var err error
	if h.matrix != nil {
		err = multierr.Append(err, h.matrix.Show(views.Blank))
		err = multierr.Append(err, h.matrix.Close())
		h.matrix = nil
	}
	if h.stick != nil {
		err = multierr.Append(err, h.stick.Close())
		h.stick = nil
	}
	if h.bus != nil {
		err = multierr.Append(err, h.bus.Close())
		h.bus = nil
	}
	return err
}
