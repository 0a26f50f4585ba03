package hardware

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
)

// HTS221 humidity and temperature sensor.
const (
	hts221Addr     = 0x5F
	hts221WhoAmI   = 0x0F
	hts221ID       = 0xBC
	hts221Ctrl1    = 0x20
	hts221Out      = 0x28
	hts221Calib    = 0x30
	hts221AutoIncr = 0x80

	// Power on, block data update, 1 Hz.
	hts221Ctrl1Value = 0x85
)

// HTS221 is the humidity sensor of the board.
type HTS221 struct {
	dev *i2c.Dev

	h0, h1       float64 // %rH calibration points
	h0Out, h1Out float64
	t0, t1       float64 // °C calibration points
	t0Out, t1Out float64
}

// NewHTS221 checks the device identity, powers it on and loads its factory
// calibration.
func NewHTS221(bus i2c.Bus) (*HTS221, error) {
	d := &HTS221{dev: &i2c.Dev{Bus: bus, Addr: hts221Addr}}

	id := make([]byte, 1)
	if err := d.dev.Tx([]byte{hts221WhoAmI}, id); err != nil {
		return nil, errors.Wrap(err, "hts221 who-am-i")
	}
	if id[0] != hts221ID {
		return nil, errors.Errorf("hts221: unexpected id 0x%02X", id[0])
	}
	if err := d.dev.Tx([]byte{hts221Ctrl1, hts221Ctrl1Value}, nil); err != nil {
		return nil, errors.Wrap(err, "hts221 power on")
	}

	c := make([]byte, 16)
	if err := d.dev.Tx([]byte{hts221Calib | hts221AutoIncr}, c); err != nil {
		return nil, errors.Wrap(err, "hts221 calibration")
	}
	d.h0 = float64(c[0]) / 2
	d.h1 = float64(c[1]) / 2
	d.t0 = float64(uint16(c[5]&0x03)<<8|uint16(c[2])) / 8
	d.t1 = float64(uint16(c[5]&0x0C)<<6|uint16(c[3])) / 8
	d.h0Out = float64(le16(c[6:]))
	d.h1Out = float64(le16(c[10:]))
	d.t0Out = float64(le16(c[12:]))
	d.t1Out = float64(le16(c[14:]))
	return d, nil
}

// Sense returns relative humidity in % and temperature in °C.
func (d *HTS221) Sense() (humidity, temperature float64, err error) {
	b := make([]byte, 4)
	if err := d.dev.Tx([]byte{hts221Out | hts221AutoIncr}, b); err != nil {
		return 0, 0, errors.Wrap(err, "hts221 read")
	}
	humidity = interpolate(float64(le16(b[0:])), d.h0Out, d.h1Out, d.h0, d.h1)
	temperature = interpolate(float64(le16(b[2:])), d.t0Out, d.t1Out, d.t0, d.t1)
	return humidity, temperature, nil
}

// interpolate maps raw linearly through the calibration points (x0,y0) and
// (x1,y1).
func interpolate(raw, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (raw-x0)*(y1-y0)/(x1-x0)
}

func le16(b []byte) int16 {
	return int16(uint16(b[0]) | uint16(b[1])<<8)
}
