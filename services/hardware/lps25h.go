package hardware

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
)

// LPS25H pressure and temperature sensor.
const (
	lps25hAddr     = 0x5C
	lps25hWhoAmI   = 0x0F
	lps25hID       = 0xBD
	lps25hCtrl1    = 0x20
	lps25hOut      = 0x28
	lps25hAutoIncr = 0x80

	// Power on, 1 Hz, block data update.
	lps25hCtrl1Value = 0x94
)

// LPS25H is the barometer of the board.
type LPS25H struct {
	dev *i2c.Dev
}

// NewLPS25H checks the device identity and powers it on.
func NewLPS25H(bus i2c.Bus) (*LPS25H, error) {
	d := &LPS25H{dev: &i2c.Dev{Bus: bus, Addr: lps25hAddr}}

	id := make([]byte, 1)
	if err := d.dev.Tx([]byte{lps25hWhoAmI}, id); err != nil {
		return nil, errors.Wrap(err, "lps25h who-am-i")
	}
	if id[0] != lps25hID {
		return nil, errors.Errorf("lps25h: unexpected id 0x%02X", id[0])
	}
	if err := d.dev.Tx([]byte{lps25hCtrl1, lps25hCtrl1Value}, nil); err != nil {
		return nil, errors.Wrap(err, "lps25h power on")
	}
	return d, nil
}

// Sense returns pressure in hPa and temperature in °C.
func (d *LPS25H) Sense() (pressure, temperature float64, err error) {
	b := make([]byte, 5)
	if err := d.dev.Tx([]byte{lps25hOut | lps25hAutoIncr}, b); err != nil {
		return 0, 0, errors.Wrap(err, "lps25h read")
	}
	raw := int32(uint32(b[0])|uint32(b[1])<<8|uint32(b[2])<<16) << 8 >> 8
	pressure = float64(raw) / 4096
	temperature = 42.5 + float64(le16(b[3:]))/480
	return pressure, temperature, nil
}
