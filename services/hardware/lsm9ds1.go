package hardware

import (
	"math"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
)

// LSM9DS1 accelerometer/gyroscope and magnetometer.
const (
	lsm9ds1AGAddr = 0x6A
	lsm9ds1MAddr  = 0x1C
	lsm9ds1WhoAmI = 0x0F
	lsm9ds1AGID   = 0x68
	lsm9ds1MID    = 0x3D

	lsm9ds1CtrlReg1G  = 0x10
	lsm9ds1CtrlReg6XL = 0x20
	lsm9ds1OutG       = 0x18
	lsm9ds1OutXL      = 0x28

	lsm9ds1CtrlReg1M = 0x20
	lsm9ds1CtrlReg2M = 0x21
	lsm9ds1CtrlReg3M = 0x22
	lsm9ds1CtrlReg4M = 0x23
	lsm9ds1OutM      = 0x28
	lsm9ds1MAutoIncr = 0x80

	// 119 Hz, 245 dps full scale.
	gyroScale = 0.00875 * math.Pi / 180 // rad/s per LSB
	// 119 Hz, ±2 g.
	accelScale = 0.000061 // g per LSB
	// ±4 gauss; 1 gauss = 100 µT.
	magScale = 0.00014 * 100 // µT per LSB
)

// LSM9DS1 is the 9-axis inertial unit of the board.
type LSM9DS1 struct {
	ag  *i2c.Dev
	mag *i2c.Dev
}

// Vector is a three-axis reading.
type Vector struct{ X, Y, Z float64 }

// NewLSM9DS1 checks both device identities and starts continuous conversion.
func NewLSM9DS1(bus i2c.Bus) (*LSM9DS1, error) {
	d := &LSM9DS1{
		ag:  &i2c.Dev{Bus: bus, Addr: lsm9ds1AGAddr},
		mag: &i2c.Dev{Bus: bus, Addr: lsm9ds1MAddr},
	}

	if err := checkID(d.ag, lsm9ds1AGID); err != nil {
		return nil, errors.Wrap(err, "lsm9ds1 accel/gyro")
	}
	if err := checkID(d.mag, lsm9ds1MID); err != nil {
		return nil, errors.Wrap(err, "lsm9ds1 magnetometer")
	}

	for _, w := range []struct {
		dev *i2c.Dev
		reg byte
		val byte
	}{
		{d.ag, lsm9ds1CtrlReg1G, 0x60},
		{d.ag, lsm9ds1CtrlReg6XL, 0x60},
		{d.mag, lsm9ds1CtrlReg1M, 0x70},
		{d.mag, lsm9ds1CtrlReg2M, 0x00},
		{d.mag, lsm9ds1CtrlReg3M, 0x00},
		{d.mag, lsm9ds1CtrlReg4M, 0x0C},
	} {
		if err := w.dev.Tx([]byte{w.reg, w.val}, nil); err != nil {
			return nil, errors.Wrapf(err, "lsm9ds1 configure 0x%02X", w.reg)
		}
	}
	return d, nil
}

func checkID(dev *i2c.Dev, want byte) error {
	id := make([]byte, 1)
	if err := dev.Tx([]byte{lsm9ds1WhoAmI}, id); err != nil {
		return err
	}
	if id[0] != want {
		return errors.Errorf("unexpected id 0x%02X", id[0])
	}
	return nil
}

func readVector(dev *i2c.Dev, reg byte, scale float64) (Vector, error) {
	b := make([]byte, 6)
	if err := dev.Tx([]byte{reg}, b); err != nil {
		return Vector{}, err
	}
	return Vector{
		X: float64(le16(b[0:])) * scale,
		Y: float64(le16(b[2:])) * scale,
		Z: float64(le16(b[4:])) * scale,
	}, nil
}

// Sense returns acceleration in g, rotation rate in rad/s and magnetic field
// in µT.
func (d *LSM9DS1) Sense() (accel, gyro, mag Vector, err error) {
	if gyro, err = readVector(d.ag, lsm9ds1OutG, gyroScale); err != nil {
		return accel, gyro, mag, errors.Wrap(err, "lsm9ds1 gyro")
	}
	if accel, err = readVector(d.ag, lsm9ds1OutXL, accelScale); err != nil {
		return accel, gyro, mag, errors.Wrap(err, "lsm9ds1 accel")
	}
	if mag, err = readVector(d.mag, lsm9ds1OutM|lsm9ds1MAutoIncr, magScale); err != nil {
		return accel, gyro, mag, errors.Wrap(err, "lsm9ds1 mag")
	}
	return accel, gyro, mag, nil
}
