package hardware

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"sense-logger/models"
)

const (
	senseFBName = "RPi-Sense FB"

	// Gamma ioctls of the rpisense-fb driver.
	fbIOResetGamma = 0xF102
	gammaDefault   = 0
	gammaLow       = 1
)

// LEDMatrix drives the 8x8 RGB565 framebuffer of the board.
type LEDMatrix struct {
	file *os.File
}

// FindFramebuffer returns the /dev/fbN node of the Sense HAT matrix.
func FindFramebuffer(sysfs string) (string, error) {
	return findDevice(filepath.Join(sysfs, "class", "graphics", "fb*", "name"), senseFBName, func(match string) string {
		return "/dev/" + filepath.Base(filepath.Dir(match))
	})
}

// findDevice globs sysfs name files and maps the first one containing want
// to a device node.
func findDevice(pattern, want string, node func(match string) string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		name, err := os.ReadFile(m)
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(name)) == want {
			return node(m), nil
		}
	}
	return "", errors.Wrapf(ErrUnavailable, "no device named %q", want)
}

// OpenLEDMatrix opens the framebuffer device at path.
func OpenLEDMatrix(path string) (*LEDMatrix, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "open led matrix %s: %v", path, err)
	}
	return &LEDMatrix{file: f}, nil
}

// encodeRGB565 packs an image the way the framebuffer expects it.
func encodeRGB565(img models.Image) []byte {
	buf := make([]byte, len(img)*2)
	for i, c := range img {
		v := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

// Show writes a full frame.
func (m *LEDMatrix) Show(img models.Image) error {
	if _, err := m.file.WriteAt(encodeRGB565(img), 0); err != nil {
		return errors.Wrap(err, "led matrix write")
	}
	return nil
}

// SetLowLight switches the driver between its default and low gamma tables.
func (m *LEDMatrix) SetLowLight(on bool) error {
	g := gammaDefault
	if on {
		g = gammaLow
	}
	if err := unix.IoctlSetInt(int(m.file.Fd()), fbIOResetGamma, g); err != nil {
		return errors.Wrap(err, "led matrix gamma")
	}
	return nil
}

func (m *LEDMatrix) Close() error {
	return m.file.Close()
}
