package views

import (
	"github.com/pkg/errors"

	"sense-logger/models"
)

// SenseColumns is the column layout of a session log, kept here as the
// human-readable reference. The header itself comes from
// models.SenseRecord.CSVHeader().
var SenseColumns = []string{
	"temp_h", "temp_p", "humidity", "pressure",
	"pitch", "roll", "yaw",
	"mag_x", "mag_y", "mag_z",
	"accel_x", "accel_y", "accel_z",
	"gyro_x", "gyro_y", "gyro_z",
	"timestamp",
}

// ErrFieldCount is returned for a row whose width differs from the header.
var ErrFieldCount = errors.New("row field count does not match header")

// CheckRow verifies that row has one field per header column.
func CheckRow(header, row []string) error {
	if len(row) != len(header) {
		return errors.Wrapf(ErrFieldCount, "got %d fields, header has %d", len(row), len(header))
	}
	return nil
}

// SenseHeader returns the header of a session log.
func SenseHeader() []string {
	return models.SenseRecord{}.CSVHeader()
}
