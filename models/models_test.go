package models

import (
	"image/color"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestSenseRecordRow(t *testing.T) {
	rec := NewSenseRecord(
		time.Date(2024, 5, 1, 12, 30, 15, 123456000, time.UTC),
		Readings{
			Env: EnvData{TempFromHumidity: 24.456, TempFromPressure: 23.1, Humidity: 45.005, Pressure: 1013.254},
			IMU: IMUData{Pitch: 359.996, Roll: 359.994, Yaw: 12.3, AccelZ: 0.9999, GyroX: -0.126},
		},
	)

	header := rec.CSVHeader()
	row := rec.CSVRow()
	test.That(t, row, test.ShouldHaveLength, len(header))
	test.That(t, header[0], test.ShouldEqual, "temp_h")
	test.That(t, header[len(header)-1], test.ShouldEqual, "timestamp")

	test.That(t, row[0], test.ShouldEqual, "24.46")
	test.That(t, row[1], test.ShouldEqual, "23.10")
	test.That(t, row[3], test.ShouldEqual, "1013.25")
	test.That(t, row[4], test.ShouldEqual, "0.00")
	test.That(t, row[5], test.ShouldEqual, "359.99")
	test.That(t, row[6], test.ShouldEqual, "12.30")
	test.That(t, row[12], test.ShouldEqual, "1.00")
	test.That(t, row[13], test.ShouldEqual, "-0.13")
	test.That(t, row[len(row)-1], test.ShouldEqual, "2024-05-01 12:30:15.123456")
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight, DirectionMiddle} {
		got, ok := ParseDirection(d.String())
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, got, test.ShouldEqual, d)
	}
	_, ok := ParseDirection("none")
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = ParseDirection("sideways")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestDisplayMode(t *testing.T) {
	m := DisplayNormal
	test.That(t, m.LowLight(), test.ShouldBeFalse)
	m = m.Toggled()
	test.That(t, m, test.ShouldEqual, DisplayLowLight)
	test.That(t, m.LowLight(), test.ShouldBeTrue)
	test.That(t, m.Toggled(), test.ShouldEqual, DisplayNormal)
}

func TestImageSetAt(t *testing.T) {
	var img Image
	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	img.Set(2, 5, c)
	test.That(t, img.At(2, 5), test.ShouldResemble, c)
	test.That(t, img[5*MatrixSize+2], test.ShouldResemble, c)
	test.That(t, img.At(5, 2), test.ShouldResemble, color.RGBA{})
}
