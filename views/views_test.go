package views

import (
	"encoding/csv"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"sense-logger/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	test.That(t, err, test.ShouldBeNil)
	return records
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	w, err := NewCSVWriter(path, SenseHeader(), false)
	test.That(t, err, test.ShouldBeNil)

	// The header is on disk before any row is written.
	records := readCSV(t, path)
	test.That(t, records, test.ShouldHaveLength, 1)
	test.That(t, records[0], test.ShouldResemble, SenseColumns)

	rec := models.NewSenseRecord(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), models.Readings{})
	test.That(t, w.WriteRecord(&rec), test.ShouldBeNil)
	test.That(t, w.WriteRecord(&rec), test.ShouldBeNil)
	test.That(t, w.Rows(), test.ShouldEqual, uint64(2))

	records = readCSV(t, path)
	test.That(t, records, test.ShouldHaveLength, 3)
	test.That(t, records[2][len(SenseColumns)-1], test.ShouldEqual, "2024-05-01 00:00:00.000000")

	test.That(t, w.Close(), test.ShouldBeNil)
	test.That(t, w.Path(), test.ShouldEqual, path)
}

func TestCSVWriterRejectsShortRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	w, err := NewCSVWriter(path, []string{"a", "b", "timestamp"}, true)
	test.That(t, err, test.ShouldBeNil)
	defer w.Close()

	err = w.WriteRow([]string{"1", "2"})
	test.That(t, errors.Is(err, ErrFieldCount), test.ShouldBeTrue)
	test.That(t, w.Rows(), test.ShouldEqual, uint64(0))
	test.That(t, readCSV(t, path), test.ShouldHaveLength, 1)
}

func TestCSVWriterRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	test.That(t, os.WriteFile(path, []byte("keep me\n"), 0o644), test.ShouldBeNil)

	_, err := NewCSVWriter(path, SenseHeader(), false)
	test.That(t, err, test.ShouldNotBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, "keep me\n")
}

func TestCSVWriterRemovesFileWhenHeaderFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	f, err := os.Create(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, f.Close(), test.ShouldBeNil)

	_, err = newCSVWriter(path, f, SenseHeader(), false)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "csv write header")

	_, err = os.Stat(path)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}

func TestCSVWriterAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	w, err := NewCSVWriter(path, []string{"x"}, false)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, w.Close(), test.ShouldBeNil)
	test.That(t, w.WriteRow([]string{"1"}), test.ShouldNotBeNil)
}

func TestSenseHeader(t *testing.T) {
	test.That(t, SenseHeader(), test.ShouldResemble, SenseColumns)
}

func TestTextFrames(t *testing.T) {
	fg := color.RGBA{R: 255, A: 255}
	bg := color.RGBA{B: 255, A: 255}
	frames := TextFrames("IP", fg, bg)

	width := textStrip("IP").Bounds().Dx()
	test.That(t, width, test.ShouldBeGreaterThan, 0)
	test.That(t, frames, test.ShouldHaveLength, width+models.MatrixSize+1)

	onlyBackground := func(img models.Image) bool {
		for _, c := range img {
			if c != bg {
				return false
			}
		}
		return true
	}
	test.That(t, onlyBackground(frames[0]), test.ShouldBeTrue)
	test.That(t, onlyBackground(frames[len(frames)-1]), test.ShouldBeTrue)

	lit := false
	for _, f := range frames {
		for _, c := range f {
			if c == fg {
				lit = true
			}
		}
	}
	test.That(t, lit, test.ShouldBeTrue)
}

func TestTextFramesEmpty(t *testing.T) {
	frames := TextFrames("", TextColour, NoBackground)
	test.That(t, frames, test.ShouldHaveLength, models.MatrixSize+1)
}

func TestStatusImages(t *testing.T) {
	test.That(t, Blank, test.ShouldResemble, models.Image{})
	for _, img := range []models.Image{Recording, Logged, Ready, AreYouSure, Failed} {
		test.That(t, img == Blank, test.ShouldBeFalse)
	}
	test.That(t, Recording.At(3, 3), test.ShouldResemble, red)
	test.That(t, Recording.At(0, 0), test.ShouldResemble, white)
}
