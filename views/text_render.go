package views

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sense-logger/models"
)

// capHeight is the height of upper-case letters and digits in Face7x13.
const capHeight = 9

// textStrip renders msg into an alpha mask that is exactly MatrixSize rows
// high. Glyphs are squeezed vertically from capHeight rows, so descenders
// are lost.
func textStrip(msg string) *image.Alpha {
	face := basicfont.Face7x13
	width := font.MeasureString(face, msg).Ceil()
	if width == 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, models.MatrixSize))
	}

	full := image.NewAlpha(image.Rect(0, 0, width, face.Height))
	d := font.Drawer{
		Dst:  full,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(msg)

	strip := image.NewAlpha(image.Rect(0, 0, width, models.MatrixSize))
	src := image.Rect(0, face.Ascent-capHeight, width, face.Ascent)
	xdraw.NearestNeighbor.Scale(strip, strip.Bounds(), full, src, xdraw.Src, nil)
	return strip
}

// TextFrames returns the frames of msg scrolling right to left across the
// matrix, starting and ending on an empty screen.
func TextFrames(msg string, fg, bg color.RGBA) []models.Image {
	strip := textStrip(msg)
	width := strip.Bounds().Dx()

	// The strip is padded with one blank screen on each side.
	total := width + models.MatrixSize
	frames := make([]models.Image, 0, total+1)
	for off := 0; off <= total; off++ {
		var img models.Image
		for y := 0; y < models.MatrixSize; y++ {
			for x := 0; x < models.MatrixSize; x++ {
				sx := off + x - models.MatrixSize
				c := bg
				if sx >= 0 && sx < width && strip.AlphaAt(sx, y).A >= 0x80 {
					c = fg
				}
				img.Set(x, y, c)
			}
		}
		frames = append(frames, img)
	}
	return frames
}
