package views

import (
	"image/color"

	"sense-logger/models"
)

var (
	red    = color.RGBA{R: 255, A: 255}
	white  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black  = color.RGBA{A: 255}
	green  = color.RGBA{G: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}

	// Colours used for scrolled messages.
	TextColour      = white
	ReadyBackground = green
	HaltBackground  = red
	NoBackground    = black
)

// frame builds an Image from a picture drawn with one rune per pixel.
func frame(rows [models.MatrixSize]string, palette map[rune]color.RGBA) models.Image {
	var img models.Image
	for y, row := range rows {
		for x, r := range row {
			img.Set(x, y, palette[r])
		}
	}
	return img
}

var palette = map[rune]color.RGBA{
	'X': red,
	'O': white,
	'B': black,
	'Y': green,
	'Z': yellow,
}

// Blank is an all-off frame.
var Blank models.Image

// Recording is shown while a session is open.
var Recording = frame([8]string{
	"OOOOOOOO",
	"OOOOOOOO",
	"OOXXXXOO",
	"OOXXXXOO",
	"OOXXXXOO",
	"OOXXXXOO",
	"OOOOOOOO",
	"OOOOOOOO",
}, palette)

// Logged is shown after a session was finalized.
var Logged = frame([8]string{
	"OOOOOOOO",
	"OOOOOOOO",
	"OOOOOOYO",
	"OOOOOYOO",
	"YOOOYOOO",
	"OYOYOOOO",
	"OOYOOOOO",
	"OOOOOOOO",
}, palette)

// Ready is the startup splash.
var Ready = frame([8]string{
	"BBZZZZBB",
	"BZBBBBZB",
	"ZBZBBZBZ",
	"ZBBBBBBZ",
	"ZBZBBZBZ",
	"ZBBZZBBZ",
	"BZBBBBZB",
	"BBZZZZBB",
}, palette)

// AreYouSure asks for shutdown confirmation.
var AreYouSure = frame([8]string{
	"BXBBBXBB",
	"BBXBXBBB",
	"BBBXBBBB",
	"BBBXBBBB",
	"BBXBBXBB",
	"BBXXBXBB",
	"BBXBXXBB",
	"BBXBBXBB",
}, palette)

// Failed is shown when a session had to be aborted.
var Failed = frame([8]string{
	"XBBBBBBX",
	"BXBBBBXB",
	"BBXBBXBB",
	"BBBXXBBB",
	"BBBXXBBB",
	"BBXBBXBB",
	"BXBBBBXB",
	"XBBBBBBX",
}, palette)
