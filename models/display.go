package models

import "image/color"

// DisplayMode is the brightness setting of the LED matrix.
type DisplayMode int

const (
	DisplayNormal DisplayMode = iota
	DisplayLowLight
)

func (m DisplayMode) String() string {
	if m == DisplayLowLight {
		return "low-light"
	}
	return "normal"
}

// Toggled returns the other mode.
func (m DisplayMode) Toggled() DisplayMode {
	if m == DisplayLowLight {
		return DisplayNormal
	}
	return DisplayLowLight
}

// LowLight reports whether the matrix should be dimmed.
func (m DisplayMode) LowLight() bool { return m == DisplayLowLight }

// MatrixSize is the edge length of the square LED matrix.
const MatrixSize = 8

// Image is a full frame for the LED matrix in row-major order.
type Image [MatrixSize * MatrixSize]color.RGBA

// At returns the pixel at column x, row y.
func (img *Image) At(x, y int) color.RGBA {
	return img[y*MatrixSize+x]
}

// Set writes the pixel at column x, row y.
func (img *Image) Set(x, y int, c color.RGBA) {
	img[y*MatrixSize+x] = c
}
