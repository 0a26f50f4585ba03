package models

import (
	"math"
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// round2 rounds to two decimals, the precision every logged reading uses.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// angle2 rounds a heading in [0,360) and wraps 360.00 back to 0.
func angle2(v float64) float64 {
	return math.Mod(round2(v), 360)
}

// CSVRowWriter is the interface every loggable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
