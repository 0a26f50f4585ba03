package hardware

import "math"

// Orientation derives pitch and roll from gravity and a tilt-compensated
// heading from the magnetic field of a single reading. Angles are degrees in
// [0, 360).
func Orientation(accel, mag Vector) (pitch, roll, yaw float64) {
	r := math.Atan2(accel.Y, accel.Z)
	p := math.Atan2(-accel.X, math.Hypot(accel.Y, accel.Z))

	mx := mag.X*math.Cos(p) + mag.Z*math.Sin(p)
	my := mag.X*math.Sin(r)*math.Sin(p) + mag.Y*math.Cos(r) - mag.Z*math.Sin(r)*math.Cos(p)
	y := math.Atan2(-my, mx)

	return degrees(p), degrees(r), degrees(y)
}

func degrees(rad float64) float64 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	return d
}
