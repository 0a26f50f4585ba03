package ingest

import (
	"math"
	"math/rand"

	"sense-logger/models"
)

// SimSource produces plausible board readings: slowly drifting weather and a
// device lying flat with a little sensor noise.
type SimSource struct {
	rng  *rand.Rand
	step float64
}

func NewSimSource(seed int64) *SimSource {
	return &SimSource{rng: rand.New(rand.NewSource(seed))}
}

// Read returns the next simulated sample.
func (s *SimSource) Read() models.Readings {
	step := s.step
	s.step += 0.01
	rnd := s.rng.Float64

	accel := [3]float64{
		0.02*math.Sin(step) + rnd()*0.005,
		0.01*math.Cos(step) + rnd()*0.005,
		1.0 + rnd()*0.002,
	}
	return models.Readings{
		Env: models.EnvData{
			TempFromHumidity: 24.0 + math.Sin(step/10) + rnd()*0.2,
			TempFromPressure: 23.5 + math.Sin(step/10) + rnd()*0.2,
			Humidity:         45.0 + 5*math.Cos(step/20) + rnd()*0.5,
			Pressure:         1013.25 + math.Sin(step/30) + rnd()*0.1,
		},
		IMU: models.IMUData{
			Pitch:  math.Mod(360+accel[0]*57.3, 360),
			Roll:   math.Mod(360+accel[1]*57.3, 360),
			Yaw:    math.Mod(180+step, 360),
			MagX:   25.0 + rnd()*0.5,
			MagY:   -10.0 + rnd()*0.5,
			MagZ:   45.0 + rnd()*0.5,
			AccelX: accel[0],
			AccelY: accel[1],
			AccelZ: accel[2],
			GyroX:  0.001*math.Sin(step*2) + rnd()*0.0005,
			GyroY:  0.001*math.Cos(step*2) + rnd()*0.0005,
			GyroZ:  0.0005 + rnd()*0.0002,
		},
	}
}
