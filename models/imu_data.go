package models

// IMUData holds one LSM9DS1 reading plus the orientation derived from it.
type IMUData struct {
	Pitch  float64 `json:"pitch"` // degrees, 0..360
	Roll   float64 `json:"roll"`
	Yaw    float64 `json:"yaw"`
	MagX   float64 `json:"mag_x"` // µT (micro-tesla)
	MagY   float64 `json:"mag_y"`
	MagZ   float64 `json:"mag_z"`
	AccelX float64 `json:"accel_x"` // g
	AccelY float64 `json:"accel_y"`
	AccelZ float64 `json:"accel_z"`
	GyroX  float64 `json:"gyro_x"` // rad/s
	GyroY  float64 `json:"gyro_y"`
	GyroZ  float64 `json:"gyro_z"`
}

func (IMUData) CSVHeader() []string {
	return []string{
		"pitch", "roll", "yaw",
		"mag_x", "mag_y", "mag_z",
		"accel_x", "accel_y", "accel_z",
		"gyro_x", "gyro_y", "gyro_z",
	}
}

func (d *IMUData) CSVRow() []string {
	return []string{
		ftoa(angle2(d.Pitch), 2), ftoa(angle2(d.Roll), 2), ftoa(angle2(d.Yaw), 2),
		ftoa(round2(d.MagX), 2), ftoa(round2(d.MagY), 2), ftoa(round2(d.MagZ), 2),
		ftoa(round2(d.AccelX), 2), ftoa(round2(d.AccelY), 2), ftoa(round2(d.AccelZ), 2),
		ftoa(round2(d.GyroX), 2), ftoa(round2(d.GyroY), 2), ftoa(round2(d.GyroZ), 2),
	}
}
