package models

// EnvData holds the environmental readings of one sample: temperature from
// both the humidity and the pressure sensor, relative humidity and pressure.
type EnvData struct {
	TempFromHumidity float64 `json:"temp_h"`   // °C
	TempFromPressure float64 `json:"temp_p"`   // °C
	Humidity         float64 `json:"humidity"` // %rH
	Pressure         float64 `json:"pressure"` // hPa (millibar)
}

func (EnvData) CSVHeader() []string {
	return []string{"temp_h", "temp_p", "humidity", "pressure"}
}

func (d *EnvData) CSVRow() []string {
	return []string{
		ftoa(round2(d.TempFromHumidity), 2),
		ftoa(round2(d.TempFromPressure), 2),
		ftoa(round2(d.Humidity), 2),
		ftoa(round2(d.Pressure), 2),
	}
}
