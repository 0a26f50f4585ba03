package models

import (
	"time"
)

// TimeLayout is the format of the timestamp column.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Readings is everything the board reports for one sample tick.
type Readings struct {
	Env EnvData `json:"env"`
	IMU IMUData `json:"imu"`
}

// SenseRecord is one logged row: the readings of a sample tick and the time
// they were taken. It is never modified after being written.
type SenseRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Readings
}

// NewSenseRecord stamps r with t.
func NewSenseRecord(t time.Time, r Readings) SenseRecord {
	return SenseRecord{Timestamp: t, Readings: r}
}

// CSVHeader returns the column names in row order; timestamp comes last.
func (SenseRecord) CSVHeader() []string {
	h := EnvData{}.CSVHeader()
	h = append(h, IMUData{}.CSVHeader()...)
	return append(h, "timestamp")
}

// CSVRow returns the formatted fields of the record.
func (r *SenseRecord) CSVRow() []string {
	row := r.Env.CSVRow()
	row = append(row, r.IMU.CSVRow()...)
	return append(row, r.Timestamp.Format(TimeLayout))
}
