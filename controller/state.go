package controller

import (
	"sense-logger/models"
	"sense-logger/views"
)

// DeviceState is everything the input and sample paths share. It is owned by
// the device loop and never touched from another goroutine.
type DeviceState struct {
	Mode    models.DisplayMode
	Session *RecordingSession
	// Shown is the last image put on the matrix, restored after scrolled text.
	Shown models.Image
	// ShutdownArmed is set while waiting for the shutdown confirmation.
	ShutdownArmed bool
	Halted        bool
}

// NewDeviceState returns the idle state with the given display mode.
func NewDeviceState(mode models.DisplayMode) *DeviceState {
	return &DeviceState{Mode: mode, Shown: views.Blank}
}
