package controller

import (
	"github.com/pkg/errors"

	"sense-logger/services/hardware"
)

// Failure classes surfaced by the controllers. Wrapped errors keep their
// class, test for it with errors.Is.
var (
	ErrHardwareUnavailable = hardware.ErrUnavailable
	ErrFileWrite           = errors.New("file write failure")
	ErrFileMove            = errors.New("file move failure")
)
