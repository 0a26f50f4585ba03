package controller

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"sense-logger/models"
	"sense-logger/services/hardware"
	"sense-logger/utils"
	"sense-logger/views"
)

// SensorsController takes one sample per interval. Samples are read whether
// or not a session is open and are dropped while idle.
type SensorsController struct {
	hw       hardware.Hardware
	recorder *RecordingController
	disp     *display
	interval time.Duration
	next     time.Time

	taken     uint64
	discarded uint64
	skipped   uint64
}

// NewSensorsController samples hw every interval into recorder.
func NewSensorsController(hw hardware.Hardware, recorder *RecordingController, disp *display,
	interval time.Duration,
) *SensorsController {
	return &SensorsController{hw: hw, recorder: recorder, disp: disp, interval: interval}
}

// Due reports whether a sample should be taken at now.
func (sc *SensorsController) Due(now time.Time) bool {
	return !now.Before(sc.next)
}

// Sample reads the sensors once, stamps the readings with now and appends
// them to the open session. A failed read is logged and skipped. A failed
// write aborts the session and is returned.
func (sc *SensorsController) Sample(ctx context.Context, now time.Time) error {
	sc.next = now.Add(sc.interval)

	readings, err := sc.hw.ReadSensors(ctx)
	if err != nil {
		sc.skipped++
		utils.L().Warn("read sensors: %v", err)
		return nil
	}
	if !sc.recorder.Recording() {
		sc.discarded++
		return nil
	}

	if err := sc.recorder.Append(models.NewSenseRecord(now, readings)); err != nil {
		sc.disp.show(views.Failed)
		return errors.WithMessage(err, "sample")
	}
	sc.taken++
	return nil
}

// LogStats prints sample counters.
func (sc *SensorsController) LogStats() {
	utils.L().Info("  sensors  taken=%d  discarded=%d  skipped=%d", sc.taken, sc.discarded, sc.skipped)
}
