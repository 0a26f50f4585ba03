package controller

import (
	"time"

	"github.com/pkg/errors"

	"sense-logger/models"
	"sense-logger/utils"
)

// RecordingController starts and ends recording sessions and feeds them
// samples. At most one session is open at a time; it lives in DeviceState.
type RecordingController struct {
	storageCfg utils.StorageConfig
	state      *DeviceState

	rowsWritten uint64
	finished    uint64
	failed      uint64
}

// NewRecordingController returns a controller writing under storageCfg.
func NewRecordingController(storageCfg utils.StorageConfig, state *DeviceState) *RecordingController {
	return &RecordingController{storageCfg: storageCfg, state: state}
}

// Recording reports whether a session is open.
func (rc *RecordingController) Recording() bool {
	return rc.state.Session != nil
}

// Start opens a new session unless one is already open. started is false
// when a session was already running.
func (rc *RecordingController) Start(now time.Time) (started bool, err error) {
	if rc.state.Session != nil {
		utils.L().Debug("start ignored, already recording to %s", rc.state.Session.Path())
		return false, nil
	}
	sess, err := StartSession(rc.storageCfg, now)
	if err != nil {
		rc.failed++
		return false, err
	}
	rc.state.Session = sess
	utils.L().Info("recording started  file=%s", sess.Path())
	return true, nil
}

// Append writes rec to the open session, or discards it when idle. A write
// failure aborts the session and the error is returned.
func (rc *RecordingController) Append(rec models.SenseRecord) error {
	sess := rc.state.Session
	if sess == nil {
		return nil
	}
	if err := sess.Append(rec); err != nil {
		rc.Abort(err)
		return err
	}
	rc.rowsWritten++
	return nil
}

// Stop finalizes the open session into the finished directory. stopped is
// false when there was nothing to stop. On error the session is still over
// and its file is left where it was.
func (rc *RecordingController) Stop() (path string, stopped bool, err error) {
	sess := rc.state.Session
	if sess == nil {
		return "", false, nil
	}
	rc.state.Session = nil

	path, err = sess.Finalize(rc.storageCfg.FinishedDir)
	if err != nil {
		rc.failed++
		return path, true, errors.WithMessagef(err, "finalize after %d rows", sess.Rows())
	}
	rc.finished++
	utils.L().Info("recording finished  rows=%d  file=%s", sess.Rows(), path)
	return path, true, nil
}

// Abort ends the open session without moving its file.
func (rc *RecordingController) Abort(cause error) {
	sess := rc.state.Session
	if sess == nil {
		return
	}
	rc.state.Session = nil
	rc.failed++
	if err := sess.Abort(); err != nil {
		utils.L().Warn("close aborted session %s: %v", sess.Path(), err)
	}
	utils.L().Error("recording aborted  rows=%d  file=%s: %v", sess.Rows(), sess.Path(), cause)
}

// RowsWritten returns the number of rows written across all sessions.
func (rc *RecordingController) RowsWritten() uint64 { return rc.rowsWritten }

// LogStats prints session counters.
func (rc *RecordingController) LogStats() {
	utils.L().Info("  recorder rows=%d  finished=%d  failed=%d  active=%v",
		rc.rowsWritten, rc.finished, rc.failed, rc.Recording())
}
