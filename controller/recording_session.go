package controller

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"sense-logger/models"
	"sense-logger/utils"
	"sense-logger/views"
)

// RecordingSession is one open log file. It owns the file handle until it is
// finalized or aborted.
type RecordingSession struct {
	writer    *views.CSVWriter
	path      string
	startedAt time.Time
	closed    bool
}

// StartSession creates a new log file in cfg.WorkingDir named after now and
// writes the header row. The name gets a numeric suffix if a log with the same
// name exists in the working or the finished directory.
func StartSession(cfg utils.StorageConfig, now time.Time) (*RecordingSession, error) {
	if err := os.MkdirAll(cfg.WorkingDir, 0o755); err != nil {
		return nil, errors.Wrapf(ErrFileWrite, "create working dir: %v", err)
	}
	path := uniqueLogPath(cfg, utils.SessionName(cfg.SessionPrefix, now))

	w, err := views.NewCSVWriter(path, views.SenseHeader(), cfg.SyncEveryRow)
	if err != nil {
		return nil, errors.Wrapf(ErrFileWrite, "%v", err)
	}
	return &RecordingSession{writer: w, path: path, startedAt: now}, nil
}

func uniqueLogPath(cfg utils.StorageConfig, stem string) string {
	name := stem + ".csv"
	for i := 1; exists(filepath.Join(cfg.WorkingDir, name)) || exists(filepath.Join(cfg.FinishedDir, name)); i++ {
		name = stem + "_" + strconv.Itoa(i) + ".csv"
	}
	return filepath.Join(cfg.WorkingDir, name)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Append writes one record and flushes it to the OS.
func (s *RecordingSession) Append(rec models.SenseRecord) error {
	if s.closed {
		return errors.Wrapf(ErrFileWrite, "session %s is closed", s.path)
	}
	if err := s.writer.WriteRecord(&rec); err != nil {
		return errors.Wrapf(ErrFileWrite, "%v", err)
	}
	return nil
}

// Finalize closes the file and moves it into finishedDir, returning the new
// path. If the move fails the file stays where it is.
func (s *RecordingSession) Finalize(finishedDir string) (string, error) {
	if err := s.close(); err != nil {
		return s.path, errors.Wrapf(ErrFileWrite, "close %s: %v", s.path, err)
	}

	if err := os.MkdirAll(finishedDir, 0o755); err != nil {
		return s.path, errors.Wrapf(ErrFileMove, "create finished dir: %v", err)
	}
	target := filepath.Join(finishedDir, filepath.Base(s.path))
	if exists(target) {
		return s.path, errors.Wrapf(ErrFileMove, "%s already exists", target)
	}
	if err := os.Rename(s.path, target); err != nil {
		return s.path, errors.Wrapf(ErrFileMove, "%v", err)
	}
	s.path = target
	return target, nil
}

// Abort closes the file without moving it.
func (s *RecordingSession) Abort() error {
	return s.close()
}

func (s *RecordingSession) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.writer.Close()
}

// Path returns the current location of the log file.
func (s *RecordingSession) Path() string { return s.path }

// StartedAt returns the time the session was opened.
func (s *RecordingSession) StartedAt() time.Time { return s.startedAt }

// Rows returns the number of data rows written so far.
func (s *RecordingSession) Rows() uint64 { return s.writer.Rows() }
