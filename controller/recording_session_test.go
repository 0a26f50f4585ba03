package controller

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"sense-logger/models"
	"sense-logger/utils"
	"sense-logger/views"
)

func storageConfig(t *testing.T) utils.StorageConfig {
	dir := t.TempDir()
	return utils.StorageConfig{
		WorkingDir:    dir,
		FinishedDir:   filepath.Join(dir, "Finished"),
		SessionPrefix: "log",
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	test.That(t, err, test.ShouldBeNil)
	return rows
}

func TestStartSession(t *testing.T) {
	cfg := storageConfig(t)
	s, err := StartSession(cfg, testStart)
	test.That(t, err, test.ShouldBeNil)
	defer s.Abort()

	test.That(t, s.Path(), test.ShouldEqual, filepath.Join(cfg.WorkingDir, "log_20240501_120000.csv"))
	test.That(t, s.StartedAt(), test.ShouldEqual, testStart)

	rows := readRows(t, s.Path())
	test.That(t, rows, test.ShouldHaveLength, 1)
	test.That(t, rows[0], test.ShouldResemble, views.SenseColumns)
}

func TestStartSessionAvoidsExistingNames(t *testing.T) {
	cfg := storageConfig(t)
	test.That(t, os.WriteFile(filepath.Join(cfg.WorkingDir, "log_20240501_120000.csv"), nil, 0o644), test.ShouldBeNil)
	test.That(t, os.MkdirAll(cfg.FinishedDir, 0o755), test.ShouldBeNil)
	test.That(t, os.WriteFile(filepath.Join(cfg.FinishedDir, "log_20240501_120000_1.csv"), nil, 0o644), test.ShouldBeNil)

	s, err := StartSession(cfg, testStart)
	test.That(t, err, test.ShouldBeNil)
	defer s.Abort()
	test.That(t, filepath.Base(s.Path()), test.ShouldEqual, "log_20240501_120000_2.csv")
}

func TestStartSessionUnwritableDir(t *testing.T) {
	cfg := storageConfig(t)
	blocker := filepath.Join(cfg.WorkingDir, "file")
	test.That(t, os.WriteFile(blocker, nil, 0o644), test.ShouldBeNil)
	cfg.WorkingDir = filepath.Join(blocker, "logs")

	_, err := StartSession(cfg, testStart)
	test.That(t, errors.Is(err, ErrFileWrite), test.ShouldBeTrue)
}

func TestFinalizeMovesIdenticalContent(t *testing.T) {
	cfg := storageConfig(t)
	s, err := StartSession(cfg, testStart)
	test.That(t, err, test.ShouldBeNil)

	for i := 0; i < 3; i++ {
		rec := models.NewSenseRecord(testStart.Add(time.Duration(i)*time.Second), models.Readings{
			Env: models.EnvData{Pressure: 1000 + float64(i)},
		})
		test.That(t, s.Append(rec), test.ShouldBeNil)
	}
	test.That(t, s.Rows(), test.ShouldEqual, uint64(3))

	before, err := os.ReadFile(s.Path())
	test.That(t, err, test.ShouldBeNil)
	oldPath := s.Path()

	path, err := s.Finalize(cfg.FinishedDir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldEqual, filepath.Join(cfg.FinishedDir, filepath.Base(oldPath)))
	test.That(t, s.Path(), test.ShouldEqual, path)

	after, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(after), test.ShouldEqual, string(before))

	_, err = os.Stat(oldPath)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)

	rows := readRows(t, path)
	test.That(t, rows, test.ShouldHaveLength, 4)
	for _, row := range rows {
		test.That(t, row, test.ShouldHaveLength, len(rows[0]))
	}
	test.That(t, rows[3][3], test.ShouldEqual, "1002.00")
	test.That(t, rows[3][len(rows[3])-1], test.ShouldEqual, "2024-05-01 12:00:02.000000")
}

func TestFinalizeTargetExists(t *testing.T) {
	cfg := storageConfig(t)
	s, err := StartSession(cfg, testStart)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, os.MkdirAll(cfg.FinishedDir, 0o755), test.ShouldBeNil)
	target := filepath.Join(cfg.FinishedDir, filepath.Base(s.Path()))
	test.That(t, os.WriteFile(target, []byte("older"), 0o644), test.ShouldBeNil)

	path, err := s.Finalize(cfg.FinishedDir)
	test.That(t, errors.Is(err, ErrFileMove), test.ShouldBeTrue)
	test.That(t, filepath.Dir(path), test.ShouldEqual, cfg.WorkingDir)

	// both files are untouched
	test.That(t, readRows(t, path), test.ShouldHaveLength, 1)
	data, err := os.ReadFile(target)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, "older")
}

func TestFinalizeFinishedDirUnusable(t *testing.T) {
	cfg := storageConfig(t)
	s, err := StartSession(cfg, testStart)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, os.WriteFile(cfg.FinishedDir, nil, 0o644), test.ShouldBeNil)
	path, err := s.Finalize(cfg.FinishedDir)
	test.That(t, errors.Is(err, ErrFileMove), test.ShouldBeTrue)

	_, err = os.Stat(path)
	test.That(t, err, test.ShouldBeNil)
}

func TestAppendAfterAbort(t *testing.T) {
	s, err := StartSession(storageConfig(t), testStart)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Abort(), test.ShouldBeNil)
	test.That(t, s.Abort(), test.ShouldBeNil)

	err = s.Append(models.NewSenseRecord(testStart, models.Readings{}))
	test.That(t, errors.Is(err, ErrFileWrite), test.ShouldBeTrue)
}
