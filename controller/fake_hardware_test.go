package controller

import (
	"context"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sense-logger/models"
	"sense-logger/services/hardware"
	"sense-logger/utils"
)

// fakeHardware records everything the controllers ask of the board.
type fakeHardware struct {
	readings models.Readings
	readErr  error
	reads    int

	events []models.StickEvent

	images   []models.Image
	texts    []string
	lowLight bool

	ip    string
	ipErr error

	shutdowns int
	closed    bool
}

var _ hardware.Hardware = (*fakeHardware)(nil)

func (f *fakeHardware) ReadSensors(ctx context.Context) (models.Readings, error) {
	f.reads++
	if f.readErr != nil {
		return models.Readings{}, f.readErr
	}
	return f.readings, nil
}

func (f *fakeHardware) PollJoystick() (models.StickEvent, bool, error) {
	if len(f.events) == 0 {
		return models.StickEvent{}, false, nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, true, nil
}

func (f *fakeHardware) ShowText(ctx context.Context, text string, fg, bg color.RGBA) error {
	f.texts = append(f.texts, text)
	f.images = append(f.images, models.Image{})
	return nil
}

func (f *fakeHardware) ShowImage(img models.Image) error {
	f.images = append(f.images, img)
	return nil
}

func (f *fakeHardware) SetLowLight(on bool) error {
	f.lowLight = on
	return nil
}

func (f *fakeHardware) IPAddress(iface string) (string, error) {
	return f.ip, f.ipErr
}

func (f *fakeHardware) Shutdown(ctx context.Context) error {
	f.shutdowns++
	return nil
}

func (f *fakeHardware) Close() error {
	f.closed = true
	return nil
}

// current is the image last put on the matrix.
func (f *fakeHardware) current() models.Image {
	if len(f.images) == 0 {
		return models.Image{}
	}
	return f.images[len(f.images)-1]
}

func (f *fakeHardware) press(dirs ...models.Direction) {
	for _, d := range dirs {
		f.events = append(f.events, models.StickEvent{Direction: d, Action: models.ActionPressed})
	}
}

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *utils.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := utils.NewDefaultConfig()
	cfg.Storage.WorkingDir = dir
	cfg.Storage.FinishedDir = filepath.Join(dir, "Finished")
	cfg.Storage.SyncEveryRow = false
	cfg.Display.SplashMs = 0
	cfg.Display.LoggedHoldMs = 0
	cfg.Network.Interface = "wlan0"
	return cfg
}

type testDevice struct {
	*DeviceController
	hw  *fakeHardware
	clk *clock.Mock
	cfg *utils.Config
}

func newTestDevice(t *testing.T, cfg *utils.Config) *testDevice {
	t.Helper()
	if cfg == nil {
		cfg = testConfig(t)
	}
	clk := clock.NewMock()
	clk.Set(testStart)
	hw := &fakeHardware{
		ip: "10.0.0.7",
		readings: models.Readings{
			Env: models.EnvData{TempFromHumidity: 24.5, TempFromPressure: 24.1, Humidity: 41.2, Pressure: 1009.87},
			IMU: models.IMUData{Pitch: 1.5, Roll: 358.25, Yaw: 90, AccelZ: 1},
		},
	}
	return &testDevice{DeviceController: NewDeviceController(cfg, hw, clk), hw: hw, clk: clk, cfg: cfg}
}

// observeLogs routes the global logger into an observer for the duration of
// the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	utils.SetLogger(utils.NewLoggerFromZap(zap.New(core)))
	t.Cleanup(func() { utils.SetLogger(nil) })
	return logs
}
