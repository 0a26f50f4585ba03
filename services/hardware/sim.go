package hardware

import (
	"context"
	"image/color"
	"io"
	"time"

	"github.com/benbjohnson/clock"

	"sense-logger/models"
	"sense-logger/services/ingest"
	"sense-logger/utils"
	"sense-logger/views"
)

// SimHAT is a software stand-in for the board. Readings are simulated,
// joystick commands come from a text stream (one direction per line) and
// display output goes to the log.
type SimHAT struct {
	src      *ingest.SimSource
	commands *ingest.CommandReader
	clk      clock.Clock
	step     time.Duration

	shown    models.Image
	lowLight bool
}

var _ Hardware = (*SimHAT)(nil)

// OpenSimHAT starts reading commands from input. The reader stops when
// input ends or ctx is done; input is closed on cancellation if it is an
// io.Closer.
func OpenSimHAT(ctx context.Context, opts Options, input io.Reader) *SimHAT {
	clk := opts.clock()
	s := &SimHAT{
		src:  ingest.NewSimSource(clk.Now().UnixNano()),
		clk:  clk,
		step: opts.ScrollStep,
	}
	if input != nil {
		s.commands = ingest.NewCommandReader(input, clk, 16)
		s.commands.Start(ctx)
	}
	utils.L().Info("simulated sense hat ready")
	return s
}

func (s *SimHAT) ReadSensors(ctx context.Context) (models.Readings, error) {
	if err := ctx.Err(); err != nil {
		return models.Readings{}, err
	}
	return s.src.Read(), nil
}

func (s *SimHAT) PollJoystick() (models.StickEvent, bool, error) {
	if s.commands == nil {
		return models.StickEvent{}, false, nil
	}
	ev, ok := s.commands.Next()
	return ev, ok, nil
}

func (s *SimHAT) ShowText(ctx context.Context, text string, fg, bg color.RGBA) error {
	utils.L().Info("[matrix] text %q", text)
	return scroll(ctx, s.clk, s.step, views.TextFrames(text, fg, bg), s.ShowImage)
}

func (s *SimHAT) ShowImage(img models.Image) error {
	s.shown = img
	return nil
}

// Shown returns the frame currently on the simulated matrix.
func (s *SimHAT) Shown() models.Image { return s.shown }

func (s *SimHAT) SetLowLight(on bool) error {
	s.lowLight = on
	utils.L().Info("[matrix] low light %v", on)
	return nil
}

func (s *SimHAT) IPAddress(iface string) (string, error) {
	return interfaceIPv4(iface)
}

func (s *SimHAT) Shutdown(ctx context.Context) error {
	utils.L().Warn("[power] shutdown requested (simulated, not powering off)")
	return nil
}

func (s *SimHAT) Close() error {
	if s.commands != nil {
		p, d := s.commands.Stats()
		utils.L().Debug("simulated joystick  produced=%d  dropped=%d", p, d)
	}
	return nil
}
