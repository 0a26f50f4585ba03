package ingest

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync/atomic"

	"github.com/benbjohnson/clock"

	"sense-logger/models"
	"sense-logger/utils"
)

// CommandReader turns text lines such as "left" or "up held" into joystick
// events. It stands in for the stick when the board is simulated.
type CommandReader struct {
	src      io.Reader
	clk      clock.Clock
	Out      chan models.StickEvent
	done     chan struct{}
	dropped  uint64
	produced uint64
}

func NewCommandReader(src io.Reader, clk clock.Clock, buffer int) *CommandReader {
	if buffer <= 0 {
		buffer = 16
	}
	return &CommandReader{
		src:  src,
		clk:  clk,
		Out:  make(chan models.StickEvent, buffer),
		done: make(chan struct{}),
	}
}

// Start reads src in the background until it ends or ctx is done. On
// cancellation a src implementing io.Closer is closed so a pending read
// returns.
func (r *CommandReader) Start(ctx context.Context) {
	go r.run(ctx)
	if c, ok := r.src.(io.Closer); ok {
		go func() {
			select {
			case <-ctx.Done():
				if err := c.Close(); err != nil {
					utils.L().Debug("close command source: %v", err)
				}
			case <-r.done:
			}
		}()
	}
	utils.L().Info("command reader started  (buffer=%d)", cap(r.Out))
}

// Done is closed once the reader goroutine has returned.
func (r *CommandReader) Done() <-chan struct{} {
	return r.done
}

func (r *CommandReader) run(ctx context.Context) {
	defer close(r.done)
	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		ev, ok := ParseCommand(sc.Text())
		if !ok {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				utils.L().Warn("unrecognized command %q", line)
			}
			continue
		}
		ev.Time = r.clk.Now()

		select {
		case r.Out <- ev:
			atomic.AddUint64(&r.produced, 1)
		default:
			atomic.AddUint64(&r.dropped, 1)
		}
	}
	utils.L().Info("command reader stopped  (produced=%d, dropped=%d)",
		atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped))
}

// ParseCommand parses "<direction> [pressed|held|released]". The action
// defaults to pressed.
func ParseCommand(line string) (models.StickEvent, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 || len(fields) > 2 {
		return models.StickEvent{}, false
	}
	dir, ok := models.ParseDirection(fields[0])
	if !ok {
		return models.StickEvent{}, false
	}
	ev := models.StickEvent{Direction: dir, Action: models.ActionPressed}
	if len(fields) == 2 {
		switch fields[1] {
		case "pressed":
		case "held":
			ev.Action = models.ActionHeld
		case "released":
			ev.Action = models.ActionReleased
		default:
			return models.StickEvent{}, false
		}
	}
	return ev, true
}

// Next returns a pending event without blocking.
func (r *CommandReader) Next() (models.StickEvent, bool) {
	select {
	case ev := <-r.Out:
		return ev, true
	default:
		return models.StickEvent{}, false
	}
}

func (r *CommandReader) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&r.produced), atomic.LoadUint64(&r.dropped)
}
