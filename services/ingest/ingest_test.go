package ingest

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"sense-logger/models"
)

func TestParseCommand(t *testing.T) {
	for _, tc := range []struct {
		line   string
		ok     bool
		dir    models.Direction
		action models.Action
	}{
		{"left", true, models.DirectionLeft, models.ActionPressed},
		{"  UP  ", true, models.DirectionUp, models.ActionPressed},
		{"middle released", true, models.DirectionMiddle, models.ActionReleased},
		{"down held", true, models.DirectionDown, models.ActionHeld},
		{"right pressed", true, models.DirectionRight, models.ActionPressed},
		{"", false, 0, 0},
		{"none", false, 0, 0},
		{"left twice", false, 0, 0},
		{"left pressed now", false, 0, 0},
	} {
		ev, ok := ParseCommand(tc.line)
		test.That(t, ok, test.ShouldEqual, tc.ok)
		if ok {
			test.That(t, ev.Direction, test.ShouldEqual, tc.dir)
			test.That(t, ev.Action, test.ShouldEqual, tc.action)
		}
	}
}

func waitForStats(r *CommandReader, total uint64) (uint64, uint64) {
	for i := 0; i < 200; i++ {
		p, d := r.Stats()
		if p+d >= total {
			return p, d
		}
		time.Sleep(5 * time.Millisecond)
	}
	return r.Stats()
}

func TestCommandReader(t *testing.T) {
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	r := NewCommandReader(strings.NewReader("left\nbogus\nright released\n"), clk, 4)
	r.Start(context.Background())

	produced, dropped := waitForStats(r, 2)
	test.That(t, produced, test.ShouldEqual, uint64(2))
	test.That(t, dropped, test.ShouldEqual, uint64(0))

	ev, ok := r.Next()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ev.Direction, test.ShouldEqual, models.DirectionLeft)
	test.That(t, ev.Time, test.ShouldEqual, clk.Now())

	ev, ok = r.Next()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ev.Action, test.ShouldEqual, models.ActionReleased)

	_, ok = r.Next()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestCommandReaderDropsWhenFull(t *testing.T) {
	r := NewCommandReader(strings.NewReader("up\nup\nup\n"), clock.NewMock(), 1)
	r.Start(context.Background())

	produced, dropped := waitForStats(r, 3)
	test.That(t, produced, test.ShouldEqual, uint64(1))
	test.That(t, dropped, test.ShouldEqual, uint64(2))
}

func TestCommandReaderStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := NewCommandReader(pr, clock.NewMock(), 4)
	r.Start(ctx)

	_, err := pw.Write([]byte("left\n"))
	test.That(t, err, test.ShouldBeNil)
	produced, _ := waitForStats(r, 1)
	test.That(t, produced, test.ShouldEqual, uint64(1))

	cancel()
	select {
	case <-r.Done():
	case <-time.After(time.Second):
		t.Fatal("command reader still running after cancel")
	}
}

func TestSimSource(t *testing.T) {
	a, b := NewSimSource(7), NewSimSource(7)
	for i := 0; i < 50; i++ {
		ra, rb := a.Read(), b.Read()
		test.That(t, ra, test.ShouldResemble, rb)
		test.That(t, ra.Env.Humidity, test.ShouldBeBetween, 30.0, 60.0)
		test.That(t, ra.IMU.AccelZ, test.ShouldBeBetween, 0.99, 1.01)
		test.That(t, ra.IMU.Yaw, test.ShouldBeBetweenOrEqual, 0.0, 360.0)
	}
}
