package patching

import (
	"errors"
	"image"
	"testing"
	"time"

	"minibot/internal/config"
	"minibot/internal/logger"
	"minibot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedDetector struct {
	frames [][]image.Point
	calls  int
	err    error
}

func (d *scriptedDetector) Detect() ([]image.Point, error) {
	if d.err != nil {
		return nil, d.err
	}
	i := d.calls
	if i >= len(d.frames) {
		i = len(d.frames) - 1
	}
	d.calls++
	return d.frames[i], nil
}

type recordingClicker struct {
	pos    image.Point
	clicks []image.Point
}

func (c *recordingClicker) PressAt(p image.Point) error {
	c.clicks = append(c.clicks, p)
	c.pos = p
	return nil
}

func (c *recordingClicker) Position() image.Point {
	return c.pos
}

type funcProbe func() bool

func (f funcProbe) ConfirmCompletion(types.Minigame, int, time.Duration) (bool, error) {
	return f(), nil
}

type countdown struct {
	n int
}

func (c *countdown) Alive() bool {
	if c.n <= 0 {
		return false
	}
	c.n--
	return true
}

type alwaysAlive struct{}

func (alwaysAlive) Alive() bool { return true }

func newTestController(d LeakDetector, c Clicker, probe Confirmer) (*Controller, *[]time.Duration) {
	ctrl := NewController(d, c, probe, config.Default().Patching, 2, 0, logger.Discard())
	clock := time.Unix(1000, 0)
	var sleeps []time.Duration
	ctrl.now = func() time.Time { return clock }
	ctrl.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
		clock = clock.Add(d)
	}
	return ctrl, &sleeps
}

func TestSolve_NearestFirstWithClickInterval(t *testing.T) {
	detector := &scriptedDetector{frames: [][]image.Point{{{X: 100, Y: 100}, {X: 10, Y: 10}}}}
	clicker := &recordingClicker{}
	probe := funcProbe(func() bool { return len(clicker.clicks) >= 2 })
	ctrl, sleeps := newTestController(detector, clicker, probe)

	solved, err := ctrl.Solve(alwaysAlive{})
	require.NoError(t, err)
	assert.True(t, solved)
	assert.Equal(t, []image.Point{{X: 10, Y: 10}, {X: 100, Y: 100}}, clicker.clicks)

	// после первого клика прошло 20 ms простоя, до следующего слота ещё ~90 ms
	var longest time.Duration
	for _, d := range *sleeps {
		if d > longest {
			longest = d
		}
	}
	assert.InDelta(t, float64(90*time.Millisecond), float64(longest), float64(time.Millisecond))
}

func TestSolve_ReclickCooldown(t *testing.T) {
	detector := &scriptedDetector{frames: [][]image.Point{{{X: 50, Y: 50}}, {{X: 60, Y: 55}}}}
	clicker := &recordingClicker{}
	probe := funcProbe(func() bool { return false })
	ctrl, _ := newTestController(detector, clicker, probe)

	solved, err := ctrl.Solve(&countdown{n: 10})
	require.NoError(t, err)
	assert.False(t, solved)
	assert.Equal(t, []image.Point{{X: 50, Y: 50}}, clicker.clicks, "nearby leak inside the cooldown is skipped")
	assert.GreaterOrEqual(t, detector.calls, 2)
}

func TestSolve_ReclickAfterCooldown(t *testing.T) {
	detector := &scriptedDetector{frames: [][]image.Point{{{X: 50, Y: 50}}}}
	clicker := &recordingClicker{}
	probe := funcProbe(func() bool { return len(clicker.clicks) >= 2 })
	ctrl, _ := newTestController(detector, clicker, probe)

	solved, err := ctrl.Solve(alwaysAlive{})
	require.NoError(t, err)
	assert.True(t, solved)
	assert.Len(t, clicker.clicks, 2)
	// между кликами должно пройти не меньше 0.75 s по часам контроллера
	assert.Greater(t, detector.calls, 70)
}

func TestSolve_IdleWhenNothingFound(t *testing.T) {
	detector := &scriptedDetector{frames: [][]image.Point{nil}}
	clicker := &recordingClicker{}
	ctrl, sleeps := newTestController(detector, clicker, funcProbe(func() bool { return false }))

	solved, err := ctrl.Solve(&countdown{n: 3})
	require.NoError(t, err)
	assert.False(t, solved)
	assert.Empty(t, clicker.clicks)
	assert.Equal(t, []time.Duration{20 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}, *sleeps)
}

func TestSolve_DetectError(t *testing.T) {
	detector := &scriptedDetector{err: errors.New("capture failed")}
	ctrl, _ := newTestController(detector, &recordingClicker{}, funcProbe(func() bool { return false }))

	solved, err := ctrl.Solve(alwaysAlive{})
	assert.False(t, solved)
	assert.ErrorContains(t, err, "capture failed")
}

func TestSolve_StoppedBeforeStart(t *testing.T) {
	detector := &scriptedDetector{frames: [][]image.Point{{{X: 1, Y: 1}}}}
	ctrl, _ := newTestController(detector, &recordingClicker{}, funcProbe(func() bool { return false }))

	solved, err := ctrl.Solve(&countdown{n: 0})
	require.NoError(t, err)
	assert.False(t, solved)
	assert.Zero(t, detector.calls)
}
