package scrubbing

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

type scriptedBoard struct {
	frames [][]image.Rectangle
	calls  int
	err    error
}

func (b *scriptedBoard) Dirty() ([]image.Rectangle, error) {
	if b.err != nil {
		return nil, b.err
	}
	i := b.calls
	if i >= len(b.frames) {
		i = len(b.frames) - 1
	}
	b.calls++
	return b.frames[i], nil
}

func (b *scriptedBoard) Region() image.Rectangle {
	return image.Rect(0, 0, 640, 445)
}

type recordingPointer struct {
	events []string
	moves  []image.Point
}

func (p *recordingPointer) Teleport(pt image.Point) error {
	p.events = append(p.events, "move")
	p.moves = append(p.moves, pt)
	return nil
}

func (p *recordingPointer) Press() error {
	p.events = append(p.events, "press")
	return nil
}

func (p *recordingPointer) Release() error {
	p.events = append(p.events, "release")
	return nil
}

type probeAfter struct {
	n     int
	calls int
}

func (p *probeAfter) ConfirmCompletion(types.Minigame, int, time.Duration) (bool, error) {
	p.calls++
	return p.n > 0 && p.calls >= p.n, nil
}

type alwaysAlive struct{}

func (alwaysAlive) Alive() bool { return true }

func newTestController(b DirtSource, p Pointer, probe Confirmer) (*Controller, *[]time.Duration) {
	ctrl := NewController(b, p, probe, config.Default().Scrubbing, 2, 0, logger.Discard())
	clock := time.Unix(1000, 0)
	var sleeps []time.Duration
	ctrl.power = NewPowerTracker(config.Seconds(ctrl.cfg.PowerRecharge), func() time.Time { return clock })
	ctrl.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
		clock = clock.Add(d)
	}
	return ctrl, &sleeps
}

func TestPowerTracker(t *testing.T) {
	clock := time.Unix(0, 0)
	p := NewPowerTracker(time.Second, func() time.Time { return clock })
	assert.True(t, p.Ready())

	p.Spent()
	clock = clock.Add(600 * time.Millisecond)
	assert.False(t, p.Ready())
	clock = clock.Add(400 * time.Millisecond)
	assert.True(t, p.Ready())
}

func TestSolve_ScrubsUntilConfirmed(t *testing.T) {
	board := &scriptedBoard{frames: [][]image.Rectangle{{
		image.Rect(100, 100, 150, 120),
		image.Rect(400, 100, 450, 120),
		image.Rect(100, 200, 150, 210),
	}}}
	pointer := &recordingPointer{}
	ctrl, sleeps := newTestController(board, pointer, &probeAfter{n: 2})

	solved, err := ctrl.Solve(alwaysAlive{})
	require.NoError(t, err)
	assert.True(t, solved)

	// первый отрезок с зажатой кнопкой, дальше перезарядка ещё не прошла
	assert.Equal(t, []string{
		"move", "press", "move", "move", "release",
		"move", "move", "move",
		"move", "move", "move",
	}, pointer.events)
	assert.Equal(t, image.Point{X: 80, Y: 110}, pointer.moves[0])
	assert.Equal(t, image.Point{X: 170, Y: 110}, pointer.moves[1])
	assert.Equal(t, image.Point{X: 80, Y: 110}, pointer.moves[2])
	assert.Equal(t, []time.Duration{
		600 * time.Millisecond, 50 * time.Millisecond, 50 * time.Millisecond, 300 * time.Millisecond,
	}, *sleeps)
}

func TestSolve_CleanBoardWaitsForCheck(t *testing.T) {
	board := &scriptedBoard{frames: [][]image.Rectangle{nil}}
	pointer := &recordingPointer{}
	ctrl, sleeps := newTestController(board, pointer, &probeAfter{n: 3})

	solved, err := ctrl.Solve(alwaysAlive{})
	require.NoError(t, err)
	assert.True(t, solved)
	assert.Empty(t, pointer.events)
	assert.Len(t, *sleeps, 2)
}

func TestSolve_AttemptsExhausted(t *testing.T) {
	board := &scriptedBoard{frames: [][]image.Rectangle{{image.Rect(100, 100, 150, 120)}}}
	ctrl, _ := newTestController(board, &recordingPointer{}, &probeAfter{})
	ctrl.cfg.MaxAttempts = 3

	solved, err := ctrl.Solve(alwaysAlive{})
	require.NoError(t, err)
	assert.False(t, solved)
	assert.Equal(t, 3, board.calls)
}

func TestSolve_BoardError(t *testing.T) {
	ctrl, _ := newTestController(&scriptedBoard{err: errors.New("reference missing")}, &recordingPointer{}, &probeAfter{})

	_, err := ctrl.Solve(alwaysAlive{})
	assert.Error(t, err)
}
