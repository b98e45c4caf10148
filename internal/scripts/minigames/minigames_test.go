package minigames

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"minibot/internal/config"
	"minibot/internal/database"
	"minibot/internal/interrupt"
	"minibot/internal/logger"
	"minibot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClicker struct {
	clicks    []image.Point
	teleports []image.Point
}

func (c *fakeClicker) ClickButton(p image.Point) error {
	c.clicks = append(c.clicks, p)
	return nil
}

func (c *fakeClicker) Teleport(p image.Point) error {
	c.teleports = append(c.teleports, p)
	return nil
}

type fakeJournal struct {
	statuses []string
	runs     []database.RunRecord
}

func (j *fakeJournal) UpdateStatus(status string) error {
	j.statuses = append(j.statuses, status)
	return nil
}

func (j *fakeJournal) SaveRunAsync(run database.RunRecord) {
	j.runs = append(j.runs, run)
}

func (j *fakeJournal) results() []string {
	var out []string
	for _, r := range j.runs {
		out = append(out, r.Minigame.String()+":"+r.Result)
	}
	return out
}

func solved() Solver {
	return SolverFunc(func(interrupt.Lease) (bool, error) { return true, nil })
}

func newTestBot(t *testing.T) (*Bot, *interrupt.RunControl, *fakeClicker, *fakeJournal, *[]time.Duration) {
	t.Helper()
	rc := interrupt.NewRunControl()
	clicker := &fakeClicker{}
	journal := &fakeJournal{}

	cfg := config.Default()
	cfg.SequenceOrder = []string{"bracing", "patching"}
	bot, err := NewBot(rc, clicker, cfg, logger.Discard())
	require.NoError(t, err)
	bot.SetJournal(journal)

	var sleeps []time.Duration
	bot.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return bot, rc, clicker, journal, &sleeps
}

func TestNewBot_BadSequence(t *testing.T) {
	cfg := config.Default()
	cfg.SequenceOrder = []string{"bracing", "fishing"}
	_, err := NewBot(interrupt.NewRunControl(), &fakeClicker{}, cfg, logger.Discard())
	assert.Error(t, err)
}

func TestPlay_SingleMinigame(t *testing.T) {
	bot, rc, clicker, journal, sleeps := newTestBot(t)
	bot.Register(types.Bracing, solved())

	rc.Start(types.Bracing)
	assert.True(t, bot.Play(rc.Lease(), types.Bracing))

	assert.Equal(t, []image.Point{{X: 955, Y: 910}}, clicker.clicks)
	assert.Empty(t, clicker.teleports)
	assert.Contains(t, *sleeps, 2*time.Second)
	assert.Equal(t, types.StateComplete, bot.State())
	assert.Equal(t, []string{"running:bracing"}, journal.statuses)
	assert.Equal(t, []string{"bracing:solved"}, journal.results())
	assert.Equal(t, bot.session, journal.runs[0].SessionID)
}

func TestPlay_HammeringMovesPointerAway(t *testing.T) {
	bot, rc, clicker, _, _ := newTestBot(t)
	bot.Register(types.Hammering, solved())

	rc.Start(types.Hammering)
	assert.True(t, bot.Play(rc.Lease(), types.Hammering))
	assert.Equal(t, []image.Point{{X: 1120, Y: 910}}, clicker.clicks)
	assert.Equal(t, []image.Point{{X: 960, Y: 540}}, clicker.teleports)
}

func TestPlay_NoSolver(t *testing.T) {
	bot, rc, clicker, journal, _ := newTestBot(t)

	rc.Start(types.Sawing)
	assert.False(t, bot.Play(rc.Lease(), types.Sawing))
	assert.Empty(t, clicker.clicks, "menu is not touched without a solver")
	assert.Equal(t, []string{"sawing:unsupported"}, journal.results())
}

func TestPlay_SolverError(t *testing.T) {
	bot, rc, _, journal, _ := newTestBot(t)
	bot.Register(types.Bracing, SolverFunc(func(interrupt.Lease) (bool, error) {
		return false, errors.New("display lost")
	}))

	rc.Start(types.Bracing)
	assert.False(t, bot.Play(rc.Lease(), types.Bracing))
	assert.Equal(t, []string{"bracing:failed"}, journal.results())
}

func TestPlay_Sequence(t *testing.T) {
	bot, rc, clicker, journal, sleeps := newTestBot(t)
	bot.Register(types.Bracing, solved())

	patchingCalls := 0
	bot.Register(types.Patching, SolverFunc(func(interrupt.Lease) (bool, error) {
		patchingCalls++
		if patchingCalls == 2 {
			// F11 во втором цикле
			rc.Stop()
			return false, nil
		}
		return true, nil
	}))

	rc.Start(types.AllSequence)
	assert.False(t, bot.Play(rc.Lease(), types.AllSequence))

	assert.Equal(t, []string{"bracing:solved", "patching:solved", "bracing:solved", "patching:aborted"}, journal.results())
	assert.Len(t, clicker.clicks, 4)

	seconds := 0
	for _, d := range *sleeps {
		if d == time.Second {
			seconds++
		}
	}
	// пауза между играми в двух циклах и отсчёт 10 с между циклами
	assert.Equal(t, 2+10, seconds)
	assert.Equal(t, "running:all_sequence", journal.statuses[0])
}

func TestPlay_SequenceStopsOnFailure(t *testing.T) {
	bot, rc, _, journal, _ := newTestBot(t)
	bot.Register(types.Bracing, SolverFunc(func(interrupt.Lease) (bool, error) {
		return false, errors.New("serial port closed")
	}))
	bot.Register(types.Patching, solved())

	rc.Start(types.AllSequence)
	assert.False(t, bot.Play(rc.Lease(), types.AllSequence))
	assert.Equal(t, []string{"bracing:failed"}, journal.results())
}

func TestRun_StopsAfterCompletion(t *testing.T) {
	bot, rc, _, journal, _ := newTestBot(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot.Register(types.Bracing, SolverFunc(func(interrupt.Lease) (bool, error) {
		cancel()
		return true, nil
	}))

	rc.Start(types.Bracing)
	require.NoError(t, bot.Run(ctx))

	assert.False(t, rc.Running(), "complete state stops the run")
	assert.Equal(t, types.StateMenu, bot.State())
	assert.Equal(t, []string{"running:bracing", database.StatusIdle}, journal.statuses)
}
