package minigames

import (
	"errors"
	"testing"

	"minibot/internal/interrupt"
	"minibot/internal/logger"
	"minibot/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queuedAction struct {
	id       int
	text     string
	executed bool
}

type fakeActionSource struct {
	actions  []*queuedAction
	statuses []string
	err      error
}

func (s *fakeActionSource) add(text string) {
	s.actions = append(s.actions, &queuedAction{id: len(s.actions) + 1, text: text})
}

func (s *fakeActionSource) GetLatestUnexecutedAction() (string, int, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	for i := len(s.actions) - 1; i >= 0; i-- {
		if !s.actions[i].executed {
			return s.actions[i].text, s.actions[i].id, nil
		}
	}
	return "", 0, nil
}

func (s *fakeActionSource) MarkActionAsExecuted(id int) error {
	s.actions[id-1].executed = true
	return nil
}

func (s *fakeActionSource) UpdateStatus(status string) error {
	s.statuses = append(s.statuses, status)
	return nil
}

func TestRemoteControl_StartAndStop(t *testing.T) {
	source := &fakeActionSource{}
	rc := interrupt.NewRunControl()
	remote := NewRemoteControl(source, rc, 0, logger.Discard())

	source.add("start:patching")
	require.NoError(t, remote.Poll())
	assert.True(t, rc.Running())
	assert.Equal(t, types.Patching, rc.Target())
	assert.True(t, source.actions[0].executed)

	source.add("stop")
	require.NoError(t, remote.Poll())
	assert.False(t, rc.Running())
	assert.Equal(t, []string{"stopped"}, source.statuses)

	// очередь пуста
	require.NoError(t, remote.Poll())
	assert.False(t, rc.Running())
}

func TestRemoteControl_UnknownActionIsConsumed(t *testing.T) {
	source := &fakeActionSource{}
	rc := interrupt.NewRunControl()
	remote := NewRemoteControl(source, rc, 0, logger.Discard())

	source.add("dance")
	require.NoError(t, remote.Poll())
	assert.True(t, source.actions[0].executed)
	assert.False(t, rc.Running())
}

func TestRemoteControl_SourceError(t *testing.T) {
	source := &fakeActionSource{err: errors.New("connection refused")}
	remote := NewRemoteControl(source, interrupt.NewRunControl(), 0, logger.Discard())
	assert.ErrorContains(t, remote.Poll(), "connection refused")
}
