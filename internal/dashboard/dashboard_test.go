package dashboard

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"minibot/internal/database"
	"minibot/internal/logger"
	"minibot/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	status    *database.Status
	actions   []database.ActionRecord
	runs      []database.RunRecord
	added     []string
	statusErr error
}

func (s *fakeStore) GetLatestStatus() (database.Status, error) {
	if s.statusErr != nil {
		return database.Status{}, s.statusErr
	}
	if s.status == nil {
		return database.Status{}, fmt.Errorf("ошибка чтения статуса: %w", sql.ErrNoRows)
	}
	return *s.status, nil
}

func (s *fakeStore) RecentActions(limit int) ([]database.ActionRecord, error) {
	return s.actions, nil
}

func (s *fakeStore) RecentRuns(limit int) ([]database.RunRecord, error) {
	return s.runs, nil
}

func (s *fakeStore) AddAction(action string) error {
	s.added = append(s.added, action)
	return nil
}

func newTestServer(t *testing.T, store *fakeStore) http.Handler {
	t.Helper()
	server, err := NewServer(store, 10, logger.Discard())
	require.NoError(t, err)
	return server.Handler()
}

func TestCommands(t *testing.T) {
	commands := Commands()
	assert.Equal(t, "stop", commands[0])
	assert.Contains(t, commands, "start:bracing")
	assert.Contains(t, commands, "start:all_sequence")
	assert.Len(t, commands, len(types.Minigames)+2)
}

func TestIndex_RendersStatusAndRuns(t *testing.T) {
	store := &fakeStore{
		status: &database.Status{ID: 1, CurrentStatus: "running:bracing", UpdatedAt: time.Now()},
		actions: []database.ActionRecord{
			{ID: 7, Action: "start:bracing", Executed: true, CreatedAt: time.Now()},
		},
		runs: []database.RunRecord{
			{SessionID: uuid.New(), Minigame: types.Bracing, Result: "solved", StartedAt: time.Now(), Duration: 3 * time.Second},
			{SessionID: uuid.New(), Minigame: types.Patching, Result: "aborted", StartedAt: time.Now(), Duration: time.Second},
		},
	}

	rec := httptest.NewRecorder()
	newTestServer(t, store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "running:bracing")
	assert.Contains(t, body, "1/2 решено")
	assert.Contains(t, body, "3.0 с")
	assert.Contains(t, body, `value="start:patching"`)
}

func TestIndex_EmptyDatabase(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, &fakeStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Нет записей")
}

func TestIndex_DatabaseError(t *testing.T) {
	store := &fakeStore{statusErr: errors.New("connection refused")}
	rec := httptest.NewRecorder()
	newTestServer(t, store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIndex_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t, &fakeStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func postAction(t *testing.T, handler http.Handler, action string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"action": {action}}
	req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAction_QueuesNormalizedCommand(t *testing.T) {
	store := &fakeStore{}
	handler := newTestServer(t, store)

	rec := postAction(t, handler, " START:Patching ")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []string{"start:patching"}, store.added)
}

func TestAction_RejectsUnknown(t *testing.T) {
	store := &fakeStore{}
	handler := newTestServer(t, store)

	rec := postAction(t, handler, "dance")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.added)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/action", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
