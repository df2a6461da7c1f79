package session

import (
	"errors"
	"strings"
	"testing"

	"reflectboard/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memoryRepo struct {
	sessions  []*Session
	saveCalls int
}

func (r *memoryRepo) GetAllSessions() ([]*Session, error) { return r.sessions, nil }

func (r *memoryRepo) GetSessionByID(id string) (*Session, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) SaveSession(session *Session) error {
	r.saveCalls++
	for i, s := range r.sessions {
		if s.ID == session.ID {
			r.sessions[i] = session
			return nil
		}
	}
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *memoryRepo) DeleteSession(id string) error {
	for i, s := range r.sessions {
		if s.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryRepo) CountSessions() (int64, error) { return int64(len(r.sessions)), nil }

func newTestService() (Service, *memoryRepo, *utils.EventBus) {
	repo := &memoryRepo{}
	bus := utils.NewEventBus()
	return NewService(repo, bus, zap.NewNop()), repo, bus
}

func TestCreateSessionAutoNames(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.CreateSession()
	require.NoError(t, err)
	assert.Equal(t, "Session 1", first.Name)
	assert.True(t, strings.HasPrefix(first.ID, "session_"))
	assert.NotEmpty(t, first.Date)

	second, err := svc.CreateSession()
	require.NoError(t, err)
	assert.Equal(t, "Session 2", second.Name)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateSessionPublishesEvent(t *testing.T) {
	svc, _, bus := newTestService()

	var events []utils.Event
	bus.Subscribe(utils.EventSessionsChanged, func(e utils.Event) {
		events = append(events, e)
	})

	created, err := svc.CreateSession()
	require.NoError(t, err)

	require.Len(t, events, 1)
	data, ok := events[0].Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, created.ID, data["session_id"])
}

func TestRenameSession(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateSession()
	require.NoError(t, err)

	renamed, err := svc.RenameSession(created.ID, "  Retro week 3  ")
	require.NoError(t, err)
	assert.Equal(t, "Retro week 3", renamed.Name)

	fetched, err := svc.GetSessionByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retro week 3", fetched.Name)
}

func TestRenameSessionRejectsEmptyName(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateSession()
	require.NoError(t, err)

	_, err = svc.RenameSession(created.ID, "   ")
	assert.Error(t, err)
}

func TestRenameSessionIdenticalNameSkipsSave(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.CreateSession()
	require.NoError(t, err)
	savesBefore := repo.saveCalls

	same, err := svc.RenameSession(created.ID, created.Name)
	require.NoError(t, err)
	assert.Equal(t, created.Name, same.Name)
	assert.Equal(t, savesBefore, repo.saveCalls)
}

func TestRenameMissingSessionIsSilentNoop(t *testing.T) {
	svc, _, _ := newTestService()

	got, err := svc.RenameSession("session_ghost", "New name")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

type brokenRepo struct {
	*memoryRepo
}

func (r *brokenRepo) GetSessionByID(string) (*Session, error) {
	return nil, errors.New("connection refused")
}

func TestRenameSurfacesRepositoryFailures(t *testing.T) {
	svc := NewService(&brokenRepo{&memoryRepo{}}, utils.NewEventBus(), zap.NewNop())

	got, err := svc.RenameSession("session_1", "New name")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestDeleteSession(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreateSession()
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(created.ID))

	sessions, err := svc.ListSessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
