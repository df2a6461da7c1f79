package identity

import (
	"fmt"
	"strings"
	"testing"

	"reflectboard/internal/app/points"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepo struct {
	byDeviceKey map[string]*Participant
	byID        map[string]*Participant
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		byDeviceKey: make(map[string]*Participant),
		byID:        make(map[string]*Participant),
	}
}

func (r *memoryRepo) GetByDeviceKey(deviceKey string) (*Participant, error) {
	p, ok := r.byDeviceKey[deviceKey]
	if !ok {
		return nil, fmt.Errorf("participant not found")
	}
	return p, nil
}

func (r *memoryRepo) GetByID(id string) (*Participant, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("participant not found")
	}
	return p, nil
}

func (r *memoryRepo) Create(p *Participant) error {
	r.byDeviceKey[p.DeviceKey] = p
	r.byID[p.ID] = p
	return nil
}

func (r *memoryRepo) UpdatePoints(id string, total int) error {
	p, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("participant not found")
	}
	p.Points = total
	return nil
}

func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, zap.NewNop()), repo
}

func TestGetOrCreateAssignsPairedAvatarAndNickname(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.ID, "user_"))
	assert.Equal(t, 0, p.Points)

	// Avatar and nickname come from the same slot of the paired lists.
	idx := -1
	for i, avatar := range Avatars {
		if avatar == p.Avatar {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, Nicknames[idx], p.Nickname)
}

func TestGetOrCreateIsStablePerDeviceKey(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)
	second, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Nickname, second.Nickname)

	other, err := svc.GetOrCreate("device-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestGetOrCreateRejectsEmptyDeviceKey(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetOrCreate("")
	assert.Error(t, err)
}

func TestAddPointsAccumulates(t *testing.T) {
	svc, _ := newTestService()
	p, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)

	total, err := svc.AddPoints(p.ID, points.Post)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	total, err = svc.AddPoints(p.ID, points.Comment)
	require.NoError(t, err)
	assert.Equal(t, 15, total)
}

func TestAddPointsFloorsAtZero(t *testing.T) {
	svc, _ := newTestService()
	p, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)

	total, err := svc.AddPoints(p.ID, -points.SendReaction)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestAddPointsUnknownParticipant(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddPoints("user_ghost", 10)
	assert.Error(t, err)
}

func TestSetPointsFloorsAtZero(t *testing.T) {
	svc, repo := newTestService()
	p, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)

	require.NoError(t, svc.SetPoints(p.ID, -50))
	assert.Equal(t, 0, repo.byID[p.ID].Points)

	require.NoError(t, svc.SetPoints(p.ID, 120))
	assert.Equal(t, 120, repo.byID[p.ID].Points)
}

func TestProfileReportsRank(t *testing.T) {
	svc, _ := newTestService()
	p, err := svc.GetOrCreate("device-1")
	require.NoError(t, err)

	profile, err := svc.Profile("device-1")
	require.NoError(t, err)
	assert.Equal(t, "Starter", profile.Rank)

	require.NoError(t, svc.SetPoints(p.ID, 350))
	profile, err = svc.Profile("device-1")
	require.NoError(t, err)
	assert.Equal(t, "Silver", profile.Rank)
	assert.Equal(t, 350, profile.Points)
}

func TestAvatarAndNicknameListsArePaired(t *testing.T) {
	assert.Equal(t, len(Avatars), len(Nicknames))
	assert.NotEmpty(t, Avatars)
}
