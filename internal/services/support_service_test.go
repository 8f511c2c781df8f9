package services

import (
	"testing"

	"github.com/craftify/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type supportFixture struct {
	service  *SupportService
	supports *fakeSupportRepo
	users    *fakeUserRepo

	user    *models.User
	creator *models.User
}

func newSupportFixture() *supportFixture {
	f := &supportFixture{
		supports: newFakeSupportRepo(),
		users:    newFakeUserRepo(),
	}
	f.user = f.users.addUser("ada", "principal-ada")
	f.creator = f.users.addUser("ben", "principal-ben")
	f.service = NewSupportService(f.supports, f.users, zap.NewNop())
	return f
}

func TestSupportIsIdempotent(t *testing.T) {
	f := newSupportFixture()

	require.NoError(t, f.service.Support(f.user.ID, f.creator.ID))
	// Supporting again is a no-op: set semantics, counter untouched
	require.NoError(t, f.service.Support(f.user.ID, f.creator.ID))

	ids, err := f.service.Supporting(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.creator.ID}, ids)

	u, err := f.users.GetUserByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.SupportingCount)
}

func TestSelfSupportRejected(t *testing.T) {
	f := newSupportFixture()
	assert.ErrorIs(t, f.service.Support(f.user.ID, f.user.ID), ErrSelfSupport)
}

func TestUnsupportAdjustsCount(t *testing.T) {
	f := newSupportFixture()
	third := f.users.addUser("cam", "principal-cam")

	require.NoError(t, f.service.Support(f.user.ID, f.creator.ID))
	require.NoError(t, f.service.Support(f.user.ID, third.ID))
	require.NoError(t, f.service.Unsupport(f.user.ID, f.creator.ID))

	ids, err := f.service.Supporting(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{third.ID}, ids)

	u, err := f.users.GetUserByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.SupportingCount)
}

func TestUnsupportMissing(t *testing.T) {
	f := newSupportFixture()

	// No edge at all
	assert.ErrorIs(t, f.service.Unsupport(f.user.ID, f.creator.ID), ErrNotFound)

	// Edge exists but the creator is not in it
	require.NoError(t, f.service.Support(f.user.ID, f.creator.ID))
	third := f.users.addUser("cam", "principal-cam")
	assert.ErrorIs(t, f.service.Unsupport(f.user.ID, third.ID), ErrNotFound)

	u, err := f.users.GetUserByID(f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.SupportingCount)
}

func TestIsSupporting(t *testing.T) {
	f := newSupportFixture()

	ok, err := f.service.IsSupporting(f.user.ID, f.creator.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.service.Support(f.user.ID, f.creator.ID))
	ok, err = f.service.IsSupporting(f.user.ID, f.creator.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSupportingMissingEdgeIsEmpty(t *testing.T) {
	f := newSupportFixture()

	ids, err := f.service.Supporting(f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
