package services

import (
	"context"
	"testing"

	"github.com/craftify/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testGrants = GrantFunctions{
	UserNotifications:      "fn-user-notifications",
	CommunityNotifications: "fn-community-notifications",
	Interactions:           "fn-interactions",
	Comments:               "fn-comments",
	Feedback:               "fn-feedback",
	Replies:                "fn-replies",
}

type interactionFixture struct {
	service       *InteractionService
	users         *fakeUserRepo
	likes         *fakeLikeRepo
	saves         *fakeSaveRepo
	itemLikes     *fakeItemLikeRepo
	subjects      *fakeSubjectRepo
	notifications *fakeNotificationRepo
	executor      *fakeExecutor

	author *models.User
	actor  *models.User
}

func newInteractionFixture() *interactionFixture {
	f := &interactionFixture{
		users:         newFakeUserRepo(),
		likes:         &fakeLikeRepo{},
		saves:         &fakeSaveRepo{},
		itemLikes:     &fakeItemLikeRepo{},
		subjects:      newFakeSubjectRepo(),
		notifications: &fakeNotificationRepo{},
		executor:      &fakeExecutor{},
	}
	f.author = f.users.addUser("ada", "principal-ada")
	f.actor = f.users.addUser("ben", "principal-ben")

	logger := zap.NewNop()
	notifier := NewNotificationService(f.notifications, f.users, f.executor, testGrants, logger)
	f.service = NewInteractionService(f.likes, f.saves, f.itemLikes, f.subjects, f.users, notifier, f.executor, testGrants, logger)
	return f
}

func TestLikeCreatesGrantAndNotification(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectCreation, f.author.PrincipalID)

	like, err := f.service.Like(context.Background(), models.SubjectCreation, subject.ID.Hex(), f.actor.ID)
	require.NoError(t, err)
	require.NotZero(t, like.ID)

	count, err := f.service.LikeCount(subject.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// One grant for the like row, one for the notification row
	require.Equal(t, 2, f.executor.callCount())
	assert.Equal(t, testGrants.Interactions, f.executor.calls[0].functionID)
	assert.Equal(t, []string{f.author.PrincipalID}, f.executor.calls[0].payload.Principals)

	rows := f.notifications.bySpace(models.SpaceUser)
	require.Len(t, rows, 1)
	assert.Equal(t, f.author.PrincipalID, rows[0].ReceiverID)
	assert.Equal(t, f.actor.ID, rows[0].SenderID)
	assert.Equal(t, models.NotificationLike, rows[0].Type)
	assert.Contains(t, rows[0].Message, "ben")
}

func TestLikeDuplicateRejected(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectProject, f.author.PrincipalID)

	_, err := f.service.Like(context.Background(), models.SubjectProject, subject.ID.Hex(), f.actor.ID)
	require.NoError(t, err)

	_, err = f.service.Like(context.Background(), models.SubjectProject, subject.ID.Hex(), f.actor.ID)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	count, err := f.service.LikeCount(subject.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeOwnSubjectSuppressesNotification(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectCreation, f.author.PrincipalID)

	like, err := f.service.Like(context.Background(), models.SubjectCreation, subject.ID.Hex(), f.author.ID)
	require.NoError(t, err)
	require.NotZero(t, like.ID)

	assert.Empty(t, f.notifications.bySpace(models.SpaceUser))
	assert.Empty(t, f.notifications.bySpace(models.SpaceCommunity))
}

func TestLikeUnknownSubject(t *testing.T) {
	f := newInteractionFixture()

	_, err := f.service.Like(context.Background(), models.SubjectCreation, "aaaaaaaaaaaaaaaaaaaaaaaa", f.actor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnlikeMissing(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectCreation, f.author.PrincipalID)

	err := f.service.Unlike(subject.ID.Hex(), f.actor.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnlikeRoundTrip(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectCreation, f.author.PrincipalID)

	_, err := f.service.Like(context.Background(), models.SubjectCreation, subject.ID.Hex(), f.actor.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.Unlike(subject.ID.Hex(), f.actor.ID))

	liked, err := f.service.Liked(subject.ID.Hex(), f.actor.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err := f.service.LikeCount(subject.ID.Hex())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDiscussionLikeRoutesToCommunitySpace(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectDiscussion, f.author.PrincipalID)

	_, err := f.service.Like(context.Background(), models.SubjectDiscussion, subject.ID.Hex(), f.actor.ID)
	require.NoError(t, err)

	assert.Empty(t, f.notifications.bySpace(models.SpaceUser))
	rows := f.notifications.bySpace(models.SpaceCommunity)
	require.Len(t, rows, 1)
	assert.Equal(t, f.author.PrincipalID, rows[0].ReceiverID)
}

func TestSaveProducesNoNotification(t *testing.T) {
	f := newInteractionFixture()
	subject := f.subjects.addSubject(models.SubjectCreation, f.author.PrincipalID)

	save, err := f.service.Save(context.Background(), models.SubjectCreation, subject.ID.Hex(), f.actor.ID)
	require.NoError(t, err)
	require.NotZero(t, save.ID)

	assert.Empty(t, f.notifications.bySpace(models.SpaceUser))
	assert.Zero(t, f.executor.callCount())

	_, err = f.service.Save(context.Background(), models.SubjectCreation, subject.ID.Hex(), f.actor.ID)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)
}

func TestSavedSubjectsList(t *testing.T) {
	f := newInteractionFixture()
	first := f.subjects.addSubject(models.SubjectCreation, f.author.PrincipalID)
	second := f.subjects.addSubject(models.SubjectProject, f.author.PrincipalID)

	_, err := f.service.Save(context.Background(), models.SubjectCreation, first.ID.Hex(), f.actor.ID)
	require.NoError(t, err)
	_, err = f.service.Save(context.Background(), models.SubjectProject, second.ID.Hex(), f.actor.ID)
	require.NoError(t, err)

	saves, err := f.service.SavedSubjects(f.actor.ID)
	require.NoError(t, err)
	assert.Len(t, saves, 2)
}

func TestItemLikeRoundTrip(t *testing.T) {
	f := newInteractionFixture()

	like, err := f.service.LikeItem(7, models.ItemComment, f.actor.ID)
	require.NoError(t, err)
	require.NotZero(t, like.ID)

	_, err = f.service.LikeItem(7, models.ItemComment, f.actor.ID)
	assert.ErrorIs(t, err, ErrDuplicateInteraction)

	count, err := f.service.ItemLikeCount(7, models.ItemComment)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Same id under a different type is a distinct target
	count, err = f.service.ItemLikeCount(7, models.ItemFeedback)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, f.service.UnlikeItem(7, models.ItemComment, f.actor.ID))
	assert.ErrorIs(t, f.service.UnlikeItem(7, models.ItemComment, f.actor.ID), ErrNotFound)
}

func TestItemLikeRejectsUnknownType(t *testing.T) {
	f := newInteractionFixture()

	_, err := f.service.LikeItem(1, models.ItemType("story"), f.actor.ID)
	assert.ErrorIs(t, err, ErrInvalidItemType)

	err = f.service.UnlikeItem(1, models.ItemType("story"), f.actor.ID)
	assert.ErrorIs(t, err, ErrInvalidItemType)

	_, err = f.service.ItemLikeCount(1, models.ItemType(""))
	assert.ErrorIs(t, err, ErrInvalidItemType)
}
