package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/pkg/functions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// In-memory repository fakes. Mutation goes through a mutex because several
// services write from goroutines (ping fan-out, counter bumps).

type grantCall struct {
	functionID string
	payload    functions.GrantPayload
}

type fakeExecutor struct {
	mu    sync.Mutex
	calls []grantCall
}

func (e *fakeExecutor) Execute(functionID string, payload functions.GrantPayload) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, grantCall{functionID: functionID, payload: payload})
}

func (e *fakeExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func (e *fakeExecutor) lastCallFor(functionID string) (grantCall, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.calls) - 1; i >= 0; i-- {
		if e.calls[i].functionID == functionID {
			return e.calls[i], true
		}
	}
	return grantCall{}, false
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User)}
}

func (r *fakeUserRepo) addUser(name, principalID string) *models.User {
	u := &models.User{Name: name, Email: name + "@example.com", PrincipalID: principalID}
	r.CreateUser(u)
	return u
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetUserByPrincipalID(principalID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PrincipalID == principalID {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) PrincipalIDForUser(id uint) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return u.PrincipalID, nil
}

func (r *fakeUserRepo) AdjustCreationsCount(id uint, delta int) error {
	return r.adjust(id, func(u *models.User) { u.CreationsCount += delta })
}

func (r *fakeUserRepo) AdjustProjectsCount(id uint, delta int) error {
	return r.adjust(id, func(u *models.User) { u.ProjectsCount += delta })
}

func (r *fakeUserRepo) AdjustSupportingCount(id uint, delta int) error {
	return r.adjust(id, func(u *models.User) { u.SupportingCount += delta })
}

func (r *fakeUserRepo) SetSupportingCount(id uint, count int) error {
	return r.adjust(id, func(u *models.User) { u.SupportingCount = count })
}

func (r *fakeUserRepo) adjust(id uint, f func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	f(u)
	return nil
}

type fakeLikeRepo struct {
	mu     sync.Mutex
	nextID uint
	likes  []models.Like
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.SubjectID == like.SubjectID && l.ActorID == like.ActorID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	like.ID = r.nextID
	like.CreatedAt = time.Now()
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeLikeRepo) DeleteLike(subjectID string, actorID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.likes {
		if l.SubjectID == subjectID && l.ActorID == actorID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeLikeRepo) HasLiked(subjectID string, actorID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.SubjectID == subjectID && l.ActorID == actorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLikeRepo) CountBySubject(subjectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.SubjectID == subjectID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) DeleteBySubject(subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.likes[:0]
	for _, l := range r.likes {
		if l.SubjectID != subjectID {
			kept = append(kept, l)
		}
	}
	r.likes = kept
	return nil
}

type fakeSaveRepo struct {
	mu     sync.Mutex
	nextID uint
	saves  []models.Save
}

func (r *fakeSaveRepo) CreateSave(save *models.Save) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saves {
		if s.SubjectID == save.SubjectID && s.ActorID == save.ActorID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	save.ID = r.nextID
	save.CreatedAt = time.Now()
	r.saves = append(r.saves, *save)
	return nil
}

func (r *fakeSaveRepo) DeleteSave(subjectID string, actorID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.saves {
		if s.SubjectID == subjectID && s.ActorID == actorID {
			r.saves = append(r.saves[:i], r.saves[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeSaveRepo) HasSaved(subjectID string, actorID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.saves {
		if s.SubjectID == subjectID && s.ActorID == actorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSaveRepo) CountBySubject(subjectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, s := range r.saves {
		if s.SubjectID == subjectID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSaveRepo) GetSavesByActor(actorID uint) ([]models.Save, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Save
	for _, s := range r.saves {
		if s.ActorID == actorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaveRepo) DeleteBySubject(subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.saves[:0]
	for _, s := range r.saves {
		if s.SubjectID != subjectID {
			kept = append(kept, s)
		}
	}
	r.saves = kept
	return nil
}

type fakeItemLikeRepo struct {
	mu     sync.Mutex
	nextID uint
	likes  []models.ItemLike

	// deleteByItemErr, when set, fails DeleteByItem for the given item id
	deleteByItemErr map[uint]error
}

func (r *fakeItemLikeRepo) CreateItemLike(like *models.ItemLike) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.ItemID == like.ItemID && l.ItemType == like.ItemType && l.ActorID == like.ActorID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	like.ID = r.nextID
	like.CreatedAt = time.Now()
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeItemLikeRepo) DeleteItemLike(itemID uint, itemType models.ItemType, actorID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.likes {
		if l.ItemID == itemID && l.ItemType == itemType && l.ActorID == actorID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeItemLikeRepo) HasLikedItem(itemID uint, itemType models.ItemType, actorID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.ItemID == itemID && l.ItemType == itemType && l.ActorID == actorID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeItemLikeRepo) CountByItem(itemID uint, itemType models.ItemType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.ItemID == itemID && l.ItemType == itemType {
			count++
		}
	}
	return count, nil
}

func (r *fakeItemLikeRepo) DeleteByItem(itemID uint, itemType models.ItemType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.deleteByItemErr[itemID]; ok {
		return err
	}
	kept := r.likes[:0]
	for _, l := range r.likes {
		if l.ItemID != itemID || l.ItemType != itemType {
			kept = append(kept, l)
		}
	}
	r.likes = kept
	return nil
}

type fakeCommentRepo struct {
	mu        sync.Mutex
	nextID    uint
	comments  map[uint]*models.Comment
	feedbacks map[uint]*models.Feedback
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments:  make(map[uint]*models.Comment),
		feedbacks: make(map[uint]*models.Feedback),
	}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copy := *c
	return &copy, nil
}

func (r *fakeCommentRepo) GetCommentsBySubject(subjectID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.SubjectID == subjectID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) CreateFeedback(feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	feedback.ID = r.nextID
	feedback.CreatedAt = time.Now()
	r.feedbacks[feedback.ID] = feedback
	return nil
}

func (r *fakeCommentRepo) GetFeedbackByID(id uint) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.feedbacks[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copy := *f
	return &copy, nil
}

func (r *fakeCommentRepo) GetFeedbacksBySubject(subjectID string) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.feedbacks {
		if f.SubjectID == subjectID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteFeedback(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.feedbacks[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.feedbacks, id)
	return nil
}

type fakeReplyRepo struct {
	mu              sync.Mutex
	nextID          uint
	commentReplies  map[uint]*models.CommentReply
	feedbackReplies map[uint]*models.FeedbackReply

	// deleteErr, when set, fails deletion of the given reply id
	deleteErr map[uint]error
}

func newFakeReplyRepo() *fakeReplyRepo {
	return &fakeReplyRepo{
		commentReplies:  make(map[uint]*models.CommentReply),
		feedbackReplies: make(map[uint]*models.FeedbackReply),
	}
}

func (r *fakeReplyRepo) CreateCommentReply(reply *models.CommentReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reply.ID = r.nextID
	reply.CreatedAt = time.Now()
	r.commentReplies[reply.ID] = reply
	return nil
}

func (r *fakeReplyRepo) GetCommentRepliesByParent(parentID uint) ([]models.CommentReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CommentReply
	for _, reply := range r.commentReplies {
		if reply.ParentID == parentID {
			out = append(out, *reply)
		}
	}
	return out, nil
}

func (r *fakeReplyRepo) GetCommentReplyByID(id uint) (*models.CommentReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reply, ok := r.commentReplies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copy := *reply
	return &copy, nil
}

func (r *fakeReplyRepo) DeleteCommentReply(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.deleteErr[id]; ok {
		return err
	}
	if _, ok := r.commentReplies[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.commentReplies, id)
	return nil
}

func (r *fakeReplyRepo) CreateFeedbackReply(reply *models.FeedbackReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reply.ID = r.nextID
	reply.CreatedAt = time.Now()
	r.feedbackReplies[reply.ID] = reply
	return nil
}

func (r *fakeReplyRepo) GetFeedbackRepliesByParent(parentID uint) ([]models.FeedbackReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FeedbackReply
	for _, reply := range r.feedbackReplies {
		if reply.ParentID == parentID {
			out = append(out, *reply)
		}
	}
	return out, nil
}

func (r *fakeReplyRepo) GetFeedbackReplyByID(id uint) (*models.FeedbackReply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reply, ok := r.feedbackReplies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copy := *reply
	return &copy, nil
}

func (r *fakeReplyRepo) DeleteFeedbackReply(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.deleteErr[id]; ok {
		return err
	}
	if _, ok := r.feedbackReplies[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.feedbackReplies, id)
	return nil
}

type spacedNotification struct {
	space models.NotificationSpace
	n     models.Notification
}

type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []spacedNotification
}

func (r *fakeNotificationRepo) CreateNotification(space models.NotificationSpace, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	r.rows = append(r.rows, spacedNotification{space: space, n: *n})
	return nil
}

func (r *fakeNotificationRepo) GetByReceiver(space models.NotificationSpace, receiverID string, page, limit int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Notification
	for _, row := range r.rows {
		if row.space == space && row.n.ReceiverID == receiverID {
			all = append(all, row.n)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(space models.NotificationSpace, receiverID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.space == space && row.n.ReceiverID == receiverID && !row.n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(space models.NotificationSpace, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.space == space && row.n.ID == id {
			r.rows[i].n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(space models.NotificationSpace, receiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.space == space && row.n.ReceiverID == receiverID {
			r.rows[i].n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(space models.NotificationSpace, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.space == space && row.n.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeNotificationRepo) bySpace(space models.NotificationSpace) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.space == space {
			out = append(out, row.n)
		}
	}
	return out
}

type fakePingRepo struct {
	mu     sync.Mutex
	nextID uint
	pings  []*models.Ping

	// failForUser makes CreatePing fail for the given user ids
	failForUser map[uint]bool
}

func (r *fakePingRepo) GetPing(communityID, topicID string, userID uint) (*models.Ping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pings {
		if p.CommunityID == communityID && p.TopicID == topicID && p.UserID == userID {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePingRepo) CreatePing(ping *models.Ping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failForUser[ping.UserID] {
		return fmt.Errorf("write rejected for user %d", ping.UserID)
	}
	r.nextID++
	ping.ID = r.nextID
	copy := *ping
	r.pings = append(r.pings, &copy)
	return nil
}

func (r *fakePingRepo) IncrementPing(id uint) error {
	return r.adjust(id, 1)
}

func (r *fakePingRepo) DecrementPing(id uint) error {
	return r.adjust(id, -1)
}

func (r *fakePingRepo) adjust(id uint, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pings {
		if p.ID == id {
			p.PingCount += delta
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakePingRepo) DeletePing(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pings {
		if p.ID == id {
			r.pings = append(r.pings[:i], r.pings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakePingRepo) ListByTopic(communityID, topicID string) ([]models.Ping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Ping
	for _, p := range r.pings {
		if p.CommunityID == communityID && p.TopicID == topicID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePingRepo) ListByCommunity(communityID string) ([]models.Ping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Ping
	for _, p := range r.pings {
		if p.CommunityID == communityID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePingRepo) ListByUser(userID uint) ([]models.Ping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Ping
	for _, p := range r.pings {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCommunityRepo struct {
	mu          sync.Mutex
	communities map[string]*models.Community
	members     map[string][]models.CommunityMember
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{
		communities: make(map[string]*models.Community),
		members:     make(map[string][]models.CommunityMember),
	}
}

func (r *fakeCommunityRepo) CreateCommunity(ctx context.Context, community *models.Community) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	community.ID = primitive.NewObjectID()
	community.CreatedAt = time.Now()
	r.communities[community.ID.Hex()] = community
	return nil
}

func (r *fakeCommunityRepo) GetCommunityByID(ctx context.Context, id string) (*models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.communities[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return c, nil
}

func (r *fakeCommunityRepo) AddMember(ctx context.Context, communityID string, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members[communityID] {
		if m.UserID == userID {
			return nil
		}
	}
	r.members[communityID] = append(r.members[communityID], models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	})
	return nil
}

func (r *fakeCommunityRepo) RemoveMember(ctx context.Context, communityID string, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := r.members[communityID]
	for i, m := range members {
		if m.UserID == userID {
			r.members[communityID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeCommunityRepo) ListMembers(ctx context.Context, communityID string, skip, limit int64) ([]models.CommunityMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := r.members[communityID]
	if skip >= int64(len(members)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(members)) {
		end = int64(len(members))
	}
	out := make([]models.CommunityMember, end-skip)
	copy(out, members[skip:end])
	return out, nil
}

func (r *fakeCommunityRepo) CountMembers(ctx context.Context, communityID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.members[communityID])), nil
}

type fakeSubjectRepo struct {
	mu       sync.Mutex
	subjects map[string]*models.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[string]*models.Subject)}
}

func (r *fakeSubjectRepo) addSubject(kind models.SubjectKind, authorPrincipal string) *models.Subject {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &models.Subject{
		ID:        primitive.NewObjectID(),
		Kind:      kind,
		AuthorID:  authorPrincipal,
		Title:     "title",
		Content:   "content",
		CreatedAt: time.Now(),
	}
	r.subjects[s.ID.Hex()] = s
	return s
}

func (r *fakeSubjectRepo) CreateSubject(ctx context.Context, subject *models.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	subject.ID = primitive.NewObjectID()
	subject.CreatedAt = time.Now()
	subject.UpdatedAt = time.Now()
	r.subjects[subject.ID.Hex()] = subject
	return nil
}

func (r *fakeSubjectRepo) GetSubjectByID(ctx context.Context, kind models.SubjectKind, id string) (*models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok || s.Kind != kind {
		return nil, repositories.ErrNotFound
	}
	copy := *s
	return &copy, nil
}

func (r *fakeSubjectRepo) GetSubjectsByAuthor(ctx context.Context, kind models.SubjectKind, authorID string, skip, limit int64) ([]models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subject
	for _, s := range r.subjects {
		if s.Kind == kind && s.AuthorID == authorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubjectRepo) GetAllSubjects(ctx context.Context, kind models.SubjectKind, skip, limit int64) ([]models.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Subject
	for _, s := range r.subjects {
		if s.Kind == kind {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubjectRepo) DeleteSubject(ctx context.Context, kind models.SubjectKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subjects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.subjects, id)
	return nil
}

func (r *fakeSubjectRepo) AdjustCommentsCount(ctx context.Context, kind models.SubjectKind, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.CommentsCount += delta
	return nil
}

func (r *fakeSubjectRepo) SetCommentsCount(ctx context.Context, kind models.SubjectKind, id string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.CommentsCount = count
	return nil
}

func (r *fakeSubjectRepo) commentsCount(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subjects[id]; ok {
		return s.CommentsCount
	}
	return -1
}

type fakeSupportRepo struct {
	mu    sync.Mutex
	edges map[uint]*models.SupportEdge
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{edges: make(map[uint]*models.SupportEdge)}
}

func (r *fakeSupportRepo) GetEdge(userID uint) (*models.SupportEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	edge, ok := r.edges[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copy := *edge
	copy.SupportingIDs = append([]uint(nil), edge.SupportingIDs...)
	return &copy, nil
}

func (r *fakeSupportRepo) SaveEdge(edge *models.SupportEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *edge
	stored.SupportingIDs = append([]uint(nil), edge.SupportingIDs...)
	r.edges[edge.UserID] = &stored
	return nil
}

func (r *fakeSupportRepo) DeleteEdge(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.edges, userID)
	return nil
}
