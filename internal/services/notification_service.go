package services

import (
	"errors"
	"strconv"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/pkg/functions"
	"go.uber.org/zap"
)

// GrantFunctions names the remote functions that grant principals read
// access to freshly created records, one per record family.
type GrantFunctions struct {
	UserNotifications      string
	CommunityNotifications string
	Interactions           string
	Comments               string
	Feedback               string
	Replies                string
}

func (g GrantFunctions) forSpace(space models.NotificationSpace) string {
	if space == models.SpaceCommunity {
		return g.CommunityNotifications
	}
	return g.UserNotifications
}

// NotificationService creates and manages notification rows in both spaces.
// Receivers are addressed by principal id; senders act under internal user
// ids, so suppression of self-notifications translates the sender before
// comparing.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	executor      functions.Executor
	grants        GrantFunctions
	logger        *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	executor functions.Executor,
	grants GrantFunctions,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		executor:      executor,
		grants:        grants,
		logger:        logger,
	}
}

// Notify creates an unread notification and delegates read access to the
// receiver principal. Returns (nil, nil) when the notification is suppressed
// because the sender's principal resolves to the receiver.
func (s *NotificationService) Notify(space models.NotificationSpace, receiverPrincipal string, senderID uint, notifType, resourceID, message string) (*models.Notification, error) {
	senderPrincipal, err := s.users.PrincipalIDForUser(senderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if senderPrincipal == receiverPrincipal {
		return nil, nil
	}

	n := &models.Notification{
		ReceiverID: receiverPrincipal,
		SenderID:   senderID,
		Type:       notifType,
		ResourceID: resourceID,
		Message:    message,
	}
	if err := s.notifications.CreateNotification(space, n); err != nil {
		return nil, err
	}

	s.executor.Execute(s.grants.forSpace(space), functions.GrantPayload{
		RecordID:   strconv.FormatUint(uint64(n.ID), 10),
		Principals: []string{receiverPrincipal},
	})
	return n, nil
}

// List returns one page of a receiver's notifications plus the total count
func (s *NotificationService) List(space models.NotificationSpace, receiverPrincipal string, page, limit int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.notifications.GetByReceiver(space, receiverPrincipal, page, limit)
}

// UnreadCount returns the live count of unread notifications
func (s *NotificationService) UnreadCount(space models.NotificationSpace, receiverPrincipal string) (int64, error) {
	return s.notifications.GetUnreadCount(space, receiverPrincipal)
}

// MarkRead marks one notification as read. Marking an already-read row is a
// no-op success; only a missing row is an error.
func (s *NotificationService) MarkRead(space models.NotificationSpace, id uint) error {
	if err := s.notifications.MarkAsRead(space, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead marks every unread notification of a receiver as read
func (s *NotificationService) MarkAllRead(space models.NotificationSpace, receiverPrincipal string) error {
	return s.notifications.MarkAllAsRead(space, receiverPrincipal)
}

// Delete hard-deletes a notification. Receiver-only access is enforced
// upstream by the permission layer.
func (s *NotificationService) Delete(space models.NotificationSpace, id uint) error {
	if err := s.notifications.DeleteNotification(space, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
