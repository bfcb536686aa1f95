package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careloop/careloop/internal/platform/apperr"
	"github.com/careloop/careloop/internal/platform/messaging"
)

// Publisher pushes a notification-created event to the message broker.
// Implemented by messaging.Broker; nil when no broker is configured.
type Publisher interface {
	PublishNotificationCreated(ctx context.Context, evt messaging.NotificationEvent) error
}

type Service struct {
	repo      Repository
	publisher Publisher
}

func NewService(repo Repository, publisher Publisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Create stores the notification and publishes the created event. Delivery
// is best effort: a broker failure is logged, never surfaced to the caller.
func (s *Service) Create(ctx context.Context, n *Notification) error {
	n.Title = strings.TrimSpace(n.Title)
	if n.UserID == uuid.Nil || n.Title == "" {
		return apperr.InvalidInput("user_id and title are required")
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	if s.publisher != nil {
		evt := messaging.NotificationEvent{
			NotificationID: n.ID.String(),
			UserID:         n.UserID.String(),
			Title:          n.Title,
			Href:           n.Href,
			CreatedAt:      n.CreatedAt,
		}
		if err := s.publisher.PublishNotificationCreated(ctx, evt); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("notification event not published")
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// MarkRead flips one notification to read. Only the owner may do so; a
// missing row and a row owned by someone else produce the same error.
// Already-read rows succeed with no effect.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperr.Status(err) == 404 {
			return apperr.Forbidden("notification not accessible")
		}
		return err
	}
	if n.UserID != userID {
		return apperr.Forbidden("notification not accessible")
	}
	if n.Read {
		return nil
	}
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead marks every unread notification of the caller and returns the
// number of rows changed. Safe to repeat; the second call reports zero.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
