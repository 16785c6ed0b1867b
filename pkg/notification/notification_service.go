package notification

import (
	"context"

	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/pkg/store"
)

type (
	NotificationService interface {
		GetNotifications(ctx context.Context) ([]domain.NotificationResponse, error)
		MarkAsRead(ctx context.Context, id uint) (domain.NotificationResponse, error)
		CountUnread(ctx context.Context) (int, error)
	}

	notificationService struct {
		repo store.Repository
	}
)

func NewNotificationService(repo store.Repository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) GetNotifications(ctx context.Context) ([]domain.NotificationResponse, error) {
	list, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.NotificationResponse, 0, len(list))
	for i := range list {
		res = append(res, ToResponse(&list[i]))
	}
	return res, nil
}

// MarkAsRead is idempotent: an already read notification is returned as is.
func (s *notificationService) MarkAsRead(ctx context.Context, id uint) (domain.NotificationResponse, error) {
	var out *entities.Notification
	err := s.repo.WithTx(ctx, func(tx store.Repository) error {
		n, err := tx.GetNotification(ctx, id)
		if err != nil {
			return err
		}
		if !n.IsRead {
			n.IsRead = true
			if err := tx.SaveNotification(ctx, n); err != nil {
				return err
			}
		}
		out = n
		return nil
	})
	if err != nil {
		return domain.NotificationResponse{}, err
	}
	return ToResponse(out), nil
}

func (s *notificationService) CountUnread(ctx context.Context) (int, error) {
	list, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	return unread, nil
}

func ToResponse(n *entities.Notification) domain.NotificationResponse {
	return domain.NotificationResponse{
		ID:         n.ID,
		FoodItemID: n.FoodItemID,
		Type:       n.Type,
		Message:    n.Message,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}
