package usecase

import (
	"context"

	"resume-match/internal/domain/notification"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]notification.Notification, error)
}

type Notifications struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) *Notifications {
	return &Notifications{repo: repo}
}

func (u *Notifications) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]notification.Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
