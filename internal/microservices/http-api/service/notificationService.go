package service

import (
	"context"
	"errors"

	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotNotificationOwner = errors.New("notification does not belong to user")
)

type NotificationService interface {
	GetUnread(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetUnreadByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID int64, userID string) error {
	unread, err := s.notificationRepo.GetUnreadByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range unread {
		if n.ID == notificationID {
			return s.notificationRepo.MarkAsRead(ctx, notificationID)
		}
	}
	return ErrNotificationNotFound
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
