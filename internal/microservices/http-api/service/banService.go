package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"manganest/internal/authz"
	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrBanReasonRequired = errors.New("ban reason is required")
	ErrBanNotFound       = errors.New("ban not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNotAllowed        = errors.New("insufficient permissions")
)

// NewBan builds a ban record. A nil days means permanent; otherwise the
// ban lifts exactly days*24h after now. Exactly one of is_permanent /
// expires_at ends up set.
func NewBan(userID, reason, bannedBy string, days *int, now time.Time) (*models.Ban, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrBanReasonRequired
	}

	ban := &models.Ban{
		UserID:   userID,
		Reason:   reason,
		BannedBy: bannedBy,
		IsActive: true,
	}
	if days == nil {
		ban.IsPermanent = true
	} else {
		expires := now.Add(time.Duration(*days) * 24 * time.Hour)
		ban.ExpiresAt = &expires
	}
	return ban, nil
}

type BanService interface {
	BanUser(ctx context.Context, userID, reason, bannedBy, role string, days *int) (*models.Ban, error)
	// Unban lifts a ban by flipping is_active; the record survives as an
	// audit trail.
	Unban(ctx context.Context, banID int64, role string) error
	ListActive(ctx context.Context, role string, page, pageSize int) ([]models.Ban, int64, error)
	// IsBanned reports whether the user has a ban currently in effect.
	IsBanned(ctx context.Context, userID string) (bool, error)
}

type banService struct {
	banRepo  repository.BanRepository
	userRepo repository.UserRepository
}

func NewBanService(banRepo repository.BanRepository, userRepo repository.UserRepository) BanService {
	return &banService{banRepo: banRepo, userRepo: userRepo}
}

func (s *banService) BanUser(ctx context.Context, userID, reason, bannedBy, role string, days *int) (*models.Ban, error) {
	if !authz.HasCapability(role, authz.CapBanUsers) {
		return nil, ErrNotAllowed
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ban, err := NewBan(userID, reason, bannedBy, days, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.banRepo.Create(ctx, ban); err != nil {
		return nil, err
	}
	return ban, nil
}

func (s *banService) Unban(ctx context.Context, banID int64, role string) error {
	if !authz.HasCapability(role, authz.CapBanUsers) {
		return ErrNotAllowed
	}
	if _, err := s.banRepo.GetByID(ctx, banID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBanNotFound
		}
		return err
	}
	return s.banRepo.Deactivate(ctx, banID)
}

func (s *banService) ListActive(ctx context.Context, role string, page, pageSize int) ([]models.Ban, int64, error) {
	if !authz.HasCapability(role, authz.CapBanUsers) {
		return nil, 0, ErrNotAllowed
	}
	return s.banRepo.ListActive(ctx, page, pageSize)
}

func (s *banService) IsBanned(ctx context.Context, userID string) (bool, error) {
	_, err := s.banRepo.FindActive(ctx, userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
