package service

import (
	"context"
	"testing"
	"time"

	"manganest/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func intPtr(i int) *int { return &i }

func TestNewBan(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("TemporaryBanExpiresExactly", func(t *testing.T) {
		ban, err := NewBan("u1", "spamming", "admin-1", intPtr(7), now)

		assert.NoError(t, err)
		assert.False(t, ban.IsPermanent)
		assert.NotNil(t, ban.ExpiresAt)
		assert.Equal(t, now.Add(7*24*time.Hour), *ban.ExpiresAt)
		assert.True(t, ban.IsActive)
	})

	t.Run("NilDaysMeansPermanent", func(t *testing.T) {
		ban, err := NewBan("u1", "repeat offender", "admin-1", nil, now)

		assert.NoError(t, err)
		assert.True(t, ban.IsPermanent)
		assert.Nil(t, ban.ExpiresAt)
	})

	t.Run("ReasonRequired", func(t *testing.T) {
		_, err := NewBan("u1", "   ", "admin-1", nil, now)

		assert.ErrorIs(t, err, ErrBanReasonRequired)
	})
}

func TestBanInEffect(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ActiveTemporaryBan", func(t *testing.T) {
		ban, _ := NewBan("u1", "spam", "admin-1", intPtr(1), now)
		assert.True(t, ban.InEffect(now.Add(23*time.Hour)))
	})

	t.Run("ExpiredTemporaryBan", func(t *testing.T) {
		ban, _ := NewBan("u1", "spam", "admin-1", intPtr(1), now)
		assert.False(t, ban.InEffect(now.Add(25*time.Hour)))
	})

	t.Run("PermanentBanNeverExpires", func(t *testing.T) {
		ban, _ := NewBan("u1", "spam", "admin-1", nil, now)
		assert.True(t, ban.InEffect(now.Add(10*365*24*time.Hour)))
	})

	t.Run("LiftedBanNotInEffect", func(t *testing.T) {
		ban, _ := NewBan("u1", "spam", "admin-1", nil, now)
		ban.IsActive = false
		assert.False(t, ban.InEffect(now))
	})
}

func TestBanService(t *testing.T) {
	ctx := context.Background()

	newService := func() (BanService, *MockBanRepository, *MockUserRepository) {
		banRepo := new(MockBanRepository)
		userRepo := new(MockUserRepository)
		return NewBanService(banRepo, userRepo), banRepo, userRepo
	}

	t.Run("OnlyAdminsBan", func(t *testing.T) {
		svc, banRepo, _ := newService()

		_, err := svc.BanUser(ctx, "u1", "spam", "mod-1", models.RoleModerator, nil)

		assert.ErrorIs(t, err, ErrNotAllowed)
		banRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AdminBansExistingUser", func(t *testing.T) {
		svc, banRepo, userRepo := newService()
		userRepo.On("FindByID", "u1").Return(&models.User{ID: "u1"}, nil)
		banRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Ban) bool {
			return b.UserID == "u1" && b.BannedBy == "admin-1" && b.IsActive
		})).Return(nil)

		ban, err := svc.BanUser(ctx, "u1", "spam", "admin-1", models.RoleAdmin, intPtr(3))

		assert.NoError(t, err)
		assert.NotNil(t, ban.ExpiresAt)
	})

	t.Run("UnknownUserNotBannable", func(t *testing.T) {
		svc, _, userRepo := newService()
		userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.BanUser(ctx, "ghost", "spam", "admin-1", models.RoleAdmin, nil)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("UnbanDeactivates", func(t *testing.T) {
		svc, banRepo, _ := newService()
		banRepo.On("GetByID", mock.Anything, int64(9)).Return(&models.Ban{ID: 9, UserID: "u1"}, nil)
		banRepo.On("Deactivate", mock.Anything, int64(9)).Return(nil)

		err := svc.Unban(ctx, 9, models.RoleAdmin)

		assert.NoError(t, err)
		banRepo.AssertCalled(t, "Deactivate", mock.Anything, int64(9))
	})

	t.Run("UnbanUnknownBan", func(t *testing.T) {
		svc, banRepo, _ := newService()
		banRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Unban(ctx, 9, models.RoleAdmin)

		assert.ErrorIs(t, err, ErrBanNotFound)
	})

	t.Run("IsBannedFalseWhenNoActiveBan", func(t *testing.T) {
		svc, banRepo, _ := newService()
		banRepo.On("FindActive", mock.Anything, "u1", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		banned, err := svc.IsBanned(ctx, "u1")

		assert.NoError(t, err)
		assert.False(t, banned)
	})

	t.Run("IsBannedTrueWithActiveBan", func(t *testing.T) {
		svc, banRepo, _ := newService()
		banRepo.On("FindActive", mock.Anything, "u1", mock.Anything).Return(&models.Ban{UserID: "u1", IsActive: true, IsPermanent: true}, nil)

		banned, err := svc.IsBanned(ctx, "u1")

		assert.NoError(t, err)
		assert.True(t, banned)
	})
}
