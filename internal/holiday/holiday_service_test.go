package holiday_test

import (
	"context"
	"testing"
	"time"

	"leavedesk/internal/holiday"
	holidayerrors "leavedesk/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeHolidayRepo struct {
	CreateFn   func(ctx context.Context, h *holiday.Holiday) error
	FindAllFn  func(ctx context.Context) ([]holiday.Holiday, error)
	FindByIDFn func(ctx context.Context, id string) (*holiday.Holiday, error)
	UpdateFn   func(ctx context.Context, h *holiday.Holiday) error
	DeleteFn   func(ctx context.Context, id string) error
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h *holiday.Holiday) error {
	return f.CreateFn(ctx, h)
}
func (f *fakeHolidayRepo) FindAll(ctx context.Context) ([]holiday.Holiday, error) {
	return f.FindAllFn(ctx)
}
func (f *fakeHolidayRepo) FindByID(ctx context.Context, id string) (*holiday.Holiday, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeHolidayRepo) Update(ctx context.Context, h *holiday.Holiday) error {
	return f.UpdateFn(ctx, h)
}
func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the date and stamps the creator", func(t *testing.T) {
		actorID := uuid.New()
		var created *holiday.Holiday
		repo := &fakeHolidayRepo{
			CreateFn: func(ctx context.Context, h *holiday.Holiday) error {
				created = h
				return nil
			},
		}
		svc := holiday.NewService(repo)

		resp, err := svc.Create(ctx, actorID.String(), holiday.UpsertHolidayRequest{
			Name:     "Republic Day",
			Date:     "2026-01-26",
			Category: "national",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Republic Day", resp.Name)
		assert.Equal(t, "2026-01-26", resp.Date)
		assert.NotNil(t, created)
		assert.Equal(t, actorID, created.CreatedBy)
		assert.Equal(t, time.January, created.Date.Month())
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		svc := holiday.NewService(&fakeHolidayRepo{})
		_, err := svc.Create(ctx, uuid.New().String(), holiday.UpsertHolidayRequest{
			Name:     "Bad",
			Date:     "26-01-2026",
			Category: "national",
		})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
	})
}

func TestHolidayService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown holiday maps to not found", func(t *testing.T) {
		repo := &fakeHolidayRepo{
			FindByIDFn: func(ctx context.Context, id string) (*holiday.Holiday, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := holiday.NewService(repo)

		_, err := svc.Update(ctx, uuid.New().String(), holiday.UpsertHolidayRequest{
			Name: "Moved", Date: "2026-05-01", Category: "company",
		})
		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})

	t.Run("malformed id is invalid input", func(t *testing.T) {
		svc := holiday.NewService(&fakeHolidayRepo{})
		_, err := svc.Update(ctx, "nope", holiday.UpsertHolidayRequest{
			Name: "X", Date: "2026-05-01", Category: "state",
		})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidHolidayID)
	})
}

func TestHolidayService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes after existence check", func(t *testing.T) {
		id := uuid.New()
		deleted := false
		repo := &fakeHolidayRepo{
			FindByIDFn: func(ctx context.Context, hid string) (*holiday.Holiday, error) {
				return &holiday.Holiday{ID: id}, nil
			},
			DeleteFn: func(ctx context.Context, hid string) error {
				assert.Equal(t, id.String(), hid)
				deleted = true
				return nil
			},
		}
		svc := holiday.NewService(repo)

		assert.NoError(t, svc.Remove(ctx, id.String()))
		assert.True(t, deleted)
	})
}
