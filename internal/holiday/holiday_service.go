package holiday

import (
	"context"
	"errors"
	"time"

	holidayerrors "leavedesk/internal/holiday/errors"
	"leavedesk/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req UpsertHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Update(ctx context.Context, id string, req UpsertHolidayRequest) (HolidayResponse, error)
	Remove(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req UpsertHolidayRequest) (HolidayResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidActorID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   actorUUID,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("failed to create holiday",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return HolidayResponse{}, err
	}

	s.logger.Info("holiday created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("holiday_id", h.ID.String()),
		zap.String("name", h.Name),
	)
	return toHolidayResponse(h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list holidays",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	out := make([]HolidayResponse, 0, len(holidays))
	for i := range holidays {
		out = append(out, toHolidayResponse(&holidays[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, req UpsertHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	h.Name = req.Name
	h.Date = date
	h.Description = req.Description
	h.Category = req.Category
	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("failed to update holiday",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("holiday_id", id),
			zap.Error(err),
		)
		return HolidayResponse{}, err
	}

	return toHolidayResponse(h), nil
}

func (s *service) Remove(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete holiday",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("holiday_id", id),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("holiday deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("holiday_id", id),
	)
	return nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func toHolidayResponse(h *Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format("2006-01-02"),
		Description: h.Description,
		Category:    h.Category,
		CreatedBy:   h.CreatedBy.String(),
	}
}
