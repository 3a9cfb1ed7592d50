package user

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"leavedesk/internal/shared/contextutil"
	usererrors "leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Profile(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
	Team(ctx context.Context, actorID, actorRole string) ([]UserResponse, error)
	Managers(ctx context.Context) ([]UserResponse, error)
	GetAll(ctx context.Context, actorID string) ([]UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (CreatedUserResponse, error)
	Remove(ctx context.Context, actorID, targetID string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Profile(ctx context.Context, userID string) (UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error) {
	s.logger.Debug("update profile requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("user_id", userID),
	)

	if _, err := uuid.Parse(userID); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Name = req.Name
	u.Phone = req.Phone
	u.Gender = req.Gender
	u.Address = req.Address
	u.City = req.City
	u.State = req.State
	u.ZipCode = req.ZipCode

	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidDateFormat
		}
		u.DOB = &dob
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update profile persist failed", zap.String("user_id", userID), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update profile success", zap.String("user_id", userID))
	return mapToResponse(*u), nil
}

func (s *service) Team(ctx context.Context, actorID, actorRole string) ([]UserResponse, error) {
	var (
		users []User
		err   error
	)

	switch actorRole {
	case RoleManager:
		users, err = s.repo.FindByManager(ctx, actorID)
	case RoleHR:
		users, err = s.repo.FindByRoles(ctx, []string{RoleEmployee, RoleManager})
	case RoleDirector:
		users, err = s.repo.FindAllExcept(ctx, actorID)
	default:
		// employees have no team view beyond themselves
		return []UserResponse{}, nil
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) Managers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindByRoles(ctx, []string{RoleManager})
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) GetAll(ctx context.Context, actorID string) ([]UserResponse, error) {
	users, err := s.repo.FindAllExcept(ctx, actorID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(users), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (CreatedUserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return CreatedUserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var managerUUID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		parsed, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return CreatedUserResponse{}, usererrors.ErrInvalidManagerID
		}
		manager, err := qtx.FindByID(ctx, parsed.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return CreatedUserResponse{}, usererrors.ErrManagerNotFound
			}
			return CreatedUserResponse{}, err
		}
		if manager.Role != RoleManager {
			return CreatedUserResponse{}, usererrors.ErrManagerNotFound
		}
		managerUUID = &parsed
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return CreatedUserResponse{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return CreatedUserResponse{}, err
	}

	u := &User{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        req.Role,
		Department:  req.Department,
		Designation: req.Designation,
		ManagerID:   managerUUID,

		CasualLeave:    12,
		SickLeave:      10,
		EarnedLeave:    20,
		MaternityLeave: 180,

		IsActive: true,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.String("request_id", rid), zap.Error(err))
		return CreatedUserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return CreatedUserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return CreatedUserResponse{
		ID:                u.ID.String(),
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *service) Remove(ctx context.Context, actorID, targetID string) error {
	s.logger.Debug("remove user requested",
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
	)

	if _, err := uuid.Parse(targetID); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if targetID == actorID {
		return usererrors.ErrCannotRemoveSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove user begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, targetID); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.DeleteWithCascade(ctx, targetID); err != nil {
		s.logger.Error("remove user cascade failed", zap.String("target_id", targetID), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove user commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("remove user success", zap.String("target_id", targetID))
	return nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Designation: u.Designation,
		Phone:       u.Phone,
		Gender:      u.Gender,
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		ZipCode:     u.ZipCode,
		LeaveBalance: LeaveBalanceResponse{
			CasualLeave:    u.CasualLeave,
			SickLeave:      u.SickLeave,
			EarnedLeave:    u.EarnedLeave,
			MaternityLeave: u.MaternityLeave,
		},
		IsActive: u.IsActive,
	}
	if u.DOB != nil {
		v := u.DOB.Format("2006-01-02")
		resp.DOB = &v
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	if u.Manager != nil {
		resp.ManagerName = u.Manager.Name
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
