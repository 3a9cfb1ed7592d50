package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavedesk/internal/events"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actorID, actorRole string, req ApplyLeaveRequest) (LeaveResponse, error)
	MyLeaves(ctx context.Context, actorID string) ([]LeaveResponse, error)
	TeamLeaves(ctx context.Context, actorID, actorRole string) ([]LeaveResponse, error)
	PendingRequests(ctx context.Context, actorID, actorRole string) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	History(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Approve(ctx context.Context, actorID, actorRole, id, comments string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, actorRole, id, comments string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, users, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, users: users, outbox: outboxRepo, logger: l}
}

func (s *service) Apply(ctx context.Context, actorID, actorRole string, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("actor_role", actorRole),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Leave{
		ID:           uuid.New(),
		EmployeeID:   actorUUID,
		LeaveType:    req.LeaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		NumberOfDays: req.NumberOfDays,
		Reason:       req.Reason,
		Status:       InitialStatus(actorRole),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// director requests are born approved, with the self-approval on record
	if l.Status == StatusDirectorApproved {
		approval := &Approval{
			ID:        uuid.New(),
			LeaveID:   l.ID,
			Role:      user.RoleDirector,
			UserID:    actorUUID,
			Status:    DecisionApproved,
			Comments:  directorAutoApproveComment,
			DecidedAt: time.Now().UTC(),
		}
		if err := qtx.AppendApproval(ctx, approval); err != nil {
			s.logger.Error("apply leave auto-approval persist failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		l.Approvals = append(l.Approvals, *approval)
	}

	if err := s.enqueueAppliedEvent(ctx, tx, rid, l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", actorID),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) MyLeaves(ctx context.Context, actorID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	leaves, err := s.repo.FindByEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) TeamLeaves(ctx context.Context, actorID, actorRole string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	var (
		leaves []Leave
		err    error
	)
	switch actorRole {
	case user.RoleManager:
		leaves, err = s.repo.FindByManager(ctx, actorID)
	case user.RoleHR, user.RoleDirector:
		leaves, err = s.repo.FindAll(ctx)
	default:
		return nil, leaveerrors.ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

// PendingRequests returns exactly the requests the actor can decide next.
// The status filter mirrors the transition preconditions so nothing listed
// here is ever un-actionable.
func (s *service) PendingRequests(ctx context.Context, actorID, actorRole string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	switch actorRole {
	case user.RoleManager:
		leaves, err := s.repo.FindByStatusForManager(ctx, actorID, StatusApplied)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(leaves), nil

	case user.RoleHR:
		leaves, err := s.repo.FindByStatusForEmployeeRoles(ctx, StatusManagerApproved, []string{user.RoleEmployee})
		if err != nil {
			return nil, err
		}
		return mapToListResponse(leaves), nil

	case user.RoleDirector:
		employeeLeaves, err := s.repo.FindByStatusForEmployeeRoles(ctx, StatusHRApproved, []string{user.RoleEmployee})
		if err != nil {
			return nil, err
		}
		skipChainLeaves, err := s.repo.FindByStatusForEmployeeRoles(ctx, StatusApplied, []string{user.RoleManager, user.RoleHR})
		if err != nil {
			return nil, err
		}
		return mapToListResponse(append(employeeLeaves, skipChainLeaves...)), nil

	default:
		return nil, leaveerrors.ErrNotAuthorized
	}
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) History(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, actorID, actorRole, id, comments string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, actorRole, id, comments, DecisionApproved)
}

func (s *service) Reject(ctx context.Context, actorID, actorRole, id, comments string) (LeaveResponse, error) {
	return s.decide(ctx, actorID, actorRole, id, comments, DecisionRejected)
}

func (s *service) decide(ctx context.Context, actorID, actorRole, id, comments, decision string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("actor_role", actorRole),
		zap.String("decision", decision),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Employee == nil {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	nextStatus, err := Transition(actorRole, l.Employee.Role, l.Status)
	if err != nil {
		s.logger.Warn("decide leave transition denied",
			zap.String("leave_id", id),
			zap.String("actor_role", actorRole),
			zap.String("employee_role", l.Employee.Role),
			zap.String("current_status", l.Status),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	var (
		rejectionReason *string
		rejectedBy      *uuid.UUID
	)
	if decision == DecisionRejected {
		nextStatus = StatusRejected
		rejectionReason = &comments
		rejectedBy = &actorUUID
	}

	// CAS on the status read above; a concurrent decision on the same
	// request makes exactly one of the writers lose.
	swapped, err := qtx.UpdateStatus(ctx, id, l.Status, nextStatus, rejectionReason, rejectedBy)
	if err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !swapped {
		s.logger.Warn("decide leave lost concurrent update",
			zap.String("leave_id", id),
			zap.String("expected_status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrDecisionConflict
	}

	approval := &Approval{
		ID:        uuid.New(),
		LeaveID:   l.ID,
		Role:      actorRole,
		UserID:    actorUUID,
		Status:    decision,
		Comments:  comments,
		DecidedAt: time.Now().UTC(),
	}
	if err := qtx.AppendApproval(ctx, approval); err != nil {
		s.logger.Error("decide leave append approval failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	// terminal approval is the single point where balances move
	if nextStatus == StatusDirectorApproved {
		if column, ok := balanceColumn(l.LeaveType); ok {
			usersQtx := s.users.WithTx(tx)
			if err := usersQtx.DeductLeaveBalance(ctx, l.EmployeeID.String(), column, l.NumberOfDays); err != nil {
				s.logger.Error("decide leave balance deduction failed",
					zap.String("leave_id", id),
					zap.String("employee_id", l.EmployeeID.String()),
					zap.Error(err),
				)
				return LeaveResponse{}, err
			}
		}
	}

	if err := s.enqueueDecidedEvent(ctx, tx, rid, l, approval, nextStatus); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Status = nextStatus
	l.RejectionReason = rejectionReason
	l.RejectedBy = rejectedBy
	l.Approvals = append(l.Approvals, *approval)

	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("decision", decision),
		zap.String("status", nextStatus),
	)

	return mapToResponse(*l), nil
}

func (s *service) enqueueAppliedEvent(ctx context.Context, tx *sql.Tx, rid string, l *Leave) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveAppliedEvent{
		EventType:  "leave_applied",
		RequestID:  rid,
		LeaveID:    l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		Status:     l.Status,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal applied event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("apply leave outbox persist failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, rid string, l *Leave, a *Approval, nextStatus string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.LeaveDecidedEvent{
		EventType:   "leave_decided",
		RequestID:   rid,
		LeaveID:     l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		DecidedBy:   a.UserID.String(),
		DeciderRole: a.Role,
		Status:      nextStatus,
		Comments:    a.Comments,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal decided event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecisionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("decide leave outbox persist failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		LeaveType:    l.LeaveType,
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		NumberOfDays: l.NumberOfDays,
		Reason:       l.Reason,
		Status:       l.Status,
		Approvals:    make([]ApprovalResponse, 0, len(l.Approvals)),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
		resp.EmployeeEmail = l.Employee.Email
	}
	for _, a := range l.Approvals {
		resp.Approvals = append(resp.Approvals, ApprovalResponse{
			Role:       a.Role,
			UserID:     a.UserID.String(),
			Status:     a.Status,
			Comments:   a.Comments,
			ApprovedAt: a.DecidedAt.Format(time.RFC3339),
		})
	}
	resp.RejectionReason = l.RejectionReason
	if l.RejectedBy != nil {
		v := l.RejectedBy.String()
		resp.RejectedBy = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
