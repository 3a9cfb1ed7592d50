package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	AppendApproval(ctx context.Context, a *Approval) error
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	FindByManager(ctx context.Context, managerID string) ([]Leave, error)
	FindByStatusForManager(ctx context.Context, managerID, status string) ([]Leave, error)
	FindByStatusForEmployeeRoles(ctx context.Context, status string, roles []string) ([]Leave, error)
	// UpdateStatus is a compare-and-swap: the write only lands when the row
	// still carries expectedStatus. Returns false when another decision won.
	UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string, rejectionReason *string, rejectedBy *uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes statements through the bound *sql.Tx when one is set, so
// every write between BeginTx and Commit rides the same transaction.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) preloaded(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("decided_at ASC")
		}).
		Preload("Employee")
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("Approvals", "Employee").Create(l).Error
}

func (r *repository) AppendApproval(ctx context.Context, a *Approval) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.preloaded(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByManager(ctx context.Context, managerID string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("employee_id IN (SELECT id FROM users WHERE manager_id = ?)", managerID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatusForManager(ctx context.Context, managerID, status string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("status = ?", status).
		Where("employee_id IN (SELECT id FROM users WHERE manager_id = ? AND role = ?)", managerID, "employee").
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatusForEmployeeRoles(ctx context.Context, status string, roles []string) ([]Leave, error) {
	var leaves []Leave
	err := r.preloaded(ctx).
		Where("status = ?", status).
		Where("employee_id IN (SELECT id FROM users WHERE role IN ?)", roles).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, expectedStatus, newStatus string, rejectionReason *string, rejectedBy *uuid.UUID) (bool, error) {
	res := r.conn(ctx).
		Model(&Leave{}).
		Where("id = ?", id).
		Where("status = ?", expectedStatus).
		Updates(map[string]any{
			"status":           newStatus,
			"rejection_reason": rejectionReason,
			"rejected_by":      rejectedBy,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
