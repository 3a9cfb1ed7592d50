package user

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllExcept(ctx context.Context, id string) ([]User, error)
	FindByManager(ctx context.Context, managerID string) ([]User, error)
	FindByRoles(ctx context.Context, roles []string) ([]User, error)
	Update(ctx context.Context, u *User) error
	DeductLeaveBalance(ctx context.Context, id, balanceColumn string, days int) error
	DeleteWithCascade(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.conn(ctx).
		Preload("Manager").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.conn(ctx).
		First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindAllExcept(ctx context.Context, id string) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("id <> ?", id).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByManager(ctx context.Context, managerID string) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("manager_id = ?", managerID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByRoles(ctx context.Context, roles []string) ([]User, error) {
	var users []User
	err := r.conn(ctx).
		Where("role IN ?", roles).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.conn(ctx).Save(u).Error
}

// DeductLeaveBalance subtracts days from one balance column, floored at zero.
// balanceColumn always comes from the fixed leave-type map, never from input.
func (r *repository) DeductLeaveBalance(ctx context.Context, id, balanceColumn string, days int) error {
	return r.conn(ctx).
		Table("users").
		Where("id = ?", id).
		Update(balanceColumn, gorm.Expr("GREATEST("+balanceColumn+" - ?, 0)", days)).Error
}

// DeleteWithCascade hard-deletes the user and scrubs every reference the
// leave ledger holds: the user's own requests (with their approvals), their
// recorded decisions on other requests, and manager links of direct reports.
func (r *repository) DeleteWithCascade(ctx context.Context, id string) error {
	db := r.conn(ctx)

	if err := db.Exec(
		"DELETE FROM leave_approvals WHERE leave_id IN (SELECT id FROM leaves WHERE employee_id = ?)",
		id,
	).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM leaves WHERE employee_id = ?", id).Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM leave_approvals WHERE user_id = ?", id).Error; err != nil {
		return err
	}
	if err := db.Exec("UPDATE leaves SET rejected_by = NULL WHERE rejected_by = ?", id).Error; err != nil {
		return err
	}
	if err := db.Exec("UPDATE users SET manager_id = NULL WHERE manager_id = ?", id).Error; err != nil {
		return err
	}

	return db.Delete(&User{}, "id = ?", id).Error
}
