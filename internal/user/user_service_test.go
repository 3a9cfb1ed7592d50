package user_test

import (
	"context"
	"database/sql"
	"testing"

	"leavedesk/internal/user"
	usererrors "leavedesk/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	CreateFn             func(ctx context.Context, u *user.User) error
	FindByIDFn           func(ctx context.Context, id string) (*user.User, error)
	FindByEmailFn        func(ctx context.Context, email string) (*user.User, error)
	FindAllExceptFn      func(ctx context.Context, id string) ([]user.User, error)
	FindByManagerFn      func(ctx context.Context, managerID string) ([]user.User, error)
	FindByRolesFn        func(ctx context.Context, roles []string) ([]user.User, error)
	UpdateFn             func(ctx context.Context, u *user.User) error
	DeductLeaveBalanceFn func(ctx context.Context, id, balanceColumn string, days int) error
	DeleteWithCascadeFn  func(ctx context.Context, id string) error
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	return f.CreateFn(ctx, u)
}
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.FindByEmailFn(ctx, email)
}
func (f *fakeUserRepo) FindAllExcept(ctx context.Context, id string) ([]user.User, error) {
	return f.FindAllExceptFn(ctx, id)
}
func (f *fakeUserRepo) FindByManager(ctx context.Context, managerID string) ([]user.User, error) {
	return f.FindByManagerFn(ctx, managerID)
}
func (f *fakeUserRepo) FindByRoles(ctx context.Context, roles []string) ([]user.User, error) {
	return f.FindByRolesFn(ctx, roles)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	return f.UpdateFn(ctx, u)
}
func (f *fakeUserRepo) DeductLeaveBalance(ctx context.Context, id, balanceColumn string, days int) error {
	return f.DeductLeaveBalanceFn(ctx, id, balanceColumn, days)
}
func (f *fakeUserRepo) DeleteWithCascade(ctx context.Context, id string) error {
	return f.DeleteWithCascadeFn(ctx, id)
}

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	return db, mock
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds default balances and returns a usable temporary password", func(t *testing.T) {
		db, mock := newTestDB(t)
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		var created *user.User
		repo := &fakeUserRepo{
			CreateFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		svc := user.NewService(db, repo)

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Name:  "Asha",
			Email: "asha@example.com",
			Role:  user.RoleEmployee,
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, 12, created.CasualLeave)
		assert.Equal(t, 10, created.SickLeave)
		assert.Equal(t, 20, created.EarnedLeave)
		assert.Equal(t, 180, created.MaternityLeave)
		assert.True(t, created.IsActive)

		assert.Len(t, resp.TemporaryPassword, 12)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(created.Password), []byte(resp.TemporaryPassword)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assigned manager must hold the manager role", func(t *testing.T) {
		db, mock := newTestDB(t)
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		hrID := uuid.New()
		repo := &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: hrID, Role: user.RoleHR}, nil
			},
		}
		svc := user.NewService(db, repo)

		managerID := hrID.String()
		_, err := svc.Create(ctx, user.CreateUserRequest{
			Name:      "Asha",
			Email:     "asha@example.com",
			Role:      user.RoleEmployee,
			ManagerID: &managerID,
		})

		assert.ErrorIs(t, err, usererrors.ErrManagerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing manager is rejected", func(t *testing.T) {
		db, mock := newTestDB(t)
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := user.NewService(db, repo)

		managerID := uuid.New().String()
		_, err := svc.Create(ctx, user.CreateUserRequest{
			Name:      "Asha",
			Email:     "asha@example.com",
			Role:      user.RoleEmployee,
			ManagerID: &managerID,
		})

		assert.ErrorIs(t, err, usererrors.ErrManagerNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("cascade delete runs against the target after the existence check", func(t *testing.T) {
		db, mock := newTestDB(t)
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectCommit()

		targetID := uuid.New()
		cascaded := false
		repo := &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: targetID, Role: user.RoleEmployee}, nil
			},
			DeleteWithCascadeFn: func(ctx context.Context, id string) error {
				assert.Equal(t, targetID.String(), id)
				cascaded = true
				return nil
			},
		}
		svc := user.NewService(db, repo)

		err := svc.Remove(ctx, uuid.New().String(), targetID.String())

		assert.NoError(t, err)
		assert.True(t, cascaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a director cannot remove themselves", func(t *testing.T) {
		db, _ := newTestDB(t)
		defer db.Close()

		svc := user.NewService(db, &fakeUserRepo{})
		actorID := uuid.New().String()

		err := svc.Remove(ctx, actorID, actorID)
		assert.ErrorIs(t, err, usererrors.ErrCannotRemoveSelf)
	})

	t.Run("unknown target maps to not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		defer db.Close()
		mock.ExpectBegin()
		mock.ExpectRollback()

		repo := &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := user.NewService(db, repo)

		err := svc.Remove(ctx, uuid.New().String(), uuid.New().String())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserService_Team(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	defer db.Close()

	t.Run("manager sees direct reports", func(t *testing.T) {
		managerID := uuid.New().String()
		repo := &fakeUserRepo{
			FindByManagerFn: func(ctx context.Context, mid string) ([]user.User, error) {
				assert.Equal(t, managerID, mid)
				return []user.User{{ID: uuid.New(), Role: user.RoleEmployee}}, nil
			},
		}
		svc := user.NewService(db, repo)

		out, err := svc.Team(ctx, managerID, user.RoleManager)
		assert.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("hr sees employees and managers", func(t *testing.T) {
		repo := &fakeUserRepo{
			FindByRolesFn: func(ctx context.Context, roles []string) ([]user.User, error) {
				assert.Equal(t, []string{user.RoleEmployee, user.RoleManager}, roles)
				return nil, nil
			},
		}
		svc := user.NewService(db, repo)

		_, err := svc.Team(ctx, uuid.New().String(), user.RoleHR)
		assert.NoError(t, err)
	})

	t.Run("director sees everyone but themselves", func(t *testing.T) {
		directorID := uuid.New().String()
		repo := &fakeUserRepo{
			FindAllExceptFn: func(ctx context.Context, id string) ([]user.User, error) {
				assert.Equal(t, directorID, id)
				return nil, nil
			},
		}
		svc := user.NewService(db, repo)

		_, err := svc.Team(ctx, directorID, user.RoleDirector)
		assert.NoError(t, err)
	})

	t.Run("employee team view is empty, not an error", func(t *testing.T) {
		svc := user.NewService(db, &fakeUserRepo{})
		out, err := svc.Team(ctx, uuid.New().String(), user.RoleEmployee)
		assert.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	db, _ := newTestDB(t)
	defer db.Close()

	t.Run("response carries the balance block", func(t *testing.T) {
		id := uuid.New()
		repo := &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, uid string) (*user.User, error) {
				return &user.User{
					ID: id, Name: "Ravi", Email: "ravi@example.com", Role: user.RoleEmployee,
					CasualLeave: 9, SickLeave: 10, EarnedLeave: 20, MaternityLeave: 180,
					IsActive: true,
				}, nil
			},
		}
		svc := user.NewService(db, repo)

		resp, err := svc.Profile(ctx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, 9, resp.LeaveBalance.CasualLeave)
		assert.Equal(t, 180, resp.LeaveBalance.MaternityLeave)
	})

	t.Run("malformed id is invalid input", func(t *testing.T) {
		svc := user.NewService(db, &fakeUserRepo{})
		_, err := svc.Profile(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}
