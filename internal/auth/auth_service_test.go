package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"leavedesk/internal/auth"
	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	user.Repository
	FindByIDFn    func(ctx context.Context, id string) (*user.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) user.Repository { return f }
func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.FindByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.FindByEmailFn(ctx, email)
}

func activeUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Name:     "Meera",
		Email:    "meera@example.com",
		Password: string(hashed),
		Role:     user.RoleManager,
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("issues a token pair carrying user id and role", func(t *testing.T) {
		u := activeUser(t, "s3cret")
		repo := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, u.Email, email)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		pair, err := svc.Login(ctx, u.Email, "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, u.Role, pair.User.Role)

		token, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, u.Role, claims["role"])
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		u := activeUser(t, "s3cret")
		notFoundRepo := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		badPasswordRepo := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}

		_, err1 := auth.NewService(notFoundRepo).Login(ctx, "ghost@example.com", "whatever")
		_, err2 := auth.NewService(badPasswordRepo).Login(ctx, u.Email, "wrong")

		assert.ErrorIs(t, err1, autherrors.ErrInvalidCredentials)
		assert.ErrorIs(t, err2, autherrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		u := activeUser(t, "s3cret")
		u.IsActive = false
		repo := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}

		_, err := auth.NewService(repo).Login(ctx, u.Email, "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("valid refresh token mints a new pair", func(t *testing.T) {
		u := activeUser(t, "s3cret")
		repo := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, u.ID.String(), id)
				return u, nil
			},
		}
		svc := auth.NewService(repo)

		pair, err := svc.Login(ctx, u.Email, "s3cret")
		assert.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, pair.RefreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, u.ID.String(), refreshed.User.ID)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepo{})
		_, err := svc.RefreshToken(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("token for a deleted user is rejected", func(t *testing.T) {
		u := activeUser(t, "s3cret")
		repo := &fakeUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := auth.NewService(repo)

		pair, err := svc.Login(ctx, u.Email, "s3cret")
		assert.NoError(t, err)

		_, err = svc.RefreshToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the caller's identity", func(t *testing.T) {
		u := activeUser(t, "s3cret")
		repo := &fakeUserRepo{
			FindByIDFn: func(ctx context.Context, id string) (*user.User, error) { return u, nil },
		}

		me, err := auth.NewService(repo).GetMe(ctx, u.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, u.Email, me.Email)
		assert.Equal(t, u.Role, me.Role)
	})

	t.Run("malformed id is invalid input", func(t *testing.T) {
		_, err := auth.NewService(&fakeUserRepo{}).GetMe(ctx, "abc")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})
}
