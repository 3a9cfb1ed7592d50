package holiday_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leavedesk/internal/holiday"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeHolidayService struct {
	CreateFn func(ctx context.Context, actorID string, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error)
	GetAllFn func(ctx context.Context) ([]holiday.HolidayResponse, error)
	UpdateFn func(ctx context.Context, id string, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error)
	RemoveFn func(ctx context.Context, id string) error
}

func (f *fakeHolidayService) Create(ctx context.Context, actorID string, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error) {
	return f.CreateFn(ctx, actorID, req)
}
func (f *fakeHolidayService) GetAll(ctx context.Context) ([]holiday.HolidayResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeHolidayService) Update(ctx context.Context, id string, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeHolidayService) Remove(ctx context.Context, id string) error {
	return f.RemoveFn(ctx, id)
}

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == "" {
		body = "{}"
	}
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHolidayHandler_GetAll(t *testing.T) {
	holidays := []holiday.HolidayResponse{
		{ID: uuid.New().String(), Name: "Republic Day", Date: "2026-01-26", Category: "national", CreatedBy: uuid.New().String()},
	}

	t.Run("cache miss loads from the service and fills the cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		payload, err := json.Marshal(holidays)
		assert.NoError(t, err)
		redisMock.ExpectGet("holidays:all").RedisNil()
		redisMock.ExpectSet("holidays:all", payload, 6*time.Hour).SetVal("OK")

		called := false
		svc := &fakeHolidayService{
			GetAllFn: func(ctx context.Context) ([]holiday.HolidayResponse, error) {
				called = true
				return holidays, nil
			},
		}
		h := holiday.NewHandlerWithRedis(svc, rdb)
		c, w := newTestContext(t, http.MethodGet, "/holidays", "")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit never touches the service", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		payload, err := json.Marshal(holidays)
		assert.NoError(t, err)
		redisMock.ExpectGet("holidays:all").SetVal(string(payload))

		svc := &fakeHolidayService{
			GetAllFn: func(ctx context.Context) ([]holiday.HolidayResponse, error) {
				t.Fatal("service must not be called on a cache hit")
				return nil, nil
			},
		}
		h := holiday.NewHandlerWithRedis(svc, rdb)
		c, w := newTestContext(t, http.MethodGet, "/holidays", "")

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Republic Day")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestHolidayHandler_Create(t *testing.T) {
	t.Run("invalidates the list cache on success", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel("holidays:all").SetVal(1)

		svc := &fakeHolidayService{
			CreateFn: func(ctx context.Context, actorID string, req holiday.UpsertHolidayRequest) (holiday.HolidayResponse, error) {
				return holiday.HolidayResponse{ID: uuid.New().String(), Name: req.Name, Date: req.Date, Category: req.Category}, nil
			},
		}
		h := holiday.NewHandlerWithRedis(svc, rdb)
		body := `{"name":"Founders Day","date":"2026-09-14","category":"company"}`
		c, w := newTestContext(t, http.MethodPost, "/holidays", body)
		c.Set("user_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("unknown category fails validation", func(t *testing.T) {
		h := holiday.NewHandler(&fakeHolidayService{})
		body := `{"name":"X","date":"2026-09-14","category":"regional"}`
		c, w := newTestContext(t, http.MethodPost, "/holidays", body)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHolidayHandler_Delete(t *testing.T) {
	t.Run("invalidates the list cache on success", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel("holidays:all").SetVal(1)

		svc := &fakeHolidayService{
			RemoveFn: func(ctx context.Context, id string) error { return nil },
		}
		h := holiday.NewHandlerWithRedis(svc, rdb)
		c, w := newTestContext(t, http.MethodDelete, "/holidays/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
