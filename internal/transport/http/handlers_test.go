package httpt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artnotifier/internal/entity"
	"artnotifier/internal/service"
	"artnotifier/internal/transport/http/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	h     *Handler
	svc   *mocks.MockNotifyService
	ready *mocks.MockReadinessChecker
	owner uuid.UUID
}

func setupHandler(t *testing.T) testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockNotifyService(ctrl)
	ready := mocks.NewMockReadinessChecker(ctrl)

	h, err := NewNotifyHandler(svc, zap.NewNop(),
		RequestTimeout(time.Second),
		Metrics(true, "/metrics"),
		Readiness(ready),
	)
	require.NoError(t, err)
	return testEnv{h: h, svc: svc, ready: ready, owner: uuid.New()}
}

func (e testEnv) do(t *testing.T, method, path string, body any, withOwner bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withOwner {
		req.Header.Set("X-User-ID", e.owner.String())
	}

	w := httptest.NewRecorder()
	e.h.Engine().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNewNotifyHandler_Validation(t *testing.T) {
	_, err := NewNotifyHandler(nil, zap.NewNop())
	assert.Error(t, err)
}

func TestHealthAndReady(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	env.ready.EXPECT().Ping(gomock.Any()).Return(nil)
	w = env.do(t, http.MethodGet, "/ready", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	env.ready.EXPECT().Ping(gomock.Any()).Return(errors.New("dial tcp"))
	w = env.do(t, http.MethodGet, "/ready", nil, false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "not_ready", decodeError(t, w).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodGet, "/metrics", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	env := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	env.h.Engine().ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestInbox_RequiresOwner(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodGet, "/api/notifications", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", decodeError(t, w).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/count", nil)
	req.Header.Set("X-User-ID", "not-a-uuid")
	w = httptest.NewRecorder()
	env.h.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestList(t *testing.T) {
	env := setupHandler(t)

	page := &entity.Page{
		Items:       []entity.Notification{{ID: uuid.New(), UserID: env.owner, Title: "hi"}},
		Total:       41,
		TotalPages:  3,
		CurrentPage: 2,
	}
	env.svc.EXPECT().List(gomock.Any(), env.owner, service.ListQuery{
		Status:   entity.StatusSent,
		Category: entity.CategoryWelcome,
		Channel:  entity.ChannelEmail,
		Page:     2,
		Limit:    20,
	}).Return(page, nil)

	w := env.do(t, http.MethodGet, "/api/notifications?status=sent&category=welcome&type=email&page=2&limit=20", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.EqualValues(t, 41, got["total"])
	assert.EqualValues(t, 3, got["totalPages"])
	assert.EqualValues(t, 2, got["currentPage"])
	assert.Len(t, got["notifications"], 1)
}

func TestList_NegativePagingIsNormalizedDownstream(t *testing.T) {
	env := setupHandler(t)

	env.svc.EXPECT().List(gomock.Any(), env.owner, service.ListQuery{Page: -1, Limit: -5}).
		Return(&entity.Page{Items: []entity.Notification{}, CurrentPage: 1}, nil)

	w := env.do(t, http.MethodGet, "/api/notifications?page=-1&limit=-5", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"currentPage":1`)
}

func TestList_BadQuery(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodGet, "/api/notifications?page=abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.svc.EXPECT().List(gomock.Any(), env.owner, gomock.Any()).
		Return(nil, fmt.Errorf("service: %w", entity.ErrInvalidData))
	w = env.do(t, http.MethodGet, "/api/notifications?status=archived", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_data", decodeError(t, w).Code)
}

func TestCount(t *testing.T) {
	env := setupHandler(t)
	env.svc.EXPECT().Counts(gomock.Any(), env.owner).Return(&entity.Counts{Unread: 3, Total: 10}, nil)

	w := env.do(t, http.MethodGet, "/api/notifications/count", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread":3,"total":10}`, w.Body.String())
}

func TestMarkRead(t *testing.T) {
	env := setupHandler(t)
	id := uuid.New()

	env.svc.EXPECT().MarkRead(gomock.Any(), id, env.owner).
		Return(&entity.Notification{ID: id, Status: entity.StatusRead}, nil)

	w := env.do(t, http.MethodPatch, "/api/notifications/"+id.String()+"/read", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var n entity.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	assert.Equal(t, entity.StatusRead, n.Status)
}

func TestMarkRead_Errors(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodPatch, "/api/notifications/nope/read", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decodeError(t, w).Code)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{entity.ErrNotFound, http.StatusNotFound, "not_found"},
		{entity.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
		{entity.ErrConflictingData, http.StatusConflict, "conflict"},
		{entity.ErrStoreUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		id := uuid.New()
		env.svc.EXPECT().MarkRead(gomock.Any(), id, env.owner).Return(nil, fmt.Errorf("op: %w", tc.err))

		w := env.do(t, http.MethodPatch, "/api/notifications/"+id.String()+"/read", nil, true)
		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, tc.code, decodeError(t, w).Code)
	}
}

func TestMarkAllRead(t *testing.T) {
	env := setupHandler(t)
	env.svc.EXPECT().MarkAllRead(gomock.Any(), env.owner).Return(int64(7), nil)

	w := env.do(t, http.MethodPatch, "/api/notifications/mark-all-read", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MarkAllReadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Updated)
}

func TestDelete(t *testing.T) {
	env := setupHandler(t)
	id := uuid.New()

	env.svc.EXPECT().Delete(gomock.Any(), id, env.owner).Return(nil)
	w := env.do(t, http.MethodDelete, "/api/notifications/"+id.String(), nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	env.svc.EXPECT().Delete(gomock.Any(), id, env.owner).Return(entity.ErrNotFound)
	w = env.do(t, http.MethodDelete, "/api/notifications/"+id.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferences(t *testing.T) {
	env := setupHandler(t)
	prefs := entity.DefaultPreferences()

	env.svc.EXPECT().GetPreferences(gomock.Any(), env.owner).Return(&prefs, nil)
	w := env.do(t, http.MethodGet, "/api/notifications/preferences", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var got PreferencesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.NotificationPreferences.Email.Enabled)
	assert.False(t, got.NotificationPreferences.SMS.Enabled)

	next := entity.DefaultPreferences()
	next.InApp.Enabled = false
	env.svc.EXPECT().UpdatePreferences(gomock.Any(), env.owner, next).Return(&next, nil)
	w = env.do(t, http.MethodPut, "/api/notifications/preferences", PreferencesBody{NotificationPreferences: &next}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPut, "/api/notifications/preferences", map[string]any{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.svc.EXPECT().GetPreferences(gomock.Any(), env.owner).Return(nil, entity.ErrUserNotFound)
	w = env.do(t, http.MethodGet, "/api/notifications/preferences", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user_not_found", decodeError(t, w).Code)
}

func TestDispatch(t *testing.T) {
	env := setupHandler(t)
	user := uuid.New()
	created := &entity.Notification{ID: uuid.New()}

	env.svc.EXPECT().Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req service.DispatchRequest) (*service.DispatchResult, error) {
			assert.Equal(t, user, req.UserID)
			assert.Equal(t, entity.ChannelEmail, req.Channel)
			assert.Equal(t, entity.CategoryAnalysisComplete, req.Category)
			assert.True(t, req.ScheduledFor.IsZero())
			return &service.DispatchResult{Notification: created}, nil
		})

	body := DispatchRequest{
		UserID:   user.String(),
		Type:     "email",
		Category: "analysis_complete",
		Title:    "Analysis Complete!",
		Message:  "done",
	}
	w := env.do(t, http.MethodPost, "/api/notifications", body, false)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID.String(), resp.ID)
}

func TestDispatch_Suppressed(t *testing.T) {
	env := setupHandler(t)
	env.svc.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(&service.DispatchResult{Suppressed: true}, nil)

	body := DispatchRequest{
		UserID:   uuid.NewString(),
		Type:     "sms",
		Category: "welcome",
		Title:    "hi",
		Message:  "hello",
	}
	w := env.do(t, http.MethodPost, "/api/notifications", body, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suppressed":true}`, w.Body.String())
}

func TestDispatch_BadBody(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodPost, "/api/notifications", DispatchRequest{UserID: "x", Type: "email"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/notifications", DispatchRequest{
		UserID:   uuid.NewString(),
		Type:     "email",
		Category: "welcome",
		Title:    "t",
		Message:  "m",
		Priority: "critical",
	}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	env := setupHandler(t)
	env.svc.EXPECT().Counts(gomock.Any(), env.owner).DoAndReturn(func(_, _ any) (*entity.Counts, error) {
		panic("nil map")
	})

	w := env.do(t, http.MethodGet, "/api/notifications/count", nil, true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
