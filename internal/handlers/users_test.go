package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-user-admin/internal/facades"
	"github.com/sbilibin2017/gw-user-admin/internal/models"
	"github.com/sbilibin2017/gw-user-admin/internal/services"
	"github.com/sbilibin2017/gw-user-admin/internal/views"
)

func newTestRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	r, err := views.NewRenderer()
	require.NoError(t, err)
	return r
}

func newUsersRouter(svc UserLister, pages PageRenderer) http.Handler {
	r := chi.NewRouter()
	r.Get("/users", NewListUsersHandler(svc, pages))
	r.Get("/users/views/{view}", NewListViewHandler(svc, pages))
	r.Post("/users/views/{view}/users/{id}/delete", NewDeleteUserHandler(svc, pages))
	r.Post("/users/views/{view}/notice/dismiss", NewDismissListNoticeHandler(svc, pages))
	return r
}

func TestListUsersHandler(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(m *MockUserLister)
		expectedCode int
		expectedBody string
	}{
		{
			name: "renders users",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().Open(gomock.Any()).Return(&models.ListView{
					ID:    "v1",
					Users: []models.User{{ID: "42", Name: "Ann"}},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `/users/views/v1/users/42/delete`,
		},
		{
			name: "api failure",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().Open(gomock.Any()).Return(nil, facades.ErrNetwork)
			},
			expectedCode: http.StatusBadGateway,
			expectedBody: "Failed to load users. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockUserLister(ctrl)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			rr := httptest.NewRecorder()
			newUsersRouter(svc, newTestRenderer(t)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestListViewHandler(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(m *MockUserLister)
		expectedCode int
		expectedBody string
	}{
		{
			name: "stored view",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().View(gomock.Any(), "v1").Return(&models.ListView{
					ID:     "v1",
					Users:  []models.User{{ID: "41", Name: "Bob"}},
					Notice: services.NoticeDeleteFailed,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: services.NoticeDeleteFailed,
		},
		{
			name: "expired view",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().View(gomock.Any(), "v1").Return(nil, services.ErrViewNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: "This list has expired.",
		},
		{
			name: "store failure",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().View(gomock.Any(), "v1").Return(nil, errors.New("redis down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: "Something went wrong.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockUserLister(ctrl)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodGet, "/users/views/v1", nil)
			rr := httptest.NewRecorder()
			newUsersRouter(svc, newTestRenderer(t)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestDeleteUserHandler(t *testing.T) {
	tests := []struct {
		name             string
		setupMocks       func(m *MockUserLister)
		expectedCode     int
		expectedLocation string
	}{
		{
			name: "deleted",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().Delete(gomock.Any(), "v1", models.UserID("42")).Return(&models.ListView{ID: "v1"}, nil)
			},
			expectedCode:     http.StatusSeeOther,
			expectedLocation: "/users/views/v1",
		},
		{
			name: "failed delete shows notice",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().Delete(gomock.Any(), "v1", models.UserID("42")).
					Return(&models.ListView{ID: "v1"}, services.ErrDeleteFailed)
			},
			expectedCode:     http.StatusSeeOther,
			expectedLocation: "/users/views/v1",
		},
		{
			name: "expired view",
			setupMocks: func(m *MockUserLister) {
				m.EXPECT().Delete(gomock.Any(), "v1", models.UserID("42")).Return(nil, services.ErrViewNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockUserLister(ctrl)
			tt.setupMocks(svc)

			req := httptest.NewRequest(http.MethodPost, "/users/views/v1/users/42/delete", nil)
			rr := httptest.NewRecorder()
			newUsersRouter(svc, newTestRenderer(t)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
		})
	}
}

func TestDismissListNoticeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockUserLister(ctrl)
	svc.EXPECT().DismissNotice(gomock.Any(), "v1").Return(&models.ListView{ID: "v1"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/users/views/v1/notice/dismiss", nil)
	rr := httptest.NewRecorder()
	newUsersRouter(svc, newTestRenderer(t)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/users/views/v1", rr.Header().Get("Location"))
}
