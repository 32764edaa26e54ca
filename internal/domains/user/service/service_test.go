package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/otel/mocks"
	userMocks "folio/internal/domains/user/mocks"
	"folio/internal/domains/user/model"
	"folio/internal/domains/user/model/dto"
	"folio/internal/domains/user/service"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/password"
)

func newService(ctrl *gomock.Controller) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newService(ctrl)

	req := dto.CreateUserRequest{Email: " Editor@Example.com", Password: "password123", Level: constant.RoleUser}

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, "editor@example.com", user.Email)
						assert.True(t, user.Active)
						assert.NoError(t, password.Verify("password123", user.Password))
						assert.Equal(t, "admin-id", user.CreatedBy)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "email already registered",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			res, err := svc.Create(ctx, req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "editor@example.com", res.Email)
			assert.Equal(t, constant.RoleUser, res.Level)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newService(ctrl)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.User{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.User{ID: "user-1", Email: "a@example.com", Password: "hash", Active: true}, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.Get(context.Background(), "user-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", res.ID)
	assert.Equal(t, "a@example.com", res.Email)
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newService(ctrl)

	email := "New@Example.com"
	newPassword := "changed-password"
	demote := constant.RoleUser
	deactivate := false

	editor := model.User{ID: "user-1", Email: "editor@example.com", Level: constant.RoleUser, Active: true}
	admin := model.User{ID: "user-1", Email: "owner@example.com", Level: constant.RoleAdmin, Active: true}

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.UpdateUserRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateUserRequest{},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "user not found",
			req:  dto.UpdateUserRequest{Email: &email},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "malformed id",
			req:  dto.UpdateUserRequest{Email: &email},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{}, &pq.Error{Code: constant.PqErrorCodeInvalidText})
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "email taken by another user",
			req:  dto.UpdateUserRequest{Email: &email},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(editor, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "demoting the last admin",
			req:  dto.UpdateUserRequest{Level: &demote},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				mockRepo.EXPECT().CountActive(gomock.Any(), constant.RoleAdmin).Return(1, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "deactivating one of several admins",
			req:  dto.UpdateUserRequest{Active: &deactivate},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(admin, nil)
				mockRepo.EXPECT().CountActive(gomock.Any(), constant.RoleAdmin).Return(2, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "email and password updated",
			req:  dto.UpdateUserRequest{Email: &email, Password: &newPassword},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(editor, nil)
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						updated, ok := fields[model.FieldEmail].(*string)
						if assert.True(t, ok) {
							assert.Equal(t, "new@example.com", *updated)
						}

						hashed, ok := fields[model.FieldPassword].(string)
						if assert.True(t, ok) {
							assert.NoError(t, password.Verify(newPassword, hashed))
						}

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
			err := svc.Update(ctx, tt.req, "user-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newService(ctrl)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	t.Run("own account", func(t *testing.T) {
		err := svc.Delete(ctx, "admin-id")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("last active admin", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "admin-2", Level: constant.RoleAdmin, Active: true}, nil)
		mockRepo.EXPECT().CountActive(gomock.Any(), constant.RoleAdmin).Return(1, nil)

		err := svc.Delete(ctx, "admin-2")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("editor", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-1", Level: constant.RoleUser, Active: true}, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Delete(ctx, "user-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
