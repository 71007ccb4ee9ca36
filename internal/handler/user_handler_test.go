package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/blogman/internal/model"
)

// mockUserService はUserServiceInterfaceのテスト用実装。
type mockUserService struct {
	getFn    func(ctx context.Context, identity *model.Identity, userID int64) (*model.User, error)
	updateFn func(ctx context.Context, identity *model.Identity, userID int64, username, password *string) (*model.User, error)
	deleteFn func(ctx context.Context, identity *model.Identity, userID int64) error
}

func (m *mockUserService) Get(ctx context.Context, identity *model.Identity, userID int64) (*model.User, error) {
	return m.getFn(ctx, identity, userID)
}

func (m *mockUserService) Update(ctx context.Context, identity *model.Identity, userID int64, username, password *string) (*model.User, error) {
	return m.updateFn(ctx, identity, userID, username, password)
}

func (m *mockUserService) Delete(ctx context.Context, identity *model.Identity, userID int64) error {
	return m.deleteFn(ctx, identity, userID)
}

// TestGetUser_Self_OmitsPasswordHash は本人取得のレスポンスにハッシュが含まれないことを検証する。
func TestGetUser_Self_OmitsPasswordHash(t *testing.T) {
	service := &mockUserService{
		getFn: func(ctx context.Context, identity *model.Identity, userID int64) (*model.User, error) {
			return &model.User{ID: userID, Username: "alice", Password: "$2a$10$secret-hash"}, nil
		},
	}
	h := NewUserHandler(service)

	req := authedRequest(t, http.MethodGet, "/api/users/1", "1", "")
	w := httptest.NewRecorder()

	h.GetUser(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if strings.Contains(w.Body.String(), "$2a$") || strings.Contains(w.Body.String(), "secret-hash") {
		t.Errorf("response must not contain password hash: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "alice") {
		t.Errorf("response should contain username: %s", w.Body.String())
	}
}

// TestGetUser_OtherUser_Forbidden は他ユーザーの取得で403が返ることを検証する。
func TestGetUser_OtherUser_Forbidden(t *testing.T) {
	service := &mockUserService{
		getFn: func(ctx context.Context, identity *model.Identity, userID int64) (*model.User, error) {
			return nil, model.NewForbiddenError()
		},
	}
	h := NewUserHandler(service)

	req := authedRequest(t, http.MethodGet, "/api/users/2", "2", "")
	w := httptest.NewRecorder()

	h.GetUser(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// TestUpdateUser_UsernameTaken はユーザー名重複で400が返ることを検証する。
func TestUpdateUser_UsernameTaken(t *testing.T) {
	service := &mockUserService{
		updateFn: func(ctx context.Context, identity *model.Identity, userID int64, username, password *string) (*model.User, error) {
			return nil, model.NewUsernameTakenError()
		},
	}
	h := NewUserHandler(service)

	req := authedRequest(t, http.MethodPatch, "/api/users/1", "1", `{"username":"bob"}`)
	w := httptest.NewRecorder()

	h.UpdateUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), model.ErrCodeUsernameTaken) {
		t.Errorf("response should contain %s: %s", model.ErrCodeUsernameTaken, w.Body.String())
	}
}

// TestDeleteUser_Self_ClearsCookie は退会でセッションCookieが破棄されることを検証する。
func TestDeleteUser_Self_ClearsCookie(t *testing.T) {
	service := &mockUserService{
		deleteFn: func(ctx context.Context, identity *model.Identity, userID int64) error {
			return nil
		},
	}
	h := NewUserHandler(service)

	req := authedRequest(t, http.MethodDelete, "/api/users/1", "1", "")
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expired cookie should be set after withdrawal")
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("cookie MaxAge = %d, want negative", cookies[0].MaxAge)
	}
}

// TestDeleteUser_OtherUser_Forbidden は他ユーザーの削除で403が返ることを検証する。
func TestDeleteUser_OtherUser_Forbidden(t *testing.T) {
	service := &mockUserService{
		deleteFn: func(ctx context.Context, identity *model.Identity, userID int64) error {
			return model.NewForbiddenError()
		},
	}
	h := NewUserHandler(service)

	req := authedRequest(t, http.MethodDelete, "/api/users/2", "2", "")
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
