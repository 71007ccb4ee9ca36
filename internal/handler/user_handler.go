package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Get(ctx context.Context, identity *model.Identity, userID int64) (*model.User, error)
	Update(ctx context.Context, identity *model.Identity, userID int64, username, password *string) (*model.User, error)
	Delete(ctx context.Context, identity *model.Identity, userID int64) error
}

// UserHandler はユーザー管理のHTTPハンドラー。全エンドポイントが認証必須かつ本人限定。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// userResponse はユーザーのレスポンスDTO。パスワードハッシュは含まれない。
type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// updateUserRequest はユーザー部分更新のリクエストボディ。
type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// GetUser は指定IDのユーザーを返す。
// GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	userID, ok := parseIDParam(w, r, model.NewUserNotFoundError(0))
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), identity, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ユーザーを取得しました。", toUserResponse(user))
}

// UpdateUser は指定IDのユーザーを部分更新する。
// PATCH /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	userID, ok := parseIDParam(w, r, model.NewUserNotFoundError(0))
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	user, err := h.service.Update(r.Context(), identity, userID, req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ユーザーを更新しました。", toUserResponse(user))
}

// DeleteUser は指定IDのユーザーを削除する（退会）。
// DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	userID, ok := parseIDParam(w, r, model.NewUserNotFoundError(0))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	// 退会したユーザーのセッションCookieも破棄する
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeResponse(w, http.StatusOK, "ユーザーを削除しました。", nil)
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
// パスワードハッシュはここで確実に落とす。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
