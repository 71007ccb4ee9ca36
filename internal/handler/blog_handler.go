package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
	"github.com/hitoshi/blogman/internal/repository"
)

// BlogServiceInterface はブログハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	Create(ctx context.Context, identity *model.Identity, title, description string) (*model.Blog, error)
	Get(ctx context.Context, blogID int64) (*model.Blog, error)
	ListAll(ctx context.Context) ([]*model.Blog, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Blog, error)
	Update(ctx context.Context, identity *model.Identity, blogID int64, fields repository.BlogUpdate) (*model.Blog, error)
	Delete(ctx context.Context, identity *model.Identity, blogID int64) error
}

// BlogHandler はブログCRUDのHTTPハンドラー。全エンドポイントが認証必須。
type BlogHandler struct {
	service BlogServiceInterface
}

// NewBlogHandler はBlogHandlerを生成する。
func NewBlogHandler(service BlogServiceInterface) *BlogHandler {
	return &BlogHandler{service: service}
}

// blogResponse はブログのレスポンスDTO。
type blogResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createBlogRequest はブログ作成のリクエストボディ。
// 所有者はリクエストから指定できず、認証済みユーザーに固定される。
type createBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// updateBlogRequest はブログ部分更新のリクエストボディ。
type updateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateBlog は新しいブログを作成する。
// POST /api/blogs
func (h *BlogHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Description == "" {
		writeErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	blog, err := h.service.Create(r.Context(), identity, req.Title, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusCreated, "ブログを作成しました。", toBlogResponse(blog))
}

// ListBlogs は全ブログの一覧を返す。
// GET /api/blogs
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ブログ一覧を取得しました。", toBlogResponses(blogs))
}

// ListUserBlogs は指定ユーザーが所有するブログの一覧を返す。
// GET /api/users/{id}/blogs
func (h *BlogHandler) ListUserBlogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, model.NewUserNotFoundError(0))
	if !ok {
		return
	}

	blogs, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ユーザーのブログ一覧を取得しました。", toBlogResponses(blogs))
}

// GetBlog は指定IDのブログを返す。
// GET /api/blogs/{id}
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blogID, ok := parseIDParam(w, r, model.NewBlogNotFoundError(0))
	if !ok {
		return
	}

	blog, err := h.service.Get(r.Context(), blogID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ブログを取得しました。", toBlogResponse(blog))
}

// UpdateBlog は指定IDのブログを部分更新する。所有者のみ実行可能。
// PATCH /api/blogs/{id}
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	blogID, ok := parseIDParam(w, r, model.NewBlogNotFoundError(0))
	if !ok {
		return
	}

	var req updateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	blog, err := h.service.Update(r.Context(), identity, blogID, repository.BlogUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ブログを更新しました。", toBlogResponse(blog))
}

// DeleteBlog は指定IDのブログを削除する。所有者のみ実行可能。
// DELETE /api/blogs/{id}
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	blogID, ok := parseIDParam(w, r, model.NewBlogNotFoundError(0))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, blogID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeResponse(w, http.StatusOK, "ブログを削除しました。", nil)
}

// --- ヘルパー関数 ---

// parseIDParam はURLパスの{id}パラメータをint64として解析する。
// 数値でない場合は指定されたnot foundエラーを書き込んでfalseを返す。
func parseIDParam(w http.ResponseWriter, r *http.Request, notFound *model.APIError) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}

// toBlogResponse はmodel.BlogからAPIレスポンスに変換する。
func toBlogResponse(blog *model.Blog) blogResponse {
	return blogResponse{
		ID:          blog.ID,
		UserID:      blog.UserID,
		Title:       blog.Title,
		Description: blog.Description,
		CreatedAt:   blog.CreatedAt,
		UpdatedAt:   blog.UpdatedAt,
	}
}

func toBlogResponses(blogs []*model.Blog) []blogResponse {
	responses := make([]blogResponse, len(blogs))
	for i, blog := range blogs {
		responses[i] = toBlogResponse(blog)
	}
	return responses
}
