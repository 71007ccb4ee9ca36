package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/hitoshi/blogman/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	SignUp(ctx context.Context, username, password string) (*model.Identity, error)
	LogIn(ctx context.Context, username, password string) (*model.Identity, string, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain   string
	CookieSecure   bool
	TokenMaxAgeSec int // セッショントークンCookieの有効期間（秒）
}

// AuthHandler はサインアップ・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics metrics.MetricsCollector
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, collector metrics.MetricsCollector) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		metrics: collector,
	}
}

// credentialsRequest はサインアップ・ログイン共通のリクエストボディ。
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// identityResponse は認証済みユーザーのレスポンスDTO。
// パスワードハッシュは含まれない。
type identityResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// SignUp は新規ユーザーを登録する。
// POST /signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		h.metrics.RecordSignUp("failure")
		writeErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	identity, err := h.service.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordSignUp("failure")
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordSignUp("success")
	writeResponse(w, http.StatusCreated, "ユーザーを登録しました。", identityResponse{
		ID:       identity.ID,
		Username: identity.Username,
	})
}

// LogIn は認証情報を検証し、セッショントークンをHTTP Only Cookieで返す。
// POST /login
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		h.metrics.RecordLogIn("failure")
		writeErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	identity, token, err := h.service.LogIn(r.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.RecordLogIn("failure")
		handleServiceError(w, err)
		return
	}

	// セッショントークンをHTTP Only Cookieに設定。
	// JavaScriptからの読み出しを防ぎ、XSSによるトークン窃取を緩和する。
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.TokenMaxAgeSec,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	h.metrics.RecordLogIn("success")
	writeResponse(w, http.StatusOK, "ログインしました。", identityResponse{
		ID:       identity.ID,
		Username: identity.Username,
	})
}

// LogOut はセッショントークンのCookieを破棄する。
// POST /logout（認証必須）
// トークン自体はステートレスなため有効期限までは技術的に有効だが、
// クライアント側の保持を失わせることでセッションを終了させる。
func (h *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeResponse(w, http.StatusOK, "ログアウトしました。", nil)
}
