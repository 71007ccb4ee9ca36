package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/middleware"
)

// HealthChecker はDB疎通確認のインターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス
	Metrics         metrics.MetricsCollector
	MetricsGatherer prometheus.Gatherer

	// ヘルスチェック
	HealthChecker HealthChecker

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// ブログ
	BlogService BlogServiceInterface

	// ユーザー
	UserService UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序（外側から）:
//
//	Recovery → SecurityHeaders → CORS → RequestID → Logging → Metrics
//
// /signup /login /health /metrics は認証不要。
// /logout と /api/blogs /api/users 以下はAuthMiddlewareで保護する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(metrics.NewHTTPMiddleware(deps.Metrics))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, deps.Metrics)
	blogHandler := NewBlogHandler(deps.BlogService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	r.Post("/signup", authHandler.SignUp)
	r.Post("/login", authHandler.LogIn)

	// ヘルスチェック（DB疎通確認込み）
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.HealthChecker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			middleware.WriteInternalServerError(w)
			return
		}
		writeResponse(w, http.StatusOK, "ok", nil)
	})

	// Prometheusスクレイプ
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))

		// ログアウトは有効なトークンを持つユーザーのみ実行可能
		r.Post("/logout", authHandler.LogOut)

		// ブログ管理
		r.Route("/api/blogs", func(r chi.Router) {
			r.Get("/", blogHandler.ListBlogs)
			r.Post("/", blogHandler.CreateBlog)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", blogHandler.GetBlog)
				r.Patch("/", blogHandler.UpdateBlog)
				r.Delete("/", blogHandler.DeleteBlog)
			})
		})

		// ユーザー管理（本人限定）
		r.Route("/api/users/{id}", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Patch("/", userHandler.UpdateUser)
			r.Delete("/", userHandler.DeleteUser)

			// 指定ユーザーのブログ一覧（所有者以外も閲覧可）
			r.Get("/blogs", blogHandler.ListUserBlogs)
		})
	})

	return r
}
