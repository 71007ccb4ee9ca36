package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// instrumentRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type instrumentRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (ir *instrumentRecorder) WriteHeader(code int) {
	if !ir.written {
		ir.statusCode = code
		ir.written = true
	}
	ir.ResponseWriter.WriteHeader(code)
}

func (ir *instrumentRecorder) Write(b []byte) (int, error) {
	if !ir.written {
		ir.statusCode = http.StatusOK
		ir.written = true
	}
	return ir.ResponseWriter.Write(b)
}

// NewHTTPMiddleware はリクエストごとにステータスコードと処理時間を記録する
// ミドルウェアを返す。処理時間のパスラベルにはchiのルートパターンを使用し、
// パスパラメータによるカーディナリティ爆発を防ぐ。
func NewHTTPMiddleware(collector MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &instrumentRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			collector.RecordHTTPStatus(rec.statusCode)

			// ルーティング確定後のパターンを取得（未マッチ時は素のパス）
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			collector.RecordRequestDuration(r.Method, path, time.Since(start))
		})
	}
}
