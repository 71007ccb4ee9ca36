package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/model"
)

// apiErrorBody はAPIErrorのJSON表現。
type apiErrorBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// errorEnvelope はエラーレスポンスのJSONエンベロープ。
// 成功レスポンスと同じ形だがdataは常にnull。
type errorEnvelope struct {
	StatusCode int          `json:"status_code"`
	Message    string       `json:"message"`
	Data       any          `json:"data"`
	Error      apiErrorBody `json:"error"`
}

// WriteErrorResponse はAPIErrorをJSONエンベロープとして書き込む。
// ミドルウェア層で短絡する場合に使用する。ハンドラー層には
// ステータスコード解決まで含めた上位ヘルパーがある。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	envelope := errorEnvelope{
		StatusCode: statusCode,
		Message:    apiErr.Message,
		Data:       nil,
		Error: apiErrorBody{
			Code:     apiErr.Code,
			Message:  apiErr.Message,
			Category: apiErr.Category,
			Action:   apiErr.Action,
		},
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("エラーレスポンスの書き込みに失敗しました", slog.String("error", err.Error()))
	}
}

// WriteInternalServerError は内部エラーを汎用メッセージで書き込む。
// 内部詳細はログにのみ残し、クライアントには露出しない。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}
