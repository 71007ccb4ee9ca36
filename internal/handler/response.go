// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/blogman/internal/model"
)

// responseEnvelope は全エンドポイント共通のレスポンスエンベロープ。
// 成功時はerrorがnull、失敗時はdataがnullになる。
type responseEnvelope struct {
	StatusCode int            `json:"status_code"`
	Message    string         `json:"message"`
	Data       any            `json:"data"`
	Error      *errorResponse `json:"error"`
}

// errorResponse はAPIErrorのJSON表現。
type errorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeResponse は成功レスポンスをエンベロープ形式で書き込む。
func writeResponse(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	envelope := responseEnvelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Error:      nil,
	}
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", slog.String("error", err.Error()))
	}
}

// writeErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	envelope := responseEnvelope{
		StatusCode: statusCode,
		Message:    apiErr.Message,
		Data:       nil,
		Error: &errorResponse{
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

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// APIError以外のエラーは内部詳細をログにのみ残し、500の汎用エラーとして返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	writeErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeWeakPassword,
		model.ErrCodeMissingFields,
		model.ErrCodeUsernameTaken,
		model.ErrCodeIncorrectUsername,
		model.ErrCodeIncorrectPassword:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeBlogNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
