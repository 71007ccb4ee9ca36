// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, blog, user, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeWeakPassword      = "WEAK_PASSWORD"
	ErrCodeMissingFields     = "MISSING_FIELDS"
	ErrCodeUsernameTaken     = "USERNAME_TAKEN"
	ErrCodeIncorrectUsername = "INCORRECT_USERNAME"
	ErrCodeIncorrectPassword = "INCORRECT_PASSWORD"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeBlogNotFound      = "BLOG_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// NewWeakPasswordError はパスワード強度不足エラーを生成する。
// ハッシュ化・保存の前に返されるため、副作用は一切発生しない。
func NewWeakPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWeakPassword,
		Message:  "このパスワードは使用できません。",
		Category: "validation",
		Action:   "5文字以上で、大文字・小文字・数字または記号を含むパスワードを指定してください。",
	}
}

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "必須フィールドが不足しています。",
		Category: "validation",
		Action:   "リクエストボディに必要なフィールドをすべて含めてください。",
	}
}

// NewUsernameTakenError はユーザー名重複エラーを生成する。
// ストレージ層の重複キーシグナルから変換される。SQL等の内部情報は含めない。
func NewUsernameTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeUsernameTaken,
		Message:  "このユーザー名は既に使用されています。",
		Category: "auth",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewIncorrectUsernameError はユーザー名不一致エラーを生成する。
// ユーザー名列挙攻撃への対策として、INCORRECT_PASSWORDと同じステータスクラスで返す。
func NewIncorrectUsernameError() *APIError {
	return &APIError{
		Code:     ErrCodeIncorrectUsername,
		Message:  "ユーザー名が正しくありません。",
		Category: "auth",
		Action:   "ユーザー名を確認してください。",
	}
}

// NewIncorrectPasswordError はパスワード不一致エラーを生成する。
func NewIncorrectPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeIncorrectPassword,
		Message:  "パスワードが正しくありません。",
		Category: "auth",
		Action:   "パスワードを確認してください。",
	}
}

// NewUnauthorizedError は未認証エラーを生成する。
// トークン欠落・不正・期限切れのいずれの場合もこのエラーを返す。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewForbiddenError は認可エラーを生成する。
// 認証済みだがリソースの所有者でない場合に返す。未認証のUNAUTHORIZEDとは区別する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "自分が所有するリソースに対してのみ操作できます。",
	}
}

// NewBlogNotFoundError はブログ未検出エラーを生成する。
func NewBlogNotFoundError(blogID int64) *APIError {
	return &APIError{
		Code:     ErrCodeBlogNotFound,
		Message:  fmt.Sprintf("指定されたブログが見つかりません: %d", blogID),
		Category: "blog",
		Action:   "ブログIDを確認してください。",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(userID int64) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %d", userID),
		Category: "user",
		Action:   "ユーザーIDを確認してください。",
	}
}

// NewInternalError は内部エラーを生成する。
// 原因の詳細はログにのみ記録し、レスポンスには含めない。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternalError,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
