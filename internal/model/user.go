// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Passwordはbcryptハッシュであり、平文は保持しない。
type User struct {
	ID        int64
	Username  string
	Password  string // ハッシュ値。レスポンスには含めない。
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity は1リクエストの間だけ有効な認証済みユーザー情報を表す。
// AuthGateミドルウェアが検証済みトークンのクレームから生成し、
// リクエストコンテキストに注入する。永続化はしない。
type Identity struct {
	ID       int64
	Username string
}
