// Package model はドメインモデルを定義する。
package model

import "time"

// Blog はユーザーが所有するブログ記事を表す。
// UserIDが所有者を示し、更新・削除はこの所有者のみが行える。
type Blog struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
